// Package gcs implements the object storage contract on Google Cloud Storage.
//
// The SDK client is constructed lazily on the first operation so that
// building a client is cheap and never touches the network. A missing bucket
// name is reported as a configuration error before any SDK call is made;
// an SDK client that cannot be constructed is reported as a dependency
// failure.
package gcs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"

	gstorage "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"

	apperrors "github.com/siri1404/OSPSD-Spring-26/errors"
	"github.com/siri1404/OSPSD-Spring-26/logger"
	"github.com/siri1404/OSPSD-Spring-26/storage"
)

// Register makes the gcs backend available to the storage factory registry.
// Call it from the application's composition root.
func Register() {
	storage.RegisterFactory(storage.ProviderGCS, func(cfg *storage.Config, log *logger.Logger) (storage.ObjectClient, error) {
		return NewClient(FromStorageConfig(cfg), log), nil
	})
}

// Client is a Google Cloud Storage backed ObjectClient.
type Client struct {
	cfg *Config
	log *logger.Logger

	mu     sync.Mutex
	api    gcsAPI
	bucket bucketAPI

	// newAPI is swapped out in tests.
	newAPI func(ctx context.Context, cfg *Config) (gcsAPI, error)
}

var _ storage.ObjectClient = (*Client)(nil)

// NewClient builds a client without touching the network. Environment
// fallbacks are applied to unset configuration fields.
func NewClient(cfg *Config, log *logger.Logger) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Client{
		cfg:    cfg,
		log:    log.WithComponent("storage.gcs"),
		newAPI: newAPIFromCredentials,
	}
}

func newAPIFromCredentials(ctx context.Context, cfg *Config) (gcsAPI, error) {
	opts, err := credentialOptions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	api, err := newSDKClient(ctx, opts...)
	if err != nil {
		return nil, apperrors.DependencyUnavailable("google cloud storage", err)
	}
	return api, nil
}

// ensureBucket lazily constructs the SDK client and bucket handle. The
// bucket name is checked before any SDK call so misconfiguration surfaces
// without a network round trip.
func (c *Client) ensureBucket(ctx context.Context) (bucketAPI, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bucket != nil {
		return c.bucket, nil
	}
	if c.cfg.Bucket == "" {
		return nil, apperrors.Configuration(
			"bucket name is not configured; set the bucket field or " + storage.EnvGCSBucket)
	}

	api, err := c.newAPI(ctx, c.cfg)
	if err != nil {
		return nil, err
	}
	c.api = api
	c.bucket = api.Bucket(c.cfg.Bucket)
	c.log.Debug("gcs client initialized", map[string]interface{}{
		logger.FieldBucket: c.cfg.Bucket,
	})
	return c.bucket, nil
}

// Close releases the underlying SDK client if one was constructed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.api == nil {
		return nil
	}
	err := c.api.Close()
	c.api = nil
	c.bucket = nil
	return err
}

// UploadFile streams a local file to the bucket and returns the stored
// object's server-confirmed metadata.
func (c *Client) UploadFile(ctx context.Context, key, path string, opts ...storage.UploadOption) (*storage.ObjectInfo, error) {
	bucket, err := c.ensureBucket(ctx)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NotFound("file", path).WithCause(err)
		}
		return nil, apperrors.Internal(err)
	}
	defer f.Close()

	return c.write(ctx, bucket, key, f, opts)
}

// UploadBytes writes an in-memory payload to the bucket and returns the
// stored object's server-confirmed metadata.
func (c *Client) UploadBytes(ctx context.Context, key string, data []byte, opts ...storage.UploadOption) (*storage.ObjectInfo, error) {
	bucket, err := c.ensureBucket(ctx)
	if err != nil {
		return nil, err
	}
	return c.write(ctx, bucket, key, bytes.NewReader(data), opts)
}

func (c *Client) write(ctx context.Context, bucket bucketAPI, key string, r io.Reader, opts []storage.UploadOption) (*storage.ObjectInfo, error) {
	o := storage.ApplyUploadOptions(opts)
	obj := bucket.Object(key)

	if err := obj.Write(ctx, r, o.ContentType, o.Metadata); err != nil {
		return nil, c.translate("upload", key, err)
	}

	// Re-fetch attributes after the write so the returned info carries the
	// etag and timestamps the server actually recorded.
	attrs, err := obj.Attrs(ctx)
	if err != nil {
		return nil, c.translate("upload", key, err)
	}
	c.log.Debug("object uploaded", map[string]interface{}{
		logger.FieldKey:  key,
		logger.FieldSize: attrs.Size,
	})
	return toObjectInfo(key, attrs), nil
}

// DownloadBytes reads an object's full contents into memory.
func (c *Client) DownloadBytes(ctx context.Context, key string) ([]byte, error) {
	bucket, err := c.ensureBucket(ctx)
	if err != nil {
		return nil, err
	}
	data, err := bucket.Object(key).Read(ctx)
	if err != nil {
		return nil, c.translate("download", key, err)
	}
	return data, nil
}

// List returns metadata for all objects whose names begin with prefix.
func (c *Client) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	bucket, err := c.ensureBucket(ctx)
	if err != nil {
		return nil, err
	}

	var infos []storage.ObjectInfo
	it := bucket.Objects(ctx, prefix)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, c.translate("list", prefix, err)
		}
		infos = append(infos, *toObjectInfo(attrs.Key, attrs))
	}
	return infos, nil
}

// Delete removes an object. Deleting a missing object is an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	bucket, err := c.ensureBucket(ctx)
	if err != nil {
		return err
	}
	if err := bucket.Object(key).Delete(ctx); err != nil {
		return c.translate("delete", key, err)
	}
	return nil
}

// Head returns an object's metadata, or (nil, nil) when the object does
// not exist.
func (c *Client) Head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	bucket, err := c.ensureBucket(ctx)
	if err != nil {
		return nil, err
	}
	attrs, err := bucket.Object(key).Attrs(ctx)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, c.translate("head", key, err)
	}
	return toObjectInfo(key, attrs), nil
}

// translate maps SDK errors onto the application error taxonomy.
func (c *Client) translate(op, key string, err error) error {
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		return apperrors.NotFound("object", key).WithCause(err)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 401, 403:
			return apperrors.Forbidden("access to bucket denied").WithCause(err)
		case 404:
			return apperrors.NotFound("object", key).WithCause(err)
		}
	}

	c.log.Error("gcs operation failed", map[string]interface{}{
		"operation":        op,
		logger.FieldKey:    key,
		logger.FieldBucket: c.cfg.Bucket,
		"error":            err.Error(),
	})
	return apperrors.ExternalServiceError("gcs "+op, err)
}

func toObjectInfo(key string, attrs *objectAttrs) *storage.ObjectInfo {
	return &storage.ObjectInfo{
		Key:         key,
		Size:        attrs.Size,
		ETag:        attrs.ETag,
		UpdatedAt:   attrs.Updated,
		ContentType: attrs.ContentType,
		Metadata:    attrs.Metadata,
	}
}
