// Package s3 implements the object storage contract on Amazon S3 and
// S3-compatible services such as MinIO.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	apperrors "github.com/siri1404/OSPSD-Spring-26/errors"
	"github.com/siri1404/OSPSD-Spring-26/logger"
	"github.com/siri1404/OSPSD-Spring-26/storage"
)

// Register makes the s3 backend available to the storage factory registry.
// Call it from the application's composition root.
func Register() {
	storage.RegisterFactory(storage.ProviderS3, func(cfg *storage.Config, log *logger.Logger) (storage.ObjectClient, error) {
		c := &Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		}
		c.ApplyDefaults()
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return NewClient(context.Background(), c, log)
	})
}

// s3API is the subset of the SDK client the storage client uses. Narrowed
// for fakes in tests.
type s3API interface {
	PutObject(ctx context.Context, in *awss3.PutObjectInput, opts ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *awss3.GetObjectInput, opts ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *awss3.HeadObjectInput, opts ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *awss3.DeleteObjectInput, opts ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *awss3.ListObjectsV2Input, opts ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
}

// Client is an S3 backed ObjectClient.
type Client struct {
	api    s3API
	bucket string
	log    *logger.Logger
}

var _ storage.ObjectClient = (*Client)(nil)

// NewClient builds an S3 client from the given config. Static credentials
// are used when provided; otherwise the default AWS credential chain applies.
func NewClient(ctx context.Context, cfg *Config, log *logger.Logger) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, apperrors.DependencyUnavailable("aws sdk", err)
	}

	var s3Opts []func(*awss3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.UsePathStyle = true
		})
	}

	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Client{
		api:    awss3.NewFromConfig(awsCfg, s3Opts...),
		bucket: cfg.Bucket,
		log:    log.WithComponent("storage.s3"),
	}, nil
}

// UploadFile streams a local file to the bucket.
func (c *Client) UploadFile(ctx context.Context, key, path string, opts ...storage.UploadOption) (*storage.ObjectInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NotFound("file", path).WithCause(err)
		}
		return nil, apperrors.Internal(err)
	}
	defer f.Close()

	return c.write(ctx, key, f, storage.ApplyUploadOptions(opts))
}

// UploadBytes writes an in-memory payload to the bucket.
func (c *Client) UploadBytes(ctx context.Context, key string, data []byte, opts ...storage.UploadOption) (*storage.ObjectInfo, error) {
	return c.write(ctx, key, bytes.NewReader(data), storage.ApplyUploadOptions(opts))
}

func (c *Client) write(ctx context.Context, key string, r io.Reader, opts storage.UploadOptions) (*storage.ObjectInfo, error) {
	in := &awss3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if opts.ContentType != "" {
		in.ContentType = aws.String(opts.ContentType)
	}
	if len(opts.Metadata) > 0 {
		in.Metadata = opts.Metadata
	}

	if _, err := c.api.PutObject(ctx, in); err != nil {
		return nil, c.translate("upload", key, err)
	}

	// Read the attributes back so the returned info carries the etag and
	// timestamp the service actually recorded.
	return c.head(ctx, key)
}

// DownloadBytes reads an object's full contents into memory.
func (c *Client) DownloadBytes(ctx context.Context, key string) ([]byte, error) {
	out, err := c.api.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, c.translate("download", key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// List returns metadata for all objects whose names begin with prefix.
// Listing entries carry the attributes the service reports in ListObjectsV2
// responses; content type and user metadata require a Head call.
func (c *Client) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	in := &awss3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	}

	var infos []storage.ObjectInfo
	for {
		out, err := c.api.ListObjectsV2(ctx, in)
		if err != nil {
			return nil, c.translate("list", prefix, err)
		}
		for _, obj := range out.Contents {
			info := storage.ObjectInfo{
				Key:  aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
				ETag: aws.ToString(obj.ETag),
			}
			if obj.LastModified != nil {
				info.UpdatedAt = *obj.LastModified
			}
			infos = append(infos, info)
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		in.ContinuationToken = out.NextContinuationToken
	}
	return infos, nil
}

// Delete removes an object. S3's DeleteObject succeeds on missing keys, so
// existence is checked first to keep missing-object deletes an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	info, err := c.Head(ctx, key)
	if err != nil {
		return err
	}
	if info == nil {
		return apperrors.NotFound("object", key)
	}

	if _, err := c.api.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return c.translate("delete", key, err)
	}
	return nil
}

// Head returns an object's metadata, or (nil, nil) when the object does
// not exist.
func (c *Client) Head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	info, err := c.head(ctx, key)
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	out, err := c.api.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, c.translate("head", key, err)
	}

	info := &storage.ObjectInfo{
		Key:         key,
		Size:        aws.ToInt64(out.ContentLength),
		ETag:        aws.ToString(out.ETag),
		ContentType: aws.ToString(out.ContentType),
		Metadata:    out.Metadata,
	}
	if out.LastModified != nil {
		info.UpdatedAt = *out.LastModified
	}
	return info, nil
}

// translate maps SDK errors onto the application error taxonomy.
func (c *Client) translate(op, key string, err error) error {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return apperrors.NotFound("object", key).WithCause(err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return apperrors.Forbidden("access to bucket denied").WithCause(err)
		case "NoSuchBucket":
			return apperrors.Configuration(fmt.Sprintf("bucket %q does not exist", c.bucket)).WithCause(err)
		}
	}

	c.log.Error("s3 operation failed", map[string]interface{}{
		"operation":        op,
		logger.FieldKey:    key,
		logger.FieldBucket: c.bucket,
		"error":            err.Error(),
	})
	return apperrors.ExternalServiceError("s3 "+op, err)
}
