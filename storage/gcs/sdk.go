package gcs

import (
	"context"
	"io"
	"time"

	gstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Narrow seams over the cloud SDK so the client can be exercised against
// in-memory fakes. Sentinel errors from the SDK (notably ErrObjectNotExist
// and iterator.Done) pass through unchanged.

type gcsAPI interface {
	Bucket(name string) bucketAPI
	Close() error
}

type bucketAPI interface {
	Object(key string) objectAPI
	Objects(ctx context.Context, prefix string) objectIterator
}

type objectAPI interface {
	Write(ctx context.Context, r io.Reader, contentType string, metadata map[string]string) error
	Attrs(ctx context.Context) (*objectAttrs, error)
	Read(ctx context.Context) ([]byte, error)
	Delete(ctx context.Context) error
}

type objectIterator interface {
	// Next returns the next object's attributes, or iterator.Done when
	// exhausted. Listing entries carry their key in objectAttrs.Key.
	Next() (*objectAttrs, error)
}

// objectAttrs is the subset of object metadata the client consumes.
type objectAttrs struct {
	Key         string
	Size        int64
	ETag        string
	Updated     time.Time
	ContentType string
	Metadata    map[string]string
}

// sdkClient adapts *storage.Client from cloud.google.com/go/storage.
type sdkClient struct {
	client *gstorage.Client
}

func newSDKClient(ctx context.Context, opts ...option.ClientOption) (gcsAPI, error) {
	client, err := gstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &sdkClient{client: client}, nil
}

func (s *sdkClient) Bucket(name string) bucketAPI {
	return &sdkBucket{bucket: s.client.Bucket(name)}
}

func (s *sdkClient) Close() error {
	return s.client.Close()
}

type sdkBucket struct {
	bucket *gstorage.BucketHandle
}

func (b *sdkBucket) Object(key string) objectAPI {
	return &sdkObject{object: b.bucket.Object(key)}
}

func (b *sdkBucket) Objects(ctx context.Context, prefix string) objectIterator {
	it := b.bucket.Objects(ctx, &gstorage.Query{Prefix: prefix})
	return &sdkIterator{it: it}
}

type sdkObject struct {
	object *gstorage.ObjectHandle
}

func (o *sdkObject) Write(ctx context.Context, r io.Reader, contentType string, metadata map[string]string) error {
	w := o.object.NewWriter(ctx)
	w.ContentType = contentType
	if len(metadata) > 0 {
		w.Metadata = metadata
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (o *sdkObject) Attrs(ctx context.Context) (*objectAttrs, error) {
	attrs, err := o.object.Attrs(ctx)
	if err != nil {
		return nil, err
	}
	return fromSDKAttrs(attrs), nil
}

func (o *sdkObject) Read(ctx context.Context) ([]byte, error) {
	r, err := o.object.NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (o *sdkObject) Delete(ctx context.Context) error {
	return o.object.Delete(ctx)
}

type sdkIterator struct {
	it *gstorage.ObjectIterator
}

func (s *sdkIterator) Next() (*objectAttrs, error) {
	attrs, err := s.it.Next()
	if err != nil {
		return nil, err
	}
	return fromSDKAttrs(attrs), nil
}

func fromSDKAttrs(attrs *gstorage.ObjectAttrs) *objectAttrs {
	return &objectAttrs{
		Key:         attrs.Name,
		Size:        attrs.Size,
		ETag:        attrs.Etag,
		Updated:     attrs.Updated,
		ContentType: attrs.ContentType,
		Metadata:    attrs.Metadata,
	}
}
