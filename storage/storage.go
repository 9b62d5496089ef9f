// Package storage provides a provider-agnostic object storage client
// abstraction with pluggable backends.
package storage

import (
	"context"
	"time"

	apperrors "github.com/siri1404/OSPSD-Spring-26/errors"
)

// ObjectInfo contains metadata about a stored object. It is a snapshot of
// backend-reported state at call time, not a live handle; callers must not
// mutate it after construction.
type ObjectInfo struct {
	// Key is the storage path identifying the object.
	Key string

	// Size is the object size in bytes as reported by the backend.
	Size int64

	// ETag is the backend-assigned opaque version fingerprint.
	ETag string

	// UpdatedAt is the last-modified timestamp reported by the backend.
	UpdatedAt time.Time

	// ContentType is the MIME type of the object, if known.
	ContentType string

	// Metadata holds user-defined key/value pairs attached to the object.
	Metadata map[string]string
}

// UploadOptions collects optional attributes for upload operations.
type UploadOptions struct {
	ContentType string
	Metadata    map[string]string
}

// UploadOption configures an upload operation.
type UploadOption func(*UploadOptions)

// WithContentType sets the MIME type recorded on the uploaded object.
func WithContentType(contentType string) UploadOption {
	return func(o *UploadOptions) { o.ContentType = contentType }
}

// WithMetadata attaches user-defined key/value metadata to the uploaded object.
func WithMetadata(metadata map[string]string) UploadOption {
	return func(o *UploadOptions) { o.Metadata = metadata }
}

// ApplyUploadOptions folds a list of options into an UploadOptions value.
// Backend implementations call this at the top of their upload methods.
func ApplyUploadOptions(opts []UploadOption) UploadOptions {
	var o UploadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ObjectClient defines the capability set every storage backend must satisfy.
//
// Error contract: DownloadBytes and Delete return a NOT_FOUND error for
// missing objects, and UploadFile returns a NOT_FOUND error for a missing
// local file. Head is the deliberate exception: it reports a missing object
// by returning (nil, nil) rather than an error. Implementations must
// preserve this asymmetry.
type ObjectClient interface {
	// UploadFile reads the local file at localPath and uploads it under key.
	UploadFile(ctx context.Context, key, localPath string, opts ...UploadOption) (*ObjectInfo, error)

	// UploadBytes uploads an in-memory byte buffer under key. The returned
	// ObjectInfo reflects server-confirmed state after a metadata refresh,
	// not client-side assumptions.
	UploadBytes(ctx context.Context, key string, data []byte, opts ...UploadOption) (*ObjectInfo, error)

	// DownloadBytes returns the full content of the object at key.
	DownloadBytes(ctx context.Context, key string) ([]byte, error)

	// List returns metadata for all objects whose key starts with prefix.
	// An empty prefix matches every object. Ordering is backend-defined.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error

	// Head returns metadata for the object at key without fetching content.
	// A missing object yields (nil, nil).
	Head(ctx context.Context, key string) (*ObjectInfo, error)
}

// IsNotFound reports whether err signals a missing object or local file.
func IsNotFound(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeNotFound)
}

// IsConfigurationError reports whether err signals missing or invalid
// configuration (e.g. no bucket resolvable, no registered client factory).
func IsConfigurationError(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeConfiguration)
}

// IsPermissionDenied reports whether err signals a backend authorization
// failure.
func IsPermissionDenied(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeForbidden)
}

// IsDependencyUnavailable reports whether err signals that the backend SDK
// client could not be constructed.
func IsDependencyUnavailable(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeDependencyUnavailable)
}
