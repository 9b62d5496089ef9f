// Package local implements the object storage contract on the local
// filesystem. Object attributes that the filesystem cannot carry (content
// type, custom metadata, etag) live in a JSON sidecar next to each object.
// Useful for development and tests that want real I/O without a cloud
// dependency.
package local

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "github.com/siri1404/OSPSD-Spring-26/errors"
	"github.com/siri1404/OSPSD-Spring-26/logger"
	"github.com/siri1404/OSPSD-Spring-26/storage"
)

const metaSuffix = ".meta.json"

// Register makes the local backend available to the storage factory
// registry. Call it from the application's composition root.
func Register() {
	storage.RegisterFactory(storage.ProviderLocal, func(cfg *storage.Config, log *logger.Logger) (storage.ObjectClient, error) {
		return NewClient(cfg.BasePath, log)
	})
}

// Client is a filesystem backed ObjectClient rooted at a base directory.
type Client struct {
	basePath string
	log      *logger.Logger
}

var _ storage.ObjectClient = (*Client)(nil)

// NewClient creates the base directory if needed and returns a client.
func NewClient(basePath string, log *logger.Logger) (*Client, error) {
	if basePath == "" {
		return nil, apperrors.Configuration("local storage base path is empty")
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("local: resolve base path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("local: create base directory: %w", err)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Client{basePath: abs, log: log.WithComponent("storage.local")}, nil
}

// objectMeta is the sidecar document stored next to each object.
type objectMeta struct {
	ETag        string            `json:"etag"`
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// resolve maps a key onto a path under the base directory, rejecting keys
// that would escape it.
func (c *Client) resolve(key string) (string, error) {
	if key == "" || strings.HasSuffix(key, metaSuffix) {
		return "", apperrors.InvalidInput("key", "invalid object key")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", apperrors.InvalidInput("key", "key escapes storage root")
	}
	return filepath.Join(c.basePath, clean), nil
}

// UploadFile copies a local file into the store.
func (c *Client) UploadFile(ctx context.Context, key, path string, opts ...storage.UploadOption) (*storage.ObjectInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NotFound("file", path).WithCause(err)
		}
		return nil, apperrors.Internal(err)
	}
	defer f.Close()

	return c.write(key, f, storage.ApplyUploadOptions(opts))
}

// UploadBytes writes an in-memory payload into the store.
func (c *Client) UploadBytes(ctx context.Context, key string, data []byte, opts ...storage.UploadOption) (*storage.ObjectInfo, error) {
	return c.write(key, bytes.NewReader(data), storage.ApplyUploadOptions(opts))
}

func (c *Client) write(key string, r io.Reader, opts storage.UploadOptions) (*storage.ObjectInfo, error) {
	path, err := c.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("local: create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("local: create file: %w", err)
	}

	hash := sha256.New()
	size, err := io.Copy(f, io.TeeReader(r, hash))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("local: write file: %w", err)
	}

	meta := objectMeta{
		ETag:        hex.EncodeToString(hash.Sum(nil)),
		ContentType: opts.ContentType,
		Metadata:    opts.Metadata,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := writeMeta(path, meta); err != nil {
		return nil, err
	}

	c.log.Debug("object stored", map[string]interface{}{
		logger.FieldKey:  key,
		logger.FieldSize: size,
	})
	return &storage.ObjectInfo{
		Key:         key,
		Size:        size,
		ETag:        meta.ETag,
		UpdatedAt:   meta.UpdatedAt,
		ContentType: meta.ContentType,
		Metadata:    meta.Metadata,
	}, nil
}

// DownloadBytes reads an object's full contents.
func (c *Client) DownloadBytes(ctx context.Context, key string) ([]byte, error) {
	path, err := c.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NotFound("object", key).WithCause(err)
		}
		return nil, apperrors.Internal(err)
	}
	return data, nil
}

// List returns metadata for all stored objects beginning with prefix,
// sorted lexicographically by key. Sidecar files are never listed.
func (c *Client) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var infos []storage.ObjectInfo
	err := filepath.WalkDir(c.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, metaSuffix) {
			return nil
		}
		rel, err := filepath.Rel(c.basePath, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		meta, err := readMeta(path)
		if err != nil {
			return err
		}
		infos = append(infos, storage.ObjectInfo{
			Key:         key,
			Size:        fi.Size(),
			ETag:        meta.ETag,
			UpdatedAt:   meta.UpdatedAt,
			ContentType: meta.ContentType,
			Metadata:    meta.Metadata,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("local: list objects: %w", err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// Delete removes an object and its sidecar. Deleting a missing object is
// an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	path, err := c.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperrors.NotFound("object", key).WithCause(err)
		}
		return apperrors.Internal(err)
	}
	if err := os.Remove(path + metaSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
		return apperrors.Internal(err)
	}
	return nil
}

// Head returns an object's metadata, or (nil, nil) when the object does
// not exist.
func (c *Client) Head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	path, err := c.resolve(key)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, apperrors.Internal(err)
	}

	meta, err := readMeta(path)
	if err != nil {
		return nil, err
	}
	return &storage.ObjectInfo{
		Key:         key,
		Size:        fi.Size(),
		ETag:        meta.ETag,
		UpdatedAt:   meta.UpdatedAt,
		ContentType: meta.ContentType,
		Metadata:    meta.Metadata,
	}, nil
}

func writeMeta(path string, meta objectMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("local: encode metadata: %w", err)
	}
	if err := os.WriteFile(path+metaSuffix, data, 0o640); err != nil {
		return fmt.Errorf("local: write metadata: %w", err)
	}
	return nil
}

// readMeta loads the sidecar for an object. A missing sidecar is tolerated
// so that files dropped into the directory by hand still resolve.
func readMeta(path string) (objectMeta, error) {
	var meta objectMeta
	data, err := os.ReadFile(path + metaSuffix)
	if errors.Is(err, os.ErrNotExist) {
		return meta, nil
	}
	if err != nil {
		return meta, fmt.Errorf("local: read metadata: %w", err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("local: decode metadata: %w", err)
	}
	return meta, nil
}
