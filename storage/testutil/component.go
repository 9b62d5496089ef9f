package testutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/siri1404/OSPSD-Spring-26/component"
	apperrors "github.com/siri1404/OSPSD-Spring-26/errors"
	"github.com/siri1404/OSPSD-Spring-26/storage"
	"github.com/siri1404/OSPSD-Spring-26/testutil"
)

// memObject holds a stored object's data and metadata.
type memObject struct {
	data        []byte
	contentType string
	metadata    map[string]string
	etag        string
	modTime     time.Time
}

// Component is a test storage component backed by an in-memory map.
// It implements component.Component, testutil.TestComponent, and
// storage.ObjectClient, honoring the same error contract as the real
// backends: downloads and deletes of missing objects fail with not-found
// while Head reports absence as (nil, nil).
type Component struct {
	objects map[string]*memObject
	gen     int
	started bool
	mu      sync.RWMutex
}

var _ component.Component = (*Component)(nil)
var _ testutil.TestComponent = (*Component)(nil)
var _ storage.ObjectClient = (*Component)(nil)

// NewComponent creates a new in-memory storage test component.
func NewComponent() *Component {
	return &Component{}
}

// Client returns the component itself as a storage.ObjectClient, or nil
// when not started.
func (c *Component) Client() storage.ObjectClient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.started {
		return nil
	}
	return c
}

// --- component.Component ---

func (c *Component) Name() string { return "storage-test" }

func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return errors.New("component already started")
	}
	c.objects = make(map[string]*memObject)
	c.started = true
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects = nil
	c.started = false
	return nil
}

func (c *Component) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.started {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// --- testutil.TestComponent ---

func (c *Component) Reset(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return errors.New("component not started")
	}
	c.objects = make(map[string]*memObject)
	return nil
}

func (c *Component) Snapshot(_ context.Context) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.started {
		return nil, errors.New("component not started")
	}
	snap := make(map[string]*memObject, len(c.objects))
	for k, v := range c.objects {
		snap[k] = v.clone()
	}
	return snap, nil
}

func (c *Component) Restore(_ context.Context, snap interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return errors.New("component not started")
	}
	s, ok := snap.(map[string]*memObject)
	if !ok {
		return fmt.Errorf("invalid snapshot type: expected map[string]*memObject, got %T", snap)
	}
	c.objects = make(map[string]*memObject, len(s))
	for k, v := range s {
		c.objects[k] = v.clone()
	}
	return nil
}

func (o *memObject) clone() *memObject {
	cp := *o
	cp.data = append([]byte(nil), o.data...)
	cp.metadata = copyMetadata(o.metadata)
	return &cp
}

// --- storage.ObjectClient ---

func (c *Component) UploadFile(ctx context.Context, key, path string, opts ...storage.UploadOption) (*storage.ObjectInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NotFound("file", path).WithCause(err)
		}
		return nil, apperrors.Internal(err)
	}
	return c.UploadBytes(ctx, key, data, opts...)
}

func (c *Component) UploadBytes(_ context.Context, key string, data []byte, opts ...storage.UploadOption) (*storage.ObjectInfo, error) {
	o := storage.ApplyUploadOptions(opts)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	obj := &memObject{
		data:        append([]byte(nil), data...),
		contentType: o.ContentType,
		metadata:    copyMetadata(o.Metadata),
		etag:        fmt.Sprintf("mem-%d", c.gen),
		modTime:     time.Now(),
	}
	c.objects[key] = obj
	return obj.info(key), nil
}

func (c *Component) DownloadBytes(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	obj, ok := c.objects[key]
	if !ok {
		return nil, apperrors.NotFound("object", key)
	}
	return append([]byte(nil), obj.data...), nil
}

func (c *Component) List(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var keys []string
	for key := range c.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	infos := make([]storage.ObjectInfo, 0, len(keys))
	for _, key := range keys {
		infos = append(infos, *c.objects[key].info(key))
	}
	return infos, nil
}

func (c *Component) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.objects[key]; !ok {
		return apperrors.NotFound("object", key)
	}
	delete(c.objects, key)
	return nil
}

func (c *Component) Head(_ context.Context, key string) (*storage.ObjectInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	obj, ok := c.objects[key]
	if !ok {
		return nil, nil
	}
	return obj.info(key), nil
}

func (o *memObject) info(key string) *storage.ObjectInfo {
	return &storage.ObjectInfo{
		Key:         key,
		Size:        int64(len(o.data)),
		ETag:        o.etag,
		UpdatedAt:   o.modTime,
		ContentType: o.contentType,
		Metadata:    copyMetadata(o.metadata),
	}
}

func copyMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
