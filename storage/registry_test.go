package storage

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClient is a minimal in-package ObjectClient for registry tests.
type fakeClient struct {
	id string
}

func (f *fakeClient) UploadFile(ctx context.Context, key, path string, opts ...UploadOption) (*ObjectInfo, error) {
	return &ObjectInfo{Key: key, UpdatedAt: time.Now()}, nil
}

func (f *fakeClient) UploadBytes(ctx context.Context, key string, data []byte, opts ...UploadOption) (*ObjectInfo, error) {
	return &ObjectInfo{Key: key, Size: int64(len(data)), UpdatedAt: time.Now()}, nil
}

func (f *fakeClient) DownloadBytes(ctx context.Context, key string) ([]byte, error) {
	return bytes.Clone([]byte(f.id)), nil
}

func (f *fakeClient) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	return nil, nil
}

func (f *fakeClient) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeClient) Head(ctx context.Context, key string) (*ObjectInfo, error) {
	return nil, nil
}

func TestClientRegistry_CachesClient(t *testing.T) {
	t.Cleanup(ResetClients)
	ResetClients()

	calls := 0
	RegisterClient("primary", func() (ObjectClient, error) {
		calls++
		return &fakeClient{id: "primary"}, nil
	})

	first, err := Client("primary")
	if err != nil {
		t.Fatalf("Client: %v", err)
	}
	second, err := Client("primary")
	if err != nil {
		t.Fatalf("Client: %v", err)
	}
	if first != second {
		t.Error("expected cached client to be returned on second call")
	}
	if calls != 1 {
		t.Errorf("factory calls = %d, want 1", calls)
	}
}

func TestClientRegistry_UnregisteredName(t *testing.T) {
	t.Cleanup(ResetClients)
	ResetClients()

	RegisterClient("known", func() (ObjectClient, error) {
		return &fakeClient{}, nil
	})

	_, err := Client("missing")
	if err == nil {
		t.Fatal("expected error for unregistered name")
	}
	if !IsConfigurationError(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestClientRegistry_FactoryErrorNotCached(t *testing.T) {
	t.Cleanup(ResetClients)
	ResetClients()

	calls := 0
	RegisterClient("flaky", func() (ObjectClient, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("boom")
		}
		return &fakeClient{}, nil
	})

	if _, err := Client("flaky"); err == nil {
		t.Fatal("expected first call to fail")
	}
	if _, err := Client("flaky"); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls != 2 {
		t.Errorf("factory calls = %d, want 2", calls)
	}
}

func TestClientRegistry_ReRegisterDropsCache(t *testing.T) {
	t.Cleanup(ResetClients)
	ResetClients()

	RegisterClient(DefaultName, func() (ObjectClient, error) {
		return &fakeClient{id: "old"}, nil
	})
	old, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	RegisterClient(DefaultName, func() (ObjectClient, error) {
		return &fakeClient{id: "new"}, nil
	})
	fresh, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if old == fresh {
		t.Error("re-registration should drop the cached client")
	}
}

func TestClientRegistry_Unregister(t *testing.T) {
	t.Cleanup(ResetClients)
	ResetClients()

	RegisterClient("temp", func() (ObjectClient, error) {
		return &fakeClient{}, nil
	})
	if _, err := Client("temp"); err != nil {
		t.Fatalf("Client: %v", err)
	}

	UnregisterClient("temp")
	if _, err := Client("temp"); err == nil {
		t.Fatal("expected error after unregister")
	}
}

func TestClientRegistry_ConcurrentSingleConstruction(t *testing.T) {
	t.Cleanup(ResetClients)
	ResetClients()

	var mu sync.Mutex
	calls := 0
	RegisterClient("shared", func() (ObjectClient, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return &fakeClient{}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Client("shared"); err != nil {
				t.Errorf("Client: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("factory calls = %d, want 1", calls)
	}
}
