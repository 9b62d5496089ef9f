package local

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/siri1404/OSPSD-Spring-26/logger"
	"github.com/siri1404/OSPSD-Spring-26/storage"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(t.TempDir(), logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	info, err := c.UploadBytes(ctx, "docs/readme.md", []byte("# hi"),
		storage.WithContentType("text/markdown"),
		storage.WithMetadata(map[string]string{"team": "infra"}))
	if err != nil {
		t.Fatalf("UploadBytes: %v", err)
	}
	if info.Size != 4 {
		t.Errorf("Size = %d, want 4", info.Size)
	}
	if info.ETag == "" {
		t.Error("expected content-derived etag")
	}

	data, err := c.DownloadBytes(ctx, "docs/readme.md")
	if err != nil {
		t.Fatalf("DownloadBytes: %v", err)
	}
	if string(data) != "# hi" {
		t.Errorf("data = %q", data)
	}

	head, err := c.Head(ctx, "docs/readme.md")
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if head == nil {
		t.Fatal("Head returned nil for existing object")
	}
	if head.ETag != info.ETag {
		t.Errorf("Head etag %q != upload etag %q", head.ETag, info.ETag)
	}
	if head.ContentType != "text/markdown" {
		t.Errorf("ContentType = %q", head.ContentType)
	}
	if !reflect.DeepEqual(head.Metadata, map[string]string{"team": "infra"}) {
		t.Errorf("Metadata = %v", head.Metadata)
	}
}

func TestETagChangesWithContent(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	first, err := c.UploadBytes(ctx, "k", []byte("one"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.UploadBytes(ctx, "k", []byte("two"))
	if err != nil {
		t.Fatal(err)
	}
	if first.ETag == second.ETag {
		t.Error("etag did not change when content changed")
	}
}

func TestUploadFile(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "src.txt")
	if err := os.WriteFile(src, []byte("from disk"), 0o600); err != nil {
		t.Fatal(err)
	}

	info, err := c.UploadFile(ctx, "imported/src.txt", src)
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if info.Size != int64(len("from disk")) {
		t.Errorf("Size = %d", info.Size)
	}

	if _, err := c.UploadFile(ctx, "k", "/no/such/path"); !storage.IsNotFound(err) {
		t.Errorf("expected not-found for missing source, got %v", err)
	}
}

func TestDownload_NotFound(t *testing.T) {
	c := newTestClient(t)

	_, err := c.DownloadBytes(context.Background(), "missing")
	if !storage.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestHead_Missing(t *testing.T) {
	c := newTestClient(t)

	info, err := c.Head(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if info != nil {
		t.Errorf("info = %+v, want nil", info)
	}
}

func TestDelete(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if _, err := c.UploadBytes(ctx, "k", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "k"); !storage.IsNotFound(err) {
		t.Errorf("expected not-found on second delete, got %v", err)
	}
}

func TestList_ExcludesSidecars(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for _, key := range []string{"a/1", "a/2", "b/3"} {
		if _, err := c.UploadBytes(ctx, key, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}

	infos, err := c.List(ctx, "a/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	keys := make([]string, len(infos))
	for i, info := range infos {
		keys[i] = info.Key
	}
	if !reflect.DeepEqual(keys, []string{"a/1", "a/2"}) {
		t.Errorf("keys = %v", keys)
	}

	all, err := c.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all = %+v, sidecars must not be listed", all)
	}
}

func TestList_EntriesCarryAttributes(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	up, err := c.UploadBytes(ctx, "a/1", []byte("content"),
		storage.WithContentType("text/plain"))
	if err != nil {
		t.Fatal(err)
	}

	infos, err := c.List(ctx, "a/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("len(infos) = %d, want 1", len(infos))
	}
	if infos[0].Size != int64(len("content")) {
		t.Errorf("Size = %d", infos[0].Size)
	}
	if infos[0].ETag != up.ETag {
		t.Errorf("ETag = %q, want %q", infos[0].ETag, up.ETag)
	}
	if infos[0].ContentType != "text/plain" {
		t.Errorf("ContentType = %q", infos[0].ContentType)
	}
}

func TestKeyEscapeRejected(t *testing.T) {
	c := newTestClient(t)

	for _, key := range []string{"../outside", "/etc/passwd", ""} {
		if _, err := c.DownloadBytes(context.Background(), key); err == nil {
			t.Errorf("key %q: expected error", key)
		}
	}
}

func TestHead_FileWithoutSidecar(t *testing.T) {
	c := newTestClient(t)

	// A file dropped into the directory by hand has no sidecar.
	if err := os.WriteFile(filepath.Join(c.basePath, "manual.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	info, err := c.Head(context.Background(), "manual.txt")
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if info == nil || info.Size != 1 {
		t.Errorf("info = %+v", info)
	}
}
