// Package fixtures provides reusable test data for storage tests.
package fixtures

import (
	"context"
	"fmt"

	"github.com/siri1404/OSPSD-Spring-26/storage"
)

// Object is a key/payload pair used to seed a storage backend.
type Object struct {
	Key         string
	Data        []byte
	ContentType string
}

// TextObjects returns a small deterministic set of text objects spanning
// several prefixes, useful for exercising List and Delete behavior.
func TextObjects() []Object {
	return []Object{
		{Key: "docs/readme.md", Data: []byte("# readme\n"), ContentType: "text/markdown"},
		{Key: "docs/guide.md", Data: []byte("# guide\n"), ContentType: "text/markdown"},
		{Key: "logs/2026-08-28.log", Data: []byte("started\n"), ContentType: "text/plain"},
		{Key: "data/blob.bin", Data: []byte{0x00, 0x01, 0x02, 0x03}, ContentType: "application/octet-stream"},
	}
}

// Seed uploads all objects to the client, failing on the first error.
func Seed(ctx context.Context, client storage.ObjectClient, objects []Object) error {
	for _, obj := range objects {
		opts := []storage.UploadOption{}
		if obj.ContentType != "" {
			opts = append(opts, storage.WithContentType(obj.ContentType))
		}
		if _, err := client.UploadBytes(ctx, obj.Key, obj.Data, opts...); err != nil {
			return fmt.Errorf("seed %s: %w", obj.Key, err)
		}
	}
	return nil
}
