package fixtures

import (
	"context"
	"testing"

	storagetest "github.com/siri1404/OSPSD-Spring-26/storage/testutil"
)

func TestSeed(t *testing.T) {
	store := storagetest.NewComponent()
	ctx := context.Background()
	if err := store.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer store.Stop(ctx)

	objects := TextObjects()
	if err := Seed(ctx, store, objects); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	entries, err := store.List(ctx, "docs/")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("docs/ entries = %+v, want 2", entries)
	}

	for _, obj := range objects {
		data, err := store.DownloadBytes(ctx, obj.Key)
		if err != nil {
			t.Fatalf("DownloadBytes(%s): %v", obj.Key, err)
		}
		if string(data) != string(obj.Data) {
			t.Errorf("%s content mismatch", obj.Key)
		}
	}
}
