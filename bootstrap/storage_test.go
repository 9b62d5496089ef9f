package bootstrap

import (
	"context"
	"testing"

	"github.com/siri1404/OSPSD-Spring-26/storage"
	"github.com/siri1404/OSPSD-Spring-26/storage/local"
)

// Exercises the composition-root pattern: the application registers the
// backend factory and a named client during bootstrap, and business code
// resolves the client through the storage registry.
func TestAppWiresStorageClient(t *testing.T) {
	t.Cleanup(storage.ResetClients)
	storage.ResetClients()
	local.Register()

	cfg := newTestConfig("storage-app", "1.0.0")
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}

	storageCfg := &storage.Config{
		Provider: storage.ProviderLocal,
		BasePath: t.TempDir(),
		Enabled:  true,
	}
	comp := storage.NewComponent(storageCfg, app.Logger)
	if err := app.RegisterComponent(comp); err != nil {
		t.Fatalf("RegisterComponent: %v", err)
	}

	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		storage.RegisterClient(storage.DefaultName, func() (storage.ObjectClient, error) {
			return comp.Client(), nil
		})
		return nil
	})

	err = app.RunTask(context.Background(), func(ctx context.Context) error {
		client, err := storage.Default()
		if err != nil {
			return err
		}
		if _, err := client.UploadBytes(ctx, "greeting.txt", []byte("hello")); err != nil {
			return err
		}
		data, err := client.DownloadBytes(ctx, "greeting.txt")
		if err != nil {
			return err
		}
		if string(data) != "hello" {
			t.Errorf("data = %q", data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}
}
