// Package bootstrap orchestrates application lifecycle for cloudstore
// services and tools.
//
// It provides typed configuration, component registration, dependency
// injection, and startup/shutdown hooks for rapid initialization.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.RegisterComponent(storage.NewComponent(&cfg.Storage, app.Logger))
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// The bootstrap package handles configuration validation, component
// initialization in dependency order, graceful shutdown on OS signals, and
// health aggregation. Backend factories and named storage clients are
// registered from OnConfigure callbacks, keeping the composition root in
// one place.
package bootstrap
