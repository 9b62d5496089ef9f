// Package testutil provides testing utilities for the storage module.
//
// It includes an in-memory storage component that implements both
// component.Component and testutil.TestComponent interfaces.
//
// # Quick Start
//
//	store := testutil.NewComponent()
//	testutil.T(t).Setup(store)
//
//	// Use store.Client() to access the storage.ObjectClient interface
//	store.Client().UploadBytes(ctx, "path/file.txt", []byte("hello"))
package testutil
