package di

// Names defines the component keys used by the composition root.
// Projects embed this struct in their own name sets when they add
// components beyond the base layer.
type Names struct {
	// Core infrastructure
	Config string
	Logger string

	// Storage
	Storage        string
	StorageClient  string
	StorageFactory string
}

// Base contains the component names for the base layer.
var Base = Names{
	Config: "config",
	Logger: "logger",

	Storage:        "storage",
	StorageClient:  "storage_client",
	StorageFactory: "storage_factory",
}
