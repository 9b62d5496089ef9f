// Package storage defines a provider-agnostic object storage contract and a
// named client registry.
//
// ObjectClient is the six-operation contract every backend implements:
// UploadFile, UploadBytes, DownloadBytes, List, Delete and Head. Backends
// live in subpackages (gcs, s3, local) and announce themselves by calling
// RegisterFactory from an explicit Register function; applications choose
// which backends to link by calling those Register functions from their
// composition root.
//
// Two registries cooperate:
//
//   - the factory registry maps provider names ("gcs", "s3", "local") to
//     constructors, so New can build a client from Config alone;
//   - the client registry maps application-chosen names to constructed
//     clients, caching each client after first use so repeated Client calls
//     return the same instance.
//
// Error classification helpers (IsNotFound, IsConfigurationError,
// IsPermissionDenied, IsDependencyUnavailable) let callers branch on failure
// categories without importing backend packages.
package storage
