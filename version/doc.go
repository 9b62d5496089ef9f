// Package version provides build version information embedding for
// cloudstore applications.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/siri1404/OSPSD-Spring-26/version.Version=1.0.0"
package version
