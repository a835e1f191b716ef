// Package version carries build metadata for meetverdict binaries.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/meetverdict/version.Version=1.2.0"
//
// Unset values fall back to the module build info recorded by the Go
// toolchain.
package version
