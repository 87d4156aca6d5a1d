// Package version reports build metadata for extsort.
//
// Values come from -ldflags when the release build sets them:
//
//	-ldflags "-X github.com/dendrascience/extsort/version.Version=v1.0.0 -X github.com/dendrascience/extsort/version.Commit=abc123 -X github.com/dendrascience/extsort/version.Date=2023-01-01T00:00:00Z"
//
// and otherwise from runtime/debug build info, which carries the module
// version for `go install` builds and VCS stamps for local builds.
package version
