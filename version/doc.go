// Package version exposes build metadata for taskd.
//
// The variables are set at build time with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/taskd/version.Version=1.2.3 \
//	  -X github.com/ncobase/taskd/version.Revision=abc123 \
//	  -X 'github.com/ncobase/taskd/version.BuiltAt=$(date -u +%FT%TZ)'" ./cmd
//
// When they are left unset, GetVersionInfo falls back to the VCS stamp the
// Go toolchain embeds in the binary.
package version
