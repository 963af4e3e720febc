// Package buildinfo reports the version of the calllog binary.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/calllog-go/internal/infra/buildinfo.Version=v1.0.0"
//
// When they are not, Commit and BuildTime fall back to the VCS stamp the
// Go toolchain embeds, and GoVersion to the running runtime.
package buildinfo
