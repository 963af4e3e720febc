// Package command defines the calllog CLI using urfave/cli/v2.
//
//   - root.go: application, global flags, configuration loading
//   - mask.go: mask secrets in a JSON document
//   - duration.go: format seconds the way call records do
//   - demo.go: run an instrumented calculator against the configured logs
//   - config.go: show and validate the effective configuration
//   - watch.go: long-running mode with hot reload and /metrics
package command
