// Package main provides the entry point for calllog.
//
// calllog exercises the call logging library from the command line:
//
//   - Mask secrets in JSON documents
//   - Format durations the way call records do
//   - Run an instrumented demo against the configured log files
//   - Show and validate configuration
//   - Watch the configuration file and serve /metrics
//
// Usage:
//
//	calllog [global flags] command [flags] [args]
//	calllog -c calllog.yaml demo
//	echo '{"password":"x"}' | calllog -o json mask
package main
