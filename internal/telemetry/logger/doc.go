// Package logger provides leveled, named loggers for calllog.
//
// This package wraps log/slog with a text formatter, a rotating file sink
// and attribute redaction:
//
//   - logger.go: Logger interface and slog-backed implementation
//   - handler.go: Text formatter, colorized for console, plain for files
//   - factory.go: Named loggers with rotating file and optional console output
//   - sink.go: Process-wide default sink, initialized once
//   - context.go: Logger, call ID and thread name propagation
//   - redact.go: Attribute masking
//   - hclog.go: Bridge for libraries that expect a go-hclog Logger
//
// Line format:
//
//	2006-01-02 15:04:05 - <name> - <LEVEL> - <message> [key=value ...] (<file>:<line>)
package logger
