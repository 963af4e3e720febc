// Package confloader loads configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Environment variables (CALLLOG_SECTION_KEY)
//  2. Configuration file (YAML)
//  3. Defaults supplied by the caller
//
// The first underscore of an environment name separates section from key
// and later underscores are dropped: CALLLOG_LOG_MAX_BYTES sets
// log.maxbytes. Configuration keys therefore contain no underscores.
//
// A Watcher reports writes to the configuration file, debounced, so
// callers can reload it.
package confloader
