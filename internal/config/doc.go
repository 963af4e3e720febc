// Package config defines the calllog configuration.
//
//   - spec.go: Config struct definition
//   - default.go: Default configuration values
//   - load.go: Loading from file and environment via confloader
//   - verify.go: Validation and normalization
//   - sanitize.go: Masked view for display
//
// Example file:
//
//	log:
//	  level: info
//	  file: outputs/logs/logs.log
//	  maxbytes: 10485760
//	  backups: 5
//	  console: true
//	  color: auto
//	redact:
//	  keys: [password, api_key]
//	metrics:
//	  addr: 127.0.0.1:9464
package config
