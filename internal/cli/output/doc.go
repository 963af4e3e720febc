// Package output formats command results for the calllog CLI.
//
// Three formats are supported:
//
//   - table: aligned columns; nested maps flatten to dotted keys
//   - json: indented JSON
//   - yaml: YAML via gopkg.in/yaml.v3
package output
