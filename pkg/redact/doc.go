// Package redact provides recursive secret masking for values about to be
// logged.
//
// A Masker walks maps, slices, arrays, structs and pointers and produces a
// structurally identical, JSON-serializable copy in which every mapping
// entry whose key is on the denylist is replaced by a fixed placeholder.
//
// Matching Rules:
//
//   - Keys are compared by exact string match (case-sensitive)
//   - Matching applies at any nesting depth
//   - Substrings do not match: "db_password" is not masked by "password"
//
// Output Shape:
//
//   - Mappings become map[string]any
//   - Sequences become []any (length and order preserved)
//   - Structs become mappings keyed by their json field names
//   - Primitives pass through, anything else is stringified
//
// Masking is idempotent and never fails.
package redact
