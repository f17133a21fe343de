// Package codec turns fragment trees into file contents and back.
//
// All encoders walk mappings in key order, so the first-seen key position
// established during merging is what ends up on disk. JSON and YAML can be
// parsed back into trees; JavaScript modules and line files are write-only.
//
// JSON failures surface as JSON_PARSE / JSON_STRINGIFY coded errors that
// keep the underlying message, for callers that want to handle them.
package codec
