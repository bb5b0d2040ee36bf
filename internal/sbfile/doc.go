// Package sbfile reads and writes the storyboard text format.
//
// The format is line oriented: every record is `(keyword value...)` with an
// optional trailing `# comment`. Load is deliberately tolerant: unknown
// keywords and malformed lines are preserved verbatim and passed through on
// rewrite, and missing keys fall back to configured defaults, so files
// written by newer or foreign tools survive an edit round trip. Save
// rewrites only the keys and structure it manages, keeps every preserved
// line untouched, and appends managed-but-absent keys at the end of the
// file.
package sbfile
