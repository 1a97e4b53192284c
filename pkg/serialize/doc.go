// Package serialize converts a dst.Graph to and from a portable, diffable
// TOML document: transforms named by registry lookup (or inlined as
// constants), edges, output-sink attachments, and per-input default
// overrides, all in ascending-id order so that re-exporting an unchanged
// graph produces byte-identical text.
package serialize
