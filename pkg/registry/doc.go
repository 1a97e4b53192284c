// Package registry provides the process-wide, thread-safe name-to-Transform
// lookup table used by serialization (to resolve Function references during
// import) and by hosts (to seed the set of transforms available for
// graph-building). It is built once at startup and treated as immutable
// thereafter; the core never mutates it.
package registry
