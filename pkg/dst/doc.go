// Package dst implements the dataflow graph's data model: transforms keyed
// by stable indices, edges between typed ports, named output sinks, and a
// per-output result cache. Graph exposes the mutating Builder API
// (AddTransform, Connect, AttachOutput, ...) with cycle prevention and type
// checking, plus read-only Iterators for dependency traversal: deterministic
// ordering, sentinel errors, and cycle detection via a forward-reachability
// DFS over a mutable, typed port graph.
package dst
