// Package compute implements the parallel, memoized evaluator: given a
// sink, it walks the sink's dependency cone, recursively computing and
// caching each intermediate producer port, fanning dependencies of a
// single transform out across goroutines (via golang.org/x/sync/errgroup)
// and deduplicating concurrent identical in-flight computations for the
// same port (via golang.org/x/sync/singleflight) on top of the graph's
// cache slots.
package compute
