// Package logging provides structured logging with context propagation for
// the dataflow engine. It wraps the standard library's log/slog, adding
// fluent WithX(...) chaining for the fields Compute and the Builder care
// about: transform index/name, sink id, and attached errors.
//
// # Basic usage
//
//	logger := logging.New(logging.DefaultConfig())
//	logger.WithSink(3).WithTransform(7, "plus1").Debug("computing")
//
// A *Logger can be threaded through a context.Context with WithContext and
// recovered with FromContext, so deeply nested recursive calls (such as
// Compute's dependency fan-out) don't need to pass a logger as an explicit
// parameter at every call site.
package logging
