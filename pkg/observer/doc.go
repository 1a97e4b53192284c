// Package observer provides an event-driven observer pattern for dataflow
// engine monitoring.
//
// # Overview
//
// Library consumers can register Observers to react to compute and
// transform lifecycle events -- sink resolution starting/ending, a
// transform's algorithm running, cache hits and misses -- without coupling
// the engine to any particular metrics or logging backend.
//
// # Basic usage
//
//	mgr := observer.NewManager()
//	mgr.Register(observer.NewConsoleObserver())
//	ev := compute.New(graph, compute.WithObserver(mgr))
//
// # Thread safety
//
// Manager.Notify dispatches to every registered Observer in its own
// goroutine and recovers from observer panics, so a misbehaving observer
// can neither block nor crash the engine it is watching.
package observer
