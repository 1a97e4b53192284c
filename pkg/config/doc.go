// Package config provides centralized, validated configuration for the
// dataflow engine: advisory resource ceilings a host checks before mutating
// the graph (the Builder itself never enforces them), and
// concurrency/timeout knobs the Compute evaluator applies.
//
// # Basic usage
//
//	cfg := config.Default()
//	ev := compute.New(graph, compute.WithConfig(cfg))
//
// Default/Development/Production/Testing return ready-to-use presets;
// Validate checks a Config's invariants; Clone deep-copies one so a caller
// can derive a variant without mutating the original.
package config
