// Package builtins is a small library of illustrative transforms used by
// tests and the demo CLI: fixed arithmetic (get1, plus1, minus1) and a
// generic expression family backed by expr-lang/expr that lets a host
// register ad hoc arithmetic transforms from a string formula instead of
// writing Go for each one. None of this is part of the core invariant
// system; the evaluator never assumes any of these names exist.
package builtins
