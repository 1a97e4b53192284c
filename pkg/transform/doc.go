// Package transform defines Transform, the immutable descriptor of a typed,
// pure function node: an ordered list of input type tags (each with an
// optional default value), an ordered list of output type tags, and an
// algorithm that turns one into the other. A Caller drives the two-phase
// feed/call protocol: feed inputs in declared order, then Call to obtain
// one Result per declared output.
package transform
