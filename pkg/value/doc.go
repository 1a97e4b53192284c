// Package value defines the tagged-union value representation shared by every
// transform in the dataflow graph. It is a thin, typed wrapper over
// zclconf/go-cty: cty already gives us a closed set of variants plus a type
// tag derived purely from the variant and an equality-based compatibility
// relation, which is exactly what the graph's edge-typing rules need.
package value
