package value

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

// Type is the compatibility tag carried by every graph port. Two ports may be
// connected only if their types are Equal.
type Type = cty.Type

// Value is the tagged-union payload carried across an edge. Its Type is
// derived purely from the variant it holds.
type Value = cty.Value

var (
	// Number is the type tag of any value produced by NewNumber.
	Number = cty.Number
	// String is the type tag of any value produced by NewString.
	String = cty.String
	// Bool is the type tag of any value produced by NewBool.
	Bool = cty.Bool
)

// NewNumber wraps a float64 as a Number-typed Value.
func NewNumber(f float64) Value {
	return cty.NumberFloatVal(f)
}

// NewInt wraps an int64 as a Number-typed Value.
func NewInt(i int64) Value {
	return cty.NumberIntVal(i)
}

// NewString wraps a string as a String-typed Value.
func NewString(s string) Value {
	return cty.StringVal(s)
}

// NewBool wraps a bool as a Bool-typed Value.
func NewBool(b bool) Value {
	return cty.BoolVal(b)
}

// ListOf returns the list-of-elementType type tag, used for array-valued
// ports.
func ListOf(element Type) Type {
	return cty.List(element)
}

// Handle wraps an arbitrary Go value as an opaque capsule-typed Value, used
// for ports that carry shared handles (file descriptors, decoded buffers,
// and the like) the core never looks inside.
func Handle(name string, goValue interface{}) Value {
	goType := reflect.TypeOf(goValue)
	capsuleType := cty.Capsule(name, goType)
	ptr := reflect.New(goType)
	ptr.Elem().Set(reflect.ValueOf(goValue))
	return cty.CapsuleVal(capsuleType, ptr.Interface())
}

// Compatible reports whether two type tags may be connected by an edge. The
// core model is deliberately non-subtyping: compatibility is equality, full
// stop.
func Compatible(a, b Type) bool {
	return a.Equals(b)
}

// Float64 extracts the underlying float64 of a Number-typed Value. It panics
// if v is not a Number; callers must have already checked the type via
// Compatible or the transform's declared input types.
func Float64(v Value) float64 {
	f, _ := v.AsBigFloat().Float64()
	return f
}

// String_ extracts the underlying string of a String-typed Value.
func String_(v Value) string {
	return v.AsString()
}

// Bool_ extracts the underlying bool of a Bool-typed Value.
func Bool_(v Value) bool {
	return v.True()
}

// Describe renders a human-readable rendition of a value, used by logging
// and the CLI's result printer.
func Describe(v Value) string {
	if v.IsNull() {
		return "null"
	}
	return fmt.Sprintf("%#v", v)
}
