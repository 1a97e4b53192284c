package builtins

import (
	"testing"

	"github.com/cakeflow/cake/pkg/registry"
	"github.com/cakeflow/cake/pkg/value"
)

func TestRegisterArithmeticPopulatesRegistry(t *testing.T) {
	r := registry.New()
	if err := RegisterArithmetic(r); err != nil {
		t.Fatalf("RegisterArithmetic: %v", err)
	}

	for _, name := range []string{"get1", "plus1", "minus1", "add", "multiply", "concat"} {
		if _, err := r.Lookup(name); err != nil {
			t.Fatalf("expected %s registered: %v", name, err)
		}
	}
}

func TestPlus1AddsOne(t *testing.T) {
	r := registry.New()
	if err := RegisterArithmetic(r); err != nil {
		t.Fatalf("RegisterArithmetic: %v", err)
	}

	plus, _ := r.Lookup("plus1")
	c := plus.Start()
	if err := c.Feed(value.NewInt(4)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	results, err := c.Call()
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got := value.Float64(results[0].Value); got != 5 {
		t.Fatalf("expected 5, got %v", got)
	}
}

func TestGet1IsConstant(t *testing.T) {
	r := registry.New()
	if err := RegisterArithmetic(r); err != nil {
		t.Fatalf("RegisterArithmetic: %v", err)
	}
	g, _ := r.Lookup("get1")
	if !g.IsConstant() {
		t.Fatal("expected get1 to be a constant transform")
	}
	results, err := g.Start().Call()
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got := value.Float64(results[0].Value); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
}

func TestNewExpressionRejectsEmptyFormula(t *testing.T) {
	if _, err := NewExpression("bad", []string{"a"}, ""); err != ErrEmptyFormula {
		t.Fatalf("expected ErrEmptyFormula, got %v", err)
	}
}

func TestNewExpressionRejectsNoBindings(t *testing.T) {
	if _, err := NewExpression("bad", nil, "1+1"); err != ErrNoBindings {
		t.Fatalf("expected ErrNoBindings, got %v", err)
	}
}

func TestNewExpressionRejectsBadFormula(t *testing.T) {
	if _, err := NewExpression("bad", []string{"a"}, "a +++ 1"); err == nil {
		t.Fatal("expected compile error for malformed formula")
	}
}

func TestExpressionEvaluatesFormula(t *testing.T) {
	tr, err := NewExpression("scale", []string{"a", "b"}, "a*2+b")
	if err != nil {
		t.Fatalf("NewExpression: %v", err)
	}

	c := tr.Start()
	if err := c.Feed(value.NewNumber(3)); err != nil {
		t.Fatalf("Feed a: %v", err)
	}
	if err := c.Feed(value.NewNumber(1)); err != nil {
		t.Fatalf("Feed b: %v", err)
	}
	results, err := c.Call()
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got := value.Float64(results[0].Value); got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
}

func TestRegisterExpressionIntoRegistry(t *testing.T) {
	r := registry.New()
	if err := RegisterExpression(r, "double", []string{"x"}, "x*2"); err != nil {
		t.Fatalf("RegisterExpression: %v", err)
	}
	tr, err := r.Lookup("double")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	c := tr.Start()
	if err := c.Feed(value.NewNumber(21)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	results, err := c.Call()
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got := value.Float64(results[0].Value); got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}
}
