package registry

import (
	"errors"
	"testing"

	"github.com/cakeflow/cake/pkg/transform"
	"github.com/cakeflow/cake/pkg/value"
)

func one(name string) *transform.Transform {
	t, err := transform.NewConstant(name, []value.Value{value.NewNumber(1)})
	if err != nil {
		panic(err)
	}
	return t
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	if err := r.Register(one("one")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := r.Lookup("one")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.Name != "one" {
		t.Fatalf("got %q", got.Name)
	}
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	r := New()
	if err := r.Register(one("dup")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := r.Register(one("dup"))
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestLookupMissing(t *testing.T) {
	r := New()
	if _, err := r.Lookup("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNamesSorted(t *testing.T) {
	r := New()
	r.MustRegister(one("zeta"))
	r.MustRegister(one("alpha"))
	names := r.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Fatalf("unexpected order: %v", names)
	}
}
