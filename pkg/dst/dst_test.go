package dst

import (
	"errors"
	"testing"

	"github.com/cakeflow/cake/pkg/transform"
	"github.com/cakeflow/cake/pkg/value"
)

func mustFunc(t *testing.T, name string, inputs []transform.Input, outputs []value.Type, run transform.Algorithm) *transform.Transform {
	t.Helper()
	tr, err := transform.NewFunction(name, inputs, outputs, run)
	if err != nil {
		t.Fatalf("NewFunction(%s): %v", name, err)
	}
	return tr
}

func get1(t *testing.T) *transform.Transform {
	t.Helper()
	tr, err := transform.NewConstant("get1", []value.Value{value.NewInt(1)})
	if err != nil {
		t.Fatalf("NewConstant: %v", err)
	}
	return tr
}

func plus1(t *testing.T) *transform.Transform {
	return mustFunc(t, "plus1", []transform.Input{{Type: value.Number}}, []value.Type{value.Number},
		func(in []value.Value) []transform.Result {
			return []transform.Result{transform.Ok(value.NewNumber(value.Float64(in[0]) + 1))}
		})
}

func minus1(t *testing.T) *transform.Transform {
	return mustFunc(t, "minus1", []transform.Input{{Type: value.Number}}, []value.Type{value.Number},
		func(in []value.Value) []transform.Result {
			return []transform.Result{transform.Ok(value.NewNumber(value.Float64(in[0]) - 1))}
		})
}

func imageSource(t *testing.T) *transform.Transform {
	return mustFunc(t, "image", nil, []value.Type{value.ListOf(value.Number)},
		func(in []value.Value) []transform.Result {
			return []transform.Result{transform.Ok(value.Value{})}
		})
}

// TestLinearChain mirrors the S1 end-to-end scenario: a -> b, a -> c -> d,
// a -> c -> e, checking the graph shape is buildable; Compute itself is
// exercised in package compute.
func TestLinearChain(t *testing.T) {
	g := New()
	a := g.AddTransform(get1(t))
	b := g.AddTransform(minus1(t))
	c := g.AddTransform(plus1(t))
	d := g.AddTransform(plus1(t))
	e := g.AddTransform(plus1(t))

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	must(g.Connect(Output{a, 0}, Input{b, 0}))
	must(g.Connect(Output{a, 0}, Input{c, 0}))
	must(g.Connect(Output{c, 0}, Input{d, 0}))
	must(g.Connect(Output{c, 0}, Input{e, 0}))

	out1 := g.CreateOutput()
	out2 := g.CreateOutput()
	must(g.AttachOutput(out1, Output{d, 0}))
	must(g.AttachOutput(out2, Output{b, 0}))

	deps, err := g.Dependencies(out1)
	if err != nil {
		t.Fatalf("Dependencies: %v", err)
	}
	if len(deps) != 3 {
		t.Fatalf("expected 3 transforms in cone of out1, got %v", deps)
	}
	if deps[0] != a {
		t.Fatalf("expected producer-first order, got %v", deps)
	}
	if deps[len(deps)-1] != d {
		t.Fatalf("expected sink's own transform last, got %v", deps)
	}
}

// TestTypeMismatchRejected mirrors S2.
func TestTypeMismatchRejected(t *testing.T) {
	g := New()
	img := g.AddTransform(imageSource(t))
	p := g.AddTransform(plus1(t))

	err := g.Connect(Output{img, 0}, Input{p, 0})
	if !errors.Is(err, ErrIncompatibleTypes) {
		t.Fatalf("expected ErrIncompatibleTypes, got %v", err)
	}
}

// TestCycleRejected mirrors S3.
func TestCycleRejected(t *testing.T) {
	g := New()
	a := g.AddTransform(plus1(t))
	b := g.AddTransform(plus1(t))

	if err := g.Connect(Output{a, 0}, Input{b, 0}); err != nil {
		t.Fatalf("first connect: %v", err)
	}
	err := g.Connect(Output{b, 0}, Input{a, 0})
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

// TestInputExclusivity mirrors S4.
func TestInputExclusivity(t *testing.T) {
	g := New()
	a := g.AddTransform(get1(t))
	b := g.AddTransform(get1(t))
	c := g.AddTransform(plus1(t))

	if err := g.Connect(Output{a, 0}, Input{c, 0}); err != nil {
		t.Fatalf("first connect: %v", err)
	}
	err := g.Connect(Output{b, 0}, Input{c, 0})
	if !errors.Is(err, ErrDuplicateEdge) {
		t.Fatalf("expected ErrDuplicateEdge, got %v", err)
	}
}

func TestRemoveTransformDetachesEdgesAndSinks(t *testing.T) {
	g := New()
	a := g.AddTransform(get1(t))
	b := g.AddTransform(plus1(t))
	if err := g.Connect(Output{a, 0}, Input{b, 0}); err != nil {
		t.Fatalf("connect: %v", err)
	}
	out := g.CreateOutput()
	if err := g.AttachOutput(out, Output{b, 0}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	g.RemoveTransform(b)

	if _, driven := g.drivenBy[Input{b, 0}]; driven {
		t.Fatal("expected edge into removed transform to be gone")
	}
	if _, ok := g.ResolveOutput(out); ok {
		t.Fatal("expected sink to be detached after its producer was removed")
	}
}

func TestDuplicateConnectAfterDisconnectSucceeds(t *testing.T) {
	g := New()
	a := g.AddTransform(get1(t))
	b := g.AddTransform(plus1(t))
	if err := g.Connect(Output{a, 0}, Input{b, 0}); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := g.Disconnect(Output{a, 0}, Input{b, 0}); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if err := g.Connect(Output{a, 0}, Input{b, 0}); err != nil {
		t.Fatalf("reconnect after disconnect should succeed: %v", err)
	}
}

func TestInvalidPortsRejected(t *testing.T) {
	g := New()
	a := g.AddTransform(get1(t))
	b := g.AddTransform(plus1(t))

	if err := g.Connect(Output{a, 7}, Input{b, 0}); !errors.Is(err, ErrInvalidOutput) {
		t.Fatalf("expected ErrInvalidOutput, got %v", err)
	}
	if err := g.Connect(Output{a, 0}, Input{b, 7}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWriteDefaultInvalidatesCache(t *testing.T) {
	g := New()
	p := g.AddTransform(plus1(t))
	slot := g.CacheSlot(Output{p, 0})
	slot.Set(value.NewNumber(99))

	if err := g.WriteDefault(p, 0, value.NewNumber(5)); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	if _, has := slot.Get(); has {
		t.Fatal("expected cache to be invalidated after WriteDefault")
	}
}

func TestWriteDefaultTypeMismatch(t *testing.T) {
	g := New()
	p := g.AddTransform(plus1(t))
	err := g.WriteDefault(p, 0, value.NewString("nope"))
	if !errors.Is(err, ErrDefaultTypeMismatch) {
		t.Fatalf("expected ErrDefaultTypeMismatch, got %v", err)
	}
}

func TestSetConstantDoesNotAliasSharedDescriptor(t *testing.T) {
	shared := get1(t)
	g := New()
	a := g.AddTransform(shared)
	b := g.AddTransform(shared)

	if err := g.SetConstant(a, []value.Value{value.NewInt(42)}); err != nil {
		t.Fatalf("SetConstant: %v", err)
	}

	descA, _ := g.Descriptor(a)
	descB, _ := g.Descriptor(b)
	capA := descA.Start()
	capB := descB.Start()
	resA, _ := capA.Call()
	resB, _ := capB.Call()
	if value.Float64(resA[0].Value) != 42 {
		t.Fatalf("instance a should reflect SetConstant, got %v", resA)
	}
	if value.Float64(resB[0].Value) != 1 {
		t.Fatalf("instance b should be unaffected, got %v", resB)
	}
}
