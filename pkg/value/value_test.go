package value

import "testing"

func TestCompatibleRequiresEquality(t *testing.T) {
	cases := []struct {
		name string
		a, b Type
		want bool
	}{
		{"number-number", Number, Number, true},
		{"number-string", Number, String, false},
		{"bool-bool", Bool, Bool, true},
		{"list-number vs number", ListOf(Number), Number, false},
		{"list-number vs list-number", ListOf(Number), ListOf(Number), true},
		{"list-number vs list-string", ListOf(Number), ListOf(String), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Compatible(c.a, c.b); got != c.want {
				t.Errorf("Compatible(%s, %s) = %v, want %v", c.a.FriendlyName(), c.b.FriendlyName(), got, c.want)
			}
		})
	}
}

func TestNumberRoundTrip(t *testing.T) {
	v := NewNumber(3.5)
	if !v.Type().Equals(Number) {
		t.Fatalf("expected Number type, got %s", v.Type().FriendlyName())
	}
	if got := Float64(v); got != 3.5 {
		t.Fatalf("Float64() = %v, want 3.5", got)
	}
}

func TestIntRoundTrip(t *testing.T) {
	v := NewInt(42)
	if got := Float64(v); got != 42 {
		t.Fatalf("Float64() = %v, want 42", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	v := NewString("hello")
	if !v.Type().Equals(String) {
		t.Fatalf("expected String type, got %s", v.Type().FriendlyName())
	}
	if got := String_(v); got != "hello" {
		t.Fatalf("String_() = %q, want %q", got, "hello")
	}
}

func TestBoolRoundTrip(t *testing.T) {
	if !Bool_(NewBool(true)) {
		t.Fatal("expected true")
	}
	if Bool_(NewBool(false)) {
		t.Fatal("expected false")
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(NewNumber(1)); got == "" {
		t.Fatal("expected non-empty description")
	}
}
