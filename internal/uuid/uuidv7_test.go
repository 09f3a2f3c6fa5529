package uuid

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	a := New()
	b := New()

	if a == b {
		t.Fatal("expected distinct ids")
	}
	if !IsValid(a) {
		t.Fatalf("expected valid uuid, got %q", a)
	}
	if a[14] != '7' {
		t.Errorf("expected version 7, got %q", a)
	}
	if a > b {
		t.Errorf("expected time ordering, %q > %q", a, b)
	}
}

func TestParse(t *testing.T) {
	id := New()

	got, err := Parse(strings.ToUpper(id))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Errorf("expected %q, got %q", id, got)
	}

	if _, err := Parse("not-a-uuid"); err == nil {
		t.Error("expected error for invalid input")
	}
	if IsValid("") {
		t.Error("empty string should not be valid")
	}
}
