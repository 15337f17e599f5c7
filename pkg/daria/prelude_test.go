package daria

import (
	"strings"
	"testing"
)

func TestPreludeTruthTables(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	tests := map[string]string{
		"and :true :true":                   ":true",
		"and :true :false":                  ":false",
		"or :false :false":                  ":false",
		"or :false :true":                   ":true",
		"xor :true :true":                   ":false",
		"xor :true :false":                  ":true",
		"xor :false :false":                 ":false",
		"not :true":                         ":false",
		"not :false":                        ":true",
		"not (and :true (or :false :true))": ":false",
	}
	for src, want := range tests {
		got, err := r.Eval(src)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", src, err)
			continue
		}
		if got != want {
			t.Errorf("%s: expected %s, got %s", src, want, got)
		}
	}
}

func TestNoPreludeOption(t *testing.T) {
	r, err := New(WithNoPrelude())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	if len(r.Names()) != 0 {
		t.Errorf("expected empty scope, got %v", r.Names())
	}
	// and is unbound, so the call stands for itself
	got, err := r.Eval("and :true :true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ":and" {
		t.Errorf("expected :and, got %s", got)
	}
}

func TestCustomPrelude(t *testing.T) {
	r, err := New(WithPrelude("greet who = :hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	if names := r.Names(); strings.Join(names, ",") != "greet" {
		t.Errorf("expected only greet, got %v", names)
	}
	if got, _ := r.Eval("greet :world"); got != ":hello" {
		t.Errorf("expected :hello, got %s", got)
	}
}

func TestBadPrelude(t *testing.T) {
	if _, err := New(WithPrelude("broken = (")); err == nil {
		t.Error("expected error from a prelude that does not parse")
	}
}
