package main

import (
	"bytes"
	"strings"
	"testing"

	"nickandperla.net/daria/pkg/daria"
)

func newTestRuntime(t *testing.T, opts ...daria.Option) *daria.Runtime {
	t.Helper()
	r, err := daria.New(opts...)
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func replOutput(t *testing.T, r *daria.Runtime, input string) string {
	t.Helper()
	var out bytes.Buffer
	runBasicREPL(r, strings.NewReader(input), &out)
	return out.String()
}

func TestREPLEvaluates(t *testing.T) {
	r := newTestRuntime(t)
	out := replOutput(t, r, "and :true :true\nfoo = :bar\nfoo\n")

	if !strings.Contains(out, ">>> :true\n") {
		t.Errorf("expected :true after the prompt, got:\n%s", out)
	}
	if !strings.Contains(out, ":bar") {
		t.Errorf("expected definitions to persist between lines, got:\n%s", out)
	}
}

func TestREPLContinuation(t *testing.T) {
	r := newTestRuntime(t)
	out := replOutput(t, r, "id x = x\\\nid :joined\n")

	if !strings.Contains(out, "... :joined") {
		t.Errorf("expected continuation prompt then result, got:\n%s", out)
	}
}

func TestREPLErrorsDoNotEndSession(t *testing.T) {
	r := newTestRuntime(t)
	out := replOutput(t, r, "f = g)\nnot :false\n")

	if !strings.Contains(out, "Error: ") {
		t.Errorf("expected an error line, got:\n%s", out)
	}
	if !strings.Contains(out, ":true") {
		t.Errorf("expected evaluation to continue after the error, got:\n%s", out)
	}
}

func TestREPLQuit(t *testing.T) {
	r := newTestRuntime(t)
	out := replOutput(t, r, ".quit\nnot :false\n")
	if strings.Contains(out, ":true") {
		t.Errorf("nothing should run after .quit, got:\n%s", out)
	}
}

func TestREPLCommands(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{".help", []string{".clauses [name]", ".history [n]"}},
		{".names", []string{"and\nnot\nor\nxor\n"}},
		{".clauses not", []string{"not :true = :false\nnot :false = :true\n"}},
		{".tree not :true", []string{"inv not\n\tval true\n"}},
		{".ast not :true", []string{"Name: \"not\"", "Name: \"true\""}},
		{".tree f = )", []string{"Error: "}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := newTestRuntime(t)
			out := replOutput(t, r, tt.input+"\n")
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestREPLUnknownDotNameIsEvaluated(t *testing.T) {
	r := newTestRuntime(t)
	out := replOutput(t, r, ".dot x = x\n.dot :name\n")
	if !strings.Contains(out, ":name") {
		t.Errorf("expected .dot to be evaluated as a function, got:\n%s", out)
	}
}

func TestREPLHistory(t *testing.T) {
	r := newTestRuntime(t, daria.WithHistory(daria.NewMemoryHistory()))
	replOutput(t, r, "not :true\nf = g)\n.names\n")

	entries, err := r.History(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (commands are not recorded), got %+v", entries)
	}
	if entries[0].Output != ":false" {
		t.Errorf("expected recorded output :false, got %q", entries[0].Output)
	}
	if entries[1].Err == "" {
		t.Error("expected the failing statement's error to be recorded")
	}

	out := replOutput(t, r, ".history 1\n")
	if !strings.Contains(out, "f = g)") || !strings.Contains(out, "! ") {
		t.Errorf("expected last entry with its error, got:\n%s", out)
	}
	if strings.Contains(out, "not :true") {
		t.Errorf("expected only one entry, got:\n%s", out)
	}

	out = replOutput(t, r, ".history x\n")
	if !strings.Contains(out, "bad count") {
		t.Errorf("expected bad count error, got:\n%s", out)
	}
}
