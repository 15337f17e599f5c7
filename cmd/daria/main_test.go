package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func runCLI(t *testing.T, args Args, fs afero.Fs, stdin string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, fs, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunEval(t *testing.T) {
	code, out, errOut := runCLI(t, Args{Eval: "and :true (not :false)"}, afero.NewMemMapFs(), "")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != ":true\n" {
		t.Errorf("expected :true, got %q", out)
	}
}

func TestRunFilesThenEval(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/a.da", []byte("id x = x\n:from-a\n"), 0644)
	afero.WriteFile(fs, "/b.da", []byte("twice x = id (id x)\n"), 0644)

	args := Args{Files: []string{"/a.da", "/b.da"}, Eval: "twice :ok"}
	code, out, errOut := runCLI(t, args, fs, "")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != ":from-a\n:ok\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRunStdin(t *testing.T) {
	code, out, errOut := runCLI(t, Args{}, afero.NewMemMapFs(), "foo = :bar\nfoo\nxor :true :true\n")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != ":bar\n:false\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args Args
	}{
		{"parse", Args{Eval: "f = )"}},
		{"depth", Args{Eval: "loop x = loop x\nloop :a", MaxDepth: 50}},
		{"missing file", Args{Files: []string{"/nope.da"}}},
		{"bad config", Args{Config: "/bad.yaml"}},
	}

	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/bad.yaml", []byte("nonsense: 1\n"), 0644)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tt.args, fs, "")
			if code != 1 {
				t.Errorf("expected exit 1, got %d", code)
			}
			if !strings.HasPrefix(errOut, "Error") {
				t.Errorf("expected error on stderr, got %q", errOut)
			}
		})
	}
}

func TestRunConfigAndFlags(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/daria.yaml", []byte("no_prelude: true\n"), 0644)

	code, out, _ := runCLI(t, Args{Config: "/daria.yaml", Eval: "not :true"}, fs, "")
	if code != 0 || out != ":not\n" {
		t.Errorf("expected the prelude to be disabled, got %d %q", code, out)
	}

	args := Args{Config: "/daria.yaml", Eval: "loop x = loop x\nloop :a\n:after", KeepGoing: true, MaxDepth: 40}
	code, out, errOut := runCLI(t, args, fs, "")
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if out != ":after\n" {
		t.Errorf("expected keep-going output, got %q", out)
	}
	if !strings.Contains(errOut, "statement 2 (line 2)") {
		t.Errorf("expected statement context, got %q", errOut)
	}
}

func TestRunDebug(t *testing.T) {
	code, _, errOut := runCLI(t, Args{Eval: "not :true", Debug: true}, afero.NewMemMapFs(), "")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(errOut, "daria: dispatch not(:true) -> clause #1") {
		t.Errorf("expected dispatch trace on stderr, got %q", errOut)
	}
}

func TestRunDump(t *testing.T) {
	code, out, errOut := runCLI(t, Args{Dump: true, Eval: "f x = g x"}, afero.NewMemMapFs(), "")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "def f: x\n\tinv g\n\t\tinv x\n" {
		t.Errorf("unexpected tree %q", out)
	}

	code, out, _ = runCLI(t, Args{Dump: true}, afero.NewMemMapFs(), ":v\n")
	if code != 0 || out != "val v\n" {
		t.Errorf("expected stdin to be dumped, got %d %q", code, out)
	}
}

func TestRunREPLFlag(t *testing.T) {
	code, out, _ := runCLI(t, Args{REPL: true}, afero.NewMemMapFs(), "not :false\n")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasPrefix(out, banner) || !strings.Contains(out, ":true") {
		t.Errorf("expected a REPL session, got %q", out)
	}
}

func TestRunHistoryFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	code, _, errOut := runCLI(t, Args{REPL: true, History: path}, afero.NewMemMapFs(), "not :false\n")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}

	code, out, _ := runCLI(t, Args{REPL: true, History: path}, afero.NewMemMapFs(), ".history\n")
	if code != 0 || !strings.Contains(out, "not :false") {
		t.Errorf("expected history to survive restart, got %d %q", code, out)
	}
}
