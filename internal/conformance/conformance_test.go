package conformance

import (
	"errors"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/spf13/afero"
)

func TestParse(t *testing.T) {
	src := "; EXPECTED: :true\n;EXPECTED: ignored\n; EXPECTED: Error: boom\nand :true :true\n"
	c := Parse("x.da", src)

	if diff := pretty.Compare(c.Expected, []string{":true", "Error: boom"}); diff != "" {
		t.Errorf("unexpected directives:\n%s", diff)
	}
	if c.Code != src {
		t.Error("code should be the content unchanged")
	}
	if !c.ExpectsError() {
		t.Error("expected ExpectsError")
	}
	if Parse("y.da", "; EXPECTED: :x\n:x").ExpectsError() {
		t.Error("no error was expected")
	}
}

func TestMatch(t *testing.T) {
	c := Case{Expected: []string{":a", "Error: depth exceeded"}}

	tests := []struct {
		name   string
		output string
		err    error
		want   bool
	}{
		{"match", ":a", errors.New("statement 2: evaluation depth exceeded"), true},
		{"wrong error", ":a", errors.New("unexpected token"), false},
		{"no error", ":a\n:b", nil, false},
		{"wrong value", ":b", errors.New("depth exceeded"), false},
		{"too short", "", errors.New("depth exceeded"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Match(Actual(tt.output, tt.err)); got != tt.want {
				t.Errorf("expected %v, got %v for %v", tt.want, got, Actual(tt.output, tt.err))
			}
		})
	}

	if !(Case{}).Match(Actual("", nil)) {
		t.Error("an empty case should match empty output")
	}
}

func TestFind(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, p := range []string{"/c/b.da", "/c/a.da", "/c/sub/c.da", "/c/notes.txt"} {
		afero.WriteFile(fs, p, []byte(":x"), 0644)
	}

	files, err := Find(fs, "/c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := pretty.Compare(files, []string{"/c/a.da", "/c/b.da", "/c/sub/c.da"}); diff != "" {
		t.Errorf("unexpected files:\n%s", diff)
	}

	if _, err := Load(fs, "/c/missing.da"); err == nil {
		t.Error("expected error loading a missing case")
	}
}
