// Package conformance reads daria conformance cases. A case is an ordinary
// source file whose "; EXPECTED:" comment lines give the output of running
// it, one line each. An expected line starting with "Error:" matches an
// error whose text contains the rest of the line.
package conformance

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Ext is the file extension of daria sources.
const Ext = ".da"

const (
	expectedDirective = "; EXPECTED:"
	errorPrefix       = "Error:"
)

// Case is one parsed conformance file.
type Case struct {
	Path     string
	Expected []string
	Code     string
}

// ExpectsError returns true if any expected line is an error.
func (c Case) ExpectsError() bool {
	for _, e := range c.Expected {
		if strings.HasPrefix(e, errorPrefix) {
			return true
		}
	}
	return false
}

// Parse extracts the expected lines from content. Directives are comments,
// so the code is the content unchanged.
func Parse(path, content string) Case {
	c := Case{Path: path, Code: content}
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, expectedDirective) {
			continue
		}
		c.Expected = append(c.Expected, strings.TrimSpace(strings.TrimPrefix(line, expectedDirective)))
	}
	return c
}

// Load reads and parses the case at path.
func Load(fs afero.Fs, path string) (Case, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Case{}, errors.Wrapf(err, "can't read %s", path)
	}
	return Parse(path, string(data)), nil
}

// Find returns every daria source under dir, sorted.
func Find(fs afero.Fs, dir string) ([]string, error) {
	var files []string
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), Ext) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// Actual turns the output and error of a run into comparable lines.
func Actual(output string, err error) []string {
	var lines []string
	if output != "" {
		lines = strings.Split(output, "\n")
	}
	if err != nil {
		lines = append(lines, errorPrefix+" "+strings.ReplaceAll(err.Error(), "\n", " "))
	}
	return lines
}

// Match reports whether actual satisfies the expected lines of c.
func (c Case) Match(actual []string) bool {
	if len(actual) != len(c.Expected) {
		return false
	}
	for i, want := range c.Expected {
		got := actual[i]
		if strings.HasPrefix(want, errorPrefix) {
			text := strings.TrimSpace(strings.TrimPrefix(want, errorPrefix))
			if !strings.HasPrefix(got, errorPrefix) || !strings.Contains(got, text) {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}
