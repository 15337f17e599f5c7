// daria-check: syntax checker for daria files.
//
// Lexes and parses each file without evaluating it. Files whose
// "; EXPECTED:" directives include an error are reported as OK either way,
// since the error may only show up at run time.
//
// Usage:
//
//	daria-check FILE [FILE...]
//	daria-check --dir DIR
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/spf13/afero"

	"nickandperla.net/daria/internal/conformance"
	"nickandperla.net/daria/pkg/daria"
)

// Args are the command line flags.
type Args struct {
	Dir   []string `arg:"--dir,separate" help:"check every .da file under DIR (repeatable)"`
	Files []string `arg:"positional" help:"files to check"`
}

// checkResult holds the outcome of checking a single file.
type checkResult struct {
	path         string
	err          error
	expectsError bool
}

// checkFile parses a daria file and returns its syntax error, if any.
func checkFile(fs afero.Fs, path string) checkResult {
	c, err := conformance.Load(fs, path)
	if err != nil {
		return checkResult{path: path, err: err}
	}
	_, err = daria.Parse(c.Code)
	return checkResult{
		path:         path,
		err:          err,
		expectsError: c.ExpectsError(),
	}
}

func main() {
	var args Args
	p := arg.MustParse(&args)
	if len(args.Dir) == 0 && len(args.Files) == 0 {
		p.Fail("no files given")
	}
	os.Exit(run(args, afero.NewOsFs(), os.Stdout, os.Stderr))
}

func run(args Args, fs afero.Fs, stdout, stderr io.Writer) int {
	files := append([]string(nil), args.Files...)
	for _, dir := range args.Dir {
		found, err := conformance.Find(fs, dir)
		if err != nil {
			fmt.Fprintf(stderr, "Error scanning directory %s: %v\n", dir, err)
			return 1
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		fmt.Fprintln(stderr, "No .da files found")
		return 1
	}

	passed := 0
	failed := 0
	expectedErr := 0

	for _, f := range files {
		result := checkFile(fs, f)

		switch {
		case result.expectsError:
			expectedErr++
			if result.err != nil {
				fmt.Fprintf(stdout, "OK   %s (expected error, found)\n", f)
			} else {
				fmt.Fprintf(stdout, "OK   %s (expected error, parser accepted)\n", f)
			}
		case result.err != nil:
			failed++
			fmt.Fprintf(stdout, "FAIL %s\n", f)
			fmt.Fprintf(stdout, "     %v\n", result.err)
		default:
			passed++
			fmt.Fprintf(stdout, "OK   %s\n", f)
		}
	}

	fmt.Fprintf(stdout, "\n--- Summary ---\n")
	fmt.Fprintf(stdout, "Passed:          %d\n", passed)
	fmt.Fprintf(stdout, "Expected errors: %d\n", expectedErr)
	fmt.Fprintf(stdout, "Failed:          %d\n", failed)
	fmt.Fprintf(stdout, "Total:           %d\n", len(files))

	if failed > 0 {
		return 1
	}
	return 0
}
