// Command daria is the daria interpreter CLI.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"nickandperla.net/daria/pkg/daria"
)

// Args are the command line flags. Flags that are set override the config
// file.
type Args struct {
	Eval      string   `arg:"-e,--eval" help:"evaluate a daria program"`
	Files     []string `arg:"-f,--file,separate" help:"evaluate a daria file (repeatable)"`
	Config    string   `arg:"--config" default:"~/.daria.yaml" help:"config file"`
	History   string   `arg:"--history" help:"SQLite database for REPL history"`
	MaxDepth  int      `arg:"--max-depth" help:"evaluation nesting limit"`
	NoPrelude bool     `arg:"--no-prelude" help:"don't define and, or, xor and not"`
	KeepGoing bool     `arg:"--keep-going" help:"report every failing statement instead of stopping at the first"`
	Debug     bool     `arg:"--debug" help:"trace definitions and dispatch on stderr"`
	Dump      bool     `arg:"--dump" help:"print the parse tree of the input instead of evaluating it"`
	REPL      bool     `arg:"--repl" help:"start the REPL even when stdin is not a terminal"`
}

// Description is shown in the help text.
func (Args) Description() string {
	return "daria evaluates pattern-matching definitions over symbolic values"
}

func main() {
	var args Args
	arg.MustParse(&args)
	os.Exit(run(args, afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr))
}

// apply overrides c with the flags that were given.
func (a Args) apply(c *daria.Config) {
	if a.History != "" {
		c.History = a.History
	}
	if a.MaxDepth > 0 {
		c.MaxDepth = a.MaxDepth
	}
	if a.NoPrelude {
		c.NoPrelude = true
	}
	if a.KeepGoing {
		c.KeepGoing = true
	}
	if a.Debug {
		c.Debug = true
	}
}

func run(args Args, fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer) int {
	if args.Dump {
		return dump(args, fs, stdin, stdout, stderr)
	}

	c, err := daria.LoadConfig(fs, args.Config)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	args.apply(c)

	opts, err := c.Options(fs)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger := log.New(stderr, "daria: ", 0)
	opts = append(opts, daria.WithLogf(logger.Printf))

	runtime, err := daria.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer runtime.Close()

	// Step 1: files, in the order given
	for _, file := range args.Files {
		result, err := runtime.EvalFile(file)
		printResult(stdout, result)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	// Step 2: -e runs after the files and sees their definitions
	if args.Eval != "" {
		result, err := runtime.Eval(args.Eval)
		printResult(stdout, result)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	switch {
	case args.REPL:
		runREPL(runtime, stdin, stdout)
	case len(args.Files) > 0 || args.Eval != "":
		// already evaluated above
	case !isTerminal(stdin):
		input, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
			return 1
		}
		result, err := runtime.Eval(string(input))
		printResult(stdout, result)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	default:
		runREPL(runtime, stdin, stdout)
	}
	return 0
}

// dump prints the parse tree of every input instead of evaluating it.
func dump(args Args, fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer) int {
	var sources []string
	for _, file := range args.Files {
		data, err := afero.ReadFile(fs, file)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		sources = append(sources, string(data))
	}
	if args.Eval != "" {
		sources = append(sources, args.Eval)
	}
	if len(sources) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
			return 1
		}
		sources = append(sources, string(data))
	}

	for _, src := range sources {
		patterns, err := daria.Parse(src)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprint(stdout, daria.Tree(patterns))
	}
	return 0
}

func printResult(w io.Writer, result string) {
	if result != "" {
		fmt.Fprintln(w, result)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
