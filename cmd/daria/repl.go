package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/sanity-io/litter"

	"nickandperla.net/daria/internal/expr"
	"nickandperla.net/daria/pkg/daria"
)

const (
	banner = "daria REPL (Ctrl+D to exit, .help for commands)"

	// number of stored entries loaded into the line editor at startup
	historyPrime = 500
	// number of entries .history prints without an argument
	historyShow = 20
)

const help = `Commands:
  .help             show this text
  .quit             leave the REPL
  .names            list defined functions
  .clauses [name]   show the clauses of name, or of every function
  .tree <src>       print the parse tree of src
  .ast <src>        dump the parsed patterns of src
  .history [n]      show the last n history entries

End a line with \ to continue the statement on the next one.
`

// session holds the state shared by both REPL front ends.
type session struct {
	rt      *daria.Runtime
	out     io.Writer
	pending strings.Builder
	more    bool
}

func newSession(rt *daria.Runtime, out io.Writer) *session {
	return &session{rt: rt, out: out}
}

func (s *session) prompt() string {
	if s.more {
		return "... "
	}
	return ">>> "
}

// feed consumes one line. It returns the complete input once a statement
// has been handled, and true when the user asked to quit.
func (s *session) feed(line string) (string, bool) {
	line = strings.TrimRight(line, "\r\n")

	if strings.HasSuffix(line, "\\") {
		s.pending.WriteString(strings.TrimSuffix(line, "\\"))
		s.pending.WriteString("\n")
		s.more = true
		return "", false
	}

	s.pending.WriteString(line)
	input := s.pending.String()
	s.pending.Reset()
	s.more = false

	if strings.TrimSpace(input) == "" {
		return "", false
	}
	if handled, quit := s.command(input); handled {
		return input, quit
	}

	result, err := s.rt.Eval(input)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	} else if result != "" {
		fmt.Fprintln(s.out, result)
	}
	if herr := s.rt.Record(input, result, err); herr != nil {
		fmt.Fprintf(s.out, "Warning: history: %v\n", herr)
	}
	return input, false
}

// reset drops a partially entered statement.
func (s *session) reset() {
	s.pending.Reset()
	s.more = false
}

// command runs a dot command. Inputs that aren't a known command are left
// for the evaluator, since a leading dot is legal in a name.
func (s *session) command(input string) (handled, quit bool) {
	fields := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), fields[0]))

	switch fields[0] {
	case ".help":
		fmt.Fprint(s.out, help)
	case ".quit", ".exit":
		return true, true
	case ".names":
		for _, name := range s.rt.Names() {
			fmt.Fprintln(s.out, name)
		}
	case ".clauses":
		names := fields[1:]
		if len(names) == 0 {
			names = s.rt.Names()
		}
		for _, name := range names {
			for _, c := range s.rt.Clauses(name) {
				fmt.Fprintln(s.out, expr.Definition{Name: name, Params: c.Params, Body: c.Body})
			}
		}
	case ".tree", ".ast":
		patterns, err := daria.Parse(rest)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			break
		}
		if fields[0] == ".tree" {
			fmt.Fprint(s.out, daria.Tree(patterns))
		} else {
			fmt.Fprintln(s.out, litter.Sdump(patterns))
		}
	case ".history":
		s.history(fields[1:])
	default:
		return false, false
	}
	return true, false
}

func (s *session) history(args []string) {
	limit := historyShow
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			fmt.Fprintf(s.out, "Error: bad count %q\n", args[0])
			return
		}
		limit = n
	}
	entries, err := s.rt.History(limit)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(s.out, "%5d  %s\n", e.ID, strings.ReplaceAll(e.Input, "\n", " \\ "))
		if e.Err != "" {
			fmt.Fprintf(s.out, "       ! %s\n", e.Err)
		}
	}
}

func runREPL(rt *daria.Runtime, stdin io.Reader, stdout io.Writer) {
	fmt.Fprintln(stdout, banner)

	if !isTerminal(stdin) || !liner.TerminalSupported() {
		// Not a TTY, fall back to basic mode
		runBasicREPL(rt, stdin, stdout)
		return
	}
	runLinerREPL(rt, stdout)
}

// runBasicREPL handles non-TTY input (piped input)
func runBasicREPL(rt *daria.Runtime, in io.Reader, out io.Writer) {
	s := newSession(rt, out)
	reader := bufio.NewReader(in)

	for {
		fmt.Fprint(out, s.prompt())

		line, err := reader.ReadString('\n')
		if line != "" {
			if _, quit := s.feed(line); quit {
				return
			}
		}
		if err != nil {
			fmt.Fprintln(out)
			return
		}
	}
}

// runLinerREPL handles TTY input with line editing and history
func runLinerREPL(rt *daria.Runtime, out io.Writer) {
	s := newSession(rt, out)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if entries, err := rt.History(historyPrime); err == nil {
		for _, e := range entries {
			line.AppendHistory(e.Input)
		}
	}

	for {
		text, err := line.Prompt(s.prompt())
		if err == liner.ErrPromptAborted {
			s.reset()
			continue
		}
		if err != nil {
			fmt.Fprintln(out)
			return
		}

		input, quit := s.feed(text)
		if input != "" {
			line.AppendHistory(input)
		}
		if quit {
			return
		}
	}
}
