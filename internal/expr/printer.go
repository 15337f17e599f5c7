package expr

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented tree of the patterns to w. The output is for
// debugging only and has no effect on evaluation.
//
//	def fac: x
//		inv *
//			inv x
//			inv fac
//				inv -
//					inv x
//					val 1
func Fprint(w io.Writer, patterns []Pattern) error {
	for _, p := range patterns {
		if err := fprint(w, p, 0); err != nil {
			return err
		}
	}
	return nil
}

// Sprint returns the tree Fprint would write.
func Sprint(patterns ...Pattern) string {
	var sb strings.Builder
	Fprint(&sb, patterns)
	return sb.String()
}

func fprint(w io.Writer, p Pattern, depth int) error {
	indent := strings.Repeat("\t", depth)
	switch p := p.(type) {
	case Definition:
		params := make([]string, len(p.Params))
		for i, a := range p.Params {
			params[i] = a.String()
		}
		if _, err := fmt.Fprintf(w, "%sdef %s: %s\n", indent, p.Name, strings.Join(params, ", ")); err != nil {
			return err
		}
		return fprint(w, p.Body, depth+1)
	case Invocation:
		if _, err := fmt.Fprintf(w, "%sinv %s\n", indent, p.Name); err != nil {
			return err
		}
		for _, a := range p.Args {
			if err := fprint(w, a, depth+1); err != nil {
				return err
			}
		}
		return nil
	case Value:
		_, err := fmt.Fprintf(w, "%sval %s\n", indent, p.Name)
		return err
	}
	return nil
}
