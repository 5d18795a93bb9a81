package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/cdgpath/pkg/builder"
	"github.com/matzehuels/cdgpath/pkg/cdg"
)

const indent = "  "

// WriteOutline prints the forest one node per line, indented by depth.
// Decisions show score and preferred outcome, leaves show whether they are
// still uncovered:
//
//	1 [7 T] argc > 1
//	  T 4 [2 T]
//	    T 6 .
//	    T 11 x
//
// where "." is an uncovered leaf and "x" a covered one.
func WriteOutline(w io.Writer, root *cdg.Node) error {
	var err error
	builder.Walk(root, func(n *cdg.Node, depth int) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintln(w, strings.Repeat(indent, depth)+OutlineLine(n))
	})
	return err
}

// OutlineLine formats a single node the way [WriteOutline] does, without
// indentation.
func OutlineLine(n *cdg.Node) string {
	var b strings.Builder
	if side, ok := n.Side(); ok {
		b.WriteString(BranchMark(side))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%d ", n.ID())
	switch {
	case !n.IsLeaf():
		fmt.Fprintf(&b, "[%d %s]", n.Score(), BranchMark(n.Outcome()))
	case n.Score() == 0:
		b.WriteString("x")
	default:
		b.WriteString(".")
	}
	if n.Expr() != "" {
		b.WriteByte(' ')
		b.WriteString(n.Expr())
	}
	return b.String()
}

// WritePathOutline prints each ranked path tree: a "#rank" header followed
// by the decisions of the tree, indented by depth, as "id -> outcome".
func WritePathOutline(w io.Writer, p *cdg.Path) error {
	for i, tree := range p.Slice() {
		if _, err := fmt.Fprintf(w, "#%d\n", i+1); err != nil {
			return err
		}
		var err error
		builder.Walk(tree, func(n *cdg.Node, depth int) {
			if err != nil {
				return
			}
			line := fmt.Sprintf("%s%d -> %s", strings.Repeat(indent, depth+1), n.ID(), n.Outcome())
			if n.Expr() != "" {
				line += "  (" + n.Expr() + ")"
			}
			_, err = fmt.Fprintln(w, line)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// BranchMark abbreviates a branch as "T" or "F".
func BranchMark(b cdg.Branch) string {
	if b {
		return "T"
	}
	return "F"
}
