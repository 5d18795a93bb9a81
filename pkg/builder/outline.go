package builder

import (
	"fmt"
	"io"

	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/stack"
)

type visit struct {
	node  *cdg.Node
	depth int
}

// walk calls fn for every node of the forest in pre-order: a node, then its
// true list, then its false list, then its next sibling.
func walk(root *cdg.Node, fn func(n *cdg.Node, depth int)) {
	work := stack.New[visit]()
	pushSiblings(work, root, 0)
	for !work.IsEmpty() {
		v := work.MustPop()
		fn(v.node, v.depth)
		pushSiblings(work, v.node.FalseSet(), v.depth+1)
		pushSiblings(work, v.node.TrueSet(), v.depth+1)
	}
}

func pushSiblings(work *stack.Stack[visit], list *cdg.Node, depth int) {
	var nodes []*cdg.Node
	for ; list != nil; list = list.Next() {
		nodes = append(nodes, list)
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		work.Push(visit{node: nodes[i], depth: depth})
	}
}

// WriteOutline prints one "ID: x, PID: y" line per node in pre-order.
// Top-level nodes report PID 0.
func (b *Builder) WriteOutline(w io.Writer) error {
	var err error
	walk(b.head, func(n *cdg.Node, _ int) {
		if err != nil {
			return
		}
		pid := 0
		if p := n.Parent(); p != nil {
			pid = p.ID()
		}
		_, err = fmt.Fprintf(w, "ID: %d, PID: %d\n", n.ID(), pid)
	})
	return err
}

// Walk exposes the pre-order traversal used by the outline writers. depth is
// 0 for top-level nodes.
func Walk(root *cdg.Node, fn func(n *cdg.Node, depth int)) {
	walk(root, fn)
}
