package cdg

import (
	"errors"
	"fmt"

	"github.com/matzehuels/cdgpath/pkg/stack"
)

// Decision is an observed decision outcome: the decision with the given id
// evaluated to Outcome.
type Decision struct {
	ID      int    `json:"id" toml:"id"`
	Outcome Branch `json:"outcome" toml:"outcome"`
}

// String renders the decision as "id:outcome".
func (d Decision) String() string {
	return fmt.Sprintf("%d:%s", d.ID, d.Outcome)
}

// CoverNodes records real coverage. For every decision it finds the node with
// that id under root and marks each leaf in the child list of the named
// branch as covered (score 0). Decision children on that branch are not
// touched; their own leaves are covered through their own entries.
//
// It returns the number of leaves that went from uncovered to covered.
// Decisions whose id is not in the tree produce an error wrapping
// [ErrUnknownNode]; the remaining decisions are still applied. Scores of
// decision nodes are stale afterwards until [UpdateCDG] runs.
func CoverNodes(root *Node, decisions ...Decision) (int, error) {
	mustNode(root)
	index := indexByID(root)

	covered := 0
	var errs []error
	for _, d := range decisions {
		n, ok := index[d.ID]
		if !ok {
			errs = append(errs, fmt.Errorf("decision %d: %w", d.ID, ErrUnknownNode))
			continue
		}
		for c := n.Children(d.Outcome); c != nil; c = c.next {
			if c.IsLeaf() && c.score != 0 {
				c.score = 0
				covered++
			}
		}
	}
	return covered, errors.Join(errs...)
}

// Decisions flattens a path tree into the decisions it prescribes, in
// pre-order.
func Decisions(tree *Node) []Decision {
	var out []Decision
	work := stack.New[*Node]()
	pushReversed(work, tree)
	for !work.IsEmpty() {
		n := work.MustPop()
		out = append(out, Decision{ID: n.id, Outcome: n.outcome})
		pushChildren(work, n)
	}
	return out
}

// indexByID maps ids to nodes. When an id occurs more than once the first
// node in pre-order wins, matching [Find].
func indexByID(root *Node) map[int]*Node {
	index := make(map[int]*Node)
	work := stack.New[*Node]()
	pushReversed(work, root)
	for !work.IsEmpty() {
		n := work.MustPop()
		if _, seen := index[n.id]; !seen {
			index[n.id] = n
		}
		pushChildren(work, n)
	}
	return index
}
