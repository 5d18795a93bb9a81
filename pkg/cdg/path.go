package cdg

import "github.com/matzehuels/cdgpath/pkg/stack"

// Path is one element of a ranked list of extracted path trees.
//
// The path tree hanging off a Path is a pruned copy of the CDG: its nodes
// carry id, predicate and the chosen outcome, with children only on the
// chosen branch. Parent and score are unused. Path trees share nothing with
// the tree they were extracted from.
type Path struct {
	node *Node
	next *Path
}

// Node returns the head of the path tree's top-level list.
func (p *Path) Node() *Node {
	mustPath(p)
	return p.node
}

// Next returns the next lower-ranked path, or nil.
func (p *Path) Next() *Path {
	mustPath(p)
	return p.next
}

// Len returns the number of paths in the list starting at p.
func (p *Path) Len() int {
	n := 0
	for ; p != nil; p = p.next {
		n++
	}
	return n
}

// Slice returns the path trees of the list in rank order.
func (p *Path) Slice() []*Node {
	var out []*Node
	for ; p != nil; p = p.next {
		out = append(out, p.node)
	}
	return out
}

func mustPath(p *Path) {
	if p == nil {
		panic(ErrNilNode)
	}
}

// claim is one ledger entry: a leaf and the score it had before it was
// claimed.
type claim struct {
	leaf  *Node
	score int
}

// Ledger records leaves that path extraction marked as covered on a
// speculative basis, so the marks can be undone in reverse order.
type Ledger struct {
	claims *stack.Stack[claim]
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{claims: stack.New[claim]()}
}

// Claim marks leaf as covered and records its previous score.
func (l *Ledger) Claim(leaf *Node) {
	mustNode(leaf)
	l.claims.Push(claim{leaf: leaf, score: leaf.score})
	leaf.score = 0
}

// Len returns the number of outstanding claims.
func (l *Ledger) Len() int {
	return l.claims.Len()
}

// Rollback restores every claimed leaf, newest first, and empties the
// ledger. It returns the number of leaves restored. Scores of decision nodes
// are not touched; run [UpdateCDG] afterwards.
func (l *Ledger) Rollback() int {
	n := 0
	for !l.claims.IsEmpty() {
		c := l.claims.MustPop()
		c.leaf.score = c.score
		n++
	}
	return n
}

// TopPath walks the sibling list starting at list and builds the current
// best path tree below it.
//
// Every live leaf (score != 0) in the list is claimed in ledger. Every live
// decision is copied into the result and the walk descends into the branch
// named by its outcome; what that descent produces becomes the copy's child
// list on the same branch. Because a list may contain several live decisions,
// the result is a forest of best choices rather than a single chain.
//
// TopPath returns nil when nothing in the list, or below it along preferred
// branches, is a live decision. Leaves may still have been claimed in that
// case.
func TopPath(list *Node, ledger *Ledger) *Node {
	head := &Node{}
	tail := head
	for n := list; n != nil; n = n.next {
		if n.score == 0 {
			continue
		}
		if n.IsLeaf() {
			ledger.Claim(n)
			continue
		}
		cp := &Node{id: n.id, expr: n.expr, outcome: n.outcome}
		tail.next = cp
		tail = cp
		if n.outcome {
			cp.trueSet = TopPath(n.trueSet, ledger)
		} else {
			cp.falseSet = TopPath(n.falseSet, ledger)
		}
	}
	return head.next
}

// TopPaths returns up to numberOfPaths path trees ranked by extraction
// order. Each round extracts a [TopPath] from root and rescores the tree with
// the claimed leaves treated as covered, so the next round favors blocks not
// yet reached. Extraction stops early once no live decision remains.
//
// All claims are rolled back and root is rescored before TopPaths returns,
// including when it unwinds from a panic, so the tree's scores and outcomes
// end up exactly as they were on entry. The returned paths are new values
// owned by the caller. A non-positive numberOfPaths yields nil.
func TopPaths(root *Node, numberOfPaths int) *Path {
	mustNode(root)
	ledger := NewLedger()
	defer func() {
		ledger.Rollback()
		UpdateCDG(root)
	}()

	var head, tail *Path
	for ; numberOfPaths > 0; numberOfPaths-- {
		tree := TopPath(root, ledger)
		if tree == nil {
			break
		}
		p := &Path{node: tree}
		if head == nil {
			head = p
		} else {
			tail.next = p
		}
		tail = p
		UpdateCDG(root)
	}
	return head
}
