package cdg

// Node is a vertex of the control dependence forest.
//
// A node owns its true and false child lists and, through Next, the rest of
// the sibling list it heads. Parent is a lookup link only: it is followed
// when scores are repropagated upward and never when a tree is deleted.
//
// The zero value is a valid leaf with id 0, score 0 and outcome False; use
// [NewBlankNode] for the conventional blank node whose outcome is True.
type Node struct {
	id       int
	score    int
	outcome  Branch
	expr     string
	trueSet  *Node
	falseSet *Node
	parent   *Node
	next     *Node
}

// NewNode creates a node from explicit field values.
//
// Every node in the trueSet and falseSet lists is re-parented to the new
// node, and next (with the siblings chained after it) inherits parent, so
// the parent invariant holds for whatever lists are passed in.
func NewNode(id, score int, outcome Branch, expr string, trueSet, falseSet, parent, next *Node) *Node {
	n := &Node{
		id:       id,
		score:    score,
		outcome:  outcome,
		expr:     expr,
		trueSet:  trueSet,
		falseSet: falseSet,
		parent:   parent,
	}
	reparent(trueSet, n)
	reparent(falseSet, n)
	return n.SetNext(next)
}

// NewBlankNode returns a node with id 0, score 0, outcome True, no predicate
// and no links.
func NewBlankNode() *Node {
	return NewNode(0, 0, True, "", nil, nil, nil, nil)
}

// ID returns the decision-statement id of a decision node or the block id of
// a leaf.
func (n *Node) ID() int { return n.id }

// SetID sets the id and returns n.
func (n *Node) SetID(id int) *Node {
	n.id = id
	return n
}

// Score returns the node's score.
func (n *Node) Score() int { return n.score }

// SetScore sets the score and returns n.
func (n *Node) SetScore(score int) *Node {
	n.score = score
	return n
}

// Outcome returns the branch the node currently prefers.
func (n *Node) Outcome() Branch { return n.outcome }

// SetOutcome sets the preferred branch and returns n.
func (n *Node) SetOutcome(outcome Branch) *Node {
	n.outcome = outcome
	return n
}

// Expr returns the decision predicate, or "" for nodes without one.
func (n *Node) Expr() string { return n.expr }

// SetExpr sets the decision predicate and returns n.
func (n *Node) SetExpr(expr string) *Node {
	n.expr = expr
	return n
}

// TrueSet returns the head of the true-branch child list.
func (n *Node) TrueSet() *Node { return n.trueSet }

// FalseSet returns the head of the false-branch child list.
func (n *Node) FalseSet() *Node { return n.falseSet }

// Children returns the head of the child list for branch b.
func (n *Node) Children(b Branch) *Node {
	if b {
		return n.trueSet
	}
	return n.falseSet
}

// Parent returns the decision whose child list contains n, or nil at the top
// level.
func (n *Node) Parent() *Node { return n.parent }

// SetParent sets the parent link and returns n. It does not move n into the
// parent's child lists; use [Node.AddTrue] or [Node.AddFalse] for that.
func (n *Node) SetParent(parent *Node) *Node {
	n.parent = parent
	return n
}

// Next returns the following sibling.
func (n *Node) Next() *Node { return n.next }

// SetNext links next after n and returns n. next and every sibling already
// chained after it take n's parent, so one list always shares one parent.
func (n *Node) SetNext(next *Node) *Node {
	n.next = next
	reparent(next, n.parent)
	return n
}

// AddTrue prepends child to n's true-branch list and returns n.
// The child's previous Next link is replaced by the old list head.
// A nil child is ignored.
func (n *Node) AddTrue(child *Node) *Node {
	if child == nil {
		return n
	}
	child.next = n.trueSet
	n.trueSet = child
	child.parent = n
	return n
}

// AddFalse prepends child to n's false-branch list and returns n.
// The child's previous Next link is replaced by the old list head.
// A nil child is ignored.
func (n *Node) AddFalse(child *Node) *Node {
	if child == nil {
		return n
	}
	child.next = n.falseSet
	n.falseSet = child
	child.parent = n
	return n
}

// IsLeaf reports whether n has no children on either branch.
func (n *Node) IsLeaf() bool {
	return n.trueSet == nil && n.falseSet == nil
}

// Side reports which of its parent's lists holds n. ok is false for
// top-level nodes.
func (n *Node) Side() (b Branch, ok bool) {
	if n.parent == nil {
		return False, false
	}
	for c := n.parent.trueSet; c != nil; c = c.next {
		if c == n {
			return True, true
		}
	}
	return False, true
}

// Last returns the final node of the sibling list starting at n.
func (n *Node) Last() *Node {
	mustNode(n)
	curr := n
	for curr.next != nil {
		curr = curr.next
	}
	return curr
}

// reparent points every node of the list at parent.
func reparent(list, parent *Node) {
	for ; list != nil; list = list.next {
		list.parent = parent
	}
}
