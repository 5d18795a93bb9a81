package cdg

import "github.com/matzehuels/cdgpath/pkg/stack"

// PostOrder pushes every node of the forest rooted at the sibling list root
// onto out. Popping out afterwards yields each node only after all of its
// descendants, which is the order score propagation needs.
//
// The walk uses an explicit work stack, so tree depth is bounded by memory
// rather than by the goroutine stack. A nil root pushes nothing.
func PostOrder(root *Node, out *stack.Stack[*Node]) {
	if root == nil {
		return
	}
	work := stack.New[*Node]()
	defer work.Dispose()

	pushList(work, root)
	for !work.IsEmpty() {
		n := work.MustPop()
		if n.trueSet != nil {
			pushList(work, n.trueSet)
		}
		if n.falseSet != nil {
			pushList(work, n.falseSet)
		}
		out.Push(n)
	}
}

// BottomUp returns every node of the forest with descendants before
// ancestors.
func BottomUp(root *Node) []*Node {
	s := stack.New[*Node]()
	PostOrder(root, s)
	return s.Values()
}

// Find returns the first node with the given id in pre-order, or nil.
// Pre-order visits a node, then its true branch, then its false branch,
// then its next sibling.
func Find(root *Node, id int) *Node {
	if root == nil {
		return nil
	}
	work := stack.New[*Node]()
	pushReversed(work, root)
	for !work.IsEmpty() {
		n := work.MustPop()
		if n.id == id {
			return n
		}
		pushChildren(work, n)
	}
	return nil
}

// pushList pushes a whole sibling list, head first.
func pushList(s *stack.Stack[*Node], list *Node) {
	for ; list != nil; list = list.next {
		s.Push(list)
	}
}

// pushReversed pushes a sibling list tail first, so the head pops first.
func pushReversed(s *stack.Stack[*Node], list *Node) {
	var nodes []*Node
	for ; list != nil; list = list.next {
		nodes = append(nodes, list)
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		s.Push(nodes[i])
	}
}

// pushChildren queues n's branches so the true branch pops before the false.
func pushChildren(s *stack.Stack[*Node], n *Node) {
	pushReversed(s, n.falseSet)
	pushReversed(s, n.trueSet)
}
