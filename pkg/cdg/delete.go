package cdg

import "github.com/matzehuels/cdgpath/pkg/stack"

// DeleteNode clears the predicate and every link of n. It does not touch the
// nodes n pointed to.
func DeleteNode(n *Node) {
	mustNode(n)
	n.expr = ""
	n.trueSet = nil
	n.falseSet = nil
	n.parent = nil
	n.next = nil
}

// DeleteCDG takes apart the whole forest rooted at root, visiting each node
// once, children before parents. Nothing reachable from root keeps a link
// afterwards, so no parent pointer outlives the tree.
func DeleteCDG(root *Node) {
	if root == nil {
		return
	}
	order := stack.New[*Node]()
	PostOrder(root, order)
	for !order.IsEmpty() {
		DeleteNode(order.MustPop())
	}
}

// DeletePaths takes apart every path tree in the list starting at p and
// unlinks the list itself. A nil list, as TopPaths returns for a fully
// covered forest, is a no-op.
func DeletePaths(p *Path) {
	for p != nil {
		next := p.next
		DeleteCDG(p.node)
		p.node = nil
		p.next = nil
		p = next
	}
}
