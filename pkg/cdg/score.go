package cdg

import "github.com/matzehuels/cdgpath/pkg/stack"

// UpdateScore recomputes the score and outcome of a single decision node
// from its children, which must already be current. Leaves are left alone:
// their score is the externally supplied coverage flag.
//
// A decision with no live decision below it (a conditional leaf) scores 1 if
// either branch still has an uncovered leaf, preferring true, and 0
// otherwise. Any other decision scores one more than the larger of its two
// branch sums, where a branch sum adds up the scores of the decision nodes in
// that child list. Ties prefer the true branch.
func UpdateScore(n *Node) *Node {
	mustNode(n)
	if n.IsLeaf() {
		return n
	}
	if isConditionalLeaf(n) {
		switch {
		case hasUncoveredChild(n, True):
			return n.SetScore(1).SetOutcome(True)
		case hasUncoveredChild(n, False):
			return n.SetScore(1).SetOutcome(False)
		default:
			return n.SetScore(0).SetOutcome(True)
		}
	}
	trueScore := conditionalNodeSum(n.trueSet)
	falseScore := conditionalNodeSum(n.falseSet)
	if trueScore >= falseScore {
		return n.SetScore(trueScore + 1).SetOutcome(True)
	}
	return n.SetScore(falseScore + 1).SetOutcome(False)
}

// UpdateCDG recomputes every score in the forest rooted at root, children
// before parents, and returns root.
func UpdateCDG(root *Node) *Node {
	mustNode(root)
	order := stack.New[*Node]()
	defer order.Dispose()

	PostOrder(root, order)
	for !order.IsEmpty() {
		UpdateScore(order.MustPop())
	}
	return root
}

// PropagateScoreChange recomputes n and each of its ancestors. It is the
// cheap alternative to [UpdateCDG] after a single leaf's coverage flips.
func PropagateScoreChange(n *Node) *Node {
	mustNode(n)
	for curr := n; curr != nil; curr = curr.parent {
		UpdateScore(curr)
	}
	return n
}

// conditionalNodeSum adds the scores of the decision nodes in a sibling list.
func conditionalNodeSum(list *Node) int {
	sum := 0
	for ; list != nil; list = list.next {
		if !list.IsLeaf() {
			sum += list.score
		}
	}
	return sum
}

func hasUncoveredChild(n *Node, b Branch) bool {
	for c := n.Children(b); c != nil; c = c.next {
		if c.IsLeaf() && c.score > 0 {
			return true
		}
	}
	return false
}

func hasConditionalChild(n *Node) bool {
	for _, list := range [...]*Node{n.trueSet, n.falseSet} {
		for ; list != nil; list = list.next {
			if !list.IsLeaf() {
				return true
			}
		}
	}
	return false
}

func isConditionalLeaf(n *Node) bool {
	if n.IsLeaf() {
		return false
	}
	if !hasConditionalChild(n) {
		return true
	}
	return conditionalNodeSum(n.trueSet) <= 0 && conditionalNodeSum(n.falseSet) <= 0
}
