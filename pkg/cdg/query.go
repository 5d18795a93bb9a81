package cdg

// BestDecision returns the live decision (score > 0) with the highest score
// in the sibling list starting at list. The earliest one wins ties; nil means
// the list holds no live decision.
func BestDecision(list *Node) *Node {
	var best *Node
	for n := list; n != nil; n = n.next {
		if n.IsLeaf() || n.score <= 0 {
			continue
		}
		if best == nil || best.score < n.score {
			best = n
		}
	}
	return best
}

// BestChildDecision compares the best live decision on each of n's branches
// and returns the stronger one with its branch. The true side wins ties.
func BestChildDecision(n *Node) (*Node, Branch) {
	mustNode(n)
	maxTrue := BestDecision(n.trueSet)
	maxFalse := BestDecision(n.falseSet)
	switch {
	case maxFalse == nil:
		return maxTrue, True
	case maxTrue == nil:
		return maxFalse, False
	case maxTrue.score < maxFalse.score:
		return maxFalse, False
	}
	return maxTrue, True
}

// TopChain follows the single highest-scoring decision from the top level
// down: it starts at the best decision of root's list and repeatedly moves to
// the best live decision below it. Each step's branch is the side the chain
// continued on; the last decision keeps its own preferred outcome.
// TopChain reads scores only and never mutates the tree.
func TopChain(root *Node) []Decision {
	curr := BestDecision(root)
	var chain []Decision
	for curr != nil {
		next, branch := BestChildDecision(curr)
		if next == nil {
			branch = curr.outcome
		}
		chain = append(chain, Decision{ID: curr.id, Outcome: branch})
		curr = next
	}
	return chain
}

// Stats summarizes the size and coverage of a forest.
type Stats struct {
	Nodes           int `json:"nodes"`
	Decisions       int `json:"decisions"`
	Leaves          int `json:"leaves"`
	UncoveredLeaves int `json:"uncovered_leaves"`
}

// Summarize counts the nodes of the forest rooted at root.
func Summarize(root *Node) Stats {
	var s Stats
	for _, n := range BottomUp(root) {
		s.Nodes++
		if n.IsLeaf() {
			s.Leaves++
			if n.score > 0 {
				s.UncoveredLeaves++
			}
			continue
		}
		s.Decisions++
	}
	return s
}
