// Package cdg provides a control dependence graph (CDG) used to pick test
// inputs that exercise as many not-yet-covered branches as possible.
//
// # Overview
//
// A CDG here is a forest. Every [Node] is either a leaf, standing for a basic
// block, or a decision node holding a predicate and two child lists: the
// nodes control-dependent on the predicate evaluating true, and those
// dependent on it evaluating false. Children of one branch form a singly
// linked sibling list through [Node.Next]; the top level of the forest is a
// sibling list too.
//
// # Scores
//
// A leaf's score is a coverage flag: 1 while the block has not been executed,
// 0 once it has. A decision node's score estimates how much new coverage can
// still be reached through it, and its outcome records which branch reaches
// more. [UpdateCDG] recomputes every decision bottom-up; [PropagateScoreChange]
// refreshes only the ancestors of one changed node.
//
// # Paths
//
// [TopPaths] extracts up to k path trees. Each one is a pruned copy holding
// only decisions that still lead to uncovered leaves, following every
// decision's preferred branch. Between rounds the leaves reached by the
// previous path are claimed in a [Ledger] so the next round prefers fresh
// blocks; when TopPaths returns every claim has been rolled back and the
// input tree scores exactly as before.
//
//	root := cdg.NewNode(1, 0, cdg.True, "x > 0", nil, nil, nil, nil)
//	root.AddTrue(cdg.NewNode(2, 1, cdg.True, "", nil, nil, nil, nil))
//	root.AddFalse(cdg.NewNode(3, 1, cdg.True, "", nil, nil, nil, nil))
//	cdg.UpdateCDG(root)
//
//	for p := cdg.TopPaths(root, 2); p != nil; p = p.Next() {
//	    fmt.Println(cdg.Decisions(p.Node()))
//	}
//
// Feeding real execution results back is done with [CoverNodes] followed by
// [UpdateCDG].
//
// # Errors
//
// Passing a nil node where one is required is a programming error and panics
// with [ErrNilNode]. Running out of uncovered leaves is not an error: the
// extraction functions simply return nil or a shorter list.
//
// # Concurrency
//
// Nodes are plain mutable values without locking. A tree must be owned by a
// single goroutine at a time.
package cdg
