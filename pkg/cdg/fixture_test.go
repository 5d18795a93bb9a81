package cdg

import "testing"

// fixture builds the 35-node reference forest. Every node starts with score
// 1, so every leaf is uncovered. The top level is 1 -> 2 -> 3.
//
//	1  T: 4 -> 5
//	   4  T: 6 -> 7 -> 8        7  T: 11
//	   5  T: 9 -> 10            9  T: 12  F: 13
//	                            10 T: 14  F: 15 -> 16 -> 17   16 T: 18
//	2  (leaf)
//	3  T: 19 -> 20 -> 21 -> 22
//	   19 T: 23 F: 24   20 T: 25 F: 26   21 T: 27 F: 28
//	   22 T: 29 F: 30   30 T: 31 -> 32 -> 33   32 T: 34   34 T: 35
func fixture(t testing.TB) (*Node, map[int]*Node) {
	t.Helper()
	n := make(map[int]*Node, 35)
	for i := 1; i <= 35; i++ {
		n[i] = NewNode(i, 1, True, "", nil, nil, nil, nil)
	}
	n[1].SetNext(n[2])
	n[2].SetNext(n[3])

	n[1].AddTrue(n[4])
	n[4].SetNext(n[5])

	n[3].AddTrue(n[19])
	n[19].SetNext(n[20])
	n[20].SetNext(n[21])
	n[21].SetNext(n[22])

	n[4].AddTrue(n[6])
	n[6].SetNext(n[7])
	n[7].SetNext(n[8])

	n[5].AddTrue(n[9])
	n[9].SetNext(n[10])

	n[19].AddTrue(n[23])
	n[19].AddFalse(n[24])
	n[20].AddTrue(n[25])
	n[20].AddFalse(n[26])
	n[21].AddTrue(n[27])
	n[21].AddFalse(n[28])
	n[22].AddTrue(n[29])
	n[22].AddFalse(n[30])

	n[7].AddTrue(n[11])

	n[9].AddTrue(n[12])
	n[9].AddFalse(n[13])

	n[10].AddTrue(n[14])
	n[10].AddFalse(n[15])
	n[15].SetNext(n[16])
	n[16].SetNext(n[17])

	n[30].AddTrue(n[31])
	n[31].SetNext(n[32])
	n[32].SetNext(n[33])

	n[16].AddTrue(n[18])
	n[32].AddTrue(n[34])
	n[34].AddTrue(n[35])

	return n[1], n
}

type scoreState struct {
	score   int
	outcome Branch
}

// snapshot captures score and outcome of every node keyed by id.
func snapshot(root *Node) map[int]scoreState {
	out := make(map[int]scoreState)
	for _, n := range BottomUp(root) {
		out[n.ID()] = scoreState{n.Score(), n.Outcome()}
	}
	return out
}

// leaf and decision are terse constructors for hand-built trees.
func leaf(id, score int) *Node {
	return NewNode(id, score, True, "", nil, nil, nil, nil)
}

func decision(id int, expr string) *Node {
	return NewNode(id, 0, True, expr, nil, nil, nil, nil)
}
