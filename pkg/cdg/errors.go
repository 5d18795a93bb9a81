package cdg

import "errors"

var (
	// ErrNilNode is the panic value used when a nil node is passed where a
	// node is required.
	ErrNilNode = errors.New("cdg: nil node")

	// ErrUnknownNode is returned by [CoverNodes] when a decision id does not
	// occur in the tree.
	ErrUnknownNode = errors.New("cdg: unknown node")
)

func mustNode(n *Node) {
	if n == nil {
		panic(ErrNilNode)
	}
}
