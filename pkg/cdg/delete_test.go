package cdg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeleteNode(t *testing.T) {
	_, n := fixture(t)
	n[4].SetExpr("x")

	DeleteNode(n[4])
	assert.Empty(t, n[4].Expr())
	assert.Nil(t, n[4].TrueSet())
	assert.Nil(t, n[4].Parent())
	assert.Nil(t, n[4].Next())
	assert.Same(t, n[4], n[6].Parent(), "children are not visited")
}

func TestDeleteCDG(t *testing.T) {
	root, n := fixture(t)
	DeleteCDG(root)

	for id, node := range n {
		assert.Nil(t, node.TrueSet(), "node %d", id)
		assert.Nil(t, node.FalseSet(), "node %d", id)
		assert.Nil(t, node.Parent(), "node %d", id)
		assert.Nil(t, node.Next(), "node %d", id)
	}
	assert.NotPanics(t, func() { DeleteCDG(nil) })
}

func TestDeletePaths(t *testing.T) {
	root, _ := fixture(t)
	UpdateCDG(root)

	paths := TopPaths(root, 2)
	trees := paths.Slice()
	second := paths.Next()

	DeletePaths(paths)
	for _, tree := range trees {
		assert.Nil(t, tree.TrueSet())
		assert.Nil(t, tree.Next())
	}
	assert.Nil(t, second.next)
	assert.Nil(t, second.node)
}

func TestDeletePathsNil(t *testing.T) {
	root := decision(1, "a").AddTrue(leaf(2, 0)).AddFalse(leaf(3, 0))
	UpdateCDG(root)

	paths := TopPaths(root, 3)
	assert.Nil(t, paths, "nothing left to cover")
	assert.NotPanics(t, func() { DeletePaths(paths) })
}
