package builder

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/errors"
)

// fixtureRecords describes the 35-node reference forest in list order.
func fixtureRecords() []Record {
	child := func(id, parent int, b cdg.Branch) Record {
		return Record{ID: id, Parent: Ref(parent), Branch: On(b)}
	}
	T, F := cdg.True, cdg.False
	return []Record{
		{ID: 1}, {ID: 2}, {ID: 3},
		child(4, 1, T), child(5, 1, T),
		child(6, 4, T), child(7, 4, T), child(8, 4, T),
		child(9, 5, T), child(10, 5, T),
		child(11, 7, T),
		child(12, 9, T), child(13, 9, F),
		child(14, 10, T), child(15, 10, F), child(16, 10, F), child(17, 10, F),
		child(18, 16, T),
		child(19, 3, T), child(20, 3, T), child(21, 3, T), child(22, 3, T),
		child(23, 19, T), child(24, 19, F),
		child(25, 20, T), child(26, 20, F),
		child(27, 21, T), child(28, 21, F),
		child(29, 22, T), child(30, 22, F),
		child(31, 30, T), child(32, 30, T), child(33, 30, T),
		child(34, 32, T),
		child(35, 34, T),
	}
}

func TestAddIncremental(t *testing.T) {
	b := New()
	require.NoError(t, b.AddTopLevel(0))
	require.NoError(t, b.AddNode(1, 0, cdg.True))
	require.NoError(t, b.AddNode(2, 0, cdg.True))
	require.NoError(t, b.AddNode(3, 0, cdg.False))
	require.NoError(t, b.SetExpr(0, "x > 0"))

	root := b.Root()
	require.NotNil(t, root)
	assert.Equal(t, 0, root.ID())
	assert.Equal(t, "x > 0", root.Expr())
	assert.Equal(t, 1, root.TrueSet().ID(), "children keep record order")
	assert.Equal(t, 2, root.TrueSet().Next().ID())
	assert.Equal(t, 3, root.FalseSet().ID())

	for _, id := range []int{1, 2, 3} {
		n, ok := b.Node(id)
		require.True(t, ok)
		assert.Same(t, root, n.Parent())
		assert.Equal(t, 1, n.Score())
	}
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, []int{0, 1, 2, 3}, b.IDs())
}

func TestAddErrors(t *testing.T) {
	b := New()
	require.NoError(t, b.AddTopLevel(1))

	err := b.AddNode(5, 9, cdg.True)
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownParent), "got %v", err)

	err = b.AddTopLevel(1)
	assert.True(t, errors.Is(err, errors.ErrCodeDuplicateNode), "got %v", err)

	err = b.Add(Record{ID: 2, Parent: Ref(1)})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidBranch), "got %v", err)

	err = b.AddTopLevel(-3)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)

	err = b.SetExpr(42, "y")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "got %v", err)

	err = b.SetExpr(1, "a\nb")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)

	assert.Equal(t, 1, b.Len(), "failed adds leave nothing behind")
	assert.Equal(t, []int{1}, b.IDs())
}

func TestBuildFixture(t *testing.T) {
	b, err := Build(fixtureRecords())
	require.NoError(t, err)
	assert.Equal(t, 35, b.Len())

	root := b.Root()
	cdg.UpdateCDG(root)
	assert.Equal(t, 7, root.Score())
	assert.Equal(t, 8, root.Next().Next().Score())

	n22, _ := b.Node(22)
	assert.Equal(t, cdg.False, n22.Outcome())
	assert.Equal(t, cdg.Stats{Nodes: 35, Decisions: 15, Leaves: 20, UncoveredLeaves: 20}, cdg.Summarize(root))
}

func TestBuildForwardReferences(t *testing.T) {
	b, err := Build([]Record{
		{ID: 2, Parent: Ref(1), Branch: On(cdg.True), Covered: true},
		{ID: 3, Parent: Ref(1), Branch: On(cdg.False)},
		{ID: 1, Expr: "p"},
	})
	require.NoError(t, err)

	root := b.Root()
	assert.Equal(t, 1, root.ID())
	assert.Equal(t, 0, root.TrueSet().Score(), "covered leaf")
	assert.Equal(t, 1, root.FalseSet().Score())
}

func TestBuildRejects(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		code    errors.Code
	}{
		{"duplicate", []Record{{ID: 1}, {ID: 1}}, errors.ErrCodeDuplicateNode},
		{"unknown parent", []Record{{ID: 1}, {ID: 2, Parent: Ref(7), Branch: On(cdg.True)}}, errors.ErrCodeUnknownParent},
		{"self parent", []Record{{ID: 1}, {ID: 2, Parent: Ref(2), Branch: On(cdg.True)}}, errors.ErrCodeInvalidInput},
		{"no top level", []Record{
			{ID: 1, Parent: Ref(2), Branch: On(cdg.True)},
			{ID: 2, Parent: Ref(1), Branch: On(cdg.True)},
		}, errors.ErrCodeInvalidInput},
		{"cycle off the top level", []Record{
			{ID: 1},
			{ID: 2, Parent: Ref(3), Branch: On(cdg.True)},
			{ID: 3, Parent: Ref(2), Branch: On(cdg.False)},
		}, errors.ErrCodeInvalidInput},
		{"bad expr", []Record{{ID: 1, Expr: "\x00"}}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Build(tt.records)
			require.Error(t, err)
			assert.Nil(t, b)
			assert.Equal(t, tt.code, errors.GetCode(err), "got %v", err)
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	b, err := Build(nil)
	require.NoError(t, err)
	assert.Nil(t, b.Root())
	assert.Empty(t, b.Records())
}

func TestRecordsRoundTrip(t *testing.T) {
	in := fixtureRecords()
	b, err := Build(in)
	require.NoError(t, err)

	out := b.Records()
	require.Len(t, out, len(in))

	again, err := Build(out)
	require.NoError(t, err)
	cdg.UpdateCDG(again.Root())
	assert.Equal(t, 7, again.Root().Score())

	// Pre-order of the rebuilt forest matches the first build.
	assert.Equal(t, out, again.Records())
	assert.True(t, out[0].TopLevel())
	assert.Equal(t, 4, out[1].ID)
	assert.Equal(t, cdg.True, *out[1].Branch)
}

func TestRecordsCovered(t *testing.T) {
	b, err := Build(fixtureRecords())
	require.NoError(t, err)
	n2, _ := b.Node(2)
	n2.SetScore(0)

	var covered []int
	for _, r := range b.Records() {
		if r.Covered {
			covered = append(covered, r.ID)
		}
	}
	assert.Equal(t, []int{2}, covered)
}

func TestWriteOutline(t *testing.T) {
	b, err := Build([]Record{
		{ID: 0},
		{ID: 1, Parent: Ref(0), Branch: On(cdg.True)},
		{ID: 2, Parent: Ref(1), Branch: On(cdg.False)},
		{ID: 3, Parent: Ref(0), Branch: On(cdg.False)},
		{ID: 4},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, b.WriteOutline(&buf))
	assert.Equal(t, "ID: 0, PID: 0\nID: 1, PID: 0\nID: 2, PID: 1\nID: 3, PID: 0\nID: 4, PID: 0\n", buf.String())
}

func TestWalkDepth(t *testing.T) {
	b, err := Build(fixtureRecords())
	require.NoError(t, err)

	depth := map[int]int{}
	Walk(b.Root(), func(n *cdg.Node, d int) { depth[n.ID()] = d })
	assert.Len(t, depth, 35)
	assert.Equal(t, 0, depth[3])
	assert.Equal(t, 1, depth[22])
	assert.Equal(t, 5, depth[35])
}
