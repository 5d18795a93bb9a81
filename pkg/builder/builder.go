package builder

import (
	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/errors"
)

type slot struct {
	parent int
	branch cdg.Branch
}

// Builder maps node ids to the nodes of one forest. It is not safe for
// concurrent use.
type Builder struct {
	nodes map[int]*cdg.Node
	order []int
	head  *cdg.Node
	tail  *cdg.Node
	tails map[slot]*cdg.Node
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[int]*cdg.Node),
		tails: make(map[slot]*cdg.Node),
	}
}

// Build creates a builder from a complete record set. Parents may appear
// after their children; the result is rejected if some node cannot be
// reached from the top level.
func Build(records []Record) (*Builder, error) {
	b := New()
	for _, r := range records {
		if err := b.create(r); err != nil {
			return nil, err
		}
	}
	for _, r := range records {
		if err := b.link(r); err != nil {
			return nil, err
		}
	}
	if b.head == nil && len(records) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no top-level node: every record has a parent")
	}
	if reached := len(cdg.BottomUp(b.head)); reached != len(b.nodes) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"%d of %d nodes are unreachable from the top level (parent cycle)", len(b.nodes)-reached, len(b.nodes))
	}
	return b, nil
}

// Add creates the node described by r and links it under its parent, which
// must already exist.
func (b *Builder) Add(r Record) error {
	if r.Parent != nil {
		if _, ok := b.nodes[*r.Parent]; !ok {
			return errors.New(errors.ErrCodeUnknownParent, "node %d: parent %d not defined yet", r.ID, *r.Parent)
		}
	}
	if err := b.create(r); err != nil {
		return err
	}
	if err := b.link(r); err != nil {
		b.forget(r.ID)
		return err
	}
	return nil
}

// AddNode is shorthand for adding a child record without predicate text.
func (b *Builder) AddNode(id, parent int, branch cdg.Branch) error {
	return b.Add(Record{ID: id, Parent: Ref(parent), Branch: On(branch)})
}

// AddTopLevel is shorthand for adding a record without a parent.
func (b *Builder) AddTopLevel(id int) error {
	return b.Add(Record{ID: id})
}

// SetExpr attaches predicate text to an existing node.
func (b *Builder) SetExpr(id int, expr string) error {
	n, ok := b.nodes[id]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "node %d not found", id)
	}
	if err := errors.ValidateExpr(expr); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", id)
	}
	n.SetExpr(expr)
	return nil
}

// Root returns the head of the top-level list, or nil for an empty builder.
func (b *Builder) Root() *cdg.Node { return b.head }

// Node returns the node with the given id.
func (b *Builder) Node(id int) (*cdg.Node, bool) {
	n, ok := b.nodes[id]
	return n, ok
}

// Len returns the number of nodes.
func (b *Builder) Len() int { return len(b.nodes) }

// IDs returns node ids in the order their records were added.
func (b *Builder) IDs() []int {
	return append([]int(nil), b.order...)
}

// Records returns the forest as records in pre-order, with Covered set for
// leaves whose score is 0. Decision nodes never report Covered.
func (b *Builder) Records() []Record {
	var out []Record
	walk(b.head, func(n *cdg.Node, depth int) {
		r := Record{ID: n.ID(), Expr: n.Expr()}
		if p := n.Parent(); p != nil {
			r.Parent = Ref(p.ID())
			side, _ := n.Side()
			r.Branch = On(side)
		}
		r.Covered = n.IsLeaf() && n.Score() == 0
		out = append(out, r)
	})
	return out
}

func (b *Builder) create(r Record) error {
	if err := errors.ValidateNodeID(r.ID); err != nil {
		return err
	}
	if _, dup := b.nodes[r.ID]; dup {
		return errors.New(errors.ErrCodeDuplicateNode, "node %d defined twice", r.ID)
	}
	if err := errors.ValidateExpr(r.Expr); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", r.ID)
	}
	score := 1
	if r.Covered {
		score = 0
	}
	b.nodes[r.ID] = cdg.NewNode(r.ID, score, cdg.True, r.Expr, nil, nil, nil, nil)
	b.order = append(b.order, r.ID)
	return nil
}

func (b *Builder) link(r Record) error {
	n := b.nodes[r.ID]
	if r.Parent == nil {
		if b.tail == nil {
			b.head = n
		} else {
			b.tail.SetNext(n)
		}
		b.tail = n
		return nil
	}
	if r.Branch == nil {
		return errors.New(errors.ErrCodeInvalidBranch, "node %d: parent %d given without a branch", r.ID, *r.Parent)
	}
	if *r.Parent == r.ID {
		return errors.New(errors.ErrCodeInvalidInput, "node %d is its own parent", r.ID)
	}
	p, ok := b.nodes[*r.Parent]
	if !ok {
		return errors.New(errors.ErrCodeUnknownParent, "node %d: parent %d not defined", r.ID, *r.Parent)
	}

	key := slot{parent: *r.Parent, branch: *r.Branch}
	if last, ok := b.tails[key]; ok {
		last.SetNext(n)
	} else if *r.Branch {
		p.AddTrue(n)
	} else {
		p.AddFalse(n)
	}
	b.tails[key] = n
	return nil
}

func (b *Builder) forget(id int) {
	delete(b.nodes, id)
	b.order = b.order[:len(b.order)-1]
}
