package builder

import "github.com/matzehuels/cdgpath/pkg/cdg"

// Record describes one node of a graph.
type Record struct {
	ID      int         `json:"id" toml:"id"`
	Parent  *int        `json:"parent,omitempty" toml:"parent,omitempty"`
	Branch  *cdg.Branch `json:"branch,omitempty" toml:"branch,omitempty"`
	Expr    string      `json:"expr,omitempty" toml:"expr,omitempty"`
	Covered bool        `json:"covered,omitempty" toml:"covered,omitempty"`
}

// TopLevel reports whether the record has no parent.
func (r Record) TopLevel() bool { return r.Parent == nil }

// Ref returns a pointer to id, for filling Record.Parent.
func Ref(id int) *int { return &id }

// On returns a pointer to b, for filling Record.Branch.
func On(b cdg.Branch) *cdg.Branch { return &b }
