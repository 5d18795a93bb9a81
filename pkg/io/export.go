package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cdgpath/pkg/builder"
	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/errors"
)

type pathDoc struct {
	Paths []rankedPath `json:"paths"`
}

type rankedPath struct {
	Rank  int        `json:"rank"`
	Nodes []pathNode `json:"nodes"`
}

type pathNode struct {
	ID       int        `json:"id"`
	Expr     string     `json:"expr,omitempty"`
	Outcome  cdg.Branch `json:"outcome"`
	Children []pathNode `json:"children,omitempty"`
}

// WriteJSON encodes the builder's forest as a JSON graph. Coverage of
// leaves is preserved, so the output can be re-imported with [ReadJSON].
func WriteJSON(b *builder.Builder, w io.Writer) error {
	return encodeJSON(w, graphJSON{Nodes: nonNil(b.Records())})
}

// WriteTOML encodes the builder's forest as a TOML graph.
func WriteTOML(b *builder.Builder, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(graphTOML{Nodes: b.Records()}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
	}
	return nil
}

// ExportGraph writes the forest to path, choosing the format from the file
// extension.
func ExportGraph(b *builder.Builder, path string) error {
	ext, err := errors.ValidateGraphPath(path)
	if err != nil {
		return err
	}
	return create(path, func(w io.Writer) error {
		if ext == "toml" {
			return WriteTOML(b, w)
		}
		return WriteJSON(b, w)
	})
}

// WritePaths encodes a ranked path list as JSON. A nil list encodes as an
// empty "paths" array.
func WritePaths(p *cdg.Path, w io.Writer) error {
	doc := pathDoc{Paths: []rankedPath{}}
	for i, tree := range p.Slice() {
		doc.Paths = append(doc.Paths, rankedPath{Rank: i + 1, Nodes: pathNodes(tree)})
	}
	return encodeJSON(w, doc)
}

// ExportPaths writes a ranked path list to a JSON file at path.
func ExportPaths(p *cdg.Path, path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		return errors.New(errors.ErrCodeInvalidFormat, "%s: paths are exported as .json", path)
	}
	return create(path, func(w io.Writer) error { return WritePaths(p, w) })
}

// WriteCoverageJSON encodes decisions as a coverage file that
// [ReadCoverageJSON] accepts.
func WriteCoverageJSON(decisions []cdg.Decision, w io.Writer) error {
	if decisions == nil {
		decisions = []cdg.Decision{}
	}
	return encodeJSON(w, coverageDoc{Covered: decisions})
}

func pathNodes(list *cdg.Node) []pathNode {
	var out []pathNode
	for n := list; n != nil; n = n.Next() {
		out = append(out, pathNode{
			ID:       n.ID(),
			Expr:     n.Expr(),
			Outcome:  n.Outcome(),
			Children: pathNodes(n.Children(n.Outcome())),
		})
	}
	return out
}

func nonNil(records []builder.Record) []builder.Record {
	if records == nil {
		return []builder.Record{}
	}
	return records
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

func create(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return write(f)
}
