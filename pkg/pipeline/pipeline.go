// Package pipeline runs the cdgpath workflow: load a graph, score it, rank
// test paths, apply coverage and render the result.
//
// The CLI and any embedding program go through a [Runner] so that caching,
// logging and observability hooks behave the same everywhere.
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	g, err := runner.Load(ctx, "graph.json")
//	paths, err := runner.Rank(ctx, g, 3)
//	svg, hit, err := runner.Render(ctx, g, pipeline.Options{Format: render.FormatSVG})
//
// A [Graph] is scored on load and rescored after every coverage update, so
// callers never see stale decision scores.
package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/cdgpath/pkg/builder"
	"github.com/matzehuels/cdgpath/pkg/cache"
	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/errors"
	"github.com/matzehuels/cdgpath/pkg/render"
)

// DefaultPaths is the number of paths ranked when none is requested.
const DefaultPaths = 3

// Options configure ranking and rendering.
type Options struct {
	// Paths is the number of top paths to rank or draw.
	Paths int `json:"paths,omitempty"`
	// Format selects the render output.
	Format render.Format `json:"format,omitempty"`
	// RenderPaths draws the ranked paths instead of the whole forest.
	RenderPaths bool `json:"render_paths,omitempty"`
	// Highlight emphasizes the best path when drawing the whole forest.
	Highlight bool `json:"highlight,omitempty"`
	// HideScores drops scores from diagrams.
	HideScores bool `json:"hide_scores,omitempty"`
	// Refresh bypasses cached results.
	Refresh bool `json:"-"`
}

// ValidateAndSetDefaults fills zero fields and rejects invalid ones.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Paths < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "paths must be positive, got %d", o.Paths)
	}
	if o.Paths == 0 {
		o.Paths = DefaultPaths
	}
	if o.Format == "" {
		o.Format = render.FormatText
	}
	f, err := render.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = f
	return nil
}

func (o Options) artifactKeyOpts() cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      string(o.Format),
		RenderPaths: o.RenderPaths,
		Highlight:   o.Highlight && !o.RenderPaths,
		HideScores:  o.HideScores,
	}
	if o.RenderPaths {
		k.Paths = o.Paths
	}
	return k
}

// Graph is a loaded, scored CDG forest.
type Graph struct {
	// Source names where the graph came from.
	Source string
	b      *builder.Builder
}

// NewGraph wraps an already built forest and scores it.
func NewGraph(source string, b *builder.Builder) *Graph {
	if root := b.Root(); root != nil {
		cdg.UpdateCDG(root)
	}
	return &Graph{Source: source, b: b}
}

// Root returns the head of the top-level list.
func (g *Graph) Root() *cdg.Node { return g.b.Root() }

// Builder returns the id mapping of the graph.
func (g *Graph) Builder() *builder.Builder { return g.b }

// Stats summarizes the graph.
func (g *Graph) Stats() cdg.Stats { return cdg.Summarize(g.Root()) }

// Hash identifies the graph's structure, predicates and current coverage.
func (g *Graph) Hash() string {
	data, _ := json.Marshal(g.b.Records())
	return cache.Hash(data)
}
