package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cdgpath/pkg/cache"
	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/errors"
	cdgio "github.com/matzehuels/cdgpath/pkg/io"
	"github.com/matzehuels/cdgpath/pkg/observability"
	"github.com/matzehuels/cdgpath/pkg/render"
	"github.com/matzehuels/cdgpath/pkg/render/nodelink"
)

// Runner executes pipeline stages with caching and logging. Apart from the
// cache it holds no state; graphs are passed in explicitly. A Graph must not
// be used by two stages concurrently.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer, and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Load imports and scores the graph file at path.
func (r *Runner) Load(ctx context.Context, path string) (*Graph, error) {
	start := time.Now()
	b, err := cdgio.ImportGraph(path)
	if err != nil {
		observability.Engine().OnLoad(ctx, path, 0, time.Since(start), err)
		return nil, err
	}
	observability.Engine().OnLoad(ctx, path, b.Len(), time.Since(start), nil)
	return r.loaded(path, NewGraph(path, b), start), nil
}

// LoadReader reads a graph in the given format ("json" or "toml") from rd.
func (r *Runner) LoadReader(ctx context.Context, source string, rd io.Reader, format string) (*Graph, error) {
	start := time.Now()
	var err error
	g := &Graph{Source: source}
	switch format {
	case "json":
		g.b, err = cdgio.ReadJSON(rd)
	case "toml":
		g.b, err = cdgio.ReadTOML(rd)
	default:
		err = errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q", format)
	}
	if err != nil {
		observability.Engine().OnLoad(ctx, source, 0, time.Since(start), err)
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	observability.Engine().OnLoad(ctx, source, g.b.Len(), time.Since(start), nil)
	return r.loaded(source, NewGraph(source, g.b), start), nil
}

func (r *Runner) loaded(source string, g *Graph, start time.Time) *Graph {
	s := g.Stats()
	r.Logger.Info("loaded graph",
		"source", source,
		"nodes", s.Nodes,
		"decisions", s.Decisions,
		"uncovered", s.UncoveredLeaves,
		"duration", time.Since(start))
	return g
}

// Cover applies observed decisions to g and rescores it. Unknown decision
// ids do not stop the others from being applied; they are reported in the
// returned error, which wraps cdg.ErrUnknownNode.
func (r *Runner) Cover(ctx context.Context, g *Graph, decisions []cdg.Decision) (int, error) {
	root := g.Root()
	if root == nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: graph is empty", g.Source)
	}
	covered, err := cdg.CoverNodes(root, decisions...)
	cdg.UpdateCDG(root)
	observability.Engine().OnCover(ctx, len(decisions), covered, err)

	r.Logger.Info("applied coverage",
		"decisions", len(decisions),
		"covered", covered,
		"uncovered", g.Stats().UncoveredLeaves)
	if err != nil {
		return covered, errors.Wrap(errors.ErrCodeNotFound, err, "apply coverage")
	}
	return covered, nil
}

// Rank returns up to k paths in rank order. The graph's scores are
// unchanged afterwards. The result may be shorter than k, or nil when every
// reachable leaf is covered.
func (r *Runner) Rank(ctx context.Context, g *Graph, k int) (*cdg.Path, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root := g.Root()
	if root == nil {
		return nil, nil
	}
	start := time.Now()
	paths := cdg.TopPaths(root, k)
	d := time.Since(start)
	observability.Engine().OnRank(ctx, k, paths.Len(), d)
	r.Logger.Info("ranked paths", "requested", k, "paths", paths.Len(), "duration", d)
	return paths, nil
}

// RankJSON returns the ranking of g as path export JSON, using the cache.
// The second result reports a cache hit.
func (r *Runner) RankJSON(ctx context.Context, g *Graph, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.RankKey(g.Hash(), cache.RankKeyOpts{Paths: opts.Paths})
	if data, ok := r.cached(ctx, key, "rank", opts.Refresh); ok {
		return data, true, nil
	}

	paths, err := r.Rank(ctx, g, opts.Paths)
	if err != nil {
		return nil, false, err
	}
	var buf bytes.Buffer
	if err := cdgio.WritePaths(paths, &buf); err != nil {
		return nil, false, err
	}
	r.store(ctx, key, "rank", buf.Bytes(), cache.TTLRanking)
	return buf.Bytes(), false, nil
}

// Render draws g in opts.Format, using the cache. The second result reports
// a cache hit.
func (r *Runner) Render(ctx context.Context, g *Graph, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	key := r.Keyer.ArtifactKey(g.Hash(), opts.artifactKeyOpts())
	if data, ok := r.cached(ctx, key, "artifact", opts.Refresh); ok {
		return data, true, nil
	}

	start := time.Now()
	data, err := r.draw(ctx, g, opts)
	d := time.Since(start)
	observability.Engine().OnRender(ctx, string(opts.Format), d, err)
	if err != nil {
		return nil, false, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	r.Logger.Info("rendered", "format", opts.Format, "bytes", len(data), "duration", d)

	r.store(ctx, key, "artifact", data, cache.TTLArtifact)
	return data, false, nil
}

func (r *Runner) draw(ctx context.Context, g *Graph, opts Options) ([]byte, error) {
	root := g.Root()
	var paths *cdg.Path
	if root != nil && (opts.RenderPaths || opts.Highlight) {
		k := opts.Paths
		if !opts.RenderPaths {
			k = 1
		}
		paths = cdg.TopPaths(root, k)
		defer func() {
			if paths != nil {
				cdg.DeletePaths(paths)
			}
		}()
	}

	var buf bytes.Buffer
	switch opts.Format {
	case render.FormatText:
		var err error
		if opts.RenderPaths {
			err = render.WritePathOutline(&buf, paths)
		} else {
			err = render.WriteOutline(&buf, root)
		}
		return buf.Bytes(), err
	}

	var dot string
	if opts.RenderPaths {
		dot = nodelink.PathsToDOT(paths)
	} else {
		nopts := nodelink.Options{HideScores: opts.HideScores}
		if opts.Highlight && paths != nil {
			nopts.Highlight = cdg.Decisions(paths.Node())
		}
		dot = nodelink.ToDOT(root, nopts)
	}
	if opts.Format == render.FormatDOT {
		return []byte(dot), nil
	}
	return nodelink.RenderSVG(ctx, dot)
}

func (r *Runner) cached(ctx context.Context, key, keyType string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	r.Logger.Debug("cache hit", "type", keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
