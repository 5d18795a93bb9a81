package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cdgpath/pkg/cache"
	"github.com/matzehuels/cdgpath/pkg/cdg"
	cdgerrors "github.com/matzehuels/cdgpath/pkg/errors"
	"github.com/matzehuels/cdgpath/pkg/observability"
	"github.com/matzehuels/cdgpath/pkg/render"
)

func newTestRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	r := NewRunner(c, nil, log.New(io.Discard))
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func loadFixture(t *testing.T, r *Runner) *Graph {
	t.Helper()
	g, err := r.Load(context.Background(), filepath.Join("testdata", "fixture.json"))
	require.NoError(t, err)
	return g
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		want    Options
		wantErr bool
	}{
		{"zero", Options{}, Options{Paths: DefaultPaths, Format: render.FormatText}, false},
		{"explicit", Options{Paths: 5, Format: "SVG"}, Options{Paths: 5, Format: render.FormatSVG}, false},
		{"negative paths", Options{Paths: -1}, Options{}, true},
		{"bad format", Options{Format: "png"}, Options{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.opts)
		})
	}
}

func TestLoadScoresGraph(t *testing.T) {
	r := newTestRunner(t, nil)
	g := loadFixture(t, r)

	assert.Equal(t, 7, g.Root().Score())
	assert.Equal(t, cdg.Stats{Nodes: 35, Decisions: 15, Leaves: 20, UncoveredLeaves: 20}, g.Stats())
	assert.Len(t, g.Hash(), 64)
	assert.Equal(t, 35, g.Builder().Len())
}

func TestLoadReader(t *testing.T) {
	r := newTestRunner(t, nil)
	f, err := os.Open(filepath.Join("testdata", "fixture.toml"))
	require.NoError(t, err)
	defer f.Close()

	g, err := r.LoadReader(context.Background(), "stdin", f, "toml")
	require.NoError(t, err)
	assert.Equal(t, 8, g.Root().Next().Next().Score())

	_, err = r.LoadReader(context.Background(), "stdin", strings.NewReader("{}"), "yaml")
	assert.True(t, cdgerrors.Is(err, cdgerrors.ErrCodeInvalidFormat), "got %v", err)
}

func TestLoadMissing(t *testing.T) {
	r := newTestRunner(t, nil)
	_, err := r.Load(context.Background(), filepath.Join("testdata", "nope.json"))
	assert.True(t, cdgerrors.Is(err, cdgerrors.ErrCodeFileNotFound), "got %v", err)
}

func TestCover(t *testing.T) {
	r := newTestRunner(t, nil)
	g := loadFixture(t, r)
	before := g.Hash()

	covered, err := r.Cover(context.Background(), g, []cdg.Decision{
		{ID: 9, Outcome: cdg.True}, {ID: 9, Outcome: cdg.False}, {ID: 10, Outcome: cdg.False},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, covered)
	assert.Equal(t, 16, g.Stats().UncoveredLeaves)
	assert.NotEqual(t, before, g.Hash(), "coverage changes the hash")
}

func TestCoverUnknown(t *testing.T) {
	r := newTestRunner(t, nil)
	g := loadFixture(t, r)

	covered, err := r.Cover(context.Background(), g, []cdg.Decision{{ID: 7, Outcome: cdg.True}, {ID: 404, Outcome: cdg.True}})
	require.Error(t, err)
	assert.Equal(t, 1, covered)
	assert.True(t, errors.Is(err, cdg.ErrUnknownNode))
	assert.True(t, cdgerrors.Is(err, cdgerrors.ErrCodeNotFound))
}

func TestRank(t *testing.T) {
	r := newTestRunner(t, nil)
	g := loadFixture(t, r)

	paths, err := r.Rank(context.Background(), g, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, paths.Len())
	assert.Equal(t, 7, g.Root().Score(), "ranking leaves scores intact")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Rank(ctx, g, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRankJSONCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := newTestRunner(t, c)
	g := loadFixture(t, r)
	ctx := context.Background()

	first, hit, err := r.RankJSON(ctx, g, Options{Paths: 2})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Contains(t, string(first), `"rank": 2`)

	second, hit, err := r.RankJSON(ctx, g, Options{Paths: 2})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)

	_, err = r.Cover(ctx, g, []cdg.Decision{{ID: 7, Outcome: cdg.True}})
	require.NoError(t, err)
	_, hit, err = r.RankJSON(ctx, g, Options{Paths: 2})
	require.NoError(t, err)
	assert.False(t, hit, "new coverage means a new key")
}

func TestRenderText(t *testing.T) {
	r := newTestRunner(t, nil)
	g := loadFixture(t, r)

	out, hit, err := r.Render(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.False(t, hit)
	lines := strings.Split(string(out), "\n")
	assert.Equal(t, "1 [7 T] argc > 1", lines[0])
	assert.Equal(t, "  T 4 [2 T]", lines[1])

	out, _, err = r.Render(context.Background(), g, Options{RenderPaths: true, Paths: 2})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "#1\n  1 -> true  (argc > 1)\n"))
	assert.Contains(t, string(out), "#2\n")
}

func TestRenderDOTCached(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := newTestRunner(t, c)
	g := loadFixture(t, r)
	ctx := context.Background()
	opts := Options{Format: render.FormatDOT, Highlight: true}

	dot, hit, err := r.Render(ctx, g, opts)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Contains(t, string(dot), "digraph CDG")
	assert.Contains(t, string(dot), "penwidth=3")

	again, hit, err := r.Render(ctx, g, opts)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, dot, again)

	opts.Refresh = true
	_, hit, err = r.Render(ctx, g, opts)
	require.NoError(t, err)
	assert.False(t, hit)

	paths, _, err := r.Render(ctx, g, Options{Format: render.FormatDOT, RenderPaths: true, Paths: 2})
	require.NoError(t, err)
	assert.Contains(t, string(paths), "cluster_2")
}

func TestExhaust(t *testing.T) {
	r := newTestRunner(t, nil)
	g := loadFixture(t, r)

	report, err := r.Exhaust(context.Background(), g, 0)
	require.NoError(t, err)
	assert.True(t, report.Exhausted)
	require.Len(t, report.Rounds, 2)
	assert.Equal(t, 13, report.Rounds[0].Covered)
	assert.Equal(t, 6, report.Rounds[1].Covered)
	assert.Equal(t, 0, report.Rounds[1].RootScore)
	assert.Equal(t, 20, report.Before.UncoveredLeaves)
	assert.Equal(t, 1, report.After.UncoveredLeaves, "top-level leaf 2 is under no decision")
}

func TestExhaustBounded(t *testing.T) {
	r := newTestRunner(t, nil)
	g := loadFixture(t, r)

	report, err := r.Exhaust(context.Background(), g, 1)
	require.NoError(t, err)
	assert.False(t, report.Exhausted)
	assert.Len(t, report.Rounds, 1)
	assert.Equal(t, 7, report.After.UncoveredLeaves)
}

func TestExhaustCanceled(t *testing.T) {
	r := newTestRunner(t, nil)
	g := loadFixture(t, r)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Exhaust(ctx, g, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

type countingHooks struct {
	observability.NoopEngineHooks
	loads, ranks, renders int
}

func (h *countingHooks) OnLoad(context.Context, string, int, time.Duration, error) { h.loads++ }
func (h *countingHooks) OnRank(context.Context, int, int, time.Duration)           { h.ranks++ }
func (h *countingHooks) OnRender(context.Context, string, time.Duration, error)    { h.renders++ }

func TestHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetEngineHooks(h)
	defer observability.Reset()

	r := newTestRunner(t, nil)
	g := loadFixture(t, r)
	_, err := r.Rank(context.Background(), g, 1)
	require.NoError(t, err)
	_, _, err = r.Render(context.Background(), g, Options{Format: render.FormatDOT})
	require.NoError(t, err)

	assert.Equal(t, 1, h.loads)
	assert.Equal(t, 1, h.ranks)
	assert.Equal(t, 1, h.renders)
}
