package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/cdgpath/pkg/pipeline"
)

var forestPath = filepath.Join("..", "..", "examples", "forest.json")

func newTestExplore(t *testing.T) ExploreModel {
	t.Helper()
	r := pipeline.NewRunner(nil, nil, newLogger(io.Discard, LogInfo))
	g, err := r.Load(context.Background(), forestPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return NewExploreModel(context.Background(), r, g)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m ExploreModel, keys ...string) ExploreModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(ExploreModel)
	}
	return m
}

func TestExploreRows(t *testing.T) {
	m := newTestExplore(t)
	if len(m.Rows) != 35 {
		t.Fatalf("rows = %d, want 35", len(m.Rows))
	}
	if id := m.Rows[0].node.ID(); id != 1 {
		t.Errorf("first row = %d, want 1", id)
	}
}

func TestExploreNavigation(t *testing.T) {
	m := newTestExplore(t)

	m = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.Cursor)
	}
	m = press(m, "down", "j")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}
	if m.selected().ID() != 6 {
		t.Errorf("selected = %d, want 6", m.selected().ID())
	}
}

func TestExploreCover(t *testing.T) {
	m := newTestExplore(t)

	// Row 0 is decision 1; its true branch holds only decisions.
	m = press(m, "t")
	if m.Changed {
		t.Error("covering a branch without leaves should not change the graph")
	}

	// Row 1 is decision 4, whose true branch holds leaves 6 and 8.
	m = press(m, "down", "enter")
	if !m.Changed {
		t.Fatal("covering decision 4 should change the graph")
	}
	if !strings.Contains(m.Status, "2 new leaves") {
		t.Errorf("status = %q", m.Status)
	}
	if got := m.graph.Stats().UncoveredLeaves; got != 18 {
		t.Errorf("uncovered = %d, want 18", got)
	}
}

func TestExploreCoverLeaf(t *testing.T) {
	m := newTestExplore(t)
	m = press(m, "down", "down", "t")
	if !strings.Contains(m.Status, "leaf") {
		t.Errorf("status = %q, want leaf notice", m.Status)
	}
}

func TestExploreJumpToBest(t *testing.T) {
	m := newTestExplore(t)
	m = press(m, "b")
	if id := m.selected().ID(); id != 34 {
		t.Errorf("best = %d, want 34", id)
	}
	if !strings.Contains(m.View(), "34") {
		t.Error("view should show the selected decision")
	}
}

func TestExploreQuit(t *testing.T) {
	m := newTestExplore(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
