package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cdgpath/pkg/builder"
	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/errors"
	cdgio "github.com/matzehuels/cdgpath/pkg/io"
	"github.com/matzehuels/cdgpath/pkg/observability"
	"github.com/matzehuels/cdgpath/pkg/pipeline"
	"github.com/matzehuels/cdgpath/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ExploreModel - Interactive CDG browser
// =============================================================================

type exploreRow struct {
	node  *cdg.Node
	depth int
}

// ExploreModel is the bubbletea model for browsing a scored CDG. Covering a
// decision from the browser rescores the graph immediately.
type ExploreModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	graph  *pipeline.Graph

	Rows    []exploreRow
	Cursor  int
	Offset  int
	Height  int
	Status  string
	Changed bool
}

// NewExploreModel creates a browser positioned on the first node.
func NewExploreModel(ctx context.Context, r *pipeline.Runner, g *pipeline.Graph) ExploreModel {
	m := ExploreModel{ctx: ctx, runner: r, graph: g, Height: 20}
	builder.Walk(g.Root(), func(n *cdg.Node, depth int) {
		m.Rows = append(m.Rows, exploreRow{node: n, depth: depth})
	})
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "b":
			m.jumpToBest()
		case "t":
			m.cover(cdg.True)
		case "f":
			m.cover(cdg.False)
		case "enter", " ":
			if n := m.selected(); n != nil {
				m.cover(n.Outcome())
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 7
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m *ExploreModel) move(delta int) {
	m.Cursor += delta
	m.Cursor = max(0, min(m.Cursor, len(m.Rows)-1))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m *ExploreModel) selected() *cdg.Node {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return nil
	}
	return m.Rows[m.Cursor].node
}

// jumpToBest moves to the deepest decision on the top chain.
func (m *ExploreModel) jumpToBest() {
	chain := cdg.TopChain(m.graph.Root())
	if len(chain) == 0 {
		m.Status = "nothing left to cover"
		return
	}
	target := chain[len(chain)-1]
	for i, row := range m.Rows {
		if row.node.ID() == target.ID {
			m.move(i - m.Cursor)
			m.Status = fmt.Sprintf("best decision %s", target)
			return
		}
	}
}

func (m *ExploreModel) cover(outcome cdg.Branch) {
	n := m.selected()
	if n == nil {
		return
	}
	if n.IsLeaf() {
		m.Status = fmt.Sprintf("%d is a leaf", n.ID())
		return
	}
	d := cdg.Decision{ID: n.ID(), Outcome: outcome}
	covered, err := m.runner.Cover(m.ctx, m.graph, []cdg.Decision{d})
	if err != nil {
		m.Status = errors.UserMessage(err)
		return
	}
	if covered > 0 {
		m.Changed = true
	}
	m.Status = fmt.Sprintf("covered %s: %d new leaves", d, covered)
}

func (m ExploreModel) View() string {
	var b strings.Builder

	s := m.graph.Stats()
	b.WriteString(StyleTitle.Render("Explore " + m.graph.Source))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d leaves uncovered", s.UncoveredLeaves, s.Leaves)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ cover preferred  t/f cover branch  b best  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	for i := m.Offset; i < end; i++ {
		row := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + strings.Repeat("  ", row.depth) + render.OutlineLine(row.node)
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case row.node.Score() == 0:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	if m.Status != "" {
		b.WriteString("  " + StyleHighlight.Render(m.Status))
	}
	return b.String()
}

// =============================================================================
// explore command
// =============================================================================

type exploreOpts struct {
	input  inputOpts
	output string
}

func (c *CLI) exploreCommand() *cobra.Command {
	var opts exploreOpts
	cmd := &cobra.Command{
		Use:   "explore <graph>",
		Short: "Browse a scored CDG interactively",
		Long: `Browse a scored CDG in the terminal.

Select a decision and press enter to mark its preferred branch as covered,
or t/f to cover a specific branch. Scores update as you go. With -o the
updated graph is written on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == stdinArg {
				return fmt.Errorf("explore reads the terminal; pass a graph file")
			}
			return c.runExplore(cmd.Context(), args[0], opts)
		},
	}
	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the updated graph on exit (.json or .toml)")
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, arg string, opts exploreOpts) error {
	// Log lines would tear the full-screen view.
	ctx = withLogger(ctx, newLogger(io.Discard, LogInfo))
	observability.Reset()

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, err := loadGraph(ctx, runner, arg, opts.input)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewExploreModel(ctx, runner, g), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}

	m := final.(ExploreModel)
	printStats(g.Stats(), false)
	if opts.output != "" && m.Changed {
		if err := cdgio.ExportGraph(g.Builder(), opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}
	return nil
}
