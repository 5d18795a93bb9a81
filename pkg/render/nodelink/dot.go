package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cdgpath/pkg/builder"
	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Highlight marks decisions and the branch taken at each.
	Highlight []cdg.Decision
	// HideScores drops scores and outcomes from decision labels.
	HideScores bool
}

const header = `  rankdir=TB;
  bgcolor="transparent";
  node [fontname="Helvetica", fontsize=14];
  edge [fontname="Helvetica", fontsize=12];
  ranksep=0.4;
  nodesep=0.3;
`

// ToDOT converts the forest rooted at root to Graphviz DOT.
func ToDOT(root *cdg.Node, opts Options) string {
	hl := make(map[int]cdg.Branch, len(opts.Highlight))
	for _, d := range opts.Highlight {
		hl[d.ID] = d.Outcome
	}

	var buf bytes.Buffer
	buf.WriteString("digraph CDG {\n")
	buf.WriteString(header)
	buf.WriteString("\n")

	var edges []string
	builder.Walk(root, func(n *cdg.Node, _ int) {
		_, marked := hl[n.ID()]
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeName("", n), strings.Join(nodeAttrs(n, marked, opts.HideScores), ", "))
		if p := n.Parent(); p != nil {
			side, _ := n.Side()
			taken, ok := hl[p.ID()]
			edges = append(edges, fmtEdge(nodeName("", p), nodeName("", n), side, ok && taken == side))
		}
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// PathsToDOT converts a ranked path list to DOT, one cluster per rank.
func PathsToDOT(p *cdg.Path) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Paths {\n")
	buf.WriteString(header)

	for i, tree := range p.Slice() {
		rank := i + 1
		prefix := fmt.Sprintf("r%d_", rank)
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", rank)
		fmt.Fprintf(&buf, "    label=%q;\n    style=\"rounded,dashed\";\n", fmt.Sprintf("#%d", rank))

		var edges []string
		builder.Walk(tree, func(n *cdg.Node, _ int) {
			label := strconv.Itoa(n.ID())
			if n.Expr() != "" {
				label += "\n" + n.Expr()
			}
			fmt.Fprintf(&buf, "    %s [shape=diamond, label=%q];\n", nodeName(prefix, n), label)
			for c := n.Children(n.Outcome()); c != nil; c = c.Next() {
				edges = append(edges, "  "+fmtEdge(nodeName(prefix, n), nodeName(prefix, c), n.Outcome(), false))
			}
			if n.IsLeaf() {
				end := nodeName(prefix, n) + "_end"
				fmt.Fprintf(&buf, "    %s [shape=point];\n", end)
				edges = append(edges, "  "+fmtEdge(nodeName(prefix, n), end, n.Outcome(), false))
			}
		})
		for _, e := range edges {
			buf.WriteString(e)
		}
		buf.WriteString("  }\n")
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(prefix string, n *cdg.Node) string {
	return fmt.Sprintf("%sn%d", prefix, n.ID())
}

func nodeAttrs(n *cdg.Node, marked, hideScores bool) []string {
	if n.IsLeaf() {
		attrs := []string{"shape=box", fmt.Sprintf("label=%q", strconv.Itoa(n.ID()))}
		if n.Score() == 0 {
			attrs = append(attrs, `style="filled"`, "fillcolor=lightgrey", "fontcolor=dimgrey")
		}
		return attrs
	}

	label := strconv.Itoa(n.ID())
	if n.Expr() != "" {
		label += ": " + n.Expr()
	}
	if !hideScores {
		label += fmt.Sprintf("\nscore %d %s", n.Score(), render.BranchMark(n.Outcome()))
	}
	attrs := []string{"shape=diamond", fmt.Sprintf("label=%q", label)}
	if marked {
		attrs = append(attrs, "penwidth=3", "color=royalblue")
	}
	if n.Score() == 0 {
		attrs = append(attrs, "fontcolor=dimgrey")
	}
	return attrs
}

func fmtEdge(from, to string, side cdg.Branch, bold bool) string {
	attrs := fmt.Sprintf("label=%q", render.BranchMark(side))
	if !side {
		attrs += ", style=dashed"
	}
	if bold {
		attrs += ", penwidth=3, color=royalblue"
	}
	return fmt.Sprintf("  %s -> %s [%s];\n", from, to, attrs)
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the drawing scales from a zero
// origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
