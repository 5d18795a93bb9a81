// Package nodelink renders CDG forests as node-link diagrams with Graphviz.
//
// Decisions are drawn as diamonds labelled with id, predicate and score;
// leaves are boxes, filled grey once covered. Edges carry the branch they
// belong to ("T" or "F"). Sibling order is kept left to right.
//
// Convert a forest to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Highlight: decisions to emphasize, typically [cdg.Decisions] of a
//     top path. Highlighted decisions get a bold outline and the edge to
//     their chosen branch is drawn thick.
//   - HideScores: omit scores from labels.
//
// [PathsToDOT] draws a ranked path list instead, one cluster per rank.
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink
