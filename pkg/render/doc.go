// Package render turns CDG forests and extracted paths into text and
// diagrams.
//
// The package itself writes plain-text outlines ([WriteOutline],
// [WritePathOutline]) that show every node with its score and preferred
// outcome. The [nodelink] subpackage produces Graphviz DOT and renders it to
// SVG in-process.
//
//	render.WriteOutline(os.Stdout, root)
//	dot := nodelink.ToDOT(root, nodelink.Options{Highlight: cdg.Decisions(tree)})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/cdgpath/pkg/render/nodelink
package render
