package cli

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cdgpath/pkg/pipeline"
	"github.com/matzehuels/cdgpath/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	input      inputOpts
	format     string // text, dot or svg
	output     string // output file; stdout when empty
	pathsOnly  bool   // draw the ranked paths instead of the forest
	k          int    // number of paths for --paths-only
	highlight  bool   // emphasize the best path in the forest
	hideScores bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render <graph>",
		Short: "Draw a CDG or its top paths",
		Long: `Draw a CDG or its top paths as a text outline, Graphviz DOT or SVG.

Decisions are diamonds labelled with their score, leaves are boxes and
covered leaves are greyed out. False edges are dashed. With --highlight the
best path is drawn in bold; with --paths-only each ranked path becomes its
own cluster.`,
		Example: `  cdgpath render graph.json
  cdgpath render -f svg --highlight -o graph.svg graph.json
  cdgpath render -f dot --paths-only -k 5 graph.json | dot -Tpng > paths.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = formatFromOutput(opts.output)
			}
			if !cmd.Flags().Changed("paths") {
				opts.k = c.config.Paths
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}
	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: "+strings.Join(formatNames(), ", ")+" (default from -o, else text)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.pathsOnly, "paths-only", false, "draw the ranked paths instead of the whole graph")
	cmd.Flags().IntVarP(&opts.k, "paths", "k", pipeline.DefaultPaths, "number of paths for --paths-only")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "emphasize the best path")
	cmd.Flags().BoolVar(&opts.hideScores, "hide-scores", false, "omit scores from diagrams")
	return cmd
}

func (c *CLI) runRender(ctx context.Context, arg string, opts renderOpts) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.input.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, err := loadGraph(ctx, runner, arg, opts.input)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Paths:       opts.k,
		Format:      format,
		RenderPaths: opts.pathsOnly,
		Highlight:   opts.highlight,
		HideScores:  opts.hideScores,
		Refresh:     opts.input.refresh,
	}

	var spin *spinner
	if format == render.FormatSVG && opts.output != "" {
		spin = startSpinner(ctx, os.Stderr, "Laying out SVG...", 80*time.Millisecond)
	}
	data, cached, err := runner.Render(ctx, g, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if err := writeOutput(opts.output, data); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Rendered %s", format)
		printStats(g.Stats(), cached)
		printFile(opts.output)
	}
	return nil
}

// formatFromOutput guesses the format from the output file extension.
func formatFromOutput(path string) string {
	for _, f := range render.Formats {
		if path != "" && strings.HasSuffix(strings.ToLower(path), f.Ext()) {
			return string(f)
		}
	}
	return string(render.FormatText)
}

func formatNames() []string {
	names := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		names[i] = string(f)
	}
	return names
}
