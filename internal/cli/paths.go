package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/pipeline"
)

type pathsOpts struct {
	input  inputOpts
	k      int
	json   bool
	output string
}

func (c *CLI) pathsCommand() *cobra.Command {
	var opts pathsOpts
	cmd := &cobra.Command{
		Use:   "paths <graph>",
		Short: "Rank the top test paths through a CDG",
		Long: `Rank the top test paths through a CDG.

Each path is a tree of decisions with the outcome to force at each one.
Later paths only count leaves that earlier paths have not reached, so the
list reads as a test plan: run the first path, then the second, and so on.`,
		Example: `  cdgpath paths graph.json
  cdgpath paths -k 10 --json -o plan.json graph.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("paths") {
				opts.k = c.config.Paths
			}
			return c.runPaths(cmd.Context(), args[0], opts)
		},
	}
	opts.input.register(cmd)
	cmd.Flags().IntVarP(&opts.k, "paths", "k", pipeline.DefaultPaths, "number of paths to rank")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the ranking as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON ranking to a file (implies --json)")
	return cmd
}

func (c *CLI) runPaths(ctx context.Context, arg string, opts pathsOpts) error {
	if opts.k < 1 {
		return fmt.Errorf("--paths must be at least 1, got %d", opts.k)
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

	if opts.json || opts.output != "" {
		data, cached, err := runner.RankJSON(ctx, g, pipeline.Options{Paths: opts.k, Refresh: opts.input.refresh})
		if err != nil {
			return err
		}
		if err := writeOutput(opts.output, data); err != nil {
			return err
		}
		if opts.output != "" {
			printSuccess("Ranked paths")
			printStats(g.Stats(), cached)
			printFile(opts.output)
		}
		return nil
	}

	prog := newProgress(loggerFromContext(ctx))
	paths, err := runner.Rank(ctx, g, opts.k)
	if err != nil {
		return err
	}
	if paths == nil {
		printInfo("Every reachable leaf is covered")
		return nil
	}
	defer cdg.DeletePaths(paths)
	prog.done(fmt.Sprintf("Ranked %d paths", paths.Len()))

	rows := make([][]string, 0, paths.Len())
	for i, tree := range paths.Slice() {
		ds := cdg.Decisions(tree)
		rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(len(ds)), formatDecisions(ds, 10)})
	}
	printTable([]string{"#", "Decisions", "Path"}, rows)
	if paths.Len() < opts.k {
		printDetail("%d of %d requested paths; the rest of the graph is covered", paths.Len(), opts.k)
	}
	printNewline()
	printNextStep("Draw them", fmt.Sprintf("%s render --paths-only -k %d %s", appName, paths.Len(), arg))
	return nil
}
