package cli

import (
	"context"
	"encoding/json"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	cdgio "github.com/matzehuels/cdgpath/pkg/io"
	"github.com/matzehuels/cdgpath/pkg/pipeline"
)

type exhaustOpts struct {
	input     inputOpts
	maxRounds int
	json      bool
	output    string
}

func (c *CLI) exhaustCommand() *cobra.Command {
	var opts exhaustOpts
	cmd := &cobra.Command{
		Use:   "exhaust <graph>",
		Short: "Simulate testing the best path until nothing is left",
		Long: `Simulate a test campaign: take the best path, treat every decision on it
as executed, rescore, and repeat until no uncovered leaf is reachable.

The round table shows how quickly coverage saturates. Leaves that no
decision leads to stay uncovered.`,
		Example: `  cdgpath exhaust graph.json
  cdgpath exhaust --max-rounds 5 -o covered.json graph.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExhaust(cmd.Context(), args[0], opts)
		},
	}
	opts.input.register(cmd)
	cmd.Flags().IntVar(&opts.maxRounds, "max-rounds", 0, "stop after this many rounds (0 = until exhausted)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the fully covered graph (.json or .toml)")
	return cmd
}

func (c *CLI) runExhaust(ctx context.Context, arg string, opts exhaustOpts) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, err := loadGraph(ctx, runner, arg, opts.input)
	if err != nil {
		return err
	}

	report, err := runner.Exhaust(ctx, g, opts.maxRounds)
	if err != nil {
		return err
	}
	if opts.output != "" {
		if err := cdgio.ExportGraph(g.Builder(), opts.output); err != nil {
			return err
		}
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printExhaustReport(report)
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}

func printExhaustReport(r *pipeline.ExhaustReport) {
	rows := make([][]string, 0, len(r.Rounds))
	total := 0
	for i, round := range r.Rounds {
		total += round.Covered
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(round.Covered),
			strconv.Itoa(total),
			strconv.Itoa(round.RootScore),
			formatDecisions(round.Decisions, 8),
		})
	}
	if len(rows) > 0 {
		printTable([]string{"Round", "Covered", "Total", "Best", "Path"}, rows)
	}

	if r.Exhausted {
		printSuccess("Exhausted after %d rounds", len(r.Rounds))
	} else {
		printWarning("Stopped after %d rounds", len(r.Rounds))
	}
	printStats(r.After, false)
	if r.After.UncoveredLeaves > 0 && r.Exhausted {
		printDetail("%d leaves are not under any decision", r.After.UncoveredLeaves)
	}
}
