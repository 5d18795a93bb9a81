package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/render"
)

type scoreOpts struct {
	input   inputOpts
	json    bool
	summary bool
}

// scoreReport is the --json output of the score command.
type scoreReport struct {
	Source   string         `json:"source"`
	Stats    cdg.Stats      `json:"stats"`
	Best     *cdg.Decision  `json:"best,omitempty"`
	Score    int            `json:"score"`
	TopChain []cdg.Decision `json:"top_chain"`
}

func (c *CLI) scoreCommand() *cobra.Command {
	var opts scoreOpts
	cmd := &cobra.Command{
		Use:   "score <graph>",
		Short: "Score a CDG and print it with decision scores",
		Long: `Score a CDG and print it as an indented outline.

Each decision shows how many uncovered leaves its preferred outcome reaches
and which outcome that is. Uncovered leaves are marked ".", covered ones "x".`,
		Example: `  cdgpath score graph.json
  cdgpath score --summary graph.toml
  cat graph.json | cdgpath score -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScore(cmd.Context(), args[0], opts)
		},
	}
	opts.input.register(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print only the summary, not the outline")
	return cmd
}

func (c *CLI) runScore(ctx context.Context, arg string, opts scoreOpts) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, err := loadGraph(ctx, runner, arg, opts.input)
	if err != nil {
		return err
	}

	report := scoreReport{Source: g.Source, Stats: g.Stats(), TopChain: cdg.TopChain(g.Root())}
	if best := cdg.BestDecision(g.Root()); best != nil {
		report.Best = &cdg.Decision{ID: best.ID(), Outcome: best.Outcome()}
		report.Score = best.Score()
	}
	if report.TopChain == nil {
		report.TopChain = []cdg.Decision{}
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if !opts.summary {
		if err := render.WriteOutline(os.Stdout, g.Root()); err != nil {
			return err
		}
		printNewline()
	}
	printSuccess("Scored %s", g.Source)
	printStats(report.Stats, false)
	if report.Best == nil {
		printInfo("Every reachable leaf is covered")
		return nil
	}
	printKeyValue("best", report.Best.String())
	printKeyValue("score", strconv.Itoa(report.Score))
	printKeyValue("top chain", formatDecisions(report.TopChain, 12))
	printNewline()
	printNextStep("Rank test paths", fmt.Sprintf("%s paths %s", appName, arg))
	return nil
}
