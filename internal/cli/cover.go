package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/errors"
	cdgio "github.com/matzehuels/cdgpath/pkg/io"
)

type coverOpts struct {
	input     inputOpts
	decisions []string
	output    string
	inPlace   bool
	strict    bool
}

func (c *CLI) coverCommand() *cobra.Command {
	var opts coverOpts
	cmd := &cobra.Command{
		Use:   "cover <graph> [coverage...]",
		Short: "Apply observed decisions to a CDG",
		Long: `Apply observed decisions to a CDG and rescore it.

Decisions come from coverage files (JSON or TOML with a "covered" list of
{id, outcome} entries) and from --decision flags. Every leaf on the named
branch of each decision is marked covered. Unknown decision ids are reported
and skipped unless --strict is set.`,
		Example: `  cdgpath cover graph.json run1.json run2.json -o graph.json
  cdgpath cover graph.toml -d 9:t -d 10:f --in-place`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.inPlace {
				if opts.output != "" {
					return fmt.Errorf("--in-place and --output are mutually exclusive")
				}
				if args[0] == stdinArg {
					return fmt.Errorf("--in-place needs a graph file, not stdin")
				}
				opts.output = args[0]
			}
			return c.runCover(cmd.Context(), args[0], args[1:], opts)
		},
	}
	opts.input.register(cmd)
	cmd.Flags().StringArrayVarP(&opts.decisions, "decision", "d", nil, "observed decision as ID:OUTCOME (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the updated graph (.json or .toml)")
	cmd.Flags().BoolVar(&opts.inPlace, "in-place", false, "overwrite the input graph")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on unknown decision ids")
	return cmd
}

func (c *CLI) runCover(ctx context.Context, arg string, files []string, opts coverOpts) error {
	decisions, err := collectDecisions(files, opts.decisions)
	if err != nil {
		return err
	}
	if len(decisions) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no decisions given: pass coverage files or --decision")
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, err := loadGraph(ctx, runner, arg, opts.input)
	if err != nil {
		return err
	}
	before := g.Stats().UncoveredLeaves

	covered, err := runner.Cover(ctx, g, decisions)
	if err != nil {
		if opts.strict || !stderrors.Is(err, cdg.ErrUnknownNode) {
			return err
		}
		printWarning("%s", errors.UserMessage(err))
		printDetail("%v", stderrors.Unwrap(err))
	}

	printSuccess("Covered %d of %d uncovered leaves", covered, before)
	printStats(g.Stats(), false)

	if opts.output != "" {
		if err := cdgio.ExportGraph(g.Builder(), opts.output); err != nil {
			return err
		}
		printFile(opts.output)
		printNewline()
		printNextStep("Rank what is left", fmt.Sprintf("%s paths %s", appName, opts.output))
	}
	return nil
}

// collectDecisions reads every coverage file and appends the flag values.
func collectDecisions(files, flags []string) ([]cdg.Decision, error) {
	var all []cdg.Decision
	for _, f := range files {
		ds, err := cdgio.ImportCoverage(f)
		if err != nil {
			return nil, err
		}
		all = append(all, ds...)
	}
	fromFlags, err := parseDecisions(flags)
	if err != nil {
		return nil, err
	}
	return append(all, fromFlags...), nil
}
