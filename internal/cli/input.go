package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/errors"
	"github.com/matzehuels/cdgpath/pkg/pipeline"
)

// stdinArg reads the graph from standard input.
const stdinArg = "-"

// inputOpts are the flags shared by every command that reads a graph.
type inputOpts struct {
	format  string // stdin format: json or toml
	noCache bool
	refresh bool
}

func (o *inputOpts) register(cmd *cobra.Command) {
	cmd.ValidArgsFunction = completeGraphFiles
	cmd.Flags().StringVar(&o.format, "input-format", "json", "graph format when reading stdin: json, toml")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached results and recompute")
}

// loadGraph reads the graph named by arg, which is a file path or "-".
func loadGraph(ctx context.Context, r *pipeline.Runner, arg string, opts inputOpts) (*pipeline.Graph, error) {
	if arg == stdinArg {
		return r.LoadReader(ctx, "stdin", os.Stdin, opts.format)
	}
	return r.Load(ctx, arg)
}

// parseDecision parses "ID:OUTCOME", e.g. "9:t" or "12:false".
func parseDecision(s string) (cdg.Decision, error) {
	idPart, outPart, ok := strings.Cut(s, ":")
	if !ok {
		return cdg.Decision{}, errors.New(errors.ErrCodeInvalidInput, "decision %q: want ID:OUTCOME", s)
	}
	id, err := strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil || id <= 0 {
		return cdg.Decision{}, errors.New(errors.ErrCodeInvalidInput, "decision %q: id must be a positive integer", s)
	}
	outcome, err := cdg.ParseBranch(strings.TrimSpace(outPart))
	if err != nil {
		return cdg.Decision{}, errors.Wrap(errors.ErrCodeInvalidBranch, err, "decision %q", s)
	}
	return cdg.Decision{ID: id, Outcome: outcome}, nil
}

func parseDecisions(values []string) ([]cdg.Decision, error) {
	out := make([]cdg.Decision, 0, len(values))
	for _, v := range values {
		d, err := parseDecision(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
