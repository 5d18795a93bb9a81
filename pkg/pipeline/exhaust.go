package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/cdgpath/pkg/cdg"
)

// Round is one step of an exhaustion run.
type Round struct {
	// Decisions is the best path of the round, flattened.
	Decisions []cdg.Decision `json:"decisions"`
	// Covered is the number of leaves the path newly covered.
	Covered int `json:"covered"`
	// RootScore is the top-level decision score after the round.
	RootScore int `json:"root_score"`
}

// ExhaustReport summarizes an exhaustion run.
type ExhaustReport struct {
	Before cdg.Stats `json:"before"`
	After  cdg.Stats `json:"after"`
	Rounds []Round   `json:"rounds"`
	// Exhausted is true when the run stopped because no path was left,
	// false when it hit the round limit.
	Exhausted bool `json:"exhausted"`
}

// Exhaust simulates a test campaign: it repeatedly takes the best path,
// treats every decision on it as executed, and rescores, until no path is
// left or maxRounds rounds ran. A non-positive maxRounds means one round per
// uncovered leaf, which always suffices since each round covers at least one.
//
// Exhaust mutates g's coverage. It checks ctx between rounds.
func (r *Runner) Exhaust(ctx context.Context, g *Graph, maxRounds int) (*ExhaustReport, error) {
	report := &ExhaustReport{Before: g.Stats()}
	root := g.Root()
	if root == nil {
		report.After = report.Before
		report.Exhausted = true
		return report, nil
	}
	if maxRounds <= 0 {
		maxRounds = report.Before.UncoveredLeaves
	}

	start := time.Now()
	for len(report.Rounds) < maxRounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		paths := cdg.TopPaths(root, 1)
		if paths == nil {
			report.Exhausted = true
			break
		}
		decisions := cdg.Decisions(paths.Node())
		cdg.DeletePaths(paths)

		covered, err := cdg.CoverNodes(root, decisions...)
		if err != nil {
			return nil, err
		}
		cdg.UpdateCDG(root)
		round := Round{Decisions: decisions, Covered: covered, RootScore: topScore(root)}
		report.Rounds = append(report.Rounds, round)
		r.Logger.Debug("exhaust round",
			"round", len(report.Rounds),
			"decisions", len(decisions),
			"covered", covered,
			"root_score", round.RootScore)
	}
	if !report.Exhausted && cdg.TopPaths(root, 1) == nil {
		report.Exhausted = true
	}
	report.After = g.Stats()

	r.Logger.Info("exhausted paths",
		"rounds", len(report.Rounds),
		"covered", report.Before.UncoveredLeaves-report.After.UncoveredLeaves,
		"remaining", report.After.UncoveredLeaves,
		"duration", time.Since(start))
	return report, nil
}

// topScore is the best score among the top-level decisions.
func topScore(root *cdg.Node) int {
	if best := cdg.BestDecision(root); best != nil {
		return best.Score()
	}
	return 0
}
