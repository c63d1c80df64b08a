package paradigm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/evaluation"
)

// Ecosystem models the agents as a population iterated over generations. All
// agents are invoked each generation; the scorer decides which outputs are
// retained, and the retained outputs seed the next generation's context. The
// final generation's retained outputs form the emergent synthesis, with the
// full retention history recorded as lineage.
//
// Tolerance policy: failures within a generation are absorbed; a generation
// in which every agent fails aborts. The top-scoring output of a generation
// is always retained, so the population never goes extinct mid-run.
type Ecosystem struct {
	// Generations is the number of iterations; zero or negative falls back to
	// DefaultEcosystemGenerations.
	Generations int
	// Scorer judges retention; nil falls back to evaluation.LengthScorer.
	Scorer evaluation.Scorer
	// MaxFanOut bounds concurrent invocations per generation; zero or
	// negative falls back to DefaultMaxFanOut.
	MaxFanOut int
}

// Paradigm implements the Strategy interface.
func (*Ecosystem) Paradigm() core.Paradigm { return core.ParadigmEcosystem }

// Execute implements the Strategy interface.
func (e *Ecosystem) Execute(ctx context.Context, run *Run) (core.Payload, error) {
	if len(run.Agents) == 0 {
		return nil, errors.New("ecosystem requires at least one agent")
	}

	generations := e.Generations
	if generations <= 0 {
		generations = DefaultEcosystemGenerations
	}
	scorer := e.Scorer
	if scorer == nil {
		scorer = evaluation.LengthScorer{}
	}

	var (
		lineage = make([]core.GenerationRecord, 0, generations)
		seed    string
	)
	for gen := 1; gen <= generations; gen++ {
		outcomes := fanOut(ctx, run, e.MaxFanOut, func(core.Handle) core.Request {
			return core.Request{Task: run.Task, Context: seed}
		})

		offspring := successes(outcomes)
		if len(offspring) == 0 {
			return nil, fmt.Errorf("generation %d: every agent failed: %w", gen, firstError(outcomes))
		}

		retained, discarded := partition(offspring, scorer)
		lineage = append(lineage, core.GenerationRecord{
			Generation:   gen,
			Retained:     retained,
			DiscardedIDs: discarded,
		})
		seed = generationContext(gen, retained)
	}

	final := lineage[len(lineage)-1].Retained
	parts := make([]string, len(final))
	for i, c := range final {
		parts[i] = c.Content
	}

	return core.EcosystemPayload{
		Generations:       generations,
		EmergentSynthesis: strings.Join(parts, "\n\n"),
		Lineage:           lineage,
	}, nil
}

// partition splits a generation's outputs into retained and discarded. An
// output is retained when it reaches the retention threshold; the top scorer
// is retained unconditionally.
func partition(offspring []core.Contribution, scorer evaluation.Scorer) ([]core.Contribution, []string) {
	best := 0
	scores := make([]float64, len(offspring))
	for i, c := range offspring {
		scores[i] = scorer.Score(c.Content)
		if scores[i] > scores[best] {
			best = i
		}
	}

	retained := make([]core.Contribution, 0, len(offspring))
	discarded := []string{}
	for i, c := range offspring {
		if i == best || scores[i] >= evaluation.RetentionThreshold {
			retained = append(retained, c)
			continue
		}
		discarded = append(discarded, c.AgentID)
	}
	return retained, discarded
}

func generationContext(gen int, retained []core.Contribution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Retained outputs of generation %d\n", gen)
	for _, c := range retained {
		fmt.Fprintf(&b, "\n[%s] %s\n", c.AgentID, c.Content)
	}
	return b.String()
}
