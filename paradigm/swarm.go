package paradigm

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/internal/textutil"
)

// Swarm invokes all agents concurrently with the same task and no shared
// context, then compares the outputs pairwise for overlapping themes. A theme
// surfacing in at least two independent responses becomes an emergent
// pattern.
//
// Tolerance policy: individual failures are absorbed; only an all-agent
// failure aborts. Pattern detection needs at least two responses to say
// anything; with a single agent EmergentPatterns is empty.
type Swarm struct {
	// MinWordLen filters short connective words out of theme detection; zero
	// or negative falls back to DefaultPatternMinWordLen.
	MinWordLen int
	// MaxFanOut bounds concurrent invocations; zero or negative falls back to
	// DefaultMaxFanOut.
	MaxFanOut int
}

// Paradigm implements the Strategy interface.
func (*Swarm) Paradigm() core.Paradigm { return core.ParadigmSwarm }

// Execute implements the Strategy interface.
func (s *Swarm) Execute(ctx context.Context, run *Run) (core.Payload, error) {
	if len(run.Agents) == 0 {
		return nil, errors.New("swarm requires at least one agent")
	}

	outcomes := fanOut(ctx, run, s.MaxFanOut, func(core.Handle) core.Request {
		return core.Request{Task: run.Task}
	})

	responses := successes(outcomes)
	if len(responses) == 0 {
		return nil, fmt.Errorf("all %d agents failed: %w", len(run.Agents), firstError(outcomes))
	}

	minLen := s.MinWordLen
	if minLen <= 0 {
		minLen = DefaultPatternMinWordLen
	}

	return core.SwarmPayload{
		Responses:        responses,
		EmergentPatterns: emergentPatterns(responses, minLen),
	}, nil
}

// emergentPatterns collects the union of pairwise shared themes, sorted and
// deduplicated. Fewer than two responses yield no patterns.
func emergentPatterns(responses []core.Contribution, minWordLen int) []string {
	patterns := []string{}
	seen := map[string]struct{}{}
	for i := 0; i < len(responses); i++ {
		for j := i + 1; j < len(responses); j++ {
			for _, theme := range textutil.SharedThemes(responses[i].Content, responses[j].Content, minWordLen) {
				if _, ok := seen[theme]; ok {
					continue
				}
				seen[theme] = struct{}{}
				patterns = append(patterns, theme)
			}
		}
	}
	sort.Strings(patterns)
	return patterns
}
