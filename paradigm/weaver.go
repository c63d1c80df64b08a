package paradigm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

// Weaver runs two passes. Pass one invokes each agent independently and
// weaves the responses into a context analysis: a numbered digest of every
// perspective plus the themes they share. Pass two re-invokes each pass-one
// survivor with that aggregate as context to produce a refined response.
//
// Tolerance policy: pass-one failures are absorbed as long as one agent
// succeeds; a pass-two failure falls back to the agent's pass-one response so
// refinement can only add.
type Weaver struct {
	// MinWordLen filters theme detection in the analysis; zero or negative
	// falls back to DefaultPatternMinWordLen.
	MinWordLen int
	// MaxFanOut bounds concurrent invocations per pass; zero or negative
	// falls back to DefaultMaxFanOut.
	MaxFanOut int
}

// Paradigm implements the Strategy interface.
func (*Weaver) Paradigm() core.Paradigm { return core.ParadigmWeaver }

// Execute implements the Strategy interface.
func (w *Weaver) Execute(ctx context.Context, run *Run) (core.Payload, error) {
	if len(run.Agents) == 0 {
		return nil, errors.New("weaver requires at least one agent")
	}

	firstPass := fanOut(ctx, run, w.MaxFanOut, func(core.Handle) core.Request {
		return core.Request{Task: run.Task}
	})

	var (
		survivors []core.Handle
		drafts    []core.Contribution
	)
	for i, o := range firstPass {
		if o.err != nil {
			continue
		}
		survivors = append(survivors, run.Agents[i])
		drafts = append(drafts, core.Contribution{AgentID: o.agentID, Content: o.content})
	}
	if len(survivors) == 0 {
		return nil, fmt.Errorf("all %d agents failed in the first pass: %w", len(run.Agents), firstError(firstPass))
	}

	minLen := w.MinWordLen
	if minLen <= 0 {
		minLen = DefaultPatternMinWordLen
	}
	analysis := contextAnalysis(run.Task, drafts, minLen)

	secondRun := &Run{Task: run.Task, Agents: survivors, Invoke: run.Invoke}
	secondPass := fanOut(ctx, secondRun, w.MaxFanOut, func(core.Handle) core.Request {
		return core.Request{Task: run.Task, Context: analysis}
	})

	refined := make([]core.Contribution, len(drafts))
	for i, o := range secondPass {
		if o.err != nil {
			refined[i] = drafts[i]
			continue
		}
		refined[i] = core.Contribution{AgentID: o.agentID, Content: o.content}
	}

	return core.WeaverPayload{ContextAnalysis: analysis, RefinedResponses: refined}, nil
}

// contextAnalysis aggregates first-pass responses into the shared context for
// the refinement pass.
func contextAnalysis(task string, drafts []core.Contribution, minWordLen int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n\n## Perspectives (%d)\n", task, len(drafts))
	for i, d := range drafts {
		fmt.Fprintf(&b, "\n%d. [%s] %s\n", i+1, d.AgentID, clip(d.Content, 240))
	}
	if themes := emergentPatterns(drafts, minWordLen); len(themes) > 0 {
		fmt.Fprintf(&b, "\n## Common themes\n\n%s\n", strings.Join(themes, ", "))
	}
	return b.String()
}

// clip truncates s to at most max runes, marking the cut.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
