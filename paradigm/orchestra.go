package paradigm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

// Orchestra elects the first agent as conductor. The conductor is invoked
// first with the bare task to produce guidance; the remaining agents are then
// invoked in request order, each receiving the task plus the guidance as
// added context.
//
// Tolerance policy: the conductor is load-bearing, so its failure aborts the
// run. Individual contributor failures are absorbed (the contribution is
// skipped) as long as at least one contributor succeeds; with a single agent
// the payload degrades to guidance only.
type Orchestra struct{}

// Paradigm implements the Strategy interface.
func (*Orchestra) Paradigm() core.Paradigm { return core.ParadigmOrchestra }

// Execute implements the Strategy interface.
func (*Orchestra) Execute(ctx context.Context, run *Run) (core.Payload, error) {
	if len(run.Agents) == 0 {
		return nil, errors.New("orchestra requires at least one agent")
	}

	conductor := run.Agents[0]
	guidance, err := run.Invoke(ctx, conductor, core.Request{Task: run.Task})
	if err != nil {
		return nil, fmt.Errorf("conductor %s failed: %w", conductor.ID(), err)
	}

	payload := core.OrchestraPayload{
		ConductorID:       conductor.ID(),
		ConductorGuidance: guidance.Content,
		Contributions:     []core.Contribution{},
	}

	players := run.Agents[1:]
	if len(players) == 0 {
		return payload, nil
	}

	background := conductorContext(guidance.Content)
	var lastErr error
	for _, h := range players {
		resp, err := run.Invoke(ctx, h, core.Request{Task: run.Task, Context: background})
		if err != nil {
			lastErr = err
			continue
		}
		payload.Contributions = append(payload.Contributions, core.Contribution{AgentID: h.ID(), Content: resp.Content})
	}

	if len(payload.Contributions) == 0 {
		return nil, fmt.Errorf("all %d contributors failed: %w", len(players), lastErr)
	}
	return payload, nil
}

func conductorContext(guidance string) string {
	var b strings.Builder
	b.WriteString("## Conductor guidance\n\n")
	b.WriteString(guidance)
	return b.String()
}
