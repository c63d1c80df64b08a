package paradigm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

// Mesh invokes every agent once per round in a fixed ring order. Each turn
// receives the accumulated transcript of all prior turns, so within a round
// every agent after the first reacts to the turns already taken, and later
// rounds build on the whole conversation.
//
// Tolerance policy: a failed turn is skipped; a round in which every agent
// fails aborts the run.
type Mesh struct {
	// Rounds is the number of ring passes; zero or negative falls back to
	// DefaultMeshRounds.
	Rounds int
}

// Paradigm implements the Strategy interface.
func (*Mesh) Paradigm() core.Paradigm { return core.ParadigmMesh }

// Execute implements the Strategy interface.
func (m *Mesh) Execute(ctx context.Context, run *Run) (core.Payload, error) {
	if len(run.Agents) == 0 {
		return nil, errors.New("mesh requires at least one agent")
	}

	rounds := m.Rounds
	if rounds <= 0 {
		rounds = DefaultMeshRounds
	}

	transcript := []core.MeshTurn{}
	for round := 1; round <= rounds; round++ {
		failures := 0
		var lastErr error
		for _, h := range run.Agents {
			resp, err := run.Invoke(ctx, h, core.Request{Task: run.Task, Context: meshContext(transcript)})
			if err != nil {
				failures++
				lastErr = err
				continue
			}
			transcript = append(transcript, core.MeshTurn{AgentID: h.ID(), Round: round, Response: resp.Content})
		}
		if failures == len(run.Agents) {
			return nil, fmt.Errorf("mesh round %d: every agent failed: %w", round, lastErr)
		}
	}

	return core.MeshPayload{Rounds: rounds, Conversations: transcript}, nil
}

func meshContext(transcript []core.MeshTurn) string {
	if len(transcript) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Conversation so far\n")
	for _, turn := range transcript {
		fmt.Fprintf(&b, "\n[round %d] %s: %s\n", turn.Round, turn.AgentID, turn.Response)
	}
	return b.String()
}
