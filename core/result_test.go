package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_CloneIsDeep(t *testing.T) {
	orig := &Result{
		Paradigm: ParadigmSwarm,
		Task:     "design a cache",
		Agents:   []string{"a", "b"},
		Payload: SwarmPayload{
			Responses:        []Contribution{{AgentID: "a", Content: "use an LRU"}},
			EmergentPatterns: []string{"cache"},
		},
	}

	clone := orig.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, orig, clone)

	// Mutating the clone must not leak back into the original.
	clone.Agents[0] = "mutated"
	payload := clone.Payload.(SwarmPayload)
	payload.Responses[0].Content = "mutated"
	payload.EmergentPatterns[0] = "mutated"

	assert.Equal(t, "a", orig.Agents[0])
	assert.Equal(t, "use an LRU", orig.Payload.(SwarmPayload).Responses[0].Content)
	assert.Equal(t, "cache", orig.Payload.(SwarmPayload).EmergentPatterns[0])
}

func TestResult_CloneEcosystemLineage(t *testing.T) {
	orig := &Result{
		Paradigm: ParadigmEcosystem,
		Agents:   []string{"a"},
		Payload: EcosystemPayload{
			Generations:       2,
			EmergentSynthesis: "final",
			Lineage: []GenerationRecord{
				{Generation: 1, Retained: []Contribution{{AgentID: "a", Content: "seed"}}, DiscardedIDs: []string{"b"}},
			},
		},
	}

	clone := orig.Clone()
	lineage := clone.Payload.(EcosystemPayload).Lineage
	lineage[0].Retained[0].Content = "mutated"
	lineage[0].DiscardedIDs[0] = "mutated"

	kept := orig.Payload.(EcosystemPayload).Lineage[0]
	assert.Equal(t, "seed", kept.Retained[0].Content)
	assert.Equal(t, "b", kept.DiscardedIDs[0])
}

func TestResult_CloneNil(t *testing.T) {
	var r *Result
	assert.Nil(t, r.Clone())
}

func TestSession_Clone(t *testing.T) {
	now := time.Now()
	orig := &Session{
		ID:        "sess-1",
		State:     SessionCompleted,
		Paradigm:  ParadigmOrchestra,
		Task:      "task",
		Agents:    []string{"a", "b"},
		Result:    &Result{Paradigm: ParadigmOrchestra, Agents: []string{"a", "b"}},
		StartedAt: now,
		EndedAt:   now.Add(time.Second),
	}

	clone := orig.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, orig, clone)

	clone.Agents[0] = "mutated"
	clone.Result.Agents[0] = "mutated"
	assert.Equal(t, "a", orig.Agents[0])
	assert.Equal(t, "a", orig.Result.Agents[0])
}

func TestSessionState_Terminal(t *testing.T) {
	assert.True(t, SessionCompleted.Terminal())
	assert.True(t, SessionFailed.Terminal())
	assert.False(t, SessionIdle.Terminal())
	assert.False(t, SessionRunning.Terminal())
}
