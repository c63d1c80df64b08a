package paradigm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

// scriptedScorer scores each content string by lookup, defaulting to zero.
type scriptedScorer struct {
	scores map[string]float64
}

func (s scriptedScorer) Score(content string) float64 { return s.scores[content] }

func TestEcosystem_LineageSpansGenerations(t *testing.T) {
	a := &scriptedHandle{id: "a", respond: func(core.Request) (string, error) { return "output from a", nil }}
	b := &scriptedHandle{id: "b", respond: func(core.Request) (string, error) { return "output from b", nil }}

	eco := &Ecosystem{Generations: 3, Scorer: scriptedScorer{scores: map[string]float64{
		"output from a": 2,
		"output from b": 2,
	}}}
	payload, err := eco.Execute(context.Background(), newRun("task", a, b))
	require.NoError(t, err)

	got := payload.(core.EcosystemPayload)
	assert.Equal(t, 3, got.Generations)
	require.Len(t, got.Lineage, 3)
	for i, record := range got.Lineage {
		assert.Equal(t, i+1, record.Generation)
		assert.Len(t, record.Retained, 2)
		assert.Empty(t, record.DiscardedIDs)
	}
	assert.Len(t, a.received(), 3)
	assert.Len(t, b.received(), 3)
}

func TestEcosystem_RetainedOutputsSeedNextGeneration(t *testing.T) {
	a := &scriptedHandle{id: "a", respond: func(core.Request) (string, error) { return "strong idea", nil }}
	b := &scriptedHandle{id: "b", respond: func(core.Request) (string, error) { return "weak idea", nil }}

	eco := &Ecosystem{Generations: 2, Scorer: scriptedScorer{scores: map[string]float64{
		"strong idea": 2,
		"weak idea":   0.1,
	}}}
	_, err := eco.Execute(context.Background(), newRun("task", a, b))
	require.NoError(t, err)

	for _, h := range []*scriptedHandle{a, b} {
		reqs := h.received()
		require.Len(t, reqs, 2)
		assert.Empty(t, reqs[0].Context, "first generation starts from the bare task")
		assert.Contains(t, reqs[1].Context, "Retained outputs of generation 1")
		assert.Contains(t, reqs[1].Context, "[a] strong idea")
		assert.NotContains(t, reqs[1].Context, "weak idea", "discarded outputs do not seed the next generation")
	}
}

func TestEcosystem_ScorerPartitionsOffspring(t *testing.T) {
	a := &scriptedHandle{id: "a", respond: func(core.Request) (string, error) { return "keeper", nil }}
	b := &scriptedHandle{id: "b", respond: func(core.Request) (string, error) { return "filler", nil }}
	c := &scriptedHandle{id: "c", respond: func(core.Request) (string, error) { return "also kept", nil }}

	eco := &Ecosystem{Generations: 1, Scorer: scriptedScorer{scores: map[string]float64{
		"keeper":    1.5,
		"filler":    0.2,
		"also kept": 1.0,
	}}}
	payload, err := eco.Execute(context.Background(), newRun("task", a, b, c))
	require.NoError(t, err)

	record := payload.(core.EcosystemPayload).Lineage[0]
	require.Len(t, record.Retained, 2)
	assert.Equal(t, "a", record.Retained[0].AgentID)
	assert.Equal(t, "c", record.Retained[1].AgentID)
	assert.Equal(t, []string{"b"}, record.DiscardedIDs)
}

func TestEcosystem_TopScorerSurvivesBelowThreshold(t *testing.T) {
	a := &scriptedHandle{id: "a", respond: func(core.Request) (string, error) { return "mediocre", nil }}
	b := &scriptedHandle{id: "b", respond: func(core.Request) (string, error) { return "worse", nil }}

	eco := &Ecosystem{Generations: 1, Scorer: scriptedScorer{scores: map[string]float64{
		"mediocre": 0.4,
		"worse":    0.1,
	}}}
	payload, err := eco.Execute(context.Background(), newRun("task", a, b))
	require.NoError(t, err)

	record := payload.(core.EcosystemPayload).Lineage[0]
	require.Len(t, record.Retained, 1, "the best output survives even below the threshold")
	assert.Equal(t, "a", record.Retained[0].AgentID)
	assert.Equal(t, []string{"b"}, record.DiscardedIDs)
}

func TestEcosystem_SynthesisJoinsFinalRetained(t *testing.T) {
	a := &scriptedHandle{id: "a", respond: func(core.Request) (string, error) { return "first half", nil }}
	b := &scriptedHandle{id: "b", respond: func(core.Request) (string, error) { return "second half", nil }}

	eco := &Ecosystem{Generations: 1, Scorer: scriptedScorer{scores: map[string]float64{
		"first half":  2,
		"second half": 2,
	}}}
	payload, err := eco.Execute(context.Background(), newRun("task", a, b))
	require.NoError(t, err)

	got := payload.(core.EcosystemPayload)
	assert.Equal(t, "first half\n\nsecond half", got.EmergentSynthesis)
}

func TestEcosystem_DefaultGenerations(t *testing.T) {
	a := &scriptedHandle{id: "a"}

	payload, err := (&Ecosystem{}).Execute(context.Background(), newRun("task", a))
	require.NoError(t, err)

	got := payload.(core.EcosystemPayload)
	assert.Equal(t, DefaultEcosystemGenerations, got.Generations)
	assert.Len(t, a.received(), DefaultEcosystemGenerations)
}

func TestEcosystem_AbsorbsPartialFailure(t *testing.T) {
	a := &scriptedHandle{id: "a", respond: func(core.Request) (string, error) { return "survivor", nil }}
	b := &scriptedHandle{id: "b", respond: func(core.Request) (string, error) { return "", errors.New("down") }}

	eco := &Ecosystem{Generations: 2}
	payload, err := eco.Execute(context.Background(), newRun("task", a, b))
	require.NoError(t, err)

	for _, record := range payload.(core.EcosystemPayload).Lineage {
		require.Len(t, record.Retained, 1)
		assert.Equal(t, "a", record.Retained[0].AgentID)
	}
}

func TestEcosystem_ExtinctGenerationAborts(t *testing.T) {
	down := errors.New("down")
	a := &scriptedHandle{id: "a", respond: func(core.Request) (string, error) { return "", down }}

	_, err := (&Ecosystem{Generations: 2}).Execute(context.Background(), newRun("task", a))
	require.Error(t, err)
	assert.ErrorIs(t, err, down)
	assert.ErrorContains(t, err, "generation 1")
}
