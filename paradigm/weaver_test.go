package paradigm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

// draftThenRefine answers with a draft on the first pass and a refined
// answer once a context analysis is present.
func draftThenRefine(draft, refined string) func(core.Request) (string, error) {
	return func(req core.Request) (string, error) {
		if req.Context == "" {
			return draft, nil
		}
		return refined, nil
	}
}

func TestWeaver_RefinesDraftsWithSharedAnalysis(t *testing.T) {
	a := &scriptedHandle{id: "a", respond: draftThenRefine("draft alpha caching", "refined alpha")}
	b := &scriptedHandle{id: "b", respond: draftThenRefine("draft bravo caching", "refined bravo")}

	payload, err := (&Weaver{}).Execute(context.Background(), newRun("speed up reads", a, b))
	require.NoError(t, err)

	got := payload.(core.WeaverPayload)
	require.Len(t, got.RefinedResponses, 2)
	assert.Equal(t, "refined alpha", got.RefinedResponses[0].Content)
	assert.Equal(t, "refined bravo", got.RefinedResponses[1].Content)

	for _, h := range []*scriptedHandle{a, b} {
		reqs := h.received()
		require.Len(t, reqs, 2)
		assert.Empty(t, reqs[0].Context, "first pass is independent")
		assert.Equal(t, got.ContextAnalysis, reqs[1].Context, "second pass shares the analysis")
	}
}

func TestWeaver_AnalysisNamesTaskPerspectivesAndThemes(t *testing.T) {
	a := &scriptedHandle{id: "a", respond: draftThenRefine("favor streaming ingestion", "ok")}
	b := &scriptedHandle{id: "b", respond: draftThenRefine("streaming beats batching here", "ok")}

	payload, err := (&Weaver{}).Execute(context.Background(), newRun("design the pipeline", a, b))
	require.NoError(t, err)

	analysis := payload.(core.WeaverPayload).ContextAnalysis
	assert.Contains(t, analysis, "Task: design the pipeline")
	assert.Contains(t, analysis, "Perspectives (2)")
	assert.Contains(t, analysis, "[a]")
	assert.Contains(t, analysis, "[b]")
	assert.Contains(t, analysis, "Common themes")
	assert.Contains(t, analysis, "streaming")
}

func TestWeaver_ClipsLongDraftsInAnalysis(t *testing.T) {
	long := strings.Repeat("verbose ", 100)
	a := &scriptedHandle{id: "a", respond: draftThenRefine(long, "ok")}
	b := &scriptedHandle{id: "b", respond: draftThenRefine("short take", "ok")}

	payload, err := (&Weaver{}).Execute(context.Background(), newRun("task", a, b))
	require.NoError(t, err)

	analysis := payload.(core.WeaverPayload).ContextAnalysis
	assert.NotContains(t, analysis, long)
	assert.Contains(t, analysis, "...")
}

func TestWeaver_RefinementFailureFallsBackToDraft(t *testing.T) {
	a := &scriptedHandle{id: "a", respond: draftThenRefine("draft alpha", "refined alpha")}
	b := &scriptedHandle{id: "b", respond: func(req core.Request) (string, error) {
		if req.Context == "" {
			return "draft bravo", nil
		}
		return "", errors.New("refinement failed")
	}}

	payload, err := (&Weaver{}).Execute(context.Background(), newRun("task", a, b))
	require.NoError(t, err)

	got := payload.(core.WeaverPayload)
	require.Len(t, got.RefinedResponses, 2)
	assert.Equal(t, "refined alpha", got.RefinedResponses[0].Content)
	assert.Equal(t, "draft bravo", got.RefinedResponses[1].Content, "a failed second pass keeps the draft")
}

func TestWeaver_AbsorbsFirstPassFailure(t *testing.T) {
	a := &scriptedHandle{id: "a", respond: draftThenRefine("draft alpha", "refined alpha")}
	b := &scriptedHandle{id: "b", respond: func(core.Request) (string, error) { return "", errors.New("down") }}

	payload, err := (&Weaver{}).Execute(context.Background(), newRun("task", a, b))
	require.NoError(t, err)

	got := payload.(core.WeaverPayload)
	require.Len(t, got.RefinedResponses, 1)
	assert.Equal(t, "a", got.RefinedResponses[0].AgentID)
	assert.Equal(t, "refined alpha", got.RefinedResponses[0].Content)
	assert.Contains(t, got.ContextAnalysis, "Perspectives (1)")

	require.Len(t, b.received(), 1, "a failed draft is not asked to refine")
}

func TestWeaver_AllFirstPassFailuresAbort(t *testing.T) {
	offline := fmt.Errorf("offline")
	fail := func(core.Request) (string, error) { return "", offline }
	a := &scriptedHandle{id: "a", respond: fail}
	b := &scriptedHandle{id: "b", respond: fail}

	_, err := (&Weaver{}).Execute(context.Background(), newRun("task", a, b))
	require.Error(t, err)
	assert.ErrorIs(t, err, offline)
	assert.ErrorContains(t, err, "first pass")
}
