package collab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/config"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/provider"
)

func TestNew_DefaultsSupportFullCollaboration(t *testing.T) {
	orch := New()
	orch.RegisterAgent(provider.NewStatic("architect"))
	orch.RegisterAgent(provider.NewStatic("reviewer"))

	result, err := orch.Collaborate(context.Background(), "s1", core.ParadigmSwarm,
		"design a cache", []string{"architect", "reviewer"})
	require.NoError(t, err)
	assert.Equal(t, []string{"architect", "reviewer"}, result.Agents)

	snap := orch.MetricsSnapshot()
	assert.Equal(t, int64(2), snap.Invocations)
	assert.Zero(t, snap.Failures)
}

func TestNewFromConfig_WiresDeclaredAgents(t *testing.T) {
	cfg := config.Default()
	cfg.Agents = []config.AgentConfig{
		{ID: "planner", Backend: "static", Responses: map[string]string{
			"plan the migration": "start with the read path",
		}},
		{ID: "builder", Backend: "static"},
	}

	orch, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"builder", "planner"}, orch.AgentIDs())

	result, err := orch.Collaborate(context.Background(), "s1", core.ParadigmSwarm,
		"plan the migration", []string{"planner", "builder"})
	require.NoError(t, err)

	payload, ok := result.Payload.(core.SwarmPayload)
	require.True(t, ok)
	require.Len(t, payload.Responses, 2)
	assert.Equal(t, "start with the read path", payload.Responses[0].Content)
}

func TestNewFromConfig_NilUsesDefaults(t *testing.T) {
	orch, err := NewFromConfig(nil)
	require.NoError(t, err)

	// No agents declared, so every resolve fails.
	_, err = orch.Collaborate(context.Background(), "s1", core.ParadigmSwarm,
		"task", []string{"anyone"})
	assert.ErrorIs(t, err, core.ErrUnknownAgent)
}

func TestNewFromConfig_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Paradigm.MeshRounds = 0

	_, err := NewFromConfig(cfg)
	require.Error(t, err)
	assert.ErrorContains(t, err, "mesh_rounds")
}

func TestNewFromConfig_AppliesParadigmTuning(t *testing.T) {
	cfg := config.Default()
	cfg.Agents = []config.AgentConfig{
		{ID: "a", Backend: "static"},
		{ID: "b", Backend: "static"},
	}
	cfg.Paradigm.MeshRounds = 1

	orch, err := NewFromConfig(cfg)
	require.NoError(t, err)

	result, err := orch.Collaborate(context.Background(), "s1", core.ParadigmMesh,
		"task", []string{"a", "b"})
	require.NoError(t, err)

	payload, ok := result.Payload.(core.MeshPayload)
	require.True(t, ok)
	assert.Equal(t, 1, payload.Rounds)
	assert.Len(t, payload.Conversations, 2)
}

func TestNewFromConfig_WiresBridgeEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Bridges = []config.BridgeConfig{
		{Name: "local", BaseURL: server.URL, Timeout: config.Duration(2 * time.Second)},
	}

	orch, err := NewFromConfig(cfg)
	require.NoError(t, err)

	status := orch.InitializeBridges(context.Background())
	require.True(t, status.Success)
	assert.Equal(t, []string{"local"}, status.Endpoints)
}

func TestNewFromConfig_OptionsOverrideWiring(t *testing.T) {
	cfg := config.Default()
	cfg.Agents = []config.AgentConfig{{ID: "declared", Backend: "static"}}

	override := provider.NewRegistry()
	override.Register(provider.NewStatic("injected"))

	orch, err := NewFromConfig(cfg, func(o *Options) {
		o.Registry = override
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"injected"}, orch.AgentIDs())
}

func TestOrchestrator_SessionLifecycleAccessors(t *testing.T) {
	orch := New()
	orch.RegisterAgent(provider.NewStatic("a"))

	_, err := orch.Collaborate(context.Background(), "s1", core.ParadigmOrchestra,
		"task", []string{"a"})
	require.NoError(t, err)

	sess, err := orch.Session("s1")
	require.NoError(t, err)
	assert.Equal(t, core.SessionCompleted, sess.State)
	assert.Empty(t, orch.ActiveSessions())

	require.NoError(t, orch.ResetSession("s1"))
	_, err = orch.Session("s1")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}
