package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

func begin(t *testing.T, m *Manager, id string) *core.Session {
	t.Helper()
	sess, err := m.Begin(id, core.ParadigmSwarm, "task", []string{"a", "b"})
	require.NoError(t, err)
	return sess
}

func TestManager_BeginCreatesRunningSession(t *testing.T) {
	m := NewManager()

	sess := begin(t, m, "sess-1")
	assert.Equal(t, "sess-1", sess.ID)
	assert.Equal(t, core.SessionRunning, sess.State)
	assert.Equal(t, core.ParadigmSwarm, sess.Paradigm)
	assert.Equal(t, []string{"a", "b"}, sess.Agents)
	assert.False(t, sess.StartedAt.IsZero())
	assert.Equal(t, []string{"sess-1"}, m.ActiveIDs())
}

func TestManager_BeginWhileRunningIsBusy(t *testing.T) {
	m := NewManager()
	begin(t, m, "sess-1")

	_, err := m.Begin("sess-1", core.ParadigmMesh, "other", []string{"c"})
	assert.ErrorIs(t, err, core.ErrSessionBusy)

	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "sess-1", e.SessionID)
}

func TestManager_CompleteStoresResult(t *testing.T) {
	m := NewManager()
	begin(t, m, "sess-1")

	result := &core.Result{Paradigm: core.ParadigmSwarm, Task: "task", Agents: []string{"a", "b"}}
	require.NoError(t, m.Complete("sess-1", result))

	sess, err := m.Get("sess-1")
	require.NoError(t, err)
	assert.Equal(t, core.SessionCompleted, sess.State)
	assert.Equal(t, result, sess.Result)
	assert.False(t, sess.EndedAt.IsZero())
	assert.Empty(t, m.ActiveIDs())
}

func TestManager_TerminalTransitionIsExactlyOnce(t *testing.T) {
	m := NewManager()
	begin(t, m, "sess-1")
	require.NoError(t, m.Complete("sess-1", &core.Result{}))

	assert.ErrorIs(t, m.Complete("sess-1", &core.Result{}), ErrNotRunning)
	assert.ErrorIs(t, m.Fail("sess-1", errors.New("late")), ErrNotRunning)
}

func TestManager_FailRecordsCause(t *testing.T) {
	m := NewManager()
	begin(t, m, "sess-1")

	require.NoError(t, m.Fail("sess-1", errors.New("strategy exploded")))

	sess, err := m.Get("sess-1")
	require.NoError(t, err)
	assert.Equal(t, core.SessionFailed, sess.State)
	assert.Equal(t, "strategy exploded", sess.Err)
	assert.Nil(t, sess.Result)
}

func TestManager_FinishUnknownSession(t *testing.T) {
	m := NewManager()

	assert.ErrorIs(t, m.Complete("ghost", &core.Result{}), core.ErrSessionNotFound)
	assert.ErrorIs(t, m.Fail("ghost", errors.New("x")), core.ErrSessionNotFound)

	_, err := m.Get("ghost")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestManager_TerminalSessionRequiresReset(t *testing.T) {
	m := NewManager()
	begin(t, m, "sess-1")
	require.NoError(t, m.Complete("sess-1", &core.Result{}))

	_, err := m.Begin("sess-1", core.ParadigmSwarm, "again", []string{"a"})
	assert.ErrorIs(t, err, core.ErrSessionBusy)

	require.NoError(t, m.Reset("sess-1"))
	begin(t, m, "sess-1")
}

func TestManager_ResetGuards(t *testing.T) {
	m := NewManager()
	begin(t, m, "sess-1")

	assert.ErrorIs(t, m.Reset("sess-1"), core.ErrSessionBusy)
	assert.ErrorIs(t, m.Reset("ghost"), core.ErrSessionNotFound)
}

func TestManager_ConcurrentBeginSingleWinner(t *testing.T) {
	m := NewManager()

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	start := make(chan struct{})

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = m.Begin("contended", core.ParadigmSwarm, "task", []string{"a"})
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, core.ErrSessionBusy)
		}
	}
	assert.Equal(t, 1, winners, "exactly one Begin call must win")
}

func TestManager_GetReturnsIsolatedCopy(t *testing.T) {
	m := NewManager()
	begin(t, m, "sess-1")

	sess, err := m.Get("sess-1")
	require.NoError(t, err)
	sess.Agents[0] = "mutated"
	sess.State = core.SessionFailed

	stored, err := m.Get("sess-1")
	require.NoError(t, err)
	assert.Equal(t, "a", stored.Agents[0])
	assert.Equal(t, core.SessionRunning, stored.State)
}

func TestManager_EvictionDropsOldestTerminal(t *testing.T) {
	m := NewManager(WithMaxSessions(2))

	for _, id := range []string{"s1", "s2", "s3"} {
		begin(t, m, id)
		require.NoError(t, m.Complete(id, &core.Result{}))
		time.Sleep(2 * time.Millisecond) // keep EndedAt strictly ordered
	}

	assert.Equal(t, 2, m.Len())
	_, err := m.Get("s1")
	assert.ErrorIs(t, err, core.ErrSessionNotFound, "oldest finished session is evicted first")

	_, err = m.Get("s2")
	assert.NoError(t, err)
	_, err = m.Get("s3")
	assert.NoError(t, err)
}

func TestManager_EvictionNeverDropsRunning(t *testing.T) {
	m := NewManager(WithMaxSessions(1))

	begin(t, m, "running-1")
	begin(t, m, "running-2")

	begin(t, m, "done")
	require.NoError(t, m.Complete("done", &core.Result{}))

	// Only the terminal session is eligible; the bound cannot be met without
	// touching running sessions, so they all stay.
	_, err := m.Get("running-1")
	assert.NoError(t, err)
	_, err = m.Get("running-2")
	assert.NoError(t, err)
	_, err = m.Get("done")
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}
