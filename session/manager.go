// Package session owns the mapping from session identifier to collaboration
// state. The manager enforces the session lifecycle (one running
// collaboration per id, exactly-once terminal transition) and optionally
// bounds retention by evicting the longest-finished terminal sessions.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

// ErrNotRunning is returned by Complete and Fail when the session has no
// in-flight run to terminate. Together with the begin guard it gives each run
// an exactly-once terminal transition.
var ErrNotRunning = errors.New("session is not running")

// Options configures a Manager.
type Options struct {
	// MaxSessions bounds how many sessions are retained. When a terminal
	// transition pushes the count above the bound, terminal sessions are
	// evicted oldest-EndedAt-first. Running sessions are never evicted.
	// Zero means unbounded.
	MaxSessions int
}

// entry pairs a stored session with its own mutex so transitions on one id
// never contend with transitions on another. The manager's map mutex is held
// only for lookup, insert and delete.
type entry struct {
	mu   sync.Mutex
	sess *core.Session
}

// Manager is an in-memory session registry safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*entry

	maxSessions int
}

// NewManager creates a Manager with optional overrides.
func NewManager(optFns ...func(o *Options)) *Manager {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Manager{
		entries:     make(map[string]*entry),
		maxSessions: opts.MaxSessions,
	}
}

// WithMaxSessions bounds retained sessions; see Options.MaxSessions.
func WithMaxSessions(n int) func(o *Options) {
	return func(o *Options) { o.MaxSessions = n }
}

// Begin transitions id into the running state and returns a snapshot of the
// new session. It fails with KindSessionBusy when a run is already in flight
// for the id, and also when the id sits in a terminal state (a terminal
// session must be Reset, or a fresh id used, before the id runs again).
// Concurrent Begin calls on one id are race-free: exactly one wins.
func (m *Manager) Begin(id string, paradigm core.Paradigm, task string, agents []string) (*core.Session, error) {
	m.mu.Lock()
	e, ok := m.entries[id]
	if !ok {
		e = &entry{sess: &core.Session{ID: id, State: core.SessionIdle}}
		m.entries[id] = e
	}
	m.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.sess.State {
	case core.SessionRunning:
		return nil, core.NewError(core.KindSessionBusy, id, fmt.Errorf("a collaboration is already running"))
	case core.SessionCompleted, core.SessionFailed:
		return nil, core.NewError(core.KindSessionBusy, id, fmt.Errorf("session is %s; reset it or use a fresh id", e.sess.State))
	}

	e.sess = &core.Session{
		ID:        id,
		State:     core.SessionRunning,
		Paradigm:  paradigm,
		Task:      task,
		Agents:    append([]string(nil), agents...),
		StartedAt: time.Now(),
	}
	return e.sess.Clone(), nil
}

// Complete moves a running session to the completed state and stores its
// result. Completing a session that is not running returns ErrNotRunning.
func (m *Manager) Complete(id string, result *core.Result) error {
	return m.finish(id, func(s *core.Session) {
		s.State = core.SessionCompleted
		s.Result = result.Clone()
	})
}

// Fail moves a running session to the failed state, recording the cause.
func (m *Manager) Fail(id string, cause error) error {
	return m.finish(id, func(s *core.Session) {
		s.State = core.SessionFailed
		if cause != nil {
			s.Err = cause.Error()
		}
	})
}

func (m *Manager) finish(id string, apply func(*core.Session)) error {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return core.NewError(core.KindSessionNotFound, id, nil)
	}

	e.mu.Lock()
	if e.sess.State != core.SessionRunning {
		state := e.sess.State
		e.mu.Unlock()
		return fmt.Errorf("session %s in state %s: %w", id, state, ErrNotRunning)
	}
	apply(e.sess)
	e.sess.EndedAt = time.Now()
	e.mu.Unlock()

	m.evict()
	return nil
}

// Get returns a snapshot of the stored session or fails with
// KindSessionNotFound.
func (m *Manager) Get(id string) (*core.Session, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, core.NewError(core.KindSessionNotFound, id, nil)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.Clone(), nil
}

// Reset removes a terminal session so its id can be reused. Resetting a
// running session fails with KindSessionBusy; resetting an unknown id fails
// with KindSessionNotFound.
func (m *Manager) Reset(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return core.NewError(core.KindSessionNotFound, id, nil)
	}

	e.mu.Lock()
	running := e.sess.State == core.SessionRunning
	e.mu.Unlock()
	if running {
		return core.NewError(core.KindSessionBusy, id, fmt.Errorf("cannot reset a running session"))
	}

	delete(m.entries, id)
	return nil
}

// Len returns the number of retained sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// ActiveIDs returns the ids with a running collaboration, sorted.
func (m *Manager) ActiveIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, e := range m.entries {
		e.mu.Lock()
		if e.sess.State == core.SessionRunning {
			ids = append(ids, id)
		}
		e.mu.Unlock()
	}
	sort.Strings(ids)
	return ids
}

// evict drops terminal sessions, oldest EndedAt first, until the retained
// count fits the bound again.
func (m *Manager) evict() {
	if m.maxSessions <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) <= m.maxSessions {
		return
	}

	type candidate struct {
		id      string
		endedAt time.Time
	}
	var terminal []candidate
	for id, e := range m.entries {
		e.mu.Lock()
		if e.sess.State.Terminal() {
			terminal = append(terminal, candidate{id: id, endedAt: e.sess.EndedAt})
		}
		e.mu.Unlock()
	}
	sort.Slice(terminal, func(i, j int) bool { return terminal[i].endedAt.Before(terminal[j].endedAt) })

	excess := len(m.entries) - m.maxSessions
	for i := 0; i < excess && i < len(terminal); i++ {
		delete(m.entries, terminal[i].id)
	}
}
