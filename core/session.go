package core

import "time"

// SessionState is the lifecycle phase of a collaboration session.
type SessionState string

const (
	// SessionIdle is the initial phase before a run begins.
	SessionIdle SessionState = "idle"
	// SessionRunning marks an in-flight collaboration; at most one run per
	// session id may be in this phase at a time.
	SessionRunning SessionState = "running"
	// SessionCompleted is the terminal phase of a successful run.
	SessionCompleted SessionState = "completed"
	// SessionFailed is the terminal phase of an aborted run.
	SessionFailed SessionState = "failed"
)

// Terminal reports whether the state is one of the two end states.
func (s SessionState) Terminal() bool {
	return s == SessionCompleted || s == SessionFailed
}

// Session is one in-flight or completed collaboration run identified by a
// caller-supplied id. The session manager hands out copies; mutating a
// returned value does not affect stored state.
type Session struct {
	ID       string       `json:"id"`
	State    SessionState `json:"state"`
	Paradigm Paradigm     `json:"paradigm"`
	Task     string       `json:"task"`
	Agents   []string     `json:"agents"`

	// Result is set on completion and owned by the session until eviction.
	Result *Result `json:"result,omitempty"`

	// Err holds the failure description for failed sessions.
	Err string `json:"error,omitempty"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Agents = append([]string(nil), s.Agents...)
	out.Result = s.Result.Clone()
	return &out
}
