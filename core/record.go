package core

import "time"

// InvocationRecord captures the observable facts of a single agent invocation.
// Records are ephemeral: the orchestrator hands them to the metrics sink and
// the logger at the instrumentation site, then discards them.
type InvocationRecord struct {
	AgentID   string
	StartedAt time.Time
	EndedAt   time.Time
	Success   bool
	Err       error
}

// Duration returns the wall-clock time the invocation took.
func (r InvocationRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// MetricsSink receives invocation counts and durations keyed by agent
// identity. Implementations must be safe for concurrent use; the swarm
// paradigm records from multiple goroutines.
type MetricsSink interface {
	Record(agentID string, d time.Duration, success bool)
}
