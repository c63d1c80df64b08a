// Package metrics provides an in-memory implementation of the orchestrator's
// metrics sink: lock-free totals plus per-agent invocation statistics,
// exposed through point-in-time snapshots.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Registry accumulates invocation counts and durations keyed by agent
// identity. All methods are safe for concurrent use and are no-ops on a nil
// receiver, so optional wiring never needs nil checks at call sites.
type Registry struct {
	invocations atomic.Int64
	failures    atomic.Int64
	agents      sync.Map // agentID -> *agentStats
}

type agentStats struct {
	count         atomic.Int64
	failures      atomic.Int64
	durationNanos atomic.Int64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Record registers one agent invocation outcome.
func (r *Registry) Record(agentID string, d time.Duration, success bool) {
	if r == nil {
		return
	}
	r.invocations.Add(1)
	if !success {
		r.failures.Add(1)
	}

	entry, _ := r.agents.LoadOrStore(agentID, &agentStats{})
	stats := entry.(*agentStats)
	stats.count.Add(1)
	stats.durationNanos.Add(int64(d))
	if !success {
		stats.failures.Add(1)
	}
}

// AgentSnapshot is the point-in-time view of one agent's statistics.
type AgentSnapshot struct {
	AgentID       string        `json:"agent_id"`
	Invocations   int64         `json:"invocations"`
	Failures      int64         `json:"failures"`
	TotalDuration time.Duration `json:"total_duration"`
	AvgDuration   time.Duration `json:"avg_duration"`
}

// Snapshot is a consistent-enough copy of all counters. Individual values are
// read atomically; the set as a whole is not a transaction.
type Snapshot struct {
	Invocations int64                    `json:"invocations"`
	Failures    int64                    `json:"failures"`
	Agents      map[string]AgentSnapshot `json:"agents"`
}

// Snapshot captures current counter values.
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{Agents: map[string]AgentSnapshot{}}
	if r == nil {
		return snap
	}
	snap.Invocations = r.invocations.Load()
	snap.Failures = r.failures.Load()

	r.agents.Range(func(key, value any) bool {
		stats := value.(*agentStats)
		s := AgentSnapshot{
			AgentID:       key.(string),
			Invocations:   stats.count.Load(),
			Failures:      stats.failures.Load(),
			TotalDuration: time.Duration(stats.durationNanos.Load()),
		}
		if s.Invocations > 0 {
			s.AvgDuration = s.TotalDuration / time.Duration(s.Invocations)
		}
		snap.Agents[s.AgentID] = s
		return true
	})
	return snap
}

// Reset clears all counters. Intended for tests.
func (r *Registry) Reset() {
	if r == nil {
		return
	}
	r.invocations.Store(0)
	r.failures.Store(0)
	r.agents.Range(func(key, _ any) bool {
		r.agents.Delete(key)
		return true
	})
}
