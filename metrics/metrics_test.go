package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
)

// Interface compliance (compile-time assertion)
var _ core.MetricsSink = (*Registry)(nil)

func TestRegistry_RecordAndSnapshot(t *testing.T) {
	r := NewRegistry()

	r.Record("a", 100*time.Millisecond, true)
	r.Record("a", 300*time.Millisecond, false)
	r.Record("b", 50*time.Millisecond, true)

	snap := r.Snapshot()
	assert.Equal(t, int64(3), snap.Invocations)
	assert.Equal(t, int64(1), snap.Failures)

	a, ok := snap.Agents["a"]
	require.True(t, ok)
	assert.Equal(t, int64(2), a.Invocations)
	assert.Equal(t, int64(1), a.Failures)
	assert.Equal(t, 400*time.Millisecond, a.TotalDuration)
	assert.Equal(t, 200*time.Millisecond, a.AvgDuration)

	b := snap.Agents["b"]
	assert.Equal(t, int64(1), b.Invocations)
	assert.Zero(t, b.Failures)
}

func TestRegistry_ConcurrentRecord(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Record("worker", time.Millisecond, true)
		}()
	}
	wg.Wait()

	snap := r.Snapshot()
	assert.Equal(t, int64(50), snap.Invocations)
	assert.Equal(t, int64(50), snap.Agents["worker"].Invocations)
}

func TestRegistry_NilReceiverIsNoOp(t *testing.T) {
	var r *Registry

	assert.NotPanics(t, func() {
		r.Record("a", time.Second, true)
		r.Reset()
		snap := r.Snapshot()
		assert.Zero(t, snap.Invocations)
	})
}

func TestRegistry_Reset(t *testing.T) {
	r := NewRegistry()
	r.Record("a", time.Second, false)

	r.Reset()

	snap := r.Snapshot()
	assert.Zero(t, snap.Invocations)
	assert.Zero(t, snap.Failures)
	assert.Empty(t, snap.Agents)
}
