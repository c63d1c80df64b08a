// Package paradigm implements the five collaboration strategies (orchestra,
// mesh, swarm, weaver, ecosystem) behind a common execution contract, plus
// the closed registry that maps paradigm names to implementations.
//
// Strategies never talk to agent handles directly: every invocation is routed
// through the Invoker supplied for the run, which is where the engine applies
// instrumentation, per-call timeouts and concurrency limits uniformly.
package paradigm

import (
	"context"
	"sync"

	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/core"
	"github.com/asshat1981ar/autonomous-sdlc-agent-sub001/evaluation"
)

// Defaults for the policy knobs documented as configuration.
const (
	// DefaultMeshRounds is the number of full ring passes in mesh.
	DefaultMeshRounds = 2
	// DefaultEcosystemGenerations is the number of ecosystem iterations.
	DefaultEcosystemGenerations = 3
	// DefaultPatternMinWordLen filters connective noise out of shared-theme
	// detection; only words this long count as themes.
	DefaultPatternMinWordLen = 5
	// DefaultMaxFanOut bounds within-round parallelism.
	DefaultMaxFanOut = 10
)

// Invoker executes a single agent invocation on behalf of a strategy. The
// engine supplies an implementation that wraps every call with timing,
// metrics recording, logging and the per-call timeout.
type Invoker func(ctx context.Context, h core.Handle, req core.Request) (core.Response, error)

// Run carries the inputs of one strategy execution: the shared task, the
// resolved participant handles in request order, and the instrumented
// invoker.
type Run struct {
	Task   string
	Agents []core.Handle
	Invoke Invoker
}

// Strategy is the per-paradigm coordination algorithm conforming to a common
// run contract. Execute returns the paradigm-shaped payload; participant
// failures are absorbed or escalated per the strategy's documented tolerance
// policy.
type Strategy interface {
	Paradigm() core.Paradigm
	Execute(ctx context.Context, run *Run) (core.Payload, error)
}

// Options configures the strategy set built by NewRegistry.
type Options struct {
	// MeshRounds is the number of ring passes in mesh (default 2).
	MeshRounds int
	// EcosystemGenerations is the number of ecosystem iterations (default 3).
	EcosystemGenerations int
	// Scorer decides which ecosystem outputs are retained between
	// generations (default evaluation.LengthScorer).
	Scorer evaluation.Scorer
	// PatternMinWordLen is the minimum word length counted as a shared theme
	// (default 5).
	PatternMinWordLen int
	// MaxFanOut bounds concurrent invocations within one round (default 10).
	MaxFanOut int
}

// Registry is the closed mapping from paradigm to strategy. Construction
// enumerates exactly the five known paradigms; lookup of anything else
// reports absence, which the orchestrator turns into KindUnknownParadigm
// before any agent is resolved or invoked.
type Registry struct {
	strategies map[core.Paradigm]Strategy
}

// NewRegistry builds the closed strategy set with optional policy overrides.
func NewRegistry(optFns ...func(o *Options)) *Registry {
	opts := Options{
		MeshRounds:           DefaultMeshRounds,
		EcosystemGenerations: DefaultEcosystemGenerations,
		Scorer:               evaluation.LengthScorer{},
		PatternMinWordLen:    DefaultPatternMinWordLen,
		MaxFanOut:            DefaultMaxFanOut,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	strategies := map[core.Paradigm]Strategy{
		core.ParadigmOrchestra: &Orchestra{},
		core.ParadigmMesh:      &Mesh{Rounds: opts.MeshRounds},
		core.ParadigmSwarm:     &Swarm{MinWordLen: opts.PatternMinWordLen, MaxFanOut: opts.MaxFanOut},
		core.ParadigmWeaver:    &Weaver{MinWordLen: opts.PatternMinWordLen, MaxFanOut: opts.MaxFanOut},
		core.ParadigmEcosystem: &Ecosystem{Generations: opts.EcosystemGenerations, Scorer: opts.Scorer, MaxFanOut: opts.MaxFanOut},
	}
	return &Registry{strategies: strategies}
}

// Strategy returns the implementation for p, reporting absence for anything
// outside the closed set.
func (r *Registry) Strategy(p core.Paradigm) (Strategy, bool) {
	s, ok := r.strategies[p]
	return s, ok
}

// Paradigms returns the registered paradigms in the canonical order.
func (r *Registry) Paradigms() []core.Paradigm {
	out := make([]core.Paradigm, 0, len(r.strategies))
	for _, p := range core.AllParadigms() {
		if _, ok := r.strategies[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// outcome is one agent's result within a round, in slot order.
type outcome struct {
	agentID string
	content string
	err     error
}

// fanOut invokes every agent concurrently with the request produced by build,
// preserving input order in the returned slice. Concurrency is bounded by
// maxFanOut (zero or negative means DefaultMaxFanOut). Failures are captured
// per slot, never collapsed, so callers apply their own tolerance policy.
func fanOut(ctx context.Context, run *Run, maxFanOut int, build func(h core.Handle) core.Request) []outcome {
	if maxFanOut <= 0 {
		maxFanOut = DefaultMaxFanOut
	}

	outcomes := make([]outcome, len(run.Agents))
	sem := make(chan struct{}, maxFanOut)

	var wg sync.WaitGroup
	for i, h := range run.Agents {
		wg.Add(1)
		go func(slot int, h core.Handle) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			resp, err := run.Invoke(ctx, h, build(h))
			outcomes[slot] = outcome{agentID: h.ID(), content: resp.Content, err: err}
		}(i, h)
	}
	wg.Wait()

	return outcomes
}

// successes filters completed outcomes into contributions, dropping failures.
func successes(outcomes []outcome) []core.Contribution {
	out := make([]core.Contribution, 0, len(outcomes))
	for _, o := range outcomes {
		if o.err != nil {
			continue
		}
		out = append(out, core.Contribution{AgentID: o.agentID, Content: o.content})
	}
	return out
}

// firstError returns the first captured failure, or nil.
func firstError(outcomes []outcome) error {
	for _, o := range outcomes {
		if o.err != nil {
			return o.err
		}
	}
	return nil
}
