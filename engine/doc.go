// Package engine implements the collaboration orchestrator.
//
// The Engine is the coordination point between the public facade and the
// domain packages. It validates a collaboration request, admits it into a
// session, executes the selected paradigm strategy over the resolved agent
// handles, and records the outcome in the session ledger and the metrics
// sink.
//
// # Core Responsibilities
//
// Request validation:
//   - Paradigm lookup against the closed strategy registry
//   - Agent resolution, all-or-nothing, before any side effect
//   - Session admission through the busy-guarded session manager
//
// Execution:
//   - Strategies never touch agent handles directly; every agent call
//     funnels through one instrumented invoker that applies the per-call
//     timeout, the shared concurrency semaphore, metrics recording, and
//     contextual logging
//   - A strategy failure fails the session with the paradigm_execution
//     kind; an expired caller deadline fails it with the timeout kind, and
//     partial output is discarded either way
//
// Bridges:
//   - Bridge initialization and bridged code generation delegate to the
//     configured bridge manager and never return Go errors; a missing or
//     unhealthy bridge degrades the returned status instead
//
// # Concurrency Model
//
// The engine holds no mutable state of its own. Sessions serialize per id
// inside the session manager, so concurrent Collaborate calls against the
// same session id produce exactly one winner and session_busy errors for the
// rest. Agent invocations across all concurrent collaborations share a
// single semaphore bounded by MaxConcurrentInvocations.
//
// # Usage
//
//	eng := engine.New(func(o *engine.Options) {
//	    o.Provider = registry
//	    o.Logger = logger
//	})
//
//	result, err := eng.Collaborate(ctx, "session-1", core.ParadigmSwarm,
//	    "design a rate limiter", []string{"architect", "reviewer"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Payload)
package engine
