package core

import "context"

// Request carries the inputs for one agent invocation.
type Request struct {
	// Task is the shared task statement every participant works on.
	Task string

	// Context is accumulated collaboration context (conductor guidance, a
	// transcript of prior turns, an aggregate analysis). Empty for independent
	// invocations.
	Context string
}

// Response is the output of one agent invocation.
type Response struct {
	// Content is the agent's textual contribution.
	Content string
}

// Handle is an opaque reference to an invocable agent capability. Handles are
// owned by the Provider that resolved them; the orchestrator borrows a handle
// for the duration of a single collaborate call and never retains it.
//
// Implementations must:
//   - Respect context cancellation and deadlines
//   - Be safe for concurrent Invoke calls (swarm runs handles in parallel)
//   - Return an error rather than panicking on backend failures
type Handle interface {
	// ID returns the stable agent identifier used in results and metrics.
	ID() string

	// Invoke executes the agent against the request and returns its response.
	Invoke(ctx context.Context, req Request) (Response, error)
}

// Provider resolves agent identifiers to handles. Resolution is performed
// all-or-nothing by the orchestrator before any side effect: if any requested
// id is unknown the whole collaborate call fails with KindUnknownAgent.
type Provider interface {
	// Resolve returns the handle registered under id, or an error of
	// KindUnknownAgent.
	Resolve(id string) (Handle, error)

	// IDs returns the identifiers of all registered agents in a stable order.
	IDs() []string
}
