// Package core provides the foundational domain types and interfaces used by
// the collaboration orchestrator. It defines the core abstractions for:
//
//   - Paradigms (closed set of named coordination strategies)
//   - Agent handles (opaque, resolvable references to invocable agents)
//   - Sessions (lifecycle containers for one collaboration run)
//   - Results (immutable paradigm-shaped collaboration outcomes)
//   - Pluggable sinks and gateways (metrics recording, bridge transport)
//   - The error taxonomy shared by every layer
//
// The package intentionally keeps implementation concerns (session storage,
// strategy execution, provider backends, HTTP transport) out of scope,
// exposing small interfaces to enable custom backends and extensions.
package core
