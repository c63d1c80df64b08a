// Package logging provides structured, context-aware logging for the
// collaboration orchestrator.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) for dependency injection; CollabLogger layers collaboration
// context on top of Go's structured logging. This package includes:
//
//   - Logger interface and SlogAdapter for plain structured logging
//   - CollabLogger carrying session, run, paradigm and agent context
//   - Domain helpers (LogInvocation, LogBridgeCall, LogCollaboration)
//   - NoOpLogger and NewNopLogger for silent operation
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	scoped := logger.WithSession("session-1", runID).WithParadigm("swarm")
//	scoped.Info("collaboration started", "agents", 3)
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
