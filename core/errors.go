package core

import (
	"errors"
	"fmt"
)

// Kind is the stable machine-readable classification of an orchestrator
// error. Callers branch on kinds (via errors.Is against the exported
// sentinels, or KindOf) to distinguish retryable from non-retryable
// conditions.
type Kind string

const (
	// KindUnknownParadigm rejects a paradigm outside the closed set.
	KindUnknownParadigm Kind = "unknown_paradigm"
	// KindNoAgents rejects an empty participant list.
	KindNoAgents Kind = "no_agents"
	// KindUnknownAgent rejects a request naming an unregistered agent id.
	KindUnknownAgent Kind = "unknown_agent"
	// KindSessionBusy rejects a collaborate call while the same session id is
	// already running.
	KindSessionBusy Kind = "session_busy"
	// KindSessionNotFound reports a lookup for an id with no stored session.
	KindSessionNotFound Kind = "session_not_found"
	// KindAgentError marks a single participant's invocation failure.
	KindAgentError Kind = "agent_error"
	// KindParadigmExecution marks an uncaught strategy fault; the underlying
	// cause is wrapped.
	KindParadigmExecution Kind = "paradigm_execution"
	// KindTimeout marks expiry of the caller-supplied deadline.
	KindTimeout Kind = "timeout"
	// KindBridgeUnavailable marks a failed bridge gateway call. It only ever
	// suppresses augmentation; it never fails a collaboration.
	KindBridgeUnavailable Kind = "bridge_unavailable"
)

// Kind sentinels for errors.Is matching. Each carries only the kind; wrapped
// detail lives on the concrete error value.
var (
	ErrUnknownParadigm   = &Error{Kind: KindUnknownParadigm}
	ErrNoAgents          = &Error{Kind: KindNoAgents}
	ErrUnknownAgent      = &Error{Kind: KindUnknownAgent}
	ErrSessionBusy       = &Error{Kind: KindSessionBusy}
	ErrSessionNotFound   = &Error{Kind: KindSessionNotFound}
	ErrAgentFailed       = &Error{Kind: KindAgentError}
	ErrParadigmExecution = &Error{Kind: KindParadigmExecution}
	ErrTimeout           = &Error{Kind: KindTimeout}
	ErrBridgeUnavailable = &Error{Kind: KindBridgeUnavailable}
)

// Error is the orchestrator error type. Every error surfaced to a caller
// carries a Kind and, once a session exists, the session id it belongs to.
type Error struct {
	Kind      Kind
	SessionID string
	Err       error
}

// NewError builds an Error; sessionID may be empty when no session was
// created yet, err may be nil when the kind alone says everything.
func NewError(kind Kind, sessionID string, err error) *Error {
	return &Error{Kind: kind, SessionID: sessionID, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.SessionID != "" && e.Err != nil:
		return fmt.Sprintf("%s (session %s): %v", e.Kind, e.SessionID, e.Err)
	case e.SessionID != "":
		return fmt.Sprintf("%s (session %s)", e.Kind, e.SessionID)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so
// errors.Is(err, core.ErrSessionBusy) holds regardless of session id or
// wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the Kind from an error chain. It returns the empty Kind
// when no *Error is present.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Retryable reports whether the condition may clear on its own: timeouts,
// busy sessions and unavailable bridges are retryable; validation failures
// are not.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindTimeout, KindSessionBusy, KindBridgeUnavailable:
		return true
	}
	return false
}
