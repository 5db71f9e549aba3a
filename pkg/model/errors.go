package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the UI can decide how to surface them.
type ErrorKind int

const (
	// KindTransport covers connection failures and timeouts. Surfaced as a
	// generic network error.
	KindTransport ErrorKind = iota
	// KindRemoteRejection means the service answered with an error status
	// (not found, permission denied, auth failure).
	KindRemoteRejection
	// KindValidation means local form data failed structural checks before
	// dispatch. Never sent over the network.
	KindValidation
	// KindStale marks a result that arrived for a superseded request.
	// Discarded silently, never user-visible.
	KindStale
	// KindConcurrentMutation means a second mutation was attempted on a
	// resource that already has one in flight. Rejected synchronously.
	KindConcurrentMutation
)

// String returns the classification name
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRemoteRejection:
		return "remote"
	case KindValidation:
		return "validation"
	case KindStale:
		return "stale"
	case KindConcurrentMutation:
		return "concurrent-mutation"
	default:
		return "unknown"
	}
}

// Error is a classified application error.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Msg != "" {
			return fmt.Sprintf("%s: %v", e.Msg, e.Err)
		}
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// TransportErr wraps a connection-level failure.
func TransportErr(err error) *Error {
	return &Error{Kind: KindTransport, Msg: "network error", Err: err}
}

// RemoteErr wraps a rejection from the service.
func RemoteErr(msg string, err error) *Error {
	return &Error{Kind: KindRemoteRejection, Msg: msg, Err: err}
}

// ValidationErr reports malformed local input.
func ValidationErr(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// ConcurrentMutationErr reports a second mutation on a busy resource.
func ConcurrentMutationErr(id string) *Error {
	return &Error{Kind: KindConcurrentMutation, Msg: fmt.Sprintf("a change to worklog %s is still pending", id)}
}

// KindOf extracts the classification from an error chain. Errors that are
// not a *Error are treated as transport failures, the safest default for
// anything bubbling up from the HTTP layer.
func KindOf(err error) ErrorKind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindTransport
}
