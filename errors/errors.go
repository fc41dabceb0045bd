//go:build !ios && !android && (amd64 || arm64)

// Package errors defines the error taxonomy shared by every reapgo package.
//
// Errors are categorized by Kind. The four kinds a caller is expected to
// branch on are:
//
//   - KindInvalidated: a handle no longer denotes a live host object. Re-fetch it.
//   - KindThreadViolation: the calling context could not supply the required
//     thread token. This is a programming error at the call site.
//   - KindUnknownVariant: the host returned a code this package does not know.
//   - KindHostRejected: the host refused a well-formed request.
//
// All of them are recoverable data. Only a violated internal invariant is
// fatal, see Fatal.
//
//	if errors.Is(err, errors.ErrInvalidated) {
//		track = project.TrackByGUID(guid)
//	}
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind categorizes an error.
type Kind string

const (
	KindInvalidated     Kind = "invalidated"
	KindThreadViolation Kind = "thread_violation"
	KindUnknownVariant  Kind = "unknown_variant"
	KindHostRejected    Kind = "host_rejected"
	KindRegistration    Kind = "registration"
	KindNotLoaded       Kind = "not_loaded"
	KindInvalidArgument Kind = "invalid_argument"
)

// Error is the structured error type returned by every fallible operation.
type Error struct {
	Value  any
	Cause  error
	Kind   Kind
	Op     string
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("reapgo: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (value %v)", e.Value)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind. Sentinels carry
// only a kind, so errors.Is(err, ErrInvalidated) matches every invalidation.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidated     = &Error{Kind: KindInvalidated}
	ErrThreadViolation = &Error{Kind: KindThreadViolation}
	ErrUnknownVariant  = &Error{Kind: KindUnknownVariant}
	ErrHostRejected    = &Error{Kind: KindHostRejected}
	ErrRegistration    = &Error{Kind: KindRegistration}
	ErrNotLoaded       = &Error{Kind: KindNotLoaded}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
)

// Invalidated reports a handle that failed its liveness probe.
func Invalidated(op, kind string) error {
	return &Error{Kind: KindInvalidated, Op: op, Detail: kind + " no longer exists"}
}

// ThreadViolation reports a missing or stale thread token.
func ThreadViolation(op, detail string) error {
	return &Error{Kind: KindThreadViolation, Op: op, Detail: detail}
}

// UnknownVariant reports a raw code that has no typed counterpart.
func UnknownVariant(typeName string, value any) error {
	return &Error{Kind: KindUnknownVariant, Op: "convert " + typeName, Value: value}
}

// HostRejected reports a host entry point that signalled failure.
func HostRejected(op, detail string) error {
	return &Error{Kind: KindHostRejected, Op: op, Detail: detail}
}

// InvalidArgument reports a value rejected before it reached the host.
func InvalidArgument(op, detail string, value any) error {
	return &Error{Kind: KindInvalidArgument, Op: op, Detail: detail, Value: value}
}

// Registration reports a failed registration bookkeeping step.
func Registration(op, detail string, cause error) error {
	return &Error{Kind: KindRegistration, Op: op, Detail: detail, Cause: cause}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsInvalidated returns true if err is an invalidation.
func IsInvalidated(err error) bool { return KindOf(err) == KindInvalidated }

// IsThreadViolation returns true if err is a thread violation.
func IsThreadViolation(err error) bool { return KindOf(err) == KindThreadViolation }

// IsUnknownVariant returns true if err is an unknown raw code.
func IsUnknownVariant(err error) bool { return KindOf(err) == KindUnknownVariant }

// IsHostRejected returns true if the host refused the request.
func IsHostRejected(err error) bool { return KindOf(err) == KindHostRejected }

// Is and As re-export the standard library helpers so callers importing this
// package under its default name still have them.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }

// New creates a plain error, as the standard library does.
func New(text string) error { return stderrors.New(text) }

// Fatal aborts on a violated internal invariant. It is the only fatal path.
func Fatal(invariant string) {
	panic("reapgo: internal invariant violated: " + invariant)
}
