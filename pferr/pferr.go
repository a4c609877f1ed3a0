// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pferr names the error kinds of §7 so that controllers can
// branch on failure class instead of matching error strings.
package pferr

import "fmt"

// Kind classifies a core failure per §7's table.
type Kind int

const (
	// SetupIncomplete: operation attempted before setup()/without a
	// quadrature or status attached. Fatal, surfaced to caller.
	SetupIncomplete Kind = iota

	// InvalidGeometry: non-cube grid, unsupported coarsening factor.
	// Fatal, abort step.
	InvalidGeometry

	// ImplicitSolveFailure: problem module reports a failed solve.
	// Fatal, abort step.
	ImplicitSolveFailure

	// TransportFailure: communicator returned non-success. Fatal; the
	// PFASST controller returns it to its caller and does not call
	// Communicator.Abort.
	TransportFailure

	// NotConverged: k == max_iter reached before tolerance. Non-fatal;
	// reported via Status.
	NotConverged

	// NotImplemented: default/base implementation used where a
	// concrete type should have overridden it. Fatal.
	NotImplemented
)

func (k Kind) String() string {
	switch k {
	case SetupIncomplete:
		return "SetupIncomplete"
	case InvalidGeometry:
		return "InvalidGeometry"
	case ImplicitSolveFailure:
		return "ImplicitSolveFailure"
	case TransportFailure:
		return "TransportFailure"
	case NotConverged:
		return "NotConverged"
	case NotImplemented:
		return "NotImplemented"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with context, the way gosl/chk.Err builds a
// formatted error while letting callers still inspect the cause.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a *Error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a *Error of the given kind around a cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
