// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// ErrorKind classifies a failure the user sees.
type ErrorKind string

const (
	KindUsage    ErrorKind = "usage"
	KindNotFound ErrorKind = "not-found"
	KindTool     ErrorKind = "tool"
)

// UserError is a terminal failure with a message meant to be printed as-is.
// Err, when set, is the underlying cause.
type UserError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *UserError) Error() string { return e.Msg }

func (e *UserError) Unwrap() error { return e.Err }

// KindOf returns the kind of the first UserError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Kind, true
	}
	return "", false
}
