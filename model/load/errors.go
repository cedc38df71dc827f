package load

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the kind of every construction failure in this package.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidationError describes a rejected construction argument.
type ValidationError struct {
	Kind error
	Msg  string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func invalidf(format string, args ...any) error {
	return &ValidationError{Kind: ErrInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}
