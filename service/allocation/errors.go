package allocation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the kind of every validation failure.
	ErrInvalidArgument = errors.New("invalid allocation argument")

	// ErrNegativeHours reports a collaborator (calendar or resource load)
	// returning negative hours. It is a contract violation, never clamped.
	ErrNegativeHours = errors.New("negative hours")
)

// ValidationError describes a rejected allocation input.
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
