package plan

import (
	"errors"
	"fmt"
)

// ErrInvalidPlan is returned for any malformed plan definition.
var ErrInvalidPlan = errors.New("invalid plan")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPlan, fmt.Sprintf(format, args...))
}
