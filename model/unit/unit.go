// Package unit defines the requested allocation intensity per day.
package unit

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind identifies how a ResourcesPerDay value is expressed.
type Kind string

const (
	// KindAmount requests a number of full resources per day.
	KindAmount Kind = "amount"
	// KindPercentage requests a percentage of one standard resource-day.
	KindPercentage Kind = "percentage"
	// KindHours requests a literal number of hours per working day.
	KindHours Kind = "hours"
)

var hundred = decimal.NewFromInt(100)

// ErrInvalidUnit is returned for unknown or non-positive units.
var ErrInvalidUnit = errors.New("invalid resources per day unit")

// ResourcesPerDay is an immutable intensity request.
type ResourcesPerDay struct {
	kind  Kind
	value decimal.Decimal
}

// Amount requests n resources per day.
func Amount(n int64) ResourcesPerDay {
	return ResourcesPerDay{kind: KindAmount, value: decimal.NewFromInt(n)}
}

// AmountOf requests a fractional number of resources per day.
func AmountOf(n decimal.Decimal) ResourcesPerDay {
	return ResourcesPerDay{kind: KindAmount, value: n}
}

// Percentage requests p percent of one standard resource-day; p may exceed 100.
func Percentage(p decimal.Decimal) ResourcesPerDay {
	return ResourcesPerDay{kind: KindPercentage, value: p}
}

// Hours requests a literal number of hours on every working day.
func Hours(h decimal.Decimal) ResourcesPerDay {
	return ResourcesPerDay{kind: KindHours, value: h}
}

// Kind returns how the unit is expressed.
func (r ResourcesPerDay) Kind() Kind { return r.kind }

// Value returns the raw value.
func (r ResourcesPerDay) Value() decimal.Decimal { return r.value }

// Validate checks the unit kind and that its value is positive.
func (r ResourcesPerDay) Validate() error {
	switch r.kind {
	case KindAmount, KindPercentage, KindHours:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidUnit, r.kind)
	}
	if !r.value.IsPositive() {
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidUnit, r.kind, r.value)
	}
	return nil
}

// RequiredHours returns the hours this unit requires on a day the calendar
// marks with calendarHours. Literal hours only apply on working days.
func (r ResourcesPerDay) RequiredHours(calendarHours decimal.Decimal) decimal.Decimal {
	switch r.kind {
	case KindAmount:
		return calendarHours.Mul(r.value)
	case KindPercentage:
		return calendarHours.Mul(r.value).Div(hundred)
	case KindHours:
		if calendarHours.IsPositive() {
			return r.value
		}
	}
	return decimal.Zero
}

func (r ResourcesPerDay) String() string {
	switch r.kind {
	case KindPercentage:
		return r.value.String() + "%"
	case KindHours:
		return r.value.String() + "h"
	}
	return r.value.String() + " resources/day"
}
