package calendar

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultHoursPerDay is the standard working day length.
const DefaultHoursPerDay = 8

// SameWorkHoursEveryDay returns the same hours for every day.
type SameWorkHoursEveryDay struct {
	Hours decimal.Decimal
}

// WorkableHours returns the fixed hours.
func (s *SameWorkHoursEveryDay) WorkableHours(time.Time) decimal.Decimal {
	return s.Hours
}

// NewSameWorkHoursEveryDay creates a uniform calendar.
func NewSameWorkHoursEveryDay(hours decimal.Decimal) *SameWorkHoursEveryDay {
	return &SameWorkHoursEveryDay{Hours: hours}
}

// DefaultWorkingDay returns the system default calendar: eight hours every day.
func DefaultWorkingDay() *SameWorkHoursEveryDay {
	return NewSameWorkHoursEveryDay(decimal.NewFromInt(DefaultHoursPerDay))
}

// Weekly assigns hours per weekday; weekdays not listed are non working.
type Weekly map[time.Weekday]decimal.Decimal

// WorkableHours returns the hours configured for the day's weekday.
func (w Weekly) WorkableHours(day time.Time) decimal.Decimal {
	if hours, ok := w[day.Weekday()]; ok {
		return hours
	}
	return decimal.Zero
}

// NewWeekly returns a calendar working the given hours on each listed weekday.
func NewWeekly(hours decimal.Decimal, weekdays ...time.Weekday) Weekly {
	result := Weekly{}
	for _, weekday := range weekdays {
		result[weekday] = hours
	}
	return result
}

// Exceptions overrides the hours of a base calendar on specific days.
type Exceptions struct {
	Base      Calendar
	Overrides map[time.Time]decimal.Decimal
}

// WorkableHours returns the override for day if present, otherwise the base hours.
func (e *Exceptions) WorkableHours(day time.Time) decimal.Decimal {
	if hours, ok := e.Overrides[Day(day)]; ok {
		return hours
	}
	if e.Base == nil {
		return decimal.Zero
	}
	return e.Base.WorkableHours(day)
}

// Set adds or replaces an exception.
func (e *Exceptions) Set(day time.Time, hours decimal.Decimal) *Exceptions {
	if e.Overrides == nil {
		e.Overrides = map[time.Time]decimal.Decimal{}
	}
	e.Overrides[Day(day)] = hours
	return e
}

// WithExceptions wraps base with per-day overrides. Override keys are normalised to days.
func WithExceptions(base Calendar, overrides map[time.Time]decimal.Decimal) *Exceptions {
	result := &Exceptions{Base: base, Overrides: make(map[time.Time]decimal.Decimal, len(overrides))}
	for day, hours := range overrides {
		result.Overrides[Day(day)] = hours
	}
	return result
}

// Composite yields, for each day, the minimum hours across its members.
type Composite []Calendar

// WorkableHours returns the smallest member hours, zero when empty.
func (c Composite) WorkableHours(day time.Time) decimal.Decimal {
	var result *decimal.Decimal
	for _, member := range c {
		if member == nil {
			continue
		}
		hours := member.WorkableHours(day)
		if result == nil || hours.LessThan(*result) {
			result = &hours
		}
	}
	if result == nil {
		return decimal.Zero
	}
	return *result
}

// NewComposite creates a composite calendar.
func NewComposite(members ...Calendar) Composite {
	return Composite(members)
}
