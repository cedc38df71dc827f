package calendar

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Calendar returns the number of productive hours for a given day.
// Implementations must never return negative hours.
type Calendar interface {
	WorkableHours(day time.Time) decimal.Decimal
}

// Func adapts a plain function to the Calendar interface.
type Func func(day time.Time) decimal.Decimal

// WorkableHours returns f(day).
func (f Func) WorkableHours(day time.Time) decimal.Decimal {
	return f(Day(day))
}

// NegativeHoursError reports a calendar returning negative workable hours.
type NegativeHoursError struct {
	Day   time.Time
	Hours decimal.Decimal
}

func (e *NegativeHoursError) Error() string {
	return fmt.Sprintf("calendar returned negative workable hours %s for %s", e.Hours, e.Day.Format(DateLayout))
}

// Hours queries cal for day and rejects negative values.
func Hours(cal Calendar, day time.Time) (decimal.Decimal, error) {
	hours := cal.WorkableHours(Day(day))
	if hours.IsNegative() {
		return decimal.Zero, &NegativeHoursError{Day: Day(day), Hours: hours}
	}
	return hours, nil
}

// Capacity returns the workable hours on day of the first non nil calendar,
// falling back to the default working day.
func Capacity(day time.Time, calendars ...Calendar) (decimal.Decimal, error) {
	cal := FirstOf(calendars...)
	if cal == nil {
		cal = DefaultWorkingDay()
	}
	return Hours(cal, day)
}

// FirstOf returns the first non nil calendar, or nil.
func FirstOf(calendars ...Calendar) Calendar {
	for _, candidate := range calendars {
		if candidate != nil {
			return candidate
		}
	}
	return nil
}
