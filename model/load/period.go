package load

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/viant/leveling/model/calendar"
)

// Period is an immutable load interval [start, end).
type Period struct {
	start          time.Time
	end            time.Time
	totalAvailable decimal.Decimal
	assigned       decimal.Decimal
	level          Level
}

// NewPeriod creates a period; start must precede end.
func NewPeriod(start, end time.Time, totalAvailable, assigned decimal.Decimal, level Level) (*Period, error) {
	if !start.Before(end) {
		return nil, invalidf("period start %s must precede end %s",
			start.Format(calendar.DateLayout), end.Format(calendar.DateLayout))
	}
	if totalAvailable.IsNegative() || assigned.IsNegative() {
		return nil, invalidf("period hours must not be negative")
	}
	return &Period{start: start, end: end, totalAvailable: totalAvailable, assigned: assigned, level: level}, nil
}

// Start returns the inclusive start.
func (p *Period) Start() time.Time { return p.start }

// End returns the exclusive end.
func (p *Period) End() time.Time { return p.end }

// TotalAvailable returns the capacity over the period.
func (p *Period) TotalAvailable() decimal.Decimal { return p.totalAvailable }

// Assigned returns the assigned hours over the period.
func (p *Period) Assigned() decimal.Decimal { return p.assigned }

// Level returns the utilization level.
func (p *Period) Level() Level { return p.level }

// Overlaps applies the half-open interval test.
func (p *Period) Overlaps(other *Period) bool {
	return p.start.Before(other.end) && other.start.Before(p.end)
}
