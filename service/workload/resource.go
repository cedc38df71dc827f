package workload

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/viant/leveling/model/calendar"
	"github.com/viant/leveling/model/resource"
	"github.com/viant/leveling/service/allocation"
)

// loaded decorates a resource with the hours held by allocations.
type loaded struct {
	resource.Resource
	allocations []*allocation.Generic
}

// AssignedHours returns the base load plus the allocations' hours on day.
func (l *loaded) AssignedHours(day time.Time) decimal.Decimal {
	total := l.Resource.AssignedHours(day)
	for _, g := range l.allocations {
		total = total.Add(g.HoursOn(l.ID(), day))
	}
	return total
}

// Satisfies delegates criteria checks to the decorated resource.
func (l *loaded) Satisfies(criterion resource.Criterion) bool {
	if qualified, ok := l.Resource.(resource.Qualified); ok {
		return qualified.Satisfies(criterion)
	}
	return false
}

// WithAllocations returns r whose pre-existing load includes every
// allocation except the one identified by excludeID.
func WithAllocations(r resource.Resource, allocations []*allocation.Generic, excludeID string) resource.Resource {
	var others []*allocation.Generic
	for _, g := range allocations {
		if g != nil && g.ID != excludeID {
			others = append(others, g)
		}
	}
	if len(others) == 0 {
		return r
	}
	return &loaded{Resource: r, allocations: others}
}

// capacity returns r's workable hours on day: its own calendar, else
// fallback. Timelines span many tasks so no task calendar applies.
func capacity(r resource.Resource, fallback calendar.Calendar, day time.Time) (decimal.Decimal, error) {
	return calendar.Capacity(day, r.Calendar(), fallback)
}
