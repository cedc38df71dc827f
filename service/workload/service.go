package workload

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viant/leveling/model/calendar"
	"github.com/viant/leveling/model/load"
	"github.com/viant/leveling/model/resource"
	"github.com/viant/leveling/service/allocation"
)

// Service builds load timelines.
type Service struct {
	defaultCalendar calendar.Calendar
}

// New creates a service; defaultCalendar applies to resources without a calendar.
func New(defaultCalendar calendar.Calendar) *Service {
	if defaultCalendar == nil {
		defaultCalendar = calendar.DefaultWorkingDay()
	}
	return &Service{defaultCalendar: defaultCalendar}
}

type day struct {
	date      time.Time
	available decimal.Decimal
	assigned  decimal.Decimal
}

// ResourceTimeline reports r's load over [from, to): capacity from its
// calendar, assigned hours from its own load plus the allocations.
func (s *Service) ResourceTimeline(r resource.Resource, allocations []*allocation.Generic, from, to time.Time) (*load.Timeline, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: resource must not be nil", load.ErrInvalidArgument)
	}
	return s.AggregateTimeline(r.ID(), []resource.Resource{r}, allocations, from, to)
}

// AggregateTimeline reports the combined load of resources over [from, to)
// under the concept name. Consecutive days with the same level form one period.
func (s *Service) AggregateTimeline(name string, resources []resource.Resource, allocations []*allocation.Generic, from, to time.Time) (*load.Timeline, error) {
	var days []*day
	for _, date := range calendar.Days(from, to) {
		item := &day{date: date, available: decimal.Zero, assigned: decimal.Zero}
		for _, r := range resources {
			if r == nil {
				continue
			}
			available, err := capacity(r, s.defaultCalendar, date)
			if err != nil {
				return nil, fmt.Errorf("resource %q: %w", r.ID(), err)
			}
			item.available = item.available.Add(available)
			item.assigned = item.assigned.Add(WithAllocations(r, allocations, "").AssignedHours(date))
		}
		days = append(days, item)
	}
	periods, err := merge(days)
	if err != nil {
		return nil, err
	}
	return load.NewTimeline(name, periods)
}

func merge(days []*day) ([]*load.Period, error) {
	periods := []*load.Period{}
	var current *day
	var currentLevel load.Level
	var end time.Time
	flush := func() error {
		if current == nil {
			return nil
		}
		period, err := load.NewPeriod(current.date, end, current.available, current.assigned, currentLevel)
		if err != nil {
			return err
		}
		periods = append(periods, period)
		return nil
	}
	for _, item := range days {
		level, err := load.LevelOf(item.assigned, item.available)
		if err != nil {
			return nil, err
		}
		if current != nil && level == currentLevel {
			current.available = current.available.Add(item.available)
			current.assigned = current.assigned.Add(item.assigned)
			end = item.date.AddDate(0, 0, 1)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		current = &day{date: item.date, available: item.available, assigned: item.assigned}
		currentLevel = level
		end = item.date.AddDate(0, 0, 1)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return periods, nil
}
