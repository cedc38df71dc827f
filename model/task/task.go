// Package task defines the unit of planned work allocations are made for.
package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/viant/leveling/model/calendar"
	"github.com/viant/leveling/model/resource"
)

// ErrInvalidSpan is returned when a task ends before it starts.
var ErrInvalidSpan = errors.New("task end precedes start")

// Task is a read-only view of planned work: [Start, End) by day.
type Task struct {
	ID       string
	Name     string
	Start    time.Time
	End      time.Time
	Calendar calendar.Calendar
	Criteria resource.Criteria
}

// Days returns the task's days in ascending order.
func (t *Task) Days() []time.Time {
	return calendar.Days(t.Start, t.End)
}

// Validate checks the task span.
func (t *Task) Validate() error {
	if calendar.Day(t.End).Before(calendar.Day(t.Start)) {
		return fmt.Errorf("%w: task %q %s > %s", ErrInvalidSpan, t.ID,
			t.Start.Format(calendar.DateLayout), t.End.Format(calendar.DateLayout))
	}
	return nil
}

// New creates a task spanning duration days from start.
func New(id string, start time.Time, days int, criteria ...resource.Criterion) *Task {
	start = calendar.Day(start)
	return &Task{ID: id, Name: id, Start: start, End: start.AddDate(0, 0, days), Criteria: criteria}
}
