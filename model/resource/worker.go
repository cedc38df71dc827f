package resource

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/viant/leveling/model/calendar"
)

// Worker is a simple in-memory Resource.
type Worker struct {
	Code         string
	Name         string
	WorkCalendar calendar.Calendar
	Skills       Criteria
	Load         map[time.Time]decimal.Decimal
}

// ID returns the worker code.
func (w *Worker) ID() string { return w.Code }

// Calendar returns the worker calendar, possibly nil.
func (w *Worker) Calendar() calendar.Calendar { return w.WorkCalendar }

// AssignedHours returns the recorded load for day.
func (w *Worker) AssignedHours(day time.Time) decimal.Decimal {
	if hours, ok := w.Load[calendar.Day(day)]; ok {
		return hours
	}
	return decimal.Zero
}

// Satisfies returns true if the worker has the criterion.
func (w *Worker) Satisfies(criterion Criterion) bool {
	return w.Skills.Contains(criterion)
}

// SetLoad records hours already assigned on day.
func (w *Worker) SetLoad(day time.Time, hours decimal.Decimal) *Worker {
	if w.Load == nil {
		w.Load = map[time.Time]decimal.Decimal{}
	}
	w.Load[calendar.Day(day)] = hours
	return w
}

// NewWorker creates a worker.
func NewWorker(code string, skills ...Criterion) *Worker {
	return &Worker{Code: code, Name: code, Skills: skills}
}
