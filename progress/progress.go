package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/leveling/internal/clock"
)

// Delta is an incremental counter change; fields may be negative.
type Delta struct {
	Total       int
	Allocated   int
	Failed      int
	Days        int
	Assignments int
	Shortfalls  int
}

// Progress aggregates counters of one plan run. It is safe for concurrent use.
type Progress struct {
	Plan      string
	StartedAt time.Time

	TotalTasks     int
	AllocatedTasks int
	FailedTasks    int
	Days           int
	Assignments    int
	ShortfallDays  int

	sync.Mutex
	onChange func(Progress)
}

// Update applies d and invokes the change callback outside the lock.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.Lock()
	p.TotalTasks += d.Total
	p.AllocatedTasks += d.Allocated
	p.FailedTasks += d.Failed
	p.Days += d.Days
	p.Assignments += d.Assignments
	p.ShortfallDays += d.Shortfalls
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// Pending returns the tasks neither allocated nor failed yet.
func (p *Progress) Pending() int {
	snapshot := p.Snapshot()
	return snapshot.TotalTasks - snapshot.AllocatedTasks - snapshot.FailedTasks
}

// OnChange registers the callback invoked after every Update; nil disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

func (p *Progress) copy() Progress {
	return Progress{
		Plan:           p.Plan,
		StartedAt:      p.StartedAt,
		TotalTasks:     p.TotalTasks,
		AllocatedTasks: p.AllocatedTasks,
		FailedTasks:    p.FailedTasks,
		Days:           p.Days,
		Assignments:    p.Assignments,
		ShortfallDays:  p.ShortfallDays,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker embeds a new tracker for plan in a derived context.
func WithNewTracker(ctx context.Context, plan string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		Plan:      plan,
		StartedAt: clock.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext returns the tracker carried by ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies d to the tracker in ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
