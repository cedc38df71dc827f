package allocation

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viant/leveling/internal/clock"
	"github.com/viant/leveling/internal/idgen"
	"github.com/viant/leveling/model/calendar"
	"github.com/viant/leveling/model/resource"
	"github.com/viant/leveling/model/task"
	"github.com/viant/leveling/model/unit"
	"github.com/viant/leveling/policy"
)

// Generic allocates a task's work to a pool of resources sharing the task
// criteria.
type Generic struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	task            *task.Task
	criteria        resource.Criteria
	unit            unit.ResourcesPerDay
	resourceIDs     []string
	assignments     []*DayAssignment
	byDay           map[dayKey]decimal.Decimal
	shortfalls      []*Shortfall
	precision       int32
	policy          *policy.Policy
	defaultCalendar calendar.Calendar
}

// New creates an allocation for aTask, copying its criteria.
func New(aTask *task.Task, options ...Option) (*Generic, error) {
	if aTask == nil {
		return nil, invalidf("task must not be nil")
	}
	if err := aTask.Validate(); err != nil {
		return nil, invalidf("%v", err)
	}
	now := clock.Now()
	ret := &Generic{
		task:      aTask,
		criteria:  aTask.Criteria.Clone(),
		precision: DefaultPrecision,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, option := range options {
		option(ret)
	}
	if ret.ID == "" {
		ret.ID = idgen.New()
	}
	if ret.precision < 0 || ret.precision > MaxPrecision {
		return nil, invalidf("precision must be within 0..%d, got %d", MaxPrecision, ret.precision)
	}
	if ret.defaultCalendar == nil {
		ret.defaultCalendar = calendar.DefaultWorkingDay()
	}
	return ret, nil
}

// Task returns the allocated task.
func (g *Generic) Task() *task.Task { return g.task }

// TaskID returns the allocated task id.
func (g *Generic) TaskID() string { return g.task.ID }

// Criteria returns the criteria copied from the task at creation time.
func (g *Generic) Criteria() resource.Criteria {
	return append(resource.Criteria{}, g.criteria...)
}

// Unit returns the intensity of the last successful allocation.
func (g *Generic) Unit() unit.ResourcesPerDay { return g.unit }

// ResourceIDs returns the pool of the last successful allocation, in input order.
func (g *Generic) ResourceIDs() []string {
	return append([]string{}, g.resourceIDs...)
}

// Assignments returns every day assignment, ordered by day then pool order.
func (g *Generic) Assignments() []*DayAssignment {
	return append([]*DayAssignment{}, g.assignments...)
}

// Shortfalls returns the days whose required hours could not be fully assigned.
func (g *Generic) Shortfalls() []*Shortfall {
	return append([]*Shortfall{}, g.shortfalls...)
}

// OrderedAssignmentsFor returns r's assignments ascending by day; the result
// is empty, never nil, when r holds none.
func (g *Generic) OrderedAssignmentsFor(r resource.Resource) []*DayAssignment {
	result := []*DayAssignment{}
	if r == nil {
		return result
	}
	for _, assignment := range g.assignments {
		if assignment.ResourceID == r.ID() {
			result = append(result, assignment)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Day.Before(result[j].Day)
	})
	return result
}

type dayKey struct {
	resourceID string
	day        int64
}

func keyOf(resourceID string, day time.Time) dayKey {
	return dayKey{resourceID: resourceID, day: calendar.Day(day).Unix()}
}

func index(assignments []*DayAssignment) map[dayKey]decimal.Decimal {
	ret := make(map[dayKey]decimal.Decimal, len(assignments))
	for _, assignment := range assignments {
		key := keyOf(assignment.ResourceID, assignment.Day)
		ret[key] = ret[key].Add(assignment.Hours)
	}
	return ret
}

// HoursOn returns the hours assigned to resourceID on day.
func (g *Generic) HoursOn(resourceID string, day time.Time) decimal.Decimal {
	if total, ok := g.byDay[keyOf(resourceID, day)]; ok {
		return total
	}
	return decimal.Zero
}

// TotalHours returns the sum of all assigned hours.
func (g *Generic) TotalHours() decimal.Decimal {
	total := decimal.Zero
	for _, assignment := range g.assignments {
		total = total.Add(assignment.Hours)
	}
	return total
}

// OvertimeHours returns the sum of assigned hours beyond calendar capacity.
func (g *Generic) OvertimeHours() decimal.Decimal {
	total := decimal.Zero
	for _, assignment := range g.assignments {
		total = total.Add(assignment.Overtime)
	}
	return total
}

// ForResources selects the pool the next allocation is spread over.
func (g *Generic) ForResources(resources ...resource.Resource) *ResourcesAllocator {
	return &ResourcesAllocator{allocation: g, resources: resources}
}

// ResourcesAllocator binds an allocation to a resource pool.
type ResourcesAllocator struct {
	allocation *Generic
	resources  []resource.Resource
}

// Allocate levels the task's required hours over the pool for every task day
// and replaces the allocation's previous assignments. On error the allocation
// is left untouched.
func (a *ResourcesAllocator) Allocate(perDay unit.ResourcesPerDay) error {
	g := a.allocation
	if len(a.resources) == 0 {
		return invalidf("resource pool must not be empty")
	}
	seen := map[string]bool{}
	for i, candidate := range a.resources {
		if candidate == nil {
			return invalidf("resource at %d is nil", i)
		}
		if seen[candidate.ID()] {
			return invalidf("resource %q appears more than once", candidate.ID())
		}
		seen[candidate.ID()] = true
	}
	if err := perDay.Validate(); err != nil {
		return invalidf("%v", err)
	}

	var assignments []*DayAssignment
	var shortfalls []*Shortfall
	for _, day := range g.task.Days() {
		dayAssignments, shortfall, err := g.allocateDay(day, a.resources, perDay)
		if err != nil {
			return err
		}
		assignments = append(assignments, dayAssignments...)
		if shortfall != nil {
			shortfalls = append(shortfalls, shortfall)
		}
	}

	g.assignments = assignments
	g.byDay = index(assignments)
	g.shortfalls = shortfalls
	g.unit = perDay
	g.resourceIDs = make([]string, 0, len(a.resources))
	for _, r := range a.resources {
		g.resourceIDs = append(g.resourceIDs, r.ID())
	}
	g.UpdatedAt = clock.Now()
	return nil
}

func (g *Generic) allocateDay(day time.Time, resources []resource.Resource, perDay unit.ResourcesPerDay) ([]*DayAssignment, *Shortfall, error) {
	taskHours, err := g.hours(day, g.task.Calendar, g.defaultCalendar)
	if err != nil {
		return nil, nil, err
	}
	required := perDay.RequiredHours(taskHours).Round(g.precision)

	slots := make([]*slot, len(resources))
	for i, r := range resources {
		load := r.AssignedHours(day)
		if load.IsNegative() {
			return nil, nil, fmt.Errorf("%w: resource %q load %s on %s", ErrNegativeHours, r.ID(), load, day.Format(calendar.DateLayout))
		}
		capacity, err := g.hours(day, r.Calendar(), g.task.Calendar, g.defaultCalendar)
		if err != nil {
			return nil, nil, fmt.Errorf("resource %q: %w", r.ID(), err)
		}
		load = load.Round(g.precision)
		slots[i] = &slot{
			order:    i,
			initial:  load,
			level:    load,
			ceiling:  capacity.Round(g.precision),
			capped:   true,
			overtime: g.policy.AllowsOvertime(r.ID()),
		}
	}

	remaining := level(slots, required, g.precision)

	result := make([]*DayAssignment, len(resources))
	for i, s := range slots {
		r := resources[i]
		result[i] = &DayAssignment{
			ResourceID: r.ID(),
			Resource:   r,
			Day:        day,
			Hours:      s.level.Sub(s.initial),
			Overtime:   s.overtimeHours(),
		}
	}
	if remaining.IsPositive() {
		return result, &Shortfall{Day: day, Hours: remaining}, nil
	}
	return result, nil, nil
}

func (g *Generic) hours(day time.Time, calendars ...calendar.Calendar) (decimal.Decimal, error) {
	hours, err := calendar.Capacity(day, calendars...)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrNegativeHours, err)
	}
	return hours, nil
}
