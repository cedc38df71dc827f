package plan

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viant/leveling/model/calendar"
	"github.com/viant/leveling/model/resource"
	"github.com/viant/leveling/model/task"
	"github.com/viant/leveling/model/unit"
)

// MaxPrecision bounds the decimal places a plan may request.
const MaxPrecision int32 = 6

// Job is a task ready to allocate with its intensity.
type Job struct {
	Task *task.Task
	Unit unit.ResourcesPerDay
	// Pool lists candidate resource ids; empty means every plan resource.
	Pool []string
}

// Model is a built plan.
type Model struct {
	Name      string
	Precision *int32
	Calendars map[string]calendar.Calendar
	Resources []*resource.Worker
	Jobs      []*Job
	Start     time.Time
	End       time.Time
}

// Resource returns the worker with id.
func (m *Model) Resource(id string) *resource.Worker {
	for _, worker := range m.Resources {
		if worker.Code == id {
			return worker
		}
	}
	return nil
}

// All returns every plan resource in plan order.
func (m *Model) All() []resource.Resource {
	result := make([]resource.Resource, 0, len(m.Resources))
	for _, worker := range m.Resources {
		result = append(result, worker)
	}
	return result
}

// Candidates returns the resources job may be allocated to, in plan order.
func (m *Model) Candidates(job *Job) []resource.Resource {
	if len(job.Pool) == 0 {
		return m.All()
	}
	result := make([]resource.Resource, 0, len(job.Pool))
	for _, id := range job.Pool {
		if worker := m.Resource(id); worker != nil {
			result = append(result, worker)
		}
	}
	return result
}

// Build resolves calendars, resources and tasks. Calendars that set no
// hours derive from defaultCalendar (eight hours every day when nil).
func (p *Plan) Build(defaultCalendar calendar.Calendar) (*Model, error) {
	if p == nil {
		return nil, invalidf("plan was nil")
	}
	if defaultCalendar == nil {
		defaultCalendar = calendar.DefaultWorkingDay()
	}
	if p.Precision != nil && (*p.Precision < 0 || *p.Precision > MaxPrecision) {
		return nil, invalidf("precision must be within 0..%d, got %d", MaxPrecision, *p.Precision)
	}
	resolver := &calendarResolver{defs: p.Calendars, fallback: defaultCalendar,
		built: map[string]calendar.Calendar{}, visiting: map[string]bool{}}
	ret := &Model{Name: p.Name, Precision: p.Precision, Calendars: map[string]calendar.Calendar{}}
	for _, name := range sortedKeys(p.Calendars) {
		cal, err := resolver.resolve(name)
		if err != nil {
			return nil, err
		}
		ret.Calendars[name] = cal
	}

	seen := map[string]bool{}
	for i, def := range p.Resources {
		if def == nil || def.ID == "" {
			return nil, invalidf("resources[%d]: id was empty", i)
		}
		if seen[def.ID] {
			return nil, invalidf("resource %q defined twice", def.ID)
		}
		seen[def.ID] = true
		worker, err := def.build(resolver)
		if err != nil {
			return nil, err
		}
		ret.Resources = append(ret.Resources, worker)
	}

	taskIDs := map[string]bool{}
	for i, def := range p.Tasks {
		if def == nil || def.ID == "" {
			return nil, invalidf("tasks[%d]: id was empty", i)
		}
		if taskIDs[def.ID] {
			return nil, invalidf("task %q defined twice", def.ID)
		}
		taskIDs[def.ID] = true
		job, err := def.build(resolver, seen)
		if err != nil {
			return nil, err
		}
		ret.Jobs = append(ret.Jobs, job)
		if ret.Start.IsZero() || job.Task.Start.Before(ret.Start) {
			ret.Start = job.Task.Start
		}
		if job.Task.End.After(ret.End) {
			ret.End = job.Task.End
		}
	}

	if p.Timeline != nil {
		start, err := parseDay("timeline.start", p.Timeline.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseDay("timeline.end", p.Timeline.End)
		if err != nil {
			return nil, err
		}
		if !start.Before(end) {
			return nil, invalidf("timeline.start %s must precede timeline.end %s", p.Timeline.Start, p.Timeline.End)
		}
		ret.Start, ret.End = start, end
	}
	return ret, nil
}

func (r *Resource) build(resolver *calendarResolver) (*resource.Worker, error) {
	worker := resource.NewWorker(r.ID, r.Criteria...)
	if r.Name != "" {
		worker.Name = r.Name
	}
	if r.Calendar != "" {
		cal, err := resolver.resolve(r.Calendar)
		if err != nil {
			return nil, err
		}
		worker.WorkCalendar = cal
	}
	for _, key := range sortedKeys(r.Load) {
		day, err := parseDay("resource "+r.ID+" load", key)
		if err != nil {
			return nil, err
		}
		hours := r.Load[key].Decimal
		if hours.IsNegative() {
			return nil, invalidf("resource %q: negative load %s on %s", r.ID, hours, key)
		}
		worker.SetLoad(day, hours)
	}
	return worker, nil
}

func (t *Task) build(resolver *calendarResolver, resources map[string]bool) (*Job, error) {
	start, err := parseDay("task "+t.ID+" start", t.Start)
	if err != nil {
		return nil, err
	}
	var aTask *task.Task
	switch {
	case t.End != "":
		end, err := parseDay("task "+t.ID+" end", t.End)
		if err != nil {
			return nil, err
		}
		aTask = &task.Task{ID: t.ID, Start: start, End: end, Criteria: t.Criteria.Clone()}
	case t.Days > 0:
		aTask = task.New(t.ID, start, t.Days, t.Criteria.Clone()...)
	default:
		return nil, invalidf("task %q: either end or days is required", t.ID)
	}
	aTask.Name = t.Name
	if aTask.Name == "" {
		aTask.Name = t.ID
	}
	if err = aTask.Validate(); err != nil {
		return nil, invalidf("%v", err)
	}
	if t.Calendar != "" {
		if aTask.Calendar, err = resolver.resolve(t.Calendar); err != nil {
			return nil, err
		}
	}
	perDay, err := t.Unit.build()
	if err != nil {
		return nil, invalidf("task %q: %v", t.ID, err)
	}
	for _, id := range t.Resources {
		if !resources[id] {
			return nil, invalidf("task %q: unknown resource %q", t.ID, id)
		}
	}
	return &Job{Task: aTask, Unit: perDay, Pool: t.Resources}, nil
}

func (u Unit) build() (unit.ResourcesPerDay, error) {
	var result unit.ResourcesPerDay
	count := 0
	if u.Amount != nil {
		result = unit.AmountOf(u.Amount.Decimal)
		count++
	}
	if u.Percentage != nil {
		result = unit.Percentage(u.Percentage.Decimal)
		count++
	}
	if u.Hours != nil {
		result = unit.Hours(u.Hours.Decimal)
		count++
	}
	if count != 1 {
		return result, invalidf("unit requires exactly one of amount, percentage, hours")
	}
	return result, result.Validate()
}

type calendarResolver struct {
	defs     map[string]*Calendar
	fallback calendar.Calendar
	built    map[string]calendar.Calendar
	visiting map[string]bool
}

func (r *calendarResolver) resolve(name string) (calendar.Calendar, error) {
	if cal, ok := r.built[name]; ok {
		return cal, nil
	}
	def, ok := r.defs[name]
	if !ok || def == nil {
		return nil, invalidf("unknown calendar %q", name)
	}
	if r.visiting[name] {
		return nil, invalidf("calendar %q references itself", name)
	}
	r.visiting[name] = true
	defer delete(r.visiting, name)

	cal, err := def.base(name, r.fallback)
	if err != nil {
		return nil, err
	}
	if len(def.Exceptions) > 0 {
		overrides := map[time.Time]decimal.Decimal{}
		for key, hours := range def.Exceptions {
			day, err := parseDay("calendar "+name+" exception", key)
			if err != nil {
				return nil, err
			}
			if hours.IsNegative() {
				return nil, invalidf("calendar %q: negative hours on %s", name, key)
			}
			overrides[day] = hours.Decimal
		}
		cal = calendar.WithExceptions(cal, overrides)
	}
	if len(def.Within) > 0 {
		members := []calendar.Calendar{cal}
		for _, other := range def.Within {
			member, err := r.resolve(other)
			if err != nil {
				return nil, err
			}
			members = append(members, member)
		}
		cal = calendar.NewComposite(members...)
	}
	r.built[name] = cal
	return cal, nil
}

func (c *Calendar) base(name string, fallback calendar.Calendar) (calendar.Calendar, error) {
	if c.HoursPerDay != nil && c.HoursPerDay.IsNegative() {
		return nil, invalidf("calendar %q: negative hoursPerDay", name)
	}
	switch {
	case len(c.Weekly) > 0:
		weekly := calendar.Weekly{}
		for key, hours := range c.Weekly {
			weekday, err := ParseWeekday(key)
			if err != nil {
				return nil, invalidf("calendar %q: %v", name, err)
			}
			if hours.IsNegative() {
				return nil, invalidf("calendar %q: negative hours on %s", name, key)
			}
			weekly[weekday] = hours.Decimal
		}
		return weekly, nil
	case len(c.Weekdays) > 0:
		hours := decimal.NewFromInt(calendar.DefaultHoursPerDay)
		if c.HoursPerDay != nil {
			hours = c.HoursPerDay.Decimal
		}
		weekdays := make([]time.Weekday, 0, len(c.Weekdays))
		for _, key := range c.Weekdays {
			weekday, err := ParseWeekday(key)
			if err != nil {
				return nil, invalidf("calendar %q: %v", name, err)
			}
			weekdays = append(weekdays, weekday)
		}
		return calendar.NewWeekly(hours, weekdays...), nil
	case c.HoursPerDay != nil:
		return calendar.NewSameWorkHoursEveryDay(c.HoursPerDay.Decimal), nil
	}
	return fallback, nil
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
}

// ParseWeekday accepts full or three letter English weekday names.
func ParseWeekday(value string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	if weekday, ok := weekdays[key]; ok {
		return weekday, nil
	}
	if len(key) == 3 {
		for name, weekday := range weekdays {
			if strings.HasPrefix(name, key) {
				return weekday, nil
			}
		}
	}
	return time.Sunday, invalidf("unknown weekday %q", value)
}

func parseDay(field, value string) (time.Time, error) {
	day, err := calendar.ParseDate(value)
	if err != nil {
		return time.Time{}, invalidf("%s: invalid date %q", field, value)
	}
	return day, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
