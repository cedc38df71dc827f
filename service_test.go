package leveling_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/leveling"
	"github.com/viant/leveling/model/calendar"
	"github.com/viant/leveling/model/load"
	"github.com/viant/leveling/model/resource"
	"github.com/viant/leveling/model/task"
	"github.com/viant/leveling/model/unit"
	"github.com/viant/leveling/policy"
	"github.com/viant/leveling/service/allocation"
	"github.com/viant/leveling/service/dao"
)

var (
	monday  = calendar.Date(2024, time.January, 8)
	welder  = resource.Criterion{Type: "skill", Name: "welder"}
	painter = resource.Criterion{Type: "skill", Name: "painter"}
)

type recorder struct {
	sync.Mutex
	allocations int
	shortfalls  []float64
	errors      []string
	timelines   int
}

func (r *recorder) RecordAllocation(int, int, float64, float64, time.Duration) {
	r.Lock()
	defer r.Unlock()
	r.allocations++
}

func (r *recorder) RecordShortfall(hours float64) {
	r.Lock()
	defer r.Unlock()
	r.shortfalls = append(r.shortfalls, hours)
}

func (r *recorder) RecordError(operation, kind string) {
	r.Lock()
	defer r.Unlock()
	r.errors = append(r.errors, operation+":"+kind)
}

func (r *recorder) RecordTimeline(int) {
	r.Lock()
	defer r.Unlock()
	r.timelines++
}

func workers() (alice, bob, carol *resource.Worker) {
	office := calendar.NewWeekly(decimal.NewFromInt(8), time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	alice = resource.NewWorker("alice", welder).SetLoad(monday, decimal.NewFromInt(4))
	bob = resource.NewWorker("bob", welder)
	carol = resource.NewWorker("carol", painter)
	for _, w := range []*resource.Worker{alice, bob, carol} {
		w.WorkCalendar = office
	}
	return alice, bob, carol
}

func TestService_Allocate(t *testing.T) {
	metrics := &recorder{}
	srv := leveling.New(leveling.WithMetrics(metrics))
	ctx := context.Background()
	alice, bob, carol := workers()

	g, err := srv.Allocate(ctx, task.New("hull", monday, 2, welder), []resource.Resource{alice, bob, carol}, unit.Amount(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, g.ResourceIDs())
	assert.Equal(t, "2", g.HoursOn("alice", monday).String())
	assert.Equal(t, "6", g.HoursOn("bob", monday).String())
	assert.Equal(t, "4", g.HoursOn("alice", monday.AddDate(0, 0, 1)).String())
	assert.Equal(t, "16", g.TotalHours().String())
	assert.Equal(t, 1, metrics.allocations)

	stored, err := srv.Allocation(ctx, g.ID)
	require.NoError(t, err)
	assert.Same(t, g, stored)

	list, err := srv.Allocations(ctx, dao.NewParameter(dao.ResourceID, "carol"))
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = srv.Allocations(ctx, dao.NewParameter(dao.TaskID, "hull"))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = srv.Allocation(ctx, "missing")
	assert.True(t, errors.Is(err, dao.ErrNotFound))
}

func TestService_AllocateErrors(t *testing.T) {
	metrics := &recorder{}
	srv := leveling.New(leveling.WithMetrics(metrics))
	ctx := context.Background()
	alice, bob, _ := workers()

	_, err := srv.Allocate(ctx, task.New("rigging", monday, 1, resource.Criterion{Type: "skill", Name: "rigger"}),
		[]resource.Resource{alice, bob}, unit.Amount(1))
	assert.True(t, errors.Is(err, leveling.ErrNoQualifiedResources))

	_, err = srv.Allocate(ctx, nil, []resource.Resource{alice}, unit.Amount(1))
	assert.True(t, errors.Is(err, allocation.ErrInvalidArgument))

	_, err = srv.Allocate(ctx, task.New("hull", monday, 1, welder), []resource.Resource{alice}, unit.Amount(0))
	assert.True(t, errors.Is(err, allocation.ErrInvalidArgument))

	broken := resource.NewWorker("broken", welder)
	broken.WorkCalendar = calendar.Func(func(time.Time) decimal.Decimal { return decimal.NewFromInt(-1) })
	_, err = srv.Allocate(ctx, task.New("hull", monday, 1, welder), []resource.Resource{broken}, unit.Hours(decimal.NewFromInt(2)))
	assert.True(t, errors.Is(err, allocation.ErrNegativeHours))

	assert.Equal(t, []string{"allocate:no_resources", "allocate:validation", "allocate:validation", "allocate:calendar"}, metrics.errors)
	list, err := srv.Allocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_AllocateOvertimePolicy(t *testing.T) {
	metrics := &recorder{}
	srv := leveling.New(leveling.WithMetrics(metrics))
	_, bob, _ := workers()
	aTask := task.New("hull", monday, 1, welder)

	g, err := srv.Allocate(context.Background(), aTask, []resource.Resource{bob}, unit.Amount(2))
	require.NoError(t, err)
	assert.Equal(t, "16", g.HoursOn("bob", monday).String())
	assert.Equal(t, "8", g.OvertimeHours().String())
	assert.Empty(t, g.Shortfalls())

	ctx := policy.WithPolicy(context.Background(), &policy.Policy{Mode: policy.ModeClip})
	g, err = srv.Allocate(ctx, aTask, []resource.Resource{bob}, unit.Amount(2))
	require.NoError(t, err)
	assert.Equal(t, "8", g.HoursOn("bob", monday).String())
	require.Len(t, g.Shortfalls(), 1)
	assert.Equal(t, "8", g.Shortfalls()[0].Hours.String())
	assert.Equal(t, []float64{8}, metrics.shortfalls)
}

func TestService_Timelines(t *testing.T) {
	metrics := &recorder{}
	srv := leveling.New(leveling.WithMetrics(metrics))
	ctx := context.Background()
	alice, bob, carol := workers()
	_, err := srv.Allocate(ctx, task.New("hull", monday, 2, welder), []resource.Resource{alice, bob, carol}, unit.Amount(1))
	require.NoError(t, err)

	timeline, err := srv.ResourceTimeline(ctx, alice, monday, monday.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, "alice", timeline.ConceptName())
	periods := timeline.Periods()
	require.Len(t, periods, 2)
	assert.Equal(t, 75, periods[0].Level().Percentage())
	assert.Equal(t, "6", periods[0].Assigned().String())
	assert.Equal(t, 50, periods[1].Level().Percentage())
	assert.Equal(t, load.SomeLoad, periods[1].Level().Category())

	timeline, err = srv.CriteriaTimeline(ctx, resource.Criteria{welder}, []resource.Resource{alice, bob, carol}, monday, monday.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, "skill:welder", timeline.ConceptName())
	periods = timeline.Periods()
	require.Len(t, periods, 2)
	assert.Equal(t, "16", periods[0].TotalAvailable().String())
	assert.Equal(t, "12", periods[0].Assigned().String())
	assert.Equal(t, 75, periods[0].Level().Percentage())

	timeline, err = srv.CriteriaTimeline(ctx, nil, []resource.Resource{carol}, monday, monday.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, leveling.AnyCriteria, timeline.ConceptName())
	require.Len(t, timeline.Periods(), 1)
	assert.Equal(t, load.NoLoad, timeline.Periods()[0].Level().Category())

	_, err = srv.ResourceTimeline(ctx, nil, monday, monday)
	assert.True(t, errors.Is(err, load.ErrInvalidArgument))
	assert.Equal(t, 3, metrics.timelines)
}

func TestService_WithPredicate(t *testing.T) {
	alice, bob, _ := workers()
	onlyBob := func(r resource.Resource, _ resource.Criteria) bool { return r.ID() == "bob" }
	srv := leveling.New(leveling.WithPredicate(onlyBob), leveling.WithPrecision(0))

	g, err := srv.Allocate(context.Background(), task.New("hull", monday, 1, welder), []resource.Resource{alice, bob}, unit.Hours(decimal.NewFromInt(3)))
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, g.ResourceIDs())
	assert.Equal(t, "3", g.HoursOn("bob", monday).String())
}

func TestService_NewAllocation(t *testing.T) {
	srv := leveling.New(leveling.WithPrecision(1), leveling.WithOvertimePolicy(&policy.Policy{Mode: policy.ModeClip}))
	_, bob, _ := workers()

	g, err := srv.NewAllocation(context.Background(), task.New("hull", monday, 1, welder), allocation.WithID("fixed"))
	require.NoError(t, err)
	assert.Equal(t, "fixed", g.ID)
	assert.Equal(t, resource.Criteria{welder}, g.Criteria())

	require.NoError(t, g.ForResources(bob).Allocate(unit.Percentage(decimal.NewFromInt(150))))
	assert.Equal(t, "8", g.HoursOn("bob", monday).String())
	require.Len(t, g.Shortfalls(), 1)
	assert.Equal(t, "4", g.Shortfalls()[0].Hours.String())

	_, err = srv.NewAllocation(context.Background(), nil)
	assert.True(t, errors.Is(err, allocation.ErrInvalidArgument))
}
