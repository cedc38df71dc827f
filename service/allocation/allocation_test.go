package allocation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/leveling/model/calendar"
	"github.com/viant/leveling/model/resource"
	"github.com/viant/leveling/model/task"
	"github.com/viant/leveling/model/unit"
	"github.com/viant/leveling/policy"
)

var (
	welder  = resource.Criterion{Type: "skill", Name: "welder"}
	painter = resource.Criterion{Type: "skill", Name: "painter"}
	start   = calendar.Date(2006, time.October, 5)
)

func hours(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func givenTask(days int, cal calendar.Calendar) *task.Task {
	aTask := task.New("task", start, days, welder, painter)
	aTask.Calendar = cal
	return aTask
}

func givenWorkerWithLoad(code string, load int64, days int) *resource.Worker {
	worker := resource.NewWorker(code)
	for i := 0; i < days; i++ {
		worker.SetLoad(start.AddDate(0, 0, i), decimal.NewFromInt(load))
	}
	return worker
}

func assertHours(t *testing.T, assignments []*DayAssignment, expected ...string) {
	t.Helper()
	require.Len(t, assignments, len(expected))
	for i, value := range expected {
		assert.True(t, hours(value).Equal(assignments[i].Hours), "assignment %d: expected %s, got %s", i, value, assignments[i].Hours)
	}
}

func TestNew(t *testing.T) {
	t.Run("has the criteria of the task", func(t *testing.T) {
		aTask := givenTask(1, nil)
		allocation, err := New(aTask)
		require.NoError(t, err)
		assert.ElementsMatch(t, resource.Criteria{welder, painter}, allocation.Criteria())
		assert.NotEmpty(t, allocation.ID)
		assert.Same(t, aTask, allocation.Task())

		aTask.Criteria[0] = resource.Criterion{Name: "changed"}
		assert.ElementsMatch(t, resource.Criteria{welder, painter}, allocation.Criteria())
	})

	t.Run("nil task", func(t *testing.T) {
		allocation, err := New(nil)
		assert.Nil(t, allocation)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})

	t.Run("invalid span", func(t *testing.T) {
		aTask := &task.Task{ID: "t", Start: start, End: start.AddDate(0, 0, -2)}
		_, err := New(aTask)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})

	t.Run("negative precision", func(t *testing.T) {
		_, err := New(givenTask(1, nil), WithPrecision(-1))
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})

	t.Run("precision above maximum", func(t *testing.T) {
		_, err := New(givenTask(1, nil), WithPrecision(MaxPrecision+1))
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})

	t.Run("explicit id", func(t *testing.T) {
		allocation, err := New(givenTask(1, nil), WithID("a1"))
		require.NoError(t, err)
		assert.Equal(t, "a1", allocation.ID)
	})
}

func TestGeneric_OrderedAssignmentsFor_Unknown(t *testing.T) {
	allocation, err := New(givenTask(4, nil))
	require.NoError(t, err)
	assignments := allocation.OrderedAssignmentsFor(resource.NewWorker("w1"))
	assert.NotNil(t, assignments)
	assert.Empty(t, assignments)
	assert.Empty(t, allocation.OrderedAssignmentsFor(nil))
}

func TestGeneric_Allocate(t *testing.T) {
	eightHours := calendar.NewSameWorkHoursEveryDay(decimal.NewFromInt(8))

	t.Run("generates a day assignment for each day", func(t *testing.T) {
		const duration = 4
		allocation, err := New(givenTask(duration, eightHours))
		require.NoError(t, err)
		worker := resource.NewWorker("w1")
		require.NoError(t, allocation.ForResources(worker).Allocate(unit.Amount(1)))

		assignments := allocation.OrderedAssignmentsFor(worker)
		require.Len(t, assignments, duration)
		for i, assignment := range assignments {
			assert.Equal(t, start.AddDate(0, 0, i), assignment.Day)
			assert.Equal(t, "w1", assignment.ResourceID)
		}
	})

	t.Run("several resources per day with one resource produce overtime", func(t *testing.T) {
		standard := calendar.DefaultWorkingDay().WorkableHours(start)
		allocation, err := New(givenTask(4, calendar.NewSameWorkHoursEveryDay(standard)))
		require.NoError(t, err)
		worker := resource.NewWorker("w1")
		require.NoError(t, allocation.ForResources(worker).Allocate(unit.Amount(2)))

		assignments := allocation.OrderedAssignmentsFor(worker)
		assert.True(t, standard.Mul(decimal.NewFromInt(2)).Equal(assignments[0].Hours))
		assert.True(t, standard.Equal(assignments[0].Overtime))
		assert.True(t, hours("32").Equal(allocation.OvertimeHours()))
	})

	t.Run("hours follow the task calendar", func(t *testing.T) {
		allocation, err := New(givenTask(1, calendar.NewSameWorkHoursEveryDay(decimal.NewFromInt(4))))
		require.NoError(t, err)
		worker := resource.NewWorker("w1")
		require.NoError(t, allocation.ForResources(worker).Allocate(unit.Amount(1)))
		assertHours(t, allocation.OrderedAssignmentsFor(worker), "4")
	})

	t.Run("without task calendar the default working day applies", func(t *testing.T) {
		allocation, err := New(givenTask(1, nil))
		require.NoError(t, err)
		worker := resource.NewWorker("w1")
		require.NoError(t, allocation.ForResources(worker).Allocate(unit.Amount(1)))
		assertHours(t, allocation.OrderedAssignmentsFor(worker), calendar.DefaultWorkingDay().WorkableHours(start).String())
	})

	t.Run("more busy resources are given less load", func(t *testing.T) {
		allocation, err := New(givenTask(4, eightHours))
		require.NoError(t, err)
		worker1 := givenWorkerWithLoad("w1", 3, 4)
		worker2 := givenWorkerWithLoad("w2", 12, 4)
		worker3 := givenWorkerWithLoad("w3", 1, 4)
		require.NoError(t, allocation.ForResources(worker1, worker2, worker3).Allocate(unit.Amount(1)))

		assertHours(t, allocation.OrderedAssignmentsFor(worker1), "3", "3", "3", "3")
		assertHours(t, allocation.OrderedAssignmentsFor(worker2), "0", "0", "0", "0")
		assertHours(t, allocation.OrderedAssignmentsFor(worker3), "5", "5", "5", "5")
		assert.Equal(t, []string{"w1", "w2", "w3"}, allocation.ResourceIDs())
		assert.Empty(t, allocation.Shortfalls())
	})

	t.Run("percentage", func(t *testing.T) {
		allocation, err := New(givenTask(1, eightHours))
		require.NoError(t, err)
		worker := resource.NewWorker("w1")
		require.NoError(t, allocation.ForResources(worker).Allocate(unit.Percentage(decimal.NewFromInt(50))))
		assertHours(t, allocation.OrderedAssignmentsFor(worker), "4")
	})

	t.Run("literal hours skip non working days", func(t *testing.T) {
		weekdays := calendar.NewWeekly(decimal.NewFromInt(8), time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
		allocation, err := New(givenTask(3, weekdays)) // Thu, Fri, Sat
		require.NoError(t, err)
		worker := resource.NewWorker("w1")
		require.NoError(t, allocation.ForResources(worker).Allocate(unit.Hours(decimal.NewFromInt(6))))
		assertHours(t, allocation.OrderedAssignmentsFor(worker), "6", "6", "0")
	})

	t.Run("resource calendar caps the share before overtime", func(t *testing.T) {
		allocation, err := New(givenTask(1, eightHours))
		require.NoError(t, err)
		partTime := resource.NewWorker("part")
		partTime.WorkCalendar = calendar.NewSameWorkHoursEveryDay(decimal.NewFromInt(2))
		fullTime := resource.NewWorker("full")
		require.NoError(t, allocation.ForResources(partTime, fullTime).Allocate(unit.Amount(1)))
		assertHours(t, allocation.OrderedAssignmentsFor(partTime), "2")
		assertHours(t, allocation.OrderedAssignmentsFor(fullTime), "6")
	})

	t.Run("zero length task", func(t *testing.T) {
		allocation, err := New(givenTask(0, eightHours))
		require.NoError(t, err)
		require.NoError(t, allocation.ForResources(resource.NewWorker("w1")).Allocate(unit.Amount(1)))
		assert.Empty(t, allocation.Assignments())
	})
}

func TestGeneric_Allocate_Errors(t *testing.T) {
	negative := calendar.Func(func(time.Time) decimal.Decimal { return decimal.NewFromInt(-8) })

	var testCases = []struct {
		description string
		calendar    calendar.Calendar
		resources   []resource.Resource
		unit        unit.ResourcesPerDay
		expect      error
	}{
		{description: "empty pool", unit: unit.Amount(1), expect: ErrInvalidArgument},
		{description: "nil resource", resources: []resource.Resource{nil}, unit: unit.Amount(1), expect: ErrInvalidArgument},
		{description: "duplicate resource", resources: []resource.Resource{resource.NewWorker("w1"), resource.NewWorker("w1")}, unit: unit.Amount(1), expect: ErrInvalidArgument},
		{description: "zero unit", resources: []resource.Resource{resource.NewWorker("w1")}, unit: unit.Amount(0), expect: ErrInvalidArgument},
		{description: "negative percentage", resources: []resource.Resource{resource.NewWorker("w1")}, unit: unit.Percentage(decimal.NewFromInt(-5)), expect: ErrInvalidArgument},
		{description: "negative task calendar", calendar: negative, resources: []resource.Resource{resource.NewWorker("w1")}, unit: unit.Amount(1), expect: ErrNegativeHours},
		{description: "negative load", resources: []resource.Resource{givenWorkerWithLoad("w1", -2, 2)}, unit: unit.Amount(1), expect: ErrNegativeHours},
	}
	for _, testCase := range testCases {
		allocation, err := New(givenTask(2, testCase.calendar))
		require.NoError(t, err)
		err = allocation.ForResources(testCase.resources...).Allocate(testCase.unit)
		assert.True(t, errors.Is(err, testCase.expect), "%s: %v", testCase.description, err)
		assert.Empty(t, allocation.Assignments(), testCase.description)
	}
}

func TestGeneric_Allocate_Replaces(t *testing.T) {
	allocation, err := New(givenTask(2, nil))
	require.NoError(t, err)
	w1 := resource.NewWorker("w1")
	w2 := resource.NewWorker("w2")
	require.NoError(t, allocation.ForResources(w1, w2).Allocate(unit.Amount(1)))
	assertHours(t, allocation.OrderedAssignmentsFor(w1), "4", "4")
	created := allocation.CreatedAt

	require.NoError(t, allocation.ForResources(w1).Allocate(unit.Amount(1)))
	assertHours(t, allocation.OrderedAssignmentsFor(w1), "8", "8")
	assert.Empty(t, allocation.OrderedAssignmentsFor(w2))
	assert.Len(t, allocation.Assignments(), 2)
	assert.Equal(t, []string{"w1"}, allocation.ResourceIDs())
	assert.Equal(t, created, allocation.CreatedAt)

	err = allocation.ForResources().Allocate(unit.Amount(1))
	require.Error(t, err)
	assertHours(t, allocation.OrderedAssignmentsFor(w1), "8", "8")
}

func TestGeneric_Allocate_BudgetConservation(t *testing.T) {
	var testCases = []struct {
		description string
		loads       []int64
		perDay      unit.ResourcesPerDay
		precision   int32
		expect      []string
	}{
		{description: "worked example", loads: []int64{1, 3, 12}, perDay: unit.Amount(1), precision: 2, expect: []string{"5", "3", "0"}},
		{description: "equal loads split evenly", loads: []int64{0, 0}, perDay: unit.Amount(1), precision: 2, expect: []string{"4", "4"}},
		{description: "uneven split with hundredths", loads: []int64{0, 0, 0}, perDay: unit.Amount(1), precision: 2, expect: []string{"2.67", "2.67", "2.66"}},
		{description: "uneven split at maximum precision", loads: []int64{0, 0, 0}, perDay: unit.Amount(1), precision: MaxPrecision, expect: []string{"2.666667", "2.666667", "2.666666"}},
		{description: "seven way split at maximum precision", loads: []int64{0, 0, 0, 0, 0, 0, 0}, perDay: unit.Amount(1), precision: MaxPrecision, expect: []string{"1.142858", "1.142857", "1.142857", "1.142857", "1.142857", "1.142857", "1.142857"}},
		{description: "uneven split with whole hours", loads: []int64{0, 0, 0}, perDay: unit.Amount(1), precision: 0, expect: []string{"3", "3", "2"}},
		{description: "remainder goes to least loaded first", loads: []int64{2, 0, 0}, perDay: unit.Amount(1), precision: 0, expect: []string{"1", "4", "3"}},
		{description: "tie broken by input order", loads: []int64{5, 5}, perDay: unit.Hours(decimal.NewFromInt(1)), precision: 0, expect: []string{"1", "0"}},
		{description: "all overloaded share overtime", loads: []int64{8, 8}, perDay: unit.Amount(1), precision: 2, expect: []string{"4", "4"}},
		{description: "overtime above capacity levels combined load", loads: []int64{0, 4}, perDay: unit.Amount(3), precision: 2, expect: []string{"14", "10"}},
		{description: "single resource", loads: []int64{0}, perDay: unit.Amount(1), precision: 2, expect: []string{"8"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			allocation, err := New(givenTask(1, nil), WithPrecision(testCase.precision))
			require.NoError(t, err)
			var pool []resource.Resource
			for i, load := range testCase.loads {
				pool = append(pool, givenWorkerWithLoad(string(rune('a'+i)), load, 1))
			}
			require.NoError(t, allocation.ForResources(pool...).Allocate(testCase.perDay))
			assignments := allocation.Assignments()
			assertHours(t, assignments, testCase.expect...)

			required := testCase.perDay.RequiredHours(decimal.NewFromInt(8))
			assert.True(t, required.Equal(allocation.TotalHours()), "expected %s, got %s", required, allocation.TotalHours())
		})
	}
}

func TestGeneric_Allocate_OvertimePolicy(t *testing.T) {
	t.Run("clip records a shortfall", func(t *testing.T) {
		allocation, err := New(givenTask(2, nil), WithOvertimePolicy(&policy.Policy{Mode: policy.ModeClip}))
		require.NoError(t, err)
		w1 := givenWorkerWithLoad("w1", 6, 2)
		w2 := givenWorkerWithLoad("w2", 2, 2)
		require.NoError(t, allocation.ForResources(w1, w2).Allocate(unit.Amount(1)))
		assertHours(t, allocation.OrderedAssignmentsFor(w1), "2", "2")
		assertHours(t, allocation.OrderedAssignmentsFor(w2), "6", "6")
		assert.Empty(t, allocation.Shortfalls())

		require.NoError(t, allocation.ForResources(w1, w2).Allocate(unit.Amount(2)))
		assertHours(t, allocation.OrderedAssignmentsFor(w1), "2", "2")
		assertHours(t, allocation.OrderedAssignmentsFor(w2), "6", "6")
		shortfalls := allocation.Shortfalls()
		require.Len(t, shortfalls, 2)
		assert.Equal(t, start, shortfalls[0].Day)
		assert.True(t, hours("8").Equal(shortfalls[0].Hours))
	})

	t.Run("clip still levels the worked example", func(t *testing.T) {
		allocation, err := New(givenTask(1, nil), WithOvertimePolicy(&policy.Policy{Mode: policy.ModeClip}))
		require.NoError(t, err)
		require.NoError(t, allocation.ForResources(
			givenWorkerWithLoad("w1", 1, 1),
			givenWorkerWithLoad("w2", 3, 1),
			givenWorkerWithLoad("w3", 12, 1)).Allocate(unit.Amount(1)))
		assertHours(t, allocation.Assignments(), "5", "3", "0")
	})

	t.Run("only allowed resources take overtime", func(t *testing.T) {
		allocation, err := New(givenTask(1, nil), WithOvertimePolicy(&policy.Policy{Mode: policy.ModeAllow, BlockList: []string{"w1"}}))
		require.NoError(t, err)
		w1 := resource.NewWorker("w1")
		w2 := resource.NewWorker("w2")
		require.NoError(t, allocation.ForResources(w1, w2).Allocate(unit.Amount(3)))
		assertHours(t, allocation.Assignments(), "8", "16")
		assert.Empty(t, allocation.Shortfalls())
	})

	t.Run("overtime prefers resources with capacity that day", func(t *testing.T) {
		allocation, err := New(givenTask(1, nil))
		require.NoError(t, err)
		onHoliday := resource.NewWorker("holiday")
		onHoliday.WorkCalendar = calendar.WithExceptions(calendar.DefaultWorkingDay(), map[time.Time]decimal.Decimal{start: decimal.Zero})
		working := resource.NewWorker("working")
		require.NoError(t, allocation.ForResources(onHoliday, working).Allocate(unit.Amount(2)))
		assertHours(t, allocation.Assignments(), "0", "16")
	})

	t.Run("everybody off still receives the work", func(t *testing.T) {
		allocation, err := New(givenTask(1, nil))
		require.NoError(t, err)
		off := calendar.NewSameWorkHoursEveryDay(decimal.Zero)
		w1 := resource.NewWorker("w1")
		w1.WorkCalendar = off
		w2 := resource.NewWorker("w2")
		w2.WorkCalendar = off
		require.NoError(t, allocation.ForResources(w1, w2).Allocate(unit.Amount(1)))
		assertHours(t, allocation.Assignments(), "4", "4")
		assert.True(t, hours("8").Equal(allocation.OvertimeHours()))
	})
}

func TestGeneric_HoursOn(t *testing.T) {
	allocation, err := New(givenTask(2, nil))
	require.NoError(t, err)
	w1 := resource.NewWorker("w1")
	require.NoError(t, allocation.ForResources(w1).Allocate(unit.Amount(1)))
	assert.True(t, hours("8").Equal(allocation.HoursOn("w1", start.Add(time.Hour))))
	assert.True(t, allocation.HoursOn("w2", start).IsZero())
	assert.True(t, allocation.HoursOn("w1", start.AddDate(0, 0, 5)).IsZero())
	assert.Equal(t, unit.Amount(1), allocation.Unit())
	assert.Equal(t, "task", allocation.TaskID())

	t.Run("follows reallocation", func(t *testing.T) {
		w2 := resource.NewWorker("w2")
		require.NoError(t, allocation.ForResources(w1, w2).Allocate(unit.Amount(1)))
		assert.True(t, hours("4").Equal(allocation.HoursOn("w1", start)))
		assert.True(t, hours("4").Equal(allocation.HoursOn("w2", start.AddDate(0, 0, 1))))

		require.NoError(t, allocation.ForResources(w2).Allocate(unit.Amount(1)))
		assert.True(t, allocation.HoursOn("w1", start).IsZero())
		assert.True(t, hours("8").Equal(allocation.HoursOn("w2", start)))
	})

	t.Run("before allocation", func(t *testing.T) {
		fresh, err := New(givenTask(1, nil))
		require.NoError(t, err)
		assert.True(t, fresh.HoursOn("w1", start).IsZero())
	})
}
