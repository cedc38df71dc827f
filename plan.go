package leveling

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/viant/leveling/model/calendar"
	"github.com/viant/leveling/model/load"
	"github.com/viant/leveling/model/plan"
	"github.com/viant/leveling/model/resource"
	"github.com/viant/leveling/progress"
	"github.com/viant/leveling/service/allocation"
	"github.com/viant/leveling/service/meta"
	"github.com/viant/leveling/service/workload"
	"github.com/viant/leveling/tracing"
	"gopkg.in/yaml.v3"
)

// LoadPlan loads a YAML plan; URL may be relative to the meta base URL.
func (s *Service) LoadPlan(ctx context.Context, URL string) (*plan.Plan, error) {
	if filepath.Ext(URL) == "" {
		URL += ".yaml"
	}
	ret := &plan.Plan{}
	if err := s.metaService.Load(ctx, URL, ret); err != nil {
		return nil, fmt.Errorf("failed to load plan from %s: %w", URL, err)
	}
	return ret, nil
}

// DecodePlan decodes a YAML plan, expanding ${env.NAME} expressions.
func (s *Service) DecodePlan(data []byte) (*plan.Plan, error) {
	ret := &plan.Plan{}
	if err := yaml.Unmarshal([]byte(meta.ExpandEnv(string(data))), ret); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	return ret, nil
}

// RunPlan allocates the plan tasks in order. Each task sees hours allocated
// to earlier tasks as pre-existing load. A failing task is reported and the
// run continues; only an invalid plan fails the run. Timelines cover every
// resource and every distinct task criteria set.
func (s *Service) RunPlan(ctx context.Context, aPlan *plan.Plan) (report *plan.Report, err error) {
	ctx, span := tracing.StartSpan(ctx, "leveling.plan", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	model, err := aPlan.Build(s.defaultCalendar)
	if err != nil {
		return nil, s.failed("plan", err)
	}
	span.WithAttributes(map[string]string{"plan": model.Name}).WithInt("tasks", len(model.Jobs))
	precision := s.precision
	if model.Precision != nil {
		precision = *model.Precision
	}
	progress.UpdateCtx(ctx, progress.Delta{Total: len(model.Jobs)})

	report = &plan.Report{Plan: model.Name}
	var done []*allocation.Generic
	for _, job := range model.Jobs {
		candidates := model.Candidates(job)
		for i, candidate := range candidates {
			candidates[i] = workload.WithAllocations(candidate, done, "")
		}
		allocated, err := s.allocate(ctx, job.Task, candidates, job.Unit, precision)
		if err != nil {
			report.Tasks = append(report.Tasks, &plan.TaskReport{TaskID: job.Task.ID, Unit: job.Unit.String(), Error: err.Error()})
			progress.UpdateCtx(ctx, progress.Delta{Failed: 1})
			continue
		}
		done = append(done, allocated)
		report.Tasks = append(report.Tasks, taskReport(allocated))
		progress.UpdateCtx(ctx, progress.Delta{
			Allocated:   1,
			Days:        len(job.Task.Days()),
			Assignments: len(allocated.Assignments()),
			Shortfalls:  len(allocated.Shortfalls()),
		})
	}

	if len(done) == 0 || !model.Start.Before(model.End) {
		return report, nil
	}
	for _, worker := range model.Resources {
		timeline, err := s.workload.ResourceTimeline(worker, done, model.Start, model.End)
		if err != nil {
			return nil, s.failed("plan", err)
		}
		s.metrics.RecordTimeline(len(timeline.Periods()))
		report.Timelines = append(report.Timelines, timelineReport(timeline))
	}
	seen := map[string]bool{}
	for _, job := range model.Jobs {
		criteria := job.Task.Criteria.Clone()
		concept := criteria.String()
		if concept == "" || seen[concept] {
			continue
		}
		seen[concept] = true
		pool := resource.Filter(model.All(), criteria, s.predicate)
		timeline, err := s.workload.AggregateTimeline(concept, pool, done, model.Start, model.End)
		if err != nil {
			return nil, s.failed("plan", err)
		}
		s.metrics.RecordTimeline(len(timeline.Periods()))
		report.Timelines = append(report.Timelines, timelineReport(timeline))
	}
	s.logger.Info("plan completed", "plan", model.Name, "tasks", len(model.Jobs), "allocated", len(done))
	return report, nil
}

func taskReport(g *allocation.Generic) *plan.TaskReport {
	ret := &plan.TaskReport{
		TaskID:       g.TaskID(),
		AllocationID: g.ID,
		Unit:         g.Unit().String(),
		Resources:    g.ResourceIDs(),
		TotalHours:   g.TotalHours().String(),
	}
	if overtime := g.OvertimeHours(); overtime.IsPositive() {
		ret.OvertimeHours = overtime.String()
	}
	for _, assignment := range g.Assignments() {
		item := &plan.AssignmentReport{
			Day:      assignment.Day.Format(calendar.DateLayout),
			Resource: assignment.ResourceID,
			Hours:    assignment.Hours.String(),
		}
		if assignment.Overtime.IsPositive() {
			item.Overtime = assignment.Overtime.String()
		}
		ret.Assignments = append(ret.Assignments, item)
	}
	for _, shortfall := range g.Shortfalls() {
		ret.Shortfalls = append(ret.Shortfalls, &plan.ShortfallReport{
			Day:   shortfall.Day.Format(calendar.DateLayout),
			Hours: shortfall.Hours.String(),
		})
	}
	return ret
}

func timelineReport(timeline *load.Timeline) *plan.TimelineReport {
	ret := &plan.TimelineReport{Concept: timeline.ConceptName(), Periods: []*plan.PeriodReport{}}
	for _, period := range timeline.Periods() {
		ret.Periods = append(ret.Periods, &plan.PeriodReport{
			Start:     period.Start().Format(calendar.DateLayout),
			End:       period.End().Format(calendar.DateLayout),
			Available: period.TotalAvailable().String(),
			Assigned:  period.Assigned().String(),
			Level:     period.Level().Percentage(),
			Category:  string(period.Level().Category()),
		})
	}
	return ret
}
