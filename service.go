package leveling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/leveling/internal/clock"
	"github.com/viant/leveling/internal/logging"
	"github.com/viant/leveling/internal/metrics"
	"github.com/viant/leveling/model/calendar"
	"github.com/viant/leveling/model/load"
	"github.com/viant/leveling/model/resource"
	"github.com/viant/leveling/model/task"
	"github.com/viant/leveling/model/unit"
	"github.com/viant/leveling/policy"
	"github.com/viant/leveling/service/allocation"
	"github.com/viant/leveling/service/dao"
	amemory "github.com/viant/leveling/service/dao/allocation/memory"
	"github.com/viant/leveling/service/meta"
	"github.com/viant/leveling/service/workload"
	"github.com/viant/leveling/tracing"
)

// ErrNoQualifiedResources is returned when no candidate satisfies the task criteria.
var ErrNoQualifiedResources = errors.New("no qualified resources")

// AnyCriteria names the timeline of an empty criteria set.
const AnyCriteria = "*"

// Service allocates tasks to resources and reports their load.
type Service struct {
	allocationDAO   dao.Service[string, allocation.Generic]
	metaService     *meta.Service
	workload        *workload.Service
	logger          logging.Logger
	metrics         metrics.Collector
	predicate       resource.Predicate
	policy          *policy.Policy
	defaultCalendar calendar.Calendar
	precision       int32
	metaBaseURL     string
	metaFsOptions   []storage.Option
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
}

func (s *Service) ensureBaseSetup() {
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), s.metaBaseURL, s.metaFsOptions...)
	}
	if s.allocationDAO == nil {
		s.allocationDAO = amemory.New()
	}
	if s.defaultCalendar == nil {
		s.defaultCalendar = calendar.DefaultWorkingDay()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.metrics == nil {
		s.metrics = metrics.NewNop()
	}
	if s.predicate == nil {
		s.predicate = resource.SatisfiesAll
	}
	s.workload = workload.New(s.defaultCalendar)
}

// NewAllocation creates an allocation for aTask with the service defaults.
func (s *Service) NewAllocation(ctx context.Context, aTask *task.Task, options ...allocation.Option) (*allocation.Generic, error) {
	return allocation.New(aTask, append(s.allocationOptions(ctx, s.precision), options...)...)
}

func (s *Service) allocationOptions(ctx context.Context, precision int32) []allocation.Option {
	overtime := s.policy
	if p := policy.FromContext(ctx); p != nil {
		overtime = p
	}
	return []allocation.Option{
		allocation.WithPrecision(precision),
		allocation.WithDefaultCalendar(s.defaultCalendar),
		allocation.WithOvertimePolicy(overtime),
	}
}

// Allocate creates and stores an allocation of aTask leveled over the
// candidates satisfying its criteria.
func (s *Service) Allocate(ctx context.Context, aTask *task.Task, candidates []resource.Resource, perDay unit.ResourcesPerDay) (*allocation.Generic, error) {
	return s.allocate(ctx, aTask, candidates, perDay, s.precision)
}

func (s *Service) allocate(ctx context.Context, aTask *task.Task, candidates []resource.Resource, perDay unit.ResourcesPerDay, precision int32) (result *allocation.Generic, err error) {
	ctx, span := tracing.StartSpan(ctx, "leveling.allocate", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()
	started := clock.Now()

	result, err = allocation.New(aTask, s.allocationOptions(ctx, precision)...)
	if err != nil {
		return nil, s.failed("allocate", err)
	}
	span.WithAttributes(map[string]string{"task.id": aTask.ID, "allocation.id": result.ID, "unit": perDay.String()})

	pool := resource.Filter(candidates, result.Criteria(), s.predicate)
	if len(pool) == 0 {
		err = fmt.Errorf("%w: task %q requires %s", ErrNoQualifiedResources, aTask.ID, result.Criteria())
		return nil, s.failed("allocate", err)
	}
	span.WithInt("resources", len(pool))

	if err = result.ForResources(pool...).Allocate(perDay); err != nil {
		return nil, s.failed("allocate", fmt.Errorf("task %q: %w", aTask.ID, err))
	}
	if err = s.allocationDAO.Save(ctx, result); err != nil {
		return nil, s.failed("save", fmt.Errorf("failed to save allocation %s: %w", result.ID, err))
	}

	total, overtime := result.TotalHours(), result.OvertimeHours()
	s.metrics.RecordAllocation(len(pool), len(aTask.Days()), total.InexactFloat64(), overtime.InexactFloat64(), time.Since(started))
	for _, shortfall := range result.Shortfalls() {
		s.metrics.RecordShortfall(shortfall.Hours.InexactFloat64())
		s.logger.Warn("shortfall", "task", aTask.ID, "day", shortfall.Day.Format(calendar.DateLayout), "hours", shortfall.Hours.String())
	}
	s.logger.Info("allocated", "task", aTask.ID, "allocation", result.ID, "resources", len(pool),
		"unit", perDay.String(), "hours", total.String(), "overtime", overtime.String())
	return result, nil
}

func (s *Service) failed(operation string, err error) error {
	kind := errorKind(err)
	s.metrics.RecordError(operation, kind)
	s.logger.Error(operation+" failed", "kind", kind, "error", err.Error())
	return err
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrNoQualifiedResources):
		return "no_resources"
	case errors.Is(err, allocation.ErrNegativeHours):
		return "calendar"
	case errors.Is(err, allocation.ErrInvalidArgument), errors.Is(err, load.ErrInvalidArgument):
		return "validation"
	case errors.Is(err, dao.ErrNilEntity), errors.Is(err, dao.ErrInvalidID), errors.Is(err, dao.ErrNotFound):
		return "storage"
	}
	return "internal"
}

// Allocation loads a stored allocation.
func (s *Service) Allocation(ctx context.Context, id string) (*allocation.Generic, error) {
	return s.allocationDAO.Load(ctx, id)
}

// Allocations lists stored allocations, e.g. dao.NewParameter(dao.ResourceID, "alice").
func (s *Service) Allocations(ctx context.Context, parameters ...*dao.Parameter) ([]*allocation.Generic, error) {
	return s.allocationDAO.List(ctx, parameters...)
}

// ResourceTimeline reports r's load over [from, to) including every stored
// allocation involving r.
func (s *Service) ResourceTimeline(ctx context.Context, r resource.Resource, from, to time.Time) (result *load.Timeline, err error) {
	ctx, span := tracing.StartSpan(ctx, "leveling.timeline", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()
	if r == nil {
		return nil, s.failed("timeline", fmt.Errorf("%w: resource must not be nil", load.ErrInvalidArgument))
	}
	span.WithAttributes(map[string]string{"concept": r.ID()})
	allocations, err := s.allocationDAO.List(ctx, dao.NewParameter(dao.ResourceID, r.ID()))
	if err != nil {
		return nil, s.failed("timeline", err)
	}
	if result, err = s.workload.ResourceTimeline(r, allocations, from, to); err != nil {
		return nil, s.failed("timeline", err)
	}
	s.metrics.RecordTimeline(len(result.Periods()))
	return result, nil
}

// CriteriaTimeline reports the combined load over [from, to) of the
// candidates satisfying criteria. The concept name is the criteria string,
// AnyCriteria when criteria is empty.
func (s *Service) CriteriaTimeline(ctx context.Context, criteria resource.Criteria, candidates []resource.Resource, from, to time.Time) (result *load.Timeline, err error) {
	ctx, span := tracing.StartSpan(ctx, "leveling.timeline", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()
	criteria = criteria.Clone()
	concept := criteria.String()
	if concept == "" {
		concept = AnyCriteria
	}
	span.WithAttributes(map[string]string{"concept": concept})

	pool := resource.Filter(candidates, criteria, s.predicate)
	var allocations []*allocation.Generic
	if len(pool) > 0 {
		ids := make([]string, 0, len(pool))
		for _, r := range pool {
			ids = append(ids, r.ID())
		}
		if allocations, err = s.allocationDAO.List(ctx, dao.NewParameter(dao.ResourceID, ids...)); err != nil {
			return nil, s.failed("timeline", err)
		}
	}
	if result, err = s.workload.AggregateTimeline(concept, pool, allocations, from, to); err != nil {
		return nil, s.failed("timeline", err)
	}
	s.metrics.RecordTimeline(len(result.Periods()))
	return result, nil
}

// New creates a Service.
func New(options ...Option) *Service {
	ret := &Service{precision: allocation.DefaultPrecision}
	ret.init(options)
	return ret
}
