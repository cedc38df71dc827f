package leveling

import (
	"github.com/viant/afs/storage"
	"github.com/viant/leveling/internal/logging"
	"github.com/viant/leveling/internal/metrics"
	"github.com/viant/leveling/model/calendar"
	"github.com/viant/leveling/model/resource"
	"github.com/viant/leveling/policy"
	"github.com/viant/leveling/service/allocation"
	"github.com/viant/leveling/service/dao"
	"github.com/viant/leveling/service/meta"
	"github.com/viant/leveling/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Service.
type Option func(s *Service)

// WithLogger sets the structured logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector metrics.Collector) Option {
	return func(s *Service) { s.metrics = collector }
}

// WithPredicate sets how candidates are matched against task criteria.
func WithPredicate(predicate resource.Predicate) Option {
	return func(s *Service) { s.predicate = predicate }
}

// WithOvertimePolicy sets the default overtime policy; policy.WithPolicy
// overrides it per call.
func WithOvertimePolicy(p *policy.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithAllocationDAO sets the allocation store.
func WithAllocationDAO(store dao.Service[string, allocation.Generic]) Option {
	return func(s *Service) { s.allocationDAO = store }
}

// WithDefaultCalendar sets the calendar used when neither task nor resource has one.
func WithDefaultCalendar(cal calendar.Calendar) Option {
	return func(s *Service) { s.defaultCalendar = cal }
}

// WithPrecision sets the decimal places of hour quantities.
func WithPrecision(places int32) Option {
	return func(s *Service) { s.precision = places }
}

// WithMetaService sets the service loading plan files.
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) { s.metaService = service }
}

// WithMetaBaseURL sets the location relative plan URLs resolve against.
func WithMetaBaseURL(url string) Option {
	return func(s *Service) { s.metaBaseURL = url }
}

// WithMetaFsOptions with meta file system options
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) { s.metaFsOptions = options }
}

// WithTracing configures OpenTelemetry tracing with the stdout exporter, or
// outputFile when set. The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
