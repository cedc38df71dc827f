package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	allocations       prometheus.Counter
	allocationLatency prometheus.Histogram
	poolSize          prometheus.Histogram
	allocatedDays     prometheus.Counter
	assignedHours     prometheus.Counter
	overtimeHours     prometheus.Counter
	shortfallHours    prometheus.Counter
	errors            *prometheus.CounterVec
	timelines         prometheus.Counter
	timelinePeriods   prometheus.Histogram
}

var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates a collector registering on reg (prometheus.DefaultRegisterer
// when nil) under namespace ("leveling" when empty).
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "leveling"
	}
	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.allocations = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "total",
			Help:      "Total successful generic allocations.",
		})
		p.allocationLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "duration_seconds",
			Help:      "Time spent leveling one allocation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		})
		p.poolSize = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "pool_size",
			Help:      "Number of resources an allocation was leveled over.",
			Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100},
		})
		p.allocatedDays = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "days_total",
			Help:      "Total task days leveled.",
		})
		p.assignedHours = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "assigned_hours_total",
			Help:      "Total hours assigned by allocations.",
		})
		p.overtimeHours = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "overtime_hours_total",
			Help:      "Total assigned hours beyond resource calendar capacity.",
		})
		p.shortfallHours = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "shortfall_hours_total",
			Help:      "Total required hours left unassigned by the overtime policy.",
		})
		p.errors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      "errors_total",
			Help:      "Total failed operations by operation and kind.",
		}, []string{"op", "kind"})
		p.timelines = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "timeline",
			Name:      "total",
			Help:      "Total load timelines built.",
		})
		p.timelinePeriods = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "timeline",
			Name:      "periods",
			Help:      "Number of periods per load timeline.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		})
		p.allocations = register(p.reg, p.allocations)
		p.allocationLatency = register(p.reg, p.allocationLatency)
		p.poolSize = register(p.reg, p.poolSize)
		p.allocatedDays = register(p.reg, p.allocatedDays)
		p.assignedHours = register(p.reg, p.assignedHours)
		p.overtimeHours = register(p.reg, p.overtimeHours)
		p.shortfallHours = register(p.reg, p.shortfallHours)
		p.errors = register(p.reg, p.errors)
		p.timelines = register(p.reg, p.timelines)
		p.timelinePeriods = register(p.reg, p.timelinePeriods)
	})
}

// register adds c to reg, returning the collector already registered under
// the same descriptor so that collectors sharing a registry share series.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing
		}
	}
	return c
}

func (p *PrometheusCollector) RecordAllocation(resources, days int, hours, overtime float64, elapsed time.Duration) {
	p.ensureRegistered()
	p.allocations.Inc()
	p.allocationLatency.Observe(elapsed.Seconds())
	p.poolSize.Observe(float64(resources))
	p.assignedHours.Add(hours)
	p.allocatedDays.Add(float64(days))
	p.overtimeHours.Add(overtime)
}

func (p *PrometheusCollector) RecordShortfall(hours float64) {
	p.ensureRegistered()
	p.shortfallHours.Add(hours)
}

func (p *PrometheusCollector) RecordError(operation, kind string) {
	p.ensureRegistered()
	p.errors.WithLabelValues(operation, kind).Inc()
}

func (p *PrometheusCollector) RecordTimeline(periods int) {
	p.ensureRegistered()
	p.timelines.Inc()
	p.timelinePeriods.Observe(float64(periods))
}
