// Package metrics records allocation engine metrics.
package metrics

import "time"

// Collector receives allocation and reporting measurements.
type Collector interface {
	// RecordAllocation records a successful allocation.
	RecordAllocation(resources, days int, hours, overtime float64, elapsed time.Duration)
	// RecordShortfall records required hours left unassigned.
	RecordShortfall(hours float64)
	// RecordError records a failed operation by kind (validation, calendar, storage).
	RecordError(operation, kind string)
	// RecordTimeline records a built load timeline.
	RecordTimeline(periods int)
}

// Nop discards every measurement.
type Nop struct{}

var _ Collector = (*Nop)(nil)

// NewNop returns a no-op collector.
func NewNop() *Nop { return &Nop{} }

func (*Nop) RecordAllocation(int, int, float64, float64, time.Duration) {}

func (*Nop) RecordShortfall(float64) {}

func (*Nop) RecordError(string, string) {}

func (*Nop) RecordTimeline(int) {}
