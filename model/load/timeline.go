package load

import (
	"sort"
	"time"

	"github.com/viant/leveling/model/calendar"
)

// Timeline is a named, ordered sequence of non-overlapping load periods.
// It is immutable once built and safe for concurrent reads.
type Timeline struct {
	conceptName string
	periods     []*Period
}

// NewTimeline validates and sorts periods by start. A nil slice is rejected,
// an empty one yields an empty timeline. The caller's slice is not reordered.
func NewTimeline(conceptName string, periods []*Period) (*Timeline, error) {
	if conceptName == "" {
		return nil, invalidf("load timeline name must not be empty")
	}
	if periods == nil {
		return nil, invalidf("load timeline %q periods must not be nil", conceptName)
	}
	sorted := make([]*Period, len(periods))
	for i, period := range periods {
		if period == nil {
			return nil, invalidf("load timeline %q has nil period at %d", conceptName, i)
		}
		sorted[i] = period
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].start.Before(sorted[j].start)
	})
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[i].Overlaps(sorted[j]) {
				return nil, invalidf("load timeline %q periods overlap: [%s, %s) and [%s, %s)", conceptName,
					sorted[i].start.Format(calendar.DateLayout), sorted[i].end.Format(calendar.DateLayout),
					sorted[j].start.Format(calendar.DateLayout), sorted[j].end.Format(calendar.DateLayout))
			}
		}
	}
	return &Timeline{conceptName: conceptName, periods: sorted}, nil
}

// ConceptName returns the name given at construction.
func (t *Timeline) ConceptName() string { return t.conceptName }

// IsEmpty returns true when the timeline has no periods.
func (t *Timeline) IsEmpty() bool { return len(t.periods) == 0 }

// Periods returns the periods sorted by start.
func (t *Timeline) Periods() []*Period {
	return append([]*Period{}, t.periods...)
}

// Start returns the first period start, zero when empty.
func (t *Timeline) Start() time.Time {
	if t.IsEmpty() {
		return time.Time{}
	}
	return t.periods[0].start
}

// End returns the latest period end, zero when empty.
func (t *Timeline) End() time.Time {
	var result time.Time
	for _, period := range t.periods {
		if period.end.After(result) {
			result = period.end
		}
	}
	return result
}
