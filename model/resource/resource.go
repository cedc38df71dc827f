// Package resource defines the resources work can be allocated to and the
// criteria used to select them.
package resource

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/viant/leveling/model/calendar"
)

// Resource is a referenced, interchangeable unit of capacity.
type Resource interface {
	// ID returns a stable identity.
	ID() string
	// Calendar returns the resource's own calendar or nil.
	Calendar() calendar.Calendar
	// AssignedHours returns the hours already assigned on day by other tasks.
	AssignedHours(day time.Time) decimal.Decimal
}

// Criterion is a qualification a resource can satisfy, such as a skill.
type Criterion struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Name string `json:"name" yaml:"name"`
}

func (c Criterion) String() string {
	if c.Type == "" {
		return c.Name
	}
	return c.Type + ":" + c.Name
}

// Criteria is a set of criteria.
type Criteria []Criterion

// Clone returns a sorted copy without duplicates.
func (c Criteria) Clone() Criteria {
	seen := make(map[Criterion]bool, len(c))
	result := make(Criteria, 0, len(c))
	for _, criterion := range c {
		if seen[criterion] {
			continue
		}
		seen[criterion] = true
		result = append(result, criterion)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].String() < result[j].String()
	})
	return result
}

// Contains returns true if criterion belongs to the set.
func (c Criteria) Contains(criterion Criterion) bool {
	for _, candidate := range c {
		if candidate == criterion {
			return true
		}
	}
	return false
}

func (c Criteria) String() string {
	names := make([]string, 0, len(c))
	for _, criterion := range c.Clone() {
		names = append(names, criterion.String())
	}
	return strings.Join(names, ",")
}

// Predicate decides whether a resource satisfies a criteria set.
type Predicate func(resource Resource, criteria Criteria) bool

// Qualified is implemented by resources that can answer criteria queries.
type Qualified interface {
	Satisfies(criterion Criterion) bool
}

// SatisfiesAll is the default predicate: the resource must implement
// Qualified and satisfy every criterion.
func SatisfiesAll(resource Resource, criteria Criteria) bool {
	qualified, ok := resource.(Qualified)
	if !ok {
		return len(criteria) == 0
	}
	for _, criterion := range criteria {
		if !qualified.Satisfies(criterion) {
			return false
		}
	}
	return true
}

// Filter returns the resources the predicate accepts, keeping input order.
func Filter(resources []Resource, criteria Criteria, predicate Predicate) []Resource {
	if predicate == nil {
		predicate = SatisfiesAll
	}
	var result []Resource
	for _, candidate := range resources {
		if candidate != nil && predicate(candidate, criteria) {
			result = append(result, candidate)
		}
	}
	return result
}
