package allocation

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/viant/leveling/model/resource"
)

// DayAssignment holds the hours assigned to one resource on one day.
// Zero-hour assignments are kept: every pool resource has one per task day.
type DayAssignment struct {
	ResourceID string            `json:"resourceId" yaml:"resource"`
	Resource   resource.Resource `json:"-" yaml:"-"`
	Day        time.Time         `json:"day" yaml:"day"`
	Hours      decimal.Decimal   `json:"hours" yaml:"hours"`
	// Overtime is the part of Hours beyond the resource's calendar capacity.
	Overtime decimal.Decimal `json:"overtime" yaml:"overtime"`
}

// Shortfall records required hours no resource could take under the
// overtime policy.
type Shortfall struct {
	Day   time.Time       `json:"day" yaml:"day"`
	Hours decimal.Decimal `json:"hours" yaml:"hours"`
}
