package plan

import "github.com/viant/leveling/model/resource"

// Plan is a leveling scenario.
type Plan struct {
	Name      string               `yaml:"name" json:"name"`
	Precision *int32               `yaml:"precision,omitempty" json:"precision,omitempty"`
	Calendars map[string]*Calendar `yaml:"calendars,omitempty" json:"calendars,omitempty"`
	Resources []*Resource          `yaml:"resources" json:"resources"`
	Tasks     []*Task              `yaml:"tasks" json:"tasks"`
	Timeline  *Range               `yaml:"timeline,omitempty" json:"timeline,omitempty"`
}

// Calendar describes workable hours. Weekly takes precedence over
// Weekdays/HoursPerDay; Exceptions override per day; Within constrains the
// calendar by other named calendars (minimum of all).
type Calendar struct {
	HoursPerDay *Quantity           `yaml:"hoursPerDay,omitempty" json:"hoursPerDay,omitempty"`
	Weekdays    []string            `yaml:"weekdays,omitempty" json:"weekdays,omitempty"`
	Weekly      map[string]Quantity `yaml:"weekly,omitempty" json:"weekly,omitempty"`
	Exceptions  map[string]Quantity `yaml:"exceptions,omitempty" json:"exceptions,omitempty"`
	Within      []string            `yaml:"within,omitempty" json:"within,omitempty"`
}

// Resource is a worker definition; Load is pre-existing hours by day.
type Resource struct {
	ID       string              `yaml:"id" json:"id"`
	Name     string              `yaml:"name,omitempty" json:"name,omitempty"`
	Calendar string              `yaml:"calendar,omitempty" json:"calendar,omitempty"`
	Criteria resource.Criteria   `yaml:"criteria,omitempty" json:"criteria,omitempty"`
	Load     map[string]Quantity `yaml:"load,omitempty" json:"load,omitempty"`
}

// Task is work to allocate. End is exclusive; Days is an alternative to End.
// Resources restricts the candidate pool to the listed ids.
type Task struct {
	ID        string            `yaml:"id" json:"id"`
	Name      string            `yaml:"name,omitempty" json:"name,omitempty"`
	Start     string            `yaml:"start" json:"start"`
	End       string            `yaml:"end,omitempty" json:"end,omitempty"`
	Days      int               `yaml:"days,omitempty" json:"days,omitempty"`
	Calendar  string            `yaml:"calendar,omitempty" json:"calendar,omitempty"`
	Criteria  resource.Criteria `yaml:"criteria,omitempty" json:"criteria,omitempty"`
	Unit      Unit              `yaml:"unit" json:"unit"`
	Resources []string          `yaml:"resources,omitempty" json:"resources,omitempty"`
}

// Unit sets exactly one intensity.
type Unit struct {
	Amount     *Quantity `yaml:"amount,omitempty" json:"amount,omitempty"`
	Percentage *Quantity `yaml:"percentage,omitempty" json:"percentage,omitempty"`
	Hours      *Quantity `yaml:"hours,omitempty" json:"hours,omitempty"`
}

// Range bounds the reported timelines; End is exclusive. When omitted the
// range spans all tasks.
type Range struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}
