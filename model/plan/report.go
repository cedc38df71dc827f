package plan

// Report is the outcome of a plan run, rendered as YAML by the CLI.
type Report struct {
	Plan      string            `yaml:"plan" json:"plan"`
	Tasks     []*TaskReport     `yaml:"tasks" json:"tasks"`
	Timelines []*TimelineReport `yaml:"timelines,omitempty" json:"timelines,omitempty"`
}

// TaskReport summarises one task allocation; Error is set when it failed.
type TaskReport struct {
	TaskID        string              `yaml:"task" json:"task"`
	AllocationID  string              `yaml:"allocation,omitempty" json:"allocation,omitempty"`
	Unit          string              `yaml:"unit,omitempty" json:"unit,omitempty"`
	Resources     []string            `yaml:"resources,omitempty" json:"resources,omitempty"`
	TotalHours    string              `yaml:"totalHours,omitempty" json:"totalHours,omitempty"`
	OvertimeHours string              `yaml:"overtimeHours,omitempty" json:"overtimeHours,omitempty"`
	Assignments   []*AssignmentReport `yaml:"assignments,omitempty" json:"assignments,omitempty"`
	Shortfalls    []*ShortfallReport  `yaml:"shortfalls,omitempty" json:"shortfalls,omitempty"`
	Error         string              `yaml:"error,omitempty" json:"error,omitempty"`
}

// AssignmentReport is one day assignment.
type AssignmentReport struct {
	Day      string `yaml:"day" json:"day"`
	Resource string `yaml:"resource" json:"resource"`
	Hours    string `yaml:"hours" json:"hours"`
	Overtime string `yaml:"overtime,omitempty" json:"overtime,omitempty"`
}

// ShortfallReport is required work left unassigned on a day.
type ShortfallReport struct {
	Day   string `yaml:"day" json:"day"`
	Hours string `yaml:"hours" json:"hours"`
}

// TimelineReport lists the load periods of a resource or criteria concept.
type TimelineReport struct {
	Concept string          `yaml:"concept" json:"concept"`
	Periods []*PeriodReport `yaml:"periods" json:"periods"`
}

// PeriodReport is one load period; End is exclusive.
type PeriodReport struct {
	Start     string `yaml:"start" json:"start"`
	End       string `yaml:"end" json:"end"`
	Available string `yaml:"available" json:"available"`
	Assigned  string `yaml:"assigned" json:"assigned"`
	Level     int    `yaml:"level" json:"level"`
	Category  string `yaml:"category" json:"category"`
}

// Task returns the report of taskID.
func (r *Report) Task(taskID string) *TaskReport {
	for _, candidate := range r.Tasks {
		if candidate.TaskID == taskID {
			return candidate
		}
	}
	return nil
}

// Timeline returns the timeline of concept.
func (r *Report) Timeline(concept string) *TimelineReport {
	for _, candidate := range r.Timelines {
		if candidate.Concept == concept {
			return candidate
		}
	}
	return nil
}
