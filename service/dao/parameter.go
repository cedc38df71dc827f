package dao

// Well known List parameter names.
const (
	TaskID     = "TaskID"
	ResourceID = "ResourceID"
)

// Parameter narrows a List call; Value is a string or []string.
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a parameter matching any of values.
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}

// Values returns the parameter values as a slice.
func (p *Parameter) Values() []string {
	switch actual := p.Value.(type) {
	case string:
		return []string{actual}
	case []string:
		return actual
	}
	return nil
}
