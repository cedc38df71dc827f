package allocation

import (
	"github.com/viant/leveling/model/calendar"
	"github.com/viant/leveling/policy"
)

const (
	// DefaultPrecision is the number of decimal places hours are quantized to.
	DefaultPrecision int32 = 2
	// MaxPrecision bounds the decimal places of hour quantities.
	MaxPrecision int32 = 6
)

// Option customises a Generic allocation.
type Option func(g *Generic)

// WithID sets the allocation id instead of a generated one.
func WithID(id string) Option {
	return func(g *Generic) { g.ID = id }
}

// WithPrecision sets the decimal places used for hour quantities.
func WithPrecision(places int32) Option {
	return func(g *Generic) { g.precision = places }
}

// WithOvertimePolicy sets the overtime policy; nil allows overtime for everyone.
func WithOvertimePolicy(p *policy.Policy) Option {
	return func(g *Generic) { g.policy = p }
}

// WithDefaultCalendar sets the system calendar used when neither the task
// nor a resource has one.
func WithDefaultCalendar(cal calendar.Calendar) Option {
	return func(g *Generic) { g.defaultCalendar = cal }
}
