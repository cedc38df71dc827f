package load

import (
	"math"

	"github.com/shopspring/decimal"
)

// Category buckets a load level.
type Category string

const (
	NoLoad   Category = "no_load"
	SomeLoad Category = "some_load"
	FullLoad Category = "full_load"
	Overload Category = "overload"
)

// Unbounded is the level reported for work assigned on a day without capacity.
const Unbounded = math.MaxInt32

var hundred = decimal.NewFromInt(100)

// Level is a utilization percentage; values above 100 signal overtime.
type Level struct {
	percentage int
}

// NewLevel creates a level, rejecting negative percentages.
func NewLevel(percentage int) (Level, error) {
	if percentage < 0 {
		return Level{}, invalidf("load level must not be negative, got %d", percentage)
	}
	return Level{percentage: percentage}, nil
}

// LevelOf derives the level of assigned hours against available hours,
// rounding up to a whole percentage.
func LevelOf(assigned, available decimal.Decimal) (Level, error) {
	if assigned.IsNegative() || available.IsNegative() {
		return Level{}, invalidf("negative hours: assigned %s, available %s", assigned, available)
	}
	if assigned.IsZero() {
		return Level{}, nil
	}
	if available.IsZero() {
		return Level{percentage: Unbounded}, nil
	}
	percentage := assigned.Mul(hundred).Div(available).Ceil()
	if percentage.GreaterThanOrEqual(decimal.NewFromInt(Unbounded)) {
		return Level{percentage: Unbounded}, nil
	}
	return Level{percentage: int(percentage.IntPart())}, nil
}

// Percentage returns the utilization percentage.
func (l Level) Percentage() int { return l.percentage }

// Category returns the level bucket.
func (l Level) Category() Category {
	switch {
	case l.percentage == 0:
		return NoLoad
	case l.percentage < 100:
		return SomeLoad
	case l.percentage == 100:
		return FullLoad
	}
	return Overload
}
