package allocation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// slot tracks one resource's combined load while a day is being leveled.
type slot struct {
	order    int
	initial  decimal.Decimal
	level    decimal.Decimal
	ceiling  decimal.Decimal
	capped   bool
	overtime bool
}

func (s *slot) active() bool {
	return !s.capped || s.level.LessThan(s.ceiling)
}

// overtimeHours returns the new hours above max(ceiling, initial).
func (s *slot) overtimeHours() decimal.Decimal {
	base := decimal.Max(s.ceiling, s.initial)
	if s.level.GreaterThan(base) {
		return s.level.Sub(base)
	}
	return decimal.Zero
}

// level distributes budget over slots and returns the hours left unassigned.
// Slots are leveled within their ceilings first; any remainder is then
// leveled over overtime-eligible slots, preferring those with capacity.
func level(slots []*slot, budget decimal.Decimal, precision int32) decimal.Decimal {
	ordered := append([]*slot{}, slots...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].initial.LessThan(ordered[j].initial)
	})
	quantum := decimal.New(1, -precision)

	remaining := waterFill(ordered, budget, quantum, precision)
	if !remaining.IsPositive() {
		return decimal.Zero
	}
	var eligible, withCapacity []*slot
	for _, s := range ordered {
		if !s.overtime {
			continue
		}
		eligible = append(eligible, s)
		if s.ceiling.IsPositive() {
			withCapacity = append(withCapacity, s)
		}
	}
	if len(withCapacity) > 0 {
		eligible = withCapacity
	}
	if len(eligible) == 0 {
		return remaining
	}
	for _, s := range eligible {
		s.capped = false
	}
	return waterFill(ordered, remaining, quantum, precision)
}

// waterFill repeatedly raises the group of active slots at the lowest level
// to the next distinct level (or the nearest ceiling in the group) until the
// budget cannot pay for a full step; the rest is then split evenly over the
// group.
func waterFill(ordered []*slot, budget, quantum decimal.Decimal, precision int32) decimal.Decimal {
	for budget.IsPositive() {
		var active []*slot
		for _, s := range ordered {
			if s.active() {
				active = append(active, s)
			}
		}
		if len(active) == 0 {
			return budget
		}
		low := active[0].level
		for _, s := range active[1:] {
			if s.level.LessThan(low) {
				low = s.level
			}
		}
		var group []*slot
		for _, s := range active {
			if s.level.Equal(low) {
				group = append(group, s)
			}
		}
		target, bounded := nextLevel(active, group, low)
		if bounded {
			cost := target.Sub(low).Mul(decimal.NewFromInt(int64(len(group))))
			if budget.GreaterThanOrEqual(cost) {
				for _, s := range group {
					s.level = target
				}
				budget = budget.Sub(cost)
				continue
			}
		}
		split(group, budget, quantum, precision)
		return decimal.Zero
	}
	return decimal.Zero
}

func nextLevel(active, group []*slot, low decimal.Decimal) (decimal.Decimal, bool) {
	var target decimal.Decimal
	bounded := false
	consider := func(candidate decimal.Decimal) {
		if !bounded || candidate.LessThan(target) {
			target = candidate
			bounded = true
		}
	}
	for _, s := range active {
		if s.level.GreaterThan(low) {
			consider(s.level)
		}
	}
	for _, s := range group {
		if s.capped {
			consider(s.ceiling)
		}
	}
	return target, bounded
}

// split gives every group member an equal whole number of quanta; the
// leftover quanta go one each to the first members.
func split(group []*slot, budget, quantum decimal.Decimal, precision int32) {
	size := int64(len(group))
	units := budget.Shift(precision).IntPart()
	share := decimal.New(units/size, -precision)
	extra := units % size
	for i, s := range group {
		s.level = s.level.Add(share)
		if int64(i) < extra {
			s.level = s.level.Add(quantum)
		}
	}
}
