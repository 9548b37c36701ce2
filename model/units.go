package model

import (
	"math"
	"math/rand"
	"slices"
)

// Units is a read-only view over a group of units. Every query returns a
// new slice and never reorders or mutates the receiver.
type Units []Unit

func (us Units) Len() int     { return len(us) }
func (us Units) Empty() bool  { return len(us) == 0 }
func (us Units) Exists() bool { return len(us) > 0 }

func (us Units) First() (Unit, bool) {
	if len(us) == 0 {
		return Unit{}, false
	}
	return us[0], true
}

func (us Units) Filter(keep func(Unit) bool) Units {
	var out Units
	for _, u := range us {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

func (us Units) OfType(types ...UnitType) Units {
	return us.Filter(func(u Unit) bool { return slices.Contains(types, u.Type) })
}

func (us Units) ExcludeType(types ...UnitType) Units {
	return us.Filter(func(u Unit) bool { return !slices.Contains(types, u.Type) })
}

func (us Units) Ready() Units {
	return us.Filter(Unit.IsReady)
}

func (us Units) NotReady() Units {
	return us.Filter(func(u Unit) bool { return !u.IsReady() })
}

func (us Units) Idle() Units {
	return us.Filter(Unit.IsIdle)
}

func (us Units) Flying() Units {
	return us.Filter(func(u Unit) bool { return u.IsFlying })
}

func (us Units) NotFlying() Units {
	return us.Filter(func(u Unit) bool { return !u.IsFlying })
}

func (us Units) Structures() Units {
	return us.Filter(func(u Unit) bool { return u.IsStructure })
}

func (us Units) NotStructures() Units {
	return us.Filter(func(u Unit) bool { return !u.IsStructure })
}

func (us Units) TagsNotIn(tags map[uint64]bool) Units {
	if len(tags) == 0 {
		return us
	}
	return us.Filter(func(u Unit) bool { return !tags[u.Tag] })
}

func (us Units) WithOrder(a Ability) Units {
	return us.Filter(func(u Unit) bool { return u.HasOrder(a) })
}

// CloserThan returns units strictly within distance of p.
func (us Units) CloserThan(distance float64, p Point) Units {
	d2 := distance * distance
	return us.Filter(func(u Unit) bool { return u.Pos().DistanceSq(p) < d2 })
}

// FurtherThan returns units strictly beyond distance of p.
func (us Units) FurtherThan(distance float64, p Point) Units {
	d2 := distance * distance
	return us.Filter(func(u Unit) bool { return u.Pos().DistanceSq(p) > d2 })
}

// ClosestTo returns the unit nearest to p. Ties go to the earlier unit.
func (us Units) ClosestTo(p Point) (Unit, bool) {
	best := -1
	bestD := math.MaxFloat64
	for i, u := range us {
		if d := u.Pos().DistanceSq(p); d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return Unit{}, false
	}
	return us[best], true
}

// FurthestTo returns the unit farthest from p. Ties go to the earlier unit.
func (us Units) FurthestTo(p Point) (Unit, bool) {
	best := -1
	bestD := -1.0
	for i, u := range us {
		if d := u.Pos().DistanceSq(p); d > bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return Unit{}, false
	}
	return us[best], true
}

func (us Units) ByTag(tag uint64) (Unit, bool) {
	for _, u := range us {
		if u.Tag == tag {
			return u, true
		}
	}
	return Unit{}, false
}

// ClosestDistanceTo returns the distance from p to the nearest unit, or
// +Inf for an empty group.
func (us Units) ClosestDistanceTo(p Point) float64 {
	u, ok := us.ClosestTo(p)
	if !ok {
		return math.Inf(1)
	}
	return u.DistanceTo(p)
}

// Random picks a unit using rng, or the first unit when rng is nil.
func (us Units) Random(rng *rand.Rand) (Unit, bool) {
	if len(us) == 0 {
		return Unit{}, false
	}
	if rng == nil {
		return us[0], true
	}
	return us[rng.Intn(len(us))], true
}

func (us Units) Tags() []uint64 {
	tags := make([]uint64, len(us))
	for i, u := range us {
		tags[i] = u.Tag
	}
	return tags
}

func (us Units) Positions() []Point {
	pts := make([]Point, len(us))
	for i, u := range us {
		pts[i] = u.Pos()
	}
	return pts
}

// CountByType tallies units per type name.
func (us Units) CountByType() map[string]int {
	counts := make(map[string]int)
	for _, u := range us {
		counts[string(u.Type)]++
	}
	return counts
}
