package zerg

import (
	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/world"
)

const (
	mineralLineRadius = 10
	gasWorkers        = 3
)

// DistributeWorkers keeps drones busy: idle drones go back to the closest
// mineral line, and each finished extractor gets topped up to three drones.
type DistributeWorkers struct {
	name
	fields model.Units
	idle   model.Units
	short  map[uint64]int // extractor tag -> missing drones
}

func (c *DistributeWorkers) ShouldHandle(s *world.Snapshot) bool {
	bases := s.Townhalls.Ready()
	c.fields = s.MineralFields.Filter(func(u model.Unit) bool {
		return bases.ClosestDistanceTo(u.Pos()) < mineralLineRadius
	})
	if c.fields.Empty() {
		c.fields = s.MineralFields
	}
	c.idle = s.Drones.Idle()

	c.short = make(map[uint64]int)
	assigned := gasAssignments(s)
	for _, ex := range s.Extractors.Ready() {
		if n := gasWorkers - assigned[ex.Tag]; n > 0 {
			c.short[ex.Tag] = n
		}
	}
	return (c.idle.Exists() && c.fields.Exists()) || (len(c.short) > 0 && s.Drones.Len() > len(c.short)*gasWorkers)
}

func (c *DistributeWorkers) Handle(s *world.Snapshot, b *rules.Batch) bool {
	acted := false
	for _, drone := range c.idle {
		field, ok := c.fields.ClosestTo(drone.Pos())
		if !ok {
			break
		}
		b.Add(model.Gather(drone, field))
		acted = true
	}

	taken := make(map[uint64]bool)
	for _, d := range c.idle {
		taken[d.Tag] = true
	}
	for _, ex := range s.Extractors.Ready() {
		missing := c.short[ex.Tag]
		for range missing {
			drone, ok := mineralDrones(s, taken).ClosestTo(ex.Pos())
			if !ok {
				break
			}
			b.Add(model.Gather(drone, ex))
			taken[drone.Tag] = true
			acted = true
		}
	}
	return acted
}

// gasAssignments counts the drones working each ready extractor. The
// game's own count wins when the bridge reports one. Otherwise a drone
// counts while it gathers from the extractor, and while it carries the gas
// back: returning drones carry no target, so they go to the extractor
// nearest them when they hold gas or when no mineral field is closer.
func gasAssignments(s *world.Snapshot) map[uint64]int {
	extractors := s.Extractors.Ready()
	out := make(map[uint64]int, len(extractors))
	reported := make(map[uint64]bool)
	for _, ex := range extractors {
		if ex.AssignedHarvesters > 0 {
			out[ex.Tag] = ex.AssignedHarvesters
			reported[ex.Tag] = true
		}
	}
	for _, d := range s.Drones {
		tag, ok := gasTarget(s, extractors, d)
		if ok && !reported[tag] {
			out[tag]++
		}
	}
	return out
}

func gasTarget(s *world.Snapshot, extractors model.Units, d model.Unit) (uint64, bool) {
	for _, o := range d.Orders {
		switch o.Ability {
		case model.HarvestGather:
			if _, ok := extractors.ByTag(o.TargetTag); ok {
				return o.TargetTag, true
			}
			return 0, false
		case model.HarvestReturn:
			ex, ok := extractors.ClosestTo(d.Pos())
			if !ok {
				return 0, false
			}
			if d.HasBuff(model.CarryGas) || s.MineralFields.ClosestDistanceTo(d.Pos()) > ex.DistanceTo(d.Pos()) {
				return ex.Tag, true
			}
			return 0, false
		}
	}
	return 0, false
}

// mineralDrones are drones gathering from something other than an extractor.
func mineralDrones(s *world.Snapshot, skip map[uint64]bool) model.Units {
	extractors := make(map[uint64]bool)
	for _, ex := range s.Extractors {
		extractors[ex.Tag] = true
	}
	return s.Drones.TagsNotIn(skip).Filter(func(d model.Unit) bool {
		for _, o := range d.Orders {
			if o.Ability == model.HarvestGather && !extractors[o.TargetTag] {
				return true
			}
		}
		return false
	})
}

// SplitWorkers sends every starting drone to its own closest mineral field.
// It runs once, on the first step of a match.
func SplitWorkers(s *world.Snapshot, b *rules.Batch) bool {
	acted := false
	for _, drone := range s.Drones {
		field, ok := s.MineralFields.ClosestTo(drone.Pos())
		if !ok {
			return false
		}
		b.Add(model.Gather(drone, field))
		acted = true
	}
	return acted
}
