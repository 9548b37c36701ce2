package zerg

import (
	"math"
	"math/rand"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/world"
)

// fallbackAngle bounds the random spread of hardcoded positions.
const fallbackAngle = math.Pi / 4

type selector func(s *world.Snapshot) model.Units

func pools(s *world.Snapshot) model.Units     { return s.Pools }
func caverns(s *world.Snapshot) model.Units   { return s.Caverns }
func hydradens(s *world.Snapshot) model.Units { return s.Hydradens }
func townhalls(s *world.Snapshot) model.Units { return s.Townhalls }

func idleReady(sel selector) selector {
	return func(s *world.Snapshot) model.Units { return sel(s).Ready().Idle() }
}

// freeDrones are the drones not already walking to place a structure.
func freeDrones(s *world.Snapshot) model.Units {
	return s.Drones.Filter(func(u model.Unit) bool {
		for _, o := range u.Orders {
			if o.Ability.IsBuild() {
				return false
			}
		}
		return true
	})
}

// trainFromLarva morphs a random larva into t.
func trainFromLarva(s *world.Snapshot, b *rules.Batch, t model.UnitType, rng *rand.Rand) bool {
	larva, ok := s.Larvae.Random(rng)
	if !ok {
		return false
	}
	o, ok := model.Train(larva, t)
	if !ok {
		return false
	}
	b.Add(o)
	return true
}

// buildAt sends the free drone closest to p to place t there.
func buildAt(s *world.Snapshot, b *rules.Batch, t model.UnitType, p model.Point, near bool) bool {
	drone, ok := freeDrones(s).ClosestTo(p)
	if !ok {
		return false
	}
	var o model.Order
	if near {
		o, ok = model.BuildNear(drone, t, p)
	} else {
		o, ok = model.BuildAt(drone, t, p)
	}
	if !ok {
		return false
	}
	b.Add(o)
	return true
}

// anchor is the fixed point behind our furthest-from-center townhall that
// fallback placements spread around.
func anchor(s *world.Snapshot, distance float64) model.Point {
	return s.FurthestTownhall.Pos().Towards(s.MapCenter, -distance)
}

// hardcodedPosition is anchor with a random angle, so repeated fallbacks do
// not stack on the same spot.
func hardcodedPosition(s *world.Snapshot, distance float64, rng *rand.Rand) model.Point {
	return s.FurthestTownhall.Pos().TowardsWithRandomAngle(s.MapCenter, -distance, fallbackAngle, rng)
}

// placeProduction builds t behind a mineral line when the placement oracle
// finds room, and otherwise near the fallback point.
func placeProduction(s *world.Snapshot, b *rules.Batch, d Deps, t model.UnitType, fallback func() (model.Point, bool)) bool {
	if d.Placement != nil {
		if p, ok := d.Placement.ProductionPosition(s, t); ok {
			return buildAt(s, b, t, p, false)
		}
	}
	p, ok := fallback()
	if !ok {
		return false
	}
	return buildAt(s, b, t, p, true)
}
