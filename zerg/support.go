package zerg

import (
	"math"
	"math/rand"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/world"
)

const (
	queenAggroRadius = 10
	queenBaseRadius  = 4
	injectEnergy     = 25
	tumorStep        = 5
	overseerSpacing  = 5
	scoutPeriod      = 2000
	scoutAt          = 75
	overlordScouts   = 2
	overlordUntil    = 300.0 // seconds
	tumorRange       = 10
	tumorMinSpread   = 4
	heldRadius       = 6
)

// Queens keeps one queen injecting at every base. Queens fight enemies that
// come close, inject the nearest base when it is not already injected and
// spread creep with spare energy; queens away from every base walk to a
// base that has none.
//
// Nothing remembers which queen belongs to which base. Assignments are
// recomputed from distances every step, so two queens between two bases
// can swap targets from one step to the next.
type Queens struct {
	name
}

func (c *Queens) ShouldHandle(s *world.Snapshot) bool {
	return s.Queens.Exists() && s.Townhalls.Exists()
}

func (c *Queens) Handle(s *world.Snapshot, b *rules.Batch) bool {
	if s.FloatingBuildingsBM && s.SupplyUsed >= 199 {
		return false
	}
	enemies := s.Enemies.NotStructures()
	ordered := make(map[uint64]bool)
	acted := false

	for _, queen := range s.Queens.Idle() {
		pos := queen.Pos()
		if near := enemies.CloserThan(queenAggroRadius, pos); near.Exists() {
			target, _ := near.ClosestTo(pos)
			b.Add(model.AttackUnit(queen, target))
			ordered[queen.Tag] = true
			acted = true
			continue
		}
		if queen.Energy < injectEnergy {
			continue
		}
		base, _ := s.Townhalls.ClosestTo(pos)
		if !base.HasBuff(model.QueenSpawnLarvaTimer) {
			b.Add(model.UseOn(queen, model.EffectInjectLarva, base))
		} else {
			b.Add(model.UseAt(queen, model.BuildCreepTumorQueen, tumorSpot(s, queen)))
		}
		ordered[queen.Tag] = true
		acted = true
	}

	free := s.Queens.Idle().TagsNotIn(ordered)
	for _, hall := range s.Townhalls.Ready().Idle() {
		if s.Queens.CloserThan(queenBaseRadius, hall.Pos()).Exists() {
			continue
		}
		for _, queen := range free {
			if s.Townhalls.CloserThan(queenBaseRadius, queen.Pos()).Exists() {
				continue
			}
			b.Add(model.MoveTo(queen, hall.Pos()))
			free = free.TagsNotIn(map[uint64]bool{queen.Tag: true})
			acted = true
			break
		}
	}
	return acted
}

// tumorSpot steps toward the map center while the step stays on creep.
func tumorSpot(s *world.Snapshot, queen model.Unit) model.Point {
	p := queen.Pos().Towards(s.MapCenter, tumorStep)
	if s.Creep != nil && !s.Creep.AtPoint(p) {
		return queen.Pos()
	}
	return p
}

// CreepTumor spreads creep. Each burrowed tumor can plant one more, so every
// tumor that has not spread yet plants the next as far as the creep reaches
// toward the closest expansion we do not hold, or toward the map center once
// every expansion is ours.
type CreepTumor struct {
	name
	spent map[uint64]bool
	ready model.Units
}

func (c *CreepTumor) ShouldHandle(s *world.Snapshot) bool {
	c.ready = s.Tumors.OfType(model.CreepTumorBurrowed).Ready().Idle().TagsNotIn(c.spent)
	return c.ready.Exists()
}

func (c *CreepTumor) Handle(s *world.Snapshot, b *rules.Batch) bool {
	acted := false
	for _, tumor := range c.ready {
		p, ok := creepSpot(s, tumor.Pos(), creepGoal(s, tumor.Pos()))
		if !ok {
			continue
		}
		b.Add(model.UseAt(tumor, model.BuildCreepTumorTumor, p))
		c.spent[tumor.Tag] = true
		acted = true
	}
	return acted
}

func creepGoal(s *world.Snapshot, from model.Point) model.Point {
	goal, best := s.MapCenter, math.Inf(1)
	for _, p := range s.OrderedExpansions {
		if s.Townhalls.CloserThan(heldRadius, p).Exists() {
			continue
		}
		if d := from.Distance(p); d < best {
			goal, best = p, d
		}
	}
	return goal
}

// creepSpot walks back from the tumor's full range until the point is on
// creep. Without a creep layer the full range is used.
func creepSpot(s *world.Snapshot, from, goal model.Point) (model.Point, bool) {
	for d := float64(tumorRange); d >= tumorMinSpread; d-- {
		p := from.Towards(goal, d)
		if s.Creep == nil || s.Creep.AtPoint(p) {
			return p, true
		}
	}
	return model.Point{}, false
}

// DroneScout periodically walks a drone through the expansions to spot
// proxies and hidden bases. The first time it also sends a second drone to
// the far corner of the map.
type DroneScout struct {
	name
	rng       *rand.Rand
	rushScout bool
}

func (c *DroneScout) ShouldHandle(s *world.Snapshot) bool {
	return s.Drones.Exists() && s.Iteration%scoutPeriod == scoutAt && !s.CloseEnemyProduction &&
		len(s.OrderedExpansions) > 2
}

func (c *DroneScout) Handle(s *world.Snapshot, b *rules.Batch) bool {
	scout, _ := s.Drones.ClosestTo(s.StartLocation)
	for _, p := range s.OrderedExpansions[2:] {
		b.Add(model.MoveQueued(scout, p))
	}
	if !c.rushScout {
		c.rushScout = true
		if drone, ok := s.Drones.Random(c.rng); ok {
			b.Add(model.MoveQueued(drone, s.OrderedExpansions[len(s.OrderedExpansions)-1]))
		}
	}
	return true
}

// OverseerControl parks overseers on bases that have none nearby. Like the
// queens, the pairing is recomputed each step from distances.
type OverseerControl struct {
	name
	bases     model.Units
	overseers model.Units
}

func (c *OverseerControl) ShouldHandle(s *world.Snapshot) bool {
	c.bases = s.Townhalls.Ready()
	c.overseers = s.Overseers
	return c.overseers.Exists() && c.bases.Exists()
}

func (c *OverseerControl) Handle(s *world.Snapshot, b *rules.Batch) bool {
	acted := false
	for _, ov := range c.overseers {
		if c.bases.ClosestDistanceTo(ov.Pos()) <= overseerSpacing {
			continue
		}
		for _, base := range c.bases {
			if c.overseers.CloserThan(overseerSpacing, base.Pos()).Exists() {
				continue
			}
			b.Add(model.MoveTo(ov, base.Pos()))
			acted = true
			break
		}
	}
	return acted
}

// OverlordControl sends the first overlords out as early scouts: one to the
// enemy natural, one over our own natural.
type OverlordControl struct {
	name
	sent map[uint64]bool
}

func (c *OverlordControl) ShouldHandle(s *world.Snapshot) bool {
	return s.Time < overlordUntil && len(c.sent) < overlordScouts &&
		s.Overlords.TagsNotIn(c.sent).Exists() && len(s.OrderedExpansions) >= 2
}

func (c *OverlordControl) Handle(s *world.Snapshot, b *rules.Batch) bool {
	n := len(s.OrderedExpansions)
	spots := []model.Point{s.OrderedExpansions[n-2], s.OrderedExpansions[0]}
	acted := false
	for _, ov := range s.Overlords.TagsNotIn(c.sent) {
		if len(c.sent) >= overlordScouts {
			break
		}
		b.Add(model.MoveTo(ov, spots[len(c.sent)]))
		c.sent[ov.Tag] = true
		acted = true
	}
	return acted
}
