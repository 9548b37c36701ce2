package zerg

import (
	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/world"
)

const (
	attackSupply  = 180 // supply used at which the army leaves to attack
	attackArmy    = 40  // or army size, whichever comes first
	retreatArmy   = 10  // an attacking army smaller than this regroups
	rallyDistance = 8
	rallySlack    = 10
	defendRadius  = 30

	blockMinLings = 8
	maxBlockers   = 3
	blockRadius   = 3
)

type armyMode int

const (
	rally armyMode = iota
	defend
	attack
)

// ArmyControl decides where the army goes: defend a threatened base, push
// out once big enough, or gather at the rally point in front of the
// townhall closest to the map center.
type ArmyControl struct {
	name
	attacking bool

	mode   armyMode
	target model.Point
}

func (c *ArmyControl) ShouldHandle(s *world.Snapshot) bool {
	if s.Army.Empty() || !s.HasTownhall {
		return false
	}
	c.mode, c.target = c.decide(s)
	return true
}

func (c *ArmyControl) decide(s *world.Snapshot) (armyMode, model.Point) {
	if threat, ok := closestThreat(s); ok {
		return defend, threat.Pos()
	}
	big := s.SupplyUsed >= attackSupply || s.Army.Len() >= attackArmy
	if big || (c.attacking && s.Army.Len() >= retreatArmy) {
		return attack, attackTarget(s)
	}
	front, _ := s.Townhalls.ClosestTo(s.MapCenter)
	return rally, front.Pos().Towards(s.MapCenter, rallyDistance)
}

func (c *ArmyControl) Handle(s *world.Snapshot, b *rules.Batch) bool {
	c.attacking = c.mode == attack
	switch c.mode {
	case defend, attack:
		movers := s.Army.Filter(func(u model.Unit) bool { return !u.HasOrder(model.Attack) })
		if movers.Empty() {
			return false
		}
		b.Add(model.AttackMove(movers, c.target))
		return true
	}

	acted := false
	for _, u := range s.Army.Idle().FurtherThan(rallySlack, c.target) {
		b.Add(model.MoveTo(u, c.target))
		acted = true
	}
	return acted
}

// closestThreat is the enemy unit closest to any of our townhalls, if one is
// within defending range.
func closestThreat(s *world.Snapshot) (model.Unit, bool) {
	var (
		best  model.Unit
		bestD = float64(defendRadius)
		found bool
	)
	for _, e := range s.Enemies.NotStructures().ExcludeType(model.Overlord, model.Overseer, model.Observer) {
		if d := s.Townhalls.ClosestDistanceTo(e.Pos()); d < bestD {
			best, bestD, found = e, d, true
		}
	}
	return best, found
}

// attackTarget prefers known enemy structures, then the enemy start, then
// the expansion furthest from us.
func attackTarget(s *world.Snapshot) model.Point {
	if s.EnemyStructures.Exists() {
		center := model.Centroid(s.Army.Positions())
		u, _ := s.EnemyStructures.ClosestTo(center)
		return u.Pos()
	}
	if len(s.EnemyStarts) > 0 {
		return s.EnemyStarts[0]
	}
	if n := len(s.OrderedExpansions); n > 0 {
		return s.OrderedExpansions[n-1]
	}
	return s.MapCenter
}

// BlockExpansions parks burrowed zerglings on the open expansions on the
// enemy's half of the map to delay their next bases. A zergling walks to
// its spot with the burrow queued behind the move.
type BlockExpansions struct {
	name
	blockers map[model.Point]uint64 // expansion -> zergling on its way
	targets  []model.Point
}

func (c *BlockExpansions) ShouldHandle(s *world.Snapshot) bool {
	c.targets = c.targets[:0]
	if !s.Upgrades[model.Burrow] || s.CloseEnemiesToBase || s.Zerglings.Len() < blockMinLings || len(s.EnemyStarts) == 0 {
		return false
	}
	enemy := s.EnemyStarts[0]
	busy := s.BurrowedLings.Len()
	var open []model.Point
	for _, p := range s.OrderedExpansions {
		if p.Distance(enemy) >= p.Distance(s.StartLocation) {
			continue
		}
		if s.Townhalls.CloserThan(heldRadius, p).Exists() ||
			s.EnemyStructures.OfType(model.Townhalls...).CloserThan(heldRadius, p).Exists() ||
			s.BurrowedLings.CloserThan(blockRadius, p).Exists() {
			continue
		}
		if tag, ok := c.blockers[p]; ok {
			if ling, alive := s.Zerglings.ByTag(tag); alive && headingTo(ling, p) {
				busy++
				continue
			}
			delete(c.blockers, p)
		}
		open = append(open, p)
	}
	for _, p := range open {
		if busy+len(c.targets) >= maxBlockers {
			break
		}
		c.targets = append(c.targets, p)
	}
	return len(c.targets) > 0
}

func (c *BlockExpansions) Handle(s *world.Snapshot, b *rules.Batch) bool {
	taken := make(map[uint64]bool, len(c.blockers))
	for _, tag := range c.blockers {
		taken[tag] = true
	}
	acted := false
	for _, p := range c.targets {
		ling, ok := s.Zerglings.Idle().TagsNotIn(taken).ClosestTo(p)
		if !ok {
			break
		}
		burrow := model.Use(ling, model.BurrowDownZergling)
		burrow.Queue = true
		b.Add(model.MoveTo(ling, p), burrow)
		c.blockers[p] = ling.Tag
		taken[ling.Tag] = true
		acted = true
	}
	return acted
}

// headingTo reports whether u is still on its way to p or already there.
// Another module may have given it a different order since.
func headingTo(u model.Unit, p model.Point) bool {
	if u.DistanceTo(p) < blockRadius {
		return true
	}
	for _, o := range u.Orders {
		if o.Ability == model.Move && o.Target != nil && o.Target.Distance(p) < 1 {
			return true
		}
	}
	return false
}
