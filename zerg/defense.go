package zerg

import (
	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/world"
)

const (
	workerRushRadius = 8
	workerRushSize   = 3
	workerRushUntil  = 240.0 // seconds
	woundedDrone     = 0.25
	proxyPullDrones  = 4
)

// DefendWorkerRush pulls drones against enemy workers attacking a base early.
// Badly hurt drones go back to mining instead.
type DefendWorkerRush struct {
	name
	raiders model.Units
}

func (c *DefendWorkerRush) ShouldHandle(s *world.Snapshot) bool {
	c.raiders = nil
	if s.Time > workerRushUntil || s.Drones.Empty() {
		return false
	}
	c.raiders = s.Enemies.OfType(model.Workers...).Filter(func(u model.Unit) bool {
		return s.Townhalls.ClosestDistanceTo(u.Pos()) < workerRushRadius
	})
	return c.raiders.Len() >= workerRushSize
}

func (c *DefendWorkerRush) Handle(s *world.Snapshot, b *rules.Batch) bool {
	acted := false
	for _, drone := range s.Drones {
		if wounded(drone, woundedDrone) {
			if field, ok := s.MineralFields.ClosestTo(s.StartLocation); ok && drone.HasOrder(model.Attack) {
				b.Add(model.Gather(drone, field))
				acted = true
			}
			continue
		}
		target, ok := c.raiders.ClosestTo(drone.Pos())
		if !ok {
			break
		}
		b.Add(model.AttackUnit(drone, target))
		acted = true
	}
	return acted
}

// DefendProxies attacks enemy production built next to our start. The army
// handles finished proxies; drones are only pulled against ones still under
// construction.
type DefendProxies struct {
	name
}

func (c *DefendProxies) ShouldHandle(s *world.Snapshot) bool {
	if s.Proxies.Empty() {
		return false
	}
	return s.Army.Exists() || (s.Proxies.NotReady().Exists() && s.Drones.Len() > proxyPullDrones)
}

func (c *DefendProxies) Handle(s *world.Snapshot, b *rules.Batch) bool {
	if s.Army.Exists() {
		center := model.Centroid(s.Army.Positions())
		target, _ := s.Proxies.ClosestTo(center)
		if idle := s.Army.Idle(); idle.Exists() {
			b.Add(model.AttackMove(idle, target.Pos()))
		}
		for _, u := range s.Army.Filter(func(u model.Unit) bool { return !u.IsIdle() && !u.HasOrder(model.Attack) }) {
			b.Add(model.AttackUnit(u, target))
		}
		return true
	}

	building := s.Proxies.NotReady()
	target, _ := building.ClosestTo(s.StartLocation)
	pulled := 0
	drones := s.Drones
	for pulled < proxyPullDrones {
		drone, ok := drones.ClosestTo(target.Pos())
		if !ok {
			break
		}
		if !drone.HasOrder(model.Attack) {
			b.Add(model.AttackUnit(drone, target))
		}
		drones = drones.TagsNotIn(map[uint64]bool{drone.Tag: true})
		pulled++
	}
	return pulled > 0
}

// CancelBuildings cancels structures that are about to die before they
// finish, refunding most of their cost.
type CancelBuildings struct {
	name
	doomed model.Units
}

const cancelBelow = 0.15

func (c *CancelBuildings) ShouldHandle(s *world.Snapshot) bool {
	c.doomed = s.Structures.NotReady().Filter(func(u model.Unit) bool {
		return wounded(u, cancelBelow) && !u.HasOrder(model.CancelBuildInProgress)
	})
	return c.doomed.Exists()
}

func (c *CancelBuildings) Handle(s *world.Snapshot, b *rules.Batch) bool {
	for _, u := range c.doomed {
		b.Add(model.Use(u, model.CancelBuildInProgress))
	}
	return true
}

// wounded reports whether u is below the health fraction. Units with unknown
// max health are never wounded.
func wounded(u model.Unit, below float64) bool {
	return u.HealthMax > 0 && u.HealthFraction() < below
}
