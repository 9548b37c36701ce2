package world

import "github.com/nstehr/brood/model"

// CanAfford reports whether the bank covers the minerals and gas of t.
// Unknown types are never affordable.
func (s *Snapshot) CanAfford(t model.UnitType) bool {
	c, ok := model.UnitCost(t)
	return ok && s.covers(c)
}

// CanAffordResearch reports whether the bank covers a research ability.
func (s *Snapshot) CanAffordResearch(a model.Ability) bool {
	c, ok := model.ResearchCost(a)
	return ok && s.covers(c)
}

func (s *Snapshot) covers(c model.Cost) bool {
	return s.Minerals >= c.Minerals && s.Vespene >= c.Vespene
}

// CanFeed reports whether there is supply left for t.
func (s *Snapshot) CanFeed(t model.UnitType) bool {
	c, ok := model.UnitCost(t)
	if !ok {
		return false
	}
	return c.Supply == 0 || s.SupplyLeft >= c.Supply
}

// AlreadyPending counts units of type t that are ordered but not finished:
// eggs, drones and townhalls carrying the creating ability, plus own
// structures of t still under construction.
func (s *Snapshot) AlreadyPending(t model.UnitType) int {
	n := s.Units.OfType(t).NotReady().Len()
	a, ok := model.CreatedBy(t)
	if !ok {
		return n
	}
	for _, u := range s.Units {
		for _, o := range u.Orders {
			if o.Ability == a {
				n++
			}
		}
	}
	return n
}

// AlreadyPendingUpgrade reports whether u is researched or being researched.
func (s *Snapshot) AlreadyPendingUpgrade(u model.Upgrade) bool {
	if s.Upgrades[u] {
		return true
	}
	a, ok := model.ResearchedBy(u)
	if !ok {
		return false
	}
	return s.Structures.WithOrder(a).Exists()
}

// HasUpgrade reports whether u has finished researching.
func (s *Snapshot) HasUpgrade(u model.Upgrade) bool {
	return s.Upgrades[u]
}

// CanTrain is the shared gate for every unit: larva when needed, bank,
// supply and the caller's own requirement.
func (s *Snapshot) CanTrain(t model.UnitType, requirement, needsLarva bool) bool {
	return (!needsLarva || s.Larvae.Exists()) && s.CanAfford(t) && s.CanFeed(t) && requirement
}

// BuildingRequirement is the shared gate for every structure.
func (s *Snapshot) BuildingRequirement(t model.UnitType, requirement bool) bool {
	return requirement && s.CanAfford(t)
}

// CanBuildUnique gates structures we only ever want one of. existing is
// the group of that structure we already own, finished or not.
func (s *Snapshot) CanBuildUnique(t model.UnitType, existing model.Units, requirement bool) bool {
	return s.AlreadyPending(t) == 0 && existing.Empty() && s.BuildingRequirement(t, requirement)
}

// CanUpgrade gates every research: not started, affordable and a host
// structure free to run it.
func (s *Snapshot) CanUpgrade(u model.Upgrade, research model.Ability, hosts model.Units) bool {
	return !s.AlreadyPendingUpgrade(u) && s.CanAffordResearch(research) && hosts.Exists()
}
