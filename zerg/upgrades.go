package zerg

import (
	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/world"
)

// Research starts one upgrade from the first free host once it is
// affordable. when adds a module-specific condition; nil means always.
type Research struct {
	name
	upgrade model.Upgrade
	hosts   selector
	when    func(s *world.Snapshot) bool

	host model.Unit
}

func (c *Research) ShouldHandle(s *world.Snapshot) bool {
	a, ok := model.ResearchedBy(c.upgrade)
	if !ok {
		return false
	}
	hosts := c.hosts(s)
	if !s.CanUpgrade(c.upgrade, a, hosts) {
		return false
	}
	if c.when != nil && !c.when(s) {
		return false
	}
	c.host, _ = hosts.First()
	return true
}

func (c *Research) Handle(s *world.Snapshot, b *rules.Batch) bool {
	a, _ := model.ResearchedBy(c.upgrade)
	b.Add(model.Use(c.host, a))
	return true
}

// evoUpgrade is one rung of the evolution chamber ladder.
type evoUpgrade struct {
	upgrade model.Upgrade
	after   model.Upgrade // previous level, empty for level 1
	needs   func(s *world.Snapshot) bool
}

func anyLair(s *world.Snapshot) bool { return s.Lairs.Exists() || s.Hives.Exists() }
func anyHive(s *world.Snapshot) bool { return s.Hives.Exists() }
func hasDen(s *world.Snapshot) bool  { return s.Hydradens.Exists() }

var evoLadder = []evoUpgrade{
	{upgrade: model.MeleeWeapons1},
	{upgrade: model.GroundArmor1},
	{upgrade: model.MissileWeapons1, needs: hasDen},
	{upgrade: model.MeleeWeapons2, after: model.MeleeWeapons1, needs: anyLair},
	{upgrade: model.GroundArmor2, after: model.GroundArmor1, needs: anyLair},
	{upgrade: model.MissileWeapons2, after: model.MissileWeapons1, needs: anyLair},
	{upgrade: model.MeleeWeapons3, after: model.MeleeWeapons2, needs: anyHive},
	{upgrade: model.GroundArmor3, after: model.GroundArmor2, needs: anyHive},
	{upgrade: model.MissileWeapons3, after: model.MissileWeapons2, needs: anyHive},
}

// UpgradeEvochamber climbs the melee, carapace and missile ladders, one
// research per idle chamber per step. All picks of a step draw from one bank.
type UpgradeEvochamber struct {
	name
	picks []evoPick
}

type evoPick struct {
	chamber  model.Unit
	research model.Ability
}

func (c *UpgradeEvochamber) ShouldHandle(s *world.Snapshot) bool {
	c.picks = c.picks[:0]
	chambers := s.Evochambers.Ready().Idle()
	if chambers.Empty() {
		return false
	}
	started := make(map[model.Upgrade]bool)
	minerals, vespene := s.Minerals, s.Vespene
	for _, chamber := range chambers {
		for _, rung := range evoLadder {
			if started[rung.upgrade] {
				continue
			}
			if rung.after != "" && !s.HasUpgrade(rung.after) {
				continue
			}
			if rung.needs != nil && !rung.needs(s) {
				continue
			}
			a, ok := model.ResearchedBy(rung.upgrade)
			if !ok || s.AlreadyPendingUpgrade(rung.upgrade) {
				continue
			}
			cost, _ := model.ResearchCost(a)
			if cost.Minerals > minerals || cost.Vespene > vespene {
				continue
			}
			minerals -= cost.Minerals
			vespene -= cost.Vespene
			started[rung.upgrade] = true
			c.picks = append(c.picks, evoPick{chamber: chamber, research: a})
			break
		}
	}
	return len(c.picks) > 0
}

func (c *UpgradeEvochamber) Handle(s *world.Snapshot, b *rules.Batch) bool {
	for _, p := range c.picks {
		b.Add(model.Use(p.chamber, p.research))
	}
	return true
}
