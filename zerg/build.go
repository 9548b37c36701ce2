package zerg

import (
	"slices"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/world"
)

const (
	poolAfter          = 145.0 // seconds
	poolFallback       = 10
	pitFallback        = 14
	productionFallback = 10
	pitAfter           = 690.0
	pitBases           = 4
	pitClearRadius     = 20
	expandDuringProxy  = 690.0
	earlyCheeseRadius  = 50
	earlyCheeseUntil   = 300.0
	lingsBeforeThird   = 19
	thirdBaseAfter     = 285.0
	maxBasesBeforeUlts = 5
	firstExpandBank    = 225
	maxSpines          = 4
	maxPendingSpines   = 2
	spineRampDistance  = 14
	sporeBaseRadius    = 8
	sporeMineralOffset = 4
	denBases           = 3
	lairBases          = 2
	lairAfter          = 240.0
	evoBases           = 3
	evoAfter           = 300.0
	maxEvochambers     = 2
	earlyGasUntil      = 300.0
	gasPerBase         = 2
	gasDrones          = 30
	geyserTakenRadius  = 1
)

// BuildPool places the spawning pool once we have a second base, once time
// runs out, or right away against a proxy.
type BuildPool struct {
	name
	deps Deps
}

func (c *BuildPool) ShouldHandle(s *world.Snapshot) bool {
	return s.Drones.Exists() && s.CanBuildUnique(model.SpawningPool, s.Pools, true) &&
		(s.Townhalls.Len() >= 2 || s.CloseEnemyProduction || s.Time > poolAfter)
}

func (c *BuildPool) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return placeProduction(s, b, c.deps, model.SpawningPool, func() (model.Point, bool) {
		if !s.HasTownhall {
			return model.Point{}, false
		}
		return hardcodedPosition(s, poolFallback, c.deps.Rand), true
	})
}

// BuildExpansion takes the nearest free expansion with the nearest drone.
// Before the natural it first walks a drone over so the hatchery starts the
// moment the bank allows.
type BuildExpansion struct {
	name
	deps          Deps
	droneSentOnce bool
}

func (c *BuildExpansion) ShouldHandle(s *world.Snapshot) bool {
	if s.Townhalls.Empty() || s.Drones.Empty() || !s.CanAfford(model.Hatchery) || s.CloseEnemiesToBase {
		return false
	}
	if s.CloseEnemyProduction && s.Time <= expandDuringProxy {
		return false
	}
	if s.AlreadyPending(model.Hatchery) > 0 {
		return false
	}
	if s.EnemyStructures.CloserThan(earlyCheeseRadius, s.StartLocation).Exists() && s.Time < earlyCheeseUntil {
		return false
	}
	bases := s.Townhalls.Len()
	if bases > maxBasesBeforeUlts {
		return s.Caverns.Exists()
	}
	if bases == 2 {
		return s.Zerglings.Len() > lingsBeforeThird || s.Time >= thirdBaseAfter
	}
	return true
}

func (c *BuildExpansion) Handle(s *world.Snapshot, b *rules.Batch) bool {
	if c.deps.Placement == nil {
		return false
	}
	p, ok := c.deps.Placement.NextExpansion(s)
	if !ok {
		return false
	}
	if !c.droneSentOnce && s.Townhalls.Len() < 2 && s.Minerals > firstExpandBank {
		c.droneSentOnce = true
		drone, ok := s.Drones.Random(c.deps.Rand)
		if !ok {
			return false
		}
		b.Add(model.MoveTo(drone, p))
		return true
	}
	return buildAt(s, b, model.Hatchery, p, false)
}

// BuildExtractor takes one early gas for zergling speed, then up to two per
// base once the economy can spare the drones.
type BuildExtractor struct {
	name
	geyser model.Unit
}

func (c *BuildExtractor) ShouldHandle(s *world.Snapshot) bool {
	if !s.BuildingRequirement(model.Extractor, s.Pools.Exists()) || s.AlreadyPending(model.Extractor) > 0 {
		return false
	}
	have := s.Extractors.Len()
	if s.Time < earlyGasUntil {
		if have >= 1 {
			return false
		}
	} else if have >= s.Townhalls.Ready().Len()*gasPerBase || s.Drones.Len() < gasDrones {
		return false
	}
	geyser, ok := c.freeGeyser(s)
	if !ok || freeDrones(s).Empty() {
		return false
	}
	c.geyser = geyser
	return true
}

func (c *BuildExtractor) freeGeyser(s *world.Snapshot) (model.Unit, bool) {
	bases := s.Townhalls.Ready()
	taken := slices.Concat(s.Extractors, s.EnemyStructures)
	free := s.Geysers.Filter(func(g model.Unit) bool {
		return bases.ClosestDistanceTo(g.Pos()) < mineralLineRadius &&
			taken.CloserThan(geyserTakenRadius, g.Pos()).Empty()
	})
	return free.ClosestTo(s.StartLocation)
}

func (c *BuildExtractor) Handle(s *world.Snapshot, b *rules.Batch) bool {
	drone, ok := freeDrones(s).ClosestTo(c.geyser.Pos())
	if !ok {
		return false
	}
	o, ok := model.BuildOn(drone, model.Extractor, c.geyser)
	if !ok {
		return false
	}
	b.Add(o)
	return true
}

// BuildEvochamber adds up to two evolution chambers for ground upgrades once
// we sit on three bases.
type BuildEvochamber struct {
	name
	deps Deps
}

func (c *BuildEvochamber) ShouldHandle(s *world.Snapshot) bool {
	return s.Drones.Exists() && s.HasTownhall &&
		s.BuildingRequirement(model.EvolutionChamber, s.Pools.Ready().Exists()) &&
		s.Evochambers.Len() < maxEvochambers && s.Townhalls.Len() >= evoBases && s.Time > evoAfter &&
		s.AlreadyPending(model.EvolutionChamber) == 0
}

func (c *BuildEvochamber) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return placeProduction(s, b, c.deps, model.EvolutionChamber, func() (model.Point, bool) {
		return hardcodedPosition(s, productionFallback, c.deps.Rand), true
	})
}

// BuildCavern starts the ultralisk cavern as soon as the hive is done.
type BuildCavern struct {
	name
	deps Deps
}

func (c *BuildCavern) ShouldHandle(s *world.Snapshot) bool {
	return s.Drones.Exists() && s.HasTownhall && !s.CloseEnemiesToBase &&
		s.CanBuildUnique(model.UltraliskCavern, s.Caverns, s.Hives.Ready().Exists())
}

func (c *BuildCavern) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return placeProduction(s, b, c.deps, model.UltraliskCavern, func() (model.Point, bool) {
		return hardcodedPosition(s, productionFallback, c.deps.Rand), true
	})
}

// BuildPit starts the infestation pit late, on five bases, when its
// fallback spot is not contested.
type BuildPit struct {
	name
	deps Deps
}

func (c *BuildPit) ShouldHandle(s *world.Snapshot) bool {
	return s.Drones.Exists() && s.HasTownhall &&
		s.Townhalls.Len() > pitBases && s.Time > pitAfter &&
		s.CanBuildUnique(model.InfestationPit, s.Pits, true) &&
		s.GroundEnemies.CloserThan(pitClearRadius, anchor(s, pitFallback)).Empty()
}

func (c *BuildPit) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return placeProduction(s, b, c.deps, model.InfestationPit, func() (model.Point, bool) {
		return hardcodedPosition(s, pitFallback, c.deps.Rand), true
	})
}

// BuildHive morphs an idle lair into a hive once the pit is finished.
type BuildHive struct {
	name
	lair model.Unit
}

func (c *BuildHive) ShouldHandle(s *world.Snapshot) bool {
	lairs := s.Lairs.Ready().Idle()
	if lairs.Empty() || s.Pits.Ready().Empty() || s.Hives.Exists() || s.AlreadyPending(model.Hive) > 0 {
		return false
	}
	if !s.CanAfford(model.Hive) {
		return false
	}
	c.lair, _ = lairs.ClosestTo(s.StartLocation)
	return true
}

func (c *BuildHive) Handle(s *world.Snapshot, b *rules.Batch) bool {
	o, ok := model.Train(c.lair, model.Hive)
	if !ok {
		return false
	}
	b.Add(o)
	return true
}

// BuildLair morphs the main hatchery into a lair once the pool is done and
// we are on two bases or the game has gone on for a while.
type BuildLair struct {
	name
	hatch model.Unit
}

func (c *BuildLair) ShouldHandle(s *world.Snapshot) bool {
	hatcheries := s.Hatcheries.Ready().Idle()
	if hatcheries.Empty() || s.Pools.Ready().Empty() || s.Lairs.Exists() || s.Hives.Exists() {
		return false
	}
	if s.AlreadyPending(model.Lair) > 0 || !s.CanAfford(model.Lair) {
		return false
	}
	if s.Townhalls.Len() < lairBases && s.Time < lairAfter {
		return false
	}
	c.hatch, _ = hatcheries.ClosestTo(s.StartLocation)
	return true
}

func (c *BuildLair) Handle(s *world.Snapshot, b *rules.Batch) bool {
	o, ok := model.Train(c.hatch, model.Lair)
	if !ok {
		return false
	}
	b.Add(o)
	return true
}

// BuildSpines puts up to four spine crawlers between the main and its ramp
// when a proxy is found.
type BuildSpines struct {
	name
}

func (c *BuildSpines) ShouldHandle(s *world.Snapshot) bool {
	return s.BuildingRequirement(model.SpineCrawler, s.Pools.Ready().Exists()) &&
		s.HasTownhall && s.Drones.Exists() && s.CloseEnemyProduction &&
		s.Spines.Len() < maxSpines && s.AlreadyPending(model.SpineCrawler) < maxPendingSpines
}

func (c *BuildSpines) Handle(s *world.Snapshot, b *rules.Batch) bool {
	p := s.FurthestTownhall.Pos().Towards(s.RampDepot, spineRampDistance)
	return buildAt(s, b, model.SpineCrawler, p, true)
}

// BuildSpores puts a spore crawler in the mineral line of every base that
// lacks one while flying enemies threaten us.
type BuildSpores struct {
	name
	spot model.Point
}

func (c *BuildSpores) ShouldHandle(s *world.Snapshot) bool {
	if !s.CounterAttackVsFlying || s.AlreadyPending(model.SporeCrawler) > 0 || s.Drones.Empty() {
		return false
	}
	if !s.BuildingRequirement(model.SporeCrawler, s.Pools.Ready().Exists()) {
		return false
	}
	for _, hall := range s.Townhalls.Ready() {
		if s.Spores.CloserThan(sporeBaseRadius, hall.Pos()).Exists() {
			continue
		}
		minerals := s.MineralFields.CloserThan(mineralLineRadius, hall.Pos())
		c.spot = hall.Pos()
		if minerals.Exists() {
			c.spot = hall.Pos().Towards(model.Centroid(minerals.Positions()), sporeMineralOffset)
		}
		return true
	}
	return false
}

func (c *BuildSpores) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return buildAt(s, b, model.SporeCrawler, c.spot, true)
}

// BuildSpire is only built to chase floating buildings.
type BuildSpire struct {
	name
	deps Deps
}

func (c *BuildSpire) ShouldHandle(s *world.Snapshot) bool {
	lair := s.Lairs.Ready().Exists() || s.Hives.Exists()
	return s.FloatingBuildingsBM && s.Drones.Exists() && s.HasTownhall &&
		s.CanBuildUnique(model.Spire, s.Spires, lair)
}

func (c *BuildSpire) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return placeProduction(s, b, c.deps, model.Spire, func() (model.Point, bool) {
		return hardcodedPosition(s, productionFallback, c.deps.Rand), true
	})
}

// BuildHydraden starts the den on three bases with a lair, unless the
// opponent is proxying or floating.
type BuildHydraden struct {
	name
	deps Deps
}

func (c *BuildHydraden) ShouldHandle(s *world.Snapshot) bool {
	lair := s.Lairs.Exists() || s.Hives.Exists()
	return s.Drones.Exists() && s.CanBuildUnique(model.HydraliskDen, s.Hydradens, lair) &&
		!s.CloseEnemyProduction && !s.FloatingBuildingsBM && s.Townhalls.Len() >= denBases
}

func (c *BuildHydraden) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return placeProduction(s, b, c.deps, model.HydraliskDen, func() (model.Point, bool) {
		pool, ok := s.Pools.First()
		return pool.Pos(), ok
	})
}
