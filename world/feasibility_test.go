package world

import (
	"testing"

	"github.com/nstehr/brood/model"
)

func snapshotWith(minerals, vespene, supplyLeft int, units ...model.Unit) *Snapshot {
	b := NewBuilder(testInfo(), model.Zerg, model.Terran, DefaultThresholds())
	return b.Build(model.Observation{
		Minerals:   minerals,
		Vespene:    vespene,
		SupplyUsed: 10,
		SupplyCap:  10 + supplyLeft,
		Units:      units,
	})
}

func TestCanTrain(t *testing.T) {
	larva := own(1, model.Larva, 20, 18)
	tests := []struct {
		name       string
		s          *Snapshot
		unit       model.UnitType
		req        bool
		needsLarva bool
		want       bool
	}{
		{"drone with larva", snapshotWith(50, 0, 2, larva), model.Drone, true, true, true},
		{"no larva", snapshotWith(500, 0, 2), model.Drone, true, true, false},
		{"no larva needed", snapshotWith(500, 0, 4), model.Queen, true, false, true},
		{"broke", snapshotWith(49, 0, 2, larva), model.Drone, true, true, false},
		{"no gas", snapshotWith(500, 40, 4, larva), model.Hydralisk, true, true, false},
		{"supply blocked", snapshotWith(500, 500, 1, larva), model.Hydralisk, true, true, false},
		{"overlord ignores supply", snapshotWith(100, 0, 0, larva), model.Overlord, true, true, true},
		{"requirement false", snapshotWith(500, 500, 10, larva), model.Zergling, false, true, false},
		{"unknown type", snapshotWith(5000, 5000, 10, larva), model.Marine, true, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.CanTrain(tc.unit, tc.req, tc.needsLarva); got != tc.want {
				t.Errorf("CanTrain(%s) = %v, want %v", tc.unit, got, tc.want)
			}
		})
	}
}

func TestAlreadyPending(t *testing.T) {
	egg := own(1, model.Egg, 20, 18)
	egg.Orders = []model.UnitOrder{{Ability: model.TrainOverlord}}
	drone := own(2, model.Drone, 22, 20)
	drone.Orders = []model.UnitOrder{{Ability: model.BuildSpawningPool}}
	hatch := own(3, model.Hatchery, 20, 20)
	hatch.Orders = []model.UnitOrder{{Ability: model.UpgradeToLair}}
	building := own(4, model.SpineCrawler, 30, 30)
	building.BuildProgress = 0.2

	s := snapshotWith(0, 0, 0, egg, drone, hatch, building)
	tests := []struct {
		unit model.UnitType
		want int
	}{
		{model.Overlord, 1},
		{model.SpawningPool, 1},
		{model.Lair, 1},
		{model.SpineCrawler, 1},
		{model.Hydralisk, 0},
	}
	for _, tc := range tests {
		if got := s.AlreadyPending(tc.unit); got != tc.want {
			t.Errorf("AlreadyPending(%s) = %d, want %d", tc.unit, got, tc.want)
		}
	}
}

func TestCanBuildUniqueRoundTrip(t *testing.T) {
	hatch := own(1, model.Hatchery, 20, 20)

	idle := snapshotWith(500, 0, 0, hatch)
	if !idle.CanBuildUnique(model.SpawningPool, idle.Pools, true) {
		t.Fatal("pool should be buildable with money and none pending")
	}

	drone := own(2, model.Drone, 22, 20)
	drone.Orders = []model.UnitOrder{{Ability: model.BuildSpawningPool}}
	ordered := snapshotWith(500, 0, 0, hatch, drone)
	if ordered.CanBuildUnique(model.SpawningPool, ordered.Pools, true) {
		t.Error("pool ordered: must not build another")
	}

	morphing := own(3, model.SpawningPool, 30, 30)
	morphing.BuildProgress = 0.5
	pending := snapshotWith(500, 0, 0, hatch, morphing)
	if pending.CanBuildUnique(model.SpawningPool, pending.Pools, true) {
		t.Error("pool under construction: must not build another")
	}

	morphing.BuildProgress = 1
	done := snapshotWith(500, 0, 0, hatch, morphing)
	if done.CanBuildUnique(model.SpawningPool, done.Pools, true) {
		t.Error("finished pool must keep the unique gate closed even though we can afford one")
	}
}

func TestCanBuildUniqueRequirement(t *testing.T) {
	s := snapshotWith(500, 500, 0)
	if s.CanBuildUnique(model.HydraliskDen, s.Hydradens, s.Lairs.Exists()) {
		t.Error("den requires a lair")
	}
	if s.BuildingRequirement(model.SpineCrawler, false) {
		t.Error("BuildingRequirement must honor a false requirement")
	}
}

func TestCanUpgrade(t *testing.T) {
	pool := own(1, model.SpawningPool, 30, 30)
	researching := pool
	researching.Orders = []model.UnitOrder{{Ability: model.ResearchMetabolicBoost}}

	tests := []struct {
		name  string
		s     *Snapshot
		hosts func(*Snapshot) model.Units
		want  bool
	}{
		{"idle pool", snapshotWith(100, 100, 0, pool), func(s *Snapshot) model.Units { return s.Pools.Idle() }, true},
		{"no host", snapshotWith(100, 100, 0), func(s *Snapshot) model.Units { return s.Pools }, false},
		{"broke", snapshotWith(100, 99, 0, pool), func(s *Snapshot) model.Units { return s.Pools }, false},
		{"researching", snapshotWith(100, 100, 0, researching), func(s *Snapshot) model.Units { return s.Pools }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.s.CanUpgrade(model.ZerglingMovementSpeed, model.ResearchMetabolicBoost, tc.hosts(tc.s))
			if got != tc.want {
				t.Errorf("CanUpgrade = %v, want %v", got, tc.want)
			}
		})
	}

	b := NewBuilder(testInfo(), model.Zerg, model.Terran, DefaultThresholds())
	done := b.Build(model.Observation{
		Minerals: 1000, Vespene: 1000,
		Units:    []model.Unit{pool},
		Upgrades: []model.Upgrade{model.ZerglingMovementSpeed},
	})
	if done.CanUpgrade(model.ZerglingMovementSpeed, model.ResearchMetabolicBoost, done.Pools) {
		t.Error("researched upgrade must not be started again")
	}
}

func TestPredicatesArePure(t *testing.T) {
	larva := own(1, model.Larva, 20, 18)
	s := snapshotWith(200, 0, 4, larva, own(2, model.Hatchery, 20, 20))
	before := *s
	for range 3 {
		s.CanTrain(model.Drone, true, true)
		s.CanBuildUnique(model.SpawningPool, s.Pools, true)
		s.CanUpgrade(model.Burrow, model.ResearchBurrow, s.Hatcheries)
	}
	if s.Minerals != before.Minerals || s.Larvae.Len() != before.Larvae.Len() || s.SupplyLeft != before.SupplyLeft {
		t.Error("predicates changed the snapshot")
	}
}
