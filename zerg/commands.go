// Package zerg holds the command modules that make up the build and the
// army behaviour, and the fixed order they are evaluated in.
package zerg

import (
	"math/rand"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/world"
)

// Deps are the collaborators shared by the modules of one match.
type Deps struct {
	Placement world.Placement
	// Rand drives random picks (larva, scouting drone, fallback angles).
	// A nil Rand always picks the first candidate and angle zero.
	Rand *rand.Rand
}

// UnitCommands returns the unit behaviour modules in priority order.
func UnitCommands(d Deps) []rules.Command {
	return []rules.Command{
		&BlockExpansions{name: "block-expansions", blockers: make(map[model.Point]uint64)},
		&DefendWorkerRush{name: "defend-worker-rush"},
		&DefendProxies{name: "defend-proxies"},
		&DistributeWorkers{name: "distribute-workers"},
		&ArmyControl{name: "army-control"},
		&Queens{name: "queens"},
		&CreepTumor{name: "creep-tumor", spent: make(map[uint64]bool)},
		&DroneScout{name: "drone-scout", rng: d.Rand},
		&OverseerControl{name: "overseer"},
		&OverlordControl{name: "overlord", sent: make(map[uint64]bool)},
		&CancelBuildings{name: "cancel-buildings"},
	}
}

// TrainCommands returns the training modules in priority order.
func TrainCommands(d Deps) []rules.Command {
	return []rules.Command{
		&TrainOverlord{name: "train-overlord", rng: d.Rand},
		&TrainWorker{name: "train-worker", rng: d.Rand},
		&TrainQueen{name: "train-queen"},
		&TrainUltralisk{name: "train-ultralisk", rng: d.Rand},
		&TrainZergling{name: "train-zergling", rng: d.Rand},
		&TrainOverseer{name: "train-overseer"},
		&TrainMutalisk{name: "train-mutalisk", rng: d.Rand},
		&TrainHydralisk{name: "train-hydralisk", rng: d.Rand},
	}
}

// BuildCommands returns the structure modules in priority order.
func BuildCommands(d Deps) []rules.Command {
	return []rules.Command{
		&BuildPool{name: "build-pool", deps: d},
		&BuildExpansion{name: "build-expansion", deps: d},
		&BuildExtractor{name: "build-extractor"},
		&BuildEvochamber{name: "build-evochamber", deps: d},
		&BuildCavern{name: "build-cavern", deps: d},
		&BuildPit{name: "build-pit", deps: d},
		&BuildHive{name: "build-hive"},
		&BuildLair{name: "build-lair"},
		&BuildSpines{name: "build-spines"},
		&BuildSpores{name: "build-spores"},
		&BuildSpire{name: "build-spire", deps: d},
		&BuildHydraden{name: "build-hydraden", deps: d},
	}
}

// UpgradeCommands returns the research modules in priority order.
func UpgradeCommands() []rules.Command {
	return []rules.Command{
		&Research{name: "upgrade-chitinous-plating", upgrade: model.ChitinousPlating, hosts: idleReady(caverns)},
		&Research{name: "upgrade-metabolic-boost", upgrade: model.ZerglingMovementSpeed, hosts: idleReady(pools)},
		&Research{name: "upgrade-adrenal-glands", upgrade: model.ZerglingAttackSpeed, hosts: idleReady(pools),
			when: func(s *world.Snapshot) bool { return s.Hives.Exists() }},
		&UpgradeEvochamber{name: "upgrade-evochamber"},
		&Research{name: "upgrade-burrow", upgrade: model.Burrow, hosts: idleReady(townhalls),
			when: func(s *world.Snapshot) bool { return s.Hydradens.Ready().Exists() }},
		&Research{name: "upgrade-grooved-spines", upgrade: model.GroovedSpines, hosts: idleReady(hydradens),
			when: func(s *world.Snapshot) bool { return !s.FloatingBuildingsBM }},
		&Research{name: "upgrade-muscular-augments", upgrade: model.MuscularAugments, hosts: idleReady(hydradens),
			when: func(s *world.Snapshot) bool { return s.Lairs.Exists() || s.Hives.Exists() }},
		&Research{name: "upgrade-anabolic-synthesis", upgrade: model.AnabolicSynthesis, hosts: idleReady(caverns)},
	}
}

// Register adds every module to the engine under its category.
func Register(e *rules.Engine, d Deps) {
	e.Register(rules.Unit, UnitCommands(d)...)
	e.Register(rules.Train, TrainCommands(d)...)
	e.Register(rules.Build, BuildCommands(d)...)
	e.Register(rules.Upgrade, UpgradeCommands()...)
}

// name gives a module its identity in logs, gates and the journal.
type name string

func (n name) Name() string { return string(n) }
