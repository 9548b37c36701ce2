package zerg

import (
	"math/rand"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
	"github.com/nstehr/brood/world"
)

const (
	maxSupply        = 200
	overlordBuffer   = 8
	dronesPerBase    = 16
	dronesPerGas     = 3
	maxDrones        = 75
	dronesBeforePool = 16
	queensPerBase    = 1
	extraQueens      = 1
	maxQueens        = 6
	maxOverseers     = 2
	zerglingCap      = 22 // once hydras are available
	mutaliskCap      = 10
	hydrasPerUltra   = 2.75
	ultraliskCap     = 16
	openingWorkers   = 14
)

// TrainOverlord keeps supply ahead of production. It holds back at a few
// points of the opening so the drones, pool and expansion go down on time.
type TrainOverlord struct {
	name
	rng *rand.Rand
}

func (c *TrainOverlord) ShouldHandle(s *world.Snapshot) bool {
	if s.SupplyCap >= maxSupply || s.SupplyLeft >= overlordBuffer {
		return false
	}
	if !s.CanTrain(model.Overlord, true, true) {
		return false
	}
	bases := s.Townhalls.Len()
	if s.Drones.Ready().Len() == openingWorkers ||
		(s.Overlords.Len() == 2 && bases == 1) ||
		(bases == 2 && s.Pools.Empty()) {
		return false
	}
	pending := s.AlreadyPending(model.Overlord)
	if (bases == 1 || bases == 2) && pending > 0 {
		return false
	}
	return pending < 2
}

func (c *TrainOverlord) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return trainFromLarva(s, b, model.Overlord, c.rng)
}

// TrainWorker makes drones up to a saturation target that grows with bases
// and extractors. It stops while enemies are at a base.
type TrainWorker struct {
	name
	rng *rand.Rand
}

func (c *TrainWorker) ShouldHandle(s *world.Snapshot) bool {
	if s.CloseEnemiesToBase || !s.CanTrain(model.Drone, true, true) {
		return false
	}
	drones := s.Drones.Len() + s.AlreadyPending(model.Drone)
	if s.Pools.Empty() && drones >= dronesBeforePool {
		return false
	}
	target := min(s.Townhalls.Len()*dronesPerBase+s.Extractors.Len()*dronesPerGas, maxDrones)
	return drones < target
}

func (c *TrainWorker) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return trainFromLarva(s, b, model.Drone, c.rng)
}

// TrainQueen trains one queen per base plus one for creep from an idle
// finished townhall.
type TrainQueen struct {
	name
	hall model.Unit
}

func (c *TrainQueen) ShouldHandle(s *world.Snapshot) bool {
	halls := s.Townhalls.Ready().Idle()
	if halls.Empty() || s.Pools.Ready().Empty() || s.CloseEnemiesToBase {
		return false
	}
	queens := s.Queens.Len() + s.AlreadyPending(model.Queen)
	if queens >= min(s.Townhalls.Len()*queensPerBase+extraQueens, maxQueens) {
		return false
	}
	if !s.CanTrain(model.Queen, true, false) {
		return false
	}
	c.hall, _ = halls.ClosestTo(s.StartLocation)
	return true
}

func (c *TrainQueen) Handle(s *world.Snapshot, b *rules.Batch) bool {
	o, ok := model.Train(c.hall, model.Queen)
	if !ok {
		return false
	}
	b.Add(o)
	return true
}

// TrainUltralisk makes ultralisks whenever a cavern is finished.
type TrainUltralisk struct {
	name
	rng *rand.Rand
}

func (c *TrainUltralisk) ShouldHandle(s *world.Snapshot) bool {
	return s.Ultralisks.Len() < ultraliskCap && s.CanTrain(model.Ultralisk, s.Caverns.Ready().Exists(), true)
}

func (c *TrainUltralisk) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return trainFromLarva(s, b, model.Ultralisk, c.rng)
}

// TrainZergling is the early army. Once hydras are available zerglings are
// capped, unless the opponent is all-in and we need bodies now.
type TrainZergling struct {
	name
	rng *rand.Rand
}

func (c *TrainZergling) ShouldHandle(s *world.Snapshot) bool {
	if !s.CanTrain(model.Zergling, s.Pools.Ready().Exists(), true) {
		return false
	}
	if s.CloseEnemyProduction || s.OneBasePlay || s.CloseEnemiesToBase {
		return true
	}
	if s.Hydradens.Ready().Exists() || s.Caverns.Ready().Exists() {
		return s.Zerglings.Len() < zerglingCap
	}
	return s.Townhalls.Len() >= 2
}

func (c *TrainZergling) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return trainFromLarva(s, b, model.Zergling, c.rng)
}

// TrainOverseer morphs an overlord into an overseer for detection.
type TrainOverseer struct {
	name
	overlord model.Unit
}

func (c *TrainOverseer) ShouldHandle(s *world.Snapshot) bool {
	if s.Lairs.Ready().Empty() && s.Hives.Empty() {
		return false
	}
	if s.Overseers.Len()+s.AlreadyPending(model.Overseer) >= maxOverseers {
		return false
	}
	candidates := s.Overlords.Idle()
	if candidates.Empty() || !s.CanTrain(model.Overseer, true, false) {
		return false
	}
	c.overlord, _ = candidates.ClosestTo(s.StartLocation)
	return true
}

func (c *TrainOverseer) Handle(s *world.Snapshot, b *rules.Batch) bool {
	o, ok := model.Train(c.overlord, model.Overseer)
	if !ok {
		return false
	}
	b.Add(o)
	return true
}

// TrainMutalisk answers floating buildings, which nothing else can reach.
type TrainMutalisk struct {
	name
	rng *rand.Rand
}

func (c *TrainMutalisk) ShouldHandle(s *world.Snapshot) bool {
	return s.FloatingBuildingsBM && s.Mutalisks.Len() < mutaliskCap &&
		s.CanTrain(model.Mutalisk, s.Spires.Ready().Exists(), true)
}

func (c *TrainMutalisk) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return trainFromLarva(s, b, model.Mutalisk, c.rng)
}

// TrainHydralisk is the mid-game army. With a cavern up, hydras are held to
// a ratio of the ultralisk count so larvae keep going to ultralisks.
type TrainHydralisk struct {
	name
	rng *rand.Rand
}

func (c *TrainHydralisk) ShouldHandle(s *world.Snapshot) bool {
	if !s.CanTrain(model.Hydralisk, s.Hydradens.Ready().Exists(), true) {
		return false
	}
	if s.Caverns.Ready().Exists() {
		return float64(s.Ultralisks.Len())*hydrasPerUltra > float64(s.Hydras.Len())
	}
	return !s.FloatingBuildingsBM
}

func (c *TrainHydralisk) Handle(s *world.Snapshot, b *rules.Batch) bool {
	return trainFromLarva(s, b, model.Hydralisk, c.rng)
}
