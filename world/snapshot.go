package world

import (
	"slices"

	"github.com/nstehr/brood/model"
)

// Snapshot is the per-step view every command reads. The Builder creates a
// fresh one each step; nothing writes to it after Build returns.
type Snapshot struct {
	Loop       int
	Iteration  int // steps seen this match, starting at 0
	Time       float64
	Minerals   int
	Vespene    int
	SupplyUsed int
	SupplyCap  int
	SupplyLeft int

	Race      model.Race
	EnemyRace model.Race

	StartLocation     model.Point
	EnemyStarts       []model.Point
	MapCenter         model.Point
	RampDepot         model.Point
	OrderedExpansions []model.Point // nearest to our start first
	Creep             *model.Grid

	// Own units.
	Units      model.Units
	Structures model.Units
	Townhalls  model.Units
	Hatcheries model.Units
	Lairs      model.Units
	Hives      model.Units
	Larvae     model.Units
	Drones     model.Units
	Overlords  model.Units
	Overseers  model.Units
	Queens     model.Units
	Zerglings  model.Units
	Hydras     model.Units
	Mutalisks  model.Units
	Ultralisks model.Units
	Army       model.Units // zerglings, hydras, mutalisks and ultralisks

	BurrowedLings model.Units

	// Own tech and defense.
	Pools       model.Units
	Extractors  model.Units
	Evochambers model.Units
	Hydradens   model.Units
	Pits        model.Units
	Spires      model.Units
	Caverns     model.Units
	Spines      model.Units
	Spores      model.Units
	Tumors      model.Units

	// Enemies. GroundEnemies excludes structures and workers; Proxies are
	// enemy production structures close to our start location.
	Enemies         model.Units
	EnemyStructures model.Units
	FlyingEnemies   model.Units
	GroundEnemies   model.Units
	Proxies         model.Units

	MineralFields model.Units
	Geysers       model.Units

	Upgrades map[model.Upgrade]bool

	// FurthestTownhall is the townhall furthest from the map center. It
	// anchors fallback placements and is only valid when HasTownhall is set.
	FurthestTownhall model.Unit
	HasTownhall      bool

	// Derived signals.
	CloseEnemyProduction  bool
	FloatingBuildingsBM   bool
	CloseEnemiesToBase    bool
	CounterAttackVsFlying bool
	OneBasePlay           bool
	OneBaseChecked        bool
}

// Builder turns observations into snapshots. Its only state across steps is
// the step counter, the expansion ordering and the one-shot one-base verdict.
type Builder struct {
	info      model.GameInfo
	race      model.Race
	enemyRace model.Race
	th        Thresholds
	ordered   []model.Point

	iteration      int
	oneBaseChecked bool
	oneBasePlay    bool
}

// NewBuilder prepares a builder for one match. Expansions are ordered by
// distance from our start location once, here.
func NewBuilder(info model.GameInfo, race, enemyRace model.Race, th Thresholds) *Builder {
	th.Validate()
	ordered := slices.Clone(info.ExpansionLocations)
	start := info.StartLocation
	slices.SortStableFunc(ordered, func(a, b model.Point) int {
		da, db := a.DistanceSq(start), b.DistanceSq(start)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return &Builder{
		info:      info,
		race:      race,
		enemyRace: enemyRace,
		th:        th,
		ordered:   ordered,
	}
}

// OrderedExpansions returns the expansion locations nearest-first.
func (b *Builder) OrderedExpansions() []model.Point { return b.ordered }

func (b *Builder) Build(obs model.Observation) *Snapshot {
	s := &Snapshot{
		Loop:              obs.Loop,
		Iteration:         b.iteration,
		Time:              obs.Time(),
		Minerals:          obs.Minerals,
		Vespene:           obs.Vespene,
		SupplyUsed:        obs.SupplyUsed,
		SupplyCap:         obs.SupplyCap,
		SupplyLeft:        obs.SupplyCap - obs.SupplyUsed,
		Race:              b.race,
		EnemyRace:         b.enemyRace,
		StartLocation:     b.info.StartLocation,
		EnemyStarts:       b.info.EnemyStarts,
		MapCenter:         b.info.MapCenter,
		RampDepot:         b.info.RampDepot,
		OrderedExpansions: b.ordered,
		Creep:             obs.Creep,
		Upgrades:          make(map[model.Upgrade]bool, len(obs.Upgrades)),
	}
	b.iteration++

	for _, u := range obs.Upgrades {
		s.Upgrades[u] = true
	}

	var own, enemies model.Units
	for _, u := range obs.Units {
		switch u.Alliance {
		case model.Self:
			own = append(own, u)
		case model.Enemy:
			enemies = append(enemies, u)
		case model.Neutral:
			if u.IsMineralField() {
				s.MineralFields = append(s.MineralFields, u)
			} else if u.IsGeyser() {
				s.Geysers = append(s.Geysers, u)
			}
		}
	}

	b.classifyOwn(s, own)
	b.classifyEnemies(s, enemies)

	s.Proxies = proxyBuildings(s, b.th)
	s.CloseEnemyProduction = s.Proxies.Exists()
	s.FloatingBuildingsBM = floatingBuildings(s, b.th)
	s.CloseEnemiesToBase, s.CounterAttackVsFlying = baseThreats(s, b.th)

	if !b.oneBaseChecked && s.Time >= b.th.OneBaseCheckAt {
		b.oneBasePlay = oneBasePlay(s)
		b.oneBaseChecked = true
	}
	s.OneBasePlay = b.oneBasePlay
	s.OneBaseChecked = b.oneBaseChecked

	return s
}

func (b *Builder) classifyOwn(s *Snapshot, own model.Units) {
	s.Units = own
	s.Structures = own.Structures()

	s.Hatcheries = own.OfType(model.Hatchery)
	s.Lairs = own.OfType(model.Lair)
	s.Hives = own.OfType(model.Hive)
	s.Townhalls = own.OfType(model.Hatchery, model.Lair, model.Hive)
	if th, ok := s.Townhalls.FurthestTo(s.MapCenter); ok {
		s.FurthestTownhall = th
		s.HasTownhall = true
	}

	s.Larvae = own.OfType(model.Larva)
	s.Drones = own.OfType(model.Drone)
	s.Overlords = own.OfType(model.Overlord)
	s.Overseers = own.OfType(model.Overseer)
	s.Queens = own.OfType(model.Queen)
	s.Zerglings = own.OfType(model.Zergling)
	s.BurrowedLings = own.OfType(model.ZerglingBurrowed)
	s.Hydras = own.OfType(model.Hydralisk)
	s.Mutalisks = own.OfType(model.Mutalisk)
	s.Ultralisks = own.OfType(model.Ultralisk)
	s.Army = own.OfType(model.Zergling, model.Hydralisk, model.Mutalisk, model.Ultralisk)

	s.Pools = own.OfType(model.SpawningPool)
	s.Extractors = own.OfType(model.Extractor)
	s.Evochambers = own.OfType(model.EvolutionChamber)
	s.Hydradens = own.OfType(model.HydraliskDen)
	s.Pits = own.OfType(model.InfestationPit)
	s.Spires = own.OfType(model.Spire)
	s.Caverns = own.OfType(model.UltraliskCavern)
	s.Spines = own.OfType(model.SpineCrawler)
	s.Spores = own.OfType(model.SporeCrawler)
	s.Tumors = own.OfType(model.CreepTumor, model.CreepTumorQueen, model.CreepTumorBurrowed)
}

func (b *Builder) classifyEnemies(s *Snapshot, enemies model.Units) {
	s.Enemies = enemies
	s.EnemyStructures = enemies.Structures()
	s.FlyingEnemies = enemies.Flying()
	s.GroundEnemies = enemies.NotFlying().NotStructures().ExcludeType(model.Workers...)
}
