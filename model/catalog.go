package model

// Cost is what the game charges to start a unit, structure or research.
type Cost struct {
	Minerals int
	Vespene  int
	Supply   int
}

// unitCosts is charged when the unit is ordered, not when it finishes.
// Zerglings hatch in pairs, so the listed supply covers both.
var unitCosts = map[UnitType]Cost{
	Drone:            {Minerals: 50, Supply: 1},
	Overlord:         {Minerals: 100},
	Overseer:         {Minerals: 50, Vespene: 50},
	Queen:            {Minerals: 150, Supply: 2},
	Zergling:         {Minerals: 50, Supply: 1},
	Hydralisk:        {Minerals: 100, Vespene: 50, Supply: 2},
	Mutalisk:         {Minerals: 100, Vespene: 100, Supply: 2},
	Ultralisk:        {Minerals: 275, Vespene: 200, Supply: 6},
	Hatchery:         {Minerals: 300},
	Lair:             {Minerals: 150, Vespene: 100},
	Hive:             {Minerals: 200, Vespene: 150},
	SpawningPool:     {Minerals: 200},
	Extractor:        {Minerals: 25},
	EvolutionChamber: {Minerals: 75},
	HydraliskDen:     {Minerals: 100, Vespene: 100},
	InfestationPit:   {Minerals: 100, Vespene: 100},
	Spire:            {Minerals: 200, Vespene: 200},
	UltraliskCavern:  {Minerals: 150, Vespene: 200},
	SpineCrawler:     {Minerals: 100},
	SporeCrawler:     {Minerals: 75},
}

var researchCosts = map[Ability]Cost{
	ResearchMetabolicBoost:    {Minerals: 100, Vespene: 100},
	ResearchAdrenalGlands:     {Minerals: 200, Vespene: 200},
	ResearchGroovedSpines:     {Minerals: 100, Vespene: 100},
	ResearchMuscularAugments:  {Minerals: 100, Vespene: 100},
	ResearchChitinousPlating:  {Minerals: 150, Vespene: 150},
	ResearchAnabolicSynthesis: {Minerals: 150, Vespene: 150},
	ResearchBurrow:            {Minerals: 100, Vespene: 100},
	ResearchMeleeWeapons1:     {Minerals: 100, Vespene: 100},
	ResearchMeleeWeapons2:     {Minerals: 150, Vespene: 150},
	ResearchMeleeWeapons3:     {Minerals: 200, Vespene: 200},
	ResearchMissileWeapons1:   {Minerals: 100, Vespene: 100},
	ResearchMissileWeapons2:   {Minerals: 150, Vespene: 150},
	ResearchMissileWeapons3:   {Minerals: 200, Vespene: 200},
	ResearchGroundArmor1:      {Minerals: 150, Vespene: 150},
	ResearchGroundArmor2:      {Minerals: 225, Vespene: 225},
	ResearchGroundArmor3:      {Minerals: 300, Vespene: 300},
}

// createdBy maps a unit type to the ability that starts it.
var createdBy = map[UnitType]Ability{
	Drone:            TrainDrone,
	Overlord:         TrainOverlord,
	Zergling:         TrainZergling,
	Hydralisk:        TrainHydralisk,
	Mutalisk:         TrainMutalisk,
	Ultralisk:        TrainUltralisk,
	Queen:            TrainQueen,
	Overseer:         MorphOverseer,
	Lair:             UpgradeToLair,
	Hive:             UpgradeToHive,
	Hatchery:         BuildHatchery,
	SpawningPool:     BuildSpawningPool,
	Extractor:        BuildExtractor,
	EvolutionChamber: BuildEvolutionChamber,
	HydraliskDen:     BuildHydraliskDen,
	InfestationPit:   BuildInfestationPit,
	Spire:            BuildSpire,
	UltraliskCavern:  BuildUltraliskCavern,
	SpineCrawler:     BuildSpineCrawler,
	SporeCrawler:     BuildSporeCrawler,
}

var researchedBy = map[Upgrade]Ability{
	ZerglingMovementSpeed: ResearchMetabolicBoost,
	ZerglingAttackSpeed:   ResearchAdrenalGlands,
	GroovedSpines:         ResearchGroovedSpines,
	MuscularAugments:      ResearchMuscularAugments,
	ChitinousPlating:      ResearchChitinousPlating,
	AnabolicSynthesis:     ResearchAnabolicSynthesis,
	Burrow:                ResearchBurrow,
	MeleeWeapons1:         ResearchMeleeWeapons1,
	MeleeWeapons2:         ResearchMeleeWeapons2,
	MeleeWeapons3:         ResearchMeleeWeapons3,
	MissileWeapons1:       ResearchMissileWeapons1,
	MissileWeapons2:       ResearchMissileWeapons2,
	MissileWeapons3:       ResearchMissileWeapons3,
	GroundArmor1:          ResearchGroundArmor1,
	GroundArmor2:          ResearchGroundArmor2,
	GroundArmor3:          ResearchGroundArmor3,
}

// footprints is the side length in cells of each placeable structure.
var footprints = map[UnitType]int{
	Hatchery:         5,
	SpawningPool:     3,
	Extractor:        3,
	EvolutionChamber: 3,
	HydraliskDen:     3,
	InfestationPit:   3,
	UltraliskCavern:  3,
	Spire:            2,
	SpineCrawler:     2,
	SporeCrawler:     2,
}

// Townhalls covers every race's main building; own townhalls are always zerg.
var Townhalls = []UnitType{Hatchery, Lair, Hive, CommandCenter, OrbitalCommand, PlanetaryFortress, Nexus}

var Workers = []UnitType{Drone, SCV, Probe}

// UnitCost returns the cost of t and whether the catalog knows it.
func UnitCost(t UnitType) (Cost, bool) {
	c, ok := unitCosts[t]
	return c, ok
}

// ResearchCost returns the cost of a research ability.
func ResearchCost(a Ability) (Cost, bool) {
	c, ok := researchCosts[a]
	return c, ok
}

// CreatedBy returns the ability that starts a unit of type t.
func CreatedBy(t UnitType) (Ability, bool) {
	a, ok := createdBy[t]
	return a, ok
}

// ResearchedBy returns the ability that researches u.
func ResearchedBy(u Upgrade) (Ability, bool) {
	a, ok := researchedBy[u]
	return a, ok
}

// Footprint returns the placement size of t in cells, or 0 for non-structures.
func Footprint(t UnitType) int {
	return footprints[t]
}

// NeedsCreep reports whether a structure can only be placed on creep.
func NeedsCreep(t UnitType) bool {
	return t != Hatchery && t != Extractor && footprints[t] > 0
}
