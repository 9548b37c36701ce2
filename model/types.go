package model

import "strings"

// UnitType names a unit or structure kind as reported by the bridge.
type UnitType string

// Ability names a unit command.
type Ability string

// Upgrade names a researchable upgrade.
type Upgrade string

// Zerg units.
const (
	Hatchery         UnitType = "HATCHERY"
	Lair             UnitType = "LAIR"
	Hive             UnitType = "HIVE"
	Larva            UnitType = "LARVA"
	Egg              UnitType = "EGG"
	Drone            UnitType = "DRONE"
	Overlord         UnitType = "OVERLORD"
	Overseer         UnitType = "OVERSEER"
	Queen            UnitType = "QUEEN"
	Zergling         UnitType = "ZERGLING"
	ZerglingBurrowed UnitType = "ZERGLINGBURROWED"
	Hydralisk        UnitType = "HYDRALISK"
	Mutalisk         UnitType = "MUTALISK"
	Ultralisk        UnitType = "ULTRALISK"
	Corruptor        UnitType = "CORRUPTOR"
	Viper            UnitType = "VIPER"
)

// Zerg structures.
const (
	SpawningPool       UnitType = "SPAWNINGPOOL"
	Extractor          UnitType = "EXTRACTOR"
	EvolutionChamber   UnitType = "EVOLUTIONCHAMBER"
	HydraliskDen       UnitType = "HYDRALISKDEN"
	InfestationPit     UnitType = "INFESTATIONPIT"
	Spire              UnitType = "SPIRE"
	UltraliskCavern    UnitType = "ULTRALISKCAVERN"
	SpineCrawler       UnitType = "SPINECRAWLER"
	SporeCrawler       UnitType = "SPORECRAWLER"
	CreepTumor         UnitType = "CREEPTUMOR"
	CreepTumorQueen    UnitType = "CREEPTUMORQUEEN"
	CreepTumorBurrowed UnitType = "CREEPTUMORBURROWED"
)

// Enemy types the snapshot classifies by name.
const (
	CommandCenter     UnitType = "COMMANDCENTER"
	OrbitalCommand    UnitType = "ORBITALCOMMAND"
	PlanetaryFortress UnitType = "PLANETARYFORTRESS"
	Barracks          UnitType = "BARRACKS"
	SCV               UnitType = "SCV"
	Raven             UnitType = "RAVEN"
	Medivac           UnitType = "MEDIVAC"
	Nexus             UnitType = "NEXUS"
	Gateway           UnitType = "GATEWAY"
	Probe             UnitType = "PROBE"
	Observer          UnitType = "OBSERVER"
	WarpPrism         UnitType = "WARPPRISM"
	SupplyDepot       UnitType = "SUPPLYDEPOT"
	Marine            UnitType = "MARINE"
	Marauder          UnitType = "MARAUDER"
	Banshee           UnitType = "BANSHEE"
	Zealot            UnitType = "ZEALOT"
	Stalker           UnitType = "STALKER"
	VoidRay           UnitType = "VOIDRAY"
)

// Generic and queen abilities.
const (
	Move                  Ability = "MOVE"
	Attack                Ability = "ATTACK"
	Smart                 Ability = "SMART"
	HarvestGather         Ability = "HARVEST_GATHER"
	HarvestReturn         Ability = "HARVEST_RETURN"
	CancelBuildInProgress Ability = "CANCEL_BUILDINPROGRESS"
	EffectInjectLarva     Ability = "EFFECT_INJECTLARVA"
	BuildCreepTumorQueen  Ability = "BUILD_CREEPTUMOR_QUEEN"
	BuildCreepTumorTumor  Ability = "BUILD_CREEPTUMOR_TUMOR"
	BurrowDownZergling    Ability = "BURROWDOWN_ZERGLING"
)

// Train and morph abilities.
const (
	TrainDrone     Ability = "LARVATRAIN_DRONE"
	TrainOverlord  Ability = "LARVATRAIN_OVERLORD"
	TrainZergling  Ability = "LARVATRAIN_ZERGLING"
	TrainHydralisk Ability = "LARVATRAIN_HYDRALISK"
	TrainMutalisk  Ability = "LARVATRAIN_MUTALISK"
	TrainUltralisk Ability = "LARVATRAIN_ULTRALISK"
	TrainQueen     Ability = "TRAINQUEEN_QUEEN"
	MorphOverseer  Ability = "MORPH_OVERSEER"
	UpgradeToLair  Ability = "UPGRADETOLAIR_LAIR"
	UpgradeToHive  Ability = "UPGRADETOHIVE_HIVE"
)

// Drone build abilities.
const (
	BuildHatchery         Ability = "ZERGBUILD_HATCHERY"
	BuildSpawningPool     Ability = "ZERGBUILD_SPAWNINGPOOL"
	BuildExtractor        Ability = "ZERGBUILD_EXTRACTOR"
	BuildEvolutionChamber Ability = "ZERGBUILD_EVOLUTIONCHAMBER"
	BuildHydraliskDen     Ability = "ZERGBUILD_HYDRALISKDEN"
	BuildInfestationPit   Ability = "ZERGBUILD_INFESTATIONPIT"
	BuildSpire            Ability = "ZERGBUILD_SPIRE"
	BuildUltraliskCavern  Ability = "ZERGBUILD_ULTRALISKCAVERN"
	BuildSpineCrawler     Ability = "ZERGBUILD_SPINECRAWLER"
	BuildSporeCrawler     Ability = "ZERGBUILD_SPORECRAWLER"
)

// IsBuild reports whether a is a drone build order.
func (a Ability) IsBuild() bool {
	return strings.HasPrefix(string(a), "ZERGBUILD_")
}

// Research abilities.
const (
	ResearchMetabolicBoost    Ability = "RESEARCH_ZERGLINGMETABOLICBOOST"
	ResearchAdrenalGlands     Ability = "RESEARCH_ZERGLINGADRENALGLANDS"
	ResearchGroovedSpines     Ability = "RESEARCH_GROOVEDSPINES"
	ResearchMuscularAugments  Ability = "RESEARCH_MUSCULARAUGMENTS"
	ResearchChitinousPlating  Ability = "RESEARCH_CHITINOUSPLATING"
	ResearchAnabolicSynthesis Ability = "RESEARCH_ANABOLICSYNTHESIS"
	ResearchBurrow            Ability = "RESEARCH_BURROW"
	ResearchMeleeWeapons1     Ability = "RESEARCH_ZERGMELEEWEAPONSLEVEL1"
	ResearchMeleeWeapons2     Ability = "RESEARCH_ZERGMELEEWEAPONSLEVEL2"
	ResearchMeleeWeapons3     Ability = "RESEARCH_ZERGMELEEWEAPONSLEVEL3"
	ResearchMissileWeapons1   Ability = "RESEARCH_ZERGMISSILEWEAPONSLEVEL1"
	ResearchMissileWeapons2   Ability = "RESEARCH_ZERGMISSILEWEAPONSLEVEL2"
	ResearchMissileWeapons3   Ability = "RESEARCH_ZERGMISSILEWEAPONSLEVEL3"
	ResearchGroundArmor1      Ability = "RESEARCH_ZERGGROUNDARMORLEVEL1"
	ResearchGroundArmor2      Ability = "RESEARCH_ZERGGROUNDARMORLEVEL2"
	ResearchGroundArmor3      Ability = "RESEARCH_ZERGGROUNDARMORLEVEL3"
)

// Upgrades.
const (
	ZerglingMovementSpeed Upgrade = "ZERGLINGMOVEMENTSPEED"
	ZerglingAttackSpeed   Upgrade = "ZERGLINGATTACKSPEED"
	GroovedSpines         Upgrade = "EVOLVEGROOVEDSPINES"
	MuscularAugments      Upgrade = "EVOLVEMUSCULARAUGMENTS"
	ChitinousPlating      Upgrade = "CHITINOUSPLATING"
	AnabolicSynthesis     Upgrade = "ANABOLICSYNTHESIS"
	Burrow                Upgrade = "BURROW"
	MeleeWeapons1         Upgrade = "ZERGMELEEWEAPONSLEVEL1"
	MeleeWeapons2         Upgrade = "ZERGMELEEWEAPONSLEVEL2"
	MeleeWeapons3         Upgrade = "ZERGMELEEWEAPONSLEVEL3"
	MissileWeapons1       Upgrade = "ZERGMISSILEWEAPONSLEVEL1"
	MissileWeapons2       Upgrade = "ZERGMISSILEWEAPONSLEVEL2"
	MissileWeapons3       Upgrade = "ZERGMISSILEWEAPONSLEVEL3"
	GroundArmor1          Upgrade = "ZERGGROUNDARMORSLEVEL1"
	GroundArmor2          Upgrade = "ZERGGROUNDARMORSLEVEL2"
	GroundArmor3          Upgrade = "ZERGGROUNDARMORSLEVEL3"
)

// Buff names a timed effect on a unit.
type Buff string

const (
	QueenSpawnLarvaTimer Buff = "QUEENSPAWNLARVATIMER"
	CarryGas             Buff = "CARRYHARVESTABLEVESPENEGEYSERGASZERG"
)

// Race is a player race as reported in the hello handshake.
type Race string

const (
	Zerg    Race = "Zerg"
	Terran  Race = "Terran"
	Protoss Race = "Protoss"
	Random  Race = "Random"
)

// Alliance tells whose unit it is from our point of view.
type Alliance string

const (
	Self    Alliance = "self"
	Enemy   Alliance = "enemy"
	Neutral Alliance = "neutral"
)
