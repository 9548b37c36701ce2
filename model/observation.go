package model

import "slices"

// LoopsPerSecond converts game loops to seconds at "faster" speed.
const LoopsPerSecond = 22.4

// GameInfo carries the static facts the bridge sends once during the hello
// handshake.
type GameInfo struct {
	MapName            string         `json:"mapName"`
	MapCenter          Point          `json:"mapCenter"`
	StartLocation      Point          `json:"startLocation"`
	EnemyStarts        []Point        `json:"enemyStarts"`
	ExpansionLocations []Point        `json:"expansionLocations"`
	RampDepot          Point          `json:"rampDepot"` // middle of the main base ramp
	Placement          *PlacementGrid `json:"placement,omitempty"`
}

// Observation is one step of game state as decoded by the bridge.
type Observation struct {
	Loop       int       `json:"loop"`
	Minerals   int       `json:"minerals"`
	Vespene    int       `json:"vespene"`
	SupplyUsed int       `json:"supplyUsed"`
	SupplyCap  int       `json:"supplyCap"`
	Units      []Unit    `json:"units"`
	Upgrades   []Upgrade `json:"upgrades"`
	Creep      *Grid     `json:"creep,omitempty"`
}

// Time returns the elapsed match time in seconds.
func (o Observation) Time() float64 {
	return float64(o.Loop) / LoopsPerSecond
}

// UnitOrder is an order a unit is currently executing.
type UnitOrder struct {
	Ability   Ability `json:"ability"`
	TargetTag uint64  `json:"targetTag,omitempty"`
	Target    *Point  `json:"target,omitempty"`
	Progress  float64 `json:"progress,omitempty"`
}

type Unit struct {
	Tag             uint64      `json:"tag"`
	Type            UnitType    `json:"type"`
	Alliance        Alliance    `json:"alliance"`
	X               float64     `json:"x"`
	Y               float64     `json:"y"`
	Health          float64     `json:"health"`
	HealthMax       float64     `json:"healthMax"`
	Energy          float64     `json:"energy"`
	BuildProgress   float64     `json:"buildProgress"`
	IsFlying        bool        `json:"isFlying"`
	IsStructure     bool        `json:"isStructure"`
	IsBurrowed      bool        `json:"isBurrowed"`
	MineralContents int         `json:"mineralContents,omitempty"`
	VespeneContents int         `json:"vespeneContents,omitempty"`
	Orders          []UnitOrder `json:"orders,omitempty"`
	Buffs           []Buff      `json:"buffs,omitempty"`

	// AssignedHarvesters is the game's own worker count on a townhall or
	// extractor. Zero when the bridge does not report it.
	AssignedHarvesters int `json:"assignedHarvesters,omitempty"`
}

func (u Unit) TypeName() string { return string(u.Type) }

func (u Unit) Pos() Point { return Point{X: u.X, Y: u.Y} }

func (u Unit) DistanceTo(p Point) float64 { return u.Pos().Distance(p) }

// IsReady reports whether construction has finished.
func (u Unit) IsReady() bool { return u.BuildProgress >= 1 }

func (u Unit) IsIdle() bool { return len(u.Orders) == 0 }

func (u Unit) HasBuff(b Buff) bool { return slices.Contains(u.Buffs, b) }

func (u Unit) HasOrder(a Ability) bool {
	for _, o := range u.Orders {
		if o.Ability == a {
			return true
		}
	}
	return false
}

func (u Unit) IsMineralField() bool { return u.Alliance == Neutral && u.MineralContents > 0 }

func (u Unit) IsGeyser() bool { return u.Alliance == Neutral && u.VespeneContents > 0 }

func (u Unit) HealthFraction() float64 {
	if u.HealthMax <= 0 {
		return 0
	}
	return u.Health / u.HealthMax
}
