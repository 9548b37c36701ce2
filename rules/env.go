package rules

import (
	"strings"

	"github.com/nstehr/brood/world"
)

// GateEnv is what a configured gate expression can see. Field and method
// names are the expression vocabulary, e.g.
//
//	Time > 240 && Count("HYDRALISK") < 20 && !CloseEnemiesToBase
type GateEnv struct {
	Time       float64
	Iteration  int
	Minerals   int
	Vespene    int
	SupplyUsed int
	SupplyCap  int
	SupplyLeft int
	EnemyRace  string

	Townhalls int
	Drones    int
	Larvae    int
	Queens    int
	Army      int

	CloseEnemyProduction  bool
	FloatingBuildingsBM   bool
	CloseEnemiesToBase    bool
	CounterAttackVsFlying bool
	OneBasePlay           bool

	Units      map[string]int
	EnemyUnits map[string]int
}

// NewGateEnv flattens a snapshot into gate variables.
func NewGateEnv(s *world.Snapshot) GateEnv {
	return GateEnv{
		Time:       s.Time,
		Iteration:  s.Iteration,
		Minerals:   s.Minerals,
		Vespene:    s.Vespene,
		SupplyUsed: s.SupplyUsed,
		SupplyCap:  s.SupplyCap,
		SupplyLeft: s.SupplyLeft,
		EnemyRace:  string(s.EnemyRace),

		Townhalls: s.Townhalls.Len(),
		Drones:    s.Drones.Len(),
		Larvae:    s.Larvae.Len(),
		Queens:    s.Queens.Len(),
		Army:      s.Army.Len(),

		CloseEnemyProduction:  s.CloseEnemyProduction,
		FloatingBuildingsBM:   s.FloatingBuildingsBM,
		CloseEnemiesToBase:    s.CloseEnemiesToBase,
		CounterAttackVsFlying: s.CounterAttackVsFlying,
		OneBasePlay:           s.OneBasePlay,

		Units:      s.Units.CountByType(),
		EnemyUnits: s.Enemies.CountByType(),
	}
}

// Count returns how many own units of type t exist, finished or not.
func (e GateEnv) Count(t string) int {
	return e.Units[strings.ToUpper(t)]
}

// EnemyCount returns how many visible enemy units of type t exist.
func (e GateEnv) EnemyCount(t string) int {
	return e.EnemyUnits[strings.ToUpper(t)]
}

func (e GateEnv) Has(t string) bool {
	return e.Count(t) > 0
}
