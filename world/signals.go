package world

import "github.com/nstehr/brood/model"

// nonThreatFlyers never count toward CounterAttackVsFlying: detectors,
// transports, casters and the odd worker that got lifted by a prism.
var nonThreatFlyers = []model.UnitType{
	model.Drone, model.SCV, model.Probe,
	model.Overlord, model.Overseer,
	model.Raven, model.Observer, model.WarpPrism, model.Medivac,
	model.Viper, model.Corruptor,
}

// proxyProduction are the enemy structures that signal a proxy when built
// near our start location.
var proxyProduction = []model.UnitType{model.Barracks, model.Gateway, model.Hatchery}

func proxyBuildings(s *Snapshot, th Thresholds) model.Units {
	return s.EnemyStructures.OfType(proxyProduction...).CloserThan(th.ProxyRadius, s.StartLocation)
}

func floatingBuildings(s *Snapshot, th Thresholds) bool {
	if s.EnemyStructures.Empty() || s.Time <= th.FloatingAfter {
		return false
	}
	return len(s.EnemyStructures.Flying()) == len(s.EnemyStructures)
}

// baseThreats reports whether ground and air threats are near any townhall.
func baseThreats(s *Snapshot, th Thresholds) (ground, air bool) {
	flyers := s.FlyingEnemies.ExcludeType(nonThreatFlyers...)
	for _, hall := range s.Townhalls {
		p := hall.Pos()
		if !ground && s.GroundEnemies.CloserThan(th.GroundThreatRadius, p).Exists() {
			ground = true
		}
		if !air && flyers.CloserThan(th.AirThreatRadius, p).Exists() {
			air = true
		}
		if ground && air {
			break
		}
	}
	return ground, air
}

// oneBasePlay guesses whether the opponent committed to a one-base build.
// A proxy only counts against the guess when the enemy also took its natural.
func oneBasePlay(s *Snapshot) bool {
	if s.CloseEnemyProduction && !enemyTookNatural(s) {
		return false
	}
	switch s.EnemyRace {
	case model.Zerg:
		return s.EnemyStructures.OfType(model.SpawningPool).Exists()
	case model.Terran:
		return s.EnemyStructures.OfType(model.Barracks).Len() > 2
	case model.Protoss:
		return s.EnemyStructures.OfType(model.Gateway).Len() >= 2
	}
	return false
}

// enemyTookNatural looks for an enemy townhall on the expansion closest to
// the enemy start, which is the second-furthest one from ours.
func enemyTookNatural(s *Snapshot) bool {
	n := len(s.OrderedExpansions)
	if n < 2 {
		return false
	}
	natural := s.OrderedExpansions[n-2]
	return s.EnemyStructures.OfType(model.Townhalls...).CloserThan(8, natural).Exists()
}

// GameStep is the number of game loops the bridge should advance between
// observations. Busier fights get finer control.
func (s *Snapshot) GameStep() int {
	switch n := s.GroundEnemies.Len(); {
	case n >= 15:
		return 2
	case n >= 5:
		return 4
	case n > 0:
		return 6
	}
	return 8
}
