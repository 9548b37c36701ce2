package agent

import (
	"fmt"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/world"
)

// EventKind identifies a significant change between two consecutive steps.
type EventKind string

const (
	EventProxyDetected     EventKind = "proxy_detected"
	EventFloatingBuildings EventKind = "floating_buildings"
	EventBaseUnderAttack   EventKind = "base_under_attack"
	EventAirThreat         EventKind = "air_threat"
	EventOneBasePlay       EventKind = "one_base_play"
	EventTownhallLost      EventKind = "townhall_lost"
	EventArmyDevastated    EventKind = "army_devastated"
	EventFirstContact      EventKind = "first_contact"
	EventEconomyCrisis     EventKind = "economy_crisis"
)

// Event is detected by diffing the snapshots of two consecutive steps. Events
// are logged and stored with the match so a replay can be lined up with what
// the agent believed.
type Event struct {
	Kind   EventKind `json:"kind"`
	Loop   int       `json:"loop"`
	Detail string    `json:"detail"`
}

// stateSnapshot keeps the few diffable facts of a step. The agent holds the
// previous one and compares against the next.
type stateSnapshot struct {
	loop        int
	townhalls   map[uint64]model.UnitType
	armyCount   int
	droneCount  int
	enemiesSeen bool
	flags       map[EventKind]bool
}

// armyFloor keeps early skirmishes from counting as a devastated army.
const armyFloor = 6

func takeSnapshot(s *world.Snapshot) stateSnapshot {
	snap := stateSnapshot{
		loop:        s.Loop,
		townhalls:   make(map[uint64]model.UnitType, s.Townhalls.Len()),
		armyCount:   s.Army.Len(),
		droneCount:  s.Drones.Len(),
		enemiesSeen: s.Enemies.Exists(),
		flags: map[EventKind]bool{
			EventProxyDetected:     s.CloseEnemyProduction,
			EventFloatingBuildings: s.FloatingBuildingsBM,
			EventBaseUnderAttack:   s.CloseEnemiesToBase,
			EventAirThreat:         s.CounterAttackVsFlying,
			EventOneBasePlay:       s.OneBasePlay,
		},
	}
	for _, th := range s.Townhalls {
		snap.townhalls[th.Tag] = th.Type
	}
	return snap
}

// flagOrder fixes the order flag events are reported in.
var flagOrder = []EventKind{
	EventProxyDetected,
	EventFloatingBuildings,
	EventBaseUnderAttack,
	EventAirThreat,
	EventOneBasePlay,
}

// detectEvents compares cur against prev. Flags only fire on a false to
// true transition, so a proxy that stays up is reported once. Returns nil
// if prev is nil (first step).
func detectEvents(loop int, cur stateSnapshot, prev *stateSnapshot) []Event {
	if prev == nil {
		return nil
	}
	var events []Event

	for _, kind := range flagOrder {
		if cur.flags[kind] && !prev.flags[kind] {
			events = append(events, Event{Kind: kind, Loop: loop, Detail: string(kind)})
		}
	}

	for tag, typ := range prev.townhalls {
		if _, ok := cur.townhalls[tag]; !ok {
			events = append(events, Event{
				Kind:   EventTownhallLost,
				Loop:   loop,
				Detail: fmt.Sprintf("lost %s (tag %d)", typ, tag),
			})
			break // one per step is enough
		}
	}

	if prev.armyCount >= armyFloor {
		lost := prev.armyCount - cur.armyCount
		if lost > 0 && float64(lost)/float64(prev.armyCount) > 0.5 {
			events = append(events, Event{
				Kind:   EventArmyDevastated,
				Loop:   loop,
				Detail: fmt.Sprintf("army %d→%d", prev.armyCount, cur.armyCount),
			})
		}
	}

	if !prev.enemiesSeen && cur.enemiesSeen {
		events = append(events, Event{Kind: EventFirstContact, Loop: loop, Detail: "enemies visible"})
	}

	if prev.droneCount > 0 && cur.droneCount == 0 {
		events = append(events, Event{Kind: EventEconomyCrisis, Loop: loop, Detail: "all drones lost"})
	}

	return events
}
