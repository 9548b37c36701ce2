package zerg

import (
	"testing"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/rules"
)

func field(tag uint64, x, y float64) model.Unit {
	return model.Unit{Tag: tag, Type: "MINERALFIELD", Alliance: model.Neutral, X: x, Y: y, MineralContents: 1500}
}

func harvesting(tag uint64, x, y float64, a model.Ability, target uint64) model.Unit {
	d := unit(tag, model.Drone, x, y)
	d.Orders = []model.UnitOrder{{Ability: a, TargetTag: target}}
	return d
}

// gasBase is a base with one finished extractor, two drones gathering gas
// from it and eight on minerals.
func gasBase(extra ...model.Unit) []model.Unit {
	us := []model.Unit{
		unit(1, model.Hatchery, 20, 20),
		unit(2, model.Extractor, 27, 20),
		field(90, 14, 20),
		field(91, 14, 22),
		harvesting(10, 26, 20, model.HarvestGather, 2),
		harvesting(11, 26, 21, model.HarvestGather, 2),
	}
	for i := range 8 {
		us = append(us, harvesting(uint64(20+i), 16, 20, model.HarvestGather, 90))
	}
	return append(us, extra...)
}

func TestGasWorkersCountReturningDrones(t *testing.T) {
	carrying := harvesting(12, 15, 21, model.HarvestReturn, 1)
	carrying.Buffs = []model.Buff{model.CarryGas}
	// One drone visible on gas, but the game reports three.
	reported := append(gasBase()[:5], gasBase()[6:]...)
	reported[1].AssignedHarvesters = 3

	tests := []struct {
		name  string
		units []model.Unit
	}{
		{"returning next to the extractor", gasBase(harvesting(12, 24, 20, model.HarvestReturn, 1))},
		{"carrying gas by the minerals", gasBase(carrying)},
		{"count reported by the game", reported},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := &DistributeWorkers{name: "distribute-workers"}
			if cmd.ShouldHandle(snapshot(300, 0, 0, tc.units...)) {
				var b rules.Batch
				cmd.Handle(snapshot(300, 0, 0, tc.units...), &b)
				t.Errorf("saturated extractor got orders %+v", b.Orders())
			}
		})
	}
}

func TestGasWorkersTopUpShortExtractor(t *testing.T) {
	// A mineral drone returning cargo stays on minerals.
	s := snapshot(300, 0, 0, gasBase(harvesting(12, 15, 20, model.HarvestReturn, 1))...)
	orders := handle(t, &DistributeWorkers{name: "distribute-workers"}, s)
	if len(orders) != 1 {
		t.Fatalf("orders = %+v, want one drone sent to gas", orders)
	}
	o := orders[0]
	if o.Ability != model.HarvestGather || o.TargetTag != 2 || o.UnitTags[0] < 20 {
		t.Errorf("order = %+v, want a mineral drone gathering from 2", o)
	}
}
