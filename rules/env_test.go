package rules

import (
	"testing"

	"github.com/nstehr/brood/model"
	"github.com/nstehr/brood/world"
)

func TestNewGateEnv(t *testing.T) {
	b := world.NewBuilder(model.GameInfo{}, model.Zerg, model.Protoss, world.DefaultThresholds())
	s := b.Build(model.Observation{
		Minerals:   250,
		SupplyUsed: 20,
		SupplyCap:  28,
		Units: []model.Unit{
			{Tag: 1, Type: model.Hatchery, Alliance: model.Self, BuildProgress: 1, IsStructure: true},
			{Tag: 2, Type: model.Zergling, Alliance: model.Self, BuildProgress: 1},
			{Tag: 3, Type: model.Zergling, Alliance: model.Self, BuildProgress: 1},
			{Tag: 4, Type: model.Zealot, Alliance: model.Enemy, BuildProgress: 1},
		},
	})
	env := NewGateEnv(s)

	if env.Minerals != 250 || env.SupplyLeft != 8 {
		t.Errorf("bank/supply = %d/%d, want 250/8", env.Minerals, env.SupplyLeft)
	}
	if env.EnemyRace != "Protoss" {
		t.Errorf("EnemyRace = %q", env.EnemyRace)
	}
	if env.Army != 2 || env.Townhalls != 1 {
		t.Errorf("Army/Townhalls = %d/%d, want 2/1", env.Army, env.Townhalls)
	}
	if got := env.Count("zergling"); got != 2 {
		t.Errorf("Count(zergling) = %d, want 2 (case-insensitive)", got)
	}
	if got := env.EnemyCount("ZEALOT"); got != 1 {
		t.Errorf("EnemyCount(ZEALOT) = %d, want 1", got)
	}
	if env.Has("SPAWNINGPOOL") {
		t.Error("Has(SPAWNINGPOOL) should be false")
	}
}

func TestGateEvalUsesMethods(t *testing.T) {
	gates, err := CompileGates(map[string]string{
		"train-zergling": `Has("HATCHERY") && EnemyCount("zealot") > 0 && EnemyRace == "Protoss"`,
	})
	if err != nil {
		t.Fatalf("CompileGates: %v", err)
	}
	env := GateEnv{
		EnemyRace:  "Protoss",
		Units:      map[string]int{"HATCHERY": 1},
		EnemyUnits: map[string]int{"ZEALOT": 3},
	}
	open, err := gates[0].Eval(env)
	if err != nil || !open {
		t.Errorf("Eval = %v, %v; want true, nil", open, err)
	}

	open, _ = gates[0].Eval(GateEnv{EnemyRace: "Protoss"})
	if open {
		t.Error("gate should be closed without a hatchery")
	}
}
