package model

import (
	"math"
	"math/rand"
	"testing"
)

func sampleUnits() Units {
	return Units{
		{Tag: 1, Type: Drone, X: 0, Y: 0, BuildProgress: 1},
		{Tag: 2, Type: Drone, X: 10, Y: 0, BuildProgress: 1, Orders: []UnitOrder{{Ability: HarvestGather}}},
		{Tag: 3, Type: Hatchery, X: 5, Y: 5, BuildProgress: 0.4, IsStructure: true},
		{Tag: 4, Type: Overlord, X: 30, Y: 0, BuildProgress: 1, IsFlying: true},
	}
}

func TestUnitsOfTypeAndExclude(t *testing.T) {
	us := sampleUnits()
	if got := us.OfType(Drone).Len(); got != 2 {
		t.Errorf("OfType(Drone) = %d, want 2", got)
	}
	if got := us.OfType(Drone, Overlord).Len(); got != 3 {
		t.Errorf("OfType(Drone, Overlord) = %d, want 3", got)
	}
	if got := us.ExcludeType(Drone).Len(); got != 2 {
		t.Errorf("ExcludeType(Drone) = %d, want 2", got)
	}
}

func TestUnitsStateFilters(t *testing.T) {
	us := sampleUnits()
	if got := us.Ready().Len(); got != 3 {
		t.Errorf("Ready = %d, want 3", got)
	}
	if got := us.NotReady().Len(); got != 1 {
		t.Errorf("NotReady = %d, want 1", got)
	}
	if got := us.Idle().Len(); got != 3 {
		t.Errorf("Idle = %d, want 3", got)
	}
	if got := us.Flying().Len(); got != 1 {
		t.Errorf("Flying = %d, want 1", got)
	}
	if got := us.Structures().Len(); got != 1 {
		t.Errorf("Structures = %d, want 1", got)
	}
	if got := us.WithOrder(HarvestGather).Len(); got != 1 {
		t.Errorf("WithOrder(HarvestGather) = %d, want 1", got)
	}
	if got := us.TagsNotIn(map[uint64]bool{1: true, 2: true}).Len(); got != 2 {
		t.Errorf("TagsNotIn = %d, want 2", got)
	}
}

func TestUnitsByTag(t *testing.T) {
	us := sampleUnits()
	if u, ok := us.ByTag(3); !ok || u.Type != Hatchery {
		t.Errorf("ByTag(3) = %+v, %v", u, ok)
	}
	if _, ok := us.ByTag(99); ok {
		t.Error("ByTag(99) found a unit")
	}
}

func TestUnitsCloserThanIsStrict(t *testing.T) {
	us := sampleUnits()
	origin := Point{}
	if got := us.CloserThan(10, origin).Len(); got != 2 {
		// Drone at 0 and hatchery at ~7.07; the drone at exactly 10 is excluded.
		t.Errorf("CloserThan(10) = %d, want 2", got)
	}
	if got := us.FurtherThan(10, origin).Len(); got != 1 {
		t.Errorf("FurtherThan(10) = %d, want 1", got)
	}
}

func TestUnitsClosestAndFurthest(t *testing.T) {
	us := sampleUnits()
	c, ok := us.ClosestTo(Point{X: 9, Y: 0})
	if !ok || c.Tag != 2 {
		t.Errorf("ClosestTo = %d, want 2", c.Tag)
	}
	f, ok := us.FurthestTo(Point{})
	if !ok || f.Tag != 4 {
		t.Errorf("FurthestTo = %d, want 4", f.Tag)
	}

	var empty Units
	if _, ok := empty.ClosestTo(Point{}); ok {
		t.Error("ClosestTo on empty should report false")
	}
	if d := empty.ClosestDistanceTo(Point{}); !math.IsInf(d, 1) {
		t.Errorf("ClosestDistanceTo on empty = %v, want +Inf", d)
	}
}

func TestUnitsClosestTieKeepsFirst(t *testing.T) {
	us := Units{
		{Tag: 7, X: -1},
		{Tag: 8, X: 1},
	}
	c, _ := us.ClosestTo(Point{})
	if c.Tag != 7 {
		t.Errorf("tie should go to the earlier unit, got %d", c.Tag)
	}
}

func TestUnitsRandom(t *testing.T) {
	us := sampleUnits()
	u, ok := us.Random(nil)
	if !ok || u.Tag != 1 {
		t.Errorf("Random(nil) should return the first unit, got %d", u.Tag)
	}
	rng := rand.New(rand.NewSource(1))
	for range 20 {
		u, _ := us.Random(rng)
		if u.Tag < 1 || u.Tag > 4 {
			t.Fatalf("Random returned unknown tag %d", u.Tag)
		}
	}
}

func TestPointTowards(t *testing.T) {
	p := Point{X: 0, Y: 0}
	got := p.Towards(Point{X: 10, Y: 0}, 4)
	if got != (Point{X: 4, Y: 0}) {
		t.Errorf("Towards = %v, want (4,0)", got)
	}
	away := p.Towards(Point{X: 10, Y: 0}, -4)
	if away != (Point{X: -4, Y: 0}) {
		t.Errorf("Towards negative = %v, want (-4,0)", away)
	}
	if same := p.Towards(p, 5); same != p {
		t.Errorf("Towards self = %v, want %v", same, p)
	}
}

func TestPointTowardsWithRandomAngleKeepsDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := Point{X: 50, Y: 50}
	for range 10 {
		q := p.TowardsWithRandomAngle(Point{X: 100, Y: 50}, -10, math.Pi/4, rng)
		if d := p.Distance(q); math.Abs(d-10) > 1e-9 {
			t.Fatalf("distance = %v, want 10", d)
		}
		if q.X > p.X {
			t.Fatalf("negative distance should move away from target, got %v", q)
		}
	}
}
