package model

// Order is one intent for the bridge to apply at the end of a step.
// Orders are values: once appended to a batch they are never changed.
type Order struct {
	Ability   Ability  `json:"ability"`
	UnitTags  []uint64 `json:"unitTags"`
	TargetTag uint64   `json:"targetTag,omitempty"`
	Target    *Point   `json:"target,omitempty"`
	Queue     bool     `json:"queue,omitempty"`
	// Near asks the bridge to search for a valid placement around Target
	// instead of using Target verbatim.
	Near bool `json:"near,omitempty"`
}

func at(p Point) *Point { return &p }

// MoveTo replaces the unit's orders with a move to p.
func MoveTo(u Unit, p Point) Order {
	return Order{Ability: Move, UnitTags: []uint64{u.Tag}, Target: at(p)}
}

// MoveQueued appends a move to the unit's existing order queue.
func MoveQueued(u Unit, p Point) Order {
	o := MoveTo(u, p)
	o.Queue = true
	return o
}

func AttackUnit(u Unit, target Unit) Order {
	return Order{Ability: Attack, UnitTags: []uint64{u.Tag}, TargetTag: target.Tag}
}

func AttackMove(us Units, p Point) Order {
	return Order{Ability: Attack, UnitTags: us.Tags(), Target: at(p)}
}

// Train starts t from a producer (larva, hatchery or morphing unit).
// It returns false when the catalog does not know how to create t.
func Train(producer Unit, t UnitType) (Order, bool) {
	a, ok := CreatedBy(t)
	if !ok {
		return Order{}, false
	}
	return Order{Ability: a, UnitTags: []uint64{producer.Tag}}, true
}

// BuildAt orders worker to place t exactly at p.
func BuildAt(worker Unit, t UnitType, p Point) (Order, bool) {
	a, ok := CreatedBy(t)
	if !ok {
		return Order{}, false
	}
	return Order{Ability: a, UnitTags: []uint64{worker.Tag}, Target: at(p)}, true
}

// BuildNear orders worker to place t at the first valid spot around p.
func BuildNear(worker Unit, t UnitType, p Point) (Order, bool) {
	o, ok := BuildAt(worker, t, p)
	o.Near = true
	return o, ok
}

// BuildOn orders worker to build t on a target unit (extractors on geysers).
func BuildOn(worker Unit, t UnitType, target Unit) (Order, bool) {
	a, ok := CreatedBy(t)
	if !ok {
		return Order{}, false
	}
	return Order{Ability: a, UnitTags: []uint64{worker.Tag}, TargetTag: target.Tag}, true
}

func Use(u Unit, a Ability) Order {
	return Order{Ability: a, UnitTags: []uint64{u.Tag}}
}

func UseOn(u Unit, a Ability, target Unit) Order {
	return Order{Ability: a, UnitTags: []uint64{u.Tag}, TargetTag: target.Tag}
}

func UseAt(u Unit, a Ability, p Point) Order {
	return Order{Ability: a, UnitTags: []uint64{u.Tag}, Target: at(p)}
}

func Gather(worker Unit, field Unit) Order {
	return UseOn(worker, HarvestGather, field)
}
