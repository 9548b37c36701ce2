package world

import (
	"math"
	"slices"

	"github.com/nstehr/brood/model"
)

// Placement answers geometry questions the build modules ask. Callers fall
// back to a hardcoded position whenever an answer is negative.
type Placement interface {
	CanPlace(s *Snapshot, t model.UnitType, p model.Point) bool
	// ProductionPosition returns a free spot for t behind one of our
	// mineral lines.
	ProductionPosition(s *Snapshot, t model.UnitType) (model.Point, bool)
	// NextExpansion returns the nearest free expansion location.
	NextExpansion(s *Snapshot) (model.Point, bool)
}

const (
	mineralLineRadius  = 10 // minerals this close to a townhall form its line
	townhallClearance  = 6  // a hatchery cannot sit this close to resources
	expansionTakenDist = 6
)

var (
	behindDistances = []float64{10, 11, 12}
	lateralOffsets  = []float64{0, 3, -3, 6, -6}
)

// GridPlacement checks footprints against the static placement grid, the
// current creep layer and every known structure and resource. Candidate
// spots behind each mineral line are computed once per townhall and reused.
type GridPlacement struct {
	grid       *model.PlacementGrid
	candidates map[uint64][]model.Point
}

// NewGridPlacement wraps the placement grid from the hello handshake. A nil
// grid leaves the static layer unchecked.
func NewGridPlacement(grid *model.PlacementGrid) *GridPlacement {
	return &GridPlacement{
		grid:       grid,
		candidates: make(map[uint64][]model.Point),
	}
}

func (g *GridPlacement) CanPlace(s *Snapshot, t model.UnitType, p model.Point) bool {
	size := model.Footprint(t)
	if size == 0 {
		return false
	}
	if g.grid != nil && !g.grid.FootprintClear(p, size) {
		return false
	}
	if model.NeedsCreep(t) && !s.Creep.FootprintOn(p, size) {
		return false
	}

	half := float64(size) / 2
	blockers := []model.Units{s.Structures, s.EnemyStructures, s.MineralFields, s.Geysers}
	for _, group := range blockers {
		for _, u := range group {
			w, h := extents(u)
			if math.Abs(u.X-p.X) < half+w && math.Abs(u.Y-p.Y) < half+h {
				return false
			}
		}
	}

	if t == model.Hatchery {
		if s.MineralFields.CloserThan(townhallClearance, p).Exists() || s.Geysers.CloserThan(townhallClearance, p).Exists() {
			return false
		}
	}
	return true
}

// extents returns the half width and half height a unit occupies.
func extents(u model.Unit) (float64, float64) {
	switch {
	case u.IsMineralField():
		return 1, 0.5
	case u.IsGeyser():
		return 1.5, 1.5
	}
	if size := model.Footprint(u.Type); size > 0 {
		return float64(size) / 2, float64(size) / 2
	}
	return 1.5, 1.5
}

func (g *GridPlacement) ProductionPosition(s *Snapshot, t model.UnitType) (model.Point, bool) {
	for _, hall := range s.Townhalls.Ready() {
		for _, p := range g.mineralLine(s, hall) {
			if g.CanPlace(s, t, p) {
				return p, true
			}
		}
	}
	return model.Point{}, false
}

func (g *GridPlacement) mineralLine(s *Snapshot, hall model.Unit) []model.Point {
	if pts, ok := g.candidates[hall.Tag]; ok {
		return pts
	}
	minerals := s.MineralFields.CloserThan(mineralLineRadius, hall.Pos())
	if minerals.Empty() {
		// Not cached: the minerals may just be out of sight.
		return nil
	}
	origin := hall.Pos()
	dir := model.Centroid(minerals.Positions()).Sub(origin).Normalized()
	perp := model.Point{X: -dir.Y, Y: dir.X}

	var pts []model.Point
	for _, d := range behindDistances {
		for _, off := range lateralOffsets {
			pts = append(pts, origin.Add(dir.Scale(d)).Add(perp.Scale(off)))
		}
	}
	g.candidates[hall.Tag] = pts
	return pts
}

func (g *GridPlacement) NextExpansion(s *Snapshot) (model.Point, bool) {
	halls := slices.Concat(s.Townhalls, s.EnemyStructures.OfType(model.Townhalls...))
	for _, p := range s.OrderedExpansions {
		if halls.CloserThan(expansionTakenDist, p).Exists() {
			continue
		}
		if g.CanPlace(s, model.Hatchery, p) {
			return p, true
		}
	}
	return model.Point{}, false
}
