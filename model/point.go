package model

import (
	"math"
	"math/rand"
)

// Point is a position on the map plane in game units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) DistanceSq(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

func (p Point) Distance(q Point) float64 {
	return math.Sqrt(p.DistanceSq(q))
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Normalized returns the unit vector of p, or the zero vector for p == 0.
func (p Point) Normalized() Point {
	l := math.Hypot(p.X, p.Y)
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Towards moves distance units from p in the direction of target.
// A negative distance moves away from target.
func (p Point) Towards(target Point, distance float64) Point {
	if p == target {
		return p
	}
	return p.Add(target.Sub(p).Normalized().Scale(distance))
}

// TowardsWithRandomAngle is Towards with the heading rotated by a uniform
// angle in [-maxAngle, maxAngle] radians.
func (p Point) TowardsWithRandomAngle(target Point, distance, maxAngle float64, rng *rand.Rand) Point {
	if p == target {
		return p
	}
	dir := target.Sub(p)
	angle := math.Atan2(dir.Y, dir.X)
	if rng != nil && maxAngle > 0 {
		angle += (rng.Float64()*2 - 1) * maxAngle
	}
	return Point{X: p.X + math.Cos(angle)*distance, Y: p.Y + math.Sin(angle)*distance}
}

// Centroid returns the average of pts, or the zero point for an empty slice.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sum Point
	for _, q := range pts {
		sum = sum.Add(q)
	}
	return sum.Scale(1 / float64(len(pts)))
}
