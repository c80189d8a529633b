// Package physics provides the gravity field and the overlap predicates used by the collision resolver.
package physics

import "github.com/tomz197/relativity-wars/internal/vec"

// Distance calculates the Euclidean distance between two points.
func Distance(a, b vec.Vec2) float64 {
	return b.Sub(a).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b vec.Vec2) float64 {
	return b.Sub(a).LenSq()
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(p, center vec.Vec2, radius float64) bool {
	return DistanceSquared(p, center) <= radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(a vec.Vec2, ra float64, b vec.Vec2, rb float64) bool {
	minDist := ra + rb
	return DistanceSquared(a, b) < minDist*minDist
}

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	Min, Max vec.Vec2
}

// Offset returns r translated by d.
func (r Rect) Offset(d vec.Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// ContainsStrict reports whether p lies strictly inside r (edges excluded).
func (r Rect) ContainsStrict(p vec.Vec2) bool {
	return r.Min.X < p.X && p.X < r.Max.X && r.Min.Y < p.Y && p.Y < r.Max.Y
}

// InBounds reports whether p lies in [0, w] x [0, h].
func InBounds(p vec.Vec2, w, h float64) bool {
	return p.X >= 0 && p.X <= w && p.Y >= 0 && p.Y <= h
}

// InBoundsStrict reports whether p lies in (0, w) x (0, h).
func InBoundsStrict(p vec.Vec2, w, h float64) bool {
	return p.X > 0 && p.X < w && p.Y > 0 && p.Y < h
}
