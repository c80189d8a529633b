package physics

import (
	"math"

	"github.com/tomz197/relativity-wars/internal/vec"
)

const (
	// GravitationalConstant scales every well's pull.
	GravitationalConstant = 180.0
	// MaxGravity caps the magnitude of the summed field.
	MaxGravity = 20.0
	// falloff is the distance exponent of a single well's pull.
	falloff = 1.1
)

// Well is a point source of gravity. Every well pulls equally hard;
// Radius only matters for contact.
type Well struct {
	Pos    vec.Vec2
	Radius float64
}

// GravityAt returns the acceleration at p produced by wells.
//
// Each well pulls with K/dist^1.1 on both axes independently, signed by the
// axis component of p-well. A zero axis component takes the positive sign, so an
// axis-aligned point is still pulled along the negative direction of the other axis.
// The sum is clamped to MaxGravity.
func GravityAt(p vec.Vec2, wells []Well) vec.Vec2 {
	var g vec.Vec2
	for i := range wells {
		d := p.Sub(wells[i].Pos)
		if d.IsZero() {
			continue
		}
		pull := GravitationalConstant / math.Pow(d.Len(), falloff)
		g.X -= math.Copysign(pull, d.X)
		g.Y -= math.Copysign(pull, d.Y)
	}
	return g.ClampLen(MaxGravity)
}

// TouchesWell reports whether a circle at p with radius r overlaps any well's body.
func TouchesWell(p vec.Vec2, r float64, wells []Well) bool {
	for i := range wells {
		if CirclesOverlap(p, r, wells[i].Pos, wells[i].Radius) {
			return true
		}
	}
	return false
}
