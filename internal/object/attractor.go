package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/relativity-wars/internal/physics"
	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// Attractor tuning.
const (
	AttractorSpeed   = 1.5
	AttractorMaxSize = 200.0
	AttractorGrowth  = 3.0 // Size added per difficulty ramp tick
	MinAttractorSize = 30.0

	minPathRadius = 80.0
	maxPathRadius = 320.0
	minPathArc    = 60.0
	maxPathArc    = 480.0
)

// Attractor is a black hole drifting along random circular arcs.
type Attractor struct {
	Pos  vec.Vec2
	Size float64

	heading     float64 // Radians
	turn        float64 // +1 or -1
	pathRadius  float64
	pathArc     float64
	arcTraveled float64
}

// NewAttractor creates an attractor at pos with the given size.
func NewAttractor(pos vec.Vec2, size float64, rng *rand.Rand) *Attractor {
	a := &Attractor{
		Pos:     pos,
		Size:    math.Min(size, AttractorMaxSize),
		heading: rng.Float64() * 2 * math.Pi,
	}
	a.newArc(rng)
	return a
}

// SplitMass divides budget into n sizes using random weights.
// Every size is at least MinAttractorSize unless n*MinAttractorSize exceeds
// the budget, in which case all sizes are budget/n. No size exceeds AttractorMaxSize.
func SplitMass(budget float64, n int, rng *rand.Rand) []float64 {
	if n <= 0 {
		return nil
	}
	sizes := make([]float64, n)
	if MinAttractorSize*float64(n) > budget {
		for i := range sizes {
			sizes[i] = math.Min(budget/float64(n), AttractorMaxSize)
		}
		return sizes
	}

	spare := budget - MinAttractorSize*float64(n)
	var total float64
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 0.1 + rng.Float64()
		total += weights[i]
	}
	for i := range sizes {
		sizes[i] = math.Min(MinAttractorSize+spare*weights[i]/total, AttractorMaxSize)
	}
	return sizes
}

// SpawnAttractors places n attractors with a shared mass budget away from the edges.
func SpawnAttractors(s Screen, n int, budget float64, rng *rand.Rand) []*Attractor {
	sizes := SplitMass(budget, n, rng)
	out := make([]*Attractor, 0, n)
	for _, size := range sizes {
		pos := vec.New(200+rng.Float64()*math.Max(s.Width-400, 0), 200+rng.Float64()*math.Max(s.Height-400, 0))
		out = append(out, NewAttractor(pos, size, rng))
	}
	return out
}

func (a *Attractor) newArc(rng *rand.Rand) {
	a.pathRadius = minPathRadius + rng.Float64()*(maxPathRadius-minPathRadius)
	a.pathArc = minPathArc + rng.Float64()*(maxPathArc-minPathArc)
	a.arcTraveled = 0
	a.turn = 1
	if rng.Intn(2) == 0 {
		a.turn = -1
	}
}

// Position implements Mover.
func (a *Attractor) Position() vec.Vec2 { return a.Pos }

// Radius implements Mover.
func (a *Attractor) Radius() float64 { return a.Size / 2 }

// Alive implements Mover.
func (a *Attractor) Alive() bool { return true }

// Well returns the attractor as a gravity source.
func (a *Attractor) Well() physics.Well {
	return physics.Well{Pos: a.Pos, Radius: a.Radius()}
}

// Enlarge grows the attractor by AttractorGrowth up to AttractorMaxSize.
func (a *Attractor) Enlarge() {
	a.Size = math.Max(a.Size, math.Min(a.Size+AttractorGrowth, AttractorMaxSize))
}

// Update moves the attractor along its current arc and picks a new arc once
// the current one is used up. Attractors are never removed.
func (a *Attractor) Update(ctx *UpdateContext) bool {
	if a.arcTraveled >= a.pathArc {
		a.newArc(ctx.Rand)
	}
	a.Pos = a.Pos.Add(vec.New(math.Cos(a.heading), math.Sin(a.heading)).Scale(AttractorSpeed))
	a.heading += a.turn * AttractorSpeed / a.pathRadius
	a.arcTraveled += AttractorSpeed
	a.Pos = ctx.Screen.MirrorWrap(a.Pos)
	return false
}

// Draw renders the attractor.
func (a *Attractor) Draw(ctx DrawContext) {
	ctx.List.Add(render.SpriteBlackHole, a.Pos, a.heading*180/math.Pi, a.Radius())
}

// Wells collects the gravity sources of attractors.
func Wells(attractors []*Attractor, dst []physics.Well) []physics.Well {
	dst = dst[:0]
	for _, a := range attractors {
		dst = append(dst, a.Well())
	}
	return dst
}
