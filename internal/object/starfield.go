package object

import (
	"math/rand"

	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// Starfield tuning.
const (
	StarCount = 500
)

// StarDrift is how far every star moves per tick.
var StarDrift = vec.New(-0.2, 0.1)

// starSizeWeights are the relative odds of star sizes 1 through 5.
var starSizeWeights = [...]int{60, 30, 15, 7, 3}

type star struct {
	pos  vec.Vec2
	size float64
}

// Starfield is the drifting background.
type Starfield struct {
	stars []star
}

// NewStarfield scatters StarCount stars over the screen.
func NewStarfield(s Screen, rng *rand.Rand) *Starfield {
	sf := &Starfield{stars: make([]star, StarCount)}
	for i := range sf.stars {
		sf.stars[i] = star{
			pos:  vec.New(rng.Float64()*s.Width, rng.Float64()*s.Height),
			size: starSize(rng),
		}
	}
	return sf
}

func starSize(rng *rand.Rand) float64 {
	total := 0
	for _, w := range starSizeWeights {
		total += w
	}
	n := rng.Intn(total)
	for i, w := range starSizeWeights {
		if n < w {
			return float64(i + 1)
		}
		n -= w
	}
	return 1
}

// Update drifts the stars. Stars that leave re-enter on the right or top edge.
func (sf *Starfield) Update(ctx *UpdateContext) bool {
	for i := range sf.stars {
		st := &sf.stars[i]
		st.pos = st.pos.Add(StarDrift)
		if st.pos.X < 0 {
			st.pos = vec.New(ctx.Screen.Width, ctx.Rand.Float64()*ctx.Screen.Height)
			st.size = starSize(ctx.Rand)
		} else if st.pos.Y > ctx.Screen.Height {
			st.pos = vec.New(ctx.Rand.Float64()*ctx.Screen.Width, 0)
			st.size = starSize(ctx.Rand)
		}
	}
	return false
}

// Draw renders every star.
func (sf *Starfield) Draw(ctx DrawContext) {
	for _, st := range sf.stars {
		ctx.List.Add(render.SpriteStar, st.pos, 0, st.size/2)
	}
}
