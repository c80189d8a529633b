package physics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/relativity-wars/internal/vec"
)

func TestGravityAtNoWells(t *testing.T) {
	assert.Equal(t, vec.Zero, GravityAt(vec.New(12, 34), nil))
}

func TestGravityAtCoincidentWellContributesNothing(t *testing.T) {
	wells := []Well{{Pos: vec.New(50, 50)}}
	assert.Equal(t, vec.Zero, GravityAt(vec.New(50, 50), wells))
}

func TestGravityAtAxisAlignedAsymmetry(t *testing.T) {
	wells := []Well{{Pos: vec.New(200, 100)}}
	g := GravityAt(vec.New(100, 100), wells)

	pull := GravitationalConstant / math.Pow(100, 1.1)
	assert.InDelta(t, pull, g.X, 1e-12, "pulled toward the well along x")
	assert.InDelta(t, -pull, g.Y, 1e-12, "zero y offset takes the positive sign")
}

func TestGravityAtIgnoresWellSize(t *testing.T) {
	p := vec.New(100, 100)
	pull := GravitationalConstant / math.Pow(300, 1.1)
	for _, r := range []float64{15, 50, 100} {
		g := GravityAt(p, []Well{{Pos: vec.New(400, 100), Radius: r}})
		assert.InDelta(t, pull, g.X, 1e-12, "radius %v", r)
		assert.InDelta(t, -pull, g.Y, 1e-12, "radius %v", r)
	}
	assert.InDelta(t, 0.3392, pull, 1e-4)
}

func TestGravityAtSumsWells(t *testing.T) {
	p := vec.New(0, 0)
	one := GravityAt(p, []Well{{Pos: vec.New(300, 400)}})
	two := GravityAt(p, []Well{{Pos: vec.New(300, 400)}, {Pos: vec.New(300, 400)}})
	assert.InDelta(t, 2*one.X, two.X, 1e-12)
	assert.InDelta(t, 2*one.Y, two.Y, 1e-12)
	assert.Greater(t, one.X, 0.0)
	assert.Greater(t, one.Y, 0.0)
}

func TestGravityAtNeverExceedsCap(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		wells := make([]Well, 1+rng.Intn(8))
		for i := range wells {
			wells[i] = Well{
				Pos:    vec.New(rng.Float64()*1280, rng.Float64()*720),
				Radius: rng.Float64() * 100,
			}
		}
		for i := 0; i < 200; i++ {
			p := vec.New(rng.Float64()*1280, rng.Float64()*720)
			if i%20 == 0 {
				p = wells[0].Pos.Add(vec.New(rng.Float64()*1e-3, 0))
			}
			g := GravityAt(p, wells)
			require.LessOrEqual(t, g.Len(), MaxGravity+1e-9, "seed %d point %v", seed, p)
		}
	}
}

func TestTouchesWell(t *testing.T) {
	wells := []Well{{Pos: vec.New(100, 100), Radius: 25}}
	assert.True(t, TouchesWell(vec.New(120, 100), 6, wells))
	assert.False(t, TouchesWell(vec.New(140, 100), 6, wells))
}
