package object

import (
	"math"
	"sync"
	"time"

	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived piece of debris. It ignores gravity and collisions.
type Particle struct {
	Pos      vec.Vec2
	Vel      vec.Vec2
	Lifetime time.Duration // Total lifetime
	Drag     float64       // Velocity decay per tick
	born     time.Duration
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel vec.Vec2, lifetime, now time.Duration) *Particle {
	p := particlePool.Get().(*Particle)
	p.Pos = pos
	p.Vel = vel
	p.Lifetime = lifetime
	p.Drag = 0.05
	p.born = now
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnDebris scatters count particles from pos in random directions.
func SpawnDebris(pos vec.Vec2, count int, ctx *UpdateContext) {
	if ctx.Spawner == nil || ctx.Rand == nil {
		return
	}
	for range count {
		angle := ctx.Rand.Float64() * 360
		// 50% to 150% of the base speed
		speed := 3 * (0.5 + ctx.Rand.Float64())
		life := time.Duration(float64(400*time.Millisecond) * (0.5 + ctx.Rand.Float64()*0.5))
		ctx.Spawner.Spawn(NewParticle(pos, vec.FromAngle(angle, speed), life, ctx.Now))
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx *UpdateContext) bool {
	if ctx.Now-p.born >= p.Lifetime {
		return true
	}
	p.Vel = p.Vel.Scale(1 - p.Drag)
	p.Pos = p.Pos.Add(p.Vel)
	return !ctx.Screen.Contains(p.Pos)
}

// Draw renders the particle, fading over its lifetime.
func (p *Particle) Draw(ctx DrawContext) {
	left := 1 - float64(ctx.Now-p.born)/float64(p.Lifetime)
	// Skip faded particles (< 25% lifetime)
	if left < 0.25 {
		return
	}
	ctx.List.AddSprite(render.Sprite{
		ID:       render.SpriteDebris,
		Pos:      p.Pos,
		Rotation: math.Atan2(-p.Vel.Y, p.Vel.X) * 180 / math.Pi,
		Opacity:  left,
		Scale:    1,
		Radius:   2,
	})
}
