// Package object implements the simulated entities: attractors, torpedoes,
// the player's fighter, hostiles, powerups and decorative particles.
package object

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/relativity-wars/internal/audio"
	"github.com/tomz197/relativity-wars/internal/input"
	"github.com/tomz197/relativity-wars/internal/physics"
	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
// Now is the simulation clock and Wells are the attractors as of this frame.
type UpdateContext struct {
	Now     time.Duration
	Input   input.Snapshot
	Screen  Screen
	Wells   []physics.Well
	Spawner Spawner
	Rand    *rand.Rand

	// Player is the fighter position, for pursuit and aiming.
	Player      vec.Vec2
	PlayerAlive bool

	Sounds []audio.Event
}

// Emit queues a sound effect for this frame.
func (ctx *UpdateContext) Emit(ev audio.Event) {
	ctx.Sounds = append(ctx.Sounds, ev)
}

// Gravity returns the field at p.
func (ctx *UpdateContext) Gravity(p vec.Vec2) vec.Vec2 {
	return physics.GravityAt(p, ctx.Wells)
}

// Spawn hands obj to the spawner, if any.
func (ctx *UpdateContext) Spawn(obj Object) {
	if ctx.Spawner != nil {
		ctx.Spawner.Spawn(obj)
	}
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	List *render.List
	Now  time.Duration
}

// Screen is the playfield size in logical pixels.
type Screen struct {
	Width  float64
	Height float64
}

// Center returns the middle of the playfield.
func (s Screen) Center() vec.Vec2 {
	return vec.New(s.Width/2, s.Height/2)
}

// Contains reports whether p lies in [0, W] x [0, H].
func (s Screen) Contains(p vec.Vec2) bool {
	return physics.InBounds(p, s.Width, s.Height)
}

// ContainsStrict reports whether p lies in (0, W) x (0, H).
func (s Screen) ContainsStrict(p vec.Vec2) bool {
	return physics.InBoundsStrict(p, s.Width, s.Height)
}

// Wrap wraps p around the playfield edges (Asteroids-style).
func (s Screen) Wrap(p vec.Vec2) vec.Vec2 {
	if s.Width > 0 {
		p.X = math.Mod(p.X, s.Width)
		if p.X < 0 {
			p.X += s.Width
		}
	}
	if s.Height > 0 {
		p.Y = math.Mod(p.Y, s.Height)
		if p.Y < 0 {
			p.Y += s.Height
		}
	}
	return p
}

// MirrorWrap moves a point that crossed an edge to the opposite edge and
// mirrors its other coordinate (W-x or H-y).
func (s Screen) MirrorWrap(p vec.Vec2) vec.Vec2 {
	if p.X < 0 {
		p.X = s.Width
		p.Y = s.Height - p.Y
	} else if p.X > s.Width {
		p.X = 0
		p.Y = s.Height - p.Y
	}
	if p.Y < 0 {
		p.Y = s.Height
		p.X = s.Width - p.X
	} else if p.Y > s.Height {
		p.Y = 0
		p.X = s.Width - p.X
	}
	return p
}

// Object is an updatable and drawable game entity.
type Object interface {
	// Update advances the object one tick. Returns true if the object should be removed.
	Update(ctx *UpdateContext) (remove bool)

	// Draw appends the object's sprites to the draw list.
	Draw(ctx DrawContext)
}

// Mover is an object with a position and a collision circle.
type Mover interface {
	Object
	Position() vec.Vec2
	Radius() float64
	Alive() bool
}

// Hostile is an enemy the player's torpedoes can kill.
type Hostile interface {
	Mover
	// Destroy starts the death animation. It returns false if the hostile was already dying.
	Destroy(ctx *UpdateContext, angle float64) bool
}

// Destructible is implemented by objects that can be marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// FacingAngle returns the sprite angle in degrees for a velocity:
// atan(-vy/vx), plus 180 when vx < 0, and 90 when vx == 0.
func FacingAngle(v vec.Vec2) float64 {
	angle := 90.0
	if v.X != 0 {
		angle = math.Atan(-v.Y/v.X) * 180 / math.Pi
	}
	if v.X < 0 {
		angle += 180
	}
	return angle
}

// AimAngle returns the angle in degrees from from to target.
// A target straight above or below gives 90 or 270.
func AimAngle(from, target vec.Vec2) float64 {
	dx := target.X - from.X
	dy := from.Y - target.Y
	if dx == 0 {
		if dy >= 0 {
			return 90
		}
		return 270
	}
	angle := math.Atan(dy/dx) * 180 / math.Pi
	if dx < 0 {
		angle += 180
	}
	return angle
}

// edgeEntry picks a random point on one of the four edges and a velocity
// pointing into the playfield with a random perpendicular jitter.
func edgeEntry(s Screen, rng *rand.Rand, speed, jitter float64) (pos, vel vec.Vec2) {
	side := func() float64 {
		if rng.Intn(2) == 0 {
			return -jitter
		}
		return jitter
	}
	if rng.Intn(2) == 0 {
		x := 0.0
		if rng.Intn(2) == 1 {
			x = s.Width
		}
		pos = vec.New(x, rng.Float64()*s.Height)
		inward := speed
		if x != 0 {
			inward = -speed
		}
		return pos, vec.New(inward, side())
	}
	y := 0.0
	if rng.Intn(2) == 1 {
		y = s.Height
	}
	pos = vec.New(rng.Float64()*s.Width, y)
	inward := speed
	if y != 0 {
		inward = -speed
	}
	return pos, vec.New(side(), inward)
}
