package object

import (
	"github.com/tomz197/relativity-wars/internal/physics"
	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// TorpedoSpeed is the launch speed of the fighter's regular torpedoes.
const TorpedoSpeed = 20.0

// ZeroGravityTorpedoSpeed is the launch speed of special ammo.
const ZeroGravityTorpedoSpeed = 30.0

// TorpedoRadius is the collision radius of any torpedo.
const TorpedoRadius = 5.0

// Torpedo is a projectile bent by gravity unless it is zero-gravity ammo.
type Torpedo struct {
	Pos         vec.Vec2
	Vel         vec.Vec2
	Angle       float64 // Degrees, for the sprite
	Hostile     bool    // Fired by drones or enemy fighters
	ZeroGravity bool    // Ignores attractors
	destroyed   bool
}

// NewTorpedo creates a torpedo at pos moving at speed in the direction of angle (degrees).
func NewTorpedo(pos vec.Vec2, angle, speed float64, hostile bool) *Torpedo {
	return &Torpedo{
		Pos:     pos,
		Vel:     vec.FromAngle(angle, speed),
		Angle:   angle,
		Hostile: hostile,
	}
}

// NewZeroGravityTorpedo creates a straight-flying player torpedo.
func NewZeroGravityTorpedo(pos vec.Vec2, angle float64) *Torpedo {
	t := NewTorpedo(pos, angle, ZeroGravityTorpedoSpeed, false)
	t.ZeroGravity = true
	return t
}

// MarkDestroyed marks the torpedo for removal.
func (t *Torpedo) MarkDestroyed() {
	t.destroyed = true
}

// IsDestroyed returns true if the torpedo is marked for destruction.
func (t *Torpedo) IsDestroyed() bool {
	return t.destroyed
}

// Position implements Mover.
func (t *Torpedo) Position() vec.Vec2 { return t.Pos }

// Radius implements Mover.
func (t *Torpedo) Radius() float64 { return TorpedoRadius }

// Alive implements Mover.
func (t *Torpedo) Alive() bool { return !t.destroyed }

// Update applies gravity, moves the torpedo and drops it once it leaves
// the open playfield or touches an attractor.
func (t *Torpedo) Update(ctx *UpdateContext) bool {
	if t.destroyed || !ctx.Screen.ContainsStrict(t.Pos) {
		return true
	}

	if !t.ZeroGravity {
		t.Vel = t.Vel.Add(ctx.Gravity(t.Pos))
	}
	t.Pos = t.Pos.Add(t.Vel)
	t.Angle = FacingAngle(t.Vel)

	if !ctx.Screen.ContainsStrict(t.Pos) {
		return true
	}
	return physics.TouchesWell(t.Pos, TorpedoRadius, ctx.Wells)
}

// Draw renders the torpedo.
func (t *Torpedo) Draw(ctx DrawContext) {
	id := render.SpriteTorpedo
	switch {
	case t.Hostile:
		id = render.SpriteEnemyTorpedo
	case t.ZeroGravity:
		id = render.SpriteZeroGTorpedo
	}
	ctx.List.Add(id, t.Pos, t.Angle, TorpedoRadius)
}
