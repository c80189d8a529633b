package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/relativity-wars/internal/physics"
	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// Powerup tuning.
const (
	PowerupLifetime = 10 * time.Second
	PowerupRadius   = 15.0
)

// PowerupKind names the effect a powerup grants.
type PowerupKind string

const (
	PowerupShield          PowerupKind = "shield"
	PowerupZeroGravityAmmo PowerupKind = "zero_gravity_ammo"
)

var powerupKinds = []PowerupKind{PowerupShield, PowerupZeroGravityAmmo}

// RandomPowerupKind picks a kind uniformly.
func RandomPowerupKind(rng *rand.Rand) PowerupKind {
	return powerupKinds[rng.Intn(len(powerupKinds))]
}

// Powerup drifts in from an edge like a drone and expires if not collected.
type Powerup struct {
	Pos  vec.Vec2
	Vel  vec.Vec2
	Kind PowerupKind

	born      time.Duration
	collected bool
}

// NewPowerup creates a powerup of a random kind on a random edge.
func NewPowerup(ctx *UpdateContext) *Powerup {
	pos, vel := edgeEntry(ctx.Screen, ctx.Rand, DroneSpeed, DroneJitter)
	return NewPowerupAt(RandomPowerupKind(ctx.Rand), pos, vel, ctx.Now)
}

// NewPowerupAt creates a powerup with explicit kind and kinematics.
func NewPowerupAt(kind PowerupKind, pos, vel vec.Vec2, now time.Duration) *Powerup {
	return &Powerup{Pos: pos, Vel: vel, Kind: kind, born: now}
}

// Position implements Mover.
func (p *Powerup) Position() vec.Vec2 { return p.Pos }

// Radius implements Mover.
func (p *Powerup) Radius() float64 { return PowerupRadius }

// Alive implements Mover.
func (p *Powerup) Alive() bool { return !p.collected }

// MarkDestroyed marks the powerup as collected.
func (p *Powerup) MarkDestroyed() { p.collected = true }

// IsDestroyed returns true once the powerup has been collected.
func (p *Powerup) IsDestroyed() bool { return p.collected }

// Update moves the powerup under gravity and drag and expires it.
func (p *Powerup) Update(ctx *UpdateContext) bool {
	if p.collected || !ctx.Screen.Contains(p.Pos) {
		return true
	}
	p.Vel = p.Vel.Add(ctx.Gravity(p.Pos)).Scale(1 - DroneDrag)
	p.Pos = p.Pos.Add(p.Vel)

	if !ctx.Screen.Contains(p.Pos) || physics.TouchesWell(p.Pos, PowerupRadius, ctx.Wells) {
		return true
	}
	return ctx.Now-p.born >= PowerupLifetime
}

// Draw renders the powerup.
func (p *Powerup) Draw(ctx DrawContext) {
	id := render.SpritePowerupShield
	if p.Kind == PowerupZeroGravityAmmo {
		id = render.SpritePowerupAmmo
	}
	ctx.List.Add(id, p.Pos, 0, PowerupRadius)
}
