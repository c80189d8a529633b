package object

import (
	"time"

	"github.com/tomz197/relativity-wars/internal/audio"
	"github.com/tomz197/relativity-wars/internal/physics"
	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// Drone tuning.
const (
	DroneSpeed        = 8.0
	DroneJitter       = 3.0
	DroneDrag         = 0.1
	DroneRadius       = 20.0
	DroneFireInterval = 1500 * time.Millisecond
	DroneBurst        = 8
	DroneTorpedoSpeed = 10.0
	DroneMaxLife      = 10 * time.Second
	DeathLinger       = 500 * time.Millisecond
)

// Drone enters from a screen edge and fires radial bursts until it dies,
// drifts out, or hits an attractor.
type Drone struct {
	Pos vec.Vec2
	Vel vec.Vec2

	born      time.Duration
	lastFired time.Duration
	dying     bool
	deathTime time.Duration
	angle     float64
}

// NewDrone creates a drone on a random edge heading inward.
func NewDrone(ctx *UpdateContext) *Drone {
	pos, vel := edgeEntry(ctx.Screen, ctx.Rand, DroneSpeed, DroneJitter)
	return NewDroneAt(pos, vel, ctx.Now)
}

// NewDroneAt creates a drone with explicit kinematics, born at now.
func NewDroneAt(pos, vel vec.Vec2, now time.Duration) *Drone {
	return &Drone{Pos: pos, Vel: vel, born: now, lastFired: now}
}

// Position implements Mover.
func (d *Drone) Position() vec.Vec2 { return d.Pos }

// Radius implements Mover.
func (d *Drone) Radius() float64 { return DroneRadius }

// Alive implements Mover.
func (d *Drone) Alive() bool { return !d.dying }

// Destroy implements Hostile.
func (d *Drone) Destroy(ctx *UpdateContext, angle float64) bool {
	if d.dying {
		return false
	}
	d.dying = true
	d.deathTime = ctx.Now
	d.angle = angle
	ctx.Emit(audio.DroneDeath)
	SpawnDebris(d.Pos, 8, ctx)
	return true
}

// Update moves the drone under gravity and drag and fires on schedule.
func (d *Drone) Update(ctx *UpdateContext) bool {
	if !ctx.Screen.Contains(d.Pos) {
		return true
	}
	if d.dying && ctx.Now-d.deathTime >= DeathLinger {
		return true
	}

	d.Vel = d.Vel.Add(ctx.Gravity(d.Pos)).Scale(1 - DroneDrag)
	d.Pos = d.Pos.Add(d.Vel)

	if !ctx.Screen.Contains(d.Pos) || physics.TouchesWell(d.Pos, DroneRadius, ctx.Wells) {
		return true
	}
	if ctx.Now-d.born > DroneMaxLife {
		return true
	}

	if !d.dying && ctx.Now-d.lastFired >= DroneFireInterval {
		d.lastFired = ctx.Now
		for i := range DroneBurst {
			ctx.Spawn(NewTorpedo(d.Pos, float64(i)*360/DroneBurst, DroneTorpedoSpeed, true))
		}
		ctx.Emit(audio.TorpedoFired)
	}
	return false
}

// Draw renders the drone or its death animation.
func (d *Drone) Draw(ctx DrawContext) {
	if d.dying {
		ctx.List.AddSprite(render.Sprite{
			ID:       render.SpriteDroneDeath,
			Pos:      d.Pos,
			Rotation: d.angle,
			Opacity:  max(1-float64(ctx.Now-d.deathTime)/float64(DeathLinger), 0),
			Scale:    1,
			Radius:   DroneRadius,
		})
		return
	}
	ctx.List.Add(render.SpriteDrone, d.Pos, FacingAngle(d.Vel), DroneRadius)
}
