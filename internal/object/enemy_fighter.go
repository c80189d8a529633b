package object

import (
	"time"

	"github.com/tomz197/relativity-wars/internal/audio"
	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// Enemy fighter tuning.
const (
	EnemyAccel        = 0.4
	EnemyDrag         = 0.03
	EnemyRadius       = 20.0
	EnemyFireGrace    = 1500 * time.Millisecond
	EnemyFireInterval = 2 * time.Second
	EnemyTorpedoSpeed = 12.0
	enemyEntrySpeed   = 4.0
	enemyEntryJitter  = 2.0
)

// EnemyFighter chases the player, wraps around the screen edges and fires
// aimed torpedoes. It steers by pursuit only; attractors do not move it.
type EnemyFighter struct {
	Pos vec.Vec2
	Vel vec.Vec2

	born      time.Duration
	lastFired time.Duration
	fired     bool
	dying     bool
	deathTime time.Duration
	angle     float64
}

// NewEnemyFighter creates an enemy fighter on a random edge.
func NewEnemyFighter(ctx *UpdateContext) *EnemyFighter {
	pos, vel := edgeEntry(ctx.Screen, ctx.Rand, enemyEntrySpeed, enemyEntryJitter)
	return NewEnemyFighterAt(pos, vel, ctx.Now)
}

// NewEnemyFighterAt creates an enemy fighter with explicit kinematics.
func NewEnemyFighterAt(pos, vel vec.Vec2, now time.Duration) *EnemyFighter {
	return &EnemyFighter{Pos: pos, Vel: vel, born: now}
}

// Position implements Mover.
func (e *EnemyFighter) Position() vec.Vec2 { return e.Pos }

// Radius implements Mover.
func (e *EnemyFighter) Radius() float64 { return EnemyRadius }

// Alive implements Mover.
func (e *EnemyFighter) Alive() bool { return !e.dying }

// Destroy implements Hostile.
func (e *EnemyFighter) Destroy(ctx *UpdateContext, angle float64) bool {
	if e.dying {
		return false
	}
	e.dying = true
	e.deathTime = ctx.Now
	e.angle = angle
	ctx.Emit(audio.DroneDeath)
	SpawnDebris(e.Pos, 10, ctx)
	return true
}

// Update accelerates toward the player, wraps, and fires when ready.
func (e *EnemyFighter) Update(ctx *UpdateContext) bool {
	if e.dying && ctx.Now-e.deathTime >= DeathLinger {
		return true
	}

	accel := ctx.Player.Sub(e.Pos).Normalize().Scale(EnemyAccel)
	e.Vel = e.Vel.Add(accel).Scale(1 - EnemyDrag)
	e.Pos = ctx.Screen.Wrap(e.Pos.Add(e.Vel))

	if e.dying || !ctx.PlayerAlive || ctx.Now-e.born < EnemyFireGrace {
		return false
	}
	if !e.fired || ctx.Now-e.lastFired >= EnemyFireInterval {
		e.fired = true
		e.lastFired = ctx.Now
		ctx.Spawn(NewTorpedo(e.Pos, AimAngle(e.Pos, ctx.Player), EnemyTorpedoSpeed, true))
		ctx.Emit(audio.TorpedoFired)
	}
	return false
}

// Draw renders the enemy fighter.
func (e *EnemyFighter) Draw(ctx DrawContext) {
	if e.dying {
		ctx.List.AddSprite(render.Sprite{
			ID:       render.SpriteDroneDeath,
			Pos:      e.Pos,
			Rotation: e.angle,
			Opacity:  max(1-float64(ctx.Now-e.deathTime)/float64(DeathLinger), 0),
			Scale:    1,
			Radius:   EnemyRadius,
		})
		return
	}
	ctx.List.Add(render.SpriteEnemyFighter, e.Pos, FacingAngle(e.Vel), EnemyRadius)
}
