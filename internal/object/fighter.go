package object

import (
	"time"

	"github.com/tomz197/relativity-wars/internal/audio"
	"github.com/tomz197/relativity-wars/internal/input"
	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// Fighter tuning.
const (
	FighterAccel  = 1.0
	FighterDrag   = 0.05
	FighterRadius = 20.0

	BoostFactor   = 3.0
	BoostDuration = 500 * time.Millisecond
	BoostCooldown = 3 * time.Second

	DeathDelay    = time.Second
	ResetImmunity = 1500 * time.Millisecond
	ShieldFlash   = 500 * time.Millisecond

	ZeroGravityClip = 10
)

// FighterSpawn is where the fighter starts and respawns.
var FighterSpawn = vec.New(100, 100)

// Direction is one of the eight compass directions the fighter can face.
type Direction int

const (
	Right Direction = iota
	DownRight
	Down
	DownLeft
	Left
	UpLeft
	Up
	UpRight
)

var directions = [...]struct {
	name  string
	angle float64 // Degrees counter-clockwise from right
	unit  vec.Vec2
}{
	Right:     {"right", 0, vec.New(1, 0)},
	DownRight: {"downright", 315, vec.New(1, 1).Normalize()},
	Down:      {"down", 270, vec.New(0, 1)},
	DownLeft:  {"downleft", 225, vec.New(-1, 1).Normalize()},
	Left:      {"left", 180, vec.New(-1, 0)},
	UpLeft:    {"upleft", 135, vec.New(-1, -1).Normalize()},
	Up:        {"up", 90, vec.New(0, -1)},
	UpRight:   {"upright", 45, vec.New(1, -1).Normalize()},
}

// String returns the sprite suffix for d.
func (d Direction) String() string {
	if d < Right || d > UpRight {
		return "right"
	}
	return directions[d].name
}

// Angle returns the sprite rotation for d in degrees.
func (d Direction) Angle() float64 {
	if d < Right || d > UpRight {
		return 0
	}
	return directions[d].angle
}

// Unit returns the unit vector for d (screen coordinates, y down).
func (d Direction) Unit() vec.Vec2 {
	if d < Right || d > UpRight {
		return vec.Zero
	}
	return directions[d].unit
}

// DirectionFromInput maps held keys to a direction. Diagonals win over
// single keys and are checked in the order up+right, right+down, down+left,
// left+up, then up, right, down, left. ok is true whenever any key is held.
func DirectionFromInput(in input.Snapshot) (d Direction, ok bool) {
	ok = in.Up || in.Down || in.Left || in.Right
	switch {
	case in.Up && in.Right:
		return UpRight, ok
	case in.Right && in.Down:
		return DownRight, ok
	case in.Down && in.Left:
		return DownLeft, ok
	case in.Left && in.Up:
		return UpLeft, ok
	case in.Up:
		return Up, ok
	case in.Right:
		return Right, ok
	case in.Down:
		return Down, ok
	case in.Left:
		return Left, ok
	}
	return Right, false
}

// FighterState is the fighter's life cycle state.
type FighterState int

const (
	FighterAlive FighterState = iota
	FighterDestroyed
	FighterResetting
)

func (s FighterState) String() string {
	switch s {
	case FighterAlive:
		return "alive"
	case FighterDestroyed:
		return "destroyed"
	case FighterResetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// Boost tracks the fighter's temporary acceleration boost.
type Boost struct {
	LastUsed time.Duration
	used     bool
}

// Active reports whether the boost multiplier applies at now.
func (b Boost) Active(now time.Duration) bool {
	return b.used && now-b.LastUsed < BoostDuration
}

// Ready reports whether a boost can be started at now.
func (b Boost) Ready(now time.Duration) bool {
	return !b.used || now-b.LastUsed >= BoostCooldown
}

// Ammo tracks special ammunition.
type Ammo struct {
	Special     bool
	RoundsFired int
	ClipSize    int
}

// Remaining returns the special rounds left.
func (a Ammo) Remaining() int {
	if !a.Special {
		return 0
	}
	return a.ClipSize - a.RoundsFired
}

// Fighter is the player-controlled ship.
type Fighter struct {
	Pos    vec.Vec2
	Vel    vec.Vec2
	Facing Direction
	State  FighterState

	Shielded bool
	Boost    Boost
	Ammo     Ammo

	deathTime  time.Duration
	resetTime  time.Duration
	hitAngle   float64 // Impact angle of the last hit, degrees
	shieldDown time.Duration
	shieldHit  bool
}

// NewFighter creates a fighter at the spawn point, facing right.
func NewFighter() *Fighter {
	return &Fighter{Pos: FighterSpawn}
}

// Position implements Mover.
func (f *Fighter) Position() vec.Vec2 { return f.Pos }

// Radius implements Mover.
func (f *Fighter) Radius() float64 { return FighterRadius }

// Alive implements Mover.
func (f *Fighter) Alive() bool { return f.State != FighterDestroyed }

// Immune reports whether projectile hits are ignored: during the reset
// fade-in and while the death animation plays.
func (f *Fighter) Immune() bool {
	return f.State != FighterAlive
}

// Update advances the state machine, steers from input, then applies
// gravity and drag and clamps to the screen.
func (f *Fighter) Update(ctx *UpdateContext) bool {
	now := ctx.Now
	switch f.State {
	case FighterDestroyed:
		if now-f.deathTime >= DeathDelay {
			f.Reset(now)
		}
	case FighterResetting:
		if now-f.resetTime >= ResetImmunity {
			f.State = FighterAlive
		}
	}

	thrust := vec.Zero
	if f.State != FighterDestroyed {
		if ctx.Input.Reset {
			f.Reset(now)
		}
		if ctx.Input.Boost && f.Boost.Ready(now) {
			f.Boost = Boost{LastUsed: now, used: true}
			ctx.Emit(audio.Boost)
		}
		if d, ok := DirectionFromInput(ctx.Input); ok {
			f.Facing = d
			accel := FighterAccel
			if f.Boost.Active(now) {
				accel *= BoostFactor
			}
			thrust = d.Unit().Scale(accel)
		}
	}

	f.Vel = f.Vel.Add(thrust).Add(ctx.Gravity(f.Pos)).Scale(1 - FighterDrag)
	f.move(ctx.Screen)
	return false
}

func (f *Fighter) move(s Screen) {
	f.Pos = f.Pos.Add(f.Vel)
	if f.Pos.X < 0 {
		f.Pos.X = 0
		f.Vel.X = 0
	} else if f.Pos.X > s.Width {
		f.Pos.X = s.Width
		f.Vel.X = 0
	}
	if f.Pos.Y < 0 {
		f.Pos.Y = 0
		f.Vel.Y = 0
	} else if f.Pos.Y > s.Height {
		f.Pos.Y = s.Height
		f.Vel.Y = 0
	}
}

// Fire launches a torpedo toward target. It does nothing while destroyed.
func (f *Fighter) Fire(ctx *UpdateContext, target vec.Vec2) bool {
	if f.State == FighterDestroyed {
		return false
	}
	angle := AimAngle(f.Pos, target)
	var t *Torpedo
	if f.Ammo.Special {
		t = NewZeroGravityTorpedo(f.Pos, angle)
		f.Ammo.RoundsFired++
		if f.Ammo.RoundsFired >= f.Ammo.ClipSize {
			f.Ammo = Ammo{}
		}
	} else {
		t = NewTorpedo(f.Pos, angle, TorpedoSpeed, false)
	}
	ctx.Spawn(t)
	ctx.Emit(audio.TorpedoFired)
	return true
}

// ConsumeShield absorbs a hit. It returns false if there was no shield.
func (f *Fighter) ConsumeShield(ctx *UpdateContext, angle float64) bool {
	if !f.Shielded {
		return false
	}
	f.Shielded = false
	f.shieldHit = true
	f.shieldDown = ctx.Now
	f.hitAngle = angle
	ctx.Emit(audio.ShieldDown)
	return true
}

// Destroy starts the death animation, rotated to the impact angle.
func (f *Fighter) Destroy(ctx *UpdateContext, angle float64) {
	if f.State == FighterDestroyed {
		return
	}
	f.State = FighterDestroyed
	f.deathTime = ctx.Now
	f.hitAngle = angle
	f.Boost = Boost{}
	ctx.Emit(audio.FighterDeath)
	SpawnDebris(f.Pos, 12, ctx)
}

// Reset moves the fighter back to the spawn point and starts the
// fade-in immunity window.
func (f *Fighter) Reset(now time.Duration) {
	f.Pos = FighterSpawn
	f.Vel = vec.Zero
	f.Facing = Right
	f.State = FighterResetting
	f.resetTime = now
}

// Restore returns the fighter to a fresh-game state.
func (f *Fighter) Restore(now time.Duration) {
	*f = Fighter{}
	f.Reset(now)
}

// ApplyPowerup grants the effect of kind.
func (f *Fighter) ApplyPowerup(kind PowerupKind) {
	switch kind {
	case PowerupShield:
		if !f.Shielded {
			f.Shielded = true
		}
	case PowerupZeroGravityAmmo:
		f.Ammo = Ammo{Special: true, ClipSize: ZeroGravityClip}
	}
}

// Draw renders the fighter and its shield.
func (f *Fighter) Draw(ctx DrawContext) {
	if f.State == FighterDestroyed {
		ctx.List.Add(render.SpriteFighterDeath, f.Pos, f.hitAngle, FighterRadius)
		return
	}

	opacity := 1.0
	if f.State == FighterResetting {
		opacity = min(float64(ctx.Now-f.resetTime)/float64(ResetImmunity), 1)
	}
	ctx.List.AddSprite(render.Sprite{
		ID:       render.FighterSprite(f.Facing.String()),
		Pos:      f.Pos,
		Rotation: f.Facing.Angle(),
		Opacity:  opacity,
		Scale:    1,
		Radius:   FighterRadius,
	})

	if f.Shielded {
		ctx.List.Add(render.SpriteShield, f.Pos, 0, FighterRadius+6)
	} else if f.shieldHit && ctx.Now-f.shieldDown < ShieldFlash {
		ctx.List.Add(render.SpriteShieldDown, f.Pos, f.hitAngle, FighterRadius+6)
	}
}
