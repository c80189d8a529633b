package loop

import (
	"time"

	"github.com/tomz197/relativity-wars/internal/audio"
	"github.com/tomz197/relativity-wars/internal/level"
	"github.com/tomz197/relativity-wars/internal/object"
)

// deadline is a repeating timer on the simulation clock.
type deadline struct {
	next  time.Duration
	every time.Duration
	on    bool
}

func (d *deadline) start(now, every time.Duration) {
	d.on = every > 0
	d.every = every
	d.next = now + every
}

// restart rearms a running timer with a new interval counted from now.
func (d *deadline) restart(now, every time.Duration) {
	if !d.on {
		return
	}
	d.start(now, every)
}

func (d *deadline) stop() {
	*d = deadline{}
}

// fire reports whether the timer is due at now and schedules the next firing.
func (d *deadline) fire(now time.Duration) bool {
	if !d.on || now < d.next {
		return false
	}
	d.next += d.every
	if d.next <= now {
		d.next = now + d.every
	}
	return true
}

// director owns the spawn, ramp and level timers of the active level.
type director struct {
	params    level.Params
	rampTicks int

	drones   deadline
	ramp     deadline
	powerups deadline
	enemies  deadline
	levelEnd deadline
}

// start arms every timer for a level beginning at now.
func (d *director) start(p level.Params, now time.Duration) {
	d.params = p
	d.rampTicks = 0
	d.drones.start(now, p.DroneSpawnFreq)
	d.ramp.start(now, level.RampInterval)
	d.powerups.start(now, p.PowerupFreq)
	d.enemies.start(now, p.EnemyFighterFreq)
	d.levelEnd.start(now, p.LevelDuration)
}

// stop disarms every timer so nothing spawns after a mode switch.
func (d *director) stop() {
	d.drones.stop()
	d.ramp.stop()
	d.powerups.stop()
	d.enemies.stop()
	d.levelEnd.stop()
}

// setupLevel builds the attractor field for the current level and arms the timers.
func (s *Session) setupLevel() {
	p := level.For(s.level)
	s.world.Attractors = object.SpawnAttractors(s.screen, p.BlackHoles, p.MassBudget, s.rng)
	s.world.wells = object.Wells(s.world.Attractors, s.world.wells)
	s.world.Fighter.Reset(s.now)
	s.director.start(p, s.now)

	s.log.Info().
		Int("level", p.Level).
		Int("blackHoles", p.BlackHoles).
		Dur("droneFreq", p.DroneSpawnFreq).
		Dur("enemyFreq", p.EnemyFighterFreq).
		Msg("Level started")
}

// runDirector fires due timers. Returns true if the level ended.
func (s *Session) runDirector(ctx *object.UpdateContext) bool {
	d := &s.director
	now := s.now

	if d.levelEnd.fire(now) {
		s.advanceLevel(ctx)
		return true
	}
	if d.ramp.fire(now) {
		d.rampTicks++
		d.drones.restart(now, d.params.RampedDroneFreq(d.rampTicks))
		for _, a := range s.world.Attractors {
			a.Enlarge()
		}
	}
	if d.drones.fire(now) {
		s.world.Spawn(object.NewDrone(ctx))
	}
	if d.powerups.fire(now) {
		s.world.Spawn(object.NewPowerup(ctx))
	}
	if d.enemies.fire(now) {
		s.world.Spawn(object.NewEnemyFighter(ctx))
	}
	s.world.FlushSpawned()
	return false
}

// advanceLevel moves to the next level's announcement, keeping score and lives.
func (s *Session) advanceLevel(ctx *object.UpdateContext) {
	s.level++
	s.leavePlay()
	s.enterTransition()
	ctx.Emit(audio.LevelAnnounced)
	s.log.Debug().Int("level", s.level).Int("score", s.score).Msg("Level complete")
}

// leavePlay cancels pending spawns and clears the playfield.
func (s *Session) leavePlay() {
	s.director.stop()
	s.world.ClearEntities()
}
