package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/relativity-wars/internal/audio"
	"github.com/tomz197/relativity-wars/internal/input"
	"github.com/tomz197/relativity-wars/internal/level"
	"github.com/tomz197/relativity-wars/internal/object"
	"github.com/tomz197/relativity-wars/internal/physics"
	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/score"
	"github.com/tomz197/relativity-wars/internal/vec"
)

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	settings := DefaultSettings()
	settings.Seed = 1
	return NewSession(settings, opts...)
}

func click(p vec.Vec2) input.Snapshot {
	return input.Snapshot{Pointer: p, Clicks: []vec.Vec2{p}}
}

// startPlay clicks play and steps through the level announcement.
func startPlay(t *testing.T, s *Session) {
	t.Helper()
	s.Step(click(ButtonCenter(s.screen, ButtonPlay)))
	require.Equal(t, render.ModeTransitioning, s.Mode())
	for range 2 * TickRate {
		if s.Step(input.Snapshot{}).Mode == render.ModeActivePlay {
			return
		}
	}
	t.Fatal("announcement never finished")
}

// quietField removes attractors and timers so tests control every entity.
func quietField(s *Session) *object.Fighter {
	s.director.stop()
	s.world.Attractors = nil
	s.world.wells = nil
	s.world.ClearEntities()
	f := s.world.Fighter
	f.State = object.FighterAlive
	return f
}

func hostileTorpedoAt(p vec.Vec2, angle float64) *object.Torpedo {
	return object.NewTorpedo(p, angle, 1, true)
}

func TestPlayStartsFirstLevel(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, render.ModeStartMenu, s.Mode())

	startPlay(t, s)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, level.InitialLives, s.Lives())
	assert.Equal(t, 1, s.Level())
	assert.Len(t, s.World().Attractors, 2)
	assert.Equal(t, object.FighterResetting, s.World().Fighter.State, "level start grants fade-in immunity")
}

func TestTransitionOverlay(t *testing.T) {
	s := newTestSession(t)
	f := s.Step(click(ButtonCenter(s.screen, ButtonPlay)))
	require.Equal(t, render.ModeTransitioning, f.Mode)

	overlay := f.Sprites[len(f.Sprites)-1]
	assert.Equal(t, render.SpriteID("level_1"), overlay.ID)
	assert.InDelta(t, overlayStartScale, overlay.Scale, 1e-9)

	for range TickRate / 2 {
		f = s.Step(input.Snapshot{})
	}
	overlay = f.Sprites[len(f.Sprites)-1]
	assert.Greater(t, overlay.Scale, overlayStartScale)
	assert.Less(t, overlay.Scale, 1.0)
}

func TestFighterPulledByAttractor(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	f := quietField(s)
	f.Pos = vec.New(100, 100)
	f.Vel = vec.Zero

	a := object.NewAttractor(vec.New(200, 100), 100, s.rng)
	s.world.Attractors = []*object.Attractor{a}
	s.Step(input.Snapshot{})

	// The attractor moves first, so the fighter feels it at its new position.
	want := physics.GravityAt(vec.New(100, 100), []physics.Well{a.Well()}).Scale(1 - object.FighterDrag)
	assert.Equal(t, want, f.Vel)
	assert.Greater(t, f.Vel.X, 0.0)
	assert.Greater(t, f.Pos.X, 100.0)
}

func TestShieldAbsorbsHit(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	f := quietField(s)
	f.Shielded = true
	s.world.EnemyTorpedoes = append(s.world.EnemyTorpedoes, hostileTorpedoAt(f.Pos, 30))

	frame := s.Step(input.Snapshot{})
	assert.False(t, f.Shielded)
	assert.Equal(t, level.InitialLives, s.Lives())
	assert.Equal(t, object.FighterAlive, f.State)
	assert.Contains(t, frame.Sounds, audio.ShieldDown)
	assert.Empty(t, s.world.EnemyTorpedoes)
}

func TestOneLifePerFrame(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	f := quietField(s)
	for _, angle := range []float64{10, 20, 30} {
		s.world.EnemyTorpedoes = append(s.world.EnemyTorpedoes, hostileTorpedoAt(f.Pos, angle))
	}

	frame := s.Step(input.Snapshot{})
	assert.Equal(t, level.InitialLives-1, s.Lives())
	assert.Equal(t, object.FighterDestroyed, f.State)
	assert.Empty(t, s.world.EnemyTorpedoes, "every overlapping torpedo is removed")
	assert.Contains(t, frame.Sounds, audio.FighterDeath)

	var death render.Sprite
	for _, sp := range frame.Sprites {
		if sp.ID == render.SpriteFighterDeath {
			death = sp
		}
	}
	assert.InDelta(t, 10, death.Rotation, 1e-9, "first hit sets the impact angle")
}

func TestImmuneFighterIgnoresHits(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	f := quietField(s)
	f.Reset(s.Now())
	s.world.EnemyTorpedoes = append(s.world.EnemyTorpedoes, hostileTorpedoAt(f.Pos, 0))

	s.Step(input.Snapshot{})
	assert.Equal(t, level.InitialLives, s.Lives())
	assert.Equal(t, object.FighterResetting, f.State)
	assert.Empty(t, s.world.EnemyTorpedoes)
}

func TestHostileScoresOnce(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	quietField(s)

	pos := vec.New(600, 300)
	s.world.Drones = append(s.world.Drones, object.NewDroneAt(pos, vec.Zero, s.Now()))
	s.world.Torpedoes = append(s.world.Torpedoes,
		object.NewTorpedo(pos, 0, 0, false),
		object.NewTorpedo(pos, 0, 0, false),
	)

	frame := s.Step(input.Snapshot{})
	assert.Equal(t, 1, s.Score())
	assert.Len(t, s.world.Torpedoes, 1, "a hit consumes exactly one torpedo")
	assert.Contains(t, frame.Sounds, audio.DroneDeath)

	s.Step(input.Snapshot{})
	assert.Equal(t, 1, s.Score(), "a dying drone does not score again")
	assert.Empty(t, s.world.Torpedoes)
}

func TestEnemyFighterScores(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	quietField(s)

	pos := vec.New(900, 500)
	s.world.Enemies = append(s.world.Enemies, object.NewEnemyFighterAt(pos, vec.Zero, s.Now()))
	s.world.Torpedoes = append(s.world.Torpedoes, object.NewTorpedo(pos, 0, 0, false))

	s.Step(input.Snapshot{})
	assert.Equal(t, 1, s.Score())
	assert.False(t, s.world.Enemies[0].Alive())
}

func TestGameOverRecordsHighScore(t *testing.T) {
	store := &score.Memory{}
	require.NoError(t, store.Save(5))
	s := newTestSession(t, WithStore(store))
	assert.Equal(t, 5, s.HighScore())

	startPlay(t, s)
	f := quietField(s)
	s.lives = 0
	s.score = 12
	s.world.EnemyTorpedoes = append(s.world.EnemyTorpedoes, hostileTorpedoAt(f.Pos, 0))

	frame := s.Step(input.Snapshot{})
	assert.Equal(t, -1, s.Lives())
	assert.Equal(t, render.ModeGameOver, frame.Mode)
	assert.Equal(t, 12, s.HighScore())
	assert.Equal(t, []audio.Event{audio.GameOverTier1}, frame.Sounds)

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 12, saved)

	frame = s.Step(input.Snapshot{})
	assert.Equal(t, render.ModeStartMenu, frame.Mode)
	assert.Equal(t, 1, s.Level())
}

func TestLowScoreKeepsHighScore(t *testing.T) {
	store := &score.Memory{}
	require.NoError(t, store.Save(30))
	s := newTestSession(t, WithStore(store))
	startPlay(t, s)
	f := quietField(s)
	s.lives = 0
	s.score = 3
	s.world.EnemyTorpedoes = append(s.world.EnemyTorpedoes, hostileTorpedoAt(f.Pos, 0))

	frame := s.Step(input.Snapshot{})
	assert.Equal(t, 30, s.HighScore())
	assert.Equal(t, []audio.Event{audio.GameOver}, frame.Sounds)
}

func TestEscapeEndsGameWithoutDeath(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)

	frame := s.Step(input.Snapshot{Escape: true})
	assert.Equal(t, render.ModeGameOver, frame.Mode)
	assert.Empty(t, frame.Sounds)
	assert.Equal(t, level.InitialLives, s.Lives())

	frame = s.Step(input.Snapshot{})
	assert.Equal(t, render.ModeStartMenu, frame.Mode)
}

func TestLeavingPlayCancelsSpawns(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	s.Step(input.Snapshot{Escape: true})

	for range 20 * TickRate {
		s.Step(input.Snapshot{})
	}
	w := s.World()
	assert.Empty(t, w.Drones)
	assert.Empty(t, w.Powerups)
	assert.Empty(t, w.EnemyTorpedoes)
	assert.False(t, s.director.drones.on)
	assert.False(t, s.director.levelEnd.on)
}

func TestDronesSpawnOnSchedule(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)

	spawned := 0
	for range level.For(1).DroneSpawnFreq/Tick + 1 {
		before := len(s.world.Drones)
		s.Step(input.Snapshot{})
		spawned += max(len(s.world.Drones)-before, 0)
	}
	assert.Equal(t, 1, spawned)
}

func TestRampRestartsDroneCountdown(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	p := level.For(1)

	var rampAt time.Duration
	for range level.RampInterval/Tick + 1 {
		s.Step(input.Snapshot{})
		if s.director.rampTicks == 1 {
			rampAt = s.Now()
			break
		}
	}
	require.Equal(t, 1, s.director.rampTicks)
	every := p.RampedDroneFreq(1)
	assert.Equal(t, every, s.director.drones.every)
	assert.Equal(t, rampAt+every, s.director.drones.next)

	s.world.ClearEntities()
	spawnedAt := time.Duration(-1)
	for range every/Tick + 1 {
		before := len(s.world.Drones)
		s.Step(input.Snapshot{})
		if len(s.world.Drones) > before {
			spawnedAt = s.Now()
			break
		}
	}
	assert.GreaterOrEqual(t, spawnedAt, rampAt+every, "first drone after the ramp waits a full new interval")
	assert.Less(t, spawnedAt, rampAt+every+Tick)
}

func TestDeadlineRestart(t *testing.T) {
	var d deadline
	d.start(0, 2*time.Second)
	d.restart(3*time.Second, 1600*time.Millisecond)
	assert.False(t, d.fire(4*time.Second))
	assert.True(t, d.fire(4600*time.Millisecond))

	d.stop()
	d.restart(time.Second, time.Second)
	assert.False(t, d.on, "a stopped timer stays stopped")
}

func TestLevelAdvance(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	s.score = 4
	s.lives = 2
	s.world.Drones = append(s.world.Drones, object.NewDroneAt(vec.New(600, 300), vec.Zero, s.Now()))
	s.director.levelEnd.next = s.Now() + Tick

	frame := s.Step(input.Snapshot{})
	require.Equal(t, render.ModeTransitioning, frame.Mode)
	assert.Equal(t, 2, s.Level())
	assert.Empty(t, s.world.Drones)
	assert.Contains(t, frame.Sounds, audio.LevelAnnounced)

	for range 2 * TickRate {
		if s.Step(input.Snapshot{}).Mode == render.ModeActivePlay {
			break
		}
	}
	assert.Equal(t, render.ModeActivePlay, s.Mode())
	assert.Len(t, s.world.Attractors, 3)
	assert.Equal(t, 4, s.Score())
	assert.Equal(t, 2, s.Lives())
}

func TestRampEnlargesAttractors(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	before := make([]float64, len(s.world.Attractors))
	for i, a := range s.world.Attractors {
		before[i] = a.Size
	}
	for range level.RampInterval/Tick + 1 {
		s.Step(input.Snapshot{})
	}
	require.Equal(t, render.ModeActivePlay, s.Mode())
	for i, a := range s.world.Attractors {
		assert.Equal(t, min(before[i]+object.AttractorGrowth, object.AttractorMaxSize), a.Size)
	}
	assert.Equal(t, 1, s.director.rampTicks)
}

func TestFiringAndBoundsRemoval(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	f := quietField(s)

	frame := s.Step(click(vec.New(0, f.Pos.Y)))
	assert.Contains(t, frame.Sounds, audio.TorpedoFired)
	require.Len(t, s.world.Torpedoes, 1)

	for range 10 {
		s.Step(input.Snapshot{})
	}
	assert.Empty(t, s.world.Torpedoes, "torpedo left the playfield")
}

func TestPowerupPickup(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	f := quietField(s)
	s.world.Powerups = append(s.world.Powerups,
		object.NewPowerupAt(object.PowerupZeroGravityAmmo, f.Pos, vec.Zero, s.Now()))

	frame := s.Step(input.Snapshot{})
	assert.Empty(t, s.world.Powerups)
	assert.True(t, f.Ammo.Special)
	assert.Equal(t, object.ZeroGravityClip, frame.HUD.SpecialAmmo)
	assert.Contains(t, frame.Sounds, audio.PowerupPickup)
}

func TestMenuToggles(t *testing.T) {
	s := newTestSession(t)

	frame := s.Step(click(ButtonCenter(s.screen, ButtonMusic)))
	assert.False(t, frame.MusicOn)
	frame = s.Step(click(ButtonCenter(s.screen, ButtonEffects)))
	assert.False(t, frame.HUD.SoundEffects)

	startPlay(t, s)
	quietField(s)
	frame = s.Step(click(vec.New(600, 600)))
	assert.Len(t, s.world.Torpedoes, 1)
	assert.Empty(t, frame.Sounds, "effects are muted")
}

func TestQuitButton(t *testing.T) {
	s := newTestSession(t)
	s.Step(click(ButtonCenter(s.screen, ButtonQuit)))
	assert.False(t, s.Running())
}

func TestButtonEdgesAreOutside(t *testing.T) {
	screen := object.Screen{Width: DefaultWidth, Height: DefaultHeight}
	origin := MenuOrigin(screen)
	assert.Equal(t, vec.New(465, 120), origin)
	assert.Equal(t, ButtonPlay, ButtonAt(screen, origin.Add(vec.New(99, 282))))
	assert.Equal(t, ButtonNone, ButtonAt(screen, origin.Add(vec.New(98, 300))))
	assert.Equal(t, ButtonNone, ButtonAt(screen, origin.Add(vec.New(230, 300))))
	assert.Equal(t, ButtonNone, ButtonAt(screen, vec.Zero))
}

func TestDrawOrder(t *testing.T) {
	s := newTestSession(t)
	startPlay(t, s)
	quietField(s)
	s.world.Attractors = []*object.Attractor{object.NewAttractor(vec.New(640, 360), 60, s.rng)}
	s.world.Drones = append(s.world.Drones, object.NewDroneAt(vec.New(900, 500), vec.Zero, s.Now()))

	frame := s.Step(input.Snapshot{Pointer: vec.New(300, 300)})
	var order []render.SpriteID
	for _, sp := range frame.Sprites {
		if sp.ID == render.SpriteStar {
			continue
		}
		order = append(order, sp.ID)
	}
	assert.Equal(t, []render.SpriteID{
		render.SpriteBlackHole,
		render.FighterSprite("right"),
		render.SpriteCrosshair,
		render.SpriteDrone,
	}, order)
	assert.Equal(t, render.SpriteStar, frame.Sprites[0].ID)
}

func TestDeadlineCatchesUp(t *testing.T) {
	var d deadline
	d.start(0, 100)
	assert.False(t, d.fire(99))
	assert.True(t, d.fire(100))
	assert.False(t, d.fire(150))
	assert.True(t, d.fire(1000))
	assert.False(t, d.fire(1050), "missed periods are not replayed")

	d.start(0, 0)
	assert.False(t, d.fire(1000), "zero interval disables the timer")
}

func TestShutdownSavesGameInProgress(t *testing.T) {
	store := &score.Memory{}
	s := newTestSession(t, WithStore(store))
	startPlay(t, s)
	s.score = 7

	s.Shutdown()
	assert.False(t, s.Running())
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	s.score = 9
	s.Shutdown()
	got, _ = store.Load()
	assert.Equal(t, 7, got, "only the first shutdown records")
}
