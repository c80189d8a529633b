package loop

import (
	"math/rand"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomz197/relativity-wars/internal/audio"
	"github.com/tomz197/relativity-wars/internal/input"
	"github.com/tomz197/relativity-wars/internal/level"
	"github.com/tomz197/relativity-wars/internal/object"
	"github.com/tomz197/relativity-wars/internal/physics"
	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/score"
)

// Settings are the per-session knobs a frontend chooses.
type Settings struct {
	Width        float64
	Height       float64
	Seed         int64 // 0 seeds from the wall clock
	SoundEffects bool
	Music        bool
}

// DefaultSettings returns a 1280x720 session with sound on.
func DefaultSettings() Settings {
	return Settings{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		SoundEffects: true,
		Music:        true,
	}
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Sessions are silent by default.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithStore sets where the high score is loaded from and saved to.
func WithStore(store score.Store) Option {
	return func(s *Session) { s.store = store }
}

// Session is one player's game: the mode machine, the world and the score.
// It is not safe for concurrent use; drive it from a single loop.
type Session struct {
	mode   render.Mode
	screen object.Screen
	rng    *rand.Rand
	now    time.Duration
	log    zerolog.Logger
	store  score.Store

	score     int
	lives     int
	level     int
	highScore int

	running      bool
	soundEffects bool
	music        bool

	world      World
	director   director
	grid       *physics.SpatialGrid
	hostiles   []object.Hostile
	transition time.Duration // When the current announcement started
	lastInput  input.Snapshot

	list   render.List
	sounds []audio.Event
}

// NewSession creates a session on the start menu and loads the high score.
func NewSession(settings Settings, opts ...Option) *Session {
	if settings.Width <= 0 || settings.Height <= 0 {
		settings.Width, settings.Height = DefaultWidth, DefaultHeight
	}
	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		mode:         render.ModeStartMenu,
		screen:       object.Screen{Width: settings.Width, Height: settings.Height},
		rng:          rand.New(rand.NewSource(seed)),
		log:          zerolog.Nop(),
		store:        &score.Memory{},
		lives:        level.InitialLives,
		level:        1,
		running:      true,
		soundEffects: settings.SoundEffects,
		music:        settings.Music,
		grid:         physics.NewSpatialGrid(settings.Width, settings.Height, gridCellSize),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.world.Fighter = object.NewFighter()
	s.world.Stars = object.NewStarfield(s.screen, s.rng)

	high, err := s.store.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to load high score, starting from 0")
	}
	s.highScore = high
	s.log.Debug().Int64("seed", seed).Int("highScore", high).Msg("Session created")
	return s
}

// Running reports whether the player has not quit.
func (s *Session) Running() bool { return s.running }

// Mode returns the current top-level mode.
func (s *Session) Mode() render.Mode { return s.mode }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lives returns the lives left. Negative means the game is over.
func (s *Session) Lives() int { return s.lives }

// Level returns the current level number.
func (s *Session) Level() int { return s.level }

// HighScore returns the best score seen by this session's store.
func (s *Session) HighScore() int { return s.highScore }

// Now returns the simulation clock.
func (s *Session) Now() time.Duration { return s.now }

// World exposes the entity collections.
func (s *Session) World() *World { return &s.world }

// Screen returns the playfield size.
func (s *Session) Screen() object.Screen { return s.screen }

// Step advances the session by one tick: input, updates, collisions,
// timers and spawns, then render. The returned frame's Sprites slice is
// reused by the next Step.
func (s *Session) Step(in input.Snapshot) render.Frame {
	s.now += Tick
	s.lastInput = in

	if in.Quit {
		s.stop()
	}

	ctx := s.updateContext(in)
	switch s.mode {
	case render.ModeStartMenu:
		s.updateStartMenu(ctx)
	case render.ModeTransitioning:
		s.updateTransition(ctx)
	case render.ModeActivePlay:
		s.updateActivePlay(ctx)
	case render.ModeGameOver:
		s.updateGameOver()
	}

	s.sounds = s.sounds[:0]
	if s.soundEffects {
		s.sounds = append(s.sounds, ctx.Sounds...)
	}
	return s.frame()
}

func (s *Session) updateContext(in input.Snapshot) *object.UpdateContext {
	f := s.world.Fighter
	return &object.UpdateContext{
		Now:         s.now,
		Input:       in,
		Screen:      s.screen,
		Wells:       s.world.wells,
		Spawner:     &s.world,
		Rand:        s.rng,
		Player:      f.Pos,
		PlayerAlive: f.Alive(),
	}
}

func (s *Session) setMode(m render.Mode) {
	if s.mode == m {
		return
	}
	s.log.Debug().Stringer("from", s.mode).Stringer("to", m).Msg("Mode change")
	s.mode = m
}

// newGame resets score, lives and level and starts the first announcement.
func (s *Session) newGame() {
	s.score = 0
	s.lives = level.InitialLives
	s.level = 1
	s.world.Fighter.Restore(s.now)
	s.enterTransition()
	s.log.Info().Msg("New game")
}

func (s *Session) enterTransition() {
	s.transition = s.now
	s.setMode(render.ModeTransitioning)
}

// endGame leaves play, records the high score and shows the game-over frame.
// died selects whether the tiered game-over sound plays.
func (s *Session) endGame(ctx *object.UpdateContext, died bool) {
	s.leavePlay()
	s.recordHighScore()
	if died {
		ctx.Emit(audio.GameOverFor(s.score))
	}
	s.setMode(render.ModeGameOver)
	s.log.Info().Int("score", s.score).Int("level", s.level).Bool("died", died).Msg("Game over")
}

func (s *Session) recordHighScore() {
	if s.score <= s.highScore {
		return
	}
	s.highScore = s.score
	if err := s.store.Save(s.highScore); err != nil {
		s.log.Warn().Err(err).Int("highScore", s.highScore).Msg("Failed to save high score")
	}
}

func (s *Session) updateGameOver() {
	s.level = 1
	s.setMode(render.ModeStartMenu)
}

// Shutdown ends the session from outside, e.g. when the terminal goes away.
// A game in progress is scored first. It is safe to call more than once.
func (s *Session) Shutdown() {
	s.stop()
}

// stop ends the session. A game in progress is scored first.
func (s *Session) stop() {
	if !s.running {
		return
	}
	s.running = false
	s.recordHighScore()
}

// Sounds returns a copy of the last frame's sound events.
func (s *Session) Sounds() []audio.Event {
	return slices.Clone(s.sounds)
}
