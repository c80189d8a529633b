package render

import "github.com/tomz197/relativity-wars/internal/audio"

// Mode mirrors the session's top-level state for renderers.
type Mode int

const (
	ModeStartMenu Mode = iota
	ModeTransitioning
	ModeActivePlay
	ModeGameOver
)

func (m Mode) String() string {
	switch m {
	case ModeStartMenu:
		return "start_menu"
	case ModeTransitioning:
		return "transitioning"
	case ModeActivePlay:
		return "active_play"
	case ModeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// HUD carries the numbers a renderer prints around the playfield.
type HUD struct {
	Score     int
	Lives     int
	Level     int
	HighScore int

	Shielded    bool
	SpecialAmmo int  // remaining zero-gravity rounds, 0 when inactive
	BoostReady  bool // boost cooldown elapsed

	SoundEffects bool
}

// Frame is everything the simulation emits for one tick.
type Frame struct {
	Mode    Mode
	Width   float64
	Height  float64
	Sprites []Sprite
	HUD     HUD
	Sounds  []audio.Event
	MusicOn bool
}
