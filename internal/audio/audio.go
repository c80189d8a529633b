// Package audio defines the named sound-effect events the simulation emits
// and the sink they are delivered to.
package audio

// Event names a sound effect trigger.
type Event string

const (
	TorpedoFired   Event = "torpedo_fired"
	FighterDeath   Event = "fighter_death"
	DroneDeath     Event = "drone_death"
	ShieldDown     Event = "shield_down"
	PowerupPickup  Event = "powerup"
	Boost          Event = "boost"
	GameOver       Event = "game_over"
	GameOverTier1  Event = "game_over_tier1"
	GameOverTier2  Event = "game_over_tier2"
	GameOverTier3  Event = "game_over_tier3"
	LevelAnnounced Event = "level_announced"
)

// GameOverFor picks the game-over jingle for a final score.
func GameOverFor(score int) Event {
	switch {
	case score >= 50:
		return GameOverTier3
	case score >= 20:
		return GameOverTier2
	case score >= 10:
		return GameOverTier1
	default:
		return GameOver
	}
}

// Sink receives sound events. Implementations must not block the frame loop.
type Sink interface {
	Play(events []Event)
	SetMusic(on bool)
}

// Discard is a Sink that ignores everything.
type Discard struct{}

func (Discard) Play([]Event) {}
func (Discard) SetMusic(bool) {}
