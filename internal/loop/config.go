package loop

import "time"

// Game configuration constants.
// All tunable session parameters are centralized here for easy adjustment.

// Timing
const (
	TickRate = 60
	Tick     = time.Second / TickRate
)

// Screen
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Level announcement
const (
	TransitionDuration = 1500 * time.Millisecond
	overlayStartScale  = 0.2
)

// Collision broad phase
const (
	gridCellSize = 64.0 // >= hostile radius + torpedo radius
)

// Start menu layout, relative to the centered 350x480 menu image.
const (
	menuWidth  = 350
	menuHeight = 480
)
