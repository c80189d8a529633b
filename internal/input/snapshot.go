// Package input defines the per-frame input snapshot the simulation consumes
// and a terminal byte-stream reader that produces it.
package input

import "github.com/tomz197/relativity-wars/internal/vec"

// Snapshot is the input state for one frame. Held keys are level-triggered;
// Clicks and the key-down flags are edge-triggered events since the last frame.
type Snapshot struct {
	Up, Down, Left, Right bool

	Pointer vec.Vec2
	Clicks  []vec.Vec2 // pointer-button-down positions, oldest first

	Reset  bool
	Boost  bool
	Escape bool
	Quit   bool
}

// AnyMovement reports whether any directional key is held.
func (s Snapshot) AnyMovement() bool {
	return s.Up || s.Down || s.Left || s.Right
}
