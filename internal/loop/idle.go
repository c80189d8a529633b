package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/relativity-wars/internal/draw"
	"github.com/tomz197/relativity-wars/internal/input"
	"github.com/tomz197/relativity-wars/internal/object"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// idleWatch disconnects terminals nobody is playing. It runs on wall-clock
// time since it guards the connection, not the simulation.
type idleWatch struct {
	warnAfter time.Duration
	kickAfter time.Duration
	last      time.Time
	pointer   vec.Vec2
}

func newIdleWatch(warnAfter, kickAfter time.Duration, now time.Time) *idleWatch {
	return &idleWatch{warnAfter: warnAfter, kickAfter: kickAfter, last: now}
}

// observe records any activity in snap. It reports whether the warning is
// showing, how long is left before the kick, and whether to kick now.
func (w *idleWatch) observe(snap input.Snapshot, now time.Time) (warn bool, left time.Duration, kick bool) {
	if w.kickAfter <= 0 {
		return false, 0, false
	}
	if active(snap) || snap.Pointer != w.pointer {
		w.last = now
		w.pointer = snap.Pointer
		return false, w.kickAfter, false
	}

	idle := now.Sub(w.last)
	switch {
	case idle > w.kickAfter:
		return false, 0, true
	case w.warnAfter > 0 && idle > w.warnAfter:
		return true, w.kickAfter - idle, false
	default:
		return false, w.kickAfter - idle, false
	}
}

func active(s input.Snapshot) bool {
	return s.AnyMovement() || len(s.Clicks) > 0 || s.Reset || s.Boost || s.Escape || s.Quit
}

// idleLabels is the inactivity warning shown over the frame.
func idleLabels(s object.Screen, left time.Duration) []draw.Label {
	c := s.Center()
	return []draw.Label{
		{Text: "INACTIVITY WARNING", Pos: vec.New(c.X, c.Y-40)},
		{Text: fmt.Sprintf("You will be disconnected in %d seconds.", int(left.Seconds())+1), Pos: c},
		{Text: "Press any key to continue", Pos: vec.New(c.X, c.Y+40)},
	}
}
