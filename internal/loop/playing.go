package loop

import (
	"github.com/tomz197/relativity-wars/internal/object"
)

// updateActivePlay runs one frame of play: input, entity updates,
// collisions, then timers and spawns.
func (s *Session) updateActivePlay(ctx *object.UpdateContext) {
	if ctx.Input.Escape {
		s.endGame(ctx, false)
		return
	}

	w := &s.world
	for _, click := range ctx.Input.Clicks {
		w.Fighter.Fire(ctx, click)
	}

	updateObjects(ctx, w)
	if s.resolveCollisions(ctx) {
		return
	}
	s.runDirector(ctx)
}

// updateObjects updates all entities and removes any that request removal.
// Attractors move first so every other entity sees this frame's field.
func updateObjects(ctx *object.UpdateContext, w *World) {
	w.Attractors = updateAll(ctx, w.Attractors)
	w.wells = object.Wells(w.Attractors, w.wells)
	ctx.Wells = w.wells

	w.Stars.Update(ctx)
	w.Fighter.Update(ctx)
	ctx.Player = w.Fighter.Pos
	ctx.PlayerAlive = w.Fighter.Alive()

	w.Torpedoes = updateAll(ctx, w.Torpedoes)
	w.EnemyTorpedoes = updateAll(ctx, w.EnemyTorpedoes)
	w.Drones = updateAll(ctx, w.Drones)
	w.Enemies = updateAll(ctx, w.Enemies)
	w.Powerups = updateAll(ctx, w.Powerups)
	w.Particles = updateAll(ctx, w.Particles)

	// Add any newly spawned objects
	w.FlushSpawned()
}
