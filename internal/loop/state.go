package loop

import (
	"github.com/tomz197/relativity-wars/internal/object"
	"github.com/tomz197/relativity-wars/internal/physics"
)

// World holds the entity collections of one session, one typed container per kind.
type World struct {
	Fighter        *object.Fighter
	Attractors     []*object.Attractor
	Torpedoes      []*object.Torpedo // Fired by the player
	EnemyTorpedoes []*object.Torpedo
	Drones         []*object.Drone
	Enemies        []*object.EnemyFighter
	Powerups       []*object.Powerup
	Particles      []*object.Particle
	Stars          *object.Starfield

	wells   []physics.Well
	toSpawn []object.Object // Objects to add after current update cycle
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned moves all queued objects into their containers and clears the queue.
// Queue order is kept, so collision tie-breaks follow spawn order.
func (w *World) FlushSpawned() {
	for _, obj := range w.toSpawn {
		switch o := obj.(type) {
		case *object.Torpedo:
			if o.Hostile {
				w.EnemyTorpedoes = append(w.EnemyTorpedoes, o)
			} else {
				w.Torpedoes = append(w.Torpedoes, o)
			}
		case *object.Drone:
			w.Drones = append(w.Drones, o)
		case *object.EnemyFighter:
			w.Enemies = append(w.Enemies, o)
		case *object.Powerup:
			w.Powerups = append(w.Powerups, o)
		case *object.Particle:
			w.Particles = append(w.Particles, o)
		}
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// ClearEntities drops every hostile, projectile, powerup and particle.
// Attractors, the fighter and the starfield are kept.
func (w *World) ClearEntities() {
	for _, p := range w.Particles {
		p.Release()
	}
	w.Torpedoes = clearSlice(w.Torpedoes)
	w.EnemyTorpedoes = clearSlice(w.EnemyTorpedoes)
	w.Drones = clearSlice(w.Drones)
	w.Enemies = clearSlice(w.Enemies)
	w.Powerups = clearSlice(w.Powerups)
	w.Particles = clearSlice(w.Particles)
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// Hostiles returns the entities player torpedoes can kill, drones first.
func (w *World) Hostiles(dst []object.Hostile) []object.Hostile {
	dst = dst[:0]
	for _, d := range w.Drones {
		dst = append(dst, d)
	}
	for _, e := range w.Enemies {
		dst = append(dst, e)
	}
	return dst
}

// updateAll updates objs and removes any that request removal.
// Removed pooled objects are released.
func updateAll[T object.Object](ctx *object.UpdateContext, objs []T) []T {
	kept := objs[:0] // reuse backing array
	for _, obj := range objs {
		if obj.Update(ctx) {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(objs[len(kept):])
	return kept
}

// compactDestroyed drops objects marked for destruction.
func compactDestroyed[T object.Destructible](objs []T) []T {
	kept := objs[:0]
	for _, obj := range objs {
		if !obj.IsDestroyed() {
			kept = append(kept, obj)
		}
	}
	clear(objs[len(kept):])
	return kept
}

func clearSlice[T any](s []T) []T {
	clear(s)
	return s[:0]
}
