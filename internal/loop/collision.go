package loop

import (
	"github.com/tomz197/relativity-wars/internal/audio"
	"github.com/tomz197/relativity-wars/internal/object"
	"github.com/tomz197/relativity-wars/internal/physics"
)

// resolveCollisions applies this frame's hits. Returns true if the game ended.
func (s *Session) resolveCollisions(ctx *object.UpdateContext) bool {
	w := &s.world
	defer func() {
		w.Torpedoes = compactDestroyed(w.Torpedoes)
		w.EnemyTorpedoes = compactDestroyed(w.EnemyTorpedoes)
		w.Powerups = compactDestroyed(w.Powerups)
	}()

	if s.checkFighterHits(ctx) {
		return true
	}
	s.checkHostileHits(ctx)
	s.checkPowerupPickups(ctx)
	return false
}

// checkFighterHits removes every enemy torpedo touching the fighter and applies
// at most one hit, angled by the first torpedo in spawn order.
// Returns true if the fighter ran out of lives.
func (s *Session) checkFighterHits(ctx *object.UpdateContext) bool {
	f := s.world.Fighter
	hit := false
	var angle float64
	for _, t := range s.world.EnemyTorpedoes {
		if t.IsDestroyed() {
			continue
		}
		if physics.CirclesOverlap(t.Pos, object.TorpedoRadius, f.Pos, object.FighterRadius) {
			t.MarkDestroyed()
			if !hit {
				hit = true
				angle = t.Angle
			}
		}
	}

	if !hit || f.Immune() {
		return false
	}
	if f.ConsumeShield(ctx, angle) {
		return false
	}

	s.lives--
	if s.lives < 0 {
		s.endGame(ctx, true)
		return true
	}
	f.Destroy(ctx, angle)
	s.log.Debug().Int("lives", s.lives).Float64("angle", angle).Msg("Fighter destroyed")
	return false
}

// checkHostileHits lets each hostile consume the first live player torpedo it
// touches. Only a hostile that was not already dying scores.
func (s *Session) checkHostileHits(ctx *object.UpdateContext) {
	torpedoes := s.world.Torpedoes
	if len(torpedoes) == 0 {
		return
	}

	s.grid.Clear()
	for i, t := range torpedoes {
		if !t.IsDestroyed() {
			s.grid.Insert(t.Pos, i)
		}
	}

	s.hostiles = s.world.Hostiles(s.hostiles)
	for _, h := range s.hostiles {
		for _, i := range s.grid.Nearby(h.Position()) {
			t := torpedoes[i]
			if t.IsDestroyed() {
				continue
			}
			if !physics.CirclesOverlap(t.Pos, object.TorpedoRadius, h.Position(), h.Radius()) {
				continue
			}
			t.MarkDestroyed()
			if h.Destroy(ctx, t.Angle) {
				s.score++
			}
			break
		}
	}
	clear(s.hostiles)
}

// checkPowerupPickups applies every powerup the fighter touches.
func (s *Session) checkPowerupPickups(ctx *object.UpdateContext) {
	f := s.world.Fighter
	if !f.Alive() {
		return
	}
	for _, p := range s.world.Powerups {
		if p.IsDestroyed() {
			continue
		}
		if physics.CirclesOverlap(p.Pos, object.PowerupRadius, f.Pos, object.FighterRadius) {
			f.ApplyPowerup(p.Kind)
			p.MarkDestroyed()
			ctx.Emit(audio.PowerupPickup)
		}
	}
}
