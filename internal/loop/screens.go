package loop

import (
	"github.com/tomz197/relativity-wars/internal/object"
	"github.com/tomz197/relativity-wars/internal/physics"
	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// Button is a clickable start menu region.
type Button int

const (
	ButtonNone Button = iota
	ButtonPlay
	ButtonQuit
	ButtonMusic
	ButtonEffects
)

// Button regions relative to the menu image's top-left corner.
var menuButtons = []struct {
	button Button
	rect   physics.Rect
}{
	{ButtonPlay, physics.Rect{Min: vec.New(98, 281), Max: vec.New(230, 341)}},
	{ButtonQuit, physics.Rect{Min: vec.New(12, 380), Max: vec.New(91, 402)}},
	{ButtonMusic, physics.Rect{Min: vec.New(148, 385), Max: vec.New(159, 396)}},
	{ButtonEffects, physics.Rect{Min: vec.New(256, 385), Max: vec.New(266, 396)}},
}

// MenuOrigin returns the top-left corner of the centered menu image.
func MenuOrigin(s object.Screen) vec.Vec2 {
	return vec.New((s.Width-menuWidth)/2, (s.Height-menuHeight)/2)
}

// ButtonAt returns the menu button under p, or ButtonNone.
// Edges do not count as inside.
func ButtonAt(s object.Screen, p vec.Vec2) Button {
	origin := MenuOrigin(s)
	for _, b := range menuButtons {
		if b.rect.Offset(origin).ContainsStrict(p) {
			return b.button
		}
	}
	return ButtonNone
}

// ButtonCenter returns the middle of a button's region on screen.
func ButtonCenter(s object.Screen, b Button) vec.Vec2 {
	for _, mb := range menuButtons {
		if mb.button == b {
			r := mb.rect.Offset(MenuOrigin(s))
			return r.Min.Add(r.Max).Scale(0.5)
		}
	}
	return vec.Zero
}

// updateStartMenu handles clicks on the start menu.
func (s *Session) updateStartMenu(ctx *object.UpdateContext) {
	for _, click := range ctx.Input.Clicks {
		switch ButtonAt(s.screen, click) {
		case ButtonPlay:
			s.newGame()
			return
		case ButtonQuit:
			s.stop()
			return
		case ButtonMusic:
			s.music = !s.music
			s.log.Debug().Bool("music", s.music).Msg("Music toggled")
		case ButtonEffects:
			s.soundEffects = !s.soundEffects
			s.log.Debug().Bool("effects", s.soundEffects).Msg("Sound effects toggled")
		}
	}
}

// updateTransition plays the level announcement, then starts the level.
func (s *Session) updateTransition(ctx *object.UpdateContext) {
	s.world.Stars.Update(ctx)
	if s.now-s.transition < TransitionDuration {
		return
	}
	s.setupLevel()
	s.setMode(render.ModeActivePlay)
}

// overlayScale grows linearly from overlayStartScale to 1 over the announcement.
func (s *Session) overlayScale() float64 {
	t := float64(s.now-s.transition) / float64(TransitionDuration)
	t = min(max(t, 0), 1)
	return overlayStartScale + (1-overlayStartScale)*t
}

// frame builds the render output in draw order: stars, attractors, fighter,
// crosshair, torpedoes, enemy torpedoes, drones, enemy fighters, powerups,
// debris, then the announcement overlay.
func (s *Session) frame() render.Frame {
	s.list.Reset()
	ctx := object.DrawContext{List: &s.list, Now: s.now}
	w := &s.world
	center := s.screen.Center()

	switch s.mode {
	case render.ModeStartMenu, render.ModeGameOver:
		s.list.Add(render.SpriteStartScreen, center, 0, 0)

	case render.ModeTransitioning:
		w.Stars.Draw(ctx)
		s.list.AddSprite(render.Sprite{
			ID:      render.LevelOverlay(s.level),
			Pos:     center,
			Opacity: 1,
			Scale:   s.overlayScale(),
		})

	case render.ModeActivePlay:
		w.Stars.Draw(ctx)
		drawAll(ctx, w.Attractors)
		w.Fighter.Draw(ctx)
		s.list.Add(render.SpriteCrosshair, s.lastInput.Pointer, 0, 8)
		drawAll(ctx, w.Torpedoes)
		drawAll(ctx, w.EnemyTorpedoes)
		drawAll(ctx, w.Drones)
		drawAll(ctx, w.Enemies)
		drawAll(ctx, w.Powerups)
		drawAll(ctx, w.Particles)
	}

	f := w.Fighter
	return render.Frame{
		Mode:    s.mode,
		Width:   s.screen.Width,
		Height:  s.screen.Height,
		Sprites: s.list.Sprites,
		HUD: render.HUD{
			Score:        s.score,
			Lives:        s.lives,
			Level:        s.level,
			HighScore:    s.highScore,
			Shielded:     f.Shielded,
			SpecialAmmo:  f.Ammo.Remaining(),
			BoostReady:   f.Boost.Ready(s.now),
			SoundEffects: s.soundEffects,
		},
		Sounds:  s.sounds,
		MusicOn: s.music,
	}
}

func drawAll[T object.Object](ctx object.DrawContext, objs []T) {
	for _, obj := range objs {
		obj.Draw(ctx)
	}
}
