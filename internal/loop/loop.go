// Package loop provides the game session, its mode machine and the
// terminal frame loop.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/relativity-wars/internal/audio"
	"github.com/tomz197/relativity-wars/internal/draw"
	"github.com/tomz197/relativity-wars/internal/input"
	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// Fallback terminal size when the real one cannot be read.
const (
	fallbackCols = 80
	fallbackRows = 24
)

// Terminal is where a session is played: raw input bytes, ANSI output,
// a size source and an optional audio sink. A positive IdleTimeout ends
// the session after that long without input, warning from IdleWarn on.
type Terminal struct {
	In    *bufio.Reader
	Out   io.Writer
	Size  draw.TermSizeFunc
	Audio audio.Sink

	IdleWarn    time.Duration
	IdleTimeout time.Duration
}

// Run plays a session on t until the player quits or ctx is cancelled.
// It runs the standard Input → Update → Draw cycle at TickRate.
func Run(ctx context.Context, t Terminal, settings Settings, opts ...Option) error {
	if t.Size == nil {
		t.Size = draw.DefaultTermSizeFunc
	}
	if t.Audio == nil {
		t.Audio = audio.Discard{}
	}

	session := NewSession(settings, opts...)
	defer session.Shutdown()
	stream := input.StartStream(t.In)

	cols, rows := termSize(t.Size)
	canvas := draw.NewCanvas(cols, rows, session.screen.Width, session.screen.Height)
	painter := draw.NewPainter(t.Out, canvas)

	draw.EnterScreen(t.Out)
	io.WriteString(t.Out, input.EnableMouse)
	defer func() {
		io.WriteString(t.Out, input.DisableMouse)
		draw.LeaveScreen(t.Out)
	}()

	idle := newIdleWatch(t.IdleWarn, t.IdleTimeout, time.Now())
	music := !settings.Music
	for session.Running() {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		canvas.Resize(termSize(t.Size))
		snap := stream.Read(frameStart, canvas.TerminalToLogical)
		warn, left, kick := idle.observe(snap, frameStart)
		if kick {
			session.log.Info().Dur("idle", t.IdleTimeout).Msg("Disconnecting inactive player")
			return nil
		}

		// ===== UPDATE PHASE =====
		frame := session.Step(snap)

		// ===== OUTPUT PHASE =====
		if frame.MusicOn != music {
			music = frame.MusicOn
			t.Audio.SetMusic(music)
		}
		if len(frame.Sounds) > 0 {
			t.Audio.Play(frame.Sounds)
		}
		labels := MenuLabels(session, frame)
		if warn {
			labels = append(labels, idleLabels(session.screen, left)...)
		}
		if err := painter.Paint(frame, labels); err != nil {
			return fmt.Errorf("paint frame: %w", err)
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed >= Tick {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(Tick - elapsed):
		}
	}
	return nil
}

func termSize(size draw.TermSizeFunc) (int, int) {
	cols, rows, err := size()
	if err != nil || cols <= 0 || rows <= 0 {
		return fallbackCols, fallbackRows
	}
	return cols, rows
}

// MenuLabels places the start menu's text at the button regions.
func MenuLabels(s *Session, f render.Frame) []draw.Label {
	if f.Mode != render.ModeStartMenu && f.Mode != render.ModeGameOver {
		return nil
	}
	onOff := func(on bool) string {
		if on {
			return "on"
		}
		return "off"
	}
	center := s.screen.Center()
	origin := MenuOrigin(s.screen)
	return []draw.Label{
		{Text: "R E L A T I V I T Y   W A R S", Pos: vec.New(center.X, origin.Y+80)},
		{Text: fmt.Sprintf("Last score: %d", s.score), Pos: vec.New(center.X, origin.Y+160)},
		{Text: "[ PLAY ]", Pos: ButtonCenter(s.screen, ButtonPlay)},
		{Text: "Quit", Pos: ButtonCenter(s.screen, ButtonQuit)},
		{Text: "Music " + onOff(f.MusicOn), Pos: ButtonCenter(s.screen, ButtonMusic)},
		{Text: "Effects " + onOff(f.HUD.SoundEffects), Pos: ButtonCenter(s.screen, ButtonEffects)},
		{Text: "WASD/arrows move, click fires, SPACE boost, R reset, ESC menu, Q quit", Pos: vec.New(center.X, origin.Y+menuHeight+40)},
	}
}
