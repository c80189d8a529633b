package draw

import (
	"fmt"
	"io"
	"strings"

	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// Label is a piece of text anchored to a logical point.
type Label struct {
	Text string
	Pos  vec.Vec2
}

// Painter turns frames into terminal output.
type Painter struct {
	canvas  *Canvas
	text    *TextWriter
	overlay []Label // Text emitted by sprites, written after the canvas
}

// NewPainter creates a painter writing to w.
func NewPainter(w io.Writer, canvas *Canvas) *Painter {
	return &Painter{canvas: canvas, text: NewTextWriter(w)}
}

// Canvas returns the canvas frames are painted on.
func (p *Painter) Canvas() *Canvas { return p.canvas }

// Paint draws every sprite of f, then the HUD and labels, and flushes.
func (p *Painter) Paint(f render.Frame, labels []Label) error {
	c := p.canvas
	c.Clear()
	p.overlay = p.overlay[:0]
	for _, s := range f.Sprites {
		p.sprite(s)
	}

	ClearScreen(p.text)
	if err := c.Render(p.text); err != nil {
		return err
	}
	p.overlay = append(p.overlay, labels...)
	for _, l := range p.overlay {
		col, row := c.LogicalToTerminal(l.Pos)
		p.text.WriteCentered(col, row, l.Text)
	}
	p.hud(f)
	return p.text.Flush()
}

func (p *Painter) sprite(s render.Sprite) {
	c := p.canvas
	r := s.Radius
	switch {
	case s.ID == render.SpriteStar, s.ID == render.SpriteDebris:
		c.Plot(s.Pos)

	case s.ID == render.SpriteBlackHole:
		c.Circle(s.Pos, r, false)
		c.Circle(s.Pos, r/4, true)

	case s.ID == render.SpriteCrosshair:
		c.Line(s.Pos.Add(vec.New(-r, 0)), s.Pos.Add(vec.New(r, 0)))
		c.Line(s.Pos.Add(vec.New(0, -r)), s.Pos.Add(vec.New(0, r)))

	case s.ID == render.SpriteTorpedo, s.ID == render.SpriteEnemyTorpedo, s.ID == render.SpriteZeroGTorpedo:
		c.Circle(s.Pos, r, true)

	case strings.HasPrefix(string(s.ID), "fighter_") && s.ID != render.SpriteFighterDeath,
		s.ID == render.SpriteEnemyFighter:
		c.Polygon(triangle(s.Pos, s.Rotation, r)...)
		if s.Opacity >= 1 {
			c.Circle(s.Pos, r/4, true)
		}

	case s.ID == render.SpriteDrone:
		c.Polygon(
			s.Pos.Add(vec.New(0, -r)), s.Pos.Add(vec.New(r, 0)),
			s.Pos.Add(vec.New(0, r)), s.Pos.Add(vec.New(-r, 0)),
		)

	case s.ID == render.SpriteDroneDeath, s.ID == render.SpriteFighterDeath:
		k := r * max(s.Opacity, 0.3)
		c.Line(s.Pos.Add(vec.New(-k, -k)), s.Pos.Add(vec.New(k, k)))
		c.Line(s.Pos.Add(vec.New(-k, k)), s.Pos.Add(vec.New(k, -k)))

	case s.ID == render.SpriteShield:
		c.Circle(s.Pos, r, false)

	case s.ID == render.SpriteShieldDown:
		for a := 0.0; a < 360; a += 30 {
			c.Plot(s.Pos.Add(vec.FromAngle(a+s.Rotation, r)))
		}

	case s.ID == render.SpritePowerupShield, s.ID == render.SpritePowerupAmmo:
		tl, br := s.Pos.Add(vec.New(-r, -r)), s.Pos.Add(vec.New(r, r))
		c.Polygon(tl, vec.New(br.X, tl.Y), br, vec.New(tl.X, br.Y))
		if s.ID == render.SpritePowerupAmmo {
			c.Line(tl, br)
		} else {
			c.Circle(s.Pos, r/2, false)
		}

	case s.ID == render.SpriteStartScreen:
		box(c, s.Pos, 175, 240)

	case strings.HasPrefix(string(s.ID), "level_"):
		box(c, s.Pos, 200*s.Scale, 60*s.Scale)
		p.overlay = append(p.overlay, Label{
			Text: strings.ToUpper(strings.ReplaceAll(string(s.ID), "_", " ")),
			Pos:  s.Pos,
		})
	}
}

// triangle returns a ship outline pointing along rotation degrees.
func triangle(center vec.Vec2, rotation, r float64) []vec.Vec2 {
	return []vec.Vec2{
		center.Add(vec.FromAngle(rotation, r)),
		center.Add(vec.FromAngle(rotation+140, r*0.8)),
		center.Add(vec.FromAngle(rotation-140, r*0.8)),
	}
}

func box(c *Canvas, center vec.Vec2, halfW, halfH float64) {
	tl := center.Add(vec.New(-halfW, -halfH))
	br := center.Add(vec.New(halfW, halfH))
	c.Polygon(tl, vec.New(br.X, tl.Y), br, vec.New(tl.X, br.Y))
}

// hud prints score and status lines.
func (p *Painter) hud(f render.Frame) {
	h := f.HUD
	tw := p.text
	width := p.canvas.TerminalWidth()

	switch f.Mode {
	case render.ModeActivePlay, render.ModeTransitioning:
		tw.Printf(2, 1, "Score: %d  Lives: %d  Level: %d", h.Score, max(h.Lives, 0), h.Level)
		high := fmt.Sprintf("High: %d", h.HighScore)
		tw.WriteAt(max(width-len(high), 1), 1, high)

		if status := StatusLine(h); status != "" {
			tw.WriteAt(2, 2, status)
		}
	default:
		tw.WriteCentered(width/2, 1, fmt.Sprintf("High score: %d", h.HighScore))
	}
}

// StatusLine summarizes the fighter's shield, special ammo and boost.
func StatusLine(h render.HUD) string {
	var status []string
	if h.Shielded {
		status = append(status, "Shield")
	}
	if h.SpecialAmmo > 0 {
		status = append(status, fmt.Sprintf("Zero-G x%d", h.SpecialAmmo))
	}
	if h.BoostReady {
		status = append(status, "Boost ready")
	}
	return strings.Join(status, "  ")
}
