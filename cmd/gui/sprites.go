package main

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

var palette = map[render.SpriteID]color.RGBA{
	render.SpriteStar:          colornames.Lightgray,
	render.SpriteDebris:        colornames.Orange,
	render.SpriteBlackHole:     colornames.Mediumpurple,
	render.SpriteCrosshair:     colornames.Lime,
	render.SpriteTorpedo:       colornames.Cornflowerblue,
	render.SpriteZeroGTorpedo:  colornames.Aqua,
	render.SpriteEnemyTorpedo:  colornames.Orangered,
	render.SpriteDrone:         colornames.Crimson,
	render.SpriteDroneDeath:    colornames.Orange,
	render.SpriteEnemyFighter:  colornames.Red,
	render.SpriteFighterDeath:  colornames.Orange,
	render.SpriteShield:        colornames.Azure,
	render.SpriteShieldDown:    colornames.Lightskyblue,
	render.SpritePowerupShield: colornames.Green,
	render.SpritePowerupAmmo:   colornames.Yellow,
	render.SpriteStartScreen:   colornames.Slategray,
}

var (
	fighterColor = colornames.White
	overlayColor = colornames.Gold
)

// fade scales a premultiplied color by opacity.
func fade(c color.RGBA, opacity float64) color.RGBA {
	a := min(max(opacity, 0), 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func line(dst *ebiten.Image, a, b vec.Vec2, width float32, clr color.Color) {
	vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
}

func polygon(dst *ebiten.Image, clr color.Color, pts ...vec.Vec2) {
	for i := range pts {
		line(dst, pts[i], pts[(i+1)%len(pts)], 1.5, clr)
	}
}

func rect(dst *ebiten.Image, center vec.Vec2, halfW, halfH float64, clr color.Color) {
	vector.StrokeRect(dst, float32(center.X-halfW), float32(center.Y-halfH),
		float32(2*halfW), float32(2*halfH), 2, clr, true)
}

// ship returns a triangle pointing along rotation degrees.
func ship(center vec.Vec2, rotation, r float64) []vec.Vec2 {
	return []vec.Vec2{
		center.Add(vec.FromAngle(rotation, r)),
		center.Add(vec.FromAngle(rotation+140, r)),
		center.Add(vec.FromAngle(rotation-140, r)),
	}
}

func isFighter(id render.SpriteID) bool {
	return strings.HasPrefix(string(id), "fighter_") && id != render.SpriteFighterDeath
}

// drawSprite draws one sprite as vector shapes.
func drawSprite(dst *ebiten.Image, s render.Sprite) {
	r := s.Radius
	x, y := float32(s.Pos.X), float32(s.Pos.Y)
	clr := fade(palette[s.ID], s.Opacity)

	switch {
	case s.ID == render.SpriteStar, s.ID == render.SpriteDebris:
		vector.DrawFilledCircle(dst, x, y, float32(max(r, 1)), clr, true)

	case s.ID == render.SpriteBlackHole:
		vector.DrawFilledCircle(dst, x, y, float32(r), colornames.Black, true)
		vector.StrokeCircle(dst, x, y, float32(r), 2, clr, true)

	case s.ID == render.SpriteCrosshair:
		line(dst, s.Pos.Add(vec.New(-r, 0)), s.Pos.Add(vec.New(r, 0)), 1, clr)
		line(dst, s.Pos.Add(vec.New(0, -r)), s.Pos.Add(vec.New(0, r)), 1, clr)

	case s.ID == render.SpriteTorpedo, s.ID == render.SpriteEnemyTorpedo, s.ID == render.SpriteZeroGTorpedo:
		vector.DrawFilledCircle(dst, x, y, float32(r), clr, true)

	case isFighter(s.ID):
		polygon(dst, fade(fighterColor, s.Opacity), ship(s.Pos, s.Rotation, r)...)

	case s.ID == render.SpriteEnemyFighter:
		polygon(dst, clr, ship(s.Pos, s.Rotation, r)...)

	case s.ID == render.SpriteDrone:
		polygon(dst, clr,
			s.Pos.Add(vec.New(0, -r)), s.Pos.Add(vec.New(r, 0)),
			s.Pos.Add(vec.New(0, r)), s.Pos.Add(vec.New(-r, 0)),
		)

	case s.ID == render.SpriteDroneDeath, s.ID == render.SpriteFighterDeath:
		k := r * max(s.Opacity, 0.3)
		line(dst, s.Pos.Add(vec.New(-k, -k)), s.Pos.Add(vec.New(k, k)), 2, clr)
		line(dst, s.Pos.Add(vec.New(-k, k)), s.Pos.Add(vec.New(k, -k)), 2, clr)

	case s.ID == render.SpriteShield, s.ID == render.SpriteShieldDown:
		vector.StrokeCircle(dst, x, y, float32(r), 1.5, clr, true)

	case s.ID == render.SpritePowerupShield, s.ID == render.SpritePowerupAmmo:
		rect(dst, s.Pos, r, r, clr)
		vector.DrawFilledCircle(dst, x, y, float32(r/2), clr, true)

	case s.ID == render.SpriteStartScreen:
		rect(dst, s.Pos, 175, 240, clr)

	case strings.HasPrefix(string(s.ID), "level_"):
		c := fade(overlayColor, s.Opacity)
		rect(dst, s.Pos, 200*s.Scale, 60*s.Scale, c)
		printCentered(dst, strings.ToUpper(strings.ReplaceAll(string(s.ID), "_", " ")), s.Pos)
	}
}
