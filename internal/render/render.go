// Package render defines the render boundary: the per-frame draw list the
// simulation emits and external renderers consume.
package render

import "github.com/tomz197/relativity-wars/internal/vec"

// SpriteID names a sprite the renderer knows how to draw.
type SpriteID string

const (
	SpriteStar          SpriteID = "star"
	SpriteBlackHole     SpriteID = "black_hole"
	SpriteCrosshair     SpriteID = "crosshair"
	SpriteTorpedo       SpriteID = "torpedo"
	SpriteEnemyTorpedo  SpriteID = "enemy_torpedo"
	SpriteZeroGTorpedo  SpriteID = "zero_g_torpedo"
	SpriteDrone         SpriteID = "drone"
	SpriteDroneDeath    SpriteID = "drone_death"
	SpriteEnemyFighter  SpriteID = "enemy_fighter"
	SpriteFighterDeath  SpriteID = "fighter_death"
	SpriteShield        SpriteID = "shield"
	SpriteShieldDown    SpriteID = "shield_down"
	SpritePowerupShield SpriteID = "powerup_shield"
	SpritePowerupAmmo   SpriteID = "powerup_zero_gravity_ammo"
	SpriteStartScreen   SpriteID = "start_screen"
	SpriteDebris        SpriteID = "debris"
)

// FighterSprite returns the fighter sprite for a compass direction name such as "upleft".
func FighterSprite(direction string) SpriteID {
	return SpriteID("fighter_" + direction)
}

// levelOverlays is the number of level announcement images available.
const levelOverlays = 5

// LevelOverlay returns the announcement sprite for level, clamped to the
// available images.
func LevelOverlay(level int) SpriteID {
	n := min(max(level, 1), levelOverlays)
	return SpriteID("level_" + string(rune('0'+n)))
}

// Sprite is one draw command. Rotation is in degrees counter-clockwise,
// Opacity in [0, 1]. Radius is the logical size hint for renderers that draw
// shapes instead of images.
type Sprite struct {
	ID       SpriteID
	Pos      vec.Vec2
	Rotation float64
	Opacity  float64
	Scale    float64
	Radius   float64
}

// List collects sprites in draw order.
type List struct {
	Sprites []Sprite
}

// Add appends a fully opaque, unscaled sprite.
func (l *List) Add(id SpriteID, pos vec.Vec2, rotation, radius float64) {
	l.Sprites = append(l.Sprites, Sprite{ID: id, Pos: pos, Rotation: rotation, Opacity: 1, Scale: 1, Radius: radius})
}

// AddSprite appends s as is.
func (l *List) AddSprite(s Sprite) {
	l.Sprites = append(l.Sprites, s)
}

// Reset empties the list, keeping its capacity.
func (l *List) Reset() {
	l.Sprites = l.Sprites[:0]
}
