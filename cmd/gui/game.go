package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/tomz197/relativity-wars/internal/audio"
	"github.com/tomz197/relativity-wars/internal/draw"
	"github.com/tomz197/relativity-wars/internal/input"
	"github.com/tomz197/relativity-wars/internal/loop"
	"github.com/tomz197/relativity-wars/internal/render"
	"github.com/tomz197/relativity-wars/internal/vec"
)

// debugGlyph is the size of one ebitenutil debug font cell.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

// game adapts a session to ebiten's Update/Draw/Layout cycle.
type game struct {
	session *loop.Session
	sink    audio.Sink
	music   bool

	frame  render.Frame
	labels []draw.Label
}

func newGame(session *loop.Session, sink audio.Sink, music bool) *game {
	sink.SetMusic(music)
	return &game{session: session, sink: sink, music: music}
}

func pressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// readInput samples ebiten's key and mouse state into a snapshot.
func readInput() input.Snapshot {
	x, y := ebiten.CursorPosition()
	pointer := vec.New(float64(x), float64(y))

	snap := input.Snapshot{
		Up:      pressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Down:    pressed(ebiten.KeyS, ebiten.KeyArrowDown),
		Left:    pressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		Right:   pressed(ebiten.KeyD, ebiten.KeyArrowRight),
		Pointer: pointer,
		Reset:   justPressed(ebiten.KeyR),
		Boost:   justPressed(ebiten.KeySpace),
		Escape:  justPressed(ebiten.KeyEscape),
		Quit:    justPressed(ebiten.KeyQ),
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || justPressed(ebiten.KeyEnter) {
		snap.Clicks = append(snap.Clicks, pointer)
	}
	return snap
}

func (g *game) Update() error {
	g.frame = g.session.Step(readInput())

	if g.frame.MusicOn != g.music {
		g.music = g.frame.MusicOn
		g.sink.SetMusic(g.music)
	}
	if len(g.frame.Sounds) > 0 {
		g.sink.Play(g.frame.Sounds)
	}
	g.labels = loop.MenuLabels(g.session, g.frame)

	if !g.session.Running() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	for _, s := range g.frame.Sprites {
		drawSprite(screen, s)
	}
	g.drawHUD(screen)
	for _, l := range g.labels {
		printCentered(screen, l.Text, l.Pos)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.session.Screen().Width), int(g.session.Screen().Height)
}

func (g *game) drawHUD(screen *ebiten.Image) {
	h := g.frame.HUD
	width := g.session.Screen().Width

	switch g.frame.Mode {
	case render.ModeActivePlay, render.ModeTransitioning:
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("Score: %d  Lives: %d  Level: %d", h.Score, max(h.Lives, 0), h.Level), 10, 6)
		high := fmt.Sprintf("High: %d", h.HighScore)
		ebitenutil.DebugPrintAt(screen, high, int(width)-10-len(high)*debugGlyphW, 6)
		if status := draw.StatusLine(h); status != "" {
			ebitenutil.DebugPrintAt(screen, status, 10, 6+debugGlyphH)
		}
	default:
		printCentered(screen, fmt.Sprintf("High score: %d", h.HighScore), vec.New(width/2, 14))
	}
}

// printCentered prints text with its center at pos.
func printCentered(screen *ebiten.Image, text string, pos vec.Vec2) {
	x := int(pos.X) - len(text)*debugGlyphW/2
	y := int(pos.Y) - debugGlyphH/2
	ebitenutil.DebugPrintAt(screen, text, x, y)
}
