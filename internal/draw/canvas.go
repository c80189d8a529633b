// Package draw paints simulation frames onto an ANSI terminal using
// half-block characters for double vertical resolution.
package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/relativity-wars/internal/vec"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Logical playfield coordinates are scaled uniformly to fit the terminal and
// the playfield is centered, leaving bars on the longer axis.
type Canvas struct {
	termWidth      int    // Terminal columns available
	termHeight     int    // Terminal rows available
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set

	logicalWidth  float64
	logicalHeight float64
	scale         float64 // Sub-pixels per logical unit, same on both axes

	// Offset of the playfield inside the terminal, in columns and sub-pixel rows.
	offsetX int
	offsetY int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewCanvas creates a canvas that maps a logicalWidth x logicalHeight playfield
// onto a termWidth x termHeight terminal.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scale = math.Min(float64(termWidth)/c.logicalWidth, float64(subPixelHeight)/c.logicalHeight)
	c.offsetX = int((float64(termWidth) - c.logicalWidth*c.scale) / 2)
	c.offsetY = int((float64(subPixelHeight) - c.logicalHeight*c.scale) / 2)
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Pixel reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

func (c *Canvas) toPixel(p vec.Vec2) (int, int) {
	return int(math.Round(p.X*c.scale)) + c.offsetX, int(math.Round(p.Y*c.scale)) + c.offsetY
}

// Plot sets the pixel under a logical point.
func (c *Canvas) Plot(p vec.Vec2) {
	c.setPixel(c.toPixel(p))
}

// Line draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) Line(a, b vec.Vec2) {
	x1, y1 := c.toPixel(a)
	x2, y2 := c.toPixel(b)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Polygon draws a closed outline through points.
func (c *Canvas) Polygon(points ...vec.Vec2) {
	for i := range points {
		c.Line(points[i], points[(i+1)%len(points)])
	}
}

// Circle draws a circle of logical radius r. Radii smaller than one
// sub-pixel collapse to a single pixel.
func (c *Canvas) Circle(center vec.Vec2, r float64, filled bool) {
	cx, cy := c.toPixel(center)
	pr := r * c.scale
	if pr < 1 {
		c.setPixel(cx, cy)
		return
	}

	ir := int(math.Ceil(pr))
	inner := (pr - 1) * (pr - 1)
	outer := pr * pr
	for y := -ir; y <= ir; y++ {
		for x := -ir; x <= ir; x++ {
			d := float64(x*x + y*y)
			if d > outer {
				continue
			}
			if filled || d >= inner {
				c.setPixel(cx+x, cy+y)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using half-block characters.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			var ch rune
			switch {
			case top && bottom:
				ch = BlockFull
			case top:
				ch = BlockUpperHalf
			case bottom:
				ch = BlockLowerHalf
			default:
				continue // Skip empty cells
			}

			c.renderBuf.WriteString("\033[")
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1), 10))
			c.renderBuf.WriteByte(';')
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1), 10))
			c.renderBuf.WriteByte('H')
			c.renderBuf.WriteRune(ch)
		}
	}
	return writeChunked(w, c.renderBuf.String())
}

// writeChunked writes data in pieces no larger than maxChunkSize.
func writeChunked(w io.Writer, data string) error {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts a logical point to a 1-based terminal position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(p vec.Vec2) (col, row int) {
	px, py := c.toPixel(p)
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based terminal cell to the logical point at its center.
// It has the signature of input.CellMapper.
func (c *Canvas) TerminalToLogical(col, row int) vec.Vec2 {
	if c.scale == 0 {
		return vec.Zero
	}
	px := float64(col-1) + 0.5
	py := float64(row-1)*2 + 1
	return vec.New((px-float64(c.offsetX))/c.scale, (py-float64(c.offsetY))/c.scale)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
