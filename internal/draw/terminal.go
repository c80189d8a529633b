package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ANSI sequences for terminal setup.
const (
	clearScreen  = "\033[H\033[2J"
	hideCursor   = "\033[?25l"
	showCursor   = "\033[?25h"
	altScreenOn  = "\033[?1049h"
	altScreenOff = "\033[?1049l"
)

// TextWriter accumulates a frame's terminal output and writes it in chunks for
// smooth network flow (e.g. over SSH). Canvas output and text overlays go
// through the same buffer so the frame is flushed in one go.
type TextWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
}

// NewTextWriter creates a TextWriter that writes to w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{bufw: bufio.NewWriterSize(w, 8192)}
}

// MoveCursor appends an ANSI cursor position sequence (1-based).
func (tw *TextWriter) MoveCursor(col, row int) {
	tw.buf.WriteString("\033[")
	tw.buf.Write(strconv.AppendInt(tw.numBuf[:0], int64(row), 10))
	tw.buf.WriteByte(';')
	tw.buf.Write(strconv.AppendInt(tw.numBuf[:0], int64(col), 10))
	tw.buf.WriteByte('H')
}

// Write implements io.Writer for use with Canvas.Render.
func (tw *TextWriter) Write(p []byte) (n int, err error) {
	return tw.buf.Write(p)
}

// WriteAt writes s starting at a 1-based terminal position.
func (tw *TextWriter) WriteAt(col, row int, s string) {
	if col < 1 || row < 1 {
		return
	}
	tw.MoveCursor(col, row)
	tw.buf.WriteString(s)
}

// WriteCentered writes s centered on col.
func (tw *TextWriter) WriteCentered(col, row int, s string) {
	tw.WriteAt(max(col-len([]rune(s))/2, 1), row, s)
}

// Printf formats at a 1-based terminal position.
func (tw *TextWriter) Printf(col, row int, format string, args ...any) {
	tw.WriteAt(col, row, fmt.Sprintf(format, args...))
}

// Ensure TextWriter satisfies io.Writer.
var _ io.Writer = (*TextWriter)(nil)

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (tw *TextWriter) Flush() error {
	data := tw.buf.String()
	tw.buf.Reset()
	if err := writeChunked(tw.bufw, data); err != nil {
		return err
	}
	return tw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearScreen)
}

// EnterScreen switches to the alternate screen and hides the cursor.
func EnterScreen(w io.Writer) {
	io.WriteString(w, altScreenOn+hideCursor+clearScreen)
}

// LeaveScreen restores the cursor and the main screen.
func LeaveScreen(w io.Writer) {
	io.WriteString(w, clearScreen+showCursor+altScreenOff)
}
