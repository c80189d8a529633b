package input

import (
	"bufio"
	"strconv"
	"time"

	"github.com/tomz197/relativity-wars/internal/vec"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report presses and autorepeat, never releases.
const keyHoldDuration = 120 * time.Millisecond

// Mouse tracking: any-motion events in SGR extended encoding.
const (
	EnableMouse  = "\033[?1003h\033[?1006h"
	DisableMouse = "\033[?1003l\033[?1006l"
)

// CellMapper converts a 1-based terminal cell to playfield coordinates.
type CellMapper func(col, row int) vec.Vec2

// keyState tracks the last time each movement key was pressed.
type keyState struct {
	up    time.Time
	down  time.Time
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte
	pointer vec.Vec2
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Read drains all available bytes (non-blocking) and builds the frame snapshot.
// A closed input counts as a quit request.
func (s *Stream) Read(now time.Time, toField CellMapper) Snapshot {
	var snap Snapshot
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				snap.Quit = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.parse(buf, now, toField, &snap)

	snap.Up = now.Sub(s.state.up) < keyHoldDuration
	snap.Down = now.Sub(s.state.down) < keyHoldDuration
	snap.Left = now.Sub(s.state.left) < keyHoldDuration
	snap.Right = now.Sub(s.state.right) < keyHoldDuration
	snap.Pointer = s.pointer
	return snap
}

// parse consumes buf, updating key timestamps and the snapshot's events.
// An incomplete escape sequence at the end is kept for the next frame.
func (s *Stream) parse(buf []byte, now time.Time, toField CellMapper, snap *Snapshot) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			s.applyByte(b, now, snap)
			continue
		}

		// Lone escape at the end of a read is the Escape key.
		if i+1 >= len(buf) {
			snap.Escape = true
			continue
		}
		if buf[i+1] != '[' {
			snap.Escape = true
			continue
		}
		if i+2 >= len(buf) {
			s.pending = append(s.pending, buf[i:]...)
			return
		}

		switch buf[i+2] {
		case 'A':
			s.state.up = now
			i += 2
		case 'B':
			s.state.down = now
			i += 2
		case 'C':
			s.state.right = now
			i += 2
		case 'D':
			s.state.left = now
			i += 2
		case '<':
			n, ok := s.parseMouse(buf[i+3:], toField, snap)
			if !ok {
				s.pending = append(s.pending, buf[i:]...)
				return
			}
			i += 2 + n
		default:
			i += 2
		}
	}
}

// parseMouse decodes "b;x;y(M|m)" following "\x1b[<". It returns the number of
// bytes consumed and false when the sequence is not complete yet.
func (s *Stream) parseMouse(seq []byte, toField CellMapper, snap *Snapshot) (int, bool) {
	var fields [3]int
	field, start := 0, 0
	for j, c := range seq {
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' && field < 2:
			fields[field], _ = strconv.Atoi(string(seq[start:j]))
			field++
			start = j + 1
		case (c == 'M' || c == 'm') && field == 2:
			fields[2], _ = strconv.Atoi(string(seq[start:j]))
			button, col, row := fields[0], fields[1], fields[2]
			if toField != nil {
				s.pointer = toField(col, row)
			}
			// press of the primary button without motion flag
			if c == 'M' && button&0b1100011 == 0 {
				snap.Clicks = append(snap.Clicks, s.pointer)
			}
			return j + 1, true
		default:
			// malformed: skip what we saw
			return j + 1, true
		}
	}
	return 0, false
}

// applyByte updates key state based on a single pressed byte.
func (s *Stream) applyByte(b byte, now time.Time, snap *Snapshot) {
	switch b {
	case 'w', 'W', 'k', 'K':
		s.state.up = now
	case 's', 'S', 'j', 'J':
		s.state.down = now
	case 'a', 'A', 'h', 'H':
		s.state.left = now
	case 'd', 'D', 'l', 'L':
		s.state.right = now
	case 'r', 'R':
		snap.Reset = true
	case ' ', '\t':
		snap.Boost = true
	case 'q', 'Q', 0x03:
		snap.Quit = true
	case '\n', '\r':
		// Enter clicks where the pointer is, for terminals without mouse support.
		snap.Clicks = append(snap.Clicks, s.pointer)
	}
}
