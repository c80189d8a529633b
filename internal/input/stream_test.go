package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/relativity-wars/internal/vec"
)

func cellsTimesTen(col, row int) vec.Vec2 {
	return vec.New(float64(col*10), float64(row*10))
}

func newTestStream() *Stream {
	return &Stream{ch: make(chan byte, 256)}
}

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestReadHeldKeysExpire(t *testing.T) {
	s := newTestStream()
	now := time.Unix(100, 0)
	feed(s, "wd")

	snap := s.Read(now, cellsTimesTen)
	assert.True(t, snap.Up)
	assert.True(t, snap.Right)
	assert.False(t, snap.Left)
	assert.True(t, snap.AnyMovement())

	later := s.Read(now.Add(keyHoldDuration), cellsTimesTen)
	assert.False(t, later.Up)
	assert.False(t, later.AnyMovement())
}

func TestReadArrowKeys(t *testing.T) {
	s := newTestStream()
	feed(s, "\x1b[A\x1b[D")
	snap := s.Read(time.Unix(1, 0), cellsTimesTen)
	assert.True(t, snap.Up)
	assert.True(t, snap.Left)
	assert.False(t, snap.Escape)
}

func TestReadEventKeys(t *testing.T) {
	s := newTestStream()
	feed(s, "r q")
	snap := s.Read(time.Unix(1, 0), cellsTimesTen)
	assert.True(t, snap.Reset)
	assert.True(t, snap.Boost)
	assert.True(t, snap.Quit)
}

func TestReadLoneEscape(t *testing.T) {
	s := newTestStream()
	feed(s, "\x1b")
	snap := s.Read(time.Unix(1, 0), cellsTimesTen)
	assert.True(t, snap.Escape)
}

func TestReadMouseMotionAndClick(t *testing.T) {
	s := newTestStream()
	feed(s, "\x1b[<35;12;7M")
	snap := s.Read(time.Unix(1, 0), cellsTimesTen)
	assert.Equal(t, vec.New(120, 70), snap.Pointer)
	assert.Empty(t, snap.Clicks, "motion is not a click")

	feed(s, "\x1b[<0;3;4M\x1b[<0;3;4m")
	snap = s.Read(time.Unix(1, 0), cellsTimesTen)
	assert.Equal(t, []vec.Vec2{vec.New(30, 40)}, snap.Clicks, "release is not a click")
	assert.Equal(t, vec.New(30, 40), snap.Pointer)
}

func TestReadSplitMouseSequence(t *testing.T) {
	s := newTestStream()
	feed(s, "\x1b[<0;5;")
	snap := s.Read(time.Unix(1, 0), cellsTimesTen)
	assert.Empty(t, snap.Clicks)
	assert.False(t, snap.Escape)

	feed(s, "6M")
	snap = s.Read(time.Unix(1, 0), cellsTimesTen)
	assert.Equal(t, []vec.Vec2{vec.New(50, 60)}, snap.Clicks)
}

func TestReadClosedStreamQuits(t *testing.T) {
	s := newTestStream()
	close(s.ch)
	assert.True(t, s.Read(time.Unix(1, 0), cellsTimesTen).Quit)
}
