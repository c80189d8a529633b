// Package synth plays sound events through the system speaker using
// synthesized tones.
package synth

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/relativity-wars/internal/audio"
)

const sampleRate = beep.SampleRate(44100)

// tone describes a synthesized effect: a frequency sweep with a decaying envelope.
type tone struct {
	from, to float64 // Hz
	length   time.Duration
	noise    float64 // 0..1 share of pseudo-noise mixed in
	volume   float64
}

var tones = map[audio.Event]tone{
	audio.TorpedoFired:   {from: 900, to: 300, length: 90 * time.Millisecond, volume: 0.20},
	audio.FighterDeath:   {from: 220, to: 40, length: 600 * time.Millisecond, noise: 0.6, volume: 0.35},
	audio.DroneDeath:     {from: 400, to: 80, length: 350 * time.Millisecond, noise: 0.5, volume: 0.30},
	audio.ShieldDown:     {from: 1200, to: 500, length: 250 * time.Millisecond, volume: 0.25},
	audio.PowerupPickup:  {from: 500, to: 1500, length: 200 * time.Millisecond, volume: 0.25},
	audio.Boost:          {from: 150, to: 450, length: 300 * time.Millisecond, noise: 0.3, volume: 0.25},
	audio.GameOver:       {from: 300, to: 100, length: 900 * time.Millisecond, volume: 0.30},
	audio.GameOverTier1:  {from: 400, to: 200, length: 900 * time.Millisecond, volume: 0.30},
	audio.GameOverTier2:  {from: 500, to: 300, length: 1000 * time.Millisecond, volume: 0.30},
	audio.GameOverTier3:  {from: 600, to: 900, length: 1200 * time.Millisecond, volume: 0.30},
	audio.LevelAnnounced: {from: 300, to: 600, length: 400 * time.Millisecond, volume: 0.20},
}

// Player synthesizes effect tones through the system speaker.
// All methods are safe to call before Initialize; they do nothing then.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	initialized bool
}

// NewPlayer creates an uninitialized player.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. A second call is a no-op.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	p.music = &beep.Ctrl{Streamer: beep.Loop(-1, newDrone(sampleRate)), Paused: true}
	p.mixer.Add(p.music)
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues one tone per event.
func (p *Player) Play(events []audio.Event) {
	if len(events) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	for _, ev := range events {
		if s := Streamer(ev); s != nil {
			p.mixer.Add(s)
		}
	}
	speaker.Unlock()
}

// SetMusic pauses or resumes the background loop.
func (p *Player) SetMusic(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.music.Paused = !on
	speaker.Unlock()
}

// Close silences everything. beep has no speaker close, so the mixer is cleared.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Streamer returns a finite streamer for ev, or nil for unknown events.
func Streamer(ev audio.Event) beep.Streamer {
	t, ok := tones[ev]
	if !ok {
		return nil
	}
	n := sampleRate.N(t.length)
	return beep.Take(n, &sweep{tone: t, total: n})
}

// sweep renders a tone sample by sample.
type sweep struct {
	tone  tone
	total int
	pos   int
	phase float64
	lfsr  uint32
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.lfsr == 0 {
		s.lfsr = 0xACE1
	}
	for i := range samples {
		progress := float64(s.pos) / float64(s.total)
		freq := s.tone.from + (s.tone.to-s.tone.from)*progress
		s.phase += 2 * math.Pi * freq / float64(sampleRate)

		// xorshift noise keeps the output reproducible
		s.lfsr ^= s.lfsr << 13
		s.lfsr ^= s.lfsr >> 17
		s.lfsr ^= s.lfsr << 5
		noise := float64(s.lfsr)/float64(math.MaxUint32)*2 - 1

		v := (1-s.tone.noise)*math.Sin(s.phase) + s.tone.noise*noise
		v *= s.tone.volume * (1 - progress)

		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error {
	return nil
}

// drone is the background music: a slow pulsing bass.
type drone struct {
	sr  beep.SampleRate
	pos int
}

func newDrone(sr beep.SampleRate) *drone {
	return &drone{sr: sr}
}

func (d *drone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(d.pos) / float64(d.sr)
		pulse := 0.5 + 0.5*math.Sin(2*math.Pi*0.5*t)
		v := 0.08 * pulse * (math.Sin(2*math.Pi*55*t) + 0.5*math.Sin(2*math.Pi*82.5*t))
		samples[i][0] = v
		samples[i][1] = v
		d.pos++
	}
	return len(samples), true
}

func (d *drone) Err() error {
	return nil
}

var _ audio.Sink = (*Player)(nil)
