// Package audio plays the short tones that accompany particle merges.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// MinGap is the shortest interval between two merge tones.
	MinGap = 80 * time.Millisecond

	toneLength = 60 * time.Millisecond
	baseFreq   = 220.0 // A3
	maxSteps   = 24    // semitones above baseFreq
	volume     = -2.0  // log2 gain
)

// Pitch returns the tone frequency for a frame with n merges. Each extra
// merge raises the tone a semitone, up to two octaves.
func Pitch(n int) float64 {
	steps := max(0, min(n-1, maxSteps))
	return baseFreq * math.Pow(2, float64(steps)/12)
}

// Cue throttles merge tones and hands them to the speaker. The zero value is
// silent; call Init to open the output device.
type Cue struct {
	mu   sync.Mutex
	gap  time.Duration
	last time.Time
	now  func() time.Time
	play func(freq float64)
}

// NewCue returns a cue that plays at most one tone per gap.
func NewCue(gap time.Duration) *Cue {
	return &Cue{gap: gap, now: time.Now}
}

// Init opens the speaker. On failure the cue stays silent and the caller
// decides whether that matters.
func (c *Cue) Init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	c.mu.Lock()
	c.play = tone
	c.mu.Unlock()
	return nil
}

// Close releases the speaker.
func (c *Cue) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.play == nil {
		return
	}
	c.play = nil
	speaker.Close()
}

// Merge plays a tone for n merges unless one played within the gap. It
// reports whether a tone was started.
func (c *Cue) Merge(n int) bool {
	if n <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.play == nil {
		return false
	}
	t := c.now()
	if !c.last.IsZero() && t.Sub(c.last) < c.gap {
		return false
	}
	c.last = t
	c.play(Pitch(n))
	return true
}

func tone(freq float64) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(&effects.Volume{
		Streamer: beep.Take(sampleRate.N(toneLength), sine),
		Base:     2,
		Volume:   volume,
	})
}
