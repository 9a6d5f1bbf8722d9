// Package follower implements the envelope-to-CC pipeline: it tracks the
// amplitude envelope of an incoming sample stream and quantizes it to a
// 7-bit controller value.
package follower

import (
	"math"

	"go-ccfollower/midi"
)

// Parameter ranges enforced by the setters. Smoothing sits strictly below 1
// so the one-pole filter always converges.
const (
	MinThreshold = 0.0
	MaxThreshold = 0.5
	MinGain      = 0.1
	MaxGain      = 10.0
	MinSmoothing = 0.0
	MaxSmoothing = 0.99
)

// Follower is the per-stream signal processor. It is exclusively owned by
// whatever goroutine drives ProcessSample (the audio side); it performs no
// locking, allocation or logging on that path. Cross-thread publication of
// the read accessors is the owner's job, not this struct's.
type Follower struct {
	Smoothing float32 // one-pole coefficient, [0, 0.99)
	Threshold float32 // noise gate floor, [0, 0.5]
	Gain      float32 // post-gate scale, [0.1, 10]
	CCNumber  int
	Channel   int // 1-indexed, converted at encode time

	hasAccess bool
	running   bool
	active    bool
	smoothed  float32
	ccValue   int
}

// New returns a follower with the stock defaults: mod wheel on channel 1,
// moderate smoothing, no gate, unity gain.
func New() *Follower {
	return &Follower{
		Smoothing: 0.9,
		Threshold: 0.0,
		Gain:      1.0,
		CCNumber:  1,
		Channel:   1,
	}
}

// SetAudioAccess records whether the audio capture permission has been
// granted. Start is a no-op until it has.
func (f *Follower) SetAudioAccess(granted bool) {
	f.hasAccess = granted
}

// Start moves the pipeline from Stopped to Running. It fails silently when
// audio access has not been granted. The smoothing state is deliberately not
// reset: a restart resumes from the last smoothed value.
func (f *Follower) Start() {
	if !f.hasAccess {
		return
	}
	f.running = true
}

// Stop halts sample ingestion. Takes effect before the next sample, never
// mid-computation. Smoothing state survives.
func (f *Follower) Stop() {
	f.running = false
}

// ToggleActive flips MIDI emission on and off. When the pipeline is stopped
// it instead behaves as Start: the engine comes up inactive and a second
// toggle begins emitting. While running, the smoother keeps integrating
// samples across toggles; only emission is gated.
func (f *Follower) ToggleActive() {
	if !f.running {
		f.Start()
		return
	}
	f.active = !f.active
}

// ProcessSample runs one step of the pipeline: one-pole smoothing, threshold
// gate, gain, quantize to 0-127. The quantized value is stored whether or
// not the follower is active (the UI shows it either way); a CC event is
// returned only while active.
//
// amplitude is nominally in [0,1]. Out-of-range input is fed to the smoother
// unclamped; the caller owns normalization.
func (f *Follower) ProcessSample(amplitude float32) (midi.Event, bool) {
	f.smoothed = f.smoothed*f.Smoothing + amplitude*(1-f.Smoothing)

	processed := (f.smoothed - f.Threshold) * f.Gain
	if processed < 0 {
		processed = 0
	}

	value := int(math.Round(float64(processed) * 127))
	if value > 127 {
		value = 127
	}

	f.ccValue = value

	if !f.active {
		return midi.Event{}, false
	}
	return midi.EncodeCC(f.CCNumber, value, f.Channel), true
}

// CCValue is the last quantized controller value, in [0,127].
func (f *Follower) CCValue() int { return f.ccValue }

// Smoothed is the current envelope level.
func (f *Follower) Smoothed() float32 { return f.smoothed }

// Active reports whether CC events are being emitted.
func (f *Follower) Active() bool { return f.active }

// Running reports whether samples are being ingested.
func (f *Follower) Running() bool { return f.running }

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetThreshold clamps into [MinThreshold, MaxThreshold].
func (f *Follower) SetThreshold(v float32) {
	f.Threshold = clamp32(v, MinThreshold, MaxThreshold)
}

// SetGain clamps into [MinGain, MaxGain].
func (f *Follower) SetGain(v float32) {
	f.Gain = clamp32(v, MinGain, MaxGain)
}

// SetSmoothing clamps into [MinSmoothing, MaxSmoothing].
func (f *Follower) SetSmoothing(v float32) {
	f.Smoothing = clamp32(v, MinSmoothing, MaxSmoothing)
}
