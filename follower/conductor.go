package follower

import (
	"context"

	"go-ccfollower/debug"
	"go-ccfollower/midi"
)

// Sender is the borrowed transport handle the conductor forwards events
// through. The conductor never owns the transport's lifecycle.
type Sender interface {
	Send(e midi.Event) error
}

// Snapshot is the read-only view the conductor publishes for display.
type Snapshot struct {
	Level     float32
	CCValue   int
	Active    bool
	Running   bool
	Threshold float32
	Gain      float32
	Smoothing float32
	CCNumber  int
	Channel   int
}

// Conductor drives a Follower from a sample stream. It exclusively owns the
// Follower: samples and control commands are serialized onto one goroutine,
// so the Follower itself never needs locks. Display state crosses threads
// only as Snapshot values on the Updates channel.
type Conductor struct {
	f       *Follower
	sender  Sender
	samples <-chan float32
	cmds    chan func(*Follower)

	// Updates carries the latest snapshot; sends are non-blocking and
	// stale values are overwritten, so a slow reader never stalls the
	// sample path.
	Updates chan Snapshot
}

// NewConductor wires a follower to a sample source and a transport. sender
// may be nil (no transport connected); events are then dropped.
func NewConductor(f *Follower, sender Sender, samples <-chan float32) *Conductor {
	return &Conductor{
		f:       f,
		sender:  sender,
		samples: samples,
		cmds:    make(chan func(*Follower), 16),
		Updates: make(chan Snapshot, 1),
	}
}

// Run processes samples and commands until the context is cancelled or the
// sample channel closes. Run it in its own goroutine.
func (c *Conductor) Run(ctx context.Context) {
	c.publish()
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-c.cmds:
			cmd(c.f)
			c.publish()
		case amp, ok := <-c.samples:
			if !ok {
				return
			}
			if !c.f.Running() {
				continue
			}
			event, emit := c.f.ProcessSample(amp)
			if emit && c.sender != nil {
				if err := c.sender.Send(event); err != nil {
					debug.LogEvery(500, "follower", "send failed: %v", err)
				}
			}
			c.publish()
		}
	}
}

func (c *Conductor) publish() {
	snap := Snapshot{
		Level:     c.f.Smoothed(),
		CCValue:   c.f.CCValue(),
		Active:    c.f.Active(),
		Running:   c.f.Running(),
		Threshold: c.f.Threshold,
		Gain:      c.f.Gain,
		Smoothing: c.f.Smoothing,
		CCNumber:  c.f.CCNumber,
		Channel:   c.f.Channel,
	}
	// Replace any stale snapshot rather than queueing.
	select {
	case <-c.Updates:
	default:
	}
	select {
	case c.Updates <- snap:
	default:
	}
}

func (c *Conductor) do(cmd func(*Follower)) {
	select {
	case c.cmds <- cmd:
	default:
		debug.Log("follower", "command dropped, queue full")
	}
}

// Start forwards Follower.Start onto the conductor goroutine.
func (c *Conductor) Start() { c.do((*Follower).Start) }

// Stop forwards Follower.Stop.
func (c *Conductor) Stop() { c.do((*Follower).Stop) }

// ToggleActive forwards Follower.ToggleActive.
func (c *Conductor) ToggleActive() { c.do((*Follower).ToggleActive) }

// SetAudioAccess forwards the permission flag.
func (c *Conductor) SetAudioAccess(granted bool) {
	c.do(func(f *Follower) { f.SetAudioAccess(granted) })
}

// AdjustThreshold nudges the gate threshold by delta, clamped.
func (c *Conductor) AdjustThreshold(delta float32) {
	c.do(func(f *Follower) { f.SetThreshold(f.Threshold + delta) })
}

// AdjustGain nudges the gain by delta, clamped.
func (c *Conductor) AdjustGain(delta float32) {
	c.do(func(f *Follower) { f.SetGain(f.Gain + delta) })
}

// AdjustSmoothing nudges the smoothing coefficient by delta, clamped.
func (c *Conductor) AdjustSmoothing(delta float32) {
	c.do(func(f *Follower) { f.SetSmoothing(f.Smoothing + delta) })
}
