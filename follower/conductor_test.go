package follower

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-ccfollower/midi"
)

type recordingSender struct {
	mu     sync.Mutex
	events []midi.Event
}

func (r *recordingSender) Send(e midi.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// waitSnapshot polls the update channel until pred holds. Commands are
// processed asynchronously, so tests wait for their effect to be published
// before feeding samples.
func waitSnapshot(t *testing.T, c *Conductor, pred func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-c.Updates:
			if pred(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("snapshot condition never observed")
			return Snapshot{}
		}
	}
}

func TestConductorForwardsActiveEvents(t *testing.T) {
	f := New()
	f.SetAudioAccess(true)
	f.Smoothing = 0

	sender := &recordingSender{}
	samples := make(chan float32)
	c := NewConductor(f, sender, samples)

	done := make(chan struct{})
	go func() {
		c.Run(context.Background())
		close(done)
	}()

	c.ToggleActive() // stopped -> running, inactive
	c.ToggleActive() // emitting
	waitSnapshot(t, c, func(s Snapshot) bool { return s.Active })

	for i := 0; i < 10; i++ {
		samples <- 0.5
	}
	close(samples)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("conductor did not exit on closed sample channel")
	}

	if got := sender.count(); got != 10 {
		t.Errorf("sent %d events, want 10", got)
	}
}

func TestConductorDropsSamplesWhileStopped(t *testing.T) {
	f := New()
	f.SetAudioAccess(true)

	sender := &recordingSender{}
	samples := make(chan float32)
	c := NewConductor(f, sender, samples)

	done := make(chan struct{})
	go func() {
		c.Run(context.Background())
		close(done)
	}()

	for i := 0; i < 5; i++ {
		samples <- 1.0
	}
	close(samples)
	<-done

	if sender.count() != 0 {
		t.Errorf("stopped conductor sent %d events, want 0", sender.count())
	}
	if f.Smoothed() != 0 {
		t.Errorf("stopped conductor integrated samples: smoothed = %v", f.Smoothed())
	}
}

func TestConductorPublishesSnapshots(t *testing.T) {
	f := New()
	f.SetAudioAccess(true)
	f.Smoothing = 0

	samples := make(chan float32)
	c := NewConductor(f, nil, samples)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.Start()
	waitSnapshot(t, c, func(s Snapshot) bool { return s.Running })

	samples <- 1.0
	waitSnapshot(t, c, func(s Snapshot) bool { return s.CCValue == 127 })
}

func TestConductorAdjustsClampedParams(t *testing.T) {
	f := New()
	samples := make(chan float32)
	c := NewConductor(f, nil, samples)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	c.AdjustGain(100)
	waitSnapshot(t, c, func(s Snapshot) bool { return s.Gain == MaxGain })

	c.AdjustSmoothing(5)
	waitSnapshot(t, c, func(s Snapshot) bool { return s.Smoothing == MaxSmoothing })
}
