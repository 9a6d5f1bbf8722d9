package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-ccfollower/config"
	"go-ccfollower/debug"
	"go-ccfollower/follower"
	"go-ccfollower/midi"
	"go-ccfollower/theme"
	"go-ccfollower/tui"
)

func main() {
	debugFlag := flag.Bool("debug", false, "log to ~/.config/go-ccfollower/debug.log")
	portFlag := flag.String("port", "", "midi output port name (overrides config)")
	flag.Parse()

	if *debugFlag {
		if err := debug.Enable(); err != nil {
			fmt.Printf("debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}

	portName := cfg.Output.PortName
	if *portFlag != "" {
		portName = *portFlag
	}

	out := midi.NewOutputManager()
	if err := out.Connect(portName); err != nil {
		// No transport is not fatal: the follower keeps running and the
		// UI shows values without a destination.
		debug.Log("main", "midi output: %v", err)
	}
	defer out.Close()

	f := cfg.Follower.NewFollower()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Real audio capture is platform glue this program doesn't carry; the
	// built-in test signal stands in for the capture callback.
	samples := make(chan float32)
	go testSignal(ctx, samples)

	cond := follower.NewConductor(f, out, samples)
	go cond.Run(ctx)

	// The test signal is always available, so "permission" is granted
	// up front. A capture layer would set this from its own check.
	cond.SetAudioAccess(true)
	cond.Start()

	m := tui.NewModel(cond, theme.New(), out.PortName())
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	saveParams(cfg, cond)
}

// testSignal feeds a slow amplitude sweep, a rectified LFO with a touch of
// wobble, at roughly the block rate an audio callback would deliver.
func testSignal(ctx context.Context, out chan<- float32) {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	t := 0.0
	for {
		select {
		case <-ctx.Done():
			close(out)
			return
		case <-ticker.C:
			t += 0.016
			amp := math.Abs(math.Sin(t*0.7)) * (0.85 + 0.15*math.Sin(t*5.3))
			select {
			case out <- float32(amp):
			case <-ctx.Done():
				close(out)
				return
			}
		}
	}
}

// saveParams writes the last published follower settings back to disk so
// in-session edits survive a restart.
func saveParams(cfg *config.Config, cond *follower.Conductor) {
	select {
	case snap := <-cond.Updates:
		cfg.Follower.Threshold = snap.Threshold
		cfg.Follower.Gain = snap.Gain
		cfg.Follower.Smoothing = snap.Smoothing
		if err := cfg.Save(); err != nil {
			debug.Log("main", "save config: %v", err)
		}
	default:
	}
}
