package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-ccfollower/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "monitor":
		monitor(arg(2))
	case "send":
		sendSweep(arg(2))
	default:
		usage()
	}
}

func arg(i int) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return ""
}

func usage() {
	fmt.Println("midimon - MIDI port utility")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list            - List all MIDI ports")
	fmt.Println("  monitor [port]  - Print decoded events from an input port")
	fmt.Println("  send [port]     - Send a CC 1 sweep to an output port")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
	}
}

func monitor(portName string) {
	om := midi.NewOutputManager()
	err := om.ListenRaw(portName, func(e midi.Event) {
		fmt.Printf("%s  %s\n", time.Now().Format("15:04:05.000"), e)
	})
	if err != nil {
		fmt.Printf("monitor: %v\n", err)
		os.Exit(1)
	}
	defer om.Close()

	fmt.Println("Monitoring... ctrl+c to stop")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
}

func sendSweep(portName string) {
	om := midi.NewOutputManager()
	if err := om.Connect(portName); err != nil {
		fmt.Printf("send: %v\n", err)
		os.Exit(1)
	}
	defer om.Close()

	fmt.Printf("Sweeping CC 1 on %s\n", om.PortName())

	mapping := midi.DefaultMapping()
	for i := 0; i <= 100; i++ {
		event := mapping.ControlChange(float64(i) / 100)
		if err := om.Send(event); err != nil {
			fmt.Printf("send: %v\n", err)
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
}
