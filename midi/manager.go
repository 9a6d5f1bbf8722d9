package midi

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-ccfollower/debug"
)

// OutputManager owns the connection to a MIDI output port and turns Event
// values into wire messages. It is the transport collaborator the mapping
// and follower cores hand events to; they never open or close ports
// themselves.
type OutputManager struct {
	mu       sync.Mutex
	send     func(msg gomidi.Message) error
	portName string
	stopIn   func()
}

// NewOutputManager creates a manager with no port connected. Send before
// Connect reports an error; callers treat that as "transport unavailable"
// and keep going.
func NewOutputManager() *OutputManager {
	return &OutputManager{}
}

// scanPorts fetches the current port lists with a timeout guard
// (CoreMIDI can hang; skip the scan rather than block the app).
func scanPorts() ([]drivers.In, []drivers.Out, bool) {
	type portsResult struct {
		ins  []drivers.In
		outs []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		return r.ins, r.outs, true
	case <-time.After(3 * time.Second):
		// User needs to run: sudo killall coreaudiod midiserver
		debug.Log("midi", "port scan timed out")
		return nil, nil, false
	}
}

// Connect opens the first output port whose name contains portName
// (case-insensitive). With an empty portName it takes the first available
// port.
func (om *OutputManager) Connect(portName string) error {
	_, outs, ok := scanPorts()
	if !ok {
		return fmt.Errorf("midi port scan timed out")
	}
	if len(outs) == 0 {
		return fmt.Errorf("no midi output ports available")
	}

	var port drivers.Out
	if portName == "" {
		port = outs[0]
	} else {
		want := strings.ToLower(portName)
		for i, p := range outs {
			if strings.Contains(strings.ToLower(p.String()), want) {
				port = outs[i]
				break
			}
		}
	}
	if port == nil {
		return fmt.Errorf("no midi output port matching %q", portName)
	}

	send, err := gomidi.SendTo(port)
	if err != nil {
		return fmt.Errorf("open output %q: %w", port.String(), err)
	}

	om.mu.Lock()
	om.send = send
	om.portName = port.String()
	om.mu.Unlock()

	debug.Log("midi", "connected output %q", port.String())
	return nil
}

// PortName returns the connected output port name, or "" when disconnected.
func (om *OutputManager) PortName() string {
	om.mu.Lock()
	defer om.mu.Unlock()
	return om.portName
}

// Send encodes the event as a gomidi message and writes it to the connected
// port.
func (om *OutputManager) Send(e Event) error {
	om.mu.Lock()
	send := om.send
	om.mu.Unlock()

	if send == nil {
		return fmt.Errorf("no midi output connected")
	}

	switch e.Type {
	case ControlChange:
		return send(gomidi.ControlChange(e.Channel, e.Data1, e.Data2))
	case NoteOn:
		return send(gomidi.NoteOn(e.Channel, e.Data1, e.Data2))
	case NoteOff:
		return send(gomidi.NoteOffVelocity(e.Channel, e.Data1, e.Data2))
	case SystemExclusive:
		return send(gomidi.SysEx(trimSysExFraming(e.SysEx)))
	}
	return fmt.Errorf("unsupported event type 0x%02X", uint8(e.Type))
}

// trimSysExFraming strips the 0xF0/0xF7 delimiters if present; gomidi adds
// its own framing.
func trimSysExFraming(raw []byte) []byte {
	if len(raw) > 0 && raw[0] == 0xF0 {
		raw = raw[1:]
	}
	if len(raw) > 0 && raw[len(raw)-1] == 0xF7 {
		raw = raw[:len(raw)-1]
	}
	return raw
}

// ListenRaw opens the first input port matching portName and runs every raw
// message through Decode, invoking handler for the supported subset.
// Unsupported messages are logged and dropped, never surfaced as errors.
func (om *OutputManager) ListenRaw(portName string, handler func(Event)) error {
	ins, _, ok := scanPorts()
	if !ok {
		return fmt.Errorf("midi port scan timed out")
	}

	var port drivers.In
	want := strings.ToLower(portName)
	for i, p := range ins {
		if portName == "" || strings.Contains(strings.ToLower(p.String()), want) {
			port = ins[i]
			break
		}
	}
	if port == nil {
		return fmt.Errorf("no midi input port matching %q", portName)
	}

	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		event, ok := Decode(msg)
		if !ok {
			debug.LogEvery(100, "midi", "unsupported message % X", []byte(msg))
			return
		}
		handler(event)
	})
	if err != nil {
		return fmt.Errorf("open input %q: %w", port.String(), err)
	}

	om.mu.Lock()
	om.stopIn = stop
	om.mu.Unlock()
	return nil
}

// Close stops the input listener and drops the output connection.
func (om *OutputManager) Close() {
	om.mu.Lock()
	defer om.mu.Unlock()
	if om.stopIn != nil {
		om.stopIn()
		om.stopIn = nil
	}
	om.send = nil
	om.portName = ""
}
