package midi

import "fmt"

// EventType holds the MIDI status byte for the message kind. Channel voice
// types carry the channel in the low nibble on the wire; SystemExclusive is
// the full 0xF0 status byte.
type EventType uint8

const (
	NoteOff         EventType = 0x80
	NoteOn          EventType = 0x90
	ControlChange   EventType = 0xB0
	SystemExclusive EventType = 0xF0
)

// Event is a single MIDI message, already masked to valid wire ranges.
// Channel is the 0-indexed wire channel (0-15). For NoteOn/NoteOff, Data1 is
// the note number and Data2 the velocity; for ControlChange, Data1 is the
// controller number and Data2 the value. SysEx holds the raw payload for
// SystemExclusive events and is nil otherwise.
type Event struct {
	Type    EventType
	Channel uint8
	Data1   uint8
	Data2   uint8
	SysEx   []byte
}

// Bytes renders the event as raw wire bytes: the status byte with the
// channel in the low nibble followed by the two data bytes, or the SysEx
// buffer unchanged (framing is the transport's concern).
func (e Event) Bytes() []byte {
	if e.Type == SystemExclusive {
		return e.SysEx
	}
	status := uint8(e.Type) | (e.Channel & 0x0F)
	return []byte{status, e.Data1 & 0x7F, e.Data2 & 0x7F}
}

func (e Event) String() string {
	switch e.Type {
	case NoteOn:
		return fmt.Sprintf("NoteOn{ch:%d, note:%d, vel:%d}", e.Channel, e.Data1, e.Data2)
	case NoteOff:
		return fmt.Sprintf("NoteOff{ch:%d, note:%d, vel:%d}", e.Channel, e.Data1, e.Data2)
	case ControlChange:
		return fmt.Sprintf("CC{ch:%d, ctrl:%d, val:%d}", e.Channel, e.Data1, e.Data2)
	case SystemExclusive:
		return fmt.Sprintf("SysEx{%d bytes}", len(e.SysEx))
	}
	return fmt.Sprintf("Event{type:0x%02X}", uint8(e.Type))
}
