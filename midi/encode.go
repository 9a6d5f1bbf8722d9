package midi

// Encoding never rejects input. Out-of-range controller numbers, values and
// channels are masked down to valid 7-bit / 4-bit ranges instead of raising
// an error: the controller surface drives a real-time interactive path and
// must not halt on a bad value.

// EncodeCC builds a ControlChange event. channel1 is 1-indexed as in the
// mapping model; it is converted to the 0-indexed wire channel here.
func EncodeCC(cc, value, channel1 int) Event {
	return Event{
		Type:    ControlChange,
		Channel: uint8(channel1-1) & 0x0F,
		Data1:   uint8(cc) & 0x7F,
		Data2:   uint8(value) & 0x7F,
	}
}

// EncodeNoteOn builds a NoteOn event with the same masking policy.
func EncodeNoteOn(note, velocity, channel1 int) Event {
	return Event{
		Type:    NoteOn,
		Channel: uint8(channel1-1) & 0x0F,
		Data1:   uint8(note) & 0x7F,
		Data2:   uint8(velocity) & 0x7F,
	}
}

// EncodeNoteOff builds a NoteOff event.
func EncodeNoteOff(note, velocity, channel1 int) Event {
	return Event{
		Type:    NoteOff,
		Channel: uint8(channel1-1) & 0x0F,
		Data1:   uint8(note) & 0x7F,
		Data2:   uint8(velocity) & 0x7F,
	}
}

// EncodeSysEx wraps a raw SysEx payload. The payload is passed through
// untouched; delimiter framing is left to the transport.
func EncodeSysEx(payload []byte) Event {
	return Event{Type: SystemExclusive, SysEx: payload}
}
