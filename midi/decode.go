package midi

// Decode classifies a raw byte buffer as a MIDI event. It understands the
// Mackie Control-style subset this program consumes: NoteOn, NoteOff and
// ControlChange channel voice messages, plus SystemExclusive passthrough.
//
// Unsupported status bytes and buffers too short for their message type
// produce (Event{}, false) rather than an error — an unrecognized message is
// a no-op, not a failure. Callers that care log it at the boundary.
func Decode(raw []byte) (Event, bool) {
	if len(raw) == 0 {
		return Event{}, false
	}

	status := raw[0]

	// SysEx is matched on the whole status byte, not the nibble, and the
	// entire buffer is the payload. Validating 0xF7 termination is the
	// transport's job.
	if status == 0xF0 {
		return Event{Type: SystemExclusive, SysEx: raw}, true
	}

	if len(raw) < 3 {
		return Event{}, false
	}

	channel := status & 0x0F
	switch EventType(status & 0xF0) {
	case NoteOn:
		return Event{Type: NoteOn, Channel: channel, Data1: raw[1] & 0x7F, Data2: raw[2] & 0x7F}, true
	case NoteOff:
		return Event{Type: NoteOff, Channel: channel, Data1: raw[1] & 0x7F, Data2: raw[2] & 0x7F}, true
	case ControlChange:
		return Event{Type: ControlChange, Channel: channel, Data1: raw[1] & 0x7F, Data2: raw[2] & 0x7F}, true
	}

	return Event{}, false
}
