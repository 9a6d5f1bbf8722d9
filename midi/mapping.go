package midi

import "math"

// RangeMapping is an affine, clamped transform from a continuous input range
// to an integer output range. InputLow < InputHigh by convention; the struct
// does not enforce it, and a reversed input range degenerates to clamping at
// a single point. Output bounds may be reversed to invert a control.
type RangeMapping struct {
	InputLow   float64 `json:"inputLow"`
	InputHigh  float64 `json:"inputHigh"`
	OutputLow  int     `json:"outputLow"`
	OutputHigh int     `json:"outputHigh"`
}

// DefaultRange maps normalized control input onto the full 7-bit MIDI range.
func DefaultRange() RangeMapping {
	return RangeMapping{InputLow: 0, InputHigh: 1, OutputLow: 0, OutputHigh: 127}
}

// Map clamps input to the input range and maps it affinely onto the output
// range, rounding half away from zero. A degenerate input range
// (InputHigh == InputLow) returns OutputLow for any input.
func (m RangeMapping) Map(input float64) int {
	clamped := math.Min(math.Max(input, m.InputLow), m.InputHigh)

	span := m.InputHigh - m.InputLow
	if span == 0 {
		return m.OutputLow
	}

	normalized := (clamped - m.InputLow) / span
	mapped := normalized*float64(m.OutputHigh-m.OutputLow) + float64(m.OutputLow)
	return int(math.Round(mapped))
}

// Mapping binds a control to a MIDI destination. MIDIChannel is 1-indexed
// (1-16) as presented to the user; conversion to the wire channel happens at
// encode time. NoteNumber is set only for controls that also fire notes
// (drum pads).
type Mapping struct {
	CCNumber    int          `json:"ccNumber"`
	MIDIChannel int          `json:"midiChannel"`
	NoteNumber  *int         `json:"noteNumber,omitempty"`
	Range       RangeMapping `json:"rangeMapping"`
}

// DefaultMapping is the binding a fresh control gets: mod wheel, channel 1,
// full range.
func DefaultMapping() Mapping {
	return Mapping{CCNumber: 1, MIDIChannel: 1, Range: DefaultRange()}
}

// ControlChange maps a control value through the range mapping and encodes
// it as a CC event.
func (m Mapping) ControlChange(input float64) Event {
	return EncodeCC(m.CCNumber, m.Range.Map(input), m.MIDIChannel)
}

// NoteOn encodes a note-on for the mapped note number. Returns false when no
// note number is bound.
func (m Mapping) NoteOn(velocity int) (Event, bool) {
	if m.NoteNumber == nil {
		return Event{}, false
	}
	return EncodeNoteOn(*m.NoteNumber, velocity, m.MIDIChannel), true
}

// NoteOff encodes the matching note-off.
func (m Mapping) NoteOff() (Event, bool) {
	if m.NoteNumber == nil {
		return Event{}, false
	}
	return EncodeNoteOff(*m.NoteNumber, 0, m.MIDIChannel), true
}
