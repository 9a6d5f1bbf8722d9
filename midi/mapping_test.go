package midi

import "testing"

func TestRangeMappingBounds(t *testing.T) {
	tests := []struct {
		name string
		m    RangeMapping
	}{
		{"full range", RangeMapping{0, 1, 0, 127}},
		{"offset input", RangeMapping{-1, 1, 0, 127}},
		{"narrow output", RangeMapping{0, 1, 40, 80}},
		{"reversed output", RangeMapping{0, 1, 127, 0}},
		{"negative output", RangeMapping{0, 1, -64, 63}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Map(tt.m.InputLow); got != tt.m.OutputLow {
				t.Errorf("Map(InputLow) = %d, want %d", got, tt.m.OutputLow)
			}
			if got := tt.m.Map(tt.m.InputHigh); got != tt.m.OutputHigh {
				t.Errorf("Map(InputHigh) = %d, want %d", got, tt.m.OutputHigh)
			}
		})
	}
}

func TestRangeMappingClamps(t *testing.T) {
	m := RangeMapping{InputLow: 0, InputHigh: 1, OutputLow: 0, OutputHigh: 127}

	below := []float64{-0.001, -1, -1e9}
	for _, x := range below {
		if got := m.Map(x); got != m.Map(m.InputLow) {
			t.Errorf("Map(%g) = %d, want clamp to %d", x, got, m.Map(m.InputLow))
		}
	}

	above := []float64{1.001, 2, 1e9}
	for _, x := range above {
		if got := m.Map(x); got != m.Map(m.InputHigh) {
			t.Errorf("Map(%g) = %d, want clamp to %d", x, got, m.Map(m.InputHigh))
		}
	}
}

func TestRangeMappingMonotonic(t *testing.T) {
	m := RangeMapping{InputLow: 0, InputHigh: 1, OutputLow: 10, OutputHigh: 100}

	prev := m.Map(0)
	for i := 1; i <= 1000; i++ {
		got := m.Map(float64(i) / 1000)
		if got < prev {
			t.Fatalf("Map not monotonic: Map(%g) = %d < previous %d", float64(i)/1000, got, prev)
		}
		prev = got
	}
}

func TestRangeMappingDegenerate(t *testing.T) {
	m := RangeMapping{InputLow: 0.5, InputHigh: 0.5, OutputLow: 42, OutputHigh: 99}

	for _, x := range []float64{-1, 0, 0.5, 1, 1e9} {
		if got := m.Map(x); got != 42 {
			t.Errorf("degenerate Map(%g) = %d, want OutputLow 42", x, got)
		}
	}
}

func TestRangeMappingRounding(t *testing.T) {
	// Half away from zero: 0.5 of the way across [0,1] lands exactly on
	// 63.5 for a [0,127] output and must round up to 64.
	m := RangeMapping{InputLow: 0, InputHigh: 1, OutputLow: 0, OutputHigh: 127}
	if got := m.Map(0.5); got != 64 {
		t.Errorf("Map(0.5) = %d, want 64", got)
	}
}

func TestMappingControlChange(t *testing.T) {
	mp := DefaultMapping()
	mp.CCNumber = 74
	mp.MIDIChannel = 3

	e := mp.ControlChange(1.0)
	if e.Type != ControlChange || e.Channel != 2 || e.Data1 != 74 || e.Data2 != 127 {
		t.Errorf("ControlChange(1.0) = %v, want CC{ch:2, ctrl:74, val:127}", e)
	}
}

func TestMappingNote(t *testing.T) {
	mp := DefaultMapping()
	if _, ok := mp.NoteOn(100); ok {
		t.Error("NoteOn without a bound note number should not produce an event")
	}

	note := 60
	mp.NoteNumber = &note
	e, ok := mp.NoteOn(100)
	if !ok {
		t.Fatal("NoteOn with bound note produced no event")
	}
	if e.Type != NoteOn || e.Data1 != 60 || e.Data2 != 100 || e.Channel != 0 {
		t.Errorf("NoteOn = %v", e)
	}

	off, ok := mp.NoteOff()
	if !ok || off.Type != NoteOff || off.Data1 != 60 {
		t.Errorf("NoteOff = %v, ok = %v", off, ok)
	}
}
