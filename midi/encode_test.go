package midi

import (
	"bytes"
	"testing"
)

func TestEncodeCCMasks(t *testing.T) {
	tests := []struct {
		name              string
		cc, value, ch     int
		wantCC, wantValue uint8
		wantChannel       uint8
	}{
		{"in range", 10, 64, 1, 10, 64, 0},
		{"all out of range", 200, 300, 17, 200 & 0x7F, 300 & 0x7F, 16 & 0x0F},
		{"channel 16", 0, 127, 16, 0, 127, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := EncodeCC(tt.cc, tt.value, tt.ch)
			if e.Type != ControlChange {
				t.Fatalf("Type = 0x%02X, want ControlChange", uint8(e.Type))
			}
			if e.Data1 != tt.wantCC || e.Data2 != tt.wantValue || e.Channel != tt.wantChannel {
				t.Errorf("EncodeCC(%d, %d, %d) = %v, want cc=%d val=%d ch=%d",
					tt.cc, tt.value, tt.ch, e, tt.wantCC, tt.wantValue, tt.wantChannel)
			}
		})
	}
}

func TestEncodeNoteMasks(t *testing.T) {
	on := EncodeNoteOn(60, 127, 1)
	if on.Type != NoteOn || on.Data1 != 60 || on.Data2 != 127 || on.Channel != 0 {
		t.Errorf("EncodeNoteOn = %v", on)
	}

	off := EncodeNoteOff(200, 0, 5)
	if off.Type != NoteOff || off.Data1 != 200&0x7F || off.Channel != 4 {
		t.Errorf("EncodeNoteOff = %v", off)
	}
}

func TestEventBytes(t *testing.T) {
	e := EncodeCC(10, 64, 1)
	if got, want := e.Bytes(), []byte{0xB0, 10, 64}; !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %v, want %v", got, want)
	}

	e = EncodeNoteOn(60, 100, 3)
	if got, want := e.Bytes(), []byte{0x92, 60, 100}; !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %v, want %v", got, want)
	}

	payload := []byte{0xF0, 0x00, 0x20, 0x29, 0xF7}
	e = EncodeSysEx(payload)
	if !bytes.Equal(e.Bytes(), payload) {
		t.Errorf("SysEx Bytes() = %v, want payload passthrough", e.Bytes())
	}
}
