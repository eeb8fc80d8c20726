package pitch

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Pitch
	}{
		{"C4", Pitch{C, Natural, 4}},
		{"c4", Pitch{C, Natural, 4}},
		{"Bb3", Pitch{B, Flat, 3}},
		{"bb3", Pitch{B, Flat, 3}},
		{"F#5", Pitch{F, Sharp, 5}},
		{"Ab1", Pitch{A, Flat, 1}},
		{"E#6", Pitch{E, Sharp, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected error
	}{
		{"", ErrInvalidLength},
		{"C", ErrInvalidLength},
		{"C#44", ErrInvalidLength},
		{"H4", ErrInvalidLetter},
		{"x4", ErrInvalidLetter},
		{"C7", ErrInvalidOctave},
		{"C0", ErrInvalidOctave},
		{"Cb9", ErrInvalidOctave},
		{"Cx4", ErrInvalidAccidental},
		{"C44", ErrInvalidAccidental},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, tt.expected) {
				t.Fatalf("Parse(%q) error = %v, want %v", tt.input, err, tt.expected)
			}
			var perr *ParseError
			if !errors.As(err, &perr) || perr.Input != tt.input {
				t.Errorf("Parse(%q) error %v is not a ParseError for the input", tt.input, err)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"C4", "Bb3", "F#5", "Ab1", "E#6", "Fb3", "G2"} {
		if got := MustParse(s).String(); got != s {
			t.Errorf("MustParse(%q).String() = %q", s, got)
		}
	}
}

func TestStringDoubleAccidentals(t *testing.T) {
	tests := []struct {
		p        Pitch
		expected string
	}{
		{Pitch{E, DoubleFlat, 4}, "Ebb4"},
		{Pitch{F, DoubleSharp, 2}, "Fx2"},
		{Pitch{G, -3, 3}, "G(-3)3"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestOrdering(t *testing.T) {
	tests := []struct {
		lower, higher string
	}{
		{"Cb4", "C4"},
		{"C4", "C#4"},
		{"E#4", "F4"},
		{"E4", "Fb4"},
		{"B3", "C4"},
		{"B#3", "Cb4"},
		{"G#1", "Ab1"},
		{"C1", "C2"},
	}
	for _, tt := range tests {
		t.Run(tt.lower+"<"+tt.higher, func(t *testing.T) {
			lo, hi := MustParse(tt.lower), MustParse(tt.higher)
			if !lo.Less(hi) {
				t.Errorf("%v should be below %v", lo, hi)
			}
			if hi.LessOrEqual(lo) {
				t.Errorf("%v should not be <= %v", hi, lo)
			}
			if Compare(lo, hi) != -1 || Compare(hi, lo) != 1 {
				t.Errorf("Compare(%v, %v) not antisymmetric", lo, hi)
			}
		})
	}
}

func TestEqualityIsNotEnharmonic(t *testing.T) {
	if MustParse("E#4") == MustParse("F4") {
		t.Error("E#4 and F4 must be distinct")
	}
	if Compare(MustParse("D4"), MustParse("D4")) != 0 {
		t.Error("Compare of equal pitches should be 0")
	}
}

func TestUp(t *testing.T) {
	tests := []struct {
		from, to string
	}{
		{"C4", "D4"},
		{"A3", "B3"},
		{"B3", "C4"},
		{"Bb3", "Cb4"},
		{"G4", "A4"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.from).Up(); got != MustParse(tt.to) {
			t.Errorf("%s.Up() = %v, want %s", tt.from, got, tt.to)
		}
	}
}

func TestDiatonicDistance(t *testing.T) {
	tests := []struct {
		p, ref   string
		expected int
	}{
		{"B4", "B4", 0},
		{"C5", "B4", 1},
		{"A4", "B4", -1},
		{"C4", "B4", -6},
		{"Fb3", "B4", -10},
		{"E#6", "B4", 10},
		{"Ab1", "D3", -10},
	}
	for _, tt := range tests {
		if got := DiatonicDistance(MustParse(tt.p), MustParse(tt.ref)); got != tt.expected {
			t.Errorf("DiatonicDistance(%s, %s) = %d, want %d", tt.p, tt.ref, got, tt.expected)
		}
	}
}

func TestMIDI(t *testing.T) {
	tests := []struct {
		p        string
		expected int
	}{
		{"C4", 60},
		{"A4", 69},
		{"B#3", 60},
		{"Cb4", 59},
		{"Ab1", 32},
	}
	for _, tt := range tests {
		if got := MustParse(tt.p).MIDI(); got != tt.expected {
			t.Errorf("%s.MIDI() = %d, want %d", tt.p, got, tt.expected)
		}
	}
}

func TestFromMIDI(t *testing.T) {
	tests := []struct {
		n           int
		preferFlats bool
		expected    string
	}{
		{60, false, "C4"},
		{61, false, "C#4"},
		{61, true, "Db4"},
		{70, true, "Bb4"},
		{47, false, "B2"},
	}
	for _, tt := range tests {
		got, err := FromMIDI(tt.n, tt.preferFlats)
		if err != nil {
			t.Fatalf("FromMIDI(%d) error = %v", tt.n, err)
		}
		if got.String() != tt.expected {
			t.Errorf("FromMIDI(%d, %v) = %v, want %s", tt.n, tt.preferFlats, got, tt.expected)
		}
		if got.MIDI() != tt.n {
			t.Errorf("FromMIDI(%d).MIDI() = %d", tt.n, got.MIDI())
		}
	}
	if _, err := FromMIDI(128, false); err == nil {
		t.Error("FromMIDI(128) should fail")
	}
}
