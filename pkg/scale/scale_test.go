package scale

import (
	"errors"
	"strings"
	"testing"

	"github.com/Pietzcker/ambitus/pkg/pitch"
)

func names(notes []pitch.Pitch) string {
	parts := make([]string, len(notes))
	for i, n := range notes {
		parts[i] = n.String()
	}
	return strings.Join(parts, " ")
}

func TestModePatterns(t *testing.T) {
	tests := []struct {
		mode     int
		expected Pattern
	}{
		{Aeolian, Pattern{2, 1, 2, 2, 1, 2, 2}},
		{Locrian, Pattern{1, 2, 2, 1, 2, 2, 2}},
		{Ionian, Pattern{2, 2, 1, 2, 2, 2, 1}},
		{Dorian, Pattern{2, 1, 2, 2, 2, 1, 2}},
		{Phrygian, Pattern{1, 2, 2, 2, 1, 2, 2}},
		{Lydian, Pattern{2, 2, 2, 1, 2, 2, 1}},
		{Mixolydian, Pattern{2, 2, 1, 2, 2, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(modeNames[tt.mode], func(t *testing.T) {
			got := Mode(tt.mode)
			if got != tt.expected {
				t.Errorf("Mode(%d) = %v, want %v", tt.mode, got, tt.expected)
			}
			if got.Sum() != 12 {
				t.Errorf("Mode(%d).Sum() = %d, want 12", tt.mode, got.Sum())
			}
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		pattern  Pattern
		start    string
		stop     string
		expected string
	}{
		{"C major", Mode(Ionian), "C4", "C5", "C4 D4 E4 F4 G4 A4 B4 C5"},
		{"D dorian", Mode(Dorian), "D3", "D4", "D3 E3 F3 G3 A3 B3 C4 D4"},
		{"C dorian", Mode(Dorian), "C3", "C4", "C3 D3 Eb3 F3 G3 A3 Bb3 C4"},
		{"A aeolian", Mode(Aeolian), "A2", "A3", "A2 B2 C3 D3 E3 F3 G3 A3"},
		{"F# major", Mode(Ionian), "F#3", "F#4", "F#3 G#3 A#3 B3 C#4 D#4 E#4 F#4"},
		{"Bb lydian", Mode(Lydian), "Bb2", "Bb3", "Bb2 C3 D3 E3 F3 G3 A3 Bb3"},
		{"E phrygian", Mode(Phrygian), "E4", "E5", "E4 F4 G4 A4 B4 C5 D5 E5"},
		{"A harmonic minor", Pattern{2, 1, 2, 2, 1, 3, 1}, "A3", "A4", "A3 B3 C4 D4 E4 F4 G#4 A4"},
		{"partial range", Mode(Ionian), "C4", "F#4", "C4 D4 E4 F4"},
		{"single note", Mode(Ionian), "G4", "G4", "G4"},
		{"two octaves", Mode(Ionian), "G2", "G4", "G2 A2 B2 C3 D3 E3 F#3 G3 A3 B3 C4 D4 E4 F#4 G4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, err := Build(tt.pattern, pitch.MustParse(tt.start), pitch.MustParse(tt.stop))
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := names(notes); got != tt.expected {
				t.Errorf("Build() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestBuildOctaveLength(t *testing.T) {
	for mode := range modeNames {
		for _, start := range []string{"C3", "Db4", "F#2", "B3", "Eb5"} {
			p := pitch.MustParse(start)
			stop := p
			stop.Octave++
			notes, err := Build(Mode(mode), p, stop)
			if err != nil {
				t.Fatalf("Build(%s from %s) error = %v", modeNames[mode], start, err)
			}
			if len(notes) != 8 {
				t.Errorf("%s from %s: %d notes, want 8: %s", modeNames[mode], start, len(notes), names(notes))
			}
			if notes[7] != stop {
				t.Errorf("%s from %s ends on %v, want %v", modeNames[mode], start, notes[7], stop)
			}
		}
	}
}

func TestBuildDoesNotAliasStart(t *testing.T) {
	start := pitch.MustParse("C3")
	notes, err := Build(Mode(Dorian), start, pitch.MustParse("C4"))
	if err != nil {
		t.Fatal(err)
	}
	if start != pitch.MustParse("C3") {
		t.Errorf("start was modified: %v", start)
	}
	notes[0].Accidental = pitch.Sharp
	if notes[1].Accidental != pitch.Natural {
		t.Errorf("notes share state: %s", names(notes))
	}
}

func TestBuildStopBelowStart(t *testing.T) {
	_, err := Build(Mode(Ionian), pitch.MustParse("C4"), pitch.MustParse("B3"))
	if !errors.Is(err, ErrStopBelowStart) {
		t.Fatalf("error = %v, want ErrStopBelowStart", err)
	}
	var rerr *RangeError
	if !errors.As(err, &rerr) || rerr.Stop.String() != "B3" || rerr.Start.String() != "C4" {
		t.Errorf("error %v does not report start and stop", err)
	}
}

func TestBuildInvalidPattern(t *testing.T) {
	_, err := Build(Pattern{2, 2, 0, 2, 2, 2, 2}, pitch.MustParse("C4"), pitch.MustParse("C5"))
	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("error = %v, want ErrInvalidPattern", err)
	}
}

func TestBuildChecked(t *testing.T) {
	// a run of half tones from Cb drives E down to a triple flat
	chromatic := Pattern{1, 1, 1, 1, 1, 1, 6}
	start := pitch.MustParse("Cb4")
	notes, err := Build(chromatic, start, DefaultStop(start))
	if err != nil {
		t.Fatal(err)
	}
	if notes[2].Accidental != -3 {
		t.Fatalf("third note = %v, want a triple flat", notes[2])
	}
	if CheckRepresentable(notes) == nil {
		t.Fatalf("expected unrepresentable accidentals in %s", names(notes))
	}
	_, err = BuildChecked(chromatic, start, DefaultStop(start))
	if !errors.Is(err, ErrUnrepresentable) {
		t.Errorf("BuildChecked() error = %v, want ErrUnrepresentable", err)
	}

	// Cb locrian stays within double flats
	notes, err = BuildChecked(Mode(Locrian), start, DefaultStop(start))
	if err != nil {
		t.Fatalf("BuildChecked(Cb locrian) error = %v", err)
	}
	if got := names(notes); got != "Cb4 Dbb4 Ebb4 Fb4 Gbb4 Abb4 Bbb4 Cb5" {
		t.Errorf("Cb locrian = %s", got)
	}
}

func TestDefaultStop(t *testing.T) {
	tests := []struct {
		start, expected string
	}{
		{"C4", "C5"},
		{"Bb2", "Bb3"},
		{"E5", "E6"},
		{"F5", "E#6"},
		{"C6", "E#6"},
	}
	for _, tt := range tests {
		if got := DefaultStop(pitch.MustParse(tt.start)); got.String() != tt.expected {
			t.Errorf("DefaultStop(%s) = %v, want %s", tt.start, got, tt.expected)
		}
	}
}
