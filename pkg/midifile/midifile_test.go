package midifile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Pietzcker/ambitus/pkg/notation"
	"github.com/Pietzcker/ambitus/pkg/pitch"
	"github.com/Pietzcker/ambitus/pkg/scale"
)

func TestExportRoundTrip(t *testing.T) {
	notes, err := scale.Build(scale.Mode(scale.Dorian), pitch.MustParse("C4"), pitch.MustParse("C5"))
	if err != nil {
		t.Fatal(err)
	}
	data, err := NewExporter().Export(notes)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if string(data[:4]) != "MThd" {
		t.Fatalf("Export() header = %q, want MThd", data[:4])
	}

	got, err := ReadNotes(data)
	if err != nil {
		t.Fatalf("ReadNotes() error = %v", err)
	}
	want := []uint8{60, 62, 63, 65, 67, 69, 70, 72}
	if len(got) != len(want) {
		t.Fatalf("ReadNotes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("note %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestExportEmpty(t *testing.T) {
	if _, err := NewExporter().Export(nil); err == nil {
		t.Error("Export(nil) should fail")
	}
}

func TestReadNotesInvalid(t *testing.T) {
	if _, err := ReadNotes([]byte("not a midi file")); err == nil {
		t.Error("ReadNotes() should fail on garbage")
	}
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scale.mid")
	notes := []pitch.Pitch{pitch.MustParse("A3"), pitch.MustParse("Bb3")}
	if err := NewExporter().WriteFile(notes, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(got) != 2 || got[0] != 57 || got[1] != 58 {
		t.Errorf("ReadFile() = %v, want [57 58]", got)
	}
}

func TestSpell(t *testing.T) {
	notes := []uint8{60, 61, 63, 66, 70}
	tests := []struct {
		key      string
		expected []string
	}{
		{"c", []string{"C4", "C#4", "D#4", "F#4", "A#4"}},
		{"d", []string{"C4", "C#4", "D#4", "F#4", "A#4"}},
		{"eb", []string{"C4", "Db4", "Eb4", "Gb4", "Bb4"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			key, err := notation.LookupKey(tt.key)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Spell(notes, key)
			if err != nil {
				t.Fatal(err)
			}
			for i, p := range got {
				if p.String() != tt.expected[i] {
					t.Errorf("Spell()[%d] = %v, want %s", i, p, tt.expected[i])
				}
			}
		})
	}
}
