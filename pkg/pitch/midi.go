package pitch

import "fmt"

// MiddleC is the MIDI note number of C4.
const MiddleC = 60

// MIDI returns the MIDI note number of p, with C4 = 60.
func (p Pitch) MIDI() int {
	return (p.Octave+1)*12 + naturalSemitones[p.Letter] + p.Accidental
}

// sharp and flat spellings of the twelve pitch classes
var (
	sharpSpelling = [12]Pitch{
		{C, 0, 0}, {C, 1, 0}, {D, 0, 0}, {D, 1, 0}, {E, 0, 0}, {F, 0, 0},
		{F, 1, 0}, {G, 0, 0}, {G, 1, 0}, {A, 0, 0}, {A, 1, 0}, {B, 0, 0},
	}
	flatSpelling = [12]Pitch{
		{C, 0, 0}, {D, -1, 0}, {D, 0, 0}, {E, -1, 0}, {E, 0, 0}, {F, 0, 0},
		{G, -1, 0}, {G, 0, 0}, {A, -1, 0}, {A, 0, 0}, {B, -1, 0}, {B, 0, 0},
	}
)

// FromMIDI spells a MIDI note number. Black keys are spelled with flats when
// preferFlats is set and with sharps otherwise.
func FromMIDI(n int, preferFlats bool) (Pitch, error) {
	if n < 0 || n > 127 {
		return Pitch{}, fmt.Errorf("MIDI note %d out of range 0-127", n)
	}
	p := sharpSpelling[n%12]
	if preferFlats {
		p = flatSpelling[n%12]
	}
	p.Octave = n/12 - 1
	return p, nil
}
