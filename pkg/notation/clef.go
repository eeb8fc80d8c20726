// Package notation encodes pitches as glyph tokens of the Ambitus music font.
//
// A glyph token is an optional accidental, a note head, the head's distance in
// staff steps from the middle line and an optional stem marker. A line of
// tokens is prefixed with a header naming the clef and key signature.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Pietzcker/ambitus/pkg/pitch"
)

// Clef is a staff's writable range and the pitch on its middle line.
type Clef struct {
	Name   string
	Glyph  string
	Low    pitch.Pitch
	High   pitch.Pitch
	Middle pitch.Pitch
}

// Contains reports whether p can be written on the clef.
func (c *Clef) Contains(p pitch.Pitch) bool {
	return p.Within(c.Low, c.High)
}

// The supported clefs.
var (
	Treble = &Clef{Name: "treble", Glyph: "T", Low: pitch.MustParse("Fb3"), High: pitch.MustParse("E#6"), Middle: pitch.MustParse("B4")}
	Bass   = &Clef{Name: "bass", Glyph: "B", Low: pitch.MustParse("Ab1"), High: pitch.MustParse("G#4"), Middle: pitch.MustParse("D3")}
	Alto   = &Clef{Name: "alto", Glyph: "A", Low: pitch.MustParse("Gb2"), High: pitch.MustParse("F#5"), Middle: pitch.MustParse("C4")}
	Tenor  = &Clef{Name: "tenor", Glyph: "t", Low: pitch.MustParse("Eb2"), High: pitch.MustParse("D#5"), Middle: pitch.MustParse("A3")}
)

var clefs = []*Clef{Treble, Bass, Alto, Tenor}

// ErrUnknownClef is returned by LookupClef.
var ErrUnknownClef = errors.New("unknown clef")

// Clefs returns the supported clefs, treble first.
func Clefs() []*Clef {
	return append([]*Clef(nil), clefs...)
}

// LookupClef finds a clef by name, ignoring case.
func LookupClef(name string) (*Clef, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, c := range clefs {
		if c.Name == key {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (treble, bass, alto or tenor)", ErrUnknownClef, name)
}
