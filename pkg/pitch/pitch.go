// Package pitch provides the spelled-pitch model used by ambitus.
//
// A Pitch is a letter, an accidental and an octave. Spellings are never
// collapsed: E#4 and F4 are different pitches, and E#4 sorts below F4.
// Octaves follow scientific pitch notation, so middle C is C4.
package pitch

import (
	"errors"
	"fmt"
	"strings"
)

// Letter is the index of a note name in the cycle C D E F G A B.
type Letter int

const (
	C Letter = iota
	D
	E
	F
	G
	A
	B
)

// LettersPerOctave is the number of letters in the cycle.
const LettersPerOctave = 7

const letterNames = "CDEFGAB"

// semitones above C for each natural letter
var naturalSemitones = [LettersPerOctave]int{0, 2, 4, 5, 7, 9, 11}

// String returns the upper-case letter name.
func (l Letter) String() string {
	if l < 0 || l >= LettersPerOctave {
		return fmt.Sprintf("Letter(%d)", int(l))
	}
	return letterNames[l : l+1]
}

// Next returns the following letter, wrapping B to C.
func (l Letter) Next() Letter {
	return (l + 1) % LettersPerOctave
}

// FromA returns the letter's position counted from A (A=0 ... G=6).
func (l Letter) FromA() int {
	return (int(l) + 2) % LettersPerOctave
}

// ParseLetter accepts a single letter A-G in either case.
func ParseLetter(r byte) (Letter, error) {
	i := strings.IndexByte(letterNames, upper(r))
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLetter, r)
	}
	return Letter(i), nil
}

// Accidental values.
const (
	DoubleFlat  = -2
	Flat        = -1
	Natural     = 0
	Sharp       = 1
	DoubleSharp = 2
)

// Pitch is a spelled note.
type Pitch struct {
	Letter     Letter
	Accidental int
	Octave     int
}

// New returns a pitch.
func New(letter Letter, accidental, octave int) Pitch {
	return Pitch{Letter: letter, Accidental: accidental, Octave: octave}
}

// AccidentalSymbol returns the text form of an accidental and whether it is
// one of the five representable values.
func AccidentalSymbol(accidental int) (string, bool) {
	switch accidental {
	case DoubleFlat:
		return "bb", true
	case Flat:
		return "b", true
	case Natural:
		return "", true
	case Sharp:
		return "#", true
	case DoubleSharp:
		return "x", true
	}
	return "", false
}

// Representable reports whether the accidental is within double-flat..double-sharp.
func (p Pitch) Representable() bool {
	return p.Accidental >= DoubleFlat && p.Accidental <= DoubleSharp
}

// String formats the pitch as letter, accidental and octave, e.g. "Bb3".
func (p Pitch) String() string {
	acc, ok := AccidentalSymbol(p.Accidental)
	if !ok {
		acc = fmt.Sprintf("(%+d)", p.Accidental)
	}
	return fmt.Sprintf("%s%s%d", p.Letter, acc, p.Octave)
}

// Compare orders pitches by octave, then letter, then accidental.
// It returns -1, 0 or +1.
func Compare(a, b Pitch) int {
	switch {
	case a.Octave != b.Octave:
		return sign(a.Octave - b.Octave)
	case a.Letter != b.Letter:
		return sign(int(a.Letter) - int(b.Letter))
	default:
		return sign(a.Accidental - b.Accidental)
	}
}

// Less reports whether p sorts before q.
func (p Pitch) Less(q Pitch) bool {
	return Compare(p, q) < 0
}

// LessOrEqual reports whether p sorts before or equal to q.
func (p Pitch) LessOrEqual(q Pitch) bool {
	return Compare(p, q) <= 0
}

// Within reports whether low <= p <= high.
func (p Pitch) Within(low, high Pitch) bool {
	return low.LessOrEqual(p) && p.LessOrEqual(high)
}

// Up returns the pitch one letter higher with the same accidental.
// The octave number changes between B and C.
func (p Pitch) Up() Pitch {
	next := p
	next.Letter = p.Letter.Next()
	if next.Letter == C {
		next.Octave++
	}
	return next
}

// DiatonicDistance counts letter steps from ref to p. Accidentals are ignored.
func DiatonicDistance(p, ref Pitch) int {
	return int(p.Letter) - int(ref.Letter) + LettersPerOctave*(p.Octave-ref.Octave)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func upper(r byte) byte {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

// Parse errors
var (
	ErrInvalidLength     = errors.New("pitch must be 2 or 3 characters")
	ErrInvalidLetter     = errors.New("note must be one of A, B, C, D, E, F or G")
	ErrInvalidAccidental = errors.New("accidental must be b or #")
	ErrInvalidOctave     = errors.New("octave must be a digit from 1 to 6")
)

// ParseError describes a pitch that could not be parsed.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid pitch %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a pitch such as "C4", "bb3" or "F#5". The letter is case
// insensitive; the accidental is "b" or "#"; the octave is a single digit 1-6.
func Parse(s string) (Pitch, error) {
	if len(s) < 2 || len(s) > 3 {
		return Pitch{}, &ParseError{s, ErrInvalidLength}
	}
	letter, err := ParseLetter(s[0])
	if err != nil {
		return Pitch{}, &ParseError{s, err}
	}
	p := Pitch{Letter: letter}
	if len(s) == 3 {
		switch s[1] {
		case 'b':
			p.Accidental = Flat
		case '#':
			p.Accidental = Sharp
		default:
			return Pitch{}, &ParseError{s, fmt.Errorf("%w: %q", ErrInvalidAccidental, s[1])}
		}
	}
	o := s[len(s)-1]
	if o < '1' || o > '6' {
		return Pitch{}, &ParseError{s, fmt.Errorf("%w: %q", ErrInvalidOctave, o)}
	}
	p.Octave = int(o - '0')
	return p, nil
}

// MustParse is like Parse but panics on error. Use it for static tables.
func MustParse(s string) Pitch {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}
