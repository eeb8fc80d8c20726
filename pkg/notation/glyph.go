package notation

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Pietzcker/ambitus/pkg/pitch"
)

// NoteHead selects the note glyph.
type NoteHead string

const (
	Quarter NoteHead = "q"
	Half    NoteHead = "h"
	Whole   NoteHead = "w"
)

// stemless is appended to q and h heads to select the variant without a stem.
const stemless = "s"

// HasStem reports whether the head is drawn with a stem.
func (h NoteHead) HasStem() bool {
	return h == Quarter || h == Half
}

// ParseNoteHead accepts q, h or w in either case.
func ParseNoteHead(s string) (NoteHead, error) {
	switch h := NoteHead(strings.ToLower(strings.TrimSpace(s))); h {
	case Quarter, Half, Whole:
		return h, nil
	}
	return "", fmt.Errorf("%w: %q (q, h or w)", ErrUnknownNoteHead, s)
}

// Errors
var (
	ErrUnknownNoteHead = stderrors.New("unknown note head")
	ErrOutOfRange      = stderrors.New("pitch out of range for clef")
)

// OutOfRangeError reports a pitch that cannot be written on a clef. It is not
// fatal: formatters skip the note and carry on.
type OutOfRangeError struct {
	Pitch pitch.Pitch
	Clef  *Clef
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("note %v out of range for %s clef (%v-%v)", e.Pitch, e.Clef.Name, e.Clef.Low, e.Clef.High)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

// InvalidAccidentalError means a pitch reached the encoder with an accidental
// no glyph exists for. Scales built with scale.BuildChecked never cause it.
type InvalidAccidentalError struct {
	Pitch pitch.Pitch
}

func (e *InvalidAccidentalError) Error() string {
	return fmt.Sprintf("invalid accidental value %d on %v", e.Pitch.Accidental, e.Pitch)
}

// Encoder turns single pitches into glyph tokens. The zero value is not
// usable; Clef and Key must be set.
type Encoder struct {
	Clef     *Clef
	Key      *KeySignature
	Head     NoteHead
	Stemless bool
}

// Encode returns the glyph token for p. A pitch outside the clef's range
// yields an empty token and an *OutOfRangeError.
func (e *Encoder) Encode(p pitch.Pitch) (string, error) {
	if !e.Clef.Contains(p) {
		return "", &OutOfRangeError{Pitch: p, Clef: e.Clef}
	}
	acc, err := e.accidental(p)
	if err != nil {
		return "", err
	}
	stem := ""
	if e.Stemless && e.Head.HasStem() {
		stem = stemless
	}
	return acc + string(e.Head) + Offset(pitch.DiatonicDistance(p, e.Clef.Middle)) + stem, nil
}

// Offset encodes a distance from the middle line. The middle line itself is
// empty; -10 and 10 use the font's "-0" and "0" positions.
func Offset(distance int) string {
	switch distance {
	case -10:
		return "-0"
	case 10:
		return "0"
	case 0:
		return ""
	}
	return strconv.Itoa(distance)
}

func (e *Encoder) accidental(p pitch.Pitch) (string, error) {
	inKey := e.Key.Affects(p.Letter)
	switch p.Accidental {
	case pitch.Flat:
		if inKey && e.Key.Polarity == Flats {
			return "", nil
		}
		return "b", nil
	case pitch.Sharp:
		if inKey && e.Key.Polarity == Sharps {
			return "", nil
		}
		return "#", nil
	case pitch.Natural:
		if inKey {
			return "n", nil
		}
		return "", nil
	case pitch.DoubleFlat:
		return "bb", nil
	case pitch.DoubleSharp:
		return "x", nil
	}
	return "", errors.WithStack(&InvalidAccidentalError{Pitch: p})
}

// Header encodes the clef and key signature that start a line.
func Header(clef *Clef, key *KeySignature) string {
	switch key.Polarity {
	case Flats:
		return clef.Glyph + "b" + strconv.Itoa(key.Count())
	case Sharps:
		return clef.Glyph + "#" + strconv.Itoa(key.Count())
	}
	return clef.Glyph
}
