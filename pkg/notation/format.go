package notation

import (
	"errors"
	"strings"

	"github.com/Pietzcker/ambitus/pkg/pitch"
)

// Default formatting options.
const (
	DefaultSeparator  = ":"
	DefaultTerminator = ":|"
)

// Separators lists the characters the font treats as spacing.
var Separators = []string{";", ":", "/", "?", "_"}

// Formatter renders a sequence of pitches as one line of glyph tokens.
type Formatter struct {
	Encoder
	Separator  string
	Spacer     string // inserted between the header and the first note
	Terminator string
	Reverse    bool

	// OnSkip, if set, is called for every note dropped because it does not
	// fit on the clef.
	OnSkip func(p pitch.Pitch, err error)
}

// NewFormatter returns a formatter for treble clef, C major, stemmed quarter
// notes, ":" separators and a ":|" terminator.
func NewFormatter() *Formatter {
	return &Formatter{
		Encoder:    Encoder{Clef: Treble, Key: CMajor, Head: Quarter},
		Separator:  DefaultSeparator,
		Terminator: DefaultTerminator,
	}
}

// Tokens encodes every pitch and returns the tokens in output order together
// with the pitches that were skipped as out of range.
func (f *Formatter) Tokens(pitches []pitch.Pitch) ([]string, []pitch.Pitch, error) {
	tokens := make([]string, 0, len(pitches))
	var skipped []pitch.Pitch
	for _, p := range pitches {
		tok, err := f.Encode(p)
		if errors.Is(err, ErrOutOfRange) {
			skipped = append(skipped, p)
			if f.OnSkip != nil {
				f.OnSkip(p, err)
			}
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		tokens = append(tokens, tok)
	}
	if f.Reverse {
		for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
			tokens[i], tokens[j] = tokens[j], tokens[i]
		}
	}
	return tokens, skipped, nil
}

// Format renders the header, spacer, separated tokens and terminator.
// Notes outside the clef are dropped; only an accidental without a glyph is
// returned as an error.
func (f *Formatter) Format(pitches []pitch.Pitch) (string, error) {
	tokens, _, err := f.Tokens(pitches)
	if err != nil {
		return "", err
	}
	return f.Join(tokens), nil
}

// Join assembles already encoded tokens into a line.
func (f *Formatter) Join(tokens []string) string {
	var s strings.Builder
	s.WriteString(Header(f.Clef, f.Key))
	s.WriteString(f.Spacer)
	s.WriteString(strings.Join(tokens, f.Separator))
	s.WriteString(f.Terminator)
	return s.String()
}
