package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Pietzcker/ambitus/pkg/pitch"
)

// Polarity says whether a key signature holds flats or sharps.
type Polarity int

const (
	NoAccidentals Polarity = iota
	Flats
	Sharps
)

func (p Polarity) String() string {
	switch p {
	case Flats:
		return "flat"
	case Sharps:
		return "sharp"
	}
	return "none"
}

// order in which accidentals are added to a key signature
var (
	flatOrder  = []pitch.Letter{pitch.B, pitch.E, pitch.A, pitch.D, pitch.G, pitch.C, pitch.F}
	sharpOrder = []pitch.Letter{pitch.F, pitch.C, pitch.G, pitch.D, pitch.A, pitch.E, pitch.B}
)

// KeySignature is the set of letters altered throughout a passage.
type KeySignature struct {
	Name     string
	Polarity Polarity
	Letters  []pitch.Letter
}

// Affects reports whether the key signature alters letter l.
func (k *KeySignature) Affects(l pitch.Letter) bool {
	for _, x := range k.Letters {
		if x == l {
			return true
		}
	}
	return false
}

// Count returns the number of accidentals in the signature.
func (k *KeySignature) Count() int {
	return len(k.Letters)
}

func newKey(name string, n int) *KeySignature {
	switch {
	case n < 0:
		return &KeySignature{Name: name, Polarity: Flats, Letters: flatOrder[:-n]}
	case n > 0:
		return &KeySignature{Name: name, Polarity: Sharps, Letters: sharpOrder[:n]}
	}
	return &KeySignature{Name: name, Polarity: NoAccidentals}
}

// key names by signed accidental count (negative for flats), -7..7
var (
	majorKeys = []string{"cb", "gb", "db", "ab", "eb", "bb", "f", "c", "g", "d", "a", "e", "b", "f#", "c#"}
	minorKeys = []string{"abm", "ebm", "bbm", "fm", "cm", "gm", "dm", "am", "em", "bm", "f#m", "c#m", "g#m", "d#m", "a#m"}
)

var (
	keys     = map[string]*KeySignature{}
	keyNames []string
)

func init() {
	for _, names := range [][]string{majorKeys, minorKeys} {
		for i, name := range names {
			keys[name] = newKey(name, i-7)
			keyNames = append(keyNames, name)
		}
	}
}

// CMajor is the key signature without accidentals.
var CMajor = newKey("c", 0)

// ErrUnknownKey is returned by LookupKey.
var ErrUnknownKey = errors.New("unknown key")

// KeyNames lists the major keys from seven flats to seven sharps, then the minor keys.
func KeyNames() []string {
	return append([]string(nil), keyNames...)
}

// LookupKey finds a key signature by key name: "eb" for E flat major,
// "f#m" for F sharp minor. Case is ignored.
func LookupKey(name string) (*KeySignature, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if k, ok := keys[key]; ok {
		return k, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}
