package scale

import (
	"github.com/Pietzcker/ambitus/pkg/pitch"
)

// Natural is the step pattern of the white keys starting from A (A aeolian).
// It is the reference every other pattern is measured against.
var Natural = Pattern{2, 1, 2, 2, 1, 2, 2}

// Highest is the top of the treble clef, the highest pitch ambitus can write.
var Highest = pitch.MustParse("E#6")

// DefaultStop returns the pitch one octave above start, capped at Highest.
func DefaultStop(start pitch.Pitch) pitch.Pitch {
	stop := start
	stop.Octave++
	if Highest.Less(stop) {
		return Highest
	}
	return stop
}

// Build returns every pitch of the scale from start up to and including stop.
//
// Each step compares the pattern with the natural step between the same two
// letters and carries the difference into the next note's accidental. The
// result is not checked for accidentals beyond double flat/sharp; use
// BuildChecked for that.
func Build(pattern Pattern, start, stop pitch.Pitch) ([]pitch.Pitch, error) {
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	if stop.Less(start) {
		return nil, &RangeError{Start: start, Stop: stop}
	}

	ref := start.Letter.FromA()
	deg := 0
	current := start
	var notes []pitch.Pitch
	for current.LessOrEqual(stop) {
		notes = append(notes, current)
		current.Accidental += pattern[deg] - Natural[ref]
		current = current.Up()
		ref = (ref + 1) % Degrees
		deg = (deg + 1) % Degrees
	}
	return notes, nil
}

// BuildChecked is Build followed by a check that every accidental can be written.
func BuildChecked(pattern Pattern, start, stop pitch.Pitch) ([]pitch.Pitch, error) {
	notes, err := Build(pattern, start, stop)
	if err != nil {
		return nil, err
	}
	if err := CheckRepresentable(notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CheckRepresentable returns an *UnrepresentableError naming every pitch whose
// accidental lies outside double flat..double sharp.
func CheckRepresentable(notes []pitch.Pitch) error {
	var bad []pitch.Pitch
	for _, n := range notes {
		if !n.Representable() {
			bad = append(bad, n)
		}
	}
	if len(bad) > 0 {
		return &UnrepresentableError{Pitches: bad}
	}
	return nil
}
