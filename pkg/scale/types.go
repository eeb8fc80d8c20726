// Package scale builds diatonic scales from interval patterns.
package scale

import (
	"errors"
	"fmt"

	"github.com/Pietzcker/ambitus/pkg/pitch"
)

// Degrees is the number of steps in an interval pattern.
const Degrees = pitch.LettersPerOctave

// Pattern holds the half-tone steps between successive scale degrees.
type Pattern [Degrees]int

// Sum returns the total span of the pattern in half tones (12 for the usual scales).
func (p Pattern) Sum() int {
	total := 0
	for _, s := range p {
		total += s
	}
	return total
}

// Rotate returns the pattern starting at degree n.
func (p Pattern) Rotate(n int) Pattern {
	var out Pattern
	for i := range out {
		out[i] = p[((i+n)%Degrees+Degrees)%Degrees]
	}
	return out
}

// Validate checks that every step is positive.
func (p Pattern) Validate() error {
	for i, s := range p {
		if s <= 0 {
			return fmt.Errorf("%w: step %d is %d", ErrInvalidPattern, i+1, s)
		}
	}
	return nil
}

// Errors
var (
	ErrInvalidPattern  = errors.New("invalid interval pattern")
	ErrStopBelowStart  = errors.New("stop pitch is below start pitch")
	ErrUnknownScale    = errors.New("unknown scale")
	ErrUnrepresentable = errors.New("scale needs accidentals beyond double flat or double sharp")
)

// RangeError reports a stop pitch below the start pitch.
type RangeError struct {
	Start pitch.Pitch
	Stop  pitch.Pitch
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v is below %v", e.Stop, e.Start)
}

func (e *RangeError) Unwrap() error {
	return ErrStopBelowStart
}

// UnrepresentableError lists the pitches whose accidentals cannot be written.
type UnrepresentableError struct {
	Pitches []pitch.Pitch
}

func (e *UnrepresentableError) Error() string {
	return fmt.Sprintf("%v: %v", ErrUnrepresentable, e.Pitches)
}

func (e *UnrepresentableError) Unwrap() error {
	return ErrUnrepresentable
}
