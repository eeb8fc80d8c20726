// Package midifile exchanges pitch sequences with Standard MIDI Files.
package midifile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Pietzcker/ambitus/pkg/notation"
	"github.com/Pietzcker/ambitus/pkg/pitch"
)

// Exporter writes pitch sequences as single-track MIDI files, one quarter
// note per pitch.
type Exporter struct {
	TicksPerQuarter uint16
	Tempo           float64
	Velocity        uint8
	Channel         uint8
}

// NewExporter creates an exporter at 120 BPM.
func NewExporter() *Exporter {
	return &Exporter{
		TicksPerQuarter: 480,
		Tempo:           120.0,
		Velocity:        100,
	}
}

// Export creates MIDI data for the pitches.
func (e *Exporter) Export(pitches []pitch.Pitch) ([]byte, error) {
	if len(pitches) == 0 {
		return nil, errors.New("no pitches to export")
	}
	tempo := e.Tempo
	if tempo <= 0 {
		tempo = 120.0
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(e.TicksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTempo(tempo))
	track.Add(0, smf.MetaMeter(4, 4))

	// leave a short gap between notes
	length := uint32(e.TicksPerQuarter) * 7 / 8
	rest := uint32(e.TicksPerQuarter) - length

	var delta uint32
	for _, p := range pitches {
		n := p.MIDI()
		if n < 0 || n > 127 {
			return nil, fmt.Errorf("%v is outside the MIDI note range", p)
		}
		track.Add(delta, midi.NoteOn(e.Channel, uint8(n), e.Velocity))
		track.Add(length, midi.NoteOff(e.Channel, uint8(n)))
		delta = rest
	}
	track.Close(delta)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile exports the pitches to a file.
func (e *Exporter) WriteFile(pitches []pitch.Pitch, filename string) error {
	data, err := e.Export(pitches)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// ReadNotes returns the note numbers of every note-on in the file, in time
// order across all tracks.
func ReadNotes(data []byte) ([]uint8, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	type noteEvent struct {
		tick int64
		note uint8
	}
	var events []noteEvent

	for _, track := range s.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			msg := ev.Message
			// Note On: 0x9n key velocity; velocity 0 is a note off
			if len(msg) >= 3 && msg[0] >= 0x90 && msg[0] <= 0x9F && msg[2] > 0 {
				events = append(events, noteEvent{tick: tick, note: msg[1]})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].tick < events[j].tick })
	notes := make([]uint8, len(events))
	for i, ev := range events {
		notes[i] = ev.note
	}
	return notes, nil
}

// ReadFile reads the note numbers of a MIDI file.
func ReadFile(filename string) ([]uint8, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read MIDI file: %w", err)
	}
	return ReadNotes(data)
}

// Spell names MIDI notes as pitches, using flats on black keys in flat keys
// and sharps otherwise.
func Spell(notes []uint8, key *notation.KeySignature) ([]pitch.Pitch, error) {
	flats := key != nil && key.Polarity == notation.Flats
	out := make([]pitch.Pitch, 0, len(notes))
	for _, n := range notes {
		p, err := pitch.FromMIDI(int(n), flats)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
