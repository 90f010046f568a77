package midi

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/midivary/constants"
	"github.com/jsphweid/midivary/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrInvalidMidi = errors.New("invalid midi file")

func ReadMidiFile(filepath string) (*model.Timeline, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	return Decode(dat)
}

// Decode parses a standard MIDI file and merges its tracks into a single
// timeline. Events at the same tick keep track order, then file order.
func Decode(data []byte) (t *model.Timeline, e error) {
	// smf can panic on truncated input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			t = nil
			e = fmt.Errorf("%w: %v", ErrInvalidMidi, r)
		}
	}()

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMidi, err)
	}
	return fromSMF(s)
}

func fromSMF(s *smf.SMF) (*model.Timeline, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported time format %v", ErrInvalidMidi, s.TimeFormat)
	}

	res := &model.Timeline{TicksPerBeat: uint16(ticks)}
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			var bpm float64
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				res.Events = append(res.Events, model.NoteEvent{
					Tick:     absTicks,
					Kind:     model.NoteOn,
					Pitch:    key,
					Velocity: velocity,
				})
			case event.Message.GetMetaTempo(&bpm):
				res.Events = append(res.Events, model.NoteEvent{
					Tick:  absTicks,
					Kind:  model.TempoChange,
					Tempo: bpmToTempo(bpm),
				})
			}
		}
	}

	// tracks were appended in order, so a stable sort keeps ties in track order
	sort.SliceStable(res.Events, func(i, j int) bool {
		return res.Events[i].Tick < res.Events[j].Tick
	})
	return res, nil
}

func bpmToTempo(bpm float64) uint32 {
	if bpm <= 0 {
		return constants.DefaultTempo
	}
	return uint32(math.Round(60000000 / bpm))
}

// Encode renders notes as a single-track file: each note sounds for one
// quarter note, back to back, at the default velocity.
func Encode(notes model.Notes, ticksPerBeat uint16) ([]byte, error) {
	if ticksPerBeat == 0 {
		ticksPerBeat = constants.DefaultTicksPerBeat
	}

	res := smf.New()
	res.TimeFormat = smf.MetricTicks(ticksPerBeat)

	var track smf.Track
	for _, note := range notes {
		track.Add(0, midi.NoteOn(0, note, constants.DefaultVelocity))
		track.Add(uint32(ticksPerBeat), midi.NoteOff(0, note))
	}
	track.Close(0)
	if err := res.Add(track); err != nil {
		return nil, fmt.Errorf("could not add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := res.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("could not write midi: %w", err)
	}
	return buf.Bytes(), nil
}
