package chord

import (
	"math"
	"strings"

	"github.com/jsphweid/midivary/constants"
	"github.com/jsphweid/midivary/model"
	"github.com/jsphweid/midivary/util"
	"golang.org/x/exp/slices"
)

type shape struct {
	intervals []int
	suffix    string
}

// Checked in order against the leading intervals above each candidate root.
// A seventh shape is only reached when no triad prefix matched first.
var shapes = []shape{
	{intervals: []int{0, 3, 7}, suffix: "m"},
	{intervals: []int{0, 4, 7}, suffix: ""},
	{intervals: []int{0, 4, 7, 11}, suffix: "maj7"},
	{intervals: []int{0, 3, 7, 10}, suffix: "m7"},
}

// PitchClasses reduces pitches modulo 12, sorted ascending without duplicates.
func PitchClasses(pitches []int) []int {
	seen := make(map[int]bool)
	var res []int
	for _, p := range pitches {
		pc := ((p % 12) + 12) % 12
		if !seen[pc] {
			seen[pc] = true
			res = append(res, pc)
		}
	}
	slices.Sort(res)
	return res
}

func intervalsFrom(root int, pcs []int) []int {
	res := make([]int, len(pcs))
	for i, pc := range pcs {
		res[i] = ((pc-root)%12 + 12) % 12
	}
	slices.Sort(res)
	return res
}

func hasPrefix(intervals, prefix []int) bool {
	if len(intervals) < len(prefix) {
		return false
	}
	return slices.Equal(intervals[:len(prefix)], prefix)
}

// Label names a set of pitches. Every voicing and octave of a known shape gets
// the same name; unknown sets get their note names joined with "+".
func Label(pitches []int) string {
	pcs := PitchClasses(pitches)
	if len(pcs) == 0 {
		return constants.NoChord
	}

	for _, root := range pcs {
		intervals := intervalsFrom(root, pcs)
		for _, s := range shapes {
			if hasPrefix(intervals, s.intervals) {
				return constants.NoteNames[root] + s.suffix
			}
		}
	}

	names := make([]string, len(pcs))
	for i, pc := range pcs {
		names[i] = constants.NoteNames[pc]
	}
	return strings.Join(names, constants.UnknownChordSeparator)
}

// Tempo returns the first tempo change in the timeline, or 120 BPM.
func Tempo(t *model.Timeline) uint32 {
	for _, evt := range t.Events {
		if evt.Kind == model.TempoChange {
			return evt.Tempo
		}
	}
	return constants.DefaultTempo
}

// Beat quantizes an absolute tick to the nearest whole beat. Halfway ticks
// round to the even beat.
func Beat(tick int64, ticksPerBeat uint16) int64 {
	if ticksPerBeat == 0 {
		ticksPerBeat = constants.DefaultTicksPerBeat
	}
	return int64(math.RoundToEven(float64(tick) / float64(ticksPerBeat)))
}

// Analyze groups note onsets by beat and labels each beat that has at least
// one sounding note. Only onsets matter: a held note is not carried into
// later beats.
func Analyze(t *model.Timeline) []model.ChordEvent {
	tempo := Tempo(t)
	secondsPerBeat := float64(tempo) / 1000000

	beats := make(map[int64][]int)
	for _, evt := range t.Events {
		if evt.Kind != model.NoteOn || evt.Velocity == 0 {
			continue
		}
		beat := Beat(evt.Tick, t.TicksPerBeat)
		beats[beat] = append(beats[beat], int(evt.Pitch))
	}

	res := make([]model.ChordEvent, 0, len(beats))
	for _, beat := range util.SortedKeys(beats) {
		pitches := beats[beat]
		res = append(res, model.ChordEvent{
			Time:    float64(beat) * secondsPerBeat,
			Name:    Label(pitches),
			Pitches: PitchClasses(pitches),
		})
	}
	return res
}
