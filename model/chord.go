package model

// Notes is a monophonic pitch sequence (MIDI pitch numbers 0-127).
type Notes = []uint8

// ChordEvent is one labelled beat of a chord progression.
// Pitches are pitch classes (0-11), ascending with no duplicates.
type ChordEvent struct {
	Time    float64 `json:"time"`
	Name    string  `json:"name"`
	Pitches []int   `json:"pitches"`
}
