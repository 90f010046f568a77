package constants

// 120 BPM
const DefaultTempo uint32 = 500000

const DefaultTicksPerBeat uint16 = 480

// velocity of every note written by the encoder
const DefaultVelocity uint8 = 90

// label used for a beat with no pitches
const NoChord = "N.C."

// joins note names of a pitch set that matches no known chord shape
const UnknownChordSeparator = "+"

var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
