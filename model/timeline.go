package model

type EventKind int

const (
	NoteOn EventKind = iota
	TempoChange
)

// NoteEvent is a decoded event at an absolute tick offset. Only note-on and
// tempo-change events survive decoding; note-offs carry no information here.
type NoteEvent struct {
	Tick     int64
	Kind     EventKind
	Pitch    uint8
	Velocity uint8

	// microseconds per quarter note, TempoChange only
	Tempo uint32
}

// Timeline is every track of a file merged into one stream ordered by
// absolute tick.
type Timeline struct {
	TicksPerBeat uint16
	Events       []NoteEvent
}

// Notes returns the pitches of all sounding note-ons in onset order.
func (t *Timeline) Notes() Notes {
	var res Notes
	for _, evt := range t.Events {
		if evt.Kind == NoteOn && evt.Velocity > 0 {
			res = append(res, evt.Pitch)
		}
	}
	return res
}
