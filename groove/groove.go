package groove

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/jsphweid/midivary/model"
	"github.com/jsphweid/midivary/util"
	"github.com/jsphweid/midivary/variation"
)

const Name = "Offline GAN Groove"

const (
	lowestNote  = 36
	highestNote = 96
	basePitch   = 60
	span        = 12
)

var parameters = []variation.Parameter{
	{Name: "seed", Type: variation.Int, Minimum: 0, Maximum: math.MaxInt32, Default: 7},
	{Name: "length", Type: variation.Int, Minimum: 8, Maximum: 128, Default: 32},
	{Name: "temperature", Type: variation.Float, Minimum: 0.1, Maximum: 2.5, Default: 1.0},
}

// used when the caller gives no chord progression
var defaultChord = []int{0, 4, 7}

// Module renders notes from a latent sample pushed through an inference
// session, placed over the chord context.
type Module struct {
	session Session
}

func NewWithSession(s Session) *Module {
	return &Module{session: s}
}

// Factory loads the model at path when the registry first needs it. A missing
// or malformed file fails registry discovery.
func Factory(path string) variation.Factory {
	return func() (variation.Module, error) {
		m, err := LoadModel(path)
		if err != nil {
			return nil, fmt.Errorf("groove model %v: %w", path, err)
		}
		return NewWithSession(m), nil
	}
}

func (m *Module) Name() string {
	return Name
}

func (m *Module) Parameters() []variation.Parameter {
	return append([]variation.Parameter(nil), parameters...)
}

func (m *Module) Generate(src *model.Timeline, chords []model.ChordEvent, params map[string]any) (model.Notes, error) {
	values, err := variation.Resolve(parameters, params)
	if err != nil {
		return nil, err
	}

	latent := sampleLatent(values.Int64("seed"), values.Float("temperature"))
	activations, err := m.session.Run(latent)
	if err != nil {
		return nil, fmt.Errorf("groove inference failed: %w", err)
	}
	if len(activations) == 0 {
		return nil, errors.New("groove inference returned no activations")
	}
	return renderNotes(activations, chords, values.Int("length")), nil
}

func sampleLatent(seed int64, temperature float64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	res := make([]float32, LatentSize)
	for i := range res {
		res[i] = float32(rng.NormFloat64() * temperature)
	}
	return res
}

// renderNotes maps each step's activation into the octave above the root of
// that step's chord. Both activations and chords wrap around when shorter
// than length.
func renderNotes(activations []float32, chords []model.ChordEvent, length int) model.Notes {
	res := make(model.Notes, 0, length)
	for step := 0; step < length; step++ {
		activation := float64(activations[step%len(activations)])
		normalized := (math.Tanh(activation) + 1) / 2

		pitches := defaultChord
		if len(chords) > 0 {
			pitches = chords[step%len(chords)].Pitches
		}

		note := math.RoundToEven(float64(chordBase(pitches)) + normalized*span)
		res = append(res, uint8(util.Clamp(note, lowestNote, highestNote)))
	}
	return res
}

func chordBase(pitches []int) int {
	if len(pitches) == 0 {
		return basePitch
	}
	root := 11
	for _, p := range pitches {
		if pc := ((p % 12) + 12) % 12; pc < root {
			root = pc
		}
	}
	return basePitch + root
}
