package groove

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/midivary/model"
	"github.com/jsphweid/midivary/variation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSession struct {
	activations []float32
	err         error
	latent      []float32
}

func (f *fixedSession) Run(latent []float32) ([]float32, error) {
	f.latent = latent
	return f.activations, f.err
}

func TestRenderNotesDefaultChord(t *testing.T) {
	// tanh(0) puts the note halfway up the octave above C4
	notes := renderNotes([]float32{0}, nil, 8)
	assert.Equal(t, model.Notes{66, 66, 66, 66, 66, 66, 66, 66}, notes)
}

func TestRenderNotesFollowsChordsWithWraparound(t *testing.T) {
	chords := []model.ChordEvent{
		{Name: "Dm", Pitches: []int{2, 5, 9}},
		{Name: "G", Pitches: []int{2, 7, 11}},
		{Name: "N.C.", Pitches: nil},
	}
	notes := renderNotes([]float32{-20, 20}, chords, 6)
	// -20 saturates to the chord base, 20 to an octave above
	assert.Equal(t, model.Notes{62, 74, 60, 74, 62, 72}, notes)
}

func TestRenderNotesRange(t *testing.T) {
	assert.Equal(t, model.Notes{72}, renderNotes([]float32{20}, []model.ChordEvent{{Pitches: []int{0}}}, 1))
	assert.Equal(t, uint8(83), renderNotes([]float32{20}, []model.ChordEvent{{Pitches: []int{11}}}, 1)[0])
	assert.Equal(t, 60, chordBase([]int{-12}))
}

func TestGenerateUsesSeededLatent(t *testing.T) {
	session := &fixedSession{activations: []float32{0.3, -0.7, 1.2}}
	m := NewWithSession(session)

	first, err := m.Generate(&model.Timeline{}, nil, map[string]any{"seed": 11, "length": 16, "temperature": 0.5})
	require.NoError(t, err)
	latent := session.latent

	second, err := m.Generate(&model.Timeline{}, nil, map[string]any{"seed": 11, "length": 16, "temperature": 0.5})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(first, 16)
	assert.Equal(first, second)
	assert.Equal(latent, session.latent)
	assert.Len(latent, LatentSize)
	for _, n := range first {
		assert.GreaterOrEqual(n, uint8(36))
		assert.LessOrEqual(n, uint8(96))
	}
}

func TestGenerateErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewWithSession(&fixedSession{err: boom}).Generate(&model.Timeline{}, nil, nil)
	assert.ErrorIs(t, err, boom)

	_, err = NewWithSession(&fixedSession{}).Generate(&model.Timeline{}, nil, nil)
	assert.Error(t, err)

	_, err = NewWithSession(&fixedSession{activations: []float32{1}}).Generate(&model.Timeline{}, nil, map[string]any{"state_size": 2})
	assert.ErrorIs(t, err, variation.ErrInvalidInput)
}

func TestDenseModelRun(t *testing.T) {
	m := &DenseModel{
		Weights: [][]float32{make([]float32, LatentSize), make([]float32, LatentSize)},
		Bias:    []float32{0.5, -1},
	}
	m.Weights[0][0] = 2
	m.Weights[1][15] = 1

	latent := make([]float32, LatentSize)
	latent[0] = 1
	latent[15] = 3

	out, err := m.Run(latent)
	require.NoError(t, err)
	assert.Equal(t, []float32{2.5, 2}, out)

	_, err = m.Run(latent[:3])
	assert.Error(t, err)
}

func TestFactoryLoadsModelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groove.gob")
	require.NoError(t, SaveModel(path, RandomModel(32, 1)))

	m, err := Factory(path)()
	require.NoError(t, err)
	assert.Equal(t, Name, m.Name())

	notes, err := m.Generate(&model.Timeline{}, nil, nil)
	require.NoError(t, err)
	assert.Len(t, notes, 32)
}

func TestFactoryFailsWithoutModel(t *testing.T) {
	_, err := Factory(filepath.Join(t.TempDir(), "missing.gob"))()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveModelRejectsBadShape(t *testing.T) {
	err := SaveModel(filepath.Join(t.TempDir(), "bad.gob"), &DenseModel{Weights: [][]float32{{1, 2}}})
	assert.ErrorIs(t, err, ErrBadModel)
}
