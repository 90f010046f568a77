package melody

import (
	"testing"

	"github.com/jsphweid/midivary/model"
	"github.com/jsphweid/midivary/variation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timelineOf(notes ...uint8) *model.Timeline {
	t := &model.Timeline{TicksPerBeat: 480}
	for i, n := range notes {
		t.Events = append(t.Events, model.NoteEvent{Tick: int64(i) * 480, Kind: model.NoteOn, Pitch: n, Velocity: 90})
	}
	return t
}

func TestDescribesParameters(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("Markov Chain (Melody)", m.Name())

	params := m.Parameters()
	require.Len(t, params, 3)
	assert.Equal(variation.Parameter{Name: "state_size", Type: variation.Int, Minimum: 1, Maximum: 4, Default: 2}, params[0])
	assert.Equal(32.0, params[1].Default)
	assert.Equal(2147483647.0, params[2].Maximum)

	params[0].Default = 99
	assert.Equal(2.0, m.Parameters()[0].Default)
}

func TestGenerateDefaults(t *testing.T) {
	m, _ := New()
	out, err := m.Generate(timelineOf(60, 62, 64, 60, 62, 64, 67, 65), nil, nil)
	require.NoError(t, err)
	assert.Len(t, out, 32)
}

func TestGenerateIsReproducible(t *testing.T) {
	m, _ := New()
	src := timelineOf(60, 62, 64, 60, 62, 64, 67, 65)
	params := map[string]any{"state_size": 2.0, "length": 8.0, "seed": 1234.0}

	first, err := m.Generate(src, nil, params)
	require.NoError(t, err)
	second, err := m.Generate(src, nil, params)
	require.NoError(t, err)

	assert.Len(t, first, 8)
	assert.Equal(t, first, second)
}

func TestGenerateRejectsShortSource(t *testing.T) {
	m, _ := New()
	out, err := m.Generate(timelineOf(60, 62, 64), nil, nil)
	assert.ErrorIs(t, err, variation.ErrInvalidInput)
	assert.Nil(t, out)

	_, err = m.Generate(timelineOf(60, 62, 64, 65), nil, map[string]any{"state_size": 4})
	assert.ErrorIs(t, err, variation.ErrInvalidInput)
}

func TestGenerateRejectsUnknownParameter(t *testing.T) {
	m, _ := New()
	_, err := m.Generate(timelineOf(60, 62, 64, 65, 67), nil, map[string]any{"temperature": 1})
	assert.ErrorIs(t, err, variation.ErrInvalidInput)
}
