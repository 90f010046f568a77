package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedKeys(t *testing.T) {
	m := map[int][]string{4: nil, 1: nil, 3: nil}
	assert.Equal(t, []int{1, 3, 4}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(36, Clamp(12, 36, 96))
	assert.Equal(96, Clamp(100, 36, 96))
	assert.Equal(60, Clamp(60, 36, 96))
	assert.Equal(0.1, Clamp(0.0, 0.1, 2.5))
}

func TestBinaryRoundTrip(t *testing.T) {
	type payload struct {
		Rows [][]float32
		Name string
	}
	path := filepath.Join(t.TempDir(), "data.gob")
	in := payload{Rows: [][]float32{{1, 2}, {3, 4}}, Name: "x"}

	require.NoError(t, WriteBinary(path, in))
	out, err := ReadBinary[payload](path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadBinaryMissingFile(t *testing.T) {
	_, err := ReadBinary[[]int](filepath.Join(t.TempDir(), "nope.gob"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
