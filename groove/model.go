package groove

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/jsphweid/midivary/util"
)

// LatentSize is the length of the noise vector fed to a Session.
const LatentSize = 16

// Session turns a latent vector into one activation per output step.
type Session interface {
	Run(latent []float32) ([]float32, error)
}

var ErrBadModel = errors.New("malformed groove model")

// DenseModel is a single linear layer from the latent vector to the
// activations, stored on disk with gob.
type DenseModel struct {
	Weights [][]float32
	Bias    []float32
}

func (d *DenseModel) validate() error {
	if len(d.Weights) == 0 {
		return fmt.Errorf("%w: no weights", ErrBadModel)
	}
	for i, row := range d.Weights {
		if len(row) != LatentSize {
			return fmt.Errorf("%w: row %d has %d weights, want %d", ErrBadModel, i, len(row), LatentSize)
		}
	}
	if len(d.Bias) != 0 && len(d.Bias) != len(d.Weights) {
		return fmt.Errorf("%w: %d biases for %d outputs", ErrBadModel, len(d.Bias), len(d.Weights))
	}
	return nil
}

func (d *DenseModel) Run(latent []float32) ([]float32, error) {
	if len(latent) != LatentSize {
		return nil, fmt.Errorf("latent has %d values, want %d", len(latent), LatentSize)
	}
	res := make([]float32, len(d.Weights))
	for i, row := range d.Weights {
		var sum float32
		if len(d.Bias) > 0 {
			sum = d.Bias[i]
		}
		for j, w := range row {
			sum += w * latent[j]
		}
		res[i] = sum
	}
	return res, nil
}

func LoadModel(path string) (*DenseModel, error) {
	m, err := util.ReadBinary[DenseModel](path)
	if err != nil {
		return nil, err
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func SaveModel(path string, m *DenseModel) error {
	if err := m.validate(); err != nil {
		return err
	}
	return util.WriteBinary(path, m)
}

// RandomModel makes an untrained model with the given number of output steps.
func RandomModel(steps int, seed int64) *DenseModel {
	rng := rand.New(rand.NewSource(seed))
	m := &DenseModel{
		Weights: make([][]float32, steps),
		Bias:    make([]float32, steps),
	}
	for i := range m.Weights {
		row := make([]float32, LatentSize)
		for j := range row {
			row[j] = float32(rng.NormFloat64() / 4)
		}
		m.Weights[i] = row
		m.Bias[i] = float32(rng.NormFloat64() / 10)
	}
	return m
}
