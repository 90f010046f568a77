package melody

import (
	"errors"
	"fmt"
	"math"

	"github.com/jsphweid/midivary/markov"
	"github.com/jsphweid/midivary/model"
	"github.com/jsphweid/midivary/variation"
)

const Name = "Markov Chain (Melody)"

var parameters = []variation.Parameter{
	{Name: "state_size", Type: variation.Int, Minimum: 1, Maximum: 4, Default: 2},
	{Name: "length", Type: variation.Int, Minimum: 8, Maximum: 128, Default: 32},
	{Name: "seed", Type: variation.Int, Minimum: 0, Maximum: math.MaxInt32, Default: 42},
}

// Module retrains an order-N Markov chain on the source melody for every
// request and samples a new line from it.
type Module struct{}

func New() (variation.Module, error) {
	return &Module{}, nil
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

	notes, err := markov.Generate(src.Notes(), values.Int("state_size"), values.Int("length"), values.Int64("seed"))
	if errors.Is(err, markov.ErrSequenceTooShort) || errors.Is(err, markov.ErrNoTransitions) {
		return nil, fmt.Errorf("%w: %v", variation.ErrInvalidInput, err)
	}
	return notes, err
}
