// Package variation defines what a melody generator looks like to the rest of
// the system and keeps the process-wide table of generators.
package variation

import (
	"errors"

	"github.com/jsphweid/midivary/model"
)

var (
	// ErrInvalidInput marks bad or insufficient caller input: short source
	// material, unknown or malformed parameters.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned for a module name nobody registered.
	ErrNotFound = errors.New("module not found")
	// ErrDuplicateModule is returned when two factories produce the same name.
	ErrDuplicateModule = errors.New("duplicate module name")
)

// Module is a melody generator.
//
// Generate must resolve its own parameters (see Resolve), fall back to the
// declared defaults for missing keys and return an error wrapping
// ErrInvalidInput when the source cannot be used. chords may be nil.
type Module interface {
	Name() string
	Parameters() []Parameter
	Generate(src *model.Timeline, chords []model.ChordEvent, params map[string]any) (model.Notes, error)
}

// Factory creates a module. It may do expensive setup such as loading a model
// file; a Registry calls each factory at most once.
type Factory func() (Module, error)
