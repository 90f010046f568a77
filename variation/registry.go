package variation

import (
	"fmt"
	"sync"

	"github.com/jsphweid/midivary/logger"
)

// Registry discovers modules from a fixed list of factories the first time
// it is asked for one. Discovery runs once per Registry no matter how many
// goroutines call in; its result, error included, is kept for good.
type Registry struct {
	factories []Factory

	once    sync.Once
	err     error
	modules map[string]Module
	order   []Module
}

func NewRegistry(factories ...Factory) *Registry {
	return &Registry{factories: factories}
}

func (r *Registry) discover() {
	modules := make(map[string]Module, len(r.factories))
	var order []Module
	for _, factory := range r.factories {
		m, err := factory()
		if err != nil {
			r.err = fmt.Errorf("could not set up variation module: %w", err)
			return
		}
		name := m.Name()
		if _, exists := modules[name]; exists {
			r.err = fmt.Errorf("%w: %q", ErrDuplicateModule, name)
			return
		}
		modules[name] = m
		order = append(order, m)
		logger.Debug("Discovered variation module", logger.Fields{"module": name})
	}
	r.modules = modules
	r.order = order
}

// Load runs discovery if it has not run yet and returns its error.
func (r *Registry) Load() error {
	r.once.Do(r.discover)
	return r.err
}

// Get returns the module registered under name. Unknown names fail with
// ErrNotFound.
func (r *Registry) Get(name string) (Module, error) {
	if err := r.Load(); err != nil {
		return nil, err
	}
	m, ok := r.modules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return m, nil
}

// All returns every module in registration order.
func (r *Registry) All() ([]Module, error) {
	if err := r.Load(); err != nil {
		return nil, err
	}
	return append([]Module(nil), r.order...), nil
}
