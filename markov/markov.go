// Package markov builds order-N transition tables from a sequence and samples
// new sequences from them.
package markov

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// MinSequenceLength is the shortest training sequence Generate accepts.
const MinSequenceLength = 4

var (
	ErrSequenceTooShort = errors.New("input too short to build a model")
	ErrInvalidOrder     = errors.New("order must be at least 1")
	ErrNoTransitions    = errors.New("sequence has no transitions at this order")
)

type transition[T constraints.Integer] struct {
	state []T
	next  []T
}

// Chain maps every state (a window of Order consecutive symbols) to the
// symbols seen right after it, duplicates kept so that picking uniformly
// from the list follows the observed frequencies.
type Chain[T constraints.Integer] struct {
	Order int

	// insertion order, so that picking a random state is reproducible
	keys  []string
	table map[string]*transition[T]
}

func stateKey[T constraints.Integer](state []T) string {
	var b strings.Builder
	for i, v := range state {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(v), 10))
	}
	return b.String()
}

// Build slides a window of length order over seq and records the symbol that
// follows each full window.
func Build[T constraints.Integer](seq []T, order int) (*Chain[T], error) {
	if order < 1 {
		return nil, ErrInvalidOrder
	}

	c := &Chain[T]{Order: order, table: make(map[string]*transition[T])}
	for i := order; i < len(seq); i++ {
		state := seq[i-order : i]
		key := stateKey(state)
		tr, ok := c.table[key]
		if !ok {
			tr = &transition[T]{state: append([]T(nil), state...)}
			c.table[key] = tr
			c.keys = append(c.keys, key)
		}
		tr.next = append(tr.next, seq[i])
	}
	return c, nil
}

// Len is the number of distinct states.
func (c *Chain[T]) Len() int {
	return len(c.keys)
}

// Next returns the recorded continuations of state. The slice must not be
// modified.
func (c *Chain[T]) Next(state []T) ([]T, bool) {
	tr, ok := c.table[stateKey(state)]
	if !ok {
		return nil, false
	}
	return tr.next, true
}

// Sample walks the chain from seed until length symbols exist. The output
// starts with seed. When the current state was never seen in training the
// walk restarts from a random known state and emits that whole state, which
// can overshoot; the result is cut to exactly length.
func (c *Chain[T]) Sample(seed []T, length int, rng *rand.Rand) []T {
	if length < 0 {
		length = 0
	}
	res := append(make([]T, 0, length+c.Order), seed...)

	state := append([]T(nil), seed...)
	for len(res) < length && len(c.keys) > 0 {
		options, ok := c.Next(state)
		if !ok {
			tr := c.table[c.keys[rng.Intn(len(c.keys))]]
			state = append(state[:0], tr.state...)
			res = append(res, tr.state...)
			continue
		}
		note := options[rng.Intn(len(options))]
		res = append(res, note)
		state = append(state[1:], note)
	}
	if len(res) > length {
		res = res[:length]
	}
	return res
}

// Generate trains a chain of the given order on seq and samples length
// symbols from it, seeded with the first order symbols of seq. The same
// arguments always give the same output.
func Generate[T constraints.Integer](seq []T, order, length int, seed int64) ([]T, error) {
	if len(seq) < MinSequenceLength {
		return nil, fmt.Errorf("%w: got %d notes, need at least %d", ErrSequenceTooShort, len(seq), MinSequenceLength)
	}
	if order >= len(seq) {
		return nil, fmt.Errorf("%w: order %d with %d notes", ErrNoTransitions, order, len(seq))
	}

	c, err := Build(seq, order)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	return c.Sample(seq[:order], length, rng), nil
}
