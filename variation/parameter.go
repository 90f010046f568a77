package variation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/midivary/util"
)

type ParameterType string

const (
	Int   ParameterType = "int"
	Float ParameterType = "float"
)

// Parameter describes one tunable knob of a module.
type Parameter struct {
	Name    string        `json:"name"`
	Type    ParameterType `json:"type"`
	Minimum float64       `json:"minimum"`
	Maximum float64       `json:"maximum"`
	Default float64       `json:"default"`
}

// Values holds resolved parameters keyed by name.
type Values map[string]float64

func (v Values) Int(name string) int {
	return int(v[name])
}

func (v Values) Int64(name string) int64 {
	return int64(v[name])
}

func (v Values) Float(name string) float64 {
	return v[name]
}

func toFloat(raw any) (float64, error) {
	switch val := raw.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case json.Number:
		return val.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(val), 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
}

// Resolve checks raw against the declared parameters. Missing keys take their
// default, numeric strings are accepted, int parameters drop any fraction and
// everything is clamped into [Minimum, Maximum]. Unknown keys and
// non-numeric values fail with ErrInvalidInput.
func Resolve(params []Parameter, raw map[string]any) (Values, error) {
	known := make(map[string]Parameter, len(params))
	for _, p := range params {
		known[p.Name] = p
	}
	for _, key := range util.SortedKeys(raw) {
		if _, ok := known[key]; !ok {
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidInput, key)
		}
	}

	res := make(Values, len(params))
	for _, p := range params {
		value := p.Default
		if r, ok := raw[p.Name]; ok && r != nil {
			f, err := toFloat(r)
			if err != nil || math.IsNaN(f) {
				return nil, fmt.Errorf("%w: parameter %q must be a number, got %v", ErrInvalidInput, p.Name, r)
			}
			value = f
		}
		if p.Type == Int {
			value = math.Trunc(value)
		}
		res[p.Name] = util.Clamp(value, p.Minimum, p.Maximum)
	}
	return res, nil
}

// ParseParameters decodes a JSON object of parameter values. Empty input is
// an empty set.
func ParseParameters(data string) (map[string]any, error) {
	res := make(map[string]any)
	if strings.TrimSpace(data) == "" {
		return res, nil
	}
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		return nil, fmt.Errorf("%w: malformed parameters: %v", ErrInvalidInput, err)
	}
	return res, nil
}
