// Package modules is the table of every variation module the binary ships.
package modules

import (
	"github.com/jsphweid/midivary/config"
	"github.com/jsphweid/midivary/groove"
	"github.com/jsphweid/midivary/melody"
	"github.com/jsphweid/midivary/variation"
)

// Factories lists the module factories for cfg. The groove module needs a
// trained model, so it is only listed when a model path is configured.
func Factories(cfg *config.Config) []variation.Factory {
	res := []variation.Factory{
		melody.New,
	}
	if cfg.GrooveModelPath != "" {
		res = append(res, groove.Factory(cfg.GrooveModelPath))
	}
	return res
}

func NewRegistry(cfg *config.Config) *variation.Registry {
	return variation.NewRegistry(Factories(cfg)...)
}
