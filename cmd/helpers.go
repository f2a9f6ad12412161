package cmd

import (
	"github.com/firefly-engineering/genctl/internal/app"
	"github.com/firefly-engineering/genctl/internal/errors"
	"github.com/firefly-engineering/genctl/internal/generation"
)

// defaultFlake is used when --flake is not given.
const defaultFlake = "."

// pipeline returns the generation pipeline of the application.
func pipeline() (*generation.Pipeline, error) {
	p, err := app.Default.Pipeline()
	if err != nil {
		return nil, errors.ConfigError("invalid configuration", err)
	}
	return p, nil
}

// installer returns the generation installer of the application.
func installer() (*generation.Installer, error) {
	inst, err := app.Default.Installer()
	if err != nil {
		return nil, errors.ConfigError("invalid configuration", err)
	}
	return inst, nil
}
