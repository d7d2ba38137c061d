package controller

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Preset is a named pair of controller configs that can be stored as YAML.
type Preset struct {
	FPS   FPS   `yaml:"fps" mapstructure:"fps"`
	Orbit Orbit `yaml:"orbit" mapstructure:"orbit"`
}

// DefaultPreset returns the stock FPS and Orbit configs.
func DefaultPreset() Preset {
	return Preset{FPS: DefaultFPS(), Orbit: DefaultOrbit()}
}

// Validate checks both configs.
func (p Preset) Validate() error {
	if err := p.FPS.Validate(); err != nil {
		return err
	}
	return p.Orbit.Validate()
}

// MarshalPreset encodes a preset as YAML.
//
// Parameters:
//   - p: the preset
//
// Returns:
//   - []byte: the YAML document
//   - error: error if encoding fails
func MarshalPreset(p Preset) ([]byte, error) {
	out, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal preset: %w", err)
	}
	return out, nil
}

// UnmarshalPreset decodes a YAML preset. Fields missing from data keep their defaults,
// and the result is validated.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Preset: the decoded preset
//   - error: error if decoding fails or the preset is invalid
func UnmarshalPreset(data []byte) (Preset, error) {
	p := DefaultPreset()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("unmarshal preset: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}
