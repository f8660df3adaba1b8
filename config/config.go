// Package config holds the solver tuning of a world and the YAML scene description.
package config

import (
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config tunes the fixed step pipeline
type Config struct {
	Gravity   mgl64.Vec3 `yaml:"gravity"`    // m/s²
	FixedStep float64    `yaml:"fixed_step"` // s

	// Number of velocity passes over the contacts of a step
	ImpulseIterations int `yaml:"impulse_iterations"`

	// Penetration allowed before positional correction kicks in, and the fraction corrected per step
	PenetrationSlack        float64 `yaml:"penetration_slack"`
	LinearProjectionPercent float64 `yaml:"linear_projection_percent"`

	// Extra distance a body is pushed out of a static constraint
	ConstraintNudge float64 `yaml:"constraint_nudge"`

	// Normal speed (m/s) under which a contact against a static constraint does not bounce
	RestingSpeed float64 `yaml:"resting_speed"`
}

// Default returns the tuning used when nothing else is configured
func Default() Config {
	return Config{
		Gravity:                 mgl64.Vec3{0, -9.82, 0},
		FixedStep:               1.0 / 50.0,
		ImpulseIterations:       5,
		PenetrationSlack:        0.01,
		LinearProjectionPercent: 0.45,
		ConstraintNudge:         0.002,
		RestingSpeed:            0.5,
	}
}

// Load reads a YAML file over Default(): missing keys keep their default value
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}

	return Parse(data)
}

// Parse decodes YAML over Default() and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// UnmarshalYAML decodes over Default(), so a partial document only overrides what it names
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type plain Config
	cfg := plain(Default())
	if err := node.Decode(&cfg); err != nil {
		return err
	}
	*c = Config(cfg)

	return nil
}

func (c Config) Validate() error {
	for _, g := range c.Gravity {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return errors.Wrapf(ErrInvalidConfig, "gravity %v is not finite", c.Gravity)
		}
	}

	switch {
	case !(c.FixedStep > 0) || math.IsInf(c.FixedStep, 0):
		return errors.Wrapf(ErrInvalidConfig, "fixed_step must be positive, got %v", c.FixedStep)
	case c.ImpulseIterations < 0:
		return errors.Wrapf(ErrInvalidConfig, "impulse_iterations must not be negative, got %d", c.ImpulseIterations)
	case !(c.PenetrationSlack >= 0):
		return errors.Wrapf(ErrInvalidConfig, "penetration_slack must not be negative, got %v", c.PenetrationSlack)
	case !(c.LinearProjectionPercent > 0 && c.LinearProjectionPercent <= 1):
		return errors.Wrapf(ErrInvalidConfig, "linear_projection_percent must be in (0, 1], got %v", c.LinearProjectionPercent)
	case !(c.ConstraintNudge >= 0):
		return errors.Wrapf(ErrInvalidConfig, "constraint_nudge must not be negative, got %v", c.ConstraintNudge)
	case !(c.RestingSpeed >= 0):
		return errors.Wrapf(ErrInvalidConfig, "resting_speed must not be negative, got %v", c.RestingSpeed)
	}

	return nil
}
