// Package config loads pathfinder settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-navmesh/pkg/logging"
)

// Defaults for the spatial lookups.
const (
	DefaultContainmentRadius = 10.0
	DefaultNearbyRadius      = 800.0
	DefaultPortalEpsilon     = 1e-6
)

// validate is a singleton validator instance
var validate = validator.New()

// Config holds the pathfinder settings.
type Config struct {
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// ContainmentRadius bounds the triangle lookup for query endpoints.
	ContainmentRadius float64 `yaml:"containment_radius" validate:"gt=0"`
	// NearbyRadius bounds the wall search of NearestWalkablePoint.
	NearbyRadius float64 `yaml:"nearby_radius" validate:"gt=0"`
	// PortalEpsilon is the squared distance under which portal midpoints merge.
	PortalEpsilon      float64 `yaml:"portal_epsilon" validate:"gt=0"`
	DefaultAgentRadius float64 `yaml:"default_agent_radius" validate:"gte=0"`

	TickBudget time.Duration `yaml:"tick_budget"`
	// Smooth enables string pulling of completed paths.
	Smooth bool `yaml:"smooth"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:          "info",
		ContainmentRadius: DefaultContainmentRadius,
		NearbyRadius:      DefaultNearbyRadius,
		PortalEpsilon:     DefaultPortalEpsilon,
		TickBudget:        DefaultTickBudget,
		Smooth:            true,
	}
}

// Load reads a YAML file over Default, applies the NAVMESH_LOG_LEVEL
// override and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize applies the environment override, clamps the tick budget and
// validates every field.
func (c *Config) Normalize() error {
	if env := os.Getenv(logging.LevelEnv); env != "" {
		c.LogLevel = env
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.TickBudget = ValidateTickBudget(c.TickBudget)
	return c.Validate()
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	return formatValidationError(validate.Struct(c))
}

// Level returns the configured log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
