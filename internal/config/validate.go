package config

import (
	"fmt"
	gomath "math"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/parviews/pkg/encoding"
	"github.com/Faultbox/parviews/pkg/math"
)

// UnitTolerance is how far the up vector's length may stray from 1.
const UnitTolerance = 1e-6

// ConfigurationError reports one invalid setting.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Validate checks every setting and returns all problems combined.
// Use multierr.Errors to list them individually.
func (c *Config) Validate() error {
	var err error
	add := func(field, format string, args ...interface{}) {
		err = multierr.Append(err, &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if len(c.Scene.UpVector) != 3 {
		add("scene.up_vector", "expected 3 components, got %d", len(c.Scene.UpVector))
	} else {
		up := c.Up()
		switch l := up.Length(); {
		case l == 0:
			add("scene.up_vector", "must not be zero")
		case !math.IsUnit(up, UnitTolerance):
			add("scene.up_vector", "must be unit length, got length %g", l)
		}
	}
	if !encoding.Supported(c.Scene.InputEncoding) {
		add("scene.input_encoding", "unsupported charset %q (supported: %s)",
			c.Scene.InputEncoding, strings.Join(encoding.Charsets(), ", "))
	}

	if !(c.Projection.ViewOffset > 0) || gomath.IsInf(c.Projection.ViewOffset, 0) {
		add("projection.view_offset", "must be positive, got %g", c.Projection.ViewOffset)
	}
	if c.Projection.Padding < 0 || gomath.IsNaN(c.Projection.Padding) {
		add("projection.padding", "must not be negative, got %g", c.Projection.Padding)
	}
	if !(c.Projection.PlanarityTolerance > 0) {
		add("projection.planarity_tolerance", "must be positive, got %g", c.Projection.PlanarityTolerance)
	}
	if c.Projection.Workers < 0 {
		add("projection.workers", "must not be negative, got %d", c.Projection.Workers)
	}

	if strings.TrimSpace(c.Output.BaseName) == "" {
		add("output.base_name", "must not be empty")
	}
	if strings.ContainsAny(c.Output.ViewPrefix, " \t\n") {
		add("output.view_prefix", "must not contain whitespace, got %q", c.Output.ViewPrefix)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		add("logging.level", "unknown level %q", c.Logging.Level)
	}

	return err
}
