// Package config handles parviews configuration loading and management.
package config

import (
	"github.com/Faultbox/parviews/internal/projection"
	"github.com/Faultbox/parviews/internal/view"
	"github.com/Faultbox/parviews/pkg/encoding"
	"github.com/Faultbox/parviews/pkg/math"
)

// Config holds all settings of a run.
type Config struct {
	Scene      SceneConfig      `yaml:"scene"`
	Projection ProjectionConfig `yaml:"projection"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SceneConfig describes how the scene file is interpreted.
type SceneConfig struct {
	UpVector      []float64 `yaml:"up_vector,flow"` // Global up direction, unit length
	InputEncoding string    `yaml:"input_encoding"`
}

// ProjectionConfig holds the view derivation settings.
type ProjectionConfig struct {
	ViewOffset         float64 `yaml:"view_offset"`         // Eye distance in front of each quad
	Padding            float64 `yaml:"padding"`             // Fractional margin around each quad
	PlanarityTolerance float64 `yaml:"planarity_tolerance"` // Relative to the quad diagonal
	Workers            int     `yaml:"workers"`             // 0 = one per CPU
	Check              bool    `yaml:"check"`               // Verify each frame against its UVs
}

// OutputConfig holds output naming settings.
type OutputConfig struct {
	BaseName   string `yaml:"base_name"`   // Stem of the .obj and .mtl files
	ViewPrefix string `yaml:"view_prefix"` // Prefix of view, material and texture names
	TextureExt string `yaml:"texture_ext"` // Extension of the rendered pictures
	Dir        string `yaml:"dir"`         // Directory the mesh files are written to
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			UpVector:      []float64{0, 0, 1},
			InputEncoding: encoding.DefaultCharset,
		},
		Projection: ProjectionConfig{
			ViewOffset:         0.1,
			Padding:            0,
			PlanarityTolerance: 1e-3,
			Workers:            0,
		},
		Output: OutputConfig{
			BaseName:   "scene",
			ViewPrefix: "scene",
			TextureExt: view.DefaultTextureExt,
			Dir:        ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Up returns the configured up vector. Callers should Validate first.
func (c *Config) Up() math.Vec3 {
	if len(c.Scene.UpVector) != 3 {
		return math.Vec3{}
	}
	return math.Vec3{X: c.Scene.UpVector[0], Y: c.Scene.UpVector[1], Z: c.Scene.UpVector[2]}
}

// ProjectionOptions returns the frame derivation options.
func (c *Config) ProjectionOptions() projection.Options {
	return projection.Options{
		Up:                 c.Up(),
		ViewOffset:         c.Projection.ViewOffset,
		Padding:            c.Projection.Padding,
		PlanarityTolerance: c.Projection.PlanarityTolerance,
	}
}

// Naming returns the view and texture naming settings.
func (c *Config) Naming() view.Naming {
	return view.Naming{
		Prefix:     c.Output.ViewPrefix,
		TextureExt: c.Output.TextureExt,
	}
}
