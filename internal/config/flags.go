package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Flags holds command-line overrides bound to a flag set.
type Flags struct {
	fs *flag.FlagSet

	Config     string
	Debug      bool
	Up         string
	Offset     float64
	Padding    float64
	Workers    int
	Check      bool
	Prefix     string
	BaseName   string
	OutDir     string
	TextureExt string
	Encoding   string
	LogFile    string
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Up, "up", "", "Scene up vector as x,y,z")
	fs.Float64Var(&f.Offset, "offset", 0, "View offset in front of each quad")
	fs.Float64Var(&f.Padding, "padding", 0, "Fractional margin around each quad")
	fs.IntVar(&f.Workers, "workers", 0, "Frame workers (0 = one per CPU)")
	fs.BoolVar(&f.Check, "check", false, "Verify each frame reproduces its quad")
	fs.StringVar(&f.Prefix, "prefix", "", "View, material and texture name prefix")
	fs.StringVar(&f.BaseName, "base", "", "Base name of the .obj and .mtl files")
	fs.StringVar(&f.OutDir, "out", "", "Output directory")
	fs.StringVar(&f.TextureExt, "ext", "", "Rendered picture extension")
	fs.StringVar(&f.Encoding, "encoding", "", "Scene file charset")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to this file as well")
	return f
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.Config
}

func (f *Flags) isSet(name string) bool {
	if f.fs == nil {
		return false
	}
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// applyFlags applies CLI flag overrides to the config. Only flags given on
// the command line override file values.
func applyFlags(cfg *Config, f *Flags) error {
	if f == nil {
		return nil
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.isSet("up") {
		up, err := ParseVector(f.Up)
		if err != nil {
			return &ConfigurationError{Field: "scene.up_vector", Reason: err.Error()}
		}
		cfg.Scene.UpVector = up
	}
	if f.isSet("offset") {
		cfg.Projection.ViewOffset = f.Offset
	}
	if f.isSet("padding") {
		cfg.Projection.Padding = f.Padding
	}
	if f.isSet("workers") {
		cfg.Projection.Workers = f.Workers
	}
	if f.Check {
		cfg.Projection.Check = true
	}
	if f.isSet("prefix") {
		cfg.Output.ViewPrefix = f.Prefix
	}
	if f.BaseName != "" {
		cfg.Output.BaseName = f.BaseName
	}
	if f.OutDir != "" {
		cfg.Output.Dir = f.OutDir
	}
	if f.TextureExt != "" {
		cfg.Output.TextureExt = f.TextureExt
	}
	if f.Encoding != "" {
		cfg.Scene.InputEncoding = f.Encoding
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	return nil
}

// ParseVector parses "x,y,z" (commas or spaces) into three components.
func ParseVector(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) != 3 {
		return nil, fmt.Errorf("expected 3 components, got %q", s)
	}
	v := make([]float64, 3)
	for i, field := range fields {
		x, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid component %q", field)
		}
		v[i] = x
	}
	return v, nil
}
