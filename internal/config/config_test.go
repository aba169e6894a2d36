package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"

	"github.com/Faultbox/parviews/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Up() != (math.Vec3{X: 0, Y: 0, Z: 1}) {
		t.Errorf("expected Z up, got %v", cfg.Up())
	}
	if cfg.Scene.InputEncoding != "utf-8" {
		t.Errorf("expected utf-8 input, got %s", cfg.Scene.InputEncoding)
	}
	if cfg.Projection.ViewOffset != 0.1 {
		t.Errorf("expected view offset 0.1, got %f", cfg.Projection.ViewOffset)
	}
	if cfg.Output.BaseName != "scene" || cfg.Output.ViewPrefix != "scene" {
		t.Errorf("expected scene/scene naming, got %s/%s", cfg.Output.BaseName, cfg.Output.ViewPrefix)
	}
	if cfg.Output.TextureExt != "hdr" {
		t.Errorf("expected hdr textures, got %s", cfg.Output.TextureExt)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "parviews.yaml")

	yamlContent := `
scene:
  up_vector: [0, 1, 0]
  input_encoding: latin1

projection:
  view_offset: 2.5
  padding: 0.05
  workers: 4

output:
  base_name: room
  view_prefix: proj_
  texture_ext: pic
  dir: out

logging:
  level: "debug"
  log_file: "parviews.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Up() != (math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("expected Y up, got %v", cfg.Up())
	}
	if cfg.Scene.InputEncoding != "latin1" {
		t.Errorf("expected latin1, got %s", cfg.Scene.InputEncoding)
	}
	if cfg.Projection.ViewOffset != 2.5 || cfg.Projection.Padding != 0.05 || cfg.Projection.Workers != 4 {
		t.Errorf("unexpected projection settings: %+v", cfg.Projection)
	}
	// Not in the file: keeps the default.
	if cfg.Projection.PlanarityTolerance != 1e-3 {
		t.Errorf("expected default planarity tolerance, got %g", cfg.Projection.PlanarityTolerance)
	}
	if cfg.Output.BaseName != "room" || cfg.Output.ViewPrefix != "proj_" || cfg.Output.TextureExt != "pic" || cfg.Output.Dir != "out" {
		t.Errorf("unexpected output settings: %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "parviews.log" {
		t.Errorf("unexpected logging settings: %+v", cfg.Logging)
	}

	opts := cfg.ProjectionOptions()
	if opts.ViewOffset != 2.5 || opts.Up != (math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("unexpected projection options: %+v", opts)
	}
	if n := cfg.Naming(); n.Prefix != "proj_" || n.TextureExt != "pic" {
		t.Errorf("unexpected naming: %+v", n)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
projection:
  view_offset: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "parviews.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  base_name: x\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find parviews.yaml in current directory")
	}
}

func TestLoadWithFlags(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "parviews.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  view_prefix: file_prefix\n  base_name: file_base\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "file only",
			args: []string{"-config", configPath},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.ViewPrefix != "file_prefix" || cfg.Output.BaseName != "file_base" {
					t.Errorf("expected file values, got %+v", cfg.Output)
				}
			},
		},
		{
			name: "flags override file",
			args: []string{"-config", configPath, "-prefix", "proj_", "-base", "room", "-offset", "3", "-up", "0,1,0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.ViewPrefix != "proj_" || cfg.Output.BaseName != "room" {
					t.Errorf("expected flag values, got %+v", cfg.Output)
				}
				if cfg.Projection.ViewOffset != 3 {
					t.Errorf("expected offset 3, got %g", cfg.Projection.ViewOffset)
				}
				if cfg.Up() != (math.Vec3{X: 0, Y: 1, Z: 0}) {
					t.Errorf("expected Y up, got %v", cfg.Up())
				}
			},
		},
		{
			name: "empty prefix flag clears prefix",
			args: []string{"-config", configPath, "-prefix", ""},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.ViewPrefix != "" {
					t.Errorf("expected empty prefix, got %q", cfg.Output.ViewPrefix)
				}
			},
		},
		{
			name: "check flag",
			args: []string{"-config", configPath, "-check"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Projection.Check {
					t.Error("expected projection check enabled")
				}
			},
		},
		{
			name: "debug flag",
			args: []string{"-config", configPath, "-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "zero offset flag is kept for validation",
			args: []string{"-config", configPath, "-offset", "0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Projection.ViewOffset != 0 {
					t.Errorf("expected offset 0, got %g", cfg.Projection.ViewOffset)
				}
				if cfg.Validate() == nil {
					t.Error("expected validation error for zero offset")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			flags := BindFlags(fs)
			if err := fs.Parse(tc.args); err != nil {
				t.Fatalf("failed to parse flags: %v", err)
			}

			cfg, err := Load(flags)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			tc.verify(t, cfg)
		})
	}
}

func TestLoadInvalidUpFlag(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"-config", "", "-up", "0,1"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	_, err := Load(flags)
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
	if ce.Field != "scene.up_vector" {
		t.Errorf("expected scene.up_vector field, got %s", ce.Field)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{"zero up vector", func(c *Config) { c.Scene.UpVector = []float64{0, 0, 0} }, []string{"scene.up_vector"}},
		{"non-unit up vector", func(c *Config) { c.Scene.UpVector = []float64{0, 0, 2} }, []string{"scene.up_vector"}},
		{"short up vector", func(c *Config) { c.Scene.UpVector = []float64{0, 1} }, []string{"scene.up_vector"}},
		{"negative offset", func(c *Config) { c.Projection.ViewOffset = -1 }, []string{"projection.view_offset"}},
		{"negative padding", func(c *Config) { c.Projection.Padding = -0.1 }, []string{"projection.padding"}},
		{"zero planarity", func(c *Config) { c.Projection.PlanarityTolerance = 0 }, []string{"projection.planarity_tolerance"}},
		{"negative workers", func(c *Config) { c.Projection.Workers = -2 }, []string{"projection.workers"}},
		{"empty base", func(c *Config) { c.Output.BaseName = " " }, []string{"output.base_name"}},
		{"prefix with space", func(c *Config) { c.Output.ViewPrefix = "my scene" }, []string{"output.view_prefix"}},
		{"bad encoding", func(c *Config) { c.Scene.InputEncoding = "klingon" }, []string{"scene.input_encoding"}},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, []string{"logging.level"}},
		{
			name: "several problems",
			modify: func(c *Config) {
				c.Projection.ViewOffset = 0
				c.Scene.UpVector = []float64{1, 1, 0}
			},
			fields: []string{"scene.up_vector", "projection.view_offset"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)

			errs := multierr.Errors(cfg.Validate())
			if len(errs) != len(tc.fields) {
				t.Fatalf("expected %d errors, got %d: %v", len(tc.fields), len(errs), errs)
			}
			for i, err := range errs {
				var ce *ConfigurationError
				if !errors.As(err, &ce) {
					t.Fatalf("expected *ConfigurationError, got %T", err)
				}
				if ce.Field != tc.fields[i] {
					t.Errorf("error %d: expected field %s, got %s", i, tc.fields[i], ce.Field)
				}
			}
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "parviews.yaml")

	cfg := Default()
	cfg.Output.ViewPrefix = "proj_"
	cfg.Scene.UpVector = []float64{0, 1, 0}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Output.ViewPrefix != "proj_" || loaded.Up() != (math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("saved config did not round-trip: %+v", loaded)
	}
}

func TestParseVector(t *testing.T) {
	tests := []struct {
		in   string
		want []float64
		ok   bool
	}{
		{"0,0,1", []float64{0, 0, 1}, true},
		{"0 1 0", []float64{0, 1, 0}, true},
		{"1, 0, 0", []float64{1, 0, 0}, true},
		{"1,0", nil, false},
		{"a,b,c", nil, false},
	}

	for _, tc := range tests {
		got, err := ParseVector(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseVector(%q) error = %v, want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && (got[0] != tc.want[0] || got[1] != tc.want[1] || got[2] != tc.want[2]) {
			t.Errorf("ParseVector(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
