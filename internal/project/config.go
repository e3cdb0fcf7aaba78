package project

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config mirrors akuru.toml. Every key is optional; command-line flags win
// over values set here.
//
//	[diagnostics]
//	color = "auto"       # auto|on|off
//	max = 100
//	path_mode = "relative"
//
//	[tokenize]
//	format = "pretty"    # pretty|json
//	jobs = 4
//	cache = true
type Config struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Tokenize    TokenizeConfig    `toml:"tokenize"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
	meta toml.MetaData
}

type DiagnosticsConfig struct {
	Color    string `toml:"color"`
	Max      int    `toml:"max"`
	PathMode string `toml:"path_mode"`
}

type TokenizeConfig struct {
	Format string `toml:"format"`
	Jobs   int    `toml:"jobs"`
	Cache  bool   `toml:"cache"`
}

// Defaults returns the configuration used when no akuru.toml is found.
func Defaults() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{Color: "auto", Max: 100, PathMode: "auto"},
		Tokenize:    TokenizeConfig{Format: "pretty"},
	}
}

// IsDefined reports whether key (e.g. "tokenize", "jobs") was present in the file.
func (c *Config) IsDefined(key ...string) bool {
	return c.Path != "" && c.meta.IsDefined(key...)
}

// LoadConfig reads path on top of Defaults and validates it. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	cfg.meta = meta
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds akuru.toml above startDir and loads it. Without a file it
// returns Defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Defaults(), nil
	}
	return LoadConfig(path)
}

func (c *Config) validate() error {
	switch c.Diagnostics.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[diagnostics].color must be auto|on|off, got %q", c.Diagnostics.Color)
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must not be negative")
	}
	switch c.Diagnostics.PathMode {
	case "auto", "absolute", "relative", "basename":
	default:
		return fmt.Errorf("[diagnostics].path_mode must be auto|absolute|relative|basename, got %q", c.Diagnostics.PathMode)
	}
	switch c.Tokenize.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("[tokenize].format must be pretty|json, got %q", c.Tokenize.Format)
	}
	if c.Tokenize.Jobs < 0 {
		return fmt.Errorf("[tokenize].jobs must not be negative")
	}
	return nil
}
