package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"akuru/internal/diagfmt"
	"akuru/internal/project"
)

// settings are the effective options of a run: flags explicitly set on the
// command line win over akuru.toml, which wins over flag defaults.
type settings struct {
	cfg            project.Config
	color          bool
	maxDiagnostics int
	pathMode       diagfmt.PathMode
	timings        bool
	// baseDir is the project root used for relative paths; "" outside a project.
	baseDir string
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var (
		cfg     project.Config
		baseDir string
	)
	if configPath != "" {
		cfg, err = project.LoadConfig(configPath)
		baseDir = filepath.Dir(configPath)
	} else {
		cfg, err = project.Discover(".")
		if err == nil {
			baseDir, _, err = project.FindProjectRoot(".")
		}
	}
	if err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg, baseDir: baseDir}

	colorMode := cfg.Diagnostics.Color
	if flags.Changed("color") {
		if colorMode, err = flags.GetString("color"); err != nil {
			return nil, err
		}
	}
	switch colorMode {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto":
		s.color = isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}

	s.maxDiagnostics = cfg.Diagnostics.Max
	if flags.Changed("max-diagnostics") || !cfg.IsDefined("diagnostics", "max") {
		if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, err
		}
	}
	if s.maxDiagnostics < 0 {
		return nil, fmt.Errorf("--max-diagnostics must not be negative")
	}

	pathMode := cfg.Diagnostics.PathMode
	if flags.Changed("path-mode") {
		if pathMode, err = flags.GetString("path-mode"); err != nil {
			return nil, err
		}
	}
	if s.pathMode, err = diagfmt.ParsePathMode(pathMode); err != nil {
		return nil, err
	}

	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:    s.color,
		PathMode: s.pathMode,
	}
}

// isDir reports whether path names a directory.
func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
