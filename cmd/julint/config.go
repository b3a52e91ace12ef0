package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// toolConfig is the optional julint.toml, discovered by walking from the
// start directory up to the filesystem root. Absence of the file leaves
// every default in place.
type toolConfig struct {
	Path string
	Lint lintConfig `toml:"lint"`
}

type lintConfig struct {
	MaxIssues int      `toml:"max-issues"`
	Disable   []string `toml:"disable"`
}

func findJulintToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "julint.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadToolConfig(startDir string) (*toolConfig, bool, error) {
	path, ok, err := findJulintToml(startDir)
	if err != nil || !ok {
		return nil, false, err
	}

	var cfg toolConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, false, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	cfg.Path = path
	return &cfg, true, nil
}
