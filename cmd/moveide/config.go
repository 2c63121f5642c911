package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"moveide/internal/driver"
)

// projectConfig is moveide.toml. Command-line flags win over it.
type projectConfig struct {
	Render renderConfig `toml:"render"`
	Cursor cursorConfig `toml:"cursor"`
}

type renderConfig struct {
	Format    string `toml:"format"`
	WithNotes bool   `toml:"with_notes"`
	Color     string `toml:"color"`
	Jobs      int    `toml:"jobs"`
}

type cursorConfig struct {
	ContextLines int `toml:"context_lines"`
}

// findConfig walks up from startDir looking for moveide.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, driver.ConfigFileName)
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

// loadConfig finds and decodes the config for target. A missing file is
// the zero config.
func loadConfig(target string) (projectConfig, error) {
	start := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		start = filepath.Dir(target)
	}
	path, ok, err := findConfig(start)
	if err != nil || !ok {
		return projectConfig{}, err
	}
	return decodeConfig(path)
}

func decodeConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("render", "format") {
		if _, err := parseRenderFormat(cfg.Render.Format); err != nil {
			return projectConfig{}, fmt.Errorf("%s: render.format: %w", path, err)
		}
	}
	if meta.IsDefined("cursor", "context_lines") && cfg.Cursor.ContextLines < 0 {
		return projectConfig{}, fmt.Errorf("%s: cursor.context_lines must not be negative", path)
	}
	return cfg, nil
}
