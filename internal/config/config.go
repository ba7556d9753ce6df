// Package config loads blockboard settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds user settings. Keys missing from the file keep their Default
// value; keys present are taken as written and must pass Validate.
type Config struct {
	SaveDirectory string `toml:"save_directory"`
	BlockWidth    int    `toml:"block_width"`
	BlockHeight   int    `toml:"block_height"`
	LogLevel      string `toml:"log_level"`
	LogFile       string `toml:"log_file"`
	Seed          uint64 `toml:"seed"`
}

// Minimum block size that still fits the index label and the add-child control.
const (
	MinBlockWidth  = 7
	MinBlockHeight = 4
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BlockWidth:  12,
		BlockHeight: 5,
		LogLevel:    "info",
	}
}

// DefaultPath returns blockboard/config.toml under os.UserConfigDir, or ""
// when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "blockboard", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.SaveDirectory = expandHome(cfg.SaveDirectory)
	cfg.LogFile = expandHome(cfg.LogFile)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the block size.
func (c *Config) Validate() error {
	if c.BlockWidth < MinBlockWidth || c.BlockHeight < MinBlockHeight {
		return fmt.Errorf("block size %dx%d is smaller than %dx%d",
			c.BlockWidth, c.BlockHeight, MinBlockWidth, MinBlockHeight)
	}
	return nil
}

// BlockSize returns the configured block size in cells.
func (c *Config) BlockSize() image.Point {
	return image.Pt(c.BlockWidth, c.BlockHeight)
}

// GetSavePath resolves filename inside the save directory, creating it.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}

func expandHome(path string) string {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
