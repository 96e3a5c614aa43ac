// Package project locates and loads radi.yaml project configuration.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/invpt/radi/lang/parser"
)

// ConfigFileName is the file looked up when discovering a project root.
const ConfigFileName = "radi.yaml"

// Config is the contents of a radi.yaml file.
type Config struct {
	// Entry is the source file commands default to when none is given.
	Entry string `yaml:"entry"`

	Parser ParserConfig `yaml:"parser"`
	Watch  WatchConfig  `yaml:"watch"`

	// RootDir is the directory the config was loaded from. It is not part
	// of the file itself.
	RootDir string `yaml:"-"`
}

// ParserConfig holds per-project parser settings.
type ParserConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// WatchConfig holds per-project watch-mode settings.
type WatchConfig struct {
	Extensions []string `yaml:"extensions"`
}

// Default returns the configuration used when no radi.yaml exists.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{MaxDepth: parser.DefaultMaxDepth},
		Watch:  WatchConfig{Extensions: []string{".radi"}},
	}
}

// Load discovers and loads the project configuration for the current
// directory. See LoadFrom.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom walks upward from dir looking for a radi.yaml. If none is found
// the default configuration is returned with RootDir set to dir.
func LoadFrom(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	for cur := abs; ; {
		path := filepath.Join(cur, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}

	cfg := Default()
	cfg.RootDir = abs
	return cfg, nil
}

// LoadFile reads and validates a single configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Parser.MaxDepth <= 0 {
		return nil, fmt.Errorf("%s: parser.max_depth must be positive, got %d", path, cfg.Parser.MaxDepth)
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = []string{".radi"}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	cfg.RootDir = filepath.Dir(abs)
	return cfg, nil
}
