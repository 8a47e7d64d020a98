// Package config loads spellsweep configuration. Configuration is an
// explicit immutable value handed to file discovery and the engine; there is
// no ambient or global configuration state.
//
// Configuration is discovered by walking the ancestors of the working
// directory. In each directory, `.spellsweep.yaml` takes precedence over
// `spellsweep.yaml`, which takes precedence over a `pyproject.toml`
// containing a `[tool.spellsweep]` table. The first hit wins; if nothing is
// found anywhere, defaults apply.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config represents spellsweep configuration options.
type Config struct {
	// Exclude is the list of glob patterns removed from file discovery.
	// Patterns match against both full paths and basenames.
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude"`

	// AllowedWords is the list of extra words accepted by the checker, on
	// top of the dictionary.
	AllowedWords []string `yaml:"allowed-words,omitempty" toml:"allowed-words"`

	// Dictionary is the path to a newline-delimited word list. Empty means
	// the embedded English dictionary.
	Dictionary string `yaml:"dictionary,omitempty" toml:"dictionary"`
}

// DefaultConfig returns a Config with default values: nothing excluded, no
// extra words, embedded dictionary.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate validates the configuration values, reporting all problems it
// can detect up front. Glob syntax is deliberately not validated here: a
// malformed exclusion pattern is downgraded to a warning at discovery time
// rather than failing the run.
func (c *Config) Validate() error {
	for i, pattern := range c.Exclude {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("exclude[%d] is empty", i)
		}
	}
	for i, word := range c.AllowedWords {
		if strings.TrimSpace(word) == "" {
			return fmt.Errorf("allowed-words[%d] is empty", i)
		}
		if strings.ContainsAny(word, " \t\n") {
			return fmt.Errorf("allowed-words[%d] %q contains whitespace", i, word)
		}
	}
	return nil
}

// Load reads a YAML configuration file. A file that exists but cannot be
// parsed is an error; callers decide whether a missing file is.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// pyproject mirrors the fragment of a pyproject.toml file this tool reads.
// A nil Spellsweep table means the file carries no spellsweep configuration.
type pyproject struct {
	Tool struct {
		Spellsweep *Config `toml:"spellsweep"`
	} `toml:"tool"`
}

// errNotConfigured marks a pyproject.toml without a [tool.spellsweep] table.
var errNotConfigured = errors.New("no spellsweep configuration present")

// loadPyproject reads configuration embedded in a pyproject.toml. Returns
// errNotConfigured when the file parses but carries no [tool.spellsweep]
// table; malformed TOML or mismatched value types are real errors.
func loadPyproject(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var py pyproject
	if err := toml.Unmarshal(data, &py); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if py.Tool.Spellsweep == nil {
		return nil, errNotConfigured
	}

	cfg := py.Tool.Spellsweep
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

// Config file basenames, in precedence order within one directory.
const (
	hiddenConfigName = ".spellsweep.yaml"
	plainConfigName  = "spellsweep.yaml"
	pyprojectName    = "pyproject.toml"
)

// Discover walks dir and its ancestors looking for a configuration file.
// Returns the loaded configuration and the path it came from, or defaults
// with an empty path when no configuration exists anywhere. A configuration
// file that is found but malformed is an error.
func Discover(dir string) (*Config, string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for {
		for _, name := range []string{hiddenConfigName, plainConfigName} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err != nil {
					return nil, "", err
				}
				return cfg, path, nil
			}
		}

		path := filepath.Join(dir, pyprojectName)
		if _, err := os.Stat(path); err == nil {
			cfg, err := loadPyproject(path)
			if err == nil {
				return cfg, path, nil
			}
			if !errors.Is(err, errNotConfigured) {
				return nil, "", err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return DefaultConfig(), "", nil
		}
		dir = parent
	}
}
