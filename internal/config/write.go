package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// AddAllowedWords rewrites the YAML configuration file at path with words
// merged into its allowed-words list, creating the file if it does not
// exist. The rewrite happens under an advisory file lock so concurrent
// invocations do not clobber each other, and the file is replaced atomically
// via a temp-file rename.
func AddAllowedWords(path string, words []string) (*Config, error) {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}
	defer lock.Unlock()

	cfg := DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	seen := make(map[string]struct{}, len(cfg.AllowedWords))
	for _, w := range cfg.AllowedWords {
		seen[w] = struct{}{}
	}
	added := 0
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		cfg.AllowedWords = append(cfg.AllowedWords, w)
		added++
	}
	if added == 0 {
		return cfg, nil
	}
	sort.Strings(cfg.AllowedWords)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to write invalid config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := atomicWrite(path, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// atomicWrite replaces path via a temp file in the same directory and a
// rename, so readers never observe a partial config file.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".spellsweep-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	tmp = nil
	return nil
}
