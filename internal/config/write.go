package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hugo-lorenzo-mato/splitview/internal/core"
)

// WriteDefault writes DefaultConfigYAML to path. An existing file is only
// replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return core.ErrConflict(core.CodeInvalidConfig,
				fmt.Sprintf("%s already exists (use --force to overwrite)", path))
		}
	}
	return AtomicWrite(path, []byte(DefaultConfigYAML))
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// Save writes cfg to path as YAML.
func Save(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return AtomicWrite(path, data)
}

// AtomicWrite writes data to path so readers never see a partial file.
// The file keeps its permissions when it already exists.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	perm := os.FileMode(0o600)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return atomicWriteFile(path, data, perm)
}
