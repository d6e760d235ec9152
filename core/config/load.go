package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads and validates the configuration at path.
func Load(fs afero.Fs, path string) (*Configuration, error) {
	configContents, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("couldn't parse %s: %w", path, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	out.configFs = fs
	out.configDir = filepath.Dir(path)
	return &out, nil
}

// Initialize writes the default configuration to path if nothing exists
// there yet, then loads it.
func Initialize(fs afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, err
	}

	if exists {
		logger.Printf("Configuration %s already exists, skipping.", path)
	} else {
		logger.Printf("Writing default configuration to %s.", path)
		if err := afero.WriteFile(fs, path, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	}

	return Load(fs, path)
}
