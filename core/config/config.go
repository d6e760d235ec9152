// Package config loads and validates the shell's configuration file.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default_config.yaml
var defaultConfigData []byte

// DefaultConfigurationName is the config file the CLI looks for when
// --config isn't given.
const DefaultConfigurationName = "wish.yaml"

type Configuration struct {
	configFs  afero.Fs
	configDir string

	// Prompt printed before each interactive command.
	Prompt string `json:"prompt" validate:"required"`
	// SearchPath holds the initial program search directories. Empty is
	// legal; every external lookup then fails until a path builtin runs.
	SearchPath []string `json:"search_path" validate:"dive,required"`
	// LogPath is the JSON lines event log, empty to disable.
	LogPath string `json:"log_path"`
	// TranscriptDir receives per-session transcripts, empty to disable.
	TranscriptDir string `json:"transcript_dir"`
	// Colors toggles prompt coloring.
	Colors bool `json:"colors"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// resolvePath resolves a configured path against the directory the
// configuration was loaded from.
func (c *Configuration) resolvePath(path string) string {
	if filepath.IsAbs(path) || c.configDir == "" {
		return path
	}
	return filepath.Join(c.configDir, path)
}

// OpenEventLog opens the event log in an append only state, or returns
// (nil, nil) when event logging is disabled.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	if c.LogPath == "" {
		return nil, nil
	}
	return c.fs().OpenFile(c.resolvePath(c.LogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.resolvePath(c.LogPath), os.O_RDONLY, 0600)
}

// CreateTranscript creates a transcript file with the given name, or
// returns (nil, nil) when transcript recording is disabled.
func (c *Configuration) CreateTranscript(name string) (afero.File, error) {
	if c.TranscriptDir == "" {
		return nil, nil
	}

	dir := c.resolvePath(c.TranscriptDir)
	if err := c.fs().MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return c.fs().Create(filepath.Join(dir, name))
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the embedded default configuration.
func Default(fs afero.Fs) *Configuration {
	out := defaultConfig()
	out.configFs = fs
	out.configDir = "."
	return out
}
