package config

import (
	"io/ioutil"
	"log"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	fs := afero.NewMemMapFs()
	discard := log.New(ioutil.Discard, "", 0)

	cfg, err := Initialize(fs, "wish.yaml", discard)
	if err != nil {
		t.Fatal(err)
	}

	// Check that the written config matches the embedded default.
	assert.Equal(t, defaultConfig().Prompt, cfg.Prompt)
	assert.Equal(t, defaultConfig().SearchPath, cfg.SearchPath)

	t.Run("reload", func(t *testing.T) {
		reloaded, err := Load(fs, "wish.yaml")
		assert.Nil(t, err)
		assert.Equal(t, cfg.Prompt, reloaded.Prompt)
	})

	t.Run("second init keeps existing file", func(t *testing.T) {
		assert.Nil(t, afero.WriteFile(fs, "wish.yaml", []byte(`prompt: "$ "`), 0600))

		cfg, err := Initialize(fs, "wish.yaml", discard)
		assert.Nil(t, err)
		assert.Equal(t, "$ ", cfg.Prompt)
	})
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(fs, "missing.yaml")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown field", func(t *testing.T) {
		assert.Nil(t, afero.WriteFile(fs, "bad.yaml", []byte("prompt: \"$ \"\nbogus: true\n"), 0600))
		_, err := Load(fs, "bad.yaml")
		assert.NotNil(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		assert.Nil(t, afero.WriteFile(fs, "invalid.yaml", []byte("prompt: \"\"\n"), 0600))
		_, err := Load(fs, "invalid.yaml")
		assert.NotNil(t, err)
	})
}

func TestCreateTranscript(t *testing.T) {
	fs := afero.NewMemMapFs()

	t.Run("disabled", func(t *testing.T) {
		cfg := Default(fs)
		fd, err := cfg.CreateTranscript("session.transcript")
		assert.Nil(t, err)
		assert.Nil(t, fd)
	})

	t.Run("enabled", func(t *testing.T) {
		cfg := Default(fs)
		cfg.TranscriptDir = "transcripts"

		fd, err := cfg.CreateTranscript("session.transcript")
		assert.Nil(t, err)
		if assert.NotNil(t, fd) {
			fd.Close()
		}

		exists, err := afero.Exists(fs, "transcripts/session.transcript")
		assert.Nil(t, err)
		assert.True(t, exists)
	})
}

func TestOpenEventLog(t *testing.T) {
	fs := afero.NewMemMapFs()

	t.Run("disabled", func(t *testing.T) {
		cfg := Default(fs)
		fd, err := cfg.OpenEventLog()
		assert.Nil(t, err)
		assert.Nil(t, fd)
	})

	t.Run("enabled", func(t *testing.T) {
		cfg := Default(fs)
		cfg.LogPath = "events.log"

		fd, err := cfg.OpenEventLog()
		assert.Nil(t, err)
		if assert.NotNil(t, fd) {
			fd.Close()
		}
	})
}
