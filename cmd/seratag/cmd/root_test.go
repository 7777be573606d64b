package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/cratekit/seratag/pkg/config"
	"github.com/cratekit/seratag/pkg/tag"
)

func newConfigCommand(t *testing.T, path string) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	if path != "" {
		err := cmd.Flags().Set("config", path)
		assert.NoError(t, err)
	}
	return cmd
}

func TestLoadConfig(t *testing.T) {
	// Create temporary directory for test
	tmpDir, err := os.MkdirTemp("", "seratag_cmd_test")
	assert.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	t.Run("Missing file falls back to defaults", func(t *testing.T) {
		cmd := newConfigCommand(t, filepath.Join(tmpDir, "nope.yaml"))

		cfg, err := loadConfig(cmd)
		assert.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), cfg)
	})

	t.Run("Reads a saved config", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		want := config.DefaultConfig()
		want.Port = 9090
		want.LibraryPath = filepath.Join(tmpDir, "library")
		want.Security.APIKey = "test-api-key"
		want.Decoding.Strict = true
		err := config.SaveConfig(want, configPath)
		assert.NoError(t, err)

		cfg, err := loadConfig(newConfigCommand(t, configPath))
		assert.NoError(t, err)
		assert.Equal(t, want, cfg)
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "broken.yaml")
		err := os.WriteFile(configPath, []byte("port: [not a port"), 0600)
		assert.NoError(t, err)

		_, err = loadConfig(newConfigCommand(t, configPath))
		assert.Error(t, err)
	})
}

func TestParseTag(t *testing.T) {
	// A markers2 payload whose cue entry declares one more byte than its
	// fields occupy.
	payload := append([]byte{0x01, 0x01}, "AQFDVUUAAAAADwACAAAJxAAAAMwAAFgAqgA="...)

	t.Run("Lenient keeps the raw entry", func(t *testing.T) {
		decoded, err := parseTag(tag.Markers2Name, payload, false)
		assert.NoError(t, err)
		assert.Equal(t, payload, decoded.Encode())
	})

	t.Run("Strict rejects it", func(t *testing.T) {
		_, err := parseTag(tag.Markers2Name, payload, true)
		assert.ErrorIs(t, err, tag.ErrLengthMismatch)
	})

	t.Run("Unknown name", func(t *testing.T) {
		_, err := parseTag("Serato Playcount", payload, false)
		assert.ErrorIs(t, err, tag.ErrUnknownTag)
	})
}
