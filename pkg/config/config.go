/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the seratag server configuration
type Config struct {
	Bind        string   `yaml:"bind"`
	Port        int      `yaml:"port"`
	LibraryPath string   `yaml:"library_path"`
	Security    Security `yaml:"security"`
	Decoding    Decoding `yaml:"decoding"`
	Logging     Logging  `yaml:"logging"`
}

// Security contains security-related configuration
type Security struct {
	// APIKey guards the tag endpoints. An empty key disables auth.
	APIKey string `yaml:"api_key"`
}

// Decoding controls how the server parses submitted tag bodies
type Decoding struct {
	// Strict rejects known marker entries whose payload length does not
	// match instead of keeping them as unknown entries.
	Strict bool `yaml:"strict"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Bind:        "127.0.0.1",
		Port:        8080,
		LibraryPath: "./seratag-library",
		Logging:     Logging{Level: "info"},
	}
}

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (*Config, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// SaveConfig writes cfg to path with owner-only permissions, creating
// parent directories as needed.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateSecureKey returns length random bytes hex encoded.
func GenerateSecureKey(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// BootstrapConfig writes a fresh config file with a generated API key and
// returns it. An empty libraryPath keeps the default location.
func BootstrapConfig(path string, libraryPath string) (*Config, error) {
	cfg := DefaultConfig()
	if libraryPath != "" {
		cfg.LibraryPath = libraryPath
	}

	key, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	cfg.Security.APIKey = key

	if err := SaveConfig(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}
	return cfg, nil
}

// GetDefaultConfigPath returns where seratag looks for its config file,
// ~/.config/seratag/config.yaml when the home directory is known.
func GetDefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./seratag.yaml"
	}
	return filepath.Join(home, ".config", "seratag", "config.yaml")
}

// ConfigExists reports whether a config file is present at path.
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
