package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/galvez/go-catalogo/internal/fileutil"
	"github.com/galvez/go-catalogo/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds all configuration for catalog generation. Flags override
// config values field by field.
type Config struct {
	Store    StoreConfig  `yaml:"store"`
	Output   OutputConfig `yaml:"output"`
	Cover    CoverConfig  `yaml:"cover"`
	Font     FontConfig   `yaml:"font"`
	Currency string       `yaml:"currency"`
}

// StoreConfig defines asset store options.
type StoreConfig struct {
	Dir string `yaml:"dir"` // Asset store base directory (empty = mi_catalogo)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Path string `yaml:"path"` // Output PDF path (empty = catalogo.pdf)
}

// CoverConfig defines cover composition options.
type CoverConfig struct {
	Spec       string `yaml:"spec"`       // Cover spec YAML path (empty = no cover)
	Background string `yaml:"background"` // Background image path
}

// FontConfig defines font options for cover text.
type FontConfig struct {
	Path string `yaml:"path"` // TTF file (empty = built-in fallback)
}

// DefaultConfig returns a neutral configuration with all features disabled.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-catalogo/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-catalogo", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// mergeFlags applies flag values over config values. Flags win when set.
func mergeFlags(cfg *Config, flags *generateFlags) {
	if flags.storeDir != "" {
		cfg.Store.Dir = flags.storeDir
	}
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if flags.cover.spec != "" {
		cfg.Cover.Spec = flags.cover.spec
	}
	if flags.cover.background != "" {
		cfg.Cover.Background = flags.cover.background
	}
	if flags.fontPath != "" {
		cfg.Font.Path = flags.fontPath
	}
	if flags.currency != "" {
		cfg.Currency = flags.currency
	}
}
