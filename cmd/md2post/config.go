package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2post/internal/fileutil"
	"github.com/alnah/go-md2post/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds all configuration for post compilation.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Images    ImagesConfig    `yaml:"images"`
	Templates TemplatesConfig `yaml:"templates"`
	Commands  CommandsConfig  `yaml:"commands"`
	Render    RenderConfig    `yaml:"render"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// ImagesConfig defines image path resolution options.
type ImagesConfig struct {
	Dir string `yaml:"dir"` // Base directory joined with relative image URLs
}

// TemplatesConfig points at template files overriding the embedded defaults.
type TemplatesConfig struct {
	Post string `yaml:"post"` // HTML page template path (empty = embedded)
	Math string `yaml:"math"` // LaTeX document template path (empty = embedded)
}

// CommandsConfig names the external typesetting commands.
type CommandsConfig struct {
	Latex   string `yaml:"latex"`   // empty = "latex"
	Dvisvgm string `yaml:"dvisvgm"` // empty = "dvisvgm"
}

// RenderConfig defines rendering options.
type RenderConfig struct {
	Timeout   string `yaml:"timeout"`   // per-expression timeout, e.g. "30s" (empty = default)
	Highlight bool   `yaml:"highlight"` // syntax-highlight fenced code blocks
}

// DefaultConfig returns a neutral configuration with embedded
// templates and default commands.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file
// path. Otherwise it's treated as a config name and searched in
// standard locations. Missing files are an error, never a silent
// fallback.
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

// resolveConfigPath searches for a config file by name in standard
// locations: current directory, then ~/.config/md2post/. Extensions
// tried in order: .yaml, .yml.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "md2post", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
