// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/megu-datapacks/megu/lib/extension"
)

// EnvVar names the environment variable Load reads.
const EnvVar = "MEGU_CONFIG"

// Output formats accepted by output.format.
const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
	// FormatDiag is CBOR diagnostic notation, for inspecting what the
	// cbor format would write.
	FormatDiag = "diag"
)

var outputFormats = []string{FormatJSON, FormatCBOR, FormatDiag}

// Config is the megu tool configuration.
type Config struct {
	Extensions ExtensionsConfig `yaml:"extensions"`
	Output     OutputConfig     `yaml:"output"`
	Log        LogConfig        `yaml:"log"`
}

// ExtensionsConfig controls where extend references are looked up.
type ExtensionsConfig struct {
	// Roots are searched in order. Each holds {prefix}/{suffix}{ext}
	// files.
	Roots []string `yaml:"roots"`

	// Embedded adds the built-in vanilla registry after all roots.
	// Default: true
	Embedded bool `yaml:"embedded"`

	// FileExtensions are tried in order for each root.
	// Default: .megu, .ult, .json.merge
	FileExtensions []string `yaml:"file_extensions"`
}

// OutputConfig controls how compiled scripts are written.
type OutputConfig struct {
	// Format is json, cbor, or diag.
	Format string `yaml:"format"`

	// Indent pretty-prints JSON output.
	Indent bool `yaml:"indent"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Extensions: ExtensionsConfig{
			Roots:          []string{filepath.Join(homeDir, ".local", "share", "megu", "extensions")},
			Embedded:       true,
			FileExtensions: slices.Clone(extension.DefaultFileExtensions),
		},
		Output: OutputConfig{
			Format: FormatJSON,
			Indent: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the file named by MEGU_CONFIG, or returns Default when
// the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path on top of Default. Unknown
// keys are an error so a misspelled option is not silently ignored.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	cfg.expandRoots(filepath.Dir(absolute))
	return cfg, nil
}

// expandRoots expands variables in extension roots and anchors
// relative roots at configDir.
func (c *Config) expandRoots(configDir string) {
	vars := map[string]string{
		"HOME":       os.Getenv("HOME"),
		"CONFIG_DIR": configDir,
	}
	for i, root := range c.Extensions.Roots {
		root = expandVars(root, vars)
		if root != "" && !filepath.IsAbs(root) {
			root = filepath.Join(configDir, root)
		}
		c.Extensions.Roots[i] = root
	}
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	for i, root := range c.Extensions.Roots {
		if root == "" {
			errs = append(errs, fmt.Errorf("extensions.roots[%d] is empty", i))
		}
	}
	if len(c.Extensions.FileExtensions) == 0 {
		errs = append(errs, errors.New("extensions.file_extensions must not be empty"))
	}
	for i, extension := range c.Extensions.FileExtensions {
		if !strings.HasPrefix(extension, ".") || len(extension) < 2 {
			errs = append(errs, fmt.Errorf("extensions.file_extensions[%d] %q must start with a dot", i, extension))
		}
	}

	if !slices.Contains(outputFormats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", outputFormats))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level must be one of: [debug info warn error]: %q", c.Log.Level)
	}
	return level, nil
}

// ExtensionStore builds the lookup chain for extend references: one
// DirStore per root in order, then the embedded registry when enabled.
func (c *Config) ExtensionStore() extension.Store {
	chain := make(extension.Chain, 0, len(c.Extensions.Roots)+1)
	for _, root := range c.Extensions.Roots {
		chain = append(chain, extension.DirStore{
			Root:           root,
			FileExtensions: c.Extensions.FileExtensions,
		})
	}
	if c.Extensions.Embedded {
		chain = append(chain, extension.Embedded())
	}
	return chain
}
