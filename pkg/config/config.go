// Package config loads the setup-smith configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/imdario/mergo"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when --config is not
// given.
const DefaultFile = ".setup-smith.yml"

// EnvSetupsDir overrides SetupsDir.
const EnvSetupsDir = "SETUP_SMITH_DIR"

const currentVersion = 1

var ErrInvalidConfig = errors.New("invalid config")

var (
	formats   = []string{"json", "yaml", "table"}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// MaxWorkers bounds Batch.Workers.
const MaxWorkers = 64

// Config holds the tool configuration.
type Config struct {
	Version int `yaml:"version" json:"version"`
	// SetupsDir is the root of the game's setup folder, laid out as
	// <car>/<track>/<setup>.json.
	SetupsDir string `yaml:"setups_dir" json:"setups_dir"`
	// Ignore lists glob patterns of diff paths to leave out of comparisons.
	Ignore      []string `yaml:"ignore,omitempty" json:"ignore,omitempty"`
	Conversions *bool    `yaml:"conversions,omitempty" json:"conversions,omitempty"`
	Output      Output   `yaml:"output" json:"output"`
	Log         Log      `yaml:"log" json:"log"`
	Batch       Batch    `yaml:"batch" json:"batch"`
}

type Output struct {
	Format string `yaml:"format" json:"format"`
}

type Log struct {
	Level string `yaml:"level" json:"level"`
}

type Batch struct {
	Workers int `yaml:"workers" json:"workers"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	enabled := true
	return &Config{
		Version:     currentVersion,
		SetupsDir:   defaultSetupsDir(),
		Conversions: &enabled,
		Output:      Output{Format: "table"},
		Log:         Log{Level: "warn"},
		Batch:       Batch{Workers: 4},
	}
}

func defaultSetupsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Documents", "Assetto Corsa Competizione", "Setups")
}

// ConversionsEnabled reports whether display-unit conversion is on.
func (c *Config) ConversionsEnabled() bool {
	return c.Conversions == nil || *c.Conversions
}

// Load reads filename and merges it over the defaults. SETUP_SMITH_DIR, when
// set, wins over the file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}

	// Try YAML first, then JSON
	err = yaml.Unmarshal(data, config)
	if err != nil {
		err = json.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file as YAML or JSON: %w", err)
		}
	}

	if err := config.mergeDefaults(DefaultConfig()); err != nil {
		return nil, err
	}
	config.applyEnv()

	return config, nil
}

// LoadOrDefault loads filename, falling back to the defaults when the file
// does not exist.
func LoadOrDefault(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		config := DefaultConfig()
		config.applyEnv()
		return config, nil
	}
	return Load(filename)
}

// Save writes the configuration, as JSON when filename ends in .json and as
// YAML otherwise.
func Save(config *Config, filename string) error {
	var data []byte
	var err error

	if strings.EqualFold(filepath.Ext(filename), ".json") {
		data, err = json.MarshalIndent(config, "", "  ")
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filename, data, 0o644)
}

func (c *Config) mergeDefaults(d *Config) error {
	// mergo merges into the pointee when both pointers are set, which would
	// turn an explicit "conversions: false" back into the default.
	if c.Conversions != nil {
		d.Conversions = nil
	}
	if err := mergo.Merge(c, d); err != nil {
		return fmt.Errorf("failed to apply config defaults: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if dir := os.Getenv(EnvSetupsDir); dir != "" {
		c.SetupsDir = dir
	}
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Version != currentVersion {
		problems = append(problems, fmt.Sprintf("unsupported version %d", c.Version))
	}
	if !slices.Contains(formats, c.Output.Format) {
		problems = append(problems, fmt.Sprintf("output.format must be one of %s, got %q", strings.Join(formats, ", "), c.Output.Format))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		problems = append(problems, fmt.Sprintf("log.level must be one of %s, got %q", strings.Join(logLevels, ", "), c.Log.Level))
	}
	if c.Batch.Workers < 1 || c.Batch.Workers > MaxWorkers {
		problems = append(problems, fmt.Sprintf("batch.workers must be between 1 and %d, got %d", MaxWorkers, c.Batch.Workers))
	}
	for _, pattern := range c.Ignore {
		if strings.TrimSpace(pattern) == "" {
			problems = append(problems, "ignore patterns must not be empty")
			break
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
