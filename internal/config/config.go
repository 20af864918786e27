// Package config loads scheduler settings from defaults, an optional YAML file,
// RRSCHED_* environment variables and bound command line flags, in increasing priority.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/TigerCipher/rrsched/internal/dispatcher"
	"github.com/TigerCipher/rrsched/internal/report"
)

const envPrefix = "RRSCHED"

// DefaultMaxSlices bounds the chart of a single run.
const DefaultMaxSlices = 100000

// Config holds the settings shared by the run and serve commands.
type Config struct {
	Quantum       int    `mapstructure:"quantum"`
	MinimizeChart bool   `mapstructure:"minimize_chart"`
	Format        string `mapstructure:"format"`
	Listen        string `mapstructure:"listen"`
	// MaxSlices rejects workloads that would produce more time slices.
	MaxSlices int `mapstructure:"max_slices"`
	// Trace is the span output file; empty disables tracing.
	Trace string `mapstructure:"trace"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Quantum:   dispatcher.DefaultQuantum,
		Format:    string(report.FormatFixed),
		Listen:    ":9095",
		MaxSlices: DefaultMaxSlices,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Quantum <= 0 {
		return fmt.Errorf("quantum must be > 0, got %d", c.Quantum)
	}
	if c.MaxSlices <= 0 {
		return fmt.Errorf("max_slices must be > 0, got %d", c.MaxSlices)
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}

// New returns a viper instance with defaults and environment lookup installed.
func New() *viper.Viper {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("quantum", defaults.Quantum)
	v.SetDefault("minimize_chart", defaults.MinimizeChart)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("listen", defaults.Listen)
	v.SetDefault("max_slices", defaults.MaxSlices)
	v.SetDefault("trace", defaults.Trace)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional file at path into v and returns the validated settings.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %v: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
