// Package config provides configuration management for the turf engine tools.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix("TURF_ENGINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no file is provided
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		// Defaults are static; a failure here is a programming error.
		panic(fmt.Sprintf("default config unmarshal: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "turf-engine")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("engine.engine_spec_id", "TURF_ENGINE_LITE_AU")
	v.SetDefault("engine.engine_version", "0.2.1p2")
	v.SetDefault("engine.lite_version", "0.2.1p2")
	v.SetDefault("engine.include_overlay", true)

	v.SetDefault("overlay.tau", 0.12)

	v.SetDefault("simulation.policy", "flat")
	v.SetDefault("simulation.iters", 2000)
	v.SetDefault("simulation.seed", 42)
	v.SetDefault("simulation.bankroll_start", 1000.0)
	v.SetDefault("simulation.flat_stake", 10.0)
	v.SetDefault("simulation.kelly_fraction", 0.25)
	v.SetDefault("simulation.max_stake_frac", 0.05)
	v.SetDefault("simulation.require_positive_ev", true)
	v.SetDefault("simulation.workers", 0)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.address", ":9090")
}
