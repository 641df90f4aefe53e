// Package config provides configuration management for the turf engine tools.
package config

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Engine     EngineConfig     `mapstructure:"engine" validate:"required"`
	Overlay    OverlayConfig    `mapstructure:"overlay"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// EngineConfig represents Lite compiler configuration
type EngineConfig struct {
	EngineSpecID   string `mapstructure:"engine_spec_id" validate:"required"`
	EngineVersion  string `mapstructure:"engine_version" validate:"required"`
	LiteVersion    string `mapstructure:"lite_version" validate:"required"`
	IncludeOverlay bool   `mapstructure:"include_overlay"`
}

// OverlayConfig represents PRO overlay configuration. Feature flags default
// to off so derived fields stay out of outputs unless explicitly requested.
type OverlayConfig struct {
	Tau                    float64 `mapstructure:"tau" validate:"gt=0"`
	EnableEVBands          bool    `mapstructure:"enable_ev_bands"`
	EnableRaceSummary      bool    `mapstructure:"enable_race_summary"`
	EnableRunnerNarratives bool    `mapstructure:"enable_runner_narratives"`
	EnableRunnerFitness    bool    `mapstructure:"enable_runner_fitness"`
	EnableRunnerRisk       bool    `mapstructure:"enable_runner_risk"`
	EnableTrapRace         bool    `mapstructure:"enable_trap_race"`
}

// SimulationConfig represents bankroll simulation configuration
type SimulationConfig struct {
	Policy            string  `mapstructure:"policy" validate:"required,stakepolicy"`
	Iters             int     `mapstructure:"iters" validate:"required,gt=0"`
	Seed              int64   `mapstructure:"seed"`
	BankrollStart     float64 `mapstructure:"bankroll_start" validate:"required,gt=0"`
	FlatStake         float64 `mapstructure:"flat_stake" validate:"gte=0"`
	KellyFraction     float64 `mapstructure:"kelly_fraction" validate:"gte=0,lte=1"`
	MaxStakeFrac      float64 `mapstructure:"max_stake_frac" validate:"required,gt=0,lte=1"`
	RequirePositiveEV bool    `mapstructure:"require_positive_ev"`
	MinEV             *float64 `mapstructure:"min_ev"`
	MinEdge           *float64 `mapstructure:"min_edge"`
	Workers           int     `mapstructure:"workers" validate:"gte=0"`
}

// MetricsConfig represents metrics endpoint configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
