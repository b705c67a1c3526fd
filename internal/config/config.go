package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Replay     ReplayConfig     `mapstructure:"replay"`
	Demo       DemoConfig       `mapstructure:"demo"`
}

// SimulationConfig holds attack replay defaults
type SimulationConfig struct {
	DefaultSeed   int64 `mapstructure:"default_seed"`
	DefaultTroops int   `mapstructure:"default_troops"`
	PublishEvents bool  `mapstructure:"publish_events"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // console or json
	TraceSkips bool   `mapstructure:"trace_skips"`
	NoColor    bool   `mapstructure:"no_color"`
}

// ReplayConfig holds scenario file settings
type ReplayConfig struct {
	ScenarioDir string `mapstructure:"scenario_dir"`
	Verify      bool   `mapstructure:"verify"`
}

// DemoConfig holds settings for the generated-map demo
type DemoConfig struct {
	Width           int      `mapstructure:"width"`
	Height          int      `mapstructure:"height"`
	Players         []string `mapstructure:"players"`
	MountainVeins   int      `mapstructure:"mountain_veins"`
	HighlandChance  float64  `mapstructure:"highland_chance"`
	MinSpawnSpacing int      `mapstructure:"min_spawn_spacing"`
	SpawnRadius     int      `mapstructure:"spawn_radius"`
	MapSeed         uint64   `mapstructure:"map_seed"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("simulation.default_seed", 123)
	v.SetDefault("simulation.default_troops", 10)
	v.SetDefault("simulation.publish_events", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.trace_skips", false)
	v.SetDefault("logging.no_color", false)

	v.SetDefault("replay.scenario_dir", "scenarios")
	v.SetDefault("replay.verify", true)

	v.SetDefault("demo.width", 12)
	v.SetDefault("demo.height", 8)
	v.SetDefault("demo.players", []string{"red", "blue"})
	v.SetDefault("demo.mountain_veins", 2)
	v.SetDefault("demo.highland_chance", 0.5)
	v.SetDefault("demo.min_spawn_spacing", 5)
	v.SetDefault("demo.spawn_radius", 1)
	v.SetDefault("demo.map_seed", 1)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/conquest-replay")
	}

	v.SetEnvPrefix("CRP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only a missing file falls back to defaults. Parse errors are
		// reported whether the path was explicit or searched.
		if !isNotFound(err) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// isNotFound reports whether err means there was no config file to read.
// An explicit path surfaces as a *fs.PathError, a searched one as
// viper.ConfigFileNotFoundError.
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config.
// The overlay is looked up next to the base config file, or in the working
// directory when no file was loaded. A missing overlay is not an error.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}
	if v == nil {
		if err := Init(""); err != nil {
			return err
		}
	}

	base := v.ConfigFileUsed()
	envFile := fmt.Sprintf("config.%s.yaml", env)
	if base != "" {
		envFile = filepath.Join(filepath.Dir(base), envFile)
	}

	v.SetConfigFile(envFile)
	err := v.MergeInConfig()
	if base != "" {
		v.SetConfigFile(base)
	}
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	Get()
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.OnConfigChange(func(e fsnotify.Event) {
		_ = v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
	v.WatchConfig()
}

var validFormats = map[string]bool{"console": true, "json": true}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Simulation.DefaultTroops < 0 {
		return fmt.Errorf("simulation.default_troops must be non-negative")
	}

	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	if c.Demo.Width <= 0 || c.Demo.Height <= 0 {
		return fmt.Errorf("demo dimensions must be positive")
	}
	if len(c.Demo.Players) < 2 {
		return fmt.Errorf("demo.players needs at least an attacker and a defender")
	}
	seen := make(map[string]bool, len(c.Demo.Players))
	for _, p := range c.Demo.Players {
		if p == "" {
			return fmt.Errorf("demo.players entries must be non-empty")
		}
		if seen[p] {
			return fmt.Errorf("demo.players contains %q twice", p)
		}
		seen[p] = true
	}
	if c.Demo.MountainVeins < 0 {
		return fmt.Errorf("demo.mountain_veins must be non-negative")
	}
	if c.Demo.HighlandChance < 0 || c.Demo.HighlandChance > 1 {
		return fmt.Errorf("demo.highland_chance must be between 0 and 1")
	}
	if c.Demo.MinSpawnSpacing < 0 || c.Demo.SpawnRadius < 0 {
		return fmt.Errorf("demo spawn spacing and radius must be non-negative")
	}

	return nil
}
