package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"

	"gymbro/internal/analysis"
)

// EnvPrefix prefixes every environment override, e.g. GYMBRO_SERVER_ADDR
const EnvPrefix = "GYMBRO_"

// Config represents the application configuration
type Config struct {
	User                UserConfig          `json:"user" envPrefix:"USER_"`
	Macros              MacroConfig         `json:"macros" envPrefix:"MACROS_"`
	ActivityMultipliers map[string]float64  `json:"activity_multipliers,omitempty"`
	ExerciseAliases     map[string][]string `json:"exercise_aliases,omitempty"`
	Display             DisplayConfig       `json:"display" envPrefix:"DISPLAY_"`
	Server              ServerConfig        `json:"server" envPrefix:"SERVER_"`
	Log                 LogConfig           `json:"log" envPrefix:"LOG_"`
	Database            DatabaseConfig      `json:"database" envPrefix:"DATABASE_"`
}

// UserConfig selects the profile the TUI opens
type UserConfig struct {
	ProfileID string `json:"profile_id" env:"PROFILE_ID"`
}

// MacroConfig holds the default macro split for new profiles
type MacroConfig struct {
	CarbPercent    float64 `json:"carb_percent" env:"CARB_PERCENT"`
	ProteinPercent float64 `json:"protein_percent" env:"PROTEIN_PERCENT"`
	FatPercent     float64 `json:"fat_percent" env:"FAT_PERCENT"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	WeightUnit string `json:"weight_unit" env:"WEIGHT_UNIT"`
	Weeks      int    `json:"weeks" env:"WEEKS"` // weeks of history on the progress screen
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Addr           string   `json:"addr" env:"ADDR"`
	AllowedOrigins []string `json:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

// LogConfig holds logging settings
type LogConfig struct {
	File  string `json:"file" env:"FILE"` // empty = ~/.gymbro/gymbro.log
	Level string `json:"level" env:"LEVEL"`
	JSON  bool   `json:"json" env:"JSON"`
}

// DatabaseConfig holds storage settings
type DatabaseConfig struct {
	Path string `json:"path" env:"PATH"` // empty = ~/.gymbro/data.db
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	split := analysis.DefaultMacroSplit()
	return Config{
		Macros: MacroConfig{
			CarbPercent:    split.CarbPercent,
			ProteinPercent: split.ProteinPercent,
			FatPercent:     split.FatPercent,
		},
		Display: DisplayConfig{
			WeightUnit: "kg",
			Weeks:      8,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration from ~/.gymbro/config.json and applies
// GYMBRO_* environment overrides. A missing file yields ErrNoConfig.
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path and applies environment overrides
func LoadFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// readFile decodes path and fills defaults, without environment overrides
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault is Load, falling back to the defaults plus environment
// overrides when no config file exists yet
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNoConfig) {
		def := DefaultConfig()
		if err := def.ApplyEnv(); err != nil {
			return nil, err
		}
		return &def, nil
	}
	return cfg, err
}

// ApplyEnv overlays GYMBRO_* environment variables onto the config
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// applyDefaults fills zero values from DefaultConfig
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Macros == (MacroConfig{}) {
		c.Macros = defaults.Macros
	}
	if c.Display.WeightUnit == "" {
		c.Display.WeightUnit = defaults.Display.WeightUnit
	}
	if c.Display.Weeks == 0 {
		c.Display.Weeks = defaults.Display.Weeks
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = defaults.Server.AllowedOrigins
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Save writes the configuration to ~/.gymbro/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes the configuration to path
func SaveFile(path string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// SelectProfile records profileID in ~/.gymbro/config.json
func SelectProfile(profileID string) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return SelectProfileFile(path, profileID)
}

// SelectProfileFile sets the user's profile in the file at path, creating it
// from the defaults if needed. Only the profile changes: GYMBRO_* overrides
// in the environment are never written back.
func SelectProfileFile(path, profileID string) error {
	cfg, err := readFile(path)
	if errors.Is(err, ErrNoConfig) {
		def := DefaultConfig()
		cfg, err = &def, nil
	}
	if err != nil {
		return err
	}

	cfg.User.ProfileID = profileID
	return SaveFile(path, cfg)
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.ActivityMultipliers = map[string]float64{
		string(analysis.ActivityModerate): 1.55,
	}
	example.ExerciseAliases = map[string][]string{
		string(analysis.Glutes): {"Cable Kickback"},
	}

	return Save(&example)
}

// Validate checks the config for values the app can't use
func (c *Config) Validate() error {
	if c.User.ProfileID != "" {
		if _, err := uuid.Parse(c.User.ProfileID); err != nil {
			return fmt.Errorf("user.profile_id: %w", err)
		}
	}

	if err := c.MacroSplit().Validate(); err != nil {
		return fmt.Errorf("macros: %w", err)
	}

	if _, err := c.Multipliers(); err != nil {
		return err
	}
	if _, err := c.Aliases(); err != nil {
		return err
	}

	// Validate display units
	if c.Display.WeightUnit != "" && c.Display.WeightUnit != "kg" && c.Display.WeightUnit != "lb" {
		return fmt.Errorf("display.weight_unit must be \"kg\" or \"lb\", got %q", c.Display.WeightUnit)
	}
	if c.Display.Weeks < 0 {
		return fmt.Errorf("display.weeks must not be negative, got %d", c.Display.Weeks)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("log.level %q is not a known level", c.Log.Level)
	}

	return nil
}

// MacroSplit returns the configured default split
func (c *Config) MacroSplit() analysis.MacroSplit {
	return analysis.MacroSplit{
		CarbPercent:    c.Macros.CarbPercent,
		ProteinPercent: c.Macros.ProteinPercent,
		FatPercent:     c.Macros.FatPercent,
	}
}

// Multipliers returns the default multiplier table with overrides applied
func (c *Config) Multipliers() (analysis.ActivityMultipliers, error) {
	table := analysis.DefaultActivityMultipliers()
	for key, m := range c.ActivityMultipliers {
		level, err := analysis.ParseActivityLevel(key)
		if err != nil {
			return nil, fmt.Errorf("activity_multipliers: %w", err)
		}
		if m <= 0 {
			return nil, fmt.Errorf("activity_multipliers.%s must be positive, got %v", key, m)
		}
		table[level] = m
	}
	return table, nil
}

// Aliases returns the configured alias groups followed by the defaults.
// Configured groups are checked first, in muscle group order.
func (c *Config) Aliases() ([]analysis.GroupAliases, error) {
	byGroup := make(map[analysis.MuscleGroup][]string, len(c.ExerciseAliases))
	for key, names := range c.ExerciseAliases {
		group, err := analysis.ParseMuscleGroup(key)
		if err != nil {
			return nil, fmt.Errorf("exercise_aliases: %w", err)
		}
		// "Glutes" and "glutes" both land in the same group
		byGroup[group] = append(byGroup[group], names...)
	}

	var extra []analysis.GroupAliases
	for _, group := range analysis.MuscleGroups() {
		names := byGroup[group]
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		extra = append(extra, analysis.GroupAliases{Group: group, Aliases: names})
	}
	return append(extra, analysis.DefaultAliases()...), nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".gymbro"), nil
}
