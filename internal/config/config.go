// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Festival FestivalConfig `toml:"festival"`
	Grid     GridConfig     `toml:"grid"`
	LLM      LLMConfig      `toml:"llm"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// FestivalConfig describes the event being planned.
type FestivalConfig struct {
	Name string      `toml:"name"`
	Year int         `toml:"year"` // used in storage keys and export file names
	Days []DayConfig `toml:"days"`
}

// DayConfig is one festival day shown as a tab.
type DayConfig struct {
	Number int    `toml:"number"`
	Name   string `toml:"name"` // e.g., "Tag 1"
	Date   string `toml:"date"` // display only, e.g., "Do. 11.06.2026"
}

// GridConfig holds the time grid bounds.
type GridConfig struct {
	DayStart string `toml:"day_start"` // e.g., "07:00"
	DayEnd   string `toml:"day_end"`   // e.g., "18:00"
	Zoom     int    `toml:"zoom"`      // minutes per row
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "copilot", "ollama", "lmstudio"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "festival", "mocha", "latte"
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
	File   string `toml:"file"`   // empty means stderr (CLI) or discard (TUI)
}

// ZoomLevels are the supported grid granularities in minutes.
var ZoomLevels = []int{5, 15, 30, 60, 120}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Festival: FestivalConfig{
			Name: "Festival 2026",
			Year: 2026,
			Days: []DayConfig{
				{Number: 1, Name: "Tag 1", Date: "Do. 11.06.2026"},
				{Number: 2, Name: "Tag 2", Date: "Fr. 12.06.2026"},
				{Number: 3, Name: "Tag 3", Date: "Sa. 13.06.2026"},
				{Number: 4, Name: "Tag 4", Date: "So. 14.06.2026"},
			},
		},
		Grid: GridConfig{
			DayStart: "07:00",
			DayEnd:   "18:00",
			Zoom:     30,
		},
		LLM: LLMConfig{
			Provider: "copilot",
			Model:    "gpt-4o",
			BaseURL:  "http://localhost:11434",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "festival",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "festplan.db"
	}
	return filepath.Join(home, ".local", "share", "festplan", "festplan.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "festplan", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
// A .env file in the working directory is read first so its values act as env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads KEY=VALUE pairs into the process environment.
// Variables already set are not overwritten; a missing file is fine.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FESTPLAN_FESTIVAL_NAME"); v != "" {
		cfg.Festival.Name = v
	}
	if v := os.Getenv("FESTPLAN_FESTIVAL_YEAR"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			cfg.Festival.Year = year
		}
	}

	if v := os.Getenv("FESTPLAN_DAY_START"); v != "" {
		cfg.Grid.DayStart = v
	}
	if v := os.Getenv("FESTPLAN_DAY_END"); v != "" {
		cfg.Grid.DayEnd = v
	}
	if v := os.Getenv("FESTPLAN_ZOOM"); v != "" {
		if zoom, err := strconv.Atoi(v); err == nil {
			cfg.Grid.Zoom = zoom
		}
	}

	if v := os.Getenv("FESTPLAN_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("FESTPLAN_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("FESTPLAN_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("FESTPLAN_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("FESTPLAN_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	if v := os.Getenv("FESTPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FESTPLAN_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("FESTPLAN_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Grid.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Grid.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Grid.DayStart >= c.Grid.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if !IsZoomLevel(c.Grid.Zoom) {
		return fmt.Errorf("zoom must be one of %v, got %d", ZoomLevels, c.Grid.Zoom)
	}

	if c.Festival.Year <= 0 {
		return errors.New("festival year must be positive")
	}
	if len(c.Festival.Days) == 0 {
		return errors.New("at least one festival day must be configured")
	}
	seen := make(map[int]bool, len(c.Festival.Days))
	for _, d := range c.Festival.Days {
		if d.Number <= 0 {
			return fmt.Errorf("day number must be positive, got %d", d.Number)
		}
		if seen[d.Number] {
			return fmt.Errorf("duplicate day number: %d", d.Number)
		}
		seen[d.Number] = true
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	if _, ok := parseLevel(c.Log.Level); !ok {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	min := t[3:5]
	if !isDigits(hour) || !isDigits(min) || hour > "23" || min > "59" {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// IsZoomLevel reports whether minutes is a supported grid zoom.
func IsZoomLevel(minutes int) bool {
	for _, z := range ZoomLevels {
		if z == minutes {
			return true
		}
	}
	return false
}

// IsFestivalDay returns true if the day number is configured.
func (c *Config) IsFestivalDay(number int) bool {
	for _, d := range c.Festival.Days {
		if d.Number == number {
			return true
		}
	}
	return false
}

// DayNumbers returns the configured day numbers in config order.
func (c *Config) DayNumbers() []int {
	nums := make([]int, len(c.Festival.Days))
	for i, d := range c.Festival.Days {
		nums[i] = d.Number
	}
	return nums
}

// DayLabel returns "Tag 1 (Do. 11.06.2026)" style labels, falling back to "Day N".
func (c *Config) DayLabel(number int) string {
	for _, d := range c.Festival.Days {
		if d.Number != number {
			continue
		}
		if d.Date == "" {
			return d.Name
		}
		return fmt.Sprintf("%s (%s)", d.Name, d.Date)
	}
	return fmt.Sprintf("Day %d", number)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
