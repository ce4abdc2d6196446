// Package config loads steamrun settings from config.yaml and STEAMRUN_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/mmcdole/steamrun/internal/query"
)

const (
	appName    = "steamrun"
	configName = "config"
	envPrefix  = "STEAMRUN"
)

// Config holds all application configuration
type Config struct {
	Steam    SteamConfig    `mapstructure:"steam"`
	Filters  FiltersConfig  `mapstructure:"filters"`
	Launcher LauncherConfig `mapstructure:"launcher"`
	Cache    CacheConfig    `mapstructure:"cache"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SteamConfig locates the installation
type SteamConfig struct {
	InstallDir string `mapstructure:"install_dir"` // Overrides registry and directory lookup
}

// FiltersConfig hides groups of results
type FiltersConfig struct {
	HideApplications bool `mapstructure:"hide_applications"`
	HideTools        bool `mapstructure:"hide_tools"`
	HideMusic        bool `mapstructure:"hide_music"`
	HideSourceMods   bool `mapstructure:"hide_source_mods"`
	HideShortcuts    bool `mapstructure:"hide_shortcuts"`
}

// LauncherConfig holds the command used to open steam:// URIs
type LauncherConfig struct {
	Command string   `mapstructure:"command"` // Empty for the system default handler
	Args    []string `mapstructure:"args"`
}

// CacheConfig controls the persistent parse cache
type CacheConfig struct {
	Persist bool   `mapstructure:"persist"`
	Dir     string `mapstructure:"dir"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Watch      bool `mapstructure:"watch"`       // Re-run the query when Steam files change
	MaxResults int  `mapstructure:"max_results"` // 0 shows every app
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"` // Empty disables logging
	Level string `mapstructure:"level"`
}

// Path returns the log file with ~ expanded.
func (c LoggingConfig) Path() string {
	return expandHome(c.File)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Launcher: LauncherConfig{
			Args: []string{},
		},
		Cache: CacheConfig{
			Persist: true,
			Dir:     defaultCachePath(),
		},
		UI: UIConfig{
			Watch:      true,
			MaxResults: 50,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// QueryFilters converts the filter settings for the query service.
func (c *Config) QueryFilters() query.Filters {
	return query.Filters{
		HideApplications: c.Filters.HideApplications,
		HideTools:        c.Filters.HideTools,
		HideMusic:        c.Filters.HideMusic,
		HideSourceMods:   c.Filters.HideSourceMods,
		HideShortcuts:    c.Filters.HideShortcuts,
	}
}

// CacheDir returns the persistent cache directory, or "" when persistence is off.
func (c *Config) CacheDir() string {
	if !c.Cache.Persist {
		return ""
	}
	return expandHome(c.Cache.Dir)
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName, appName+".log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, appName+".log")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName, "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, "cache")
	}
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	} else {
		v.AddConfigPath(DefaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. STEAMRUN_STEAM_INSTALL_DIR
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers every key so environment overrides apply to keys
// missing from the file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("steam.install_dir", cfg.Steam.InstallDir)

	v.SetDefault("filters.hide_applications", cfg.Filters.HideApplications)
	v.SetDefault("filters.hide_tools", cfg.Filters.HideTools)
	v.SetDefault("filters.hide_music", cfg.Filters.HideMusic)
	v.SetDefault("filters.hide_source_mods", cfg.Filters.HideSourceMods)
	v.SetDefault("filters.hide_shortcuts", cfg.Filters.HideShortcuts)

	v.SetDefault("launcher.command", cfg.Launcher.Command)
	v.SetDefault("launcher.args", cfg.Launcher.Args)

	v.SetDefault("cache.persist", cfg.Cache.Persist)
	v.SetDefault("cache.dir", cfg.Cache.Dir)

	v.SetDefault("ui.watch", cfg.UI.Watch)
	v.SetDefault("ui.max_results", cfg.UI.MaxResults)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return Load("")
}

// Load reads config.yaml from configDir (the default locations when empty)
// and applies environment overrides on top of the defaults.
func Load(configDir string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(configDir)
	setDefaults(v, cfg)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to config.yaml in configDir (the default config
// directory when empty) and returns the file written.
func SaveConfig(cfg *Config, configDir string) (string, error) {
	if configDir == "" {
		configDir = DefaultConfigPath()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to keep snake_case key names
	v := viper.New()
	v.Set("steam.install_dir", cfg.Steam.InstallDir)

	v.Set("filters.hide_applications", cfg.Filters.HideApplications)
	v.Set("filters.hide_tools", cfg.Filters.HideTools)
	v.Set("filters.hide_music", cfg.Filters.HideMusic)
	v.Set("filters.hide_source_mods", cfg.Filters.HideSourceMods)
	v.Set("filters.hide_shortcuts", cfg.Filters.HideShortcuts)

	v.Set("launcher.command", cfg.Launcher.Command)
	v.Set("launcher.args", cfg.Launcher.Args)

	v.Set("cache.persist", cfg.Cache.Persist)
	v.Set("cache.dir", cfg.Cache.Dir)

	v.Set("ui.watch", cfg.UI.Watch)
	v.Set("ui.max_results", cfg.UI.MaxResults)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configDir, configName+".yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

// ClearCache removes the persistent parse cache
func ClearCache(cfg *Config) error {
	dir := expandHome(cfg.Cache.Dir)
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
