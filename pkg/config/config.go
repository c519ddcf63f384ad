/*
Package config manages TOML config for sift services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/fluentkit/sift/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Suggest SuggestConfig `toml:"suggest"`
	Filter  FilterConfig  `toml:"filter"`
	Sort    SortConfig    `toml:"sort"`
	Server  ServerConfig  `toml:"server"`
}

// SuggestConfig holds suggestion ranking options.
type SuggestConfig struct {
	MaxSuggestions int  `toml:"max_suggestions"`
	MinQueryLength int  `toml:"min_query_length"`
	DebounceMs     int  `toml:"debounce_ms"`
	Fuzzy          bool `toml:"fuzzy"`
	CaseSensitive  bool `toml:"case_sensitive"`
}

// FilterConfig holds filter bar options.
type FilterConfig struct {
	DebounceMs      int `toml:"debounce_ms"`
	MaxHistoryItems int `toml:"max_history_items"`
}

// SortConfig holds sort menu options.
type SortConfig struct {
	DefaultField string `toml:"default_field"`
	Ascending    bool   `toml:"ascending"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxLimit   int  `toml:"max_limit"`
	ShowTiming bool `toml:"show_timing"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "sift")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "sift")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/sift/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Suggest: SuggestConfig{
			MaxSuggestions: 8,
			MinQueryLength: 1,
			DebounceMs:     200,
			Fuzzy:          true,
			CaseSensitive:  false,
		},
		Filter: FilterConfig{
			DebounceMs:      300,
			MaxHistoryItems: 20,
		},
		Sort: SortConfig{
			DefaultField: "",
			Ascending:    true,
		},
		Server: ServerConfig{
			MaxLimit:   64,
			ShowTiming: false,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages whatever valid sections a broken TOML file has,
// leaving defaults in place for the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if suggestSection, ok := utils.ExtractSection(tempConfig, "suggest"); ok {
		extractSuggestConfig(suggestSection, &config.Suggest)
	}
	if filterSection, ok := utils.ExtractSection(tempConfig, "filter"); ok {
		extractFilterConfig(filterSection, &config.Filter)
	}
	if sortSection, ok := utils.ExtractSection(tempConfig, "sort"); ok {
		extractSortConfig(sortSection, &config.Sort)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	return config, nil
}

func extractSuggestConfig(data map[string]any, suggest *SuggestConfig) {
	if val, ok := utils.ExtractInt64(data, "max_suggestions"); ok {
		suggest.MaxSuggestions = val
	}
	if val, ok := utils.ExtractInt64(data, "min_query_length"); ok {
		suggest.MinQueryLength = val
	}
	if val, ok := utils.ExtractInt64(data, "debounce_ms"); ok {
		suggest.DebounceMs = val
	}
	if val, ok := utils.ExtractBool(data, "fuzzy"); ok {
		suggest.Fuzzy = val
	}
	if val, ok := utils.ExtractBool(data, "case_sensitive"); ok {
		suggest.CaseSensitive = val
	}
}

func extractFilterConfig(data map[string]any, filter *FilterConfig) {
	if val, ok := utils.ExtractInt64(data, "debounce_ms"); ok {
		filter.DebounceMs = val
	}
	if val, ok := utils.ExtractInt64(data, "max_history_items"); ok {
		filter.MaxHistoryItems = val
	}
}

func extractSortConfig(data map[string]any, sort *SortConfig) {
	if val, ok := utils.ExtractString(data, "default_field"); ok {
		sort.DefaultField = val
	}
	if val, ok := utils.ExtractBool(data, "ascending"); ok {
		sort.Ascending = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractBool(data, "show_timing"); ok {
		server.ShowTiming = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the suggestion options and saves to file
func (c *Config) Update(configPath string, maxSuggestions, minQueryLength, debounceMs *int, fuzzy *bool) error {
	suggest := &c.Suggest
	if maxSuggestions != nil {
		suggest.MaxSuggestions = *maxSuggestions
	}
	if minQueryLength != nil {
		suggest.MinQueryLength = *minQueryLength
	}
	if debounceMs != nil {
		suggest.DebounceMs = *debounceMs
	}
	if fuzzy != nil {
		suggest.Fuzzy = *fuzzy
	}
	return SaveConfig(c, configPath)
}
