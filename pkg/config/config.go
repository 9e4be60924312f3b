/*
Package config manages TOML config for WordCoach.

Config is resolved in layers: a path given on the command line, then
config.toml in the user config dir (created with defaults when missing),
then the builtin defaults. A file that fails to decode as a whole is
recovered section by section so one bad value does not discard the rest.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordcoach/internal/utils"
	"github.com/bastiangx/wordcoach/pkg/lexicon"
)

// Config holds the entire config structure
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Remote  RemoteConfig  `toml:"remote"`
	Server  ServerConfig  `toml:"server"`
	Lexicon LexiconConfig `toml:"lexicon"`
	CLI     CliConfig     `toml:"cli"`
}

// EngineConfig has the suggestion pipeline options.
type EngineConfig struct {
	// WordBankCap caps lists shown next to the word bank.
	WordBankCap int `toml:"word_bank_cap"`
	// WorkspaceCap is the cap used when a request names none.
	WorkspaceCap      int    `toml:"workspace_cap"`
	PrefixLimit       int    `toml:"prefix_limit"`
	DefaultLevel      string `toml:"default_level"`
	MemoizeAssessment bool   `toml:"memoize_assessment"`
}

// RemoteConfig holds the word service options.
type RemoteConfig struct {
	Enabled    bool   `toml:"enabled"`
	BaseURL    string `toml:"base_url"`
	TimeoutMs  int    `toml:"timeout_ms"`
	DebounceMs int    `toml:"debounce_ms"`
	MaxResults int    `toml:"max_results"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxTextLength int `toml:"max_text_length"`
	MaxCap        int `toml:"max_cap"`
}

// LexiconConfig points at an optional CSV with extra entries.
type LexiconConfig struct {
	OverrideCSV string `toml:"override_csv"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultCap   int    `toml:"default_cap"`
	DefaultLevel string `toml:"default_level"`
}

// Level parses DefaultLevel, falling back to beginner.
func (e EngineConfig) Level() lexicon.Level {
	return parseLevel(e.DefaultLevel)
}

// Level parses the cli DefaultLevel, falling back to beginner.
func (c CliConfig) Level() lexicon.Level {
	return parseLevel(c.DefaultLevel)
}

func parseLevel(s string) lexicon.Level {
	lvl, ok := lexicon.ParseLevel(s)
	if !ok {
		log.Warnf("Unknown level %q in config, using %s", s, lvl)
	}
	return lvl
}

// Timeout returns the per request timeout of the word service.
func (r RemoteConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutMs) * time.Millisecond
}

// Debounce returns the pause before a remote request is sent.
func (r RemoteConfig) Debounce() time.Duration {
	return time.Duration(r.DebounceMs) * time.Millisecond
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
		execDir, execErr := utils.ExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	for _, dir := range []string{
		filepath.Join(homeDir, ".config", "wordcoach"),
		filepath.Join(homeDir, "Library", "Application Support", "wordcoach"),
	} {
		if utils.UsableConfigDir(dir) {
			return dir, nil
		}
	}
	execDir, err := utils.ExecutableDir()
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
// 2. Default path: [UserConfigDir]/wordcoach/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
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

	config, err := InitConfig(defaultPath)
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
		Engine: EngineConfig{
			WordBankCap:       6,
			WorkspaceCap:      10,
			PrefixLimit:       6,
			DefaultLevel:      lexicon.Beginner.String(),
			MemoizeAssessment: true,
		},
		Remote: RemoteConfig{
			Enabled:    false,
			BaseURL:    "https://api.datamuse.com",
			TimeoutMs:  2000,
			DebounceMs: 175,
			MaxResults: 10,
		},
		Server: ServerConfig{
			MaxTextLength: 20000,
			MaxCap:        32,
		},
		CLI: CliConfig{
			DefaultCap:   8,
			DefaultLevel: lexicon.Intermediate.String(),
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

// LoadConfig loads from a TOML file. Missing keys keep their defaults and
// out of range numbers are reset to them.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		log.Warnf("%v. Attempting partial recovery...", err)
		config, err = tryPartialParse(configPath)
		if err != nil {
			return nil, err
		}
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(section, &config.Engine)
	}
	if section, ok := utils.ExtractSection(tempConfig, "remote"); ok {
		extractRemoteConfig(section, &config.Remote)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "lexicon"); ok {
		if val, ok := utils.ExtractString(section, "override_csv"); ok {
			config.Lexicon.OverrideCSV = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

// extractEngineConfig extracts engine configuration from a map
func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt(data, "word_bank_cap"); ok {
		engine.WordBankCap = val
	}
	if val, ok := utils.ExtractInt(data, "workspace_cap"); ok {
		engine.WorkspaceCap = val
	}
	if val, ok := utils.ExtractInt(data, "prefix_limit"); ok {
		engine.PrefixLimit = val
	}
	if val, ok := utils.ExtractString(data, "default_level"); ok {
		engine.DefaultLevel = val
	}
	if val, ok := utils.ExtractBool(data, "memoize_assessment"); ok {
		engine.MemoizeAssessment = val
	}
}

// extractRemoteConfig extracts word service configuration from a map
func extractRemoteConfig(data map[string]any, remote *RemoteConfig) {
	if val, ok := utils.ExtractBool(data, "enabled"); ok {
		remote.Enabled = val
	}
	if val, ok := utils.ExtractString(data, "base_url"); ok {
		remote.BaseURL = val
	}
	if val, ok := utils.ExtractInt(data, "timeout_ms"); ok {
		remote.TimeoutMs = val
	}
	if val, ok := utils.ExtractInt(data, "debounce_ms"); ok {
		remote.DebounceMs = val
	}
	if val, ok := utils.ExtractInt(data, "max_results"); ok {
		remote.MaxResults = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt(data, "max_text_length"); ok {
		server.MaxTextLength = val
	}
	if val, ok := utils.ExtractInt(data, "max_cap"); ok {
		server.MaxCap = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt(data, "default_cap"); ok {
		cli.DefaultCap = val
	}
	if val, ok := utils.ExtractString(data, "default_level"); ok {
		cli.DefaultLevel = val
	}
}

// sanitize resets non-positive numbers to their defaults.
func (c *Config) sanitize() {
	d := DefaultConfig()
	fix := func(name string, v *int, def int) {
		if *v <= 0 {
			log.Warnf("Config value %s=%d is not positive, using %d", name, *v, def)
			*v = def
		}
	}
	fix("engine.word_bank_cap", &c.Engine.WordBankCap, d.Engine.WordBankCap)
	fix("engine.workspace_cap", &c.Engine.WorkspaceCap, d.Engine.WorkspaceCap)
	fix("engine.prefix_limit", &c.Engine.PrefixLimit, d.Engine.PrefixLimit)
	fix("remote.timeout_ms", &c.Remote.TimeoutMs, d.Remote.TimeoutMs)
	fix("remote.debounce_ms", &c.Remote.DebounceMs, d.Remote.DebounceMs)
	fix("remote.max_results", &c.Remote.MaxResults, d.Remote.MaxResults)
	fix("server.max_text_length", &c.Server.MaxTextLength, d.Server.MaxTextLength)
	fix("server.max_cap", &c.Server.MaxCap, d.Server.MaxCap)
	fix("cli.default_cap", &c.CLI.DefaultCap, d.CLI.DefaultCap)
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
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.AbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the engine values and saves to file. Nil arguments are
// left as they are. An empty configPath only updates memory.
func (c *Config) Update(configPath string, wordBankCap, workspaceCap *int, defaultLevel *string, remoteEnabled *bool) error {
	engine := &c.Engine
	if wordBankCap != nil {
		engine.WordBankCap = *wordBankCap
	}
	if workspaceCap != nil {
		engine.WorkspaceCap = *workspaceCap
	}
	if defaultLevel != nil {
		engine.DefaultLevel = *defaultLevel
	}
	if remoteEnabled != nil {
		c.Remote.Enabled = *remoteEnabled
	}
	c.sanitize()
	if configPath == "" {
		return nil
	}
	return SaveConfig(c, configPath)
}
