package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Team     TeamConfig     `mapstructure:"team"`
	AI       AIConfig       `mapstructure:"ai"`
	Meetings MeetingsConfig `mapstructure:"meetings"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Demo     DemoConfig     `mapstructure:"demo"`
}

// TeamConfig holds the team profile used to build synthesis context.
// Onboarding in the TUI can override these values for a single run.
type TeamConfig struct {
	Name               string   `mapstructure:"name"`
	ProductDescription string   `mapstructure:"product_description"`
	Members            []string `mapstructure:"members"`
	GithubConnected    bool     `mapstructure:"github_connected"`
	JiraConnected      bool     `mapstructure:"jira_connected"`
	SlackConnected     bool     `mapstructure:"slack_connected"`
}

// AIConfig holds AI provider configuration
type AIConfig struct {
	Provider string `mapstructure:"provider"` // "gemini" or "anthropic"
	Model    string `mapstructure:"model"`    // Empty means use per-provider default
	APIKey   string `mapstructure:"api_key"`  // Provider API key (env var takes precedence)
	Endpoint string `mapstructure:"endpoint"` // Custom endpoint URL, mainly for tests

	// Per-provider default models (used when Model is empty)
	GeminiModel    string `mapstructure:"gemini_model"`    // Default: gemini-2.5-flash
	AnthropicModel string `mapstructure:"anthropic_model"` // Default: claude-sonnet-4-20250514
}

// MeetingsConfig holds the external meeting log service configuration
type MeetingsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"` // SHADOW_MEETINGS_TOKEN env var takes precedence
}

// StorageConfig holds session persistence configuration
type StorageConfig struct {
	DatabasePath string `mapstructure:"database_path"`
	MaxSessions  int    `mapstructure:"max_sessions"` // Oldest sessions are dropped past this count
}

// DemoConfig controls the bundled demo datasets
type DemoConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dataset string `mapstructure:"dataset"` // "granola", "reewild", or "nebula-infra"
}

// SecurityWarning represents a configuration security issue
type SecurityWarning struct {
	Field   string
	Message string
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Set defaults
	setDefaults()

	// Unmarshal the config
	if err := viper.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	// Expand paths
	if err := expandPaths(config); err != nil {
		return nil, errors.Wrap(err, "failed to expand paths")
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return config, nil
}

// CheckSecurityWarnings returns warnings for insecure configuration practices.
// Call this when loading config to warn users about keys stored in config files.
func CheckSecurityWarnings(config *Config) []SecurityWarning {
	var warnings []SecurityWarning

	if config.AI.APIKey != "" && os.Getenv("SHADOW_AI_API_KEY") == "" &&
		os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("ANTHROPIC_API_KEY") == "" {
		warnings = append(warnings, SecurityWarning{
			Field:   "ai.api_key",
			Message: "AI API key is set in config file. For security, use environment variables (GEMINI_API_KEY, ANTHROPIC_API_KEY, or SHADOW_AI_API_KEY) instead.",
		})
	}

	if config.Meetings.Token != "" && os.Getenv("SHADOW_MEETINGS_TOKEN") == "" {
		warnings = append(warnings, SecurityWarning{
			Field:   "meetings.token",
			Message: "Meetings token is set in config file. For security, use the SHADOW_MEETINGS_TOKEN environment variable instead.",
		})
	}

	return warnings
}

// ValidProviders is the list of supported AI providers.
var ValidProviders = []string{"gemini", "anthropic"}

// ValidateProvider validates that an AI provider is supported.
func ValidateProvider(provider string) error {
	if provider == "" {
		return nil // Empty is allowed, will use default
	}
	for _, valid := range ValidProviders {
		if provider == valid {
			return nil
		}
	}
	return errors.Newf("invalid AI provider %q: must be one of: gemini, anthropic", provider)
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	if err := ValidateProvider(c.AI.Provider); err != nil {
		return errors.Wrap(err, "ai.provider")
	}
	if c.Storage.MaxSessions < 1 {
		return errors.Newf("storage.max_sessions must be at least 1, got %d", c.Storage.MaxSessions)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fall back to current directory if home dir can't be determined
		homeDir = "."
	}

	// Team defaults (empty means onboarding runs in the TUI)
	viper.SetDefault("team.name", "")
	viper.SetDefault("team.product_description", "")
	viper.SetDefault("team.members", []string{})
	viper.SetDefault("team.github_connected", false)
	viper.SetDefault("team.jira_connected", false)
	viper.SetDefault("team.slack_connected", false)

	// AI defaults
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.model", "") // Empty means use per-provider default
	viper.SetDefault("ai.api_key", "")
	viper.SetDefault("ai.endpoint", "") // Empty means use provider default

	// Per-provider AI model defaults (configurable)
	viper.SetDefault("ai.gemini_model", "gemini-2.5-flash")
	viper.SetDefault("ai.anthropic_model", "claude-sonnet-4-20250514")

	// Meetings defaults
	viper.SetDefault("meetings.enabled", true)
	viper.SetDefault("meetings.base_url", "")
	viper.SetDefault("meetings.token", "")

	// Storage defaults
	viper.SetDefault("storage.database_path", filepath.Join(homeDir, ".local", "share", "shadow", "sessions.db"))
	viper.SetDefault("storage.max_sessions", 100)

	// Demo defaults
	viper.SetDefault("demo.enabled", true)
	viper.SetDefault("demo.dataset", "reewild")
}

// expandPaths expands ~ and environment variables in paths
func expandPaths(config *Config) error {
	var err error

	config.Storage.DatabasePath, err = expandPath(config.Storage.DatabasePath)
	if err != nil {
		return err
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, path[1:]), nil
}
