// Package sheetchat runs a chat conversation about a spreadsheet selection.
// Requests that match a known action are carried out on the workbook; the
// rest are answered by a completion service.
package sheetchat

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/completion"
	"gopkg.in/yaml.v3"
)

const (
	defaultHistoryLimit = 10
	defaultGreeting     = "Hi! Select a range and tell me what to do with it, " +
		"for example \"sum the amount column\", \"create a pivot table\" or \"make a bar chart\"."
	defaultAPIKeyEnv = "ANTHROPIC_API_KEY"
)

// Config configures a conversation and its collaborators.
type Config struct {
	// HistoryLimit is how many prior messages are sent with a completion.
	HistoryLimit int `yaml:"history_limit"`
	// Greeting is the assistant's first message.
	Greeting string `yaml:"greeting"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// VerifyWrites makes the executor read sums back after writing them.
	// If nil, defaults to true.
	VerifyWrites *bool `yaml:"verify_writes"`
	// PivotSheet is the default pivot destination sheet.
	PivotSheet string `yaml:"pivot_sheet"`
	// SummarySheet is the sheet name used when a pivot falls back to a
	// plain summary.
	SummarySheet string `yaml:"summary_sheet"`
	// ChartTitle replaces the default chart title.
	ChartTitle string `yaml:"chart_title"`

	Completion CompletionConfig `yaml:"completion"`
}

// CompletionConfig configures the completion service.
type CompletionConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	// APIKey takes precedence over APIKeyEnv.
	APIKey string `yaml:"api_key"`
	// APIKeyEnv names the environment variable holding the key.
	APIKeyEnv string        `yaml:"api_key_env"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		HistoryLimit: defaultHistoryLimit,
		Greeting:     defaultGreeting,
		LogLevel:     "info",
		Completion: CompletionConfig{
			Model:     completion.DefaultModel,
			BaseURL:   completion.DefaultBaseURL,
			APIKeyEnv: defaultAPIKeyEnv,
			MaxTokens: completion.DefaultMaxTokens,
			Timeout:   completion.DefaultTimeout,
		},
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.HistoryLimit > 0 {
		c.HistoryLimit = source.HistoryLimit
	}
	if source.Greeting != "" {
		c.Greeting = source.Greeting
	}
	if source.LogLevel != "" {
		c.LogLevel = source.LogLevel
	}
	if source.VerifyWrites != nil {
		c.VerifyWrites = source.VerifyWrites
	}
	if source.PivotSheet != "" {
		c.PivotSheet = source.PivotSheet
	}
	if source.SummarySheet != "" {
		c.SummarySheet = source.SummarySheet
	}
	if source.ChartTitle != "" {
		c.ChartTitle = source.ChartTitle
	}
	c.Completion.Merge(&source.Completion)
}

// Merge applies non-zero values from source into c.
func (c *CompletionConfig) Merge(source *CompletionConfig) {
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
	if source.APIKeyEnv != "" {
		c.APIKeyEnv = source.APIKeyEnv
	}
	if source.MaxTokens > 0 {
		c.MaxTokens = source.MaxTokens
	}
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
}

// LoadConfig reads a YAML config file and merges it over the defaults.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, NewConfigError(filename, "", fmt.Errorf("failed to read config file: %w", err))
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, NewConfigError(filename, "", fmt.Errorf("failed to parse config file: %w", err))
	}
	if loaded.HistoryLimit < 0 {
		return nil, NewConfigError(filename, "history_limit", fmt.Errorf("must not be negative, got %d", loaded.HistoryLimit))
	}
	if loaded.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(loaded.LogLevel)); err != nil {
			return nil, NewConfigError(filename, "log_level", err)
		}
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// ShouldVerifyWrites returns whether written sums are read back.
func (c Config) ShouldVerifyWrites() bool {
	if c.VerifyWrites != nil {
		return *c.VerifyWrites
	}
	return true
}

// Level returns LogLevel as a slog level, falling back to info.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ResolveAPIKey returns APIKey, or else the value of the environment
// variable named by APIKeyEnv as reported by lookup.
func (c CompletionConfig) ResolveAPIKey(lookup func(string) string) string {
	if c.APIKey != "" {
		return c.APIKey
	}
	env := c.APIKeyEnv
	if env == "" {
		env = defaultAPIKeyEnv
	}
	return lookup(env)
}

// ClientConfig converts c into a completion client configuration with the
// key resolved through lookup.
func (c CompletionConfig) ClientConfig(lookup func(string) string) completion.Config {
	return completion.Config{
		APIKey:    c.ResolveAPIKey(lookup),
		Model:     c.Model,
		BaseURL:   c.BaseURL,
		MaxTokens: c.MaxTokens,
		Timeout:   c.Timeout,
	}
}
