// Package config loads haptiq configuration from YAML with defaults and
// CLI-flag overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yassine/haptiq/internal/sequence"
)

// FeedbackConfig is the playback configuration section. Durations are
// expressed in milliseconds in the YAML file.
type FeedbackConfig struct {
	// VibrationEnabled enables haptic pulse playback.
	VibrationEnabled bool `yaml:"vibration_enabled"`

	// FlashEnabled enables visual separator playback.
	FlashEnabled bool `yaml:"flash_enabled"`

	// InterAnswerSilenceMs is the gap before each non-first answer of a
	// question group.
	InterAnswerSilenceMs int `yaml:"inter_answer_silence_ms"`

	// InterQuestionPauseMs is the gap between question groups.
	InterQuestionPauseMs int `yaml:"inter_question_pause_ms"`

	// SeparatorFlashMs is the duration of the flash between answers.
	SeparatorFlashMs int `yaml:"separator_flash_ms"`
}

// HistoryConfig controls the playback session log.
type HistoryConfig struct {
	// Enabled enables recording runs to the history database.
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database.
	DBPath string `yaml:"db_path"`
}

// Config represents haptiq configuration options.
type Config struct {
	// LogLevel sets logging verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// Feedback contains playback configuration.
	Feedback FeedbackConfig `yaml:"feedback"`

	// History contains session log configuration.
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Feedback: FeedbackConfig{
			VibrationEnabled:     true,
			FlashEnabled:         false,
			InterAnswerSilenceMs: 2000,
			InterQuestionPauseMs: 3000,
			SeparatorFlashMs:     500,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  ".haptiq/history.db",
		},
	}
}

// LoadConfig loads configuration from the specified file path. A missing
// file returns defaults without error; a malformed file returns an error.
// Values absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .haptiq/config.yaml in the
// specified directory, falling back to defaults if absent.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".haptiq", "config.yaml"))
}

// MergeWithFlags merges CLI flag values into the configuration. Non-nil
// values override the file settings.
func (c *Config) MergeWithFlags(vibration, flash *bool, interAnswerMs, interQuestionMs, separatorFlashMs *int) {
	if vibration != nil {
		c.Feedback.VibrationEnabled = *vibration
	}
	if flash != nil {
		c.Feedback.FlashEnabled = *flash
	}
	if interAnswerMs != nil {
		c.Feedback.InterAnswerSilenceMs = *interAnswerMs
	}
	if interQuestionMs != nil {
		c.Feedback.InterQuestionPauseMs = *interQuestionMs
	}
	if separatorFlashMs != nil {
		c.Feedback.SeparatorFlashMs = *separatorFlashMs
	}
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Feedback.InterAnswerSilenceMs < 0 {
		return fmt.Errorf("feedback.inter_answer_silence_ms must be >= 0, got %d", c.Feedback.InterAnswerSilenceMs)
	}
	if c.Feedback.InterQuestionPauseMs < 0 {
		return fmt.Errorf("feedback.inter_question_pause_ms must be >= 0, got %d", c.Feedback.InterQuestionPauseMs)
	}
	if c.Feedback.SeparatorFlashMs < 0 {
		return fmt.Errorf("feedback.separator_flash_ms must be >= 0, got %d", c.Feedback.SeparatorFlashMs)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}

// SequenceConfig converts the feedback section into the sequencer's
// configuration type.
func (c *Config) SequenceConfig() sequence.Config {
	return sequence.Config{
		VibrationEnabled:   c.Feedback.VibrationEnabled,
		FlashEnabled:       c.Feedback.FlashEnabled,
		InterAnswerSilence: time.Duration(c.Feedback.InterAnswerSilenceMs) * time.Millisecond,
		InterQuestionPause: time.Duration(c.Feedback.InterQuestionPauseMs) * time.Millisecond,
		SeparatorFlash:     time.Duration(c.Feedback.SeparatorFlashMs) * time.Millisecond,
	}
}
