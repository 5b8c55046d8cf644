package sequence

import (
	"fmt"
	"time"
)

// Config controls how an answer set is rendered into a timeline. It is read
// once per run; changing it never affects a run already in flight.
type Config struct {
	// VibrationEnabled controls whether pulse steps are emitted.
	VibrationEnabled bool
	// FlashEnabled controls whether visual separator steps are emitted.
	FlashEnabled bool
	// InterAnswerSilence is the gap before each non-first answer of a
	// question group.
	InterAnswerSilence time.Duration
	// InterQuestionPause is the gap between consecutive question groups.
	InterQuestionPause time.Duration
	// SeparatorFlash is the duration of the visual separator between
	// answers of the same question.
	SeparatorFlash time.Duration
}

// DefaultConfig returns the reference playback configuration.
func DefaultConfig() Config {
	return Config{
		VibrationEnabled:   true,
		FlashEnabled:       false,
		InterAnswerSilence: 2 * time.Second,
		InterQuestionPause: 3 * time.Second,
		SeparatorFlash:     500 * time.Millisecond,
	}
}

// Validate rejects malformed configuration values. It runs before any step
// is built or played.
func (c Config) Validate() error {
	if c.InterAnswerSilence < 0 {
		return fmt.Errorf("%w: inter-answer silence must be >= 0, got %v", ErrInvalidConfig, c.InterAnswerSilence)
	}
	if c.InterQuestionPause < 0 {
		return fmt.Errorf("%w: inter-question pause must be >= 0, got %v", ErrInvalidConfig, c.InterQuestionPause)
	}
	if c.SeparatorFlash < 0 {
		return fmt.Errorf("%w: separator flash must be >= 0, got %v", ErrInvalidConfig, c.SeparatorFlash)
	}
	return nil
}
