package sequence

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/yassine/haptiq/internal/extract"
	"github.com/yassine/haptiq/internal/feedback"
)

// ErrInvalidConfig marks configuration rejected before any step runs.
var ErrInvalidConfig = errors.New("invalid feedback configuration")

// ErrRunInFlight is returned when Run is called while a previous run on the
// same Sequencer has not finished. The effectors are exclusively owned by
// one run at a time; callers wanting back-to-back playback must serialize.
var ErrRunInFlight = errors.New("a playback run is already in flight")

// EffectorError wraps a device failure that aborted playback. The flash is
// driven off before this is returned, so hardware is never left lit.
type EffectorError struct {
	Step  StepKind
	Cause error
}

func (e *EffectorError) Error() string {
	return fmt.Sprintf("effector failed during %s step: %v", e.Step, e.Cause)
}

func (e *EffectorError) Unwrap() error {
	return e.Cause
}

// Logger is the subset of logging the sequencer uses. A nil Logger disables
// logging.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
}

// Sequencer plays timelines against a channel set, one step at a time. It
// holds no state beyond the in-flight flag; construct one per use or share
// one and accept ErrRunInFlight on overlap.
type Sequencer struct {
	logger  Logger
	running atomic.Bool
}

// NewSequencer creates a Sequencer. logger may be nil.
func NewSequencer(logger Logger) *Sequencer {
	return &Sequencer{logger: logger}
}

// Run builds the timeline for answers under cfg and plays it through
// channels. It returns nil on full playback, the context error on
// cancellation, and an *EffectorError on device failure. Every step is
// awaited to completion, physical duration included, before the next one
// starts; cancellation is observed at step boundaries, so its latency is
// bounded by the longest single step.
func (s *Sequencer) Run(ctx context.Context, answers extract.AnswerSet, cfg Config, channels feedback.ChannelSet) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrRunInFlight
	}
	defer s.running.Store(false)

	timeline, err := Build(answers, cfg)
	if err != nil {
		return err
	}

	s.debugf("playing %d answers as %d steps (%s total)",
		len(answers), len(timeline), timeline.TotalDuration())

	return s.play(ctx, timeline, channels)
}

// play executes the timeline strictly in order. Steps whose channel is
// unavailable are skipped without consuming time.
func (s *Sequencer) play(ctx context.Context, timeline Timeline, channels feedback.ChannelSet) error {
	flashLit := false

	for i, step := range timeline {
		if err := ctx.Err(); err != nil {
			return s.finish(channels, flashLit, err)
		}

		var err error
		switch step.Kind {
		case StepSilence:
			err = wait(ctx, step.Duration)
		case StepPulse:
			if channels.Pulser == nil {
				continue
			}
			err = channels.Pulser.Pulse(ctx, step.Intensity, step.Duration)
		case StepFlash:
			if channels.Flasher == nil {
				continue
			}
			flashLit = true
			err = channels.Flasher.Flash(ctx, step.Duration)
		}

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return s.finish(channels, flashLit, err)
			}
			s.debugf("aborting at step %d/%d: %v", i+1, len(timeline), err)
			return s.finish(channels, flashLit, &EffectorError{Step: step.Kind, Cause: err})
		}
	}

	s.infof("playback complete: %d steps", len(timeline))
	return nil
}

// finish drives the flash off if it was ever lit, then returns err. The
// flash-off attempt is best effort; the original error always wins.
func (s *Sequencer) finish(channels feedback.ChannelSet, flashLit bool, err error) error {
	if flashLit && channels.Flasher != nil {
		if offErr := channels.Flasher.Off(); offErr != nil {
			s.debugf("flash off failed: %v", offErr)
		}
	}
	return err
}

func (s *Sequencer) debugf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.LogDebug(fmt.Sprintf(format, args...))
	}
}

func (s *Sequencer) infof(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.LogInfo(fmt.Sprintf(format, args...))
	}
}

// wait blocks for d or until ctx is cancelled.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
