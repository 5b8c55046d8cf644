// Package feedback defines the effector contracts the sequencer drives and
// provides reference devices. The core never talks to hardware directly;
// anything that can pulse or flash for a requested duration can be plugged in.
package feedback

import (
	"context"
	"time"
)

// Intensity classifies the strength of a haptic pulse.
type Intensity int

const (
	// IntensityHigh is the intensity class used for letter and question
	// number encoding pulses.
	IntensityHigh Intensity = iota
	// IntensityMedium is reserved for softer cueing.
	IntensityMedium
)

// String returns the human-readable name of the intensity class.
func (i Intensity) String() string {
	switch i {
	case IntensityHigh:
		return "high"
	case IntensityMedium:
		return "medium"
	default:
		return "unknown"
	}
}

// Pulser emits a single haptic pulse and returns once the full physical
// duration has elapsed. Implementations must honor ctx cancellation.
type Pulser interface {
	Pulse(ctx context.Context, intensity Intensity, d time.Duration) error
}

// Flasher emits a visual flash and returns once the full duration has
// elapsed. Off forces the light off; it must be safe to call at any time,
// including after a failed Flash.
type Flasher interface {
	Flash(ctx context.Context, d time.Duration) error
	Off() error
}

// ChannelSet bundles the effectors available for one playback run. A nil
// field means the channel is unavailable; the sequencer skips its steps.
type ChannelSet struct {
	Pulser  Pulser
	Flasher Flasher
}
