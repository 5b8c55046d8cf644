package feedback

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ConsoleDevice renders pulses and flashes as colored blocks on a terminal,
// sleeping out each requested duration so playback timing matches what a
// physical device would do. It doubles as both Pulser and Flasher.
type ConsoleDevice struct {
	writer    io.Writer
	mu        sync.Mutex
	available bool
	once      sync.Once
	flashOn   bool
}

// NewConsoleDevice creates a console device writing to w. Pass os.Stdout for
// normal interactive use.
func NewConsoleDevice(w io.Writer) *ConsoleDevice {
	return &ConsoleDevice{writer: w}
}

// IsAvailable reports whether the device can render feedback. The probe runs
// once and caches its result: the writer must be a TTY, matching how a
// capability check for real hardware behaves.
func (d *ConsoleDevice) IsAvailable() bool {
	d.once.Do(func() {
		if f, ok := d.writer.(*os.File); ok {
			d.available = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	})
	return d.available
}

// Pulse renders one haptic pulse as a block of filled cells and blocks for
// the full pulse duration.
func (d *ConsoleDevice) Pulse(ctx context.Context, intensity Intensity, dur time.Duration) error {
	d.mu.Lock()
	pulse := color.New(color.FgHiMagenta, color.Bold)
	if intensity == IntensityMedium {
		pulse = color.New(color.FgMagenta)
	}
	pulse.Fprintf(d.writer, "▮▮▮ pulse %s %dms\n", intensity, dur.Milliseconds())
	d.mu.Unlock()

	return sleep(ctx, dur)
}

// Flash renders a visual flash and blocks for the full flash duration. The
// lamp state is tracked so Off can report what a stuck flash would look like.
func (d *ConsoleDevice) Flash(ctx context.Context, dur time.Duration) error {
	d.mu.Lock()
	d.flashOn = true
	color.New(color.FgHiYellow, color.Bold).Fprintf(d.writer, "☀ flash %dms\n", dur.Milliseconds())
	d.mu.Unlock()

	if err := sleep(ctx, dur); err != nil {
		return err
	}

	d.mu.Lock()
	d.flashOn = false
	d.mu.Unlock()
	return nil
}

// Off forces the flash off. Safe to call at any time.
func (d *ConsoleDevice) Off() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.flashOn {
		d.flashOn = false
		fmt.Fprintln(d.writer, "☀ flash off")
	}
	return nil
}

// FlashOn reports whether the flash is currently lit.
func (d *ConsoleDevice) FlashOn() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flashOn
}

// NullDevice consumes pulse and flash requests by sleeping out their
// durations without rendering anything. Useful for timing runs and as a
// stand-in when no terminal is attached.
type NullDevice struct{}

// Pulse waits out the pulse duration.
func (NullDevice) Pulse(ctx context.Context, _ Intensity, dur time.Duration) error {
	return sleep(ctx, dur)
}

// Flash waits out the flash duration.
func (NullDevice) Flash(ctx context.Context, dur time.Duration) error {
	return sleep(ctx, dur)
}

// Off is a no-op.
func (NullDevice) Off() error { return nil }

// sleep blocks for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
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
