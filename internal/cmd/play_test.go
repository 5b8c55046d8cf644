package cmd

import (
	"strings"
	"testing"
)

func TestPlayCommand_DryRunPrintsTimeline(t *testing.T) {
	out, err := runCLI(t, "1/b", "play", "--dry-run", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "1/b") {
		t.Errorf("dry run should list the extracted answers:\n%s", out)
	}
	if !strings.Contains(out, "timeline") || !strings.Contains(out, "pulse") {
		t.Errorf("dry run should describe the timeline:\n%s", out)
	}
}

func TestPlayCommand_DryRunFlashSeparator(t *testing.T) {
	out, err := runCLI(t, "1/a 1/b", "play", "--dry-run", "--flash", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(out, "flash") != 1 {
		t.Errorf("expected exactly one flash step between the two answers:\n%s", out)
	}
}

func TestPlayCommand_DryRunNoVibration(t *testing.T) {
	out, err := runCLI(t, "1/e", "play", "--dry-run", "--no-vibration", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "pulse") {
		t.Errorf("no pulse steps expected with vibration disabled:\n%s", out)
	}
}

func TestPlayCommand_NoAnswers(t *testing.T) {
	_, err := runCLI(t, "plain prose only", "play", "--dry-run", "-")
	if err != nil {
		t.Fatalf("no answers must not be an error: %v", err)
	}
}

func TestPlayCommand_InvalidFlagValue(t *testing.T) {
	// Negative values are the flags' "unset" sentinel, so they fall back to
	// config rather than erroring; a bad log level does fail validation.
	_, err := runCLI(t, "1/a", "play", "--dry-run", "--log-level", "shout", "-")
	if err == nil {
		t.Error("expected an error for an invalid log level")
	}
}
