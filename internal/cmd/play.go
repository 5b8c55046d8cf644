package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yassine/haptiq/internal/config"
	"github.com/yassine/haptiq/internal/extract"
	"github.com/yassine/haptiq/internal/feedback"
	"github.com/yassine/haptiq/internal/history"
	"github.com/yassine/haptiq/internal/logger"
	"github.com/yassine/haptiq/internal/runlock"
	"github.com/yassine/haptiq/internal/sequence"
)

// NewPlayCommand creates the play command.
func NewPlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [file|-]",
		Short: "Extract answers from text and play them as pulse feedback",
		Long: `Extract answers from the given file (or stdin) and play them back as a
timed pulse sequence on the console device.

Configuration is loaded from .haptiq/config.yaml if present; CLI flags
override configuration file settings. Press Ctrl-C to cancel playback;
cancellation is observed at the next step boundary.

Examples:
  haptiq play answers.txt
  haptiq play --flash --inter-answer 1000 answers.txt
  haptiq play --dry-run answers.txt     # print the timeline, play nothing
  echo "1/c 2-b" | haptiq play`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPlay,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .haptiq/config.yaml)")
	cmd.Flags().Bool("markdown", false, "Treat input as Markdown regardless of file extension")
	cmd.Flags().Bool("dry-run", false, "Print the timeline without playing it")
	cmd.Flags().Bool("no-vibration", false, "Disable pulse playback")
	cmd.Flags().Bool("flash", false, "Enable visual separator flashes")
	cmd.Flags().Bool("no-flash", false, "Disable visual separator flashes (overrides config)")
	cmd.Flags().Int("inter-answer", -1, "Silence before each non-first answer, in ms")
	cmd.Flags().Int("inter-question", -1, "Pause between question groups, in ms")
	cmd.Flags().Int("separator-flash", -1, "Separator flash duration, in ms")
	cmd.Flags().String("log-level", "", "Log verbosity (trace, debug, info, warn, error)")

	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadPlayConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(os.Stderr, cfg.LogLevel)

	markdown, _ := cmd.Flags().GetBool("markdown")
	text, fromMarkdown, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	answers := extractFrom(text, markdown || fromMarkdown)
	if len(answers) == 0 {
		log.LogInfo("no answers found, nothing to play")
		return nil
	}
	log.LogInfo(fmt.Sprintf("extracted %d answer(s)", len(answers)))

	seqCfg := cfg.SequenceConfig()
	timeline, err := sequence.Build(answers, seqCfg)
	if err != nil {
		return err
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		out := cmd.OutOrStdout()
		for _, a := range answers {
			fmt.Fprintln(out, a)
		}
		fmt.Fprintf(out, "\ntimeline (%d steps, %s total):\n%s",
			len(timeline), timeline.TotalDuration(), timeline.Describe())
		return nil
	}

	// One playback run at a time, across processes too.
	lock := runlock.New(filepath.Join(".haptiq", "play.lock"))
	acquired, err := lock.TryAcquire()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another playback run is in progress")
	}
	defer lock.Release()

	channels := buildChannels(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	runErr := sequence.NewSequencer(log).Run(ctx, answers, seqCfg, channels)
	elapsed := time.Since(started)

	recordRun(log, cfg, text, answers, len(timeline), elapsed, runErr)

	switch {
	case runErr == nil:
		return nil
	case errors.Is(runErr, context.Canceled):
		log.LogWarn("playback cancelled")
		return nil
	default:
		return runErr
	}
}

// loadPlayConfig loads the config file and applies flag overrides.
func loadPlayConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(".")
	}
	if err != nil {
		return nil, err
	}

	var vibration, flash *bool
	var interAnswer, interQuestion, separatorFlash *int

	if noVibration, _ := cmd.Flags().GetBool("no-vibration"); noVibration {
		v := false
		vibration = &v
	}
	if flashOn, _ := cmd.Flags().GetBool("flash"); flashOn {
		v := true
		flash = &v
	}
	if noFlash, _ := cmd.Flags().GetBool("no-flash"); noFlash {
		v := false
		flash = &v
	}
	if v, _ := cmd.Flags().GetInt("inter-answer"); v >= 0 {
		interAnswer = &v
	}
	if v, _ := cmd.Flags().GetInt("inter-question"); v >= 0 {
		interQuestion = &v
	}
	if v, _ := cmd.Flags().GetInt("separator-flash"); v >= 0 {
		separatorFlash = &v
	}
	cfg.MergeWithFlags(vibration, flash, interAnswer, interQuestion, separatorFlash)

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildChannels probes the console device and assembles the channel set.
// Without a terminal the null device keeps playback timing intact.
func buildChannels(log *logger.ConsoleLogger) feedback.ChannelSet {
	device := feedback.NewConsoleDevice(os.Stdout)
	if device.IsAvailable() {
		return feedback.ChannelSet{Pulser: device, Flasher: device}
	}
	log.LogWarn("no terminal attached, playing through the null device")
	null := feedback.NullDevice{}
	return feedback.ChannelSet{Pulser: null, Flasher: null}
}

// recordRun appends the run to the history database when enabled. History
// failures are warned about, never fatal.
func recordRun(log *logger.ConsoleLogger, cfg *config.Config, text string, answers extract.AnswerSet, stepCount int, elapsed time.Duration, runErr error) {
	if !cfg.History.Enabled {
		return
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		log.LogWarn(fmt.Sprintf("history disabled for this run: %v", err))
		return
	}
	defer store.Close()

	run := &history.Run{
		SourceExcerpt: text,
		Answers:       answers,
		StepCount:     stepCount,
		Outcome:       history.OutcomeCompleted,
		Duration:      elapsed,
	}
	switch {
	case errors.Is(runErr, context.Canceled):
		run.Outcome = history.OutcomeCancelled
	case runErr != nil:
		run.Outcome = history.OutcomeFailed
		run.ErrorMessage = runErr.Error()
	}

	if err := store.RecordRun(run); err != nil {
		log.LogWarn(fmt.Sprintf("failed to record run: %v", err))
		return
	}
	log.LogDebug(fmt.Sprintf("recorded run %s (%s)", run.RunID, run.Outcome))
}
