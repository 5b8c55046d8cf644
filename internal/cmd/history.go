package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yassine/haptiq/internal/config"
	"github.com/yassine/haptiq/internal/history"
)

// NewHistoryCommand creates the history command group.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded playback runs",
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .haptiq/config.yaml)")

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func openHistoryStore(cmd *cobra.Command) (*history.Store, error) {
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
	return history.NewStore(cfg.History.DBPath)
}

func newHistoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent playback runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "no recorded runs")
				return nil
			}
			for _, run := range runs {
				fmt.Fprintf(out, "%s  %s  %-9s  %d answer(s)  %s\n",
					run.RunID,
					run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					run.Outcome,
					len(run.Answers),
					run.Duration.Round(time.Millisecond),
				)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")
	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one playback run in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run:      %s\n", run.RunID)
			fmt.Fprintf(out, "when:     %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "outcome:  %s\n", run.Outcome)
			if run.ErrorMessage != "" {
				fmt.Fprintf(out, "error:    %s\n", run.ErrorMessage)
			}
			fmt.Fprintf(out, "steps:    %d\n", run.StepCount)
			fmt.Fprintf(out, "duration: %s\n", run.Duration.Round(time.Millisecond))
			fmt.Fprintf(out, "source:   %q\n", run.SourceExcerpt)
			fmt.Fprintln(out, "answers:")
			for _, a := range run.Answers {
				fmt.Fprintf(out, "  %s\n", a)
			}
			return nil
		},
	}
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d run(s)\n", removed)
			return nil
		},
	}
}
