package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Parse text for answer notations and print them",
		Long: `Parse the given file (or stdin) for answer notations and print the
extracted answers in their canonical order.

Recognized notations: "12/c", "12. c", "12-c", "12: c", "Q12 c" (case
insensitive), each accepting comma-separated or consecutive letters
("3-a,d", "1/AB"). Duplicates collapse; output is sorted by question
number, then letter.

Examples:
  haptiq extract answers.txt
  haptiq extract notes.md            # Markdown is reduced to text first
  echo "1/c 2-b" | haptiq extract`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().Bool("markdown", false, "Treat input as Markdown regardless of file extension")
	cmd.Flags().BoolP("verbose", "v", false, "Show the source span of each answer")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	markdown, _ := cmd.Flags().GetBool("markdown")
	verbose, _ := cmd.Flags().GetBool("verbose")

	text, fromMarkdown, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	answers := extractFrom(text, markdown || fromMarkdown)
	out := cmd.OutOrStdout()

	if len(answers) == 0 {
		fmt.Fprintln(out, "no answers found")
		return nil
	}

	for _, a := range answers {
		if verbose {
			fmt.Fprintf(out, "%s\t%q\n", a, a.Source)
		} else {
			fmt.Fprintln(out, a)
		}
	}
	fmt.Fprintf(out, "%d answer(s)\n", len(answers))
	return nil
}
