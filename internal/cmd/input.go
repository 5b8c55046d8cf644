package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yassine/haptiq/internal/extract"
)

// readInput returns the raw text from the given argument: a file path, or
// "-" / no argument for stdin.
func readInput(args []string, stdin io.Reader) (text string, fromMarkdownFile bool, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), false, nil
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	return string(data), ext == ".md" || ext == ".markdown", nil
}

// extractFrom runs the extractor over text, selecting the Markdown path when
// requested or when the input came from a Markdown file.
func extractFrom(text string, markdown bool) extract.AnswerSet {
	extractor := extract.New()
	if markdown {
		return extractor.ExtractMarkdown([]byte(text))
	}
	return extractor.Extract(text)
}
