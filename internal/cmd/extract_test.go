package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with the given args and returns stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExtractCommand_FromStdin(t *testing.T) {
	out, err := runCLI(t, "1/c 2-b Q3: a", "extract", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"1/c", "2/b", "3/a", "3 answer(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExtractCommand_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.txt")
	if err := os.WriteFile(path, []byte("4.d\n5/e"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "", "extract", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "4/d") || !strings.Contains(out, "5/e") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestExtractCommand_MarkdownFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	content := "# Exam\n\nThe answer is **1/c** and also `2-b`.\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "", "extract", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "1/c") || !strings.Contains(out, "2/b") {
		t.Errorf("markdown input not reduced before extraction:\n%s", out)
	}
}

func TestExtractCommand_NoMatches(t *testing.T) {
	out, err := runCLI(t, "nothing to see", "extract", "-")
	if err != nil {
		t.Fatalf("no matches must not be an error: %v", err)
	}
	if !strings.Contains(out, "no answers found") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestExtractCommand_Verbose(t *testing.T) {
	out, err := runCLI(t, "Q7: e", "extract", "--verbose", "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "7/e") || !strings.Contains(out, "\"") {
		t.Errorf("verbose output should include the source span:\n%s", out)
	}
}

func TestExtractCommand_MissingFile(t *testing.T) {
	_, err := runCLI(t, "", "extract", "/does/not/exist.txt")
	if err == nil {
		t.Error("expected an error for a missing input file")
	}
}
