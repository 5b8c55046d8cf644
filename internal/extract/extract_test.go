package extract

import (
	"reflect"
	"strings"
	"testing"
)

// pairs strips source spans so tests can compare on the semantic content.
func pairs(set AnswerSet) []string {
	var out []string
	for _, a := range set {
		out = append(out, a.String())
	}
	return out
}

func TestExtract_Notations(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "slash separated",
			text:     "1/c\n2/b\n3/a\n4/d\n5/e",
			expected: []string{"1/c", "2/b", "3/a", "4/d", "5/e"},
		},
		{
			name:     "period separated",
			text:     "1. c",
			expected: []string{"1/c"},
		},
		{
			name:     "hyphen separated",
			text:     "7-d",
			expected: []string{"7/d"},
		},
		{
			name:     "colon separated",
			text:     "4 : b",
			expected: []string{"4/b"},
		},
		{
			name:     "q prefix with colon",
			text:     "Q2: b",
			expected: []string{"2/b"},
		},
		{
			name:     "q prefix lowercase no separator",
			text:     "q15 e",
			expected: []string{"15/e"},
		},
		{
			name:     "q prefix with period",
			text:     "Q3.a",
			expected: []string{"3/a"},
		},
		{
			name:     "mixed notations in one text",
			text:     "1/a some words Q2: b then 3-c and 4. d",
			expected: []string{"1/a", "2/b", "3/c", "4/d"},
		},
		{
			name:     "uppercase letters normalize to lowercase",
			text:     "1/A 2/B",
			expected: []string{"1/a", "2/b"},
		},
		{
			name:     "multi digit question numbers",
			text:     "12/c 103-e",
			expected: []string{"12/c", "103/e"},
		},
		{
			name:     "no answers",
			text:     "no answers here",
			expected: nil,
		},
		{
			name:     "empty input",
			text:     "",
			expected: nil,
		},
		{
			name:     "letters outside a..e never match",
			text:     "1/f 2/z",
			expected: nil,
		},
	}

	extractor := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pairs(extractor.Extract(tt.text))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestExtract_Expansion(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "consecutive letters expand",
			text:     "1/AB\n2-BC",
			expected: []string{"1/a", "1/b", "2/b", "2/c"},
		},
		{
			name:     "comma expansion",
			text:     "1-b,c",
			expected: []string{"1/b", "1/c"},
		},
		{
			name:     "comma expansion with spaces",
			text:     "3/a, d, e",
			expected: []string{"3/a", "3/d", "3/e"},
		},
		{
			name:     "comma segments with letter runs",
			text:     "2:ab,d",
			expected: []string{"2/a", "2/b", "2/d"},
		},
	}

	extractor := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pairs(extractor.Extract(tt.text))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestExtract_Deduplication(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "same pair different letters kept",
			text:     "1/A\n1/B",
			expected: []string{"1/a", "1/b"},
		},
		{
			name:     "exact duplicate collapsed",
			text:     "1/A\n1/A",
			expected: []string{"1/a"},
		},
		{
			name:     "duplicate across notations collapsed",
			text:     "2/c and also 2-c and Q2: c",
			expected: []string{"2/c"},
		},
		{
			name:     "duplicate from expansion collapsed",
			text:     "1/ab 1-b,c",
			expected: []string{"1/a", "1/b", "1/c"},
		},
	}

	extractor := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pairs(extractor.Extract(tt.text))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestExtract_Ordering(t *testing.T) {
	// Answers arrive out of order across notations; result is sorted by
	// question number then letter.
	got := pairs(New().Extract("9/e 2/b 9/a Q1.c 2/a"))
	want := []string{"1/c", "2/a", "2/b", "9/a", "9/e"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	extractor := New()
	text := "1/a Q2:b 3-c,d 4.e"
	first := extractor.Extract(text)
	second := extractor.Extract(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs: %v vs %v", first, second)
	}
}

func TestExtract_SourceSpan(t *testing.T) {
	set := New().Extract("answer is Q2: b for sure")
	if len(set) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(set))
	}
	if !strings.Contains(set[0].Source, "2") || !strings.Contains(set[0].Source, "b") {
		t.Errorf("source span %q does not cover the notation", set[0].Source)
	}
}

func TestExtract_EarliestSourceWins(t *testing.T) {
	// The same (question, letter) pair written twice keeps the span of the
	// first occurrence.
	set := New().Extract("3/c ... then 3-c")
	if len(set) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(set))
	}
	if set[0].Source != "3/c" {
		t.Errorf("expected earliest span %q, got %q", "3/c", set[0].Source)
	}
}

func TestExtract_OverflowingQuestionNumber(t *testing.T) {
	// A number too large for int is skipped rather than crashing.
	text := strings.Repeat("9", 40) + "/a and 2/b"
	got := pairs(New().Extract(text))
	want := []string{"2/b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
