// Package extract scans free-form text for multiple-choice answer notations
// and normalizes them into a deduplicated, ordered answer list.
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Answer is one extracted (question, letter) pair.
type Answer struct {
	// Question is the question number exactly as written in the source text.
	Question int
	// Letter is the answer letter, normalized to lowercase, one of 'a'..'e'.
	Letter byte
	// Source is the substring of the input that produced this answer.
	// It is diagnostic only and does not participate in equality.
	Source string
}

// String returns the canonical "N/l" rendering of the answer.
func (a Answer) String() string {
	return fmt.Sprintf("%d/%c", a.Question, a.Letter)
}

// AnswerSet is an ordered list of answers, sorted by question number
// ascending with ties broken by letter ascending. This ordering is the
// contract consumed by the sequencer.
type AnswerSet []Answer

// letterPayload matches one-or-more answer letters, optionally repeated as a
// comma-separated list ("b", "AB", "a, d, e").
const letterPayload = `[a-eA-E]+(?:\s*,\s*[a-eA-E]+)*`

// notationPatterns are the recognized answer notations, in scan order:
// slash ("12/c"), period ("12. c"), hyphen ("12-c"), colon ("12: c") and
// the Q prefix with optional separator ("Q12 c", "q12: c"). Each pattern is
// scanned independently over the whole input and the matches are merged;
// overlaps between patterns are resolved by deduplication, not precedence.
var notationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*/\s*(` + letterPayload + `)`),
	regexp.MustCompile(`(\d+)\s*\.\s*(` + letterPayload + `)`),
	regexp.MustCompile(`(\d+)\s*-\s*(` + letterPayload + `)`),
	regexp.MustCompile(`(\d+)\s*:\s*(` + letterPayload + `)`),
	regexp.MustCompile(`(?i)q(\d+)\s*[:.]?\s*(` + letterPayload + `)`),
}

// Extractor scans text for answer notations. It is stateless and the zero
// value is ready to use.
type Extractor struct{}

// New returns a ready-to-use Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses text for answer notations and returns the merged,
// deduplicated answer list. It never fails: text with no recognizable
// notation yields an empty set.
func (e *Extractor) Extract(text string) AnswerSet {
	type pairKey struct {
		question int
		letter   byte
	}

	seen := make(map[pairKey]bool)
	var answers AnswerSet

	add := func(question int, letter byte, source string) {
		key := pairKey{question, letter}
		if seen[key] {
			// Earliest-encountered instance keeps its source span.
			return
		}
		seen[key] = true
		answers = append(answers, Answer{Question: question, Letter: letter, Source: source})
	}

	for _, pattern := range notationPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			question, err := strconv.Atoi(match[1])
			if err != nil || question <= 0 {
				// Number too large to represent, or a pathological "0/a".
				continue
			}
			for _, letter := range expandPayload(match[2]) {
				add(question, letter, match[0])
			}
		}
	}

	sort.Slice(answers, func(i, j int) bool {
		if answers[i].Question != answers[j].Question {
			return answers[i].Question < answers[j].Question
		}
		return answers[i].Letter < answers[j].Letter
	})

	return answers
}

// expandPayload flattens a matched letter payload into individual lowercase
// letters. Comma-separated segments are independent answers; a run of
// consecutive letters ("AB") expands to one answer per letter, preserving
// the order they appear in the text.
func expandPayload(payload string) []byte {
	var letters []byte
	for _, segment := range strings.Split(payload, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		for i := 0; i < len(segment); i++ {
			letters = append(letters, normalizeLetter(segment[i]))
		}
	}
	return letters
}

// normalizeLetter lowercases an ASCII answer letter.
func normalizeLetter(c byte) byte {
	if c >= 'A' && c <= 'E' {
		return c + ('a' - 'A')
	}
	return c
}
