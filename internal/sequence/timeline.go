// Package sequence turns an extracted answer set into a deterministic
// timeline of feedback steps and plays it back one step at a time.
//
// Encoding: each letter a..e becomes as many high-intensity pulses as its
// ordinal position (a=1 .. e=5). Each question group is introduced by a
// marker pulse followed by one pulse per digit value of the question number,
// capped so malformed input cannot produce unbounded sequences. Configured
// silences separate answers and questions; an optional flash separates
// answers of the same question.
package sequence

import (
	"fmt"
	"strings"
	"time"

	"github.com/yassine/haptiq/internal/extract"
	"github.com/yassine/haptiq/internal/feedback"
)

// Reference encoding constants. These are fixed by the encoding scheme, not
// configuration: listeners count pulses against a known cadence.
const (
	// PulseDuration is the physical length of one encoding pulse.
	PulseDuration = 1000 * time.Millisecond
	// PulseGap separates consecutive pulses of one encoding block and the
	// question marker block from the first letter block.
	PulseGap = 200 * time.Millisecond
	// FlashPad brackets each separator flash on both sides.
	FlashPad = 300 * time.Millisecond
	// MaxQuestionPulses caps the question number encoding.
	MaxQuestionPulses = 10
)

// StepKind discriminates timeline steps.
type StepKind int

const (
	// StepPulse is a haptic pulse of Step.Duration at Step.Intensity.
	StepPulse StepKind = iota
	// StepSilence is a quiet gap of Step.Duration.
	StepSilence
	// StepFlash is a visual flash of Step.Duration.
	StepFlash
)

// String returns the step kind name.
func (k StepKind) String() string {
	switch k {
	case StepPulse:
		return "pulse"
	case StepSilence:
		return "silence"
	case StepFlash:
		return "flash"
	default:
		return "unknown"
	}
}

// Step is one entry of a timeline.
type Step struct {
	Kind      StepKind
	Duration  time.Duration
	Intensity feedback.Intensity
}

// Timeline is an ordered list of steps. It is produced once per run and
// never mutated during playback.
type Timeline []Step

// TotalDuration sums the physical duration of every step.
func (t Timeline) TotalDuration() time.Duration {
	var total time.Duration
	for _, s := range t {
		total += s.Duration
	}
	return total
}

// CountKind returns how many steps of the given kind the timeline holds.
func (t Timeline) CountKind(kind StepKind) int {
	n := 0
	for _, s := range t {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// Describe renders the timeline as one line per step, used by dry runs.
func (t Timeline) Describe() string {
	var sb strings.Builder
	for i, s := range t {
		switch s.Kind {
		case StepPulse:
			fmt.Fprintf(&sb, "%3d  pulse   %5dms  %s\n", i+1, s.Duration.Milliseconds(), s.Intensity)
		default:
			fmt.Fprintf(&sb, "%3d  %-7s %5dms\n", i+1, s.Kind, s.Duration.Milliseconds())
		}
	}
	return sb.String()
}

// Build derives the timeline for answers under cfg. The result is a pure
// function of its inputs: the same answer set and configuration always
// produce an identical timeline. The answer set must already be in its
// canonical (question, letter) order, which is what extract produces.
func Build(answers extract.AnswerSet, cfg Config) (Timeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var tl Timeline

	groups := groupByQuestion(answers)
	for gi, group := range groups {
		if cfg.VibrationEnabled {
			tl = appendQuestionEncoding(tl, group[0].Question)
		}

		for ai, answer := range group {
			if ai > 0 && cfg.InterAnswerSilence > 0 {
				tl = append(tl, Step{Kind: StepSilence, Duration: cfg.InterAnswerSilence})
			}

			if cfg.VibrationEnabled {
				tl = appendPulseRun(tl, letterOrdinal(answer.Letter))
			}

			if cfg.FlashEnabled && ai < len(group)-1 {
				tl = append(tl,
					Step{Kind: StepSilence, Duration: FlashPad},
					Step{Kind: StepFlash, Duration: cfg.SeparatorFlash},
					Step{Kind: StepSilence, Duration: FlashPad},
				)
			}
		}

		if gi < len(groups)-1 && cfg.InterQuestionPause > 0 {
			tl = append(tl, Step{Kind: StepSilence, Duration: cfg.InterQuestionPause})
		}
	}

	return tl, nil
}

// groupByQuestion splits a sorted answer set into per-question runs,
// preserving the set's order inside each run.
func groupByQuestion(answers extract.AnswerSet) []extract.AnswerSet {
	var groups []extract.AnswerSet
	for i := 0; i < len(answers); {
		j := i
		for j < len(answers) && answers[j].Question == answers[i].Question {
			j++
		}
		groups = append(groups, answers[i:j])
		i = j
	}
	return groups
}

// appendQuestionEncoding emits the positional indicator for a question: one
// marker pulse, then one pulse per question number unit, then a gap before
// the first letter block. The count is capped at MaxQuestionPulses.
func appendQuestionEncoding(tl Timeline, question int) Timeline {
	count := question
	if count > MaxQuestionPulses {
		count = MaxQuestionPulses
	}
	tl = appendPulseRun(tl, 1+count)
	return append(tl, Step{Kind: StepSilence, Duration: PulseGap})
}

// appendPulseRun emits count identical high-intensity pulses separated by
// the fixed pulse gap.
func appendPulseRun(tl Timeline, count int) Timeline {
	for i := 0; i < count; i++ {
		if i > 0 {
			tl = append(tl, Step{Kind: StepSilence, Duration: PulseGap})
		}
		tl = append(tl, Step{Kind: StepPulse, Duration: PulseDuration, Intensity: feedback.IntensityHigh})
	}
	return tl
}

// letterOrdinal maps a..e to 1..5. Anything else counts as a single pulse
// so a corrupted answer degrades to noise instead of silence.
func letterOrdinal(letter byte) int {
	if letter < 'a' || letter > 'e' {
		return 1
	}
	return int(letter-'a') + 1
}
