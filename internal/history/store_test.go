package history

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassine/haptiq/internal/extract"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleAnswers() extract.AnswerSet {
	return extract.AnswerSet{
		{Question: 1, Letter: 'c', Source: "1/c"},
		{Question: 2, Letter: 'b', Source: "2/b"},
	}
}

func TestStore_RecordAndGet(t *testing.T) {
	store := newTestStore(t)

	run := &Run{
		SourceExcerpt: "1/c 2/b",
		Answers:       sampleAnswers(),
		StepCount:     12,
		Outcome:       OutcomeCompleted,
		Duration:      8 * time.Second,
	}
	require.NoError(t, store.RecordRun(run))
	assert.NotEmpty(t, run.RunID, "a run id is assigned on insert")
	assert.NotZero(t, run.ID)

	got, err := store.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run.RunID, got.RunID)
	assert.Equal(t, OutcomeCompleted, got.Outcome)
	assert.Equal(t, 12, got.StepCount)
	assert.Equal(t, 8*time.Second, got.Duration)
	require.Len(t, got.Answers, 2)
	assert.Equal(t, byte('c'), got.Answers[0].Letter)
	assert.Equal(t, 2, got.Answers[1].Question)
}

func TestStore_GetMissingRun(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetRun("does-not-exist")
	assert.Error(t, err)
}

func TestStore_ListRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)

	for i, outcome := range []string{OutcomeCompleted, OutcomeCancelled, OutcomeFailed} {
		run := &Run{
			CreatedAt:     time.Date(2026, 8, 1+i, 10, 0, 0, 0, time.UTC),
			SourceExcerpt: "x",
			Answers:       sampleAnswers(),
			Outcome:       outcome,
		}
		require.NoError(t, store.RecordRun(run))
	}

	runs, err := store.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, OutcomeFailed, runs[0].Outcome, "newest run first")
	assert.Equal(t, OutcomeCompleted, runs[2].Outcome)

	limited, err := store.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.RecordRun(&Run{Answers: sampleAnswers(), Outcome: OutcomeCompleted}))
	require.NoError(t, store.RecordRun(&Run{Answers: nil, Outcome: OutcomeCancelled}))

	removed, err := store.Clear()
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	runs, err := store.ListRuns(0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStore_ExcerptTruncated(t *testing.T) {
	store := newTestStore(t)

	run := &Run{
		SourceExcerpt: strings.Repeat("a", 5000),
		Outcome:       OutcomeCompleted,
	}
	require.NoError(t, store.RecordRun(run))

	got, err := store.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Len(t, got.SourceExcerpt, maxExcerptLen)
}
