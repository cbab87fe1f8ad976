package mastery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mindforge/internal/mastery"
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/sampler"
)

// stubSampler never reorders and returns a fixed draw.
type stubSampler struct{ draw float64 }

func (s stubSampler) Shuffle(int, func(i, j int)) {}
func (s stubSampler) Float64() float64            { return s.draw }

var now = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func question(id string, streak int) *models.Question {
	return &models.Question{
		ID:      id,
		Subject: "Matemática",
		Tags:    []string{"funcoes"},
		Options: []models.Option{{Text: "a", Correct: true}, {Text: "b"}},
		Streak:  streak,
	}
}

func TestRecordAnswer_Counters(t *testing.T) {
	tr := mastery.NewTracker(stubSampler{}, mastery.DefaultConfig())
	st := models.NewStats()
	q := question("q1", 0)

	tr.RecordAnswer(&st, q, true, false, now)
	assert.Equal(t, 1, q.Streak)
	assert.Equal(t, now, q.LastReview)
	require.NotNil(t, q.SessionCorrect)
	assert.True(t, *q.SessionCorrect)
	assert.Equal(t, 1, st.TotalCorrect)
	assert.Equal(t, 1, st.TotalAttempted)
	assert.Equal(t, 1, st.CorrectBySubject["Matemática"])
	assert.Equal(t, 1, st.AttemptedByTag["funcoes"])
	assert.Equal(t, 1, st.DailyProgressOn(now))

	tr.RecordAnswer(&st, q, false, false, now)
	assert.Equal(t, 0, q.Streak)
	assert.False(t, *q.SessionCorrect)
	assert.Equal(t, 1, st.TotalCorrect)
	assert.Equal(t, 2, st.TotalAttempted)
	assert.Equal(t, 1, st.DailyProgressOn(now))
}

func TestRecordAnswer_SkipResetsWithoutCounting(t *testing.T) {
	tr := mastery.NewTracker(stubSampler{}, mastery.DefaultConfig())
	st := models.NewStats()
	q := question("q1", 2)

	tr.RecordAnswer(&st, q, false, true, now)

	assert.Equal(t, 0, q.Streak)
	assert.Equal(t, now, q.LastReview)
	assert.Nil(t, q.SessionCorrect)
	assert.Zero(t, st.TotalAttempted)
	assert.Empty(t, st.AttemptedBySubject)
}

func TestRecordAnswer_Defaults(t *testing.T) {
	tr := mastery.NewTracker(stubSampler{}, mastery.DefaultConfig())
	st := models.NewStats()
	q := &models.Question{ID: "q"}

	tr.RecordAnswer(&st, q, true, false, now)

	assert.Equal(t, 1, st.CorrectBySubject[mastery.DefaultSubject])
	assert.Equal(t, 1, st.CorrectByTag[mastery.DefaultTag])
}

func TestRecordAnswer_TwoQuestionScenario(t *testing.T) {
	tr := mastery.NewTracker(stubSampler{}, mastery.DefaultConfig())
	st := models.NewStats()
	q1, q2 := question("q1", 0), question("q2", 0)

	var streaks []int
	for _, correct := range []bool{true, false, false} {
		tr.RecordAnswer(&st, q1, correct, false, now)
		streaks = append(streaks, q1.Streak)
	}

	assert.Equal(t, []int{1, 0, 0}, streaks)
	assert.Equal(t, 3, st.TotalAttempted)
	assert.Equal(t, 1, st.TotalCorrect)
	assert.Equal(t, 0, q2.Streak)
}

func TestIsMasteredAndForce(t *testing.T) {
	q := question("q", 2)
	assert.False(t, mastery.IsMastered(q))
	q.Streak = 3
	assert.True(t, mastery.IsMastered(q))

	mastery.ForceMastery(q, false, now)
	assert.Equal(t, 0, q.Streak)
	mastery.ForceMastery(q, true, now)
	assert.Equal(t, mastery.MasteryThreshold, q.Streak)
	assert.Equal(t, now, q.LastReview)
}

func TestBuildSession(t *testing.T) {
	var all []*models.Question
	for i := 0; i < 15; i++ {
		streak := 3
		if i < 4 {
			streak = 0
		}
		all = append(all, question(string(rune('a'+i)), streak))
	}

	t.Run("revision mode returns every due question", func(t *testing.T) {
		tr := mastery.NewTracker(stubSampler{draw: 0.1}, mastery.DefaultConfig())
		got, mode, err := tr.BuildSession(all)
		require.NoError(t, err)
		assert.Equal(t, mastery.ModeRevision, mode)
		assert.Len(t, got, 4)
		for _, q := range got {
			assert.False(t, mastery.IsMastered(q))
		}
	})

	t.Run("normal mode samples session size", func(t *testing.T) {
		tr := mastery.NewTracker(stubSampler{draw: 0.9}, mastery.DefaultConfig())
		got, mode, err := tr.BuildSession(all)
		require.NoError(t, err)
		assert.Equal(t, mastery.ModeNormal, mode)
		assert.Len(t, got, 10)
	})

	t.Run("normal mode when everything is mastered", func(t *testing.T) {
		tr := mastery.NewTracker(sampler.New(1), mastery.DefaultConfig())
		got, mode, err := tr.BuildSession(all[4:7])
		require.NoError(t, err)
		assert.Equal(t, mastery.ModeNormal, mode)
		assert.Len(t, got, 3)
	})

	t.Run("empty bank", func(t *testing.T) {
		tr := mastery.NewTracker(sampler.New(1), mastery.DefaultConfig())
		_, _, err := tr.BuildSession(nil)
		assert.ErrorIs(t, err, mastery.ErrNoQuestionsAvailable)
	})
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name    string
		options []models.Option
		want    error
	}{
		{"valid", []models.Option{{Text: "a", Correct: true}, {Text: "b"}}, nil},
		{"one option", []models.Option{{Text: "a", Correct: true}}, mastery.ErrTooFewOptions},
		{"no correct", []models.Option{{Text: "a"}, {Text: "b"}}, mastery.ErrNoCorrectOption},
		{"two correct", []models.Option{{Text: "a", Correct: true}, {Text: "b", Correct: true}}, mastery.ErrMultipleCorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mastery.ValidateQuestion(&models.Question{Options: tt.options})
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	got := mastery.NormalizeTags([]string{" Funcoes ", "", "GERAL", "geral", "  "})
	assert.Equal(t, []string{"funcoes", "geral"}, got)
	assert.Empty(t, mastery.NormalizeTags(nil))
}

func TestSession(t *testing.T) {
	qs := []*models.Question{question("q1", 0), question("q2", 0), question("q3", 0)}
	s := mastery.NewSession(qs, mastery.ModeRevision)

	assert.Equal(t, "q1", s.CurrentID())
	s.Record(true, false)
	s.Record(false, true)
	assert.Equal(t, "q3", s.CurrentID())
	s.Record(false, false)
	assert.True(t, s.Done())
	assert.Equal(t, "", s.CurrentID())

	sum := s.Summary()
	assert.Equal(t, models.SessionSummary{Mode: mastery.ModeRevision, Correct: 1, Wrong: 2, Total: 3, Rate: "33.3%"}, sum)
}

func TestSession_SkipCountsAsWrong(t *testing.T) {
	qs := []*models.Question{question("q1", 0), question("q2", 0)}
	s := mastery.NewSession(qs, mastery.ModeNormal)

	s.Record(true, true)
	s.Record(true, false)

	sum := s.Summary()
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 1, sum.Wrong)
	assert.Equal(t, "50.0%", sum.Rate)
}
