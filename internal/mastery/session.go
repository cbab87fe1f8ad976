package mastery

import (
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/stats"
)

// Session is a cursor over a precomputed set of question IDs.
type Session struct {
	Mode    string
	IDs     []string
	Index   int
	Results map[string]bool
}

func NewSession(questions []*models.Question, mode string) *Session {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
		q.SessionCorrect = nil
	}
	return &Session{Mode: mode, IDs: ids, Results: map[string]bool{}}
}

// CurrentID returns the ID under the cursor, or "" when done.
func (s *Session) CurrentID() string {
	if s.Done() {
		return ""
	}
	return s.IDs[s.Index]
}

// Record stores the result of the current question and advances.
// A skip is recorded as a miss.
func (s *Session) Record(correct, skipped bool) {
	if s.Done() {
		return
	}
	s.Results[s.IDs[s.Index]] = correct && !skipped
	s.Index++
}

func (s *Session) Done() bool {
	return s.Index >= len(s.IDs)
}

func (s *Session) Summary() models.SessionSummary {
	sum := models.SessionSummary{Mode: s.Mode, Total: len(s.IDs)}
	for _, ok := range s.Results {
		if ok {
			sum.Correct++
		}
	}
	sum.Wrong = sum.Total - sum.Correct
	sum.Rate = stats.Rate(sum.Correct, sum.Total)
	return sum
}
