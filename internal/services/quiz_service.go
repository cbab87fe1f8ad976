package services

import (
	"context"
	"time"

	"github.com/vytor/mindforge/internal/errors"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/mastery"
	"github.com/vytor/mindforge/internal/models"
)

// QuizView is the question under the session cursor. Options are shown
// without their correctness flag.
type QuizView struct {
	Mode     string   `json:"mode"`
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	ID       string   `json:"id"`
	Subject  string   `json:"disciplina"`
	Prompt   string   `json:"enunciado"`
	Options  []string `json:"opcoes"`
	Tags     []string `json:"tags"`
	Mastered bool     `json:"mastered"`
}

// AnswerResult reports the outcome of one quiz answer.
type AnswerResult struct {
	Correct      bool   `json:"correct"`
	Skipped      bool   `json:"skipped"`
	CorrectIndex int    `json:"correctIndex"`
	Explanation  string `json:"resolucao"`
	Streak       int    `json:"acertosConsecutivos"`
	Mastered     bool   `json:"mastered"`
	Done         bool   `json:"done"`
}

// QuizService runs practice sessions over the question bank
type QuizService interface {
	Start(ctx context.Context) (*QuizView, error)
	Current(ctx context.Context) (*QuizView, error)
	Answer(ctx context.Context, option int) (*AnswerResult, error)
	Skip(ctx context.Context) (*AnswerResult, error)
	Summary(ctx context.Context) (*models.SessionSummary, error)
	Stop(ctx context.Context) error
}

type quizService struct {
	store   *Store
	tracker *mastery.Tracker
	session *mastery.Session
}

// NewQuizService creates a new QuizService
func NewQuizService(store *Store, tracker *mastery.Tracker) QuizService {
	return &quizService{store: store, tracker: tracker}
}

var errNoSession = errors.NewConflictError("no quiz session in progress")

func (s *quizService) Start(ctx context.Context) (*QuizView, error) {
	log := logger.FromContext(ctx)
	var view *QuizView
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		selected, mode, err := s.tracker.BuildSession(st.Questions)
		if err != nil {
			return domainError(err)
		}
		s.session = mastery.NewSession(selected, mode)
		log.Info("quiz session started: mode=%s, questions=%d", mode, len(selected))
		view = s.viewLocked(st)
		return nil
	})
	return view, err
}

func (s *quizService) Current(ctx context.Context) (*QuizView, error) {
	var view *QuizView
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		if s.session == nil {
			return errNoSession
		}
		view = s.viewLocked(st)
		return nil
	})
	return view, err
}

// viewLocked skips IDs whose question was deleted mid-session.
func (s *quizService) viewLocked(st *models.AppState) *QuizView {
	for !s.session.Done() {
		q := st.Question(s.session.CurrentID())
		if q == nil {
			s.session.Record(false, true)
			continue
		}
		opts := make([]string, len(q.Options))
		for i, o := range q.Options {
			opts[i] = o.Text
		}
		return &QuizView{
			Mode:     s.session.Mode,
			Index:    s.session.Index,
			Total:    len(s.session.IDs),
			ID:       q.ID,
			Subject:  q.Subject,
			Prompt:   q.Prompt,
			Options:  opts,
			Tags:     q.Tags,
			Mastered: q.Mastered(),
		}
	}
	return nil
}

func (s *quizService) Answer(ctx context.Context, option int) (*AnswerResult, error) {
	return s.record(ctx, option, false)
}

func (s *quizService) Skip(ctx context.Context) (*AnswerResult, error) {
	return s.record(ctx, -1, true)
}

func (s *quizService) record(ctx context.Context, option int, skipped bool) (*AnswerResult, error) {
	var res *AnswerResult
	err := s.store.Update(ctx, func(st *models.AppState, now time.Time) error {
		if s.session == nil {
			return errNoSession
		}
		if s.viewLocked(st) == nil {
			return errors.NewConflictError("quiz session is finished")
		}
		q := st.Question(s.session.CurrentID())
		if !skipped && (option < 0 || option >= len(q.Options)) {
			return errors.NewValidationError("option", "out of range")
		}

		correct := !skipped && q.Options[option].Correct
		s.tracker.RecordAnswer(&st.Stats, q, correct, skipped, now)
		s.session.Record(correct, skipped)

		res = &AnswerResult{
			Correct:      correct,
			Skipped:      skipped,
			CorrectIndex: q.CorrectIndex(),
			Explanation:  q.Explanation,
			Streak:       q.Streak,
			Mastered:     q.Mastered(),
			Done:         s.session.Done(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug("quiz answer recorded: correct=%t, skipped=%t", res.Correct, res.Skipped)
	return res, nil
}

func (s *quizService) Summary(ctx context.Context) (*models.SessionSummary, error) {
	var sum models.SessionSummary
	err := s.store.View(ctx, func(*models.AppState, time.Time) error {
		if s.session == nil {
			return errNoSession
		}
		sum = s.session.Summary()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

func (s *quizService) Stop(ctx context.Context) error {
	return s.store.View(ctx, func(*models.AppState, time.Time) error {
		s.session = nil
		return nil
	})
}
