package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/mindforge/internal/errors"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/mastery"
	"github.com/vytor/mindforge/internal/models"
)

// QuestionService handles the question bank
type QuestionService interface {
	List(ctx context.Context, tag string) ([]models.Question, error)
	Get(ctx context.Context, id string) (*models.Question, error)
	Create(ctx context.Context, in models.QuestionInput) (*models.Question, error)
	Update(ctx context.Context, id string, in models.QuestionInput) (*models.Question, error)
	Delete(ctx context.Context, id string, c Confirmer) error
	SetMastery(ctx context.Context, id string, mastered bool) (*models.Question, error)
}

type questionService struct {
	store *Store
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(store *Store) QuestionService {
	return &questionService{store: store}
}

func (s *questionService) List(ctx context.Context, tag string) ([]models.Question, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	var out []models.Question
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		out = make([]models.Question, 0, len(st.Questions))
		for _, q := range st.Questions {
			if tag == "" || q.HasTag(tag) {
				out = append(out, *q)
			}
		}
		return nil
	})
	return out, err
}

func (s *questionService) Get(ctx context.Context, id string) (*models.Question, error) {
	var out *models.Question
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		q := st.Question(id)
		if q == nil {
			return errors.NewNotFoundError("question", id)
		}
		cp := *q
		out = &cp
		return nil
	})
	return out, err
}

func buildQuestion(in models.QuestionInput) (models.Question, error) {
	q := models.Question{
		Subject:     strings.TrimSpace(in.Subject),
		Prompt:      strings.TrimSpace(in.Prompt),
		Explanation: strings.TrimSpace(in.Explanation),
		Tags:        mastery.NormalizeTags(in.Tags),
		Options:     make([]models.Option, len(in.Options)),
	}
	for i, o := range in.Options {
		q.Options[i] = models.Option{Text: strings.TrimSpace(o.Text), Correct: o.Correct}
	}
	if q.Prompt == "" {
		return q, errors.NewValidationError("enunciado", "is required")
	}
	if err := mastery.ValidateQuestion(&q); err != nil {
		return q, domainError(err)
	}
	return q, nil
}

func (s *questionService) Create(ctx context.Context, in models.QuestionInput) (*models.Question, error) {
	log := logger.FromContext(ctx)
	q, err := buildQuestion(in)
	if err != nil {
		return nil, err
	}

	var out models.Question
	err = s.store.Update(ctx, func(st *models.AppState, now time.Time) error {
		q.ID = uuid.NewString()
		q.CreatedAt = now
		q.LastReview = now
		created := q
		st.Questions = append(st.Questions, &created)
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("question created: id=%s", out.ID)
	return &out, nil
}

// Update replaces the content of a question, keeping its creation date
// and streak.
func (s *questionService) Update(ctx context.Context, id string, in models.QuestionInput) (*models.Question, error) {
	q, err := buildQuestion(in)
	if err != nil {
		return nil, err
	}

	var out models.Question
	err = s.store.Update(ctx, func(st *models.AppState, now time.Time) error {
		existing := st.Question(id)
		if existing == nil {
			return errors.NewNotFoundError("question", id)
		}
		existing.Subject = q.Subject
		existing.Prompt = q.Prompt
		existing.Options = q.Options
		existing.Explanation = q.Explanation
		existing.Tags = q.Tags
		existing.LastReview = now
		out = *existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *questionService) Delete(ctx context.Context, id string, c Confirmer) error {
	if err := confirm(ctx, c, "delete question"); err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *models.AppState, _ time.Time) error {
		for i, q := range st.Questions {
			if q.ID == id {
				st.Questions = append(st.Questions[:i], st.Questions[i+1:]...)
				return nil
			}
		}
		return errors.NewNotFoundError("question", id)
	})
}

func (s *questionService) SetMastery(ctx context.Context, id string, mastered bool) (*models.Question, error) {
	var out models.Question
	err := s.store.Update(ctx, func(st *models.AppState, now time.Time) error {
		q := st.Question(id)
		if q == nil {
			return errors.NewNotFoundError("question", id)
		}
		mastery.ForceMastery(q, mastered, now)
		out = *q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
