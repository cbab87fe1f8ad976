package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/mindforge/internal/errors"
	"github.com/vytor/mindforge/internal/flashcard"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/mastery"
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/repository"
)

// StudyView is the card under the study cursor. Back is only set once
// the card has been flipped.
type StudyView struct {
	ID        string   `json:"id"`
	Front     string   `json:"frente"`
	Back      string   `json:"verso,omitempty"`
	Subject   string   `json:"disciplina"`
	Tags      []string `json:"tags"`
	Flipped   bool     `json:"flipped"`
	Index     int      `json:"index"`
	Total     int      `json:"total"`
	Remaining int      `json:"remaining"`
}

// ReviewResult is the new schedule of a reviewed card.
type ReviewResult struct {
	Card models.Flashcard `json:"card"`
	Done bool             `json:"done"`
}

// FlashcardService handles the deck and study sessions
type FlashcardService interface {
	List(ctx context.Context, tag string) ([]models.Flashcard, error)
	Create(ctx context.Context, in models.FlashcardInput) (*models.Flashcard, error)
	Update(ctx context.Context, id string, in models.FlashcardInput) (*models.Flashcard, error)
	Delete(ctx context.Context, id string, c Confirmer) error
	Due(ctx context.Context) ([]models.Flashcard, error)
	History(ctx context.Context, id string, limit int) ([]models.ReviewHistory, error)

	StartStudy(ctx context.Context, tag string) (*StudyView, error)
	CurrentStudy(ctx context.Context) (*StudyView, error)
	Flip(ctx context.Context) (*StudyView, error)
	Review(ctx context.Context, quality int) (*ReviewResult, error)
}

type flashcardService struct {
	store     *Store
	reviews   repository.ReviewRepository
	scheduler *flashcard.Scheduler
	session   *flashcard.Session
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(store *Store, reviews repository.ReviewRepository, scheduler *flashcard.Scheduler) FlashcardService {
	return &flashcardService{store: store, reviews: reviews, scheduler: scheduler}
}

func copyCards(cards []*models.Flashcard, keep func(*models.Flashcard) bool) []models.Flashcard {
	out := make([]models.Flashcard, 0, len(cards))
	for _, c := range cards {
		if keep(c) {
			out = append(out, *c)
		}
	}
	return out
}

func (s *flashcardService) List(ctx context.Context, tag string) ([]models.Flashcard, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	var out []models.Flashcard
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		out = copyCards(st.Flashcards, func(c *models.Flashcard) bool { return tag == "" || c.HasTag(tag) })
		return nil
	})
	return out, err
}

func (s *flashcardService) Due(ctx context.Context) ([]models.Flashcard, error) {
	var out []models.Flashcard
	err := s.store.View(ctx, func(st *models.AppState, now time.Time) error {
		out = copyCards(flashcard.DueCards(st.Flashcards, now), func(*models.Flashcard) bool { return true })
		return nil
	})
	return out, err
}

func cleanCardInput(in models.FlashcardInput) (models.FlashcardInput, error) {
	in.Front = strings.TrimSpace(in.Front)
	in.Back = strings.TrimSpace(in.Back)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Tags = mastery.NormalizeTags(in.Tags)
	if in.Front == "" {
		return in, errors.NewValidationError("frente", "is required")
	}
	if in.Back == "" {
		return in, errors.NewValidationError("verso", "is required")
	}
	return in, nil
}

func (s *flashcardService) Create(ctx context.Context, in models.FlashcardInput) (*models.Flashcard, error) {
	in, err := cleanCardInput(in)
	if err != nil {
		return nil, err
	}
	var out models.Flashcard
	err = s.store.Update(ctx, func(st *models.AppState, now time.Time) error {
		card := flashcard.NewCard(uuid.NewString(), in, now)
		st.Flashcards = append(st.Flashcards, card)
		out = *card
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("flashcard created: id=%s", out.ID)
	return &out, nil
}

// Update edits the content of a card; its schedule is kept.
func (s *flashcardService) Update(ctx context.Context, id string, in models.FlashcardInput) (*models.Flashcard, error) {
	in, err := cleanCardInput(in)
	if err != nil {
		return nil, err
	}
	var out models.Flashcard
	err = s.store.Update(ctx, func(st *models.AppState, _ time.Time) error {
		card := st.Flashcard(id)
		if card == nil {
			return errors.NewNotFoundError("flashcard", id)
		}
		card.Front, card.Back, card.Subject, card.Tags = in.Front, in.Back, in.Subject, in.Tags
		out = *card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *flashcardService) Delete(ctx context.Context, id string, c Confirmer) error {
	if err := confirm(ctx, c, "delete flashcard"); err != nil {
		return err
	}
	err := s.store.Update(ctx, func(st *models.AppState, _ time.Time) error {
		for i, card := range st.Flashcards {
			if card.ID == id {
				st.Flashcards = append(st.Flashcards[:i], st.Flashcards[i+1:]...)
				return nil
			}
		}
		return errors.NewNotFoundError("flashcard", id)
	})
	if err != nil {
		return err
	}
	if err := s.reviews.DeleteForFlashcard(ctx, id); err != nil {
		logger.FromContext(ctx).Warn("failed to delete review history: flashcard_id=%s, err=%v", id, err)
	}
	return nil
}

func (s *flashcardService) History(ctx context.Context, id string, limit int) ([]models.ReviewHistory, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	history, err := s.reviews.ListForFlashcard(ctx, id, limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return history, nil
}

func (s *flashcardService) find(ctx context.Context, id string) (*models.Flashcard, error) {
	var out *models.Flashcard
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		c := st.Flashcard(id)
		if c == nil {
			return errors.NewNotFoundError("flashcard", id)
		}
		cp := *c
		out = &cp
		return nil
	})
	return out, err
}

var errNoStudy = errors.NewConflictError("no study session in progress")

func (s *flashcardService) StartStudy(ctx context.Context, tag string) (*StudyView, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	var view *StudyView
	err := s.store.View(ctx, func(st *models.AppState, now time.Time) error {
		set, err := s.scheduler.BuildStudySet(st.Flashcards, tag, now)
		if err != nil {
			return domainError(err)
		}
		s.session = flashcard.NewSession(set)
		logger.FromContext(ctx).Info("study session started: cards=%d, tag=%q", len(set), tag)
		view = s.viewLocked(st)
		return nil
	})
	return view, err
}

func (s *flashcardService) CurrentStudy(ctx context.Context) (*StudyView, error) {
	var view *StudyView
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		if s.session == nil {
			return errNoStudy
		}
		view = s.viewLocked(st)
		return nil
	})
	return view, err
}

func (s *flashcardService) Flip(ctx context.Context) (*StudyView, error) {
	var view *StudyView
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		if s.session == nil {
			return errNoStudy
		}
		if s.viewLocked(st) == nil {
			return errors.NewConflictError("study session is finished")
		}
		s.session.Flip()
		view = s.viewLocked(st)
		return nil
	})
	return view, err
}

// viewLocked skips cards deleted mid-session and discards the session
// once every card was seen.
func (s *flashcardService) viewLocked(st *models.AppState) *StudyView {
	for !s.session.Done() {
		c := st.Flashcard(s.session.Current())
		if c == nil {
			s.session.Advance()
			continue
		}
		v := &StudyView{
			ID:        c.ID,
			Front:     c.Front,
			Subject:   c.Subject,
			Tags:      c.Tags,
			Flipped:   s.session.Flipped,
			Index:     s.session.Index,
			Total:     len(s.session.IDs),
			Remaining: s.session.Remaining(),
		}
		if s.session.Flipped {
			v.Back = c.Back
		}
		return v
	}
	s.session = nil
	return nil
}

func (s *flashcardService) Review(ctx context.Context, quality int) (*ReviewResult, error) {
	log := logger.FromContext(ctx)
	var res *ReviewResult
	err := s.store.Update(ctx, func(st *models.AppState, now time.Time) error {
		if s.session == nil {
			return errNoStudy
		}
		if s.viewLocked(st) == nil {
			return errors.NewConflictError("study session is finished")
		}
		card := st.Flashcard(s.session.Current())
		updated, err := flashcard.ApplyReview(*card, quality, now)
		if err != nil {
			return domainError(err)
		}
		*card = updated
		if flashcard.CountsTowardProgress(quality) {
			st.Stats.AddDailyProgress(now)
		}
		s.session.Advance()
		res = &ReviewResult{Card: updated}
		res.Done = s.viewLocked(st) == nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = s.reviews.Insert(ctx, models.ReviewHistory{
		FlashcardID:  res.Card.ID,
		Quality:      quality,
		IntervalDays: res.Card.Interval,
		EaseFactor:   res.Card.EaseFactor,
		ReviewedAt:   s.store.Now(),
	})
	if err != nil {
		log.Warn("failed to record review history: flashcard_id=%s, err=%v", res.Card.ID, err)
	}
	log.Debug("flashcard reviewed: id=%s, quality=%d, interval=%d", res.Card.ID, quality, res.Card.Interval)
	return res, nil
}
