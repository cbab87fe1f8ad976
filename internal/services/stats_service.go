package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vytor/mindforge/internal/errors"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/repository"
	"github.com/vytor/mindforge/internal/state"
	"github.com/vytor/mindforge/internal/stats"
)

// Overview gathers the dashboard figures.
type Overview struct {
	Questions models.QuestionStat `json:"questions"`
	Deck      models.DeckStat     `json:"deck"`
	Goal      models.GoalStat     `json:"goal"`
	Summary   models.SummaryStat  `json:"summary"`
	Plan      PlanOverview        `json:"plan"`
	Settings  models.Settings     `json:"settings"`
}

type PlanOverview struct {
	Subjects int        `json:"subjects"`
	Weeks    int        `json:"weeks"`
	Deadline *time.Time `json:"deadline"`
}

// StatsService handles statistics and user settings
type StatsService interface {
	Overview(ctx context.Context) (*Overview, error)
	Summary(ctx context.Context) (*models.SummaryStat, error)
	Tags(ctx context.Context) ([]string, error)
	SetDailyGoal(ctx context.Context, raw json.RawMessage) (int, error)
	SetTheme(ctx context.Context, theme string) (*models.Settings, error)
}

type statsService struct {
	store   *Store
	reviews repository.ReviewRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(store *Store, reviews repository.ReviewRepository) StatsService {
	return &statsService{store: store, reviews: reviews}
}

func (s *statsService) Overview(ctx context.Context) (*Overview, error) {
	log := logger.FromContext(ctx)

	reviewCount, err := s.reviews.Count(ctx)
	if err != nil {
		log.Error("failed to count reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}

	var out Overview
	err = s.store.View(ctx, func(st *models.AppState, now time.Time) error {
		out = Overview{
			Questions: stats.QuestionCounts(st.Questions),
			Deck:      stats.DeckCounts(st.Flashcards, reviewCount, now),
			Goal:      stats.DailyGoal(st.Stats, st.DailyGoal, now),
			Summary:   stats.Summarize(st.Stats),
			Plan: PlanOverview{
				Subjects: len(st.Cronograma.Subjects),
				Weeks:    len(st.Cronograma.Weeks),
				Deadline: st.Cronograma.Deadline,
			},
			Settings: st.Settings,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *statsService) Summary(ctx context.Context) (*models.SummaryStat, error) {
	var out models.SummaryStat
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		out = stats.Summarize(st.Stats)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *statsService) Tags(ctx context.Context) ([]string, error) {
	var out []string
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		out = stats.UniqueTags(st.Questions, st.Flashcards)
		return nil
	})
	return out, err
}

// SetDailyGoal stores a goal given as a number or numeric string.
// Invalid values fall back to the default goal.
func (s *statsService) SetDailyGoal(ctx context.Context, raw json.RawMessage) (int, error) {
	goal := state.ParseDailyGoal(raw)
	err := s.store.Update(ctx, func(st *models.AppState, _ time.Time) error {
		st.DailyGoal = goal
		return nil
	})
	if err != nil {
		return 0, err
	}
	logger.FromContext(ctx).Info("daily goal set: %d", goal)
	return goal, nil
}

func (s *statsService) SetTheme(ctx context.Context, theme string) (*models.Settings, error) {
	if theme != models.ThemeDark && theme != models.ThemeLight {
		return nil, errors.NewValidationError("theme", "must be dark or light")
	}
	var out models.Settings
	err := s.store.Update(ctx, func(st *models.AppState, _ time.Time) error {
		st.Settings.Theme = theme
		out = st.Settings
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
