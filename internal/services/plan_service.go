package services

import (
	"context"
	"time"

	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/planner"
)

var notFoundCauses = []error{planner.ErrWeekNotFound, planner.ErrSubjectMissing}

// PlanService handles the study calendar
type PlanService interface {
	Get(ctx context.Context) (*models.Cronograma, error)
	AddSubject(ctx context.Context, name string, hours int) (*models.Subject, error)
	RemoveSubject(ctx context.Context, name string, c Confirmer) error
	ImportSubjects(ctx context.Context, entries []models.SubjectInput) (int, error)
	Generate(ctx context.Context, deadline *time.Time) (*models.Cronograma, error)
	Week(ctx context.Context, index int) (*models.WeekBlock, error)
	MarkDayComplete(ctx context.Context, weekID string, day int, completed bool) (*models.WeekBlock, error)
	SetActualHours(ctx context.Context, weekID string, day int, hours float64) (*models.WeekBlock, error)
	Reset(ctx context.Context, c Confirmer) error
}

type planService struct {
	store   *Store
	planner *planner.Planner
}

// NewPlanService creates a new PlanService
func NewPlanService(store *Store, p *planner.Planner) PlanService {
	return &planService{store: store, planner: p}
}

// cloneCronograma copies the slices the planner rewrites in place, so
// callers can read the result after the lock is released.
func cloneCronograma(c models.Cronograma) models.Cronograma {
	subjects := make([]models.Subject, len(c.Subjects))
	copy(subjects, c.Subjects)
	weeks := make([]models.WeekBlock, len(c.Weeks))
	copy(weeks, c.Weeks)
	c.Subjects, c.Weeks = subjects, weeks
	return c
}

func (s *planService) Get(ctx context.Context) (*models.Cronograma, error) {
	var out models.Cronograma
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		out = cloneCronograma(st.Cronograma)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *planService) AddSubject(ctx context.Context, name string, hours int) (*models.Subject, error) {
	var out models.Subject
	err := s.store.Update(ctx, func(st *models.AppState, _ time.Time) error {
		sub, err := planner.AddSubject(&st.Cronograma, name, hours)
		if err != nil {
			return domainError(err)
		}
		out = *sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("subject added: name=%s, hours=%d", out.Name, out.HoursPerWeek)
	return &out, nil
}

func (s *planService) RemoveSubject(ctx context.Context, name string, c Confirmer) error {
	if err := confirm(ctx, c, "remove subject"); err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *models.AppState, _ time.Time) error {
		if err := planner.RemoveSubject(&st.Cronograma, name); err != nil {
			return domainError(err)
		}
		return nil
	})
}

func (s *planService) ImportSubjects(ctx context.Context, entries []models.SubjectInput) (int, error) {
	var added int
	err := s.store.Update(ctx, func(st *models.AppState, _ time.Time) error {
		added = planner.ImportSubjects(&st.Cronograma, entries)
		if added == 0 {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logger.FromContext(ctx).Info("subjects imported: %d of %d", added, len(entries))
	return added, nil
}

func (s *planService) Generate(ctx context.Context, deadline *time.Time) (*models.Cronograma, error) {
	var out models.Cronograma
	err := s.store.Update(ctx, func(st *models.AppState, now time.Time) error {
		if err := s.planner.Generate(&st.Cronograma, deadline, now); err != nil {
			return domainError(err)
		}
		out = cloneCronograma(st.Cronograma)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("plan generated: weeks=%d", len(out.Weeks))
	return &out, nil
}

func (s *planService) Week(ctx context.Context, index int) (*models.WeekBlock, error) {
	var out models.WeekBlock
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		w, err := planner.WeekAt(&st.Cronograma, index)
		if err != nil {
			return domainError(err)
		}
		out = *w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *planService) MarkDayComplete(ctx context.Context, weekID string, day int, completed bool) (*models.WeekBlock, error) {
	var out models.WeekBlock
	err := s.store.Update(ctx, func(st *models.AppState, _ time.Time) error {
		changed, err := planner.MarkDayComplete(&st.Cronograma, weekID, day, completed)
		if err != nil {
			return domainError(err)
		}
		out = *st.Cronograma.Week(weekID)
		if !changed {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *planService) SetActualHours(ctx context.Context, weekID string, day int, hours float64) (*models.WeekBlock, error) {
	var out models.WeekBlock
	err := s.store.Update(ctx, func(st *models.AppState, _ time.Time) error {
		if err := planner.SetActualHours(&st.Cronograma, weekID, day, hours); err != nil {
			return domainError(err)
		}
		out = *st.Cronograma.Week(weekID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *planService) Reset(ctx context.Context, c Confirmer) error {
	if err := confirm(ctx, c, "reset plan"); err != nil {
		return err
	}
	err := s.store.Update(ctx, func(st *models.AppState, _ time.Time) error {
		planner.Reset(&st.Cronograma)
		return nil
	})
	if err == nil {
		logger.FromContext(ctx).Info("plan reset")
	}
	return err
}
