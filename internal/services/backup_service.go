package services

import (
	"context"
	"time"

	"github.com/vytor/mindforge/internal/errors"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/repository"
	"github.com/vytor/mindforge/internal/state"
)

// BackupService handles export, import and clearing of all data
type BackupService interface {
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte, c Confirmer) ([]string, error)
	Clear(ctx context.Context, c Confirmer) error
}

type backupService struct {
	store   *Store
	repo    repository.StateRepository
	reviews repository.ReviewRepository
}

// NewBackupService creates a new BackupService
func NewBackupService(store *Store, repo repository.StateRepository, reviews repository.ReviewRepository) BackupService {
	return &backupService{store: store, repo: repo, reviews: reviews}
}

func (s *backupService) Export(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.store.View(ctx, func(st *models.AppState, _ time.Time) error {
		var err error
		data, err = state.Export(st)
		if err != nil {
			return errors.NewInternalError(err)
		}
		return nil
	})
	return data, err
}

// Import validates the whole document before asking for confirmation,
// then replaces the sections it contains.
func (s *backupService) Import(ctx context.Context, data []byte, c Confirmer) ([]string, error) {
	log := logger.FromContext(ctx)

	patch, err := state.ParseImport(data)
	if err != nil {
		log.Warn("rejected import: %v", err)
		appErr := errors.NewBadRequestError(err.Error())
		appErr.Err = err
		return nil, appErr
	}
	if err := confirm(ctx, c, "import data"); err != nil {
		return nil, err
	}

	err = s.store.Update(ctx, func(st *models.AppState, now time.Time) error {
		patch.Apply(st, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sections := patch.Sections()
	log.Info("data imported: sections=%v", sections)
	return sections, nil
}

func (s *backupService) Clear(ctx context.Context, c Confirmer) error {
	log := logger.FromContext(ctx)
	if err := confirm(ctx, c, "clear all data"); err != nil {
		return err
	}

	err := s.store.Replace(ctx, func(time.Time) (*models.AppState, error) {
		// History first: a failure here leaves the stored sections intact.
		if err := s.reviews.Clear(ctx); err != nil {
			return nil, errors.NewInternalError(err)
		}
		if err := s.repo.Clear(ctx); err != nil {
			return nil, errors.NewInternalError(err)
		}
		return models.NewAppState(), nil
	})
	if err != nil {
		log.Error("failed to clear data: %v", err)
		return err
	}
	log.Info("all data cleared")
	return nil
}
