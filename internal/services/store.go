package services

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vytor/mindforge/internal/errors"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/repository"
	"github.com/vytor/mindforge/internal/state"
)

// Notifier is told after every persisted change so presentation layers
// can refresh.
type Notifier interface {
	NotifyChanged()
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, action string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, action string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, action string) bool { return f(ctx, action) }

// Confirmed approves every action.
var Confirmed Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

// Declined rejects every action.
var Declined Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })

// ChangeCounter is a Notifier that counts changes.
type ChangeCounter struct {
	n atomic.Uint64
}

func (c *ChangeCounter) NotifyChanged() { c.n.Add(1) }

// Version returns the number of changes seen so far.
func (c *ChangeCounter) Version() uint64 { return c.n.Load() }

// ErrCancelled is the cause of every declined confirmation.
var ErrCancelled = stderrors.New("cancelled by user")

// errUnchanged aborts an update that had nothing to do. Nothing is
// persisted and no error reaches the caller.
var errUnchanged = stderrors.New("unchanged")

// Store owns the AppState and serializes every operation on it.
type Store struct {
	mu       sync.Mutex
	repo     repository.StateRepository
	notifier Notifier
	now      func() time.Time
	state    *models.AppState
}

func NewStore(repo repository.StateRepository, notifier Notifier, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{repo: repo, notifier: notifier, now: now}
}

// Load reads the persisted sections and replaces the in-memory state.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) error {
	sections, err := s.repo.Load(ctx)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("store").Error("failed to load state: %v", err)
		return errors.NewInternalError(err)
	}
	s.state = state.Decode(ctx, sections, s.now())
	return nil
}

// Now returns the injected clock's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// View runs fn with the state locked. fn must not mutate it.
func (s *Store) View(ctx context.Context, fn func(st *models.AppState, now time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		if err := s.loadLocked(ctx); err != nil {
			return err
		}
	}
	return fn(s.state, s.now())
}

// Update runs fn with the state locked, then persists every section and
// notifies. When fn fails nothing is persisted; fn must leave the state
// untouched in that case.
func (s *Store) Update(ctx context.Context, fn func(st *models.AppState, now time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		if err := s.loadLocked(ctx); err != nil {
			return err
		}
	}
	if err := fn(s.state, s.now()); err != nil {
		if stderrors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	return s.persistLocked(ctx)
}

// Replace swaps the whole state, e.g. after clearing all data.
func (s *Store) Replace(ctx context.Context, fn func(now time.Time) (*models.AppState, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.now())
	if err != nil {
		return err
	}
	s.state = next
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("store")
	sections, err := state.Encode(s.state)
	if err != nil {
		log.Error("failed to encode state: %v", err)
		return errors.NewInternalError(err)
	}
	if err := s.repo.Save(ctx, sections); err != nil {
		log.Error("failed to persist state: %v", err)
		return errors.NewInternalError(err)
	}
	if s.notifier != nil {
		s.notifier.NotifyChanged()
	}
	return nil
}

// confirm asks c for approval of action. A nil Confirmer declines.
func confirm(ctx context.Context, c Confirmer, action string) error {
	if c == nil || !c.Confirm(ctx, action) {
		logger.FromContext(ctx).Info("%s cancelled by user", action)
		appErr := errors.NewCancelledError(action)
		appErr.Err = ErrCancelled
		return appErr
	}
	return nil
}

// domainError maps a rejected domain operation to an AppError.
func domainError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	for _, nf := range notFoundCauses {
		if stderrors.Is(err, nf) {
			return &errors.AppError{Code: errors.ErrCodeNotFound, Message: err.Error(), Status: 404, Err: err}
		}
	}
	return errors.NewDomainError(err)
}
