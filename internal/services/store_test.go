package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/mindforge/internal/errors"
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/repository/sqlite"
	"github.com/vytor/mindforge/internal/services"
	"github.com/vytor/mindforge/internal/state"
	"github.com/vytor/mindforge/internal/testutil"
	"github.com/vytor/mindforge/internal/testutil/mocks"
)

func TestStore_UpdatePersistsAndNotifies(t *testing.T) {
	f := newFixture(t, 0)
	f.repo.On("Save", mock.Anything, mock.MatchedBy(func(sections map[string][]byte) bool {
		return len(sections) == len(state.Sections) && string(sections[state.SectionDailyGoal]) == "42"
	})).Return(nil).Once()
	f.notifier.On("NotifyChanged").Return().Once()

	err := f.store.Update(context.Background(), func(st *models.AppState, at time.Time) error {
		assert.Equal(t, now, at)
		st.DailyGoal = 42
		return nil
	})

	require.NoError(t, err)
	f.repo.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestStore_FailedUpdateDoesNotPersist(t *testing.T) {
	f := newFixture(t, 0)
	boom := errors.New("boom")

	err := f.store.Update(context.Background(), func(*models.AppState, time.Time) error { return boom })

	assert.ErrorIs(t, err, boom)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyChanged")
}

func TestStore_SaveFailureIsInternal(t *testing.T) {
	f := newFixture(t, 0)
	f.repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	err := f.store.Update(context.Background(), func(*models.AppState, time.Time) error { return nil })

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeInternal, appErr.Code)
	f.notifier.AssertNotCalled(t, "NotifyChanged")
}

func TestStore_LoadFailure(t *testing.T) {
	repo := new(mocks.MockStateRepository)
	repo.On("Load", mock.Anything).Return(nil, errors.New("locked"))
	store := services.NewStore(repo, &services.ChangeCounter{}, testutil.Clock(now))

	err := store.View(context.Background(), func(*models.AppState, time.Time) error { return nil })

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Status)
}

func TestChangeCounter(t *testing.T) {
	var c services.ChangeCounter
	c.NotifyChanged()
	c.NotifyChanged()
	assert.Equal(t, uint64(2), c.Version())
}

func TestStore_PersistsAcrossReloadWithSQLite(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer testutil.MustClose(t, db)
	repo := sqlite.NewStateRepository(db)
	counter := &services.ChangeCounter{}

	store := services.NewStore(repo, counter, testutil.Clock(now))
	questions := services.NewQuestionService(store)
	created, err := questions.Create(ctx, models.QuestionInput{
		Subject: "História",
		Prompt:  "Ano da independência?",
		Options: []models.Option{{Text: "1822", Correct: true}, {Text: "1889"}},
		Tags:    []string{"Brasil"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), counter.Version())

	reloaded := services.NewStore(repo, counter, testutil.Clock(now))
	require.NoError(t, reloaded.Load(ctx))
	got, err := services.NewQuestionService(reloaded).Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ano da independência?", got.Prompt)
	assert.Equal(t, []string{"brasil"}, got.Tags)
}
