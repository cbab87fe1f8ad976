package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/mindforge/internal/errors"
	"github.com/vytor/mindforge/internal/flashcard"
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/services"
)

func TestFlashcardService_CreateRequiresBothSides(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	for _, in := range []models.FlashcardInput{{Front: "só frente"}, {Back: "só verso"}} {
		_, err := f.cards.Create(ctx, in)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	}
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFlashcardService_StudyAndReview(t *testing.T) {
	f := newFixture(t, 0)
	f.expectPersist()
	ctx := context.Background()

	card, err := f.cards.Create(ctx, models.FlashcardInput{Front: "Capital da França", Back: "Paris", Tags: []string{"Geo"}})
	require.NoError(t, err)
	assert.Equal(t, now, card.DueAt)
	assert.Equal(t, flashcard.DefaultEaseFactor, card.EaseFactor)
	assert.Equal(t, []string{"geo"}, card.Tags)

	due, err := f.cards.Due(ctx)
	require.NoError(t, err)
	assert.Len(t, due, 1)

	view, err := f.cards.StartStudy(ctx, "geo")
	require.NoError(t, err)
	assert.Equal(t, card.ID, view.ID)
	assert.Empty(t, view.Back)

	view, err = f.cards.Flip(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Paris", view.Back)

	view, err = f.cards.Flip(ctx)
	require.NoError(t, err)
	assert.False(t, view.Flipped)
	assert.Empty(t, view.Back)

	f.reviews.On("Insert", mock.Anything, mock.MatchedBy(func(h models.ReviewHistory) bool {
		return h.FlashcardID == card.ID && h.Quality == 3 && h.IntervalDays == 1
	})).Return(int64(1), nil).Once()

	res, err := f.cards.Review(ctx, flashcard.QualityEasy)
	require.NoError(t, err)
	assert.True(t, res.Done)
	assert.Equal(t, 1, res.Card.Interval)
	assert.InDelta(t, 2.6, res.Card.EaseFactor, 1e-9)
	assert.Equal(t, now.AddDate(0, 0, 1), res.Card.DueAt)
	f.reviews.AssertExpectations(t)

	f.reviews.On("Count", mock.Anything).Return(1, nil)
	overview, err := f.stats.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, overview.Goal.Done, "good answers count toward the daily goal")
	assert.Equal(t, 0, overview.Deck.CardsDue)
	assert.Equal(t, 1, overview.Deck.TotalReviews)

	_, err = f.cards.CurrentStudy(ctx)
	assert.Error(t, err, "finished session is discarded")
}

func TestFlashcardService_ReviewRejectsInvalidQuality(t *testing.T) {
	f := newFixture(t, 0)
	f.expectPersist()
	ctx := context.Background()
	_, err := f.cards.Create(ctx, models.FlashcardInput{Front: "f", Back: "b"})
	require.NoError(t, err)
	_, err = f.cards.StartStudy(ctx, "")
	require.NoError(t, err)

	_, err = f.cards.Review(ctx, 5)
	assert.ErrorIs(t, err, flashcard.ErrInvalidQuality)
	f.reviews.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestFlashcardService_StudyWithNothingToStudy(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.cards.StartStudy(context.Background(), "")

	assert.ErrorIs(t, err, flashcard.ErrNothingToStudy)
}

func TestFlashcardService_DeleteDropsHistory(t *testing.T) {
	f := newFixture(t, 0)
	f.expectPersist()
	ctx := context.Background()
	card, err := f.cards.Create(ctx, models.FlashcardInput{Front: "f", Back: "b"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.cards.Delete(ctx, card.ID, services.Declined), services.ErrCancelled)

	f.reviews.On("DeleteForFlashcard", mock.Anything, card.ID).Return(nil).Once()
	require.NoError(t, f.cards.Delete(ctx, card.ID, services.Confirmed))
	list, err := f.cards.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
	f.reviews.AssertExpectations(t)
}
