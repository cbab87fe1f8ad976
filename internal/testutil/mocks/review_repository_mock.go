package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/mindforge/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Insert(ctx context.Context, review models.ReviewHistory) (int64, error) {
	args := m.Called(ctx, review)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) ListForFlashcard(ctx context.Context, flashcardID string, limit int) ([]models.ReviewHistory, error) {
	args := m.Called(ctx, flashcardID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewHistory), args.Error(1)
}

func (m *MockReviewRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewRepository) DeleteForFlashcard(ctx context.Context, flashcardID string) error {
	args := m.Called(ctx, flashcardID)
	return args.Error(0)
}

func (m *MockReviewRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
