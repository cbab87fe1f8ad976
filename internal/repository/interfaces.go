package repository

import (
	"context"

	"github.com/vytor/mindforge/internal/models"
)

// StateRepository stores the persisted state as raw JSON sections keyed
// by section name.
type StateRepository interface {
	Load(ctx context.Context) (map[string][]byte, error)
	// Save upserts every given section in one transaction.
	Save(ctx context.Context, sections map[string][]byte) error
	Clear(ctx context.Context) error
}

// ReviewRepository handles flashcard review history
type ReviewRepository interface {
	Insert(ctx context.Context, review models.ReviewHistory) (int64, error)
	ListForFlashcard(ctx context.Context, flashcardID string, limit int) ([]models.ReviewHistory, error)
	Count(ctx context.Context) (int, error)
	DeleteForFlashcard(ctx context.Context, flashcardID string) error
	Clear(ctx context.Context) error
}
