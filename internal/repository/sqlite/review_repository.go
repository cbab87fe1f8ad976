package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Insert(ctx context.Context, h models.ReviewHistory) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting review: flashcard_id=%s, quality=%d", h.FlashcardID, h.Quality)

	query, args, err := sqlBuilder.
		Insert("review_history").
		Columns("flashcard_id", "quality", "interval_days", "ease_factor", "reviewed_at").
		Values(h.FlashcardID, h.Quality, h.IntervalDays, h.EaseFactor, h.ReviewedAt.UTC()).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert review: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get review id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *reviewRepository) ListForFlashcard(ctx context.Context, flashcardID string, limit int) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews: flashcard_id=%s, limit=%d", flashcardID, limit)

	if limit <= 0 {
		limit = 50
	}
	query, args, err := sqlBuilder.
		Select("id", "flashcard_id", "quality", "interval_days", "ease_factor", "reviewed_at").
		From("review_history").
		Where(squirrel.Eq{"flashcard_id": flashcardID}).
		OrderBy("reviewed_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return nil, err
	}
	defer rows.Close()
	reviews := []models.ReviewHistory{}
	for rows.Next() {
		var h models.ReviewHistory
		if err := rows.Scan(&h.ID, &h.FlashcardID, &h.Quality, &h.IntervalDays, &h.EaseFactor, &h.ReviewedAt); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		reviews = append(reviews, h)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) Count(ctx context.Context) (int, error) {
	query, args, err := sqlBuilder.Select("COUNT(*)").From("review_history").ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContext(ctx).WithPrefix("review_repo").Error("failed to count reviews: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *reviewRepository) DeleteForFlashcard(ctx context.Context, flashcardID string) error {
	query, args, err := sqlBuilder.Delete("review_history").Where(squirrel.Eq{"flashcard_id": flashcardID}).ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("review_repo").Error("failed to delete reviews: %v", err)
	}
	return err
}

func (r *reviewRepository) Clear(ctx context.Context) error {
	query, args, err := sqlBuilder.Delete("review_history").ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
