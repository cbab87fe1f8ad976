package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/repository"
	"github.com/vytor/mindforge/internal/repository/sqlite"
	"github.com/vytor/mindforge/internal/testutil"
)

type ReviewRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ReviewRepository
}

func (s *ReviewRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewReviewRepository(s.db)
}

func (s *ReviewRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ReviewRepositorySuite) insert(cardID string, quality int, at time.Time) int64 {
	id, err := s.repo.Insert(context.Background(), models.ReviewHistory{
		FlashcardID:  cardID,
		Quality:      quality,
		IntervalDays: 1,
		EaseFactor:   2.5,
		ReviewedAt:   at,
	})
	s.Require().NoError(err)
	s.Greater(id, int64(0))
	return id
}

func (s *ReviewRepositorySuite) TestInsertAndList() {
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	s.insert("card-a", 3, base)
	s.insert("card-a", 1, base.Add(time.Hour))
	s.insert("card-b", 2, base)

	reviews, err := s.repo.ListForFlashcard(ctx, "card-a", 10)
	s.Require().NoError(err)
	s.Require().Len(reviews, 2)
	s.Equal(1, reviews[0].Quality, "newest first")
	s.True(reviews[0].ReviewedAt.Equal(base.Add(time.Hour)))
	s.Equal("card-a", reviews[1].FlashcardID)

	limited, err := s.repo.ListForFlashcard(ctx, "card-a", 1)
	s.Require().NoError(err)
	s.Len(limited, 1)

	n, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Equal(3, n)
}

func (s *ReviewRepositorySuite) TestListUnknownCard() {
	reviews, err := s.repo.ListForFlashcard(context.Background(), "missing", 0)
	s.Require().NoError(err)
	s.Empty(reviews)
}

func (s *ReviewRepositorySuite) TestDelete() {
	ctx := context.Background()
	now := time.Now()
	s.insert("card-a", 3, now)
	s.insert("card-b", 3, now)

	s.Require().NoError(s.repo.DeleteForFlashcard(ctx, "card-a"))
	n, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	s.Require().NoError(s.repo.Clear(ctx))
	n, err = s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func TestReviewRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReviewRepositorySuite))
}
