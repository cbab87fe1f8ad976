package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/mindforge/internal/repository"
	"github.com/vytor/mindforge/internal/repository/sqlite"
	"github.com/vytor/mindforge/internal/testutil"
)

type StateRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.StateRepository
}

func (s *StateRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStateRepository(s.db)
}

func (s *StateRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StateRepositorySuite) TestLoadEmpty() {
	sections, err := s.repo.Load(context.Background())
	s.Require().NoError(err)
	s.Empty(sections)
}

func (s *StateRepositorySuite) TestSaveAndLoad() {
	ctx := context.Background()

	err := s.repo.Save(ctx, map[string][]byte{
		"dailyGoal": []byte(`12`),
		"settings":  []byte(`{"theme":"light"}`),
	})
	s.Require().NoError(err)

	sections, err := s.repo.Load(ctx)
	s.Require().NoError(err)
	s.Len(sections, 2)
	s.JSONEq(`12`, string(sections["dailyGoal"]))
	s.JSONEq(`{"theme":"light"}`, string(sections["settings"]))
}

func (s *StateRepositorySuite) TestSaveOverwritesOnlyGivenSections() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, map[string][]byte{"dailyGoal": []byte(`12`), "settings": []byte(`{}`)}))

	s.Require().NoError(s.repo.Save(ctx, map[string][]byte{"dailyGoal": []byte(`20`)}))

	sections, err := s.repo.Load(ctx)
	s.Require().NoError(err)
	s.Equal(`20`, string(sections["dailyGoal"]))
	s.Equal(`{}`, string(sections["settings"]))

	var count int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM state_sections`).Scan(&count))
	s.Equal(2, count)
}

func (s *StateRepositorySuite) TestClear() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, map[string][]byte{"dailyGoal": []byte(`12`)}))

	s.Require().NoError(s.repo.Clear(ctx))

	sections, err := s.repo.Load(ctx)
	s.Require().NoError(err)
	s.Empty(sections)
}

func TestStateRepositorySuite(t *testing.T) {
	suite.Run(t, new(StateRepositorySuite))
}
