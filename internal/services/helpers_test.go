package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/mindforge/internal/flashcard"
	"github.com/vytor/mindforge/internal/mastery"
	"github.com/vytor/mindforge/internal/planner"
	"github.com/vytor/mindforge/internal/services"
	"github.com/vytor/mindforge/internal/testutil"
	"github.com/vytor/mindforge/internal/testutil/mocks"
)

// Saturday afternoon.
var now = time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)

// stubSampler keeps input order and always draws the same value.
type stubSampler struct{ draw float64 }

func (s stubSampler) Shuffle(int, func(i, j int)) {}
func (s stubSampler) Float64() float64            { return s.draw }

type fixture struct {
	repo     *mocks.MockStateRepository
	reviews  *mocks.MockReviewRepository
	notifier *mocks.MockNotifier
	store    *services.Store

	questions services.QuestionService
	quiz      services.QuizService
	cards     services.FlashcardService
	plan      services.PlanService
	stats     services.StatsService
	backup    services.BackupService
}

// newFixture wires every service over mocks. draw steers the sampler:
// below 0.7 favours revision sessions.
func newFixture(t *testing.T, draw float64) *fixture {
	t.Helper()
	f := &fixture{
		repo:     new(mocks.MockStateRepository),
		reviews:  new(mocks.MockReviewRepository),
		notifier: new(mocks.MockNotifier),
	}
	f.repo.On("Load", mock.Anything).Return(map[string][]byte{}, nil).Maybe()
	f.store = services.NewStore(f.repo, f.notifier, testutil.Clock(now))

	s := stubSampler{draw: draw}
	f.questions = services.NewQuestionService(f.store)
	f.quiz = services.NewQuizService(f.store, mastery.NewTracker(s, mastery.DefaultConfig()))
	f.cards = services.NewFlashcardService(f.store, f.reviews, flashcard.NewScheduler(s, flashcard.DefaultStudySetSize))
	f.plan = services.NewPlanService(f.store, planner.New(s, planner.DefaultConfig()))
	f.stats = services.NewStatsService(f.store, f.reviews)
	f.backup = services.NewBackupService(f.store, f.repo, f.reviews)
	return f
}

// expectPersist allows any number of saves and notifications.
func (f *fixture) expectPersist() {
	f.repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("NotifyChanged").Return()
}
