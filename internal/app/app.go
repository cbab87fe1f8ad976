// Package app wires the repositories, engines and services shared by the
// HTTP server and the CLI.
package app

import (
	"context"

	"github.com/vytor/mindforge/internal/config"
	"github.com/vytor/mindforge/internal/db"
	"github.com/vytor/mindforge/internal/flashcard"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/mastery"
	"github.com/vytor/mindforge/internal/planner"
	"github.com/vytor/mindforge/internal/repository/sqlite"
	"github.com/vytor/mindforge/internal/sampler"
	"github.com/vytor/mindforge/internal/services"
)

type App struct {
	DB      *db.DB
	Store   *services.Store
	Changes *services.ChangeCounter

	Questions  services.QuestionService
	Quiz       services.QuizService
	Flashcards services.FlashcardService
	Plan       services.PlanService
	Stats      services.StatsService
	Backup     services.BackupService
}

// New opens the database, builds every service and loads the state.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx).WithPrefix("app")

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	stateRepo := sqlite.NewStateRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)
	changes := &services.ChangeCounter{}
	store := services.NewStore(stateRepo, changes, nil)

	rnd := sampler.New(cfg.RandomSeed)
	tracker := mastery.NewTracker(rnd, mastery.Config{
		RevisionBias: cfg.RevisionBias,
		SessionSize:  cfg.SessionSize,
	})
	scheduler := flashcard.NewScheduler(rnd, cfg.StudySetSize)
	plannerCfg := planner.DefaultConfig()
	plannerCfg.SafetyFactor = cfg.PlannerSafetyFactor
	plan := planner.New(rnd, plannerCfg)

	a := &App{
		DB:         database,
		Store:      store,
		Changes:    changes,
		Questions:  services.NewQuestionService(store),
		Quiz:       services.NewQuizService(store, tracker),
		Flashcards: services.NewFlashcardService(store, reviewRepo, scheduler),
		Plan:       services.NewPlanService(store, plan),
		Stats:      services.NewStatsService(store, reviewRepo),
		Backup:     services.NewBackupService(store, stateRepo, reviewRepo),
	}

	if err := store.Load(ctx); err != nil {
		log.Error("failed to load state: %v", err)
		database.Close()
		return nil, err
	}
	log.Debug("state loaded")
	return a, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}
