package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/mindforge/internal/api"
	"github.com/vytor/mindforge/internal/app"
	"github.com/vytor/mindforge/internal/config"
	"github.com/vytor/mindforge/internal/logger"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("MindForge Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("random_seed=%d", cfg.RandomSeed)
	log.Debug("session_size=%d", cfg.SessionSize)
	log.Debug("revision_bias=%.2f", cfg.RevisionBias)
	log.Debug("study_set_size=%d", cfg.StudySetSize)
	log.Debug("planner_safety_factor=%d", cfg.PlannerSafetyFactor)

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Error("failed to start: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		a.Close()
	}()

	srv := &api.Server{
		QuestionService:  a.Questions,
		QuizService:      a.Quiz,
		FlashcardService: a.Flashcards,
		PlanService:      a.Plan,
		StatsService:     a.Stats,
		BackupService:    a.Backup,
		Changes:          a.Changes,
		DB:               a.DB.DB,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("initiating graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		log.Debug("shutting down HTTP server")
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("HTTP server error: %v", err)
	}

	log.Info("===========================================")
	log.Info("MindForge Server Stopped")
	log.Info("===========================================")
}
