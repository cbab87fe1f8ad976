package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))

		r.Get("/version", s.handleVersion)
		r.Get("/overview", s.handleOverview)
		r.Get("/tags", s.handleTags)

		r.Route("/questions", func(r chi.Router) {
			r.Get("/", s.handleListQuestions)
			r.Post("/", s.handleCreateQuestion)
			r.Get("/{id}", s.handleGetQuestion)
			r.Put("/{id}", s.handleUpdateQuestion)
			r.Delete("/{id}", s.handleDeleteQuestion)
			r.Post("/{id}/mastery", s.handleSetMastery)
		})

		r.Route("/quiz", func(r chi.Router) {
			r.Post("/start", s.handleStartQuiz)
			r.Get("/current", s.handleCurrentQuiz)
			r.Post("/answer", s.handleAnswerQuiz)
			r.Post("/skip", s.handleSkipQuiz)
			r.Get("/summary", s.handleQuizSummary)
			r.Post("/stop", s.handleStopQuiz)
		})

		r.Route("/flashcards", func(r chi.Router) {
			r.Get("/", s.handleListFlashcards)
			r.Post("/", s.handleCreateFlashcard)
			r.Get("/due", s.handleDueFlashcards)
			r.Put("/{id}", s.handleUpdateFlashcard)
			r.Delete("/{id}", s.handleDeleteFlashcard)
			r.Get("/{id}/history", s.handleFlashcardHistory)
		})

		r.Route("/study", func(r chi.Router) {
			r.Post("/start", s.handleStartStudy)
			r.Get("/current", s.handleCurrentStudy)
			r.Post("/flip", s.handleFlipCard)
			r.Post("/answer", s.handleReviewCard)
		})

		r.Route("/plan", func(r chi.Router) {
			r.Get("/", s.handleGetPlan)
			r.Post("/subjects", s.handleAddSubject)
			r.Post("/subjects/import", s.handleImportSubjects)
			r.Delete("/subjects/{name}", s.handleRemoveSubject)
			r.Post("/generate", s.handleGeneratePlan)
			r.Post("/reset", s.handleResetPlan)
			// {week} is the list index on GET and the week ID below it.
			r.Get("/weeks/{week}", s.handleGetWeek)
			r.Post("/weeks/{week}/days/{day}/complete", s.handleMarkDay)
			r.Put("/weeks/{week}/days/{day}/hours", s.handleSetDayHours)
		})

		r.Get("/stats", s.handleStats)
		r.Put("/goal", s.handleSetGoal)
		r.Put("/settings/theme", s.handleSetTheme)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Post("/clear", s.handleClear)
	})

	return r
}
