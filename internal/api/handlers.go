package api

import (
	"database/sql"
	"net/http"

	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/services"
)

type Server struct {
	QuestionService  services.QuestionService
	QuizService      services.QuizService
	FlashcardService services.FlashcardService
	PlanService      services.PlanService
	StatsService     services.StatsService
	BackupService    services.BackupService
	Changes          *services.ChangeCounter
	DB               *sql.DB
}

// versionResponse lets clients poll for changes made elsewhere.
type versionResponse struct {
	Version uint64 `json:"version"`
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	var v uint64
	if s.Changes != nil {
		v = s.Changes.Version()
	}
	writeJSON(w, r, http.StatusOK, versionResponse{Version: v})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Debug("building overview")
	overview, err := s.StatsService.Overview(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.StatsService.Tags(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"tags": tags})
}
