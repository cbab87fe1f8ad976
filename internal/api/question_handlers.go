package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/models"
)

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.QuestionService.List(r.Context(), tagQuery(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, questions)
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := s.QuestionService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var in models.QuestionInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, err)
		return
	}
	q, err := s.QuestionService.Create(r.Context(), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, q)
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var in models.QuestionInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, err)
		return
	}
	q, err := s.QuestionService.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.QuestionService.Delete(r.Context(), chi.URLParam(r, "id"), confirmer(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type masteryRequest struct {
	Mastered bool `json:"mastered"`
}

func (s *Server) handleSetMastery(w http.ResponseWriter, r *http.Request) {
	var req masteryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	logger.FromContext(r.Context()).Debug("setting mastery: id=%s, mastered=%t", id, req.Mastered)
	q, err := s.QuestionService.SetMastery(r.Context(), id, req.Mastered)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}
