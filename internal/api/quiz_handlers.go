package api

import (
	"net/http"

	"github.com/vytor/mindforge/internal/errors"
)

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := s.QuizService.Start(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleCurrentQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := s.QuizService.Current(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

type answerRequest struct {
	Option *int `json:"option"`
}

func (s *Server) handleAnswerQuiz(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Option == nil {
		handleError(w, r, errors.NewBadRequestError("option is required"))
		return
	}
	res, err := s.QuizService.Answer(r.Context(), *req.Option)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleSkipQuiz(w http.ResponseWriter, r *http.Request) {
	res, err := s.QuizService.Skip(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleQuizSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.QuizService.Summary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sum)
}

func (s *Server) handleStopQuiz(w http.ResponseWriter, r *http.Request) {
	if err := s.QuizService.Stop(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
