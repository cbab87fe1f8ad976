package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/mindforge/internal/errors"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/models"
)

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.PlanService.Get(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, plan)
}

type subjectRequest struct {
	Name         string `json:"nome"`
	HoursPerWeek int    `json:"horasPorSemana"`
}

func (s *Server) handleAddSubject(w http.ResponseWriter, r *http.Request) {
	var req subjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	subject, err := s.PlanService.AddSubject(r.Context(), req.Name, req.HoursPerWeek)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, subject)
}

func (s *Server) handleImportSubjects(w http.ResponseWriter, r *http.Request) {
	var entries []models.SubjectInput
	if err := decodeJSON(w, r, &entries); err != nil {
		handleError(w, r, err)
		return
	}
	added, err := s.PlanService.ImportSubjects(r.Context(), entries)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int{"added": added})
}

func (s *Server) handleRemoveSubject(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.PlanService.RemoveSubject(r.Context(), name, confirmer(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type generateRequest struct {
	Deadline string `json:"dataFim"`
}

// parseDeadline accepts a calendar date or an RFC 3339 timestamp.
func parseDeadline(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(models.DayKeyLayout, raw, time.Local); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.NewValidationError("dataFim", "expected YYYY-MM-DD")
	}
	return &t, nil
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		handleError(w, r, err)
		return
	}

	plan, err := s.PlanService.Generate(r.Context(), deadline)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, plan)
}

func (s *Server) handleResetPlan(w http.ResponseWriter, r *http.Request) {
	if err := s.PlanService.Reset(r.Context(), confirmer(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "week")
	if err != nil {
		handleError(w, r, err)
		return
	}
	week, err := s.PlanService.Week(r.Context(), index)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, week)
}

type markDayRequest struct {
	Completed bool `json:"isConcluido"`
}

func (s *Server) handleMarkDay(w http.ResponseWriter, r *http.Request) {
	day, err := intParam(r, "day")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req markDayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	weekID := chi.URLParam(r, "week")
	logger.FromContext(r.Context()).Debug("marking day: week=%s, day=%d, completed=%t", weekID, day, req.Completed)

	week, err := s.PlanService.MarkDayComplete(r.Context(), weekID, day, req.Completed)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, week)
}

type dayHoursRequest struct {
	Hours *float64 `json:"horas"`
}

func (s *Server) handleSetDayHours(w http.ResponseWriter, r *http.Request) {
	day, err := intParam(r, "day")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req dayHoursRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Hours == nil {
		handleError(w, r, errors.NewValidationError("horas", "is required"))
		return
	}

	week, err := s.PlanService.SetActualHours(r.Context(), chi.URLParam(r, "week"), day, *req.Hours)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, week)
}
