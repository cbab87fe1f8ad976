package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vytor/mindforge/internal/errors"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/models"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.BackupService.Export(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	filename := fmt.Sprintf("mindforge-backup-%s.json", time.Now().Format(models.DayKeyLayout))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Warn("failed to read import body: %v", err)
		handleError(w, r, errors.NewBadRequestError("failed to read request body"))
		return
	}

	sections, err := s.BackupService.Import(r.Context(), data, confirmer(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string][]string{"imported": sections})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.BackupService.Clear(r.Context(), confirmer(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
