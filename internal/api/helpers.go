package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/mindforge/internal/errors"
	"github.com/vytor/mindforge/internal/logger"
	"github.com/vytor/mindforge/internal/services"
)

// maxBodyBytes bounds request bodies, including full imports.
const maxBodyBytes = 10 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromContext(r.Context()).Warn("invalid request body: %v", err)
		appErr := errors.NewBadRequestError("invalid JSON body")
		appErr.Err = err
		return appErr
	}
	return nil
}

// confirmer approves destructive actions only when the request carries
// confirm=true.
func confirmer(r *http.Request) services.Confirmer {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if ok {
		return services.Confirmed
	}
	return services.Declined
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		logger.FromContext(r.Context()).Warn("invalid %s: %s", name, raw)
		return 0, errors.NewBadRequestError("invalid " + name)
	}
	return n, nil
}

func tagQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("tag"))
}
