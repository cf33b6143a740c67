package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/eventboard-be/internal/analytics"
	"github.com/isdelr/eventboard-be/internal/auth"
	"github.com/isdelr/eventboard-be/internal/services"
	"github.com/isdelr/eventboard-be/internal/storage"
	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps service errors onto HTTP responses.
func writeError(w http.ResponseWriter, err error, notFound string) {
	var validation *services.ValidationError
	var storeErr *storage.Error
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Validation failed", "details": validation.Details})
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, analytics.ErrNotTracked):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": notFound})
	case errors.Is(err, auth.ErrInvalidShareToken):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Share link is invalid or has expired"})
	case errors.As(err, &storeErr):
		log.Error().Err(err).Str("op", storeErr.Op).Msg("Event storage failure")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	default:
		log.Error().Err(err).Msg("Request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
