package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"warbler/models"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the tagged error taxonomy to HTTP statuses. Anything
// unrecognized is logged and reported as a generic database error so raw
// store faults never reach the client.
func writeError(w http.ResponseWriter, err error) {
	var dup *models.DuplicateError
	switch {
	case errors.As(err, &dup):
		writeJSON(w, http.StatusConflict, map[string]string{"error": dup.Error(), "field": dup.Field})
	case errors.Is(err, models.ErrAlreadyFollowing), errors.Is(err, models.ErrAlreadyLiked):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Access unauthorized."})
	case errors.Is(err, models.ErrIntegrity):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "integrity violation"})
	default:
		logrus.WithError(err).Error("unhandled data-access error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Database error"})
	}
}

// reason labels a failure for metrics without leaking details.
func reason(err error) string {
	var dup *models.DuplicateError
	switch {
	case errors.As(err, &dup):
		return "duplicate " + dup.Field
	case errors.Is(err, models.ErrValidation):
		return "validation"
	default:
		return "database"
	}
}

func writeAnonymous(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Access unauthorized."})
}
