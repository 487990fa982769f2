package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thalha/cabslip/internal/backup"
	"github.com/thalha/cabslip/internal/service"
	"github.com/thalha/cabslip/internal/storage"
)

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondServiceError maps domain errors to HTTP status codes. Anything
// unrecognized is a 500 with a generic message; the real error goes to
// the log at the call site.
func (r *Router) respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	var invalidDoc *backup.ErrInvalidDocument

	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &invalidDoc):
		respondError(w, http.StatusUnprocessableEntity, invalidDoc.Error())
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrDuplicateID):
		respondError(w, http.StatusConflict, "receipt id already exists")
	default:
		r.logger.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
