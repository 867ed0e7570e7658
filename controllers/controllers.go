package controllers

import (
	"encoding/json"
	"net/http"

	apperrors "buzzme_server/pkg/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps AppError codes onto HTTP statuses; anything unrecognized
// is a 500 with a generic body.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidArgument:
		status = http.StatusBadRequest
		message = err.Error()
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case apperrors.CodeAlreadyExists:
		status = http.StatusConflict
		message = err.Error()
	}

	respondJSON(w, status, map[string]string{"error": message})
}
