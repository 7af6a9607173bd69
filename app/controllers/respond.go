package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"postlikes/app/models"

	"github.com/go-playground/validator/v10"
)

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}

// sendServiceError maps domain errors to status codes. Anything
// unrecognised is an infrastructure failure and its detail is not exposed.
func sendServiceError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, models.ErrInvalidIdentifier),
		errors.Is(err, models.ErrInvalidInput),
		errors.As(err, &verrs):
		sendError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrPostNotFound), errors.Is(err, models.ErrUserNotFound):
		sendError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrAlreadyLiked),
		errors.Is(err, models.ErrNotLiked),
		errors.Is(err, models.ErrUsernameTaken):
		sendError(w, err.Error(), http.StatusConflict)
	default:
		sendError(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(models.ErrInvalidInput, err)
	}
	return nil
}
