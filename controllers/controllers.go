package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/11Rojas/mascoticas-backend/models"
)

// HealthCheckHandler reports liveness.
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// untyped is a 500 with a generic body; the detail goes to the log only.
func respondError(w http.ResponseWriter, err error) {
	var (
		validation *models.ValidationError
		notFound   *models.NotFoundError
		forbidden  *models.ForbiddenError
		conflict   *models.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": validation.Error()})
	case errors.As(err, &notFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": notFound.Error()})
	case errors.As(err, &forbidden):
		respondJSON(w, http.StatusForbidden, map[string]string{"error": forbidden.Error()})
	case errors.As(err, &conflict):
		respondJSON(w, http.StatusConflict, map[string]string{"error": conflict.Error()})
	default:
		log.Printf("❌ Request failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
