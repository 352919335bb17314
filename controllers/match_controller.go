package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/11Rojas/mascoticas-backend/models"
	"github.com/11Rojas/mascoticas-backend/services"

	"github.com/gorilla/mux"
)

// MatchController exposes the match list and unmatching.
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController initializes the match controller
func NewMatchController(service *services.MatchService) *MatchController {
	return &MatchController{MatchService: service}
}

// HandleListMatches returns the user's accepted matches.
func (c *MatchController) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	matches, err := c.MatchService.ListAccepted(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if matches == nil {
		matches = []models.Match{}
	}
	respondJSON(w, http.StatusOK, matches)
}

// HandlePendingLikes returns received likes the user's pets have not
// answered yet.
func (c *MatchController) HandlePendingLikes(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	likes, err := c.MatchService.ListPendingLikes(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if likes == nil {
		likes = []models.Swipe{}
	}
	respondJSON(w, http.StatusOK, likes)
}

// HandleUnmatch deletes a match with its chat and messages.
func (c *MatchController) HandleUnmatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	if err := c.MatchService.Unmatch(r.Context(), matchID, req.UserID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "unmatched"})
}
