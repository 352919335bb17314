package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/11Rojas/mascoticas-backend/models"
	"github.com/11Rojas/mascoticas-backend/services"
)

// SwipeController handles swipe submission and candidate discovery.
type SwipeController struct {
	SwipeService *services.SwipeService
	MatchService *services.MatchService
}

// NewSwipeController initializes the swipe controller
func NewSwipeController(swipes *services.SwipeService, matches *services.MatchService) *SwipeController {
	return &SwipeController{SwipeService: swipes, MatchService: matches}
}

type swipeRequest struct {
	SwiperPetID string `json:"swiperPetId"`
	SwipedPetID string `json:"swipedPetId"`
	Type        string `json:"type"`
}

type swipeResponse struct {
	Recorded bool          `json:"recorded"`
	IsMatch  bool          `json:"isMatch"`
	Match    *models.Match `json:"match,omitempty"`
}

// HandleSwipe records a swipe and, for likes, runs match detection.
func (c *SwipeController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	var req swipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if _, err := c.SwipeService.RecordSwipe(r.Context(), req.SwiperPetID, req.SwipedPetID, req.Type); err != nil {
		respondError(w, err)
		return
	}

	resp := swipeResponse{Recorded: true}
	if req.Type == models.SwipeKindLike {
		result, err := c.MatchService.HandleLike(r.Context(), req.SwiperPetID, req.SwipedPetID)
		if err != nil {
			// The swipe itself is stored; detection can be retried by the
			// next like. Surface the failure anyway.
			respondError(w, err)
			return
		}
		resp.IsMatch = result.Match != nil
		resp.Match = result.Match
	}

	log.Printf("👉 Swipe %s: %s -> %s (match=%t)", req.Type, req.SwiperPetID, req.SwipedPetID, resp.IsMatch)
	respondJSON(w, http.StatusOK, resp)
}

// HandleCandidates lists swipeable pets for a pet, likers first.
func (c *SwipeController) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	petID := r.URL.Query().Get("petId")
	if petID == "" {
		http.Error(w, `{"error": "petId is required"}`, http.StatusBadRequest)
		return
	}

	candidates, err := c.MatchService.ListCandidates(r.Context(), petID)
	if err != nil {
		respondError(w, err)
		return
	}
	if candidates == nil {
		candidates = []models.PetSummary{}
	}
	respondJSON(w, http.StatusOK, candidates)
}
