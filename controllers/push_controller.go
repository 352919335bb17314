package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/11Rojas/mascoticas-backend/models"
	"github.com/11Rojas/mascoticas-backend/services"
)

// PushController registers and removes Web Push device subscriptions.
type PushController struct {
	PushService *services.PushService
}

// NewPushController initializes the push controller
func NewPushController(service *services.PushService) *PushController {
	return &PushController{PushService: service}
}

type subscribeRequest struct {
	UserID   string `json:"userId"`
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// HandleSubscribe stores a browser push subscription for the user.
func (c *PushController) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	sub := models.PushSubscription{
		UserID:   req.UserID,
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}
	if err := c.PushService.RegisterSubscription(r.Context(), sub); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "subscribed"})
}

// HandleUnsubscribe removes a device subscription.
func (c *PushController) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"userId"`
		Endpoint string `json:"endpoint"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Endpoint == "" {
		http.Error(w, `{"error": "userId and endpoint are required"}`, http.StatusBadRequest)
		return
	}

	if err := c.PushService.UnregisterSubscription(r.Context(), req.UserID, req.Endpoint); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}

// HandlePublicKey hands the VAPID public key to the client so it can
// subscribe with the push service.
func (c *PushController) HandlePublicKey(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"publicKey": c.PushService.VAPIDPublicKey})
}
