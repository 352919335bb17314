package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/11Rojas/mascoticas-backend/models"
	"github.com/11Rojas/mascoticas-backend/services"

	"github.com/gorilla/mux"
)

// NotificationController exposes the in-app notification feed.
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController initializes the notification controller
func NewNotificationController(service *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: service}
}

// HandleList returns the user's notifications, newest first.
func (c *NotificationController) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	notifications, err := c.NotificationService.ListForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	respondJSON(w, http.StatusOK, notifications)
}

// HandleMarkRead marks one notification read.
func (c *NotificationController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID := mux.Vars(r)["id"]

	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	if err := c.NotificationService.MarkRead(r.Context(), req.UserID, notificationID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
