package routes

import (
	"github.com/11Rojas/mascoticas-backend/controllers"
	"github.com/11Rojas/mascoticas-backend/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes sets up routes under /api/notifications
func RegisterNotificationRoutes(r *mux.Router, notifications *services.NotificationService) {
	controller := controllers.NewNotificationController(notifications)

	notificationRouter := r.PathPrefix("/api/notifications").Subrouter()
	notificationRouter.HandleFunc("", controller.HandleList).Methods("GET")
	notificationRouter.HandleFunc("/{id}/read", controller.HandleMarkRead).Methods("POST")
}
