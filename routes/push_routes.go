package routes

import (
	"github.com/11Rojas/mascoticas-backend/controllers"
	"github.com/11Rojas/mascoticas-backend/services"

	"github.com/gorilla/mux"
)

// RegisterPushRoutes sets up routes for push subscriptions under /api/push
func RegisterPushRoutes(r *mux.Router, push *services.PushService) {
	controller := controllers.NewPushController(push)

	pushRouter := r.PathPrefix("/api/push").Subrouter()
	pushRouter.HandleFunc("/subscribe", controller.HandleSubscribe).Methods("POST")
	pushRouter.HandleFunc("/subscribe", controller.HandleUnsubscribe).Methods("DELETE")
	pushRouter.HandleFunc("/public-key", controller.HandlePublicKey).Methods("GET")
}
