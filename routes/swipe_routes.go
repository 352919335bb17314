package routes

import (
	"github.com/11Rojas/mascoticas-backend/controllers"
	"github.com/11Rojas/mascoticas-backend/services"

	"github.com/gorilla/mux"
)

// RegisterSwipeRoutes sets up routes for swiping under /api/swipes
func RegisterSwipeRoutes(r *mux.Router, swipes *services.SwipeService, matches *services.MatchService) {
	controller := controllers.NewSwipeController(swipes, matches)

	swipeRouter := r.PathPrefix("/api/swipes").Subrouter()
	swipeRouter.HandleFunc("", controller.HandleSwipe).Methods("POST")
	swipeRouter.HandleFunc("/candidates", controller.HandleCandidates).Methods("GET")
}
