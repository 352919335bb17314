package routes

import (
	"github.com/11Rojas/mascoticas-backend/controllers"
	"github.com/11Rojas/mascoticas-backend/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for matches under /api/matches
func RegisterMatchRoutes(r *mux.Router, matches *services.MatchService) {
	controller := controllers.NewMatchController(matches)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("", controller.HandleListMatches).Methods("GET")
	matchRouter.HandleFunc("/pending", controller.HandlePendingLikes).Methods("GET")
	matchRouter.HandleFunc("/{id}/unmatch", controller.HandleUnmatch).Methods("POST")
}
