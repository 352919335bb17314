package routes

import (
	"github.com/11Rojas/mascoticas-backend/controllers"
	"github.com/11Rojas/mascoticas-backend/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for chats and messages under /api
func RegisterChatRoutes(r *mux.Router, chats *services.ChatService, messages *services.MessageService) {
	controller := controllers.NewChatController(chats, messages)

	chatRouter := r.PathPrefix("/api/chats").Subrouter()
	chatRouter.HandleFunc("", controller.HandleListChats).Methods("GET")
	chatRouter.HandleFunc("/{id}/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/{id}/messages", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/{id}/read", controller.HandleMarkRead).Methods("POST")
	chatRouter.HandleFunc("/{id}/mute", controller.HandleToggleMute).Methods("POST")
	chatRouter.HandleFunc("/{id}/delete", controller.HandleDeleteForUser).Methods("POST")

	messageRouter := r.PathPrefix("/api/messages").Subrouter()
	messageRouter.HandleFunc("/{id}/delete", controller.HandleDeleteMessage).Methods("POST")
}
