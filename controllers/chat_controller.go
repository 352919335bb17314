package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/11Rojas/mascoticas-backend/models"
	"github.com/11Rojas/mascoticas-backend/services"

	"github.com/gorilla/mux"
)

// ChatController exposes chat listing and per-user chat state.
type ChatController struct {
	ChatService    *services.ChatService
	MessageService *services.MessageService
}

// NewChatController initializes the chat controller
func NewChatController(chats *services.ChatService, messages *services.MessageService) *ChatController {
	return &ChatController{ChatService: chats, MessageService: messages}
}

type chatUserRequest struct {
	UserID string `json:"userId"`
}

func decodeChatUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req chatUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return "", false
	}
	return req.UserID, true
}

// HandleListChats returns the user's visible chats, newest activity first.
func (c *ChatController) HandleListChats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	chats, err := c.ChatService.ListVisible(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if chats == nil {
		chats = []models.Chat{}
	}
	respondJSON(w, http.StatusOK, chats)
}

// HandleGetMessages returns the chat's messages the user can still see.
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["id"]
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	messages, err := c.MessageService.ListForUser(r.Context(), chatID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	respondJSON(w, http.StatusOK, messages)
}

// HandleSendMessage appends a message to the chat.
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["id"]

	var req struct {
		SenderID string   `json:"senderId"`
		Content  string   `json:"content"`
		Images   []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.SenderID == "" {
		http.Error(w, `{"error": "senderId is required"}`, http.StatusBadRequest)
		return
	}

	msg, err := c.MessageService.Send(r.Context(), chatID, req.SenderID, req.Content, req.Images)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

// HandleMarkRead marks the chat read for the caller.
func (c *ChatController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["id"]
	userID, ok := decodeChatUser(w, r)
	if !ok {
		return
	}

	if err := c.ChatService.MarkRead(r.Context(), chatID, userID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// HandleToggleMute flips the caller's mute flag and returns the new state.
func (c *ChatController) HandleToggleMute(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["id"]
	userID, ok := decodeChatUser(w, r)
	if !ok {
		return
	}

	chat, err := c.ChatService.Get(r.Context(), chatID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	muted := !chat.IsMutedBy(userID)
	if err := c.ChatService.SetMuted(r.Context(), chatID, userID, muted); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"muted": muted})
}

// HandleDeleteForUser hides the chat from the caller's list.
func (c *ChatController) HandleDeleteForUser(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["id"]
	userID, ok := decodeChatUser(w, r)
	if !ok {
		return
	}

	if err := c.ChatService.SetDeletedForUser(r.Context(), chatID, userID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleDeleteMessage deletes a message for the caller or for everyone.
func (c *ChatController) HandleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	messageID := mux.Vars(r)["id"]

	var req struct {
		ChatID string `json:"chatId"`
		UserID string `json:"userId"`
		Type   string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.ChatID == "" || req.UserID == "" {
		http.Error(w, `{"error": "chatId and userId are required"}`, http.StatusBadRequest)
		return
	}

	var err error
	switch req.Type {
	case "everyone":
		err = c.MessageService.DeleteForEveryone(r.Context(), req.ChatID, messageID, req.UserID)
	case "me", "":
		err = c.MessageService.DeleteForMe(r.Context(), req.ChatID, messageID, req.UserID)
	default:
		http.Error(w, `{"error": "type must be 'me' or 'everyone'"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
