package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"vibechat/internal/service"
	"vibechat/internal/transport/rest/middleware"
)

// ChatHandler handles the message feed endpoints.
type ChatHandler struct {
	chatSvc *service.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// SendMessageRequest is the request body for posting a message.
type SendMessageRequest struct {
	Text string `json:"text"`
}

// List handles GET /v1/chats/{chatId}/messages.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	messages, err := h.chatSvc.ListMessages(r.Context(), chatID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// Send handles POST /v1/chats/{chatId}/messages.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.chatSvc.SendMessage(r.Context(), chatID, userID, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}
