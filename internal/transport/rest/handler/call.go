package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"vibechat/internal/model"
	"vibechat/internal/service"
	"vibechat/internal/transport/rest/middleware"
)

// CallHandler handles the call signaling endpoints.
type CallHandler struct {
	callSvc *service.CallService
}

// NewCallHandler creates a new call handler.
func NewCallHandler(callSvc *service.CallService) *CallHandler {
	return &CallHandler{callSvc: callSvc}
}

// Offer handles POST /v1/chats/{chatId}/call/offer.
func (h *CallHandler) Offer(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	var offer model.SessionDescription
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	call, err := h.callSvc.StartCall(r.Context(), chatID, userID, &offer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, call)
}

// Answer handles POST /v1/chats/{chatId}/call/answer.
func (h *CallHandler) Answer(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	var answer model.SessionDescription
	if err := json.NewDecoder(r.Body).Decode(&answer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	call, err := h.callSvc.AnswerCall(r.Context(), chatID, userID, &answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, call)
}

// Candidate handles POST /v1/chats/{chatId}/call/candidates.
func (h *CallHandler) Candidate(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	var cand model.ICECandidate
	if err := json.NewDecoder(r.Body).Decode(&cand); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.callSvc.AddCandidate(r.Context(), chatID, userID, cand); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// Get handles GET /v1/chats/{chatId}/call.
func (h *CallHandler) Get(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	call, err := h.callSvc.GetCall(r.Context(), chatID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, call)
}

// End handles DELETE /v1/chats/{chatId}/call.
func (h *CallHandler) End(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	if err := h.callSvc.EndCall(r.Context(), chatID, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}
