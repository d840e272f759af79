package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"vibechat/internal/game"
	"vibechat/internal/model"
	"vibechat/internal/service"
	"vibechat/internal/transport/rest/middleware"
)

// GameHandler handles the shared game session endpoints.
type GameHandler struct {
	gameSvc *service.GameService
}

// NewGameHandler creates a new game handler.
func NewGameHandler(gameSvc *service.GameService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc}
}

// ChallengeRequest is the request body for starting a game.
type ChallengeRequest struct {
	GameType model.GameType `json:"gameType"`
}

// MoveRequest is the request body for a tic-tac-toe move.
type MoveRequest struct {
	Cell int `json:"cell"`
}

// ChoiceRequest is the request body for a rock-paper-scissors choice.
type ChoiceRequest struct {
	Choice model.RPSChoice `json:"choice"`
}

// AnswerRequest is the request body for a trivia answer.
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// Challenge handles POST /v1/chats/{chatId}/game/challenge.
func (h *GameHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	var req ChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.gameSvc.Challenge(r.Context(), chatID, userID, req.GameType)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// Accept handles POST /v1/chats/{chatId}/game/accept.
func (h *GameHandler) Accept(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	session, err := h.gameSvc.Accept(r.Context(), chatID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Get handles GET /v1/chats/{chatId}/game.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	session, err := h.gameSvc.Get(r.Context(), chatID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Move handles POST /v1/chats/{chatId}/game/move.
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.gameSvc.Move(r.Context(), chatID, userID, req.Cell)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Reset handles POST /v1/chats/{chatId}/game/reset.
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	session, err := h.gameSvc.Reset(r.Context(), chatID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Choose handles POST /v1/chats/{chatId}/game/choice.
func (h *GameHandler) Choose(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	var req ChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.gameSvc.Choose(r.Context(), chatID, userID, req.Choice)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Answer handles POST /v1/chats/{chatId}/game/answer.
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]
	userID := middleware.GetUserID(r.Context())

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.gameSvc.Answer(r.Context(), chatID, userID, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Questions handles GET /v1/trivia/questions: the fixed shared list,
// without the correct answers.
func (h *GameHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, game.TriviaQuestions)
}
