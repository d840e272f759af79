package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"vibechat/internal/service"
	"vibechat/internal/transport/rest/middleware"
)

// UserHandler handles lobby and profile endpoints.
type UserHandler struct {
	userSvc *service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Lobby handles GET /v1/users: everyone except the requester, with
// presence.
func (h *UserHandler) Lobby(w http.ResponseWriter, r *http.Request) {
	selfID := middleware.GetUserID(r.Context())

	users, err := h.userSvc.Lobby(r.Context(), selfID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// Get handles GET /v1/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := h.userSvc.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
