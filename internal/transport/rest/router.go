package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"vibechat/internal/cache"
	"vibechat/internal/service"
	"vibechat/internal/transport/rest/handler"
	"vibechat/internal/transport/rest/middleware"
	"vibechat/internal/transport/ws"
)

// Container holds all dependencies for the router.
type Container struct {
	AuthService *service.AuthService
	UserService *service.UserService
	ChatService *service.ChatService
	GameService *service.GameService
	CallService *service.CallService
	Presence    cache.PresenceCache
	WSHub       *ws.Hub
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	userHandler := handler.NewUserHandler(c.UserService)
	chatHandler := handler.NewChatHandler(c.ChatService)
	gameHandler := handler.NewGameHandler(c.GameService)
	callHandler := handler.NewCallHandler(c.CallService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.Presence)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/chats/{chatId}", wsHandler.ChatWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/users", userHandler.Lobby).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/users/{id}", userHandler.Get).Methods("GET", "OPTIONS")

	userRoutes.HandleFunc("/chats/{chatId}/messages", chatHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/chats/{chatId}/messages", chatHandler.Send).Methods("POST", "OPTIONS")

	userRoutes.HandleFunc("/chats/{chatId}/game/challenge", gameHandler.Challenge).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/chats/{chatId}/game/accept", gameHandler.Accept).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/chats/{chatId}/game", gameHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/chats/{chatId}/game/move", gameHandler.Move).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/chats/{chatId}/game/reset", gameHandler.Reset).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/chats/{chatId}/game/choice", gameHandler.Choose).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/chats/{chatId}/game/answer", gameHandler.Answer).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/trivia/questions", gameHandler.Questions).Methods("GET", "OPTIONS")

	userRoutes.HandleFunc("/chats/{chatId}/call/offer", callHandler.Offer).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/chats/{chatId}/call/answer", callHandler.Answer).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/chats/{chatId}/call/candidates", callHandler.Candidate).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/chats/{chatId}/call", callHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/chats/{chatId}/call", callHandler.End).Methods("DELETE", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
