package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vibechat/internal/cache"
	"vibechat/internal/config"
	"vibechat/internal/repository"
	"vibechat/internal/service"
	"vibechat/internal/transport/rest"
	"vibechat/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	gameRepo := repository.NewGameRepo(db)
	callRepo := repository.NewCallRepo(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		messageRepo.EnsureIndexes,
		gameRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal("Failed to ensure indexes:", err)
		}
	}

	// Initialize caches
	presence := cache.NewPresenceCache(rdb)
	gameCache := cache.NewGameCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	userSvc := service.NewUserService(userRepo, presence)
	chatSvc := service.NewChatService(messageRepo)
	gameSvc := service.NewGameService(gameRepo, gameCache, chatSvc)
	callSvc := service.NewCallService(callRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	chatSvc.SetBroadcaster(wsHub)
	gameSvc.SetBroadcaster(wsHub)
	callSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService: authSvc,
		UserService: userSvc,
		ChatService: chatSvc,
		GameService: gameSvc,
		CallService: callSvc,
		Presence:    presence,
		WSHub:       wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/register")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/users")
		log.Println("  GET/POST /v1/chats/{chatId}/messages")
		log.Println("  POST /v1/chats/{chatId}/game/{challenge,accept,move,reset,choice,answer}")
		log.Println("  GET  /v1/chats/{chatId}/game")
		log.Println("  POST /v1/chats/{chatId}/call/{offer,answer,candidates}")
		log.Println("  WS   /v1/ws/chats/{chatId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
