package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/dkoss/relay/internal/config"
	"github.com/dkoss/relay/internal/database"
	postgresrepo "github.com/dkoss/relay/internal/repository/postgres"
	"github.com/dkoss/relay/internal/service"
	"github.com/dkoss/relay/internal/transport/http/handlers"
	"github.com/dkoss/relay/internal/transport/http/middleware"
	"github.com/dkoss/relay/internal/transport/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Database
	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal(err)
	}
	pool, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)
	notificationRepo := postgresrepo.NewNotificationRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	userService := service.NewUserService(userRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, notificationRepo)

	// Realtime hub
	hub := ws.NewHub()
	go hub.Run()
	notifier := ws.NewHubNotifier(hub)
	authService.SetNotifier(notifier)
	messageService.SetNotifier(notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Middleware
	auth := middleware.Auth(cfg.JWTSecret)
	loginLimit := middleware.RateLimit(rate.Limit(cfg.LoginRatePerSec), cfg.LoginRateBurst)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	// Public
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	r.With(loginLimit).Post("/login", authHandler.Login)
	r.Post("/signup", authHandler.Signup)
	r.Post("/send_message", messageHandler.Send)
	r.Get("/message_history", messageHandler.History)
	r.Get("/ws", ws.ServeWS(hub))

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get("/protected", authHandler.Protected)
		r.Post("/change_password", authHandler.ChangePassword)
		r.Get("/users", userHandler.List)
		r.Get("/messages/{user_id}", messageHandler.ForUser)
		r.Get("/notifications", messageHandler.Notifications)
	})

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
