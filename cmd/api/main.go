package main

import (
	"fmt"
	"log"
	"myblog/cmd/app"
	"myblog/internal/config"
	handlers "myblog/internal/handler"
	"myblog/internal/middleware"
	"net/http"

	"github.com/gorilla/mux"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	// setting up routes
	r := mux.NewRouter()

	r.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/stats", handler.StatsHandler).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", handler.Logout).Methods(http.MethodPost)

	r.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)
	r.HandleFunc("/api/user/{userId}", handler.GetUser).Methods(http.MethodGet)

	r.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	r.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/api/posts/{postId}", handler.GetPost).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{postId}", handler.UpdatePost).Methods(http.MethodPut)
	r.HandleFunc("/api/posts/{postId}", handler.DeletePost).Methods(http.MethodDelete)

	r.HandleFunc("/api/posts/{postId}/comments", handler.GetComments).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{postId}/comments", handler.CreateComment).Methods(http.MethodPost)
	r.HandleFunc("/api/comments/{commentId}", handler.UpdateComment).Methods(http.MethodPut)
	r.HandleFunc("/api/comments/{commentId}", handler.DeleteComment).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
