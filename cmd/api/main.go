package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"mediafeed/cmd/app"
	"mediafeed/internal/config"
	handlers "mediafeed/internal/handler"
	"mediafeed/internal/middleware"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		logger.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, _, services := app.App(cfg, logger)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, db, cfg)

	// setting up routes
	router := mux.NewRouter()

	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/verify", handler.VerifyEmail).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/recover", handler.RecoverPassword).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/reset", handler.ResetPassword).Methods(http.MethodPost)

	router.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)

	router.HandleFunc("/api/posts", handler.GetFeed).Methods(http.MethodGet)
	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{postId}", handler.DeletePost).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logger.Info("сервер запущен", zap.String("addr", addr), zap.String("db", cfg.DB.DbNAME))

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		logger.Fatal("ошибка запуска сервера", zap.Error(err))
	}
}
