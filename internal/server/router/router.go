package router

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iudanet/caresync/internal/server/handlers"
	"github.com/iudanet/caresync/internal/server/middleware"
	"github.com/iudanet/caresync/internal/server/storage"
)

// Storage хранилище сервера целиком
type Storage interface {
	storage.UserStorage
	storage.RevisionStorage
	handlers.Pinger
}

// Config зависимости HTTP API
type Config struct {
	Logger      *slog.Logger
	Storage     Storage
	Notifier    handlers.Notifier
	RateLimiter *middleware.RateLimiter // nil отключает ограничение для /auth
	Version     string
	JWT         handlers.JWTConfig
}

// New собирает маршруты API:
//
//	GET  /health
//	POST /api/v1/auth/register
//	GET  /api/v1/auth/salt/{username}
//	POST /api/v1/auth/login
//	POST /api/v1/revisions/pull   (JWT)
//	POST /api/v1/revisions/push   (JWT)
//	GET  /api/v1/revisions/watch  (JWT, websocket)
func New(cfg Config) http.Handler {
	authHandler := handlers.NewAuthHandler(cfg.Logger, cfg.Storage, cfg.JWT)
	revisionsHandler := handlers.NewRevisionsHandler(cfg.Logger, cfg.Storage, cfg.Notifier)
	healthHandler := handlers.NewHealthHandler(cfg.Logger, cfg.Storage, cfg.Version)

	r := mux.NewRouter()
	r.Use(
		middleware.RecoveryMiddleware(cfg.Logger),
		middleware.LoggingMiddleware(cfg.Logger, "/health"),
	)
	withJSONErrors(r)

	r.Methods(http.MethodGet).Path("/health").HandlerFunc(healthHandler.Health)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	withJSONErrors(v1)

	authRouter := v1.PathPrefix("/auth").Subrouter()
	withJSONErrors(authRouter)
	if cfg.RateLimiter != nil {
		authRouter.Use(cfg.RateLimiter.Middleware)
	}
	authRouter.Methods(http.MethodPost).Path("/register").HandlerFunc(authHandler.Register)
	authRouter.Methods(http.MethodGet).Path("/salt/{username}").HandlerFunc(authHandler.GetSalt)
	authRouter.Methods(http.MethodPost).Path("/login").HandlerFunc(authHandler.Login)

	revisionsRouter := v1.PathPrefix("/revisions").Subrouter()
	withJSONErrors(revisionsRouter)
	revisionsRouter.Use(middleware.AuthMiddleware(cfg.Logger, cfg.JWT))
	revisionsRouter.Methods(http.MethodPost).Path("/pull").HandlerFunc(revisionsHandler.Pull)
	revisionsRouter.Methods(http.MethodPost).Path("/push").HandlerFunc(revisionsHandler.Push)
	revisionsRouter.Methods(http.MethodGet).Path("/watch").HandlerFunc(revisionsHandler.Watch)

	return r
}

// withJSONErrors задается на каждом subrouter: mux не передает 405 из subrouter в корневой router
func withJSONErrors(r *mux.Router) {
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
}
