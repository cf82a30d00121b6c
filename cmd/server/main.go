package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/caresync/internal/server/handlers"
	"github.com/iudanet/caresync/internal/server/middleware"
	"github.com/iudanet/caresync/internal/server/notify"
	"github.com/iudanet/caresync/internal/server/router"
	"github.com/iudanet/caresync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

type config struct {
	addr       string
	dbPath     string
	jwtSecret  string
	logLevel   string
	tokenTTL   time.Duration
	rateWindow time.Duration
	rateLimit  int
}

func main() {
	cfg, showVersion := parseFlags()

	// Show version and exit if requested
	if showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(cfg); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func parseFlags() (config, bool) {
	var cfg config
	showVersion := flag.Bool("version", false, "Show version information")
	flag.StringVar(&cfg.addr, "addr", envOr("CARESYNC_ADDR", "localhost:8080"), "Address to listen on")
	flag.StringVar(&cfg.dbPath, "db", envOr("CARESYNC_DB", "caresync-server.db"), "Path to SQLite database")
	flag.StringVar(&cfg.jwtSecret, "jwt-secret", os.Getenv("CARESYNC_JWT_SECRET"), "Secret for signing access tokens")
	flag.DurationVar(&cfg.tokenTTL, "token-ttl", 24*time.Hour, "Access token lifetime")
	flag.IntVar(&cfg.rateLimit, "rate-limit", 20, "Max /auth requests per client per window, 0 disables")
	flag.DurationVar(&cfg.rateWindow, "rate-window", time.Minute, "Rate limit window")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()
	return cfg, *showVersion
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(cfg config) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.jwtSecret == "" {
		return errors.New("jwt secret is required: set -jwt-secret or CARESYNC_JWT_SECRET")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Opening database", "path", cfg.dbPath)
	st, err := sqlite.New(ctx, cfg.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	var limiter *middleware.RateLimiter
	if cfg.rateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.rateLimit, cfg.rateWindow, logger)
		defer limiter.Stop()
	}

	handler := router.New(router.Config{
		Logger:      logger,
		Storage:     st,
		Notifier:    notify.NewHub(logger),
		RateLimiter: limiter,
		Version:     Version,
		JWT: handlers.JWTConfig{
			Secret:         []byte(cfg.jwtSecret),
			AccessTokenTTL: cfg.tokenTTL,
		},
	})

	// websocket соединения после Hijack не видны Shutdown, их закрывает отмена baseCtx
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Addr:              cfg.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("caresync server starting", "addr", cfg.addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
		close(errC)
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("server listen failed: %w", err)
	case <-ctx.Done():
		logger.Info("Signal caught, shutting down")
	}

	cancelBase()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func printVersion() {
	fmt.Printf("caresync server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
