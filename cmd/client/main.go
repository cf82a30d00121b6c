package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/caresync/internal/client/api"
	"github.com/iudanet/caresync/internal/client/auth"
	"github.com/iudanet/caresync/internal/client/cli"
	"github.com/iudanet/caresync/internal/client/iocli"
	"github.com/iudanet/caresync/internal/client/remote"
	"github.com/iudanet/caresync/internal/client/storage/boltdb"
	"github.com/iudanet/caresync/internal/client/store"
	"github.com/iudanet/caresync/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "caresync-client.db", "Path to local database")
	passphraseFile := flag.String("passphrase-file", "", "Path to file containing the account passphrase")
	resolveStrategy := flag.String("resolve", "earliest", "Conflict resolution: earliest, lww, prompt")
	interval := flag.Duration("interval", time.Minute, "Auto sync interval for watch, 0 disables the timer")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, error")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	io := iocli.NewStdio()

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(io)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", *logLevel, err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Ctrl+C останавливает watch и прерывает запросы к серверу
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, io, logger, args, options{
		serverURL: *serverURL,
		dbPath:    *dbPath,
		interval:  *interval,
		cli: cli.Options{
			PassphraseFile: *passphraseFile,
			Resolve:        *resolveStrategy,
		},
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

type options struct {
	serverURL string
	dbPath    string
	cli       cli.Options
	interval  time.Duration
}

func run(ctx context.Context, io iocli.IO, logger *slog.Logger, args []string, opts options) error {
	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, opts.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	st, err := store.Open(ctx, boltStorage, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	// Создаем API клиент
	apiClient := api.NewClient(opts.serverURL)
	authService := auth.NewService(apiClient, auth.NewAuthStore(boltStorage), logger)

	newSync := func(session *auth.Session, resolver store.ConflictResolver) (sync.Service, cli.NotificationSource, error) {
		apiClient.SetToken(session.AccessToken)

		rem, err := remote.New(apiClient, session.EncryptionKey, st.ProcessID(), resolver, logger)
		if err != nil {
			return nil, nil, err
		}
		return sync.NewService(st, rem, sync.Config{Interval: opts.interval}, logger), rem, nil
	}

	return cli.New(io, authService, st, newSync, opts.cli).Run(ctx, args[0], args)
}

func printVersion() {
	fmt.Printf("caresync client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
