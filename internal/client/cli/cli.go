package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/caresync/internal/client/auth"
	"github.com/iudanet/caresync/internal/client/iocli"
	"github.com/iudanet/caresync/internal/client/resolve"
	"github.com/iudanet/caresync/internal/client/store"
	"github.com/iudanet/caresync/internal/client/sync"
)

// PassphraseEnv переменная окружения с парольной фразой аккаунта
const PassphraseEnv = "CARESYNC_PASSPHRASE"

// NotificationSource источник уведомлений удаленной стороны для авто-синхронизации
type NotificationSource interface {
	Notifications(ctx context.Context) <-chan struct{}
}

// SyncFactory создает sync сервис для разблокированной сессии
type SyncFactory func(session *auth.Session, resolver store.ConflictResolver) (sync.Service, NotificationSource, error)

// Options глобальные параметры команд
type Options struct {
	PassphraseFile string // файл с парольной фразой
	Resolve        string // стратегия разрешения конфликтов: earliest, lww, prompt
}

type Cli struct {
	io          iocli.IO
	authService auth.Service
	store       *store.Store
	newSync     SyncFactory
	session     *auth.Session
	opts        Options
}

func New(io iocli.IO, authService auth.Service, st *store.Store, newSync SyncFactory, opts Options) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		store:       st,
		newSync:     newSync,
		opts:        opts,
	}
}

// unlock восстанавливает сессию, парольная фраза запрашивается один раз за процесс
func (c *Cli) unlock(ctx context.Context) (*auth.Session, error) {
	if c.session != nil {
		return c.session, nil
	}

	passphrase, err := c.readPassphrase()
	if err != nil {
		return nil, fmt.Errorf("failed to get passphrase: %w", err)
	}

	session, err := c.authService.Unlock(ctx, passphrase)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotLoggedIn):
			return nil, fmt.Errorf("not authenticated. Please run 'caresync login' first")
		case errors.Is(err, auth.ErrSessionExpired):
			return nil, fmt.Errorf("session has expired. Please run 'caresync login' again")
		}
		return nil, err
	}

	c.session = session
	return session, nil
}

// readPassphrase reads the passphrase with priority:
// 1. Environment variable CARESYNC_PASSPHRASE
// 2. File from Options.PassphraseFile
// 3. Interactive prompt (fallback)
func (c *Cli) readPassphrase() (string, error) {
	if env := os.Getenv(PassphraseEnv); env != "" {
		return env, nil
	}

	if c.opts.PassphraseFile != "" {
		content, err := os.ReadFile(c.opts.PassphraseFile)
		if err != nil {
			return "", fmt.Errorf("failed to read passphrase file: %w", err)
		}
		passphrase := strings.TrimSpace(string(content))
		if passphrase == "" {
			return "", fmt.Errorf("passphrase file is empty")
		}
		return passphrase, nil
	}

	passphrase, err := c.io.ReadPassword("Passphrase: ")
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	if passphrase == "" {
		return "", fmt.Errorf("passphrase cannot be empty")
	}
	return passphrase, nil
}

// syncService создает сервис синхронизации с выбранной стратегией разрешения конфликтов
func (c *Cli) syncService(ctx context.Context) (sync.Service, NotificationSource, error) {
	session, err := c.unlock(ctx)
	if err != nil {
		return nil, nil, err
	}

	resolver, err := resolve.New(c.opts.Resolve, c.io)
	if err != nil {
		return nil, nil, err
	}

	return c.newSync(session, resolver)
}

func PrintUsage(io iocli.IO) {
	io.Println("caresync client")
	io.Println()
	io.Println("Usage:")
	io.Println("  caresync [OPTIONS] COMMAND")
	io.Println()
	io.Println("Options:")
	io.Println("  -version                 Show version information")
	io.Println("  -server URL              Server URL (default: http://localhost:8080)")
	io.Println("  -db PATH                 Path to local database (default: caresync-client.db)")
	io.Println("  -passphrase-file PATH    Path to file containing the account passphrase")
	io.Println("  -resolve STRATEGY        Conflict resolution: earliest, lww, prompt (default: earliest)")
	io.Println("  -interval DURATION       Auto sync interval for 'watch' (default: 1m)")
	io.Println("  -log-level LEVEL         debug, info, warn, error (default: warn)")
	io.Println()
	io.Println("Passphrase priority (highest to lowest):")
	io.Println("  1. CARESYNC_PASSPHRASE environment variable")
	io.Println("  2. -passphrase-file")
	io.Println("  3. Interactive prompt")
	io.Println()
	io.Println("Commands:")
	io.Println("  register                 Register new account")
	io.Println("  login                    Login to server")
	io.Println("  logout                   Remove local session")
	io.Println("  status                   Show session and store status")
	io.Println("  add <type> [--sync]      Add a record (patient, carePlan, contact, task, outcome)")
	io.Println("  update <type> <id>       Create a new version of a record")
	io.Println("  delete <type> <id>       Delete a record (tombstone version)")
	io.Println("  list <type>              List current records")
	io.Println("  list <type> --at <date>  List records in effect on date")
	io.Println("  history <type> <id>      Show all versions of a record")
	io.Println("  sync                     Synchronize with server")
	io.Println("  watch                    Keep synchronizing on changes until interrupted")
	io.Println()
	io.Println("Examples:")
	io.Println("  caresync register")
	io.Println("  caresync login")
	io.Println("  caresync add patient --sync")
	io.Println("  caresync list task")
	io.Println("  caresync -resolve prompt sync")
	io.Println("  caresync history patient 6b3a1f52-2f7e-4a57-9a0e-2d36f3f1c6a1")
}
