package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/caresync/internal/client/auth"
	"github.com/iudanet/caresync/internal/client/iocli"
	"github.com/iudanet/caresync/internal/client/storage/boltdb"
	"github.com/iudanet/caresync/internal/client/store"
)

// console scripted IO: ответы выдаются по очереди, весь вывод собирается в out
type console struct {
	*iocli.IOMock
	out     *strings.Builder
	answers []string
}

func newConsole(answers ...string) *console {
	c := &console{out: &strings.Builder{}, answers: answers}
	next := func(prompt string) (string, error) {
		c.out.WriteString(prompt)
		if len(c.answers) == 0 {
			return "", io.EOF
		}
		answer := c.answers[0]
		c.answers = c.answers[1:]
		return answer, nil
	}
	c.IOMock = &iocli.IOMock{
		PrintlnFunc:      func(a ...any) { c.out.WriteString(fmt.Sprintln(a...)) },
		PrintfFunc:       func(format string, a ...any) { c.out.WriteString(fmt.Sprintf(format, a...)) },
		ReadInputFunc:    next,
		ReadPasswordFunc: next,
		WriteFunc: func(p []byte) (int, error) {
			return c.out.Write(p)
		},
	}
	return c
}

func (c *console) String() string { return c.out.String() }

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()

	db, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := store.Open(ctx, db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return st
}

func newTestCli(t *testing.T, con *console) *Cli {
	t.Helper()
	return New(con, &auth.ServiceMock{}, openTestStore(t), nil, Options{})
}

func TestReadPassphrase_FromEnv(t *testing.T) {
	t.Setenv(PassphraseEnv, "env passphrase value")

	c := &Cli{io: newConsole(), opts: Options{PassphraseFile: "/does/not/exist"}}
	got, err := c.readPassphrase()
	require.NoError(t, err)
	assert.Equal(t, "env passphrase value", got)
}

func TestReadPassphrase_FromFile(t *testing.T) {
	t.Setenv(PassphraseEnv, "")

	path := filepath.Join(t.TempDir(), "passphrase")
	require.NoError(t, os.WriteFile(path, []byte("file passphrase value\n"), 0o600))

	c := &Cli{io: newConsole(), opts: Options{PassphraseFile: path}}
	got, err := c.readPassphrase()
	require.NoError(t, err)
	assert.Equal(t, "file passphrase value", got)
}

func TestReadPassphrase_Errors(t *testing.T) {
	t.Setenv(PassphraseEnv, "")

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))

	tests := []struct {
		name   string
		file   string
		answer []string
		errMsg string
	}{
		{name: "missing file", file: filepath.Join(t.TempDir(), "missing"), errMsg: "failed to read passphrase file"},
		{name: "empty file", file: empty, errMsg: "passphrase file is empty"},
		{name: "empty prompt", answer: []string{""}, errMsg: "passphrase cannot be empty"},
		{name: "prompt error", errMsg: "failed to read passphrase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Cli{io: newConsole(tt.answer...), opts: Options{PassphraseFile: tt.file}}
			_, err := c.readPassphrase()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestReadPassphrase_Prompt(t *testing.T) {
	t.Setenv(PassphraseEnv, "")

	con := newConsole("typed passphrase")
	c := &Cli{io: con}
	got, err := c.readPassphrase()
	require.NoError(t, err)
	assert.Equal(t, "typed passphrase", got)
	assert.Equal(t, "Passphrase: ", con.ReadPasswordCalls()[0].Prompt)
}

func TestUnlock(t *testing.T) {
	t.Setenv(PassphraseEnv, "env passphrase value")

	tests := []struct {
		err    error
		name   string
		errMsg string
	}{
		{name: "not logged in", err: auth.ErrNotLoggedIn, errMsg: "Please run 'caresync login' first"},
		{name: "expired", err: auth.ErrSessionExpired, errMsg: "session has expired"},
		{name: "wrong passphrase", err: auth.ErrInvalidPassphrase, errMsg: "invalid passphrase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Cli{io: newConsole(), authService: &auth.ServiceMock{
				UnlockFunc: func(ctx context.Context, passphrase string) (*auth.Session, error) {
					return nil, tt.err
				},
			}}
			_, err := c.unlock(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, c.session)
		})
	}
}

func TestUnlock_CachesSession(t *testing.T) {
	t.Setenv(PassphraseEnv, "env passphrase value")

	authService := &auth.ServiceMock{
		UnlockFunc: func(ctx context.Context, passphrase string) (*auth.Session, error) {
			assert.Equal(t, "env passphrase value", passphrase)
			return &auth.Session{Username: "nurse"}, nil
		},
	}
	c := &Cli{io: newConsole(), authService: authService}

	for range 3 {
		session, err := c.unlock(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "nurse", session.Username)
	}
	assert.Len(t, authService.UnlockCalls(), 1)
}

func TestRun_UnknownCommand(t *testing.T) {
	con := newConsole()
	c := newTestCli(t, con)

	err := c.Run(context.Background(), "frobnicate", []string{"frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command: frobnicate")
	assert.Contains(t, con.String(), "Commands:")
}

func TestRun_Register(t *testing.T) {
	con := newConsole("nurse_joy", "correct horse battery", "correct horse battery")
	c := newTestCli(t, con)
	authService := &auth.ServiceMock{
		RegisterFunc: func(ctx context.Context, username, passphrase string) (*auth.RegisterResult, error) {
			return &auth.RegisterResult{Username: username, UserID: "user-1"}, nil
		},
	}
	c.authService = authService

	require.NoError(t, c.Run(context.Background(), "register", []string{"register"}))
	assert.Contains(t, con.String(), "Registration successful")
	assert.Contains(t, con.String(), "user-1")
	assert.Equal(t, "correct horse battery", authService.RegisterCalls()[0].Passphrase)
}

func TestRun_RegisterMismatch(t *testing.T) {
	c := newTestCli(t, newConsole("nurse_joy", "correct horse battery", "wrong horse battery"))

	err := c.Run(context.Background(), "register", []string{"register"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passphrases do not match")
}

func TestRun_LoginLogout(t *testing.T) {
	t.Setenv(PassphraseEnv, "env passphrase value")

	con := newConsole("nurse_joy")
	c := newTestCli(t, con)
	authService := &auth.ServiceMock{
		LoginFunc: func(ctx context.Context, username, passphrase string) (*auth.Session, error) {
			return &auth.Session{Username: username}, nil
		},
		LogoutFunc: func(ctx context.Context) error { return nil },
	}
	c.authService = authService

	require.NoError(t, c.Run(context.Background(), "login", []string{"login"}))
	assert.Contains(t, con.String(), "Login successful")
	assert.Contains(t, con.String(), c.store.ProcessID().String())
	require.NotNil(t, c.session)

	require.NoError(t, c.Run(context.Background(), "logout", []string{"logout"}))
	assert.Nil(t, c.session)
	assert.Len(t, authService.LogoutCalls(), 1)
}

func TestRun_LoginFailure(t *testing.T) {
	t.Setenv(PassphraseEnv, "env passphrase value")

	boom := errors.New("login failed: invalid credentials")
	c := newTestCli(t, newConsole("nurse_joy"))
	c.authService = &auth.ServiceMock{
		LoginFunc: func(ctx context.Context, username, passphrase string) (*auth.Session, error) {
			return nil, boom
		},
	}

	err := c.Run(context.Background(), "login", []string{"login"})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, c.session)
}
