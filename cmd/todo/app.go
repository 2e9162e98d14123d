package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/benjamonnguyen/todo"
	"github.com/benjamonnguyen/todo/charmlog"
	"github.com/benjamonnguyen/todo/httpapi"
	"github.com/benjamonnguyen/todo/inmem"
	"github.com/benjamonnguyen/todo/session"
	"github.com/benjamonnguyen/todo/sqlite"
)

const cmdTimeout = 10 * time.Second

var errNotLoggedIn = errors.New("not logged in, run `todo login` first")

// app is the stack shared by every command.
type app struct {
	cfg     todo.Config
	l       todo.Logger
	tokens  todo.TokenStore
	tasks   todo.TaskService
	session *session.Controller
	closers []io.Closer
}

func newApp(ctx context.Context, confFile string, stderr io.Writer) (*app, error) {
	cfg, err := todo.LoadConfig(confFile)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}

	// logger
	if err := os.MkdirAll(path.Dir(cfg.LogPath), 0o744); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	a.closers = append(a.closers, f)
	a.l = charmlog.NewLogger(charmlog.Options{
		Writer: f,
		Level:  cfg.LogLevel,
	})
	a.l.Debug("loaded config", "config", cfg)

	// token store
	a.tokens = a.openTokenStore()

	// api
	client := httpapi.NewClient(cfg.APIBaseURL, httpapi.WithLogger(a.l))
	a.tasks = client
	a.session = session.New(client, a.tokens, a.l)

	timeout, cancel := context.WithTimeout(ctx, cmdTimeout)
	defer cancel()
	if err := a.session.Start(timeout); err != nil {
		a.l.Warn("session not restored", "error", err)
		fmt.Fprintln(stderr, warnStyle.Render("Your session could not be restored: "+err.Error()))
	}
	return a, nil
}

// openTokenStore falls back to a process-scoped store when the database is
// unusable; the user then has to log in on every invocation.
func (a *app) openTokenStore() todo.TokenStore {
	db, err := sqlite.Open(a.cfg.TokenDBURL)
	if err != nil {
		a.l.Error("failed to open token db", "url", a.cfg.TokenDBURL, "error", err)
		return inmem.NewTokenStore()
	}
	a.closers = append(a.closers, db)
	if err := db.Migrate(sqlite.Migrations); err != nil {
		a.l.Error("failed token db migration", "error", err)
		return inmem.NewTokenStore()
	}

	tx, dbGetter := txStdLib.NewTransactor(db.DB(), txStdLib.NestedTransactionsSavepoints)
	return sqlite.NewTokenStore(tx, dbGetter, a.cfg.SessionKey, a.l)
}

func (a *app) requireAuth() error {
	if !a.session.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

// tokenSavedAt reports when the stored token was written, if the store
// tracks it.
func (a *app) tokenSavedAt(ctx context.Context) (time.Time, bool) {
	ts, ok := a.tokens.(interface {
		UpdatedAt(context.Context) (time.Time, error)
	})
	if !ok {
		return time.Time{}, false
	}
	at, err := ts.UpdatedAt(ctx)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

func (a *app) timeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, cmdTimeout)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}
