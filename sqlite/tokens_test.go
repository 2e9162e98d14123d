package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	txStdLib "github.com/Thiht/transactor/stdlib"

	"github.com/benjamonnguyen/todo/charmlog"
)

func openTestDB(t *testing.T) *database {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "session.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Migrate(Migrations); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return db
}

func newTestStore(db *database, sessionKey string) *TokenStore {
	tx, dbGetter := txStdLib.NewTransactor(db.DB(), txStdLib.NestedTransactionsSavepoints)
	return NewTokenStore(tx, dbGetter, sessionKey, charmlog.Discard())
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()
	db := openTestDB(t)

	if err := db.Migrate(Migrations); err != nil {
		t.Errorf("second Migrate failed: %v", err)
	}
}

func TestTokenStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(openTestDB(t), "ppid-1")

	if _, ok := s.Get(ctx); ok {
		t.Fatal("expected no token in fresh store")
	}

	s.Set(ctx, "a.b.c")
	s.Set(ctx, "d.e.f")
	tok, ok := s.Get(ctx)
	if !ok || tok != "d.e.f" {
		t.Errorf("Get() = %q, %v; want d.e.f, true", tok, ok)
	}
	if at, err := s.UpdatedAt(ctx); err != nil || at.IsZero() {
		t.Errorf("UpdatedAt() = %v, %v", at, err)
	}

	s.Clear(ctx)
	if _, ok := s.Get(ctx); ok {
		t.Error("expected token to be cleared")
	}
	if _, err := s.UpdatedAt(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdatedAt() after clear error = %v, want ErrNotFound", err)
	}
}

func TestTokenStoreSetEmptyClears(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(openTestDB(t), "k")

	s.Set(ctx, "token")
	s.Set(ctx, "")
	if _, ok := s.Get(ctx); ok {
		t.Error("expected Set(\"\") to clear the token")
	}
}

func TestTokenStoreIsolatesSessionKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)
	a := newTestStore(db, "shell-a")
	b := newTestStore(db, "shell-b")

	a.Set(ctx, "token-a")
	if _, ok := b.Get(ctx); ok {
		t.Fatal("session b sees session a's token")
	}

	b.Set(ctx, "token-b")
	a.Clear(ctx)
	if tok, ok := b.Get(ctx); !ok || tok != "token-b" {
		t.Errorf("b.Get() = %q, %v after clearing a", tok, ok)
	}
}

func TestTokenStoreClosedDBDegradesToNoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)
	s := newTestStore(db, "k")
	_ = db.Close()

	s.Set(ctx, "token")
	s.Clear(ctx)
	if _, ok := s.Get(ctx); ok {
		t.Error("expected no token from closed database")
	}
}
