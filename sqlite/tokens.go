package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Thiht/transactor"
	txStdLib "github.com/Thiht/transactor/stdlib"

	"github.com/benjamonnguyen/todo"
)

const (
	SelectToken = "SELECT session_key, token, updated_at FROM auth_tokens"
)

type tokenEntity struct {
	SessionKey string
	Token      string
	UpdatedAt  int64
}

// TokenStore keeps one token per session key.
type TokenStore struct {
	transactor transactor.Transactor
	dbGetter   txStdLib.DBGetter
	sessionKey string
	l          todo.Logger
}

var _ todo.TokenStore = (*TokenStore)(nil)

func NewTokenStore(tx transactor.Transactor, dbGetter txStdLib.DBGetter, sessionKey string, logger todo.Logger) *TokenStore {
	return &TokenStore{
		transactor: tx,
		dbGetter:   dbGetter,
		sessionKey: sessionKey,
		l:          logger,
	}
}

func (s *TokenStore) Get(ctx context.Context) (string, bool) {
	e, err := s.get(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.l.Warn("failed to read token", "sessionKey", s.sessionKey, "error", err)
		}
		return "", false
	}
	return e.Token, e.Token != ""
}

// Set replaces the stored token. An empty token clears it.
func (s *TokenStore) Set(ctx context.Context, token string) {
	if token == "" {
		s.Clear(ctx)
		return
	}

	e := tokenEntity{
		SessionKey: s.sessionKey,
		Token:      token,
		UpdatedAt:  time.Now().Unix(),
	}
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		db := s.dbGetter(ctx)
		if _, err := db.ExecContext(ctx, "DELETE FROM auth_tokens WHERE session_key = ?", e.SessionKey); err != nil {
			return err
		}
		query := "INSERT INTO auth_tokens (session_key, token, updated_at) VALUES (?, ?, ?)"
		s.l.Debug("storing token", "query", query, "sessionKey", e.SessionKey)
		_, err := db.ExecContext(ctx, query, e.SessionKey, e.Token, e.UpdatedAt)
		return err
	})
	if err != nil {
		s.l.Warn("failed to store token", "sessionKey", s.sessionKey, "error", err)
	}
}

func (s *TokenStore) Clear(ctx context.Context) {
	query := "DELETE FROM auth_tokens WHERE session_key = ?"
	s.l.Debug("clearing token", "query", query, "sessionKey", s.sessionKey)
	if _, err := s.dbGetter(ctx).ExecContext(ctx, query, s.sessionKey); err != nil {
		s.l.Warn("failed to clear token", "sessionKey", s.sessionKey, "error", err)
	}
}

// UpdatedAt reports when the token was last stored.
func (s *TokenStore) UpdatedAt(ctx context.Context) (time.Time, error) {
	e, err := s.get(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(e.UpdatedAt, 0).Local(), nil
}

func (s *TokenStore) get(ctx context.Context) (tokenEntity, error) {
	row := s.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE session_key=?", SelectToken), s.sessionKey,
	)
	return extractToken(row)
}

func extractToken(sc scannable) (tokenEntity, error) {
	var e tokenEntity
	if err := sc.Scan(&e.SessionKey, &e.Token, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tokenEntity{}, fmt.Errorf("failed to extract token: %w", ErrNotFound)
		}
		return tokenEntity{}, err
	}
	return e, nil
}
