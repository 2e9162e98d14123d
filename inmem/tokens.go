// Package inmem implements todo.TokenStore for the lifetime of the process.
package inmem

import (
	"context"
	"sync"

	"github.com/benjamonnguyen/todo"
)

type TokenStore struct {
	mu    sync.RWMutex
	token string
}

var _ todo.TokenStore = (*TokenStore)(nil)

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns false when nothing is stored. A nil store has no storage
// medium and never holds a token.
func (s *TokenStore) Get(_ context.Context) (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *TokenStore) Set(_ context.Context, token string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *TokenStore) Clear(_ context.Context) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
