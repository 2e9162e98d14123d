package inmem

import (
	"context"
	"testing"
)

func TestTokenStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewTokenStore()

	if _, ok := s.Get(ctx); ok {
		t.Fatal("expected empty store")
	}

	s.Set(ctx, "first")
	s.Set(ctx, "second")
	if tok, ok := s.Get(ctx); !ok || tok != "second" {
		t.Errorf("Get() = %q, %v; want second, true", tok, ok)
	}

	s.Clear(ctx)
	if _, ok := s.Get(ctx); ok {
		t.Error("expected cleared store")
	}
}

func TestNilTokenStoreIsNoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var s *TokenStore

	s.Set(ctx, "token")
	s.Clear(ctx)
	if tok, ok := s.Get(ctx); ok || tok != "" {
		t.Errorf("Get() on nil store = %q, %v", tok, ok)
	}
}
