package todo

import "context"

// TokenStore persists the single auth token of the current session.
// Implementations never fail loudly: storage errors are logged and the call
// behaves as a no-op.
type TokenStore interface {
	Get(ctx context.Context) (token string, ok bool)
	Set(ctx context.Context, token string)
	Clear(ctx context.Context)
}
