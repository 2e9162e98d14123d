// Package session owns the client's authentication lifecycle: restoring a
// stored token at startup, login, signup, logout and refreshing the user.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/benjamonnguyen/todo"
	"github.com/benjamonnguyen/todo/charmlog"
)

// ErrNoAccessToken is returned when the service accepts credentials but
// sends back no token.
var ErrNoAccessToken = errors.New("auth response has no access token")

// Controller is the only writer of session state. Its accessors are safe
// for concurrent use.
type Controller struct {
	api   todo.AuthService
	store todo.TokenStore
	l     todo.Logger

	mu     sync.RWMutex
	status todo.SessionStatus
	user   *todo.User
	token  string
}

func New(api todo.AuthService, store todo.TokenStore, logger todo.Logger) *Controller {
	if logger == nil {
		logger = charmlog.Discard()
	}
	return &Controller{
		api:    api,
		store:  store,
		l:      logger,
		status: todo.SessionInitializing,
	}
}

// Start restores the session from the stored token. An undecodable token or
// a failed user fetch clears the stored session and the error is returned;
// the controller is Anonymous either way.
func (c *Controller) Start(ctx context.Context) error {
	token, ok := c.store.Get(ctx)
	if !ok {
		c.l.Debug("no stored token")
		c.setState(todo.SessionAnonymous, nil, "")
		return nil
	}

	if err := c.api.SetToken(token); err != nil {
		c.l.Warn("discarding corrupted session", "error", err)
		c.resetLocal(ctx)
		return err
	}

	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		c.l.Info("stored session rejected", "error", err)
		c.resetLocal(ctx)
		return err
	}

	c.setState(todo.SessionAuthenticated, &user, token)
	c.l.Debug("session restored", "userID", user.ID)
	return nil
}

// Login leaves the session untouched on failure.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	resp, err := c.api.Login(ctx, todo.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	return c.adopt(ctx, resp)
}

// Signup registers and signs in. Empty names are not sent.
func (c *Controller) Signup(ctx context.Context, email, password, firstName, lastName string) error {
	req := todo.RegisterRequest{
		Email:    email,
		Password: password,
	}
	if firstName != "" {
		req.FirstName = &firstName
	}
	if lastName != "" {
		req.LastName = &lastName
	}

	resp, err := c.api.Register(ctx, req)
	if err != nil {
		return err
	}
	return c.adopt(ctx, resp)
}

// Logout always ends the local session, even when the service cannot be
// reached.
func (c *Controller) Logout(ctx context.Context) {
	c.invalidateRemote(ctx)
	c.resetLocal(ctx)
}

// RefreshUser re-reads the stored token and fetches the user it belongs to.
func (c *Controller) RefreshUser(ctx context.Context) error {
	token, ok := c.store.Get(ctx)
	if !ok {
		c.setState(todo.SessionAnonymous, nil, "")
		return nil
	}

	if err := c.api.SetToken(token); err != nil {
		c.l.Warn("discarding corrupted session", "error", err)
		c.resetLocal(ctx)
		return err
	}

	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		c.resetLocal(ctx)
		return err
	}
	c.setState(todo.SessionAuthenticated, &user, token)
	return nil
}

func (c *Controller) User() (todo.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return todo.User{}, false
	}
	return *c.user, true
}

func (c *Controller) Status() todo.SessionStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

func (c *Controller) IsAuthenticated() bool {
	return c.Status() == todo.SessionAuthenticated
}

func (c *Controller) Snapshot() todo.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := todo.Session{
		Status: c.status,
		Token:  c.token,
	}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	return s
}

// adopt makes resp the current session. A response without a token leaves
// the session untouched.
func (c *Controller) adopt(ctx context.Context, resp todo.AuthResponse) error {
	if resp.AccessToken == "" {
		c.l.Error("rejecting auth response", "error", ErrNoAccessToken, "userID", resp.User.ID)
		return ErrNoAccessToken
	}
	c.store.Set(ctx, resp.AccessToken)
	user := resp.User
	c.setState(todo.SessionAuthenticated, &user, resp.AccessToken)
	c.l.Info("signed in", "userID", user.ID)
	return nil
}

func (c *Controller) invalidateRemote(ctx context.Context) {
	if err := c.api.Logout(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			c.l.Debug("logout canceled", "error", err)
			return
		}
		c.l.Error("failed to invalidate session remotely", "error", err)
	}
}

func (c *Controller) resetLocal(ctx context.Context) {
	c.store.Clear(ctx)
	_ = c.api.SetToken("")
	c.setState(todo.SessionAnonymous, nil, "")
}

func (c *Controller) setState(status todo.SessionStatus, user *todo.User, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
	c.user = user
	c.token = token
}
