package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/benjamonnguyen/todo"
)

const loginResponse = `{"access_token":"h.eyJzdWIiOiI0MiJ9.s","token_type":"bearer",
	"user":{"id":42,"email":"a@b.com","first_name":"Ada","created_at":"2024-05-01T09:00:00"}}`

func TestLoginAdoptsToken(t *testing.T) {
	t.Parallel()
	doer := &MockDoer{DoFunc: respondWith(http.StatusOK, loginResponse)}
	c := newTestClient(doer)

	resp, err := c.Login(context.Background(), todo.LoginRequest{Email: "a@b.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.User.ID != 42 || resp.User.DisplayName() != "Ada" {
		t.Errorf("unexpected user: %+v", resp.User)
	}
	if c.Token() != "h.eyJzdWIiOiI0MiJ9.s" {
		t.Errorf("Token() = %q", c.Token())
	}
	if id, ok := c.UserID(); !ok || id != 42 {
		t.Errorf("UserID() = %d, %v", id, ok)
	}

	req := doer.LastRequest()
	if req.Method != http.MethodPost || req.URL.Path != EndpointLogin {
		t.Errorf("request = %s %s", req.Method, req.URL.Path)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("login should be sent without a bearer token")
	}
	var body todo.LoginRequest
	if err := json.Unmarshal([]byte(doer.Bodies[0]), &body); err != nil || body.Email != "a@b.com" {
		t.Errorf("unexpected body %q: %v", doer.Bodies[0], err)
	}
}

func TestLoginFailureKeepsState(t *testing.T) {
	t.Parallel()
	doer := &MockDoer{DoFunc: respondWith(http.StatusUnauthorized, `{"detail":"Incorrect email or password"}`)}
	c := newTestClient(doer)

	_, err := c.Login(context.Background(), todo.LoginRequest{Email: "a@b.com", Password: "nope"})
	if err == nil || err.Error() != "Incorrect email or password" {
		t.Fatalf("error = %v", err)
	}
	if c.Token() != "" {
		t.Errorf("Token() = %q, want empty", c.Token())
	}
}

func TestLoginWithoutTokenKeepsCurrentToken(t *testing.T) {
	t.Parallel()
	doer := &MockDoer{DoFunc: respondWith(http.StatusOK, `{"access_token":"","user":{"id":7,"email":"b@c.com"}}`)}
	c := newAuthedClient(doer)
	before := c.Token()

	if _, err := c.Login(context.Background(), todo.LoginRequest{Email: "b@c.com", Password: "secret"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if c.Token() != before {
		t.Errorf("Token() = %q, want %q", c.Token(), before)
	}
	if id, ok := c.UserID(); !ok || id != 42 {
		t.Errorf("UserID() = %d, %v, want 42", id, ok)
	}
}

func TestRegisterOmitsEmptyNames(t *testing.T) {
	t.Parallel()
	doer := &MockDoer{DoFunc: respondWith(http.StatusCreated, loginResponse)}
	c := newTestClient(doer)

	_, err := c.Register(context.Background(), todo.RegisterRequest{Email: "a@b.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if doer.Bodies[0] != `{"email":"a@b.com","password":"secret"}` {
		t.Errorf("body = %s", doer.Bodies[0])
	}
	if doer.LastRequest().URL.Path != EndpointRegister {
		t.Errorf("path = %s", doer.LastRequest().URL.Path)
	}
	if _, ok := c.UserID(); !ok {
		t.Error("expected token to be adopted")
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()
	doer := &MockDoer{DoFunc: respondWith(http.StatusOK, `{"message":"Successfully logged out"}`)}
	c := newAuthedClient(doer)
	token := c.Token()

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	req := doer.LastRequest()
	if req.Method != http.MethodPost || req.URL.Path != EndpointLogout {
		t.Errorf("request = %s %s", req.Method, req.URL.Path)
	}
	if req.Header.Get("Authorization") != "Bearer "+token {
		t.Error("logout should carry the bearer token")
	}
	if c.Token() != "" {
		t.Error("token should be cleared")
	}
	if _, ok := c.UserID(); ok {
		t.Error("user id should be cleared")
	}
}

func TestLogoutFailureKeepsToken(t *testing.T) {
	t.Parallel()
	errDown := errors.New("network down")
	doer := &MockDoer{
		DoFunc: func(*http.Request) (*http.Response, error) {
			return nil, errDown
		},
	}
	c := newAuthedClient(doer)

	if err := c.Logout(context.Background()); !errors.Is(err, errDown) {
		t.Fatalf("error = %v", err)
	}
	if c.Token() == "" {
		t.Error("token should be kept when the remote call fails")
	}
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()
	doer := &MockDoer{DoFunc: respondWith(http.StatusOK, `{"id":42,"email":"a@b.com","first_name":null,"last_name":null,"created_at":"2024-05-01T09:00:00"}`)}
	c := newAuthedClient(doer)

	user, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.ID != 42 || user.FirstName != nil || user.DisplayName() != "a@b.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.CreatedAt.Year() != 2024 {
		t.Errorf("created_at = %v", user.CreatedAt)
	}
	if doer.LastRequest().Method != http.MethodGet {
		t.Error("expected GET")
	}
}
