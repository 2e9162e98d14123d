package session

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/benjamonnguyen/todo"
)

type MockAuthService struct {
	mu sync.Mutex

	SetTokenFunc    func(token string) error
	RegisterFunc    func(ctx context.Context, req todo.RegisterRequest) (todo.AuthResponse, error)
	LoginFunc       func(ctx context.Context, req todo.LoginRequest) (todo.AuthResponse, error)
	LogoutFunc      func(ctx context.Context) error
	CurrentUserFunc func(ctx context.Context) (todo.User, error)

	Token            string
	SetTokenCalls    []string
	RegisterCalls    []todo.RegisterRequest
	LoginCalls       []todo.LoginRequest
	LogoutCount      int
	CurrentUserCount int
}

var _ todo.AuthService = (*MockAuthService)(nil)

func (m *MockAuthService) SetToken(token string) error {
	m.mu.Lock()
	m.Token = token
	m.SetTokenCalls = append(m.SetTokenCalls, token)
	m.mu.Unlock()
	if m.SetTokenFunc != nil {
		return m.SetTokenFunc(token)
	}
	return nil
}

func (m *MockAuthService) Register(ctx context.Context, req todo.RegisterRequest) (todo.AuthResponse, error) {
	m.mu.Lock()
	m.RegisterCalls = append(m.RegisterCalls, req)
	m.mu.Unlock()
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return todo.AuthResponse{}, nil
}

func (m *MockAuthService) Login(ctx context.Context, req todo.LoginRequest) (todo.AuthResponse, error) {
	m.mu.Lock()
	m.LoginCalls = append(m.LoginCalls, req)
	m.mu.Unlock()
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return todo.AuthResponse{}, nil
}

func (m *MockAuthService) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.LogoutCount++
	m.mu.Unlock()
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockAuthService) CurrentUser(ctx context.Context) (todo.User, error) {
	m.mu.Lock()
	m.CurrentUserCount++
	m.mu.Unlock()
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return todo.User{}, nil
}

// doerFunc adapts a function to httpapi.Doer.
type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Status:     http.StatusText(code),
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
