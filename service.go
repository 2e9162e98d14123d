package todo

import "context"

type AuthService interface {
	// SetToken applies token to subsequent requests. A non-nil error wraps
	// ErrTokenDecode; the token is applied regardless.
	SetToken(token string) error
	Register(context.Context, RegisterRequest) (AuthResponse, error)
	Login(context.Context, LoginRequest) (AuthResponse, error)
	Logout(context.Context) error
	CurrentUser(context.Context) (User, error)
}

// TaskService operates on the tasks of the authenticated user. Every method
// returns ErrUnauthenticated when no user is resolved from the token.
type TaskService interface {
	GetTasks(context.Context, ListTasksParams) ([]Task, error)
	GetTask(ctx context.Context, id int) (Task, error)
	CreateTask(context.Context, CreateTaskRequest) (Task, error)
	UpdateTask(ctx context.Context, id int, req UpdateTaskRequest) (Task, error)
	DeleteTask(ctx context.Context, id int) error
	ToggleTaskComplete(ctx context.Context, id int) (Task, error)
}
