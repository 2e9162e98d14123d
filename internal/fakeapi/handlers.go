package fakeapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/benjamonnguyen/todo"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req todo.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := requireCredentials(req.Email, req.Password); errs != nil {
		writeValidationError(w, errs...)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.l.Error("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user, err := s.store.CreateUser(req, hash)
	if errors.Is(err, ErrEmailTaken) {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		s.l.Error("failed to create user", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	s.writeAuthResponse(w, http.StatusCreated, user)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req todo.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := requireCredentials(req.Email, req.Password); errs != nil {
		writeValidationError(w, errs...)
		return
	}

	user, hash, err := s.store.UserByEmail(req.Email)
	if err != nil || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		writeUnauthorized(w, "Incorrect email or password")
		return
	}

	s.writeAuthResponse(w, http.StatusOK, user)
}

func (s *Server) writeAuthResponse(w http.ResponseWriter, code int, user todo.User) {
	token, err := s.tokens.issue(user)
	if err != nil {
		s.l.Error("failed to sign token", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	writeJSON(w, code, todo.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// logout only acknowledges; tokens stay valid until they expire.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := TaskQuery{
		Status:   todo.TaskStatus(query.Get("status")),
		Priority: todo.TaskPriority(query.Get("priority")),
		Tag:      query.Get("tag"),
	}

	var ok bool
	if q.Limit, ok = queryInt(w, r, "limit", defaultLimit, 1, maxLimit); !ok {
		return
	}
	if q.Offset, ok = queryInt(w, r, "offset", 0, 0, 0); !ok {
		return
	}

	writeJSON(w, http.StatusOK, s.store.ListTasks(ownerID(r), q))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req todo.CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeValidationError(w, missingField("body", "title"))
		return
	}
	if req.Priority != nil && !req.Priority.Valid() {
		writeError(w, http.StatusBadRequest, "Priority must be 'high', 'medium', or 'low'")
		return
	}

	writeJSON(w, http.StatusCreated, s.store.CreateTask(ownerID(r), req))
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentTask(r))
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var req todo.UpdateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, "Status must be 'pending' or 'completed'")
		return
	}
	if req.Priority != nil && !req.Priority.Valid() {
		writeError(w, http.StatusBadRequest, "Priority must be 'high', 'medium', or 'low'")
		return
	}

	task, err := s.store.UpdateTask(currentTask(r).ID, req)
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTask(currentTask(r).ID); err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.ToggleTask(currentTask(r).ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func requireCredentials(email, password string) []fieldError {
	var errs []fieldError
	if email == "" {
		errs = append(errs, missingField("body", "email"))
	}
	if password == "" {
		errs = append(errs, missingField("body", "password"))
	}
	return errs
}
