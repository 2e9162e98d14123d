// Package fakeapi is an in-memory implementation of the task service, for
// local development and end-to-end tests of the client.
package fakeapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/benjamonnguyen/todo"
	"github.com/benjamonnguyen/todo/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTokenTTL = 60 * time.Minute

type Config struct {
	Secret   string
	TokenTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type Server struct {
	store      *Store
	tokens     *tokenIssuer
	bcryptCost int
	l          todo.Logger
	router     chi.Router
}

type ctxKey int

const (
	ctxRequestID ctxKey = iota
	ctxUser
	ctxOwnerID
	ctxTask
)

func NewServer(cfg Config, store *Store, logger todo.Logger) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	s := &Server{
		store: store,
		tokens: &tokenIssuer{
			secret: []byte(cfg.Secret),
			ttl:    cfg.TokenTTL,
			now:    time.Now,
		},
		bcryptCost: cfg.BcryptCost,
		l:          logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID, s.logRequests, middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Post("/logout", s.logout)
			r.Get("/me", s.me)
		})
	})

	r.Route("/api/{userID}/tasks", func(r chi.Router) {
		r.Use(s.authenticate, s.authorizeOwner)
		r.Get("/", s.listTasks)
		r.Post("/", s.createTask)
		r.Route("/{taskID}", func(r chi.Router) {
			r.Use(s.loadTask)
			r.Get("/", s.getTask)
			r.Put("/", s.updateTask)
			r.Delete("/", s.deleteTask)
			r.Patch("/complete", s.toggleTask)
		})
	})

	return r
}

// requestID propagates the caller's request id or assigns a new one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(httpapi.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(httpapi.HeaderRequestID, id)
		ctx := context.WithValue(r.Context(), ctxRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.l.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"requestID", r.Context().Value(ctxRequestID),
			"duration", time.Since(start).String(),
		)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			writeUnauthorized(w, "Not authenticated")
			return
		}

		userID, err := s.tokens.verify(token)
		if err != nil {
			s.l.Debug("rejected token", "error", err)
			writeUnauthorized(w, "Could not validate credentials")
			return
		}
		user, err := s.store.User(userID)
		if err != nil {
			writeUnauthorized(w, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), ctxUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authorizeOwner rejects access to another user's task collection.
func (s *Server) authorizeOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := pathInt(w, r, "userID", "user_id")
		if !ok {
			return
		}
		if currentUser(r).ID != ownerID {
			writeError(w, http.StatusForbidden, "Access denied: You can only access your own resources")
			return
		}
		ctx := context.WithValue(r.Context(), ctxOwnerID, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loadTask(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		taskID, ok := pathInt(w, r, "taskID", "task_id")
		if !ok {
			return
		}
		task, err := s.store.Task(taskID)
		if err != nil {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		if task.UserID != ownerID(r) {
			writeError(w, http.StatusForbidden, "Access denied: Task does not belong to you")
			return
		}
		ctx := context.WithValue(r.Context(), ctxTask, task)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) todo.User {
	u, _ := r.Context().Value(ctxUser).(todo.User)
	return u
}

func ownerID(r *http.Request) int {
	id, _ := r.Context().Value(ctxOwnerID).(int)
	return id
}

func currentTask(r *http.Request) todo.Task {
	t, _ := r.Context().Value(ctxTask).(todo.Task)
	return t
}
