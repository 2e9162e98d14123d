package fakeapi

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/benjamonnguyen/todo"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrNotFound   = errors.New("not found")
)

type account struct {
	user         todo.User
	passwordHash []byte
}

// TaskQuery selects a page of one user's tasks. Empty fields do not filter.
type TaskQuery struct {
	Status   todo.TaskStatus
	Priority todo.TaskPriority
	Tag      string
	Limit    int
	Offset   int
}

// Store keeps users and tasks in memory. IDs are assigned sequentially
// from 1 and never reused.
type Store struct {
	mu         sync.RWMutex
	now        func() time.Time
	lastUserID int
	lastTaskID int
	accounts   map[int]*account
	emails     map[string]int
	tasks      map[int]*todo.Task
}

func NewStore() *Store {
	return &Store{
		now:      time.Now,
		accounts: make(map[int]*account),
		emails:   make(map[string]int),
		tasks:    make(map[int]*todo.Task),
	}
}

func (s *Store) CreateUser(req todo.RegisterRequest, passwordHash []byte) (todo.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(req.Email)
	if _, ok := s.emails[key]; ok {
		return todo.User{}, ErrEmailTaken
	}

	s.lastUserID++
	u := todo.User{
		ID:        s.lastUserID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: todo.NewTimestamp(s.now().UTC()),
	}
	s.accounts[u.ID] = &account{user: u, passwordHash: passwordHash}
	s.emails[key] = u.ID
	return u, nil
}

// UserByEmail returns the user and their password hash.
func (s *Store) UserByEmail(email string) (todo.User, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return todo.User{}, nil, ErrNotFound
	}
	a := s.accounts[id]
	return a.user, a.passwordHash, nil
}

func (s *Store) User(id int) (todo.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return todo.User{}, ErrNotFound
	}
	return a.user, nil
}

// ListTasks returns the user's tasks matching q, ordered by id.
func (s *Store) ListTasks(userID int, q TaskQuery) []todo.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []todo.Task
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		if q.Priority != "" && t.Priority != q.Priority {
			continue
		}
		if q.Tag != "" && !slices.Contains(t.Tags, q.Tag) {
			continue
		}
		matched = append(matched, cloneTask(t))
	}
	slices.SortFunc(matched, func(a, b todo.Task) int {
		return a.ID - b.ID
	})

	if q.Offset >= len(matched) {
		return []todo.Task{}
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched
}

func (s *Store) Task(id int) (todo.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return todo.Task{}, ErrNotFound
	}
	return cloneTask(t), nil
}

func (s *Store) CreateTask(userID int, req todo.CreateTaskRequest) todo.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTaskID++
	now := todo.NewTimestamp(s.now().UTC())
	t := &todo.Task{
		ID:          s.lastTaskID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      todo.StatusPending,
		Priority:    todo.PriorityMedium,
		Tags:        []string{},
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Tags != nil {
		t.Tags = slices.Clone(req.Tags)
	}
	s.tasks[t.ID] = t
	return cloneTask(t)
}

// UpdateTask applies the non-nil fields of req.
func (s *Store) UpdateTask(id int, req todo.UpdateTaskRequest) (todo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return todo.Task{}, ErrNotFound
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Tags != nil {
		t.Tags = slices.Clone(req.Tags)
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	t.UpdatedAt = todo.NewTimestamp(s.now().UTC())
	return cloneTask(t), nil
}

func (s *Store) ToggleTask(id int) (todo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return todo.Task{}, ErrNotFound
	}
	if t.Status == todo.StatusCompleted {
		t.Status = todo.StatusPending
	} else {
		t.Status = todo.StatusCompleted
	}
	t.UpdatedAt = todo.NewTimestamp(s.now().UTC())
	return cloneTask(t), nil
}

func (s *Store) DeleteTask(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func cloneTask(t *todo.Task) todo.Task {
	c := *t
	c.Tags = slices.Clone(t.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c
}
