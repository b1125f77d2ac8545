package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskboard/api/internal/auth"
	"github.com/taskboard/api/internal/config"
	"github.com/taskboard/api/internal/models"
	"github.com/taskboard/api/internal/stores"
)

// fakeUserStore mirrors the SQL semantics of the pgx store: email
// uniqueness among active rows, soft-delete filtering on every read
// and the hash present only on the credential lookup.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error // forced failure for 500-path tests
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (s *fakeUserStore) CreateUser(_ context.Context, params stores.CreateUserParams) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	for _, u := range s.users {
		if u.Email == params.Email && u.DeletedAt == nil {
			return nil, stores.ErrUserEmailTaken
		}
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user

	clone := *user
	return &clone, nil
}

func (s *fakeUserStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	for _, u := range s.users {
		if u.Email == email && u.DeletedAt == nil {
			clone := *u
			return &clone, nil
		}
	}
	return nil, stores.ErrUserNotFound
}

func (s *fakeUserStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	u, ok := s.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, stores.ErrUserNotFound
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone, nil
}

func (s *fakeUserStore) UpdateUser(_ context.Context, params stores.UpdateUserParams) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	u, ok := s.users[params.ID]
	if !ok || u.DeletedAt != nil {
		return nil, stores.ErrUserNotFound
	}
	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Email != nil {
		u.Email = *params.Email
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone, nil
}

func (s *fakeUserStore) SoftDeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	if u, ok := s.users[id]; ok && u.DeletedAt == nil {
		now := time.Now()
		u.DeletedAt = &now
	}
	return nil
}

type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[string]*models.Task
	seq   map[string]int // insertion order, breaks created_at ties
	next  int
	err   error
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{
		tasks: make(map[string]*models.Task),
		seq:   make(map[string]int),
	}
}

func (s *fakeTaskStore) CreateTask(_ context.Context, params stores.CreateTaskParams) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status,
		AssignedTo:  params.AssignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	s.tasks[task.ID] = task
	s.next++
	s.seq[task.ID] = s.next

	clone := *task
	return &clone, nil
}

func (s *fakeTaskStore) FindTaskByID(_ context.Context, id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	task, ok := s.tasks[id]
	if !ok {
		return nil, stores.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (s *fakeTaskStore) FindTasksByAssignee(_ context.Context, userID string) ([]*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	tasks := make([]*models.Task, 0)
	for _, task := range s.tasks {
		if task.AssignedTo == userID {
			clone := *task
			tasks = append(tasks, &clone)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return s.seq[tasks[i].ID] > s.seq[tasks[j].ID]
	})
	return tasks, nil
}

func (s *fakeTaskStore) UpdateTask(_ context.Context, params stores.UpdateTaskParams) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	task, ok := s.tasks[params.ID]
	if !ok {
		return nil, stores.ErrTaskNotFound
	}
	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	task.UpdatedAt = time.Now()

	clone := *task
	return &clone, nil
}

func (s *fakeTaskStore) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	delete(s.tasks, id)
	delete(s.seq, id)
	return nil
}

func newTestIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("taskboard-test", []byte("test-signing-key"), time.Hour)
}

func newTestRouter(users stores.UserStore, tasks stores.TaskStore, issuer *auth.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := New(zerolog.Nop(), config.EnvDev, users, tasks, issuer)
	RegisterRoutes(router, h)
	return router
}

func doRequest(router *gin.Engine, method, target string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
}
