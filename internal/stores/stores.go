package stores

import (
	"context"
	"errors"

	"github.com/taskboard/api/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserEmailTaken = errors.New("user email already taken")
	ErrTaskNotFound   = errors.New("task not found")
)

type UserStore interface {
	// CreateUser inserts a user with a generated id.
	//
	// Uniqueness of the email is left to the database constraint;
	// a violation is reported as ErrUserEmailTaken.
	CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error)

	// FindUserByEmail returns the user with the given email including
	// its password hash. It is the credential lookup used by login and
	// the only read that carries the hash. Soft-deleted users are
	// excluded. Returns ErrUserNotFound when there is no match.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// FindUserByID returns the user without its password hash,
	// excluding soft-deleted rows.
	FindUserByID(ctx context.Context, id string) (*models.User, error)

	// UpdateUser overwrites name and/or email, keeping the stored
	// value for any nil field. Returns ErrUserNotFound when the id
	// does not match an active user.
	UpdateUser(ctx context.Context, params UpdateUserParams) (*models.User, error)

	// SoftDeleteUser stamps deleted_at on the user. Deleting an
	// already-deleted or unknown id is a no-op, not an error.
	SoftDeleteUser(ctx context.Context, id string) error
}

type TaskStore interface {
	// CreateTask inserts a task with a generated id. An empty status
	// defaults to models.StatusPending. The assignee id is stored
	// as given, without checking that such a user exists.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// FindTaskByID returns the task or ErrTaskNotFound.
	FindTaskByID(ctx context.Context, id string) (*models.Task, error)

	// FindTasksByAssignee returns the assignee's tasks newest-created
	// first. No tasks is not an error; the slice is just empty.
	FindTasksByAssignee(ctx context.Context, userID string) ([]*models.Task, error)

	// UpdateTask overwrites title, description and/or status (nil
	// fields keep their stored values) and stamps updated_at.
	// Returns ErrTaskNotFound when the id does not match.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the row. Unknown ids are a no-op.
	DeleteTask(ctx context.Context, id string) error
}

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

type UpdateUserParams struct {
	ID    string
	Name  *string
	Email *string
}

type CreateTaskParams struct {
	Title       string
	Description string
	Status      string
	AssignedTo  string
}

type UpdateTaskParams struct {
	ID          string
	Title       *string
	Description *string
	Status      *string
}
