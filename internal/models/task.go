package models

import "time"

// StatusPending is assigned to tasks created without an explicit status.
// The status column is otherwise free-form.
const StatusPending = "pending"

type Task struct {
	ID          string
	Title       string
	Description string
	Status      string
	AssignedTo  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
