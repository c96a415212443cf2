package domain

import (
	"errors"
	"strings"
	"time"
)

// Validation errors for Task fields.
var (
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrTaskTitleTooShort = errors.New("task title must be at least 2 characters")
	ErrTaskTitleTooLong  = errors.New("task title must be at most 200 characters")
)

// TaskStatus is the workflow state of a task. All pairwise transitions are
// legal; the only deterministic rule is the CompletedAt side effect applied
// by SetStatus.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusInReview   TaskStatus = "in_review"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether the status is one of the closed set.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority orders tasks by severity: low < medium < high < urgent.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether the priority is one of the closed set.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Rank returns the severity rank used for priority sorting.
func (p TaskPriority) Rank() int {
	switch p {
	case TaskPriorityLow:
		return 1
	case TaskPriorityMedium:
		return 2
	case TaskPriorityHigh:
		return 3
	case TaskPriorityUrgent:
		return 4
	}
	return 0
}

// Task belongs to exactly one project. AssignedToUserID is nullable;
// unassigned is a valid state. Deleting the assignee sets the field to null
// at the storage layer; the task survives.
type Task struct {
	ID               int64        `json:"id"`
	Title            string       `json:"title"`
	Description      *string      `json:"description,omitempty"`
	Status           TaskStatus   `json:"status"`
	Priority         TaskPriority `json:"priority"`
	DueDate          *time.Time   `json:"due_date,omitempty"`
	AssignedToUserID *int64       `json:"assigned_to_user_id,omitempty"`
	ProjectID        int64        `json:"project_id"`
	CreatedAt        time.Time    `json:"created_at"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
}

// NewTask creates a Task pending persistence. New tasks always start in Todo.
func NewTask(projectID int64, title string, description *string, priority TaskPriority, dueDate *time.Time, assigneeID *int64) (*Task, error) {
	task := &Task{
		Title:            title,
		Description:      description,
		Status:           TaskStatusTodo,
		Priority:         priority,
		DueDate:          dueDate,
		AssignedToUserID: assigneeID,
		ProjectID:        projectID,
		CreatedAt:        time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the Task's fields.
func (t *Task) Validate() error {
	switch n := len(strings.TrimSpace(t.Title)); {
	case n == 0:
		return ErrEmptyTaskTitle
	case n < 2:
		return ErrTaskTitleTooShort
	case n > 200:
		return ErrTaskTitleTooLong
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// SetStatus transitions the task and maintains the CompletedAt invariant:
// non-nil exactly when status is done. Re-setting the same status is a no-op
// for CompletedAt (idempotent).
func (t *Task) SetStatus(status TaskStatus, now time.Time) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	t.Status = status
	if status == TaskStatusDone {
		if t.CompletedAt == nil {
			completed := now.UTC()
			t.CompletedAt = &completed
		}
	} else {
		t.CompletedAt = nil
	}

	return nil
}
