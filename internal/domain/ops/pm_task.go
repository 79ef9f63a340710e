package ops

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/propertyops/backend/internal/domain/shared"
)

// TaskPriority orders tasks for the property manager
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityNormal TaskPriority = "normal"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// IsValid checks if the task priority is valid
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityNormal, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// String returns the string representation
func (p TaskPriority) String() string {
	return string(p)
}

// TaskStatus represents progress through the PM task chain
type TaskStatus string

const (
	TaskStatusCreated        TaskStatus = "created"
	TaskStatusSentToPm       TaskStatus = "sent_to_pm"
	TaskStatusPmAcknowledged TaskStatus = "pm_acknowledged"
	TaskStatusInProgress     TaskStatus = "in_progress"
	TaskStatusCompleted      TaskStatus = "completed"
)

// taskOrder maps each status to its position in the chain
var taskOrder = map[TaskStatus]int{
	TaskStatusCreated:        0,
	TaskStatusSentToPm:       1,
	TaskStatusPmAcknowledged: 2,
	TaskStatusInProgress:     3,
	TaskStatusCompleted:      4,
}

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	_, ok := taskOrder[s]
	return ok
}

// String returns the string representation
func (s TaskStatus) String() string {
	return string(s)
}

// CanTransitionTo checks the move is forward along the chain. Any
// status may jump straight to completed.
func (s TaskStatus) CanTransitionTo(target TaskStatus) bool {
	if !target.IsValid() || s == target {
		return false
	}
	if target == TaskStatusCompleted {
		return true
	}
	return taskOrder[target] > taskOrder[s]
}

// PmTask is a work item sent to the property manager. Overdue is
// computed against a caller-supplied instant, never stored.
type PmTask struct {
	shared.BaseEntity
	PropertyID     *uuid.UUID
	Title          string
	Description    string
	Priority       TaskPriority
	Status         TaskStatus
	DueDate        *time.Time
	AcknowledgedAt *time.Time
	CompletedAt    *time.Time
}

// NewPmTask creates a new task in created status
func NewPmTask(title, description string, priority TaskPriority, propertyID *uuid.UUID, dueDate *time.Time, now time.Time) (*PmTask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Task title is required")
	}
	if priority == "" {
		priority = TaskPriorityNormal
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Invalid task priority: "+priority.String())
	}

	return &PmTask{
		BaseEntity:  shared.NewBaseEntityAt(now),
		PropertyID:  propertyID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      TaskStatusCreated,
		DueDate:     dueDate,
	}, nil
}

// UpdateDetails edits the task's editable fields. Completed tasks are
// frozen.
func (t *PmTask) UpdateDetails(title, description string, priority TaskPriority, dueDate *time.Time, now time.Time) error {
	if t.IsCompleted() {
		return shared.NewDomainError("TASK_COMPLETED", "Completed tasks cannot be edited")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Task title is required")
	}
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Invalid task priority: "+priority.String())
	}
	t.Title = title
	t.Description = description
	t.Priority = priority
	t.DueDate = dueDate
	t.UpdatedAt = now
	return nil
}

// Transition moves the task to a new status, stamping AcknowledgedAt
// and CompletedAt on first entry into those states.
func (t *PmTask) Transition(target TaskStatus, now time.Time) error {
	if !t.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TASK_TRANSITION",
			"Cannot move task from "+t.Status.String()+" to "+target.String())
	}
	t.Status = target
	switch target {
	case TaskStatusPmAcknowledged:
		if t.AcknowledgedAt == nil {
			t.AcknowledgedAt = &now
		}
	case TaskStatusCompleted:
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
	}
	t.UpdatedAt = now
	return nil
}

// IsCompleted reports whether the task reached the end of the chain
func (t *PmTask) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// IsOverdue reports whether the task has a due date in the past and is
// not completed.
func (t *PmTask) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.IsCompleted() {
		return false
	}
	return now.After(*t.DueDate)
}

// ResponseHours returns whole hours between creation and PM
// acknowledgement, rounded to the nearest hour. Returns false when the
// task was never acknowledged.
func (t *PmTask) ResponseHours() (int, bool) {
	if t.AcknowledgedAt == nil {
		return 0, false
	}
	d := t.AcknowledgedAt.Sub(t.CreatedAt)
	return int(d.Round(time.Hour) / time.Hour), true
}
