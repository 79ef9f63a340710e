package ops

import (
	"context"
	"time"

	"github.com/google/uuid"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/ops"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// TaskService provides application-level PM task operations
type TaskService struct {
	taskRepo     ops.PmTaskRepository
	propertyRepo portfolio.PropertyRepository
	recorder     *appaudit.Recorder
	clock        shared.Clock
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo ops.PmTaskRepository,
	propertyRepo portfolio.PropertyRepository,
	recorder *appaudit.Recorder,
	clock shared.Clock,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		propertyRepo: propertyRepo,
		recorder:     recorder,
		clock:        clock,
	}
}

// CreateTaskRequest represents a request to create a PM task
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	PropertyID  *uuid.UUID `json:"property_id"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest represents a request to edit a PM task
type UpdateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"required"`
	DueDate     *time.Time `json:"due_date"`
}

// TransitionTaskRequest represents a request to move a task along its
// chain
type TransitionTaskRequest struct {
	Status string `json:"status" binding:"required"`
}

// TaskListFilter defines filtering options for task list queries
type TaskListFilter struct {
	PropertyID string `form:"property_id"`
	Status     string `form:"status"`
	Priority   string `form:"priority"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// TaskResponse represents a PM task in API responses
type TaskResponse struct {
	ID             uuid.UUID  `json:"id"`
	PropertyID     *uuid.UUID `json:"property_id,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	Overdue        bool       `json:"overdue"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CreateTask creates a new PM task
func (s *TaskService) CreateTask(ctx context.Context, actorID string, req CreateTaskRequest) (*TaskResponse, error) {
	if req.PropertyID != nil {
		if _, err := s.propertyRepo.FindByID(ctx, *req.PropertyID); err != nil {
			return nil, err
		}
	}

	task, err := ops.NewPmTask(req.Title, req.Description, ops.TaskPriority(req.Priority), req.PropertyID, req.DueDate, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "pm_task", task.ID, audit.ActionCreated,
		audit.CreatedDetails{Summary: task.Title}, actorID)

	return s.toTaskResponse(task), nil
}

// GetTask gets a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toTaskResponse(task), nil
}

// ListTasks lists tasks with filtering
func (s *TaskService) ListTasks(ctx context.Context, filter TaskListFilter) ([]TaskResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.PropertyID != "" {
		id, err := uuid.Parse(filter.PropertyID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid property id")
		}
		f.Filters["property_id"] = id
	}
	if filter.Status != "" {
		if !ops.TaskStatus(filter.Status).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid task status: "+filter.Status)
		}
		f.Filters["status"] = filter.Status
	}
	if filter.Priority != "" {
		if !ops.TaskPriority(filter.Priority).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid task priority: "+filter.Priority)
		}
		f.Filters["priority"] = filter.Priority
	}

	tasks, err := s.taskRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.taskRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *s.toTaskResponse(&tasks[i]))
	}
	return responses, total, nil
}

// UpdateTask edits a task's editable fields
func (s *TaskService) UpdateTask(ctx context.Context, actorID string, id uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := task.UpdateDetails(req.Title, req.Description, ops.TaskPriority(req.Priority), req.DueDate, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "pm_task", task.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"details"}}, actorID)

	return s.toTaskResponse(task), nil
}

// TransitionTask moves a task along its status chain
func (s *TaskService) TransitionTask(ctx context.Context, actorID string, id uuid.UUID, req TransitionTaskRequest) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := task.Status.String()
	if err := task.Transition(ops.TaskStatus(req.Status), s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "pm_task", task.ID, audit.ActionStatusChanged,
		audit.StatusChangedDetails{From: from, To: task.Status.String()}, actorID)

	return s.toTaskResponse(task), nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, actorID string, id uuid.UUID) error {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, "pm_task", id, audit.ActionDeleted,
		audit.DeletedDetails{Summary: task.Title}, actorID)
	return nil
}

func (s *TaskService) toTaskResponse(task *ops.PmTask) *TaskResponse {
	return &TaskResponse{
		ID:             task.ID,
		PropertyID:     task.PropertyID,
		Title:          task.Title,
		Description:    task.Description,
		Priority:       task.Priority.String(),
		Status:         task.Status.String(),
		DueDate:        task.DueDate,
		AcknowledgedAt: task.AcknowledgedAt,
		CompletedAt:    task.CompletedAt,
		Overdue:        task.IsOverdue(s.clock.Now()),
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}
