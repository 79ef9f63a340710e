package ops

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/ops"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// RehabService provides application-level rehab project operations
type RehabService struct {
	rehabRepo    ops.RehabProjectRepository
	propertyRepo portfolio.PropertyRepository
	tx           shared.TxManager
	recorder     *appaudit.Recorder
	clock        shared.Clock
}

// NewRehabService creates a new RehabService
func NewRehabService(
	rehabRepo ops.RehabProjectRepository,
	propertyRepo portfolio.PropertyRepository,
	tx shared.TxManager,
	recorder *appaudit.Recorder,
	clock shared.Clock,
) *RehabService {
	return &RehabService{
		rehabRepo:    rehabRepo,
		propertyRepo: propertyRepo,
		tx:           tx,
		recorder:     recorder,
		clock:        clock,
	}
}

// CreateRehabRequest represents a request to open a rehab project
type CreateRehabRequest struct {
	PropertyID    uuid.UUID       `json:"property_id" binding:"required"`
	Scope         string          `json:"scope" binding:"required"`
	CostEstimate  decimal.Decimal `json:"cost_estimate"`
	StartDate     *time.Time      `json:"start_date"`
	TargetEndDate *time.Time      `json:"target_end_date"`
}

// UpdateRehabRequest represents a request to update a rehab project
type UpdateRehabRequest struct {
	StartDate     *time.Time       `json:"start_date"`
	TargetEndDate *time.Time       `json:"target_end_date"`
	ActualCost    *decimal.Decimal `json:"actual_cost"`
}

// ChangeRehabStatusRequest represents a request to move a project's
// status
type ChangeRehabStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AddMilestoneRequest represents a request to append a milestone
type AddMilestoneRequest struct {
	Name    string     `json:"name" binding:"required"`
	DueDate *time.Time `json:"due_date"`
}

// RehabListFilter defines filtering options for rehab list queries
type RehabListFilter struct {
	PropertyID string `form:"property_id"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// MilestoneResponse represents a rehab milestone in API responses
type MilestoneResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Position    int        `json:"position"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RehabResponse represents a rehab project in API responses
type RehabResponse struct {
	ID            uuid.UUID           `json:"id"`
	PropertyID    uuid.UUID           `json:"property_id"`
	Scope         string              `json:"scope"`
	StartDate     *time.Time          `json:"start_date,omitempty"`
	TargetEndDate *time.Time          `json:"target_end_date,omitempty"`
	CostEstimate  decimal.Decimal     `json:"cost_estimate"`
	ActualCost    decimal.Decimal     `json:"actual_cost"`
	Status        string              `json:"status"`
	Milestones    []MilestoneResponse `json:"milestones"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// CreateRehab opens a rehab project and moves the property into rehab
// status in the same transaction.
func (s *RehabService) CreateRehab(ctx context.Context, actorID string, req CreateRehabRequest) (*RehabResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	project, err := ops.NewRehabProject(req.PropertyID, req.Scope, req.CostEstimate, now)
	if err != nil {
		return nil, err
	}
	if err := project.SetDates(req.StartDate, req.TargetEndDate, now); err != nil {
		return nil, err
	}

	propertyFrom := property.Status.String()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.rehabRepo.Save(ctx, project); err != nil {
			return err
		}
		if property.Status != portfolio.PropertyStatusRehab {
			property.MarkRehab(now)
			if err := s.propertyRepo.Save(ctx, property); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "rehab_project", project.ID, audit.ActionCreated,
		audit.CreatedDetails{Summary: project.Scope}, actorID)
	if propertyFrom != portfolio.PropertyStatusRehab.String() {
		s.recorder.Record(ctx, "property", property.ID, audit.ActionStatusChanged,
			audit.StatusChangedDetails{From: propertyFrom, To: portfolio.PropertyStatusRehab.String()}, actorID)
	}

	return toRehabResponse(project), nil
}

// GetRehab gets a rehab project by ID
func (s *RehabService) GetRehab(ctx context.Context, id uuid.UUID) (*RehabResponse, error) {
	project, err := s.rehabRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRehabResponse(project), nil
}

// ListRehabs lists rehab projects with filtering
func (s *RehabService) ListRehabs(ctx context.Context, filter RehabListFilter) ([]RehabResponse, int64, error) {
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
		if !ops.RehabStatus(filter.Status).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid rehab status: "+filter.Status)
		}
		f.Filters["status"] = filter.Status
	}

	projects, err := s.rehabRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.rehabRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RehabResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, *toRehabResponse(&projects[i]))
	}
	return responses, total, nil
}

// UpdateRehab updates a project's dates and actual cost
func (s *RehabService) UpdateRehab(ctx context.Context, actorID string, id uuid.UUID, req UpdateRehabRequest) (*RehabResponse, error) {
	project, err := s.rehabRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := project.SetDates(req.StartDate, req.TargetEndDate, now); err != nil {
		return nil, err
	}
	if req.ActualCost != nil {
		if err := project.RecordActualCost(*req.ActualCost, now); err != nil {
			return nil, err
		}
	}

	if err := s.rehabRepo.Save(ctx, project); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "rehab_project", project.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"details"}}, actorID)

	return toRehabResponse(project), nil
}

// ChangeRehabStatus moves a project's status. Completing a project
// leaves the property in rehab; the property move back is explicit.
func (s *RehabService) ChangeRehabStatus(ctx context.Context, actorID string, id uuid.UUID, req ChangeRehabStatusRequest) (*RehabResponse, error) {
	project, err := s.rehabRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := project.Status.String()
	if err := project.ChangeStatus(ops.RehabStatus(req.Status), s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.rehabRepo.Save(ctx, project); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "rehab_project", project.ID, audit.ActionStatusChanged,
		audit.StatusChangedDetails{From: from, To: project.Status.String()}, actorID)

	return toRehabResponse(project), nil
}

// AddMilestone appends a milestone to the project
func (s *RehabService) AddMilestone(ctx context.Context, actorID string, id uuid.UUID, req AddMilestoneRequest) (*RehabResponse, error) {
	project, err := s.rehabRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := project.AddMilestone(req.Name, req.DueDate, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.rehabRepo.Save(ctx, project); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "rehab_project", project.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"milestones"}}, actorID)

	return toRehabResponse(project), nil
}

// CompleteMilestone stamps a milestone's completion time
func (s *RehabService) CompleteMilestone(ctx context.Context, actorID string, id, milestoneID uuid.UUID) (*RehabResponse, error) {
	project, err := s.rehabRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := project.CompleteMilestone(milestoneID, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.rehabRepo.Save(ctx, project); err != nil {
		return nil, err
	}

	name := ""
	for _, m := range project.Milestones {
		if m.ID == milestoneID {
			name = m.Name
			break
		}
	}
	s.recorder.Record(ctx, "rehab_project", project.ID, audit.ActionMilestoneCompleted,
		audit.MilestoneCompletedDetails{MilestoneID: milestoneID, Name: name}, actorID)

	return toRehabResponse(project), nil
}

// DeleteRehab deletes a rehab project
func (s *RehabService) DeleteRehab(ctx context.Context, actorID string, id uuid.UUID) error {
	project, err := s.rehabRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.rehabRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, "rehab_project", id, audit.ActionDeleted,
		audit.DeletedDetails{Summary: project.Scope}, actorID)
	return nil
}

func toRehabResponse(project *ops.RehabProject) *RehabResponse {
	milestones := make([]MilestoneResponse, 0, len(project.Milestones))
	for _, m := range project.Milestones {
		milestones = append(milestones, MilestoneResponse{
			ID:          m.ID,
			Name:        m.Name,
			Position:    m.Position,
			DueDate:     m.DueDate,
			CompletedAt: m.CompletedAt,
		})
	}
	return &RehabResponse{
		ID:            project.ID,
		PropertyID:    project.PropertyID,
		Scope:         project.Scope,
		StartDate:     project.StartDate,
		TargetEndDate: project.TargetEndDate,
		CostEstimate:  project.CostEstimate,
		ActualCost:    project.ActualCost,
		Status:        project.Status.String(),
		Milestones:    milestones,
		CreatedAt:     project.CreatedAt,
		UpdatedAt:     project.UpdatedAt,
	}
}
