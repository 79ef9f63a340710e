package ops

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/shared"
)

// RehabStatus represents the lifecycle of a rehab project
type RehabStatus string

const (
	RehabStatusPlanned    RehabStatus = "planned"
	RehabStatusInProgress RehabStatus = "in_progress"
	RehabStatusOnHold     RehabStatus = "on_hold"
	RehabStatusCompleted  RehabStatus = "completed"
)

// IsValid checks if the rehab status is valid
func (s RehabStatus) IsValid() bool {
	switch s {
	case RehabStatusPlanned, RehabStatusInProgress, RehabStatusOnHold, RehabStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation
func (s RehabStatus) String() string {
	return string(s)
}

// RehabMilestone is one ordered step of a rehab project
type RehabMilestone struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Position    int        `json:"position"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RehabProject tracks renovation work on a property. Creating a
// project sets the property to rehab status; completing it does not
// change the property back, that move stays explicit.
type RehabProject struct {
	shared.BaseEntity
	PropertyID    uuid.UUID
	Scope         string
	StartDate     *time.Time
	TargetEndDate *time.Time
	CostEstimate  decimal.Decimal
	ActualCost    decimal.Decimal
	Status        RehabStatus
	Milestones    []RehabMilestone
}

// NewRehabProject creates a new project in planned status
func NewRehabProject(propertyID uuid.UUID, scope string, costEstimate decimal.Decimal, now time.Time) (*RehabProject, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Rehab property is required")
	}
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Rehab scope is required")
	}
	if costEstimate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Cost estimate cannot be negative")
	}

	return &RehabProject{
		BaseEntity:   shared.NewBaseEntityAt(now),
		PropertyID:   propertyID,
		Scope:        scope,
		CostEstimate: costEstimate,
		Status:       RehabStatusPlanned,
		Milestones:   []RehabMilestone{},
	}, nil
}

// SetDates updates the planned date range
func (r *RehabProject) SetDates(startDate, targetEndDate *time.Time, now time.Time) error {
	if startDate != nil && targetEndDate != nil && targetEndDate.Before(*startDate) {
		return shared.NewDomainError("INVALID_DATES", "Target end date cannot precede the start date")
	}
	r.StartDate = startDate
	r.TargetEndDate = targetEndDate
	r.UpdatedAt = now
	return nil
}

// ChangeStatus moves the project to a new status. Completed is
// terminal.
func (r *RehabProject) ChangeStatus(target RehabStatus, now time.Time) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid rehab status: "+target.String())
	}
	if r.Status == RehabStatusCompleted {
		return shared.NewDomainError("REHAB_COMPLETED", "Completed rehab projects cannot change status")
	}
	r.Status = target
	r.UpdatedAt = now
	return nil
}

// RecordActualCost sets the realized cost
func (r *RehabProject) RecordActualCost(actual decimal.Decimal, now time.Time) error {
	if actual.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Actual cost cannot be negative")
	}
	r.ActualCost = actual
	r.UpdatedAt = now
	return nil
}

// AddMilestone appends a milestone at the end of the ordered list
func (r *RehabProject) AddMilestone(name string, dueDate *time.Time, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_MILESTONE", "Milestone name is required")
	}
	r.Milestones = append(r.Milestones, RehabMilestone{
		ID:       uuid.New(),
		Name:     name,
		Position: len(r.Milestones),
		DueDate:  dueDate,
	})
	r.UpdatedAt = now
	return nil
}

// CompleteMilestone stamps the milestone's completion time
func (r *RehabProject) CompleteMilestone(milestoneID uuid.UUID, now time.Time) error {
	for i := range r.Milestones {
		if r.Milestones[i].ID == milestoneID {
			if r.Milestones[i].CompletedAt != nil {
				return shared.NewDomainError("MILESTONE_COMPLETED", "Milestone is already completed")
			}
			r.Milestones[i].CompletedAt = &now
			r.UpdatedAt = now
			return nil
		}
	}
	return shared.ErrNotFound
}
