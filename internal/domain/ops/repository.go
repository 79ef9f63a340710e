package ops

import (
	"context"

	"github.com/google/uuid"

	"github.com/propertyops/backend/internal/domain/shared"
)

// PmTaskRepository persists PM tasks
type PmTaskRepository interface {
	shared.Repository[PmTask]
	FindByStatus(ctx context.Context, status TaskStatus, filter shared.Filter) ([]PmTask, error)
	// FindAcknowledged returns tasks that have an acknowledgement
	// timestamp, for PM response-time reporting.
	FindAcknowledged(ctx context.Context) ([]PmTask, error)
}

// RehabProjectRepository persists rehab projects and their milestones
type RehabProjectRepository interface {
	shared.Repository[RehabProject]
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]RehabProject, error)
}
