package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/propertyops/backend/internal/domain/shared"
)

// ActivityLogRepository persists log entries. The log is append-only:
// there is no update or delete.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *ActivityLog) error
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, filter shared.Filter) ([]ActivityLog, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ActivityLog, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
