package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/shared"
)

// Recorder appends activity log entries after state-changing
// operations. Appends are best effort: a failed append is logged and
// never fails or rolls back the mutation that triggered it.
type Recorder struct {
	repo   audit.ActivityLogRepository
	clock  shared.Clock
	logger *zap.Logger
}

// NewRecorder creates a new Recorder
func NewRecorder(repo audit.ActivityLogRepository, clock shared.Clock, logger *zap.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		clock:  clock,
		logger: logger.Named("audit"),
	}
}

// Record appends one entry. Errors are swallowed after logging.
func (r *Recorder) Record(ctx context.Context, entityType string, entityID uuid.UUID, action audit.Action, details audit.Details, actorID string) {
	entry, err := audit.NewActivityLog(entityType, entityID, action, details, actorID, r.clock.Now())
	if err != nil {
		r.logger.Warn("skipping invalid activity log entry",
			zap.String("entity_type", entityType),
			zap.String("action", action.String()),
			zap.Error(err),
		)
		return
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Warn("failed to append activity log entry",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID.String()),
			zap.String("action", action.String()),
			zap.Error(err),
		)
	}
}

// ActivityLogResponse represents one log entry in API responses
type ActivityLogResponse struct {
	ID         uuid.UUID     `json:"id"`
	EntityType string        `json:"entity_type"`
	EntityID   uuid.UUID     `json:"entity_id"`
	Action     string        `json:"action"`
	Details    audit.Details `json:"details,omitempty"`
	ActorID    string        `json:"actor_id,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// ActivityLogListFilter defines filtering options for log queries
type ActivityLogListFilter struct {
	EntityType string `form:"entity_type"`
	EntityID   string `form:"entity_id"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// QueryService reads the activity log
type QueryService struct {
	repo audit.ActivityLogRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(repo audit.ActivityLogRepository) *QueryService {
	return &QueryService{repo: repo}
}

// List returns log entries, optionally scoped to one entity
func (s *QueryService) List(ctx context.Context, filter ActivityLogListFilter) ([]ActivityLogResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.OrderBy = "occurred_at"

	var (
		entries []audit.ActivityLog
		err     error
	)
	if filter.EntityType != "" && filter.EntityID != "" {
		entityID, parseErr := uuid.Parse(filter.EntityID)
		if parseErr != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid entity id")
		}
		entries, err = s.repo.FindByEntity(ctx, filter.EntityType, entityID, f)
		if err != nil {
			return nil, 0, err
		}
		f.Filters["entity_type"] = filter.EntityType
		f.Filters["entity_id"] = entityID
	} else {
		entries, err = s.repo.FindAll(ctx, f)
		if err != nil {
			return nil, 0, err
		}
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ActivityLogResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, toActivityLogResponse(&entries[i]))
	}
	return responses, total, nil
}

func toActivityLogResponse(entry *audit.ActivityLog) ActivityLogResponse {
	return ActivityLogResponse{
		ID:         entry.ID,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     entry.Action.String(),
		Details:    entry.Details,
		ActorID:    entry.ActorID,
		OccurredAt: entry.OccurredAt,
	}
}
