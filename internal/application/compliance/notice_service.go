package compliance

import (
	"context"
	"time"

	"github.com/google/uuid"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/compliance"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// NoticeService provides application-level city notice operations
type NoticeService struct {
	noticeRepo   compliance.CityNoticeRepository
	propertyRepo portfolio.PropertyRepository
	recorder     *appaudit.Recorder
	clock        shared.Clock
}

// NewNoticeService creates a new NoticeService
func NewNoticeService(
	noticeRepo compliance.CityNoticeRepository,
	propertyRepo portfolio.PropertyRepository,
	recorder *appaudit.Recorder,
	clock shared.Clock,
) *NoticeService {
	return &NoticeService{
		noticeRepo:   noticeRepo,
		propertyRepo: propertyRepo,
		recorder:     recorder,
		clock:        clock,
	}
}

// CreateNoticeRequest represents a request to log a city notice
type CreateNoticeRequest struct {
	PropertyID   uuid.UUID  `json:"property_id" binding:"required"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	ReceivedDate time.Time  `json:"received_date" binding:"required"`
	Deadline     *time.Time `json:"deadline"`
}

// TransitionNoticeRequest represents a request to move a notice along
// its chain
type TransitionNoticeRequest struct {
	Status string `json:"status" binding:"required"`
}

// NoticeListFilter defines filtering options for notice list queries
type NoticeListFilter struct {
	PropertyID string `form:"property_id"`
	Status     string `form:"status"`
	Type       string `form:"type"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// NoticeResponse represents a city notice in API responses
type NoticeResponse struct {
	ID                uuid.UUID  `json:"id"`
	PropertyID        uuid.UUID  `json:"property_id"`
	Type              string     `json:"type"`
	Description       string     `json:"description,omitempty"`
	ReceivedDate      time.Time  `json:"received_date"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	DaysUntilDeadline *int       `json:"days_until_deadline,omitempty"`
	Status            string     `json:"status"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// CreateNotice logs a new city notice against a property
func (s *NoticeService) CreateNotice(ctx context.Context, actorID string, req CreateNoticeRequest) (*NoticeResponse, error) {
	if _, err := s.propertyRepo.FindByID(ctx, req.PropertyID); err != nil {
		return nil, err
	}

	notice, err := compliance.NewCityNotice(req.PropertyID, compliance.NoticeType(req.Type), req.Description, req.ReceivedDate, req.Deadline, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.noticeRepo.Save(ctx, notice); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "city_notice", notice.ID, audit.ActionCreated,
		audit.CreatedDetails{Summary: notice.Type.String()}, actorID)

	return s.toNoticeResponse(notice), nil
}

// GetNotice gets a notice by ID
func (s *NoticeService) GetNotice(ctx context.Context, id uuid.UUID) (*NoticeResponse, error) {
	notice, err := s.noticeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toNoticeResponse(notice), nil
}

// ListNotices lists notices with filtering
func (s *NoticeService) ListNotices(ctx context.Context, filter NoticeListFilter) ([]NoticeResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.OrderBy = "received_date"
	if filter.PropertyID != "" {
		id, err := uuid.Parse(filter.PropertyID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid property id")
		}
		f.Filters["property_id"] = id
	}
	if filter.Status != "" {
		if !compliance.NoticeStatus(filter.Status).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid notice status: "+filter.Status)
		}
		f.Filters["status"] = filter.Status
	}
	if filter.Type != "" {
		if !compliance.NoticeType(filter.Type).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid notice type: "+filter.Type)
		}
		f.Filters["type"] = filter.Type
	}

	notices, err := s.noticeRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.noticeRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]NoticeResponse, 0, len(notices))
	for i := range notices {
		responses = append(responses, *s.toNoticeResponse(&notices[i]))
	}
	return responses, total, nil
}

// TransitionNotice moves a notice along its status chain
func (s *NoticeService) TransitionNotice(ctx context.Context, actorID string, id uuid.UUID, req TransitionNoticeRequest) (*NoticeResponse, error) {
	notice, err := s.noticeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := notice.Status.String()
	if err := notice.Transition(compliance.NoticeStatus(req.Status), s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.noticeRepo.Save(ctx, notice); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "city_notice", notice.ID, audit.ActionStatusChanged,
		audit.StatusChangedDetails{From: from, To: notice.Status.String()}, actorID)

	return s.toNoticeResponse(notice), nil
}

// DeleteNotice deletes a notice
func (s *NoticeService) DeleteNotice(ctx context.Context, actorID string, id uuid.UUID) error {
	notice, err := s.noticeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.noticeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, "city_notice", id, audit.ActionDeleted,
		audit.DeletedDetails{Summary: notice.Type.String()}, actorID)
	return nil
}

func (s *NoticeService) toNoticeResponse(notice *compliance.CityNotice) *NoticeResponse {
	resp := &NoticeResponse{
		ID:           notice.ID,
		PropertyID:   notice.PropertyID,
		Type:         notice.Type.String(),
		Description:  notice.Description,
		ReceivedDate: notice.ReceivedDate,
		Deadline:     notice.Deadline,
		Status:       notice.Status.String(),
		ResolvedAt:   notice.ResolvedAt,
		CreatedAt:    notice.CreatedAt,
		UpdatedAt:    notice.UpdatedAt,
	}
	if days, ok := notice.DaysUntilDeadline(s.clock.Now()); ok && !notice.IsResolved() {
		resp.DaysUntilDeadline = &days
	}
	return resp
}
