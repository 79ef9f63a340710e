package portfolio

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// LeaseService provides application-level lease operations, including
// the single-active-lease rule and the property status side effects.
type LeaseService struct {
	leaseRepo    portfolio.LeaseRepository
	propertyRepo portfolio.PropertyRepository
	tenantRepo   portfolio.TenantRepository
	tx           shared.TxManager
	recorder     *appaudit.Recorder
	clock        shared.Clock
}

// NewLeaseService creates a new LeaseService
func NewLeaseService(
	leaseRepo portfolio.LeaseRepository,
	propertyRepo portfolio.PropertyRepository,
	tenantRepo portfolio.TenantRepository,
	tx shared.TxManager,
	recorder *appaudit.Recorder,
	clock shared.Clock,
) *LeaseService {
	return &LeaseService{
		leaseRepo:    leaseRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		tx:           tx,
		recorder:     recorder,
		clock:        clock,
	}
}

// LeaseResponse represents a lease in API responses
type LeaseResponse struct {
	ID                  uuid.UUID       `json:"id"`
	TenantID            uuid.UUID       `json:"tenant_id"`
	PropertyID          uuid.UUID       `json:"property_id"`
	StartDate           time.Time       `json:"start_date"`
	EndDate             *time.Time      `json:"end_date,omitempty"`
	ContractRent        decimal.Decimal `json:"contract_rent"`
	HapAmount           decimal.Decimal `json:"hap_amount"`
	TenantCopay         decimal.Decimal `json:"tenant_copay"`
	UtilityAllowance    decimal.Decimal `json:"utility_allowance"`
	RecertificationDate *time.Time      `json:"recertification_date,omitempty"`
	Status              string          `json:"status"`
	TerminatedAt        *time.Time      `json:"terminated_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// CreateLeaseRequest represents a request to create a lease
type CreateLeaseRequest struct {
	TenantID            uuid.UUID        `json:"tenant_id" binding:"required"`
	PropertyID          uuid.UUID        `json:"property_id" binding:"required"`
	StartDate           time.Time        `json:"start_date" binding:"required"`
	EndDate             *time.Time       `json:"end_date"`
	ContractRent        decimal.Decimal  `json:"contract_rent" binding:"required"`
	HapAmount           *decimal.Decimal `json:"hap_amount"`
	TenantCopay         *decimal.Decimal `json:"tenant_copay"`
	UtilityAllowance    *decimal.Decimal `json:"utility_allowance"`
	RecertificationDate *time.Time       `json:"recertification_date"`
}

// LeaseListFilter defines filtering options for lease list queries
type LeaseListFilter struct {
	PropertyID string `form:"property_id"`
	TenantID   string `form:"tenant_id"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// CreateLease creates a new active lease. Any active leases already on
// the property are terminated first (last write wins) and the property
// is marked occupied. All of it happens in one transaction.
func (s *LeaseService) CreateLease(ctx context.Context, actorID string, req CreateLeaseRequest) (*LeaseResponse, error) {
	if _, err := s.tenantRepo.FindByID(ctx, req.TenantID); err != nil {
		return nil, err
	}
	property, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	lease, err := portfolio.NewLease(req.TenantID, req.PropertyID, req.StartDate, req.ContractRent, now)
	if err != nil {
		return nil, err
	}
	hap, copay, util := decimal.Zero, decimal.Zero, decimal.Zero
	if req.HapAmount != nil {
		hap = *req.HapAmount
	}
	if req.TenantCopay != nil {
		copay = *req.TenantCopay
	}
	if req.UtilityAllowance != nil {
		util = *req.UtilityAllowance
	}
	if err := lease.SetSubsidy(hap, copay, util); err != nil {
		return nil, err
	}
	if err := lease.SetDates(req.EndDate, req.RecertificationDate); err != nil {
		return nil, err
	}

	var terminatedIDs []uuid.UUID
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		existing, err := s.leaseRepo.FindActiveByProperty(txCtx, req.PropertyID)
		if err != nil {
			return err
		}
		for i := range existing {
			if err := existing[i].Terminate(now); err != nil {
				return err
			}
			if err := s.leaseRepo.Save(txCtx, &existing[i]); err != nil {
				return err
			}
			terminatedIDs = append(terminatedIDs, existing[i].ID)
		}

		if err := s.leaseRepo.Save(txCtx, lease); err != nil {
			return err
		}

		property.MarkOccupied(now)
		return s.propertyRepo.Save(txCtx, property)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "lease", lease.ID, audit.ActionLeaseActivated,
		audit.LeaseActivatedDetails{
			PropertyID:         req.PropertyID,
			TenantID:           req.TenantID,
			TerminatedLeaseIDs: terminatedIDs,
		}, actorID)

	return toLeaseResponse(lease), nil
}

// GetLease gets a lease by ID
func (s *LeaseService) GetLease(ctx context.Context, id uuid.UUID) (*LeaseResponse, error) {
	lease, err := s.leaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLeaseResponse(lease), nil
}

// ListLeases lists leases with filtering
func (s *LeaseService) ListLeases(ctx context.Context, filter LeaseListFilter) ([]LeaseResponse, int64, error) {
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
	if filter.TenantID != "" {
		id, err := uuid.Parse(filter.TenantID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid tenant id")
		}
		f.Filters["tenant_id"] = id
	}
	if filter.Status != "" {
		status := portfolio.LeaseStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Invalid lease status: "+filter.Status)
		}
		f.Filters["status"] = status.String()
	}

	leases, err := s.leaseRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.leaseRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LeaseResponse, 0, len(leases))
	for i := range leases {
		responses = append(responses, *toLeaseResponse(&leases[i]))
	}
	return responses, total, nil
}

// TerminateLease terminates a lease and marks its property vacant with
// a fresh vacancy timestamp, in one transaction.
func (s *LeaseService) TerminateLease(ctx context.Context, actorID string, id uuid.UUID) (*LeaseResponse, error) {
	lease, err := s.leaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	property, err := s.propertyRepo.FindByID(ctx, lease.PropertyID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := lease.Terminate(now); err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.leaseRepo.Save(txCtx, lease); err != nil {
			return err
		}
		property.MarkVacant(now)
		return s.propertyRepo.Save(txCtx, property)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "lease", lease.ID, audit.ActionLeaseTerminated,
		audit.LeaseTerminatedDetails{PropertyID: lease.PropertyID}, actorID)

	return toLeaseResponse(lease), nil
}

func toLeaseResponse(lease *portfolio.Lease) *LeaseResponse {
	return &LeaseResponse{
		ID:                  lease.ID,
		TenantID:            lease.TenantID,
		PropertyID:          lease.PropertyID,
		StartDate:           lease.StartDate,
		EndDate:             lease.EndDate,
		ContractRent:        lease.ContractRent,
		HapAmount:           lease.HapAmount,
		TenantCopay:         lease.TenantCopay,
		UtilityAllowance:    lease.UtilityAllowance,
		RecertificationDate: lease.RecertificationDate,
		Status:              lease.Status.String(),
		TerminatedAt:        lease.TerminatedAt,
		CreatedAt:           lease.CreatedAt,
		UpdatedAt:           lease.UpdatedAt,
	}
}
