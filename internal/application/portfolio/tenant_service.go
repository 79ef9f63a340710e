package portfolio

import (
	"context"
	"time"

	"github.com/google/uuid"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// TenantService provides application-level tenant operations
type TenantService struct {
	tenantRepo portfolio.TenantRepository
	leaseRepo  portfolio.LeaseRepository
	recorder   *appaudit.Recorder
}

// NewTenantService creates a new TenantService
func NewTenantService(
	tenantRepo portfolio.TenantRepository,
	leaseRepo portfolio.LeaseRepository,
	recorder *appaudit.Recorder,
) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		leaseRepo:  leaseRepo,
		recorder:   recorder,
	}
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	FullName        string    `json:"full_name"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty"`
	VoucherNumber   string    `json:"voucher_number,omitempty"`
	VoucherBedrooms int       `json:"voucher_bedrooms,omitempty"`
	CaseworkerName  string    `json:"caseworker_name,omitempty"`
	CaseworkerPhone string    `json:"caseworker_phone,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TenantRequest represents a request to create or update a tenant
type TenantRequest struct {
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email" binding:"omitempty,email"`
	VoucherNumber   string `json:"voucher_number"`
	VoucherBedrooms int    `json:"voucher_bedrooms" binding:"min=0"`
	CaseworkerName  string `json:"caseworker_name"`
	CaseworkerPhone string `json:"caseworker_phone"`
	Notes           string `json:"notes"`
}

// TenantListFilter defines filtering options for tenant list queries
type TenantListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateTenant creates a new tenant
func (s *TenantService) CreateTenant(ctx context.Context, actorID string, req TenantRequest) (*TenantResponse, error) {
	tenant, err := portfolio.NewTenant(req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	tenant.UpdateContact(req.Phone, req.Email)
	if err := tenant.UpdateVoucher(req.VoucherNumber, req.VoucherBedrooms, req.CaseworkerName, req.CaseworkerPhone); err != nil {
		return nil, err
	}
	tenant.Notes = req.Notes

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "tenant", tenant.ID, audit.ActionCreated,
		audit.CreatedDetails{Summary: tenant.FullName()}, actorID)

	return toTenantResponse(tenant), nil
}

// GetTenant gets a tenant by ID
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// ListTenants lists tenants with filtering
func (s *TenantService) ListTenants(ctx context.Context, filter TenantListFilter) ([]TenantResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	f.OrderBy = "last_name"
	f.OrderDir = "asc"

	tenants, err := s.tenantRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tenantRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		responses = append(responses, *toTenantResponse(&tenants[i]))
	}
	return responses, total, nil
}

// UpdateTenant updates a tenant
func (s *TenantService) UpdateTenant(ctx context.Context, actorID string, id uuid.UUID, req TenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tenant.FirstName = req.FirstName
	tenant.LastName = req.LastName
	tenant.UpdateContact(req.Phone, req.Email)
	if err := tenant.UpdateVoucher(req.VoucherNumber, req.VoucherBedrooms, req.CaseworkerName, req.CaseworkerPhone); err != nil {
		return nil, err
	}
	tenant.Notes = req.Notes

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "tenant", tenant.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"details"}}, actorID)

	return toTenantResponse(tenant), nil
}

// DeleteTenant deletes a tenant. Tenants referenced by an active lease
// cannot be deleted.
func (s *TenantService) DeleteTenant(ctx context.Context, actorID string, id uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	active, err := s.leaseRepo.CountActiveByTenant(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return shared.NewDomainError("TENANT_HAS_ACTIVE_LEASE",
			"An active lease references this tenant")
	}

	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, "tenant", id, audit.ActionDeleted,
		audit.DeletedDetails{Summary: tenant.FullName()}, actorID)
	return nil
}

func toTenantResponse(tenant *portfolio.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:              tenant.ID,
		FirstName:       tenant.FirstName,
		LastName:        tenant.LastName,
		FullName:        tenant.FullName(),
		Phone:           tenant.Phone,
		Email:           tenant.Email,
		VoucherNumber:   tenant.VoucherNumber,
		VoucherBedrooms: tenant.VoucherBedrooms,
		CaseworkerName:  tenant.CaseworkerName,
		CaseworkerPhone: tenant.CaseworkerPhone,
		Notes:           tenant.Notes,
		CreatedAt:       tenant.CreatedAt,
		UpdatedAt:       tenant.UpdatedAt,
	}
}
