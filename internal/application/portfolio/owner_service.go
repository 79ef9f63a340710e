package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// OwnerService provides application-level owner operations
type OwnerService struct {
	ownerRepo    portfolio.OwnerRepository
	propertyRepo portfolio.PropertyRepository
	recorder     *appaudit.Recorder
}

// NewOwnerService creates a new OwnerService
func NewOwnerService(
	ownerRepo portfolio.OwnerRepository,
	propertyRepo portfolio.PropertyRepository,
	recorder *appaudit.Recorder,
) *OwnerService {
	return &OwnerService{
		ownerRepo:    ownerRepo,
		propertyRepo: propertyRepo,
		recorder:     recorder,
	}
}

// BankAccountResponse represents a bank account in API responses
type BankAccountResponse struct {
	ID            uuid.UUID `json:"id"`
	BankName      string    `json:"bank_name"`
	AccountLast4  string    `json:"account_last4"`
	RoutingNumber string    `json:"routing_number,omitempty"`
	IsDefault     bool      `json:"is_default"`
}

// OwnerResponse represents an owner in API responses
type OwnerResponse struct {
	ID                   uuid.UUID             `json:"id"`
	Name                 string                `json:"name"`
	ContactEmail         string                `json:"contact_email,omitempty"`
	ContactPhone         string                `json:"contact_phone,omitempty"`
	ManagementFeePercent decimal.Decimal       `json:"management_fee_percent"`
	Notes                string                `json:"notes,omitempty"`
	BankAccounts         []BankAccountResponse `json:"bank_accounts"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// CreateOwnerRequest represents a request to create an owner
type CreateOwnerRequest struct {
	Name                 string           `json:"name" binding:"required"`
	ContactEmail         string           `json:"contact_email" binding:"omitempty,email"`
	ContactPhone         string           `json:"contact_phone"`
	ManagementFeePercent *decimal.Decimal `json:"management_fee_percent"`
	Notes                string           `json:"notes"`
}

// UpdateOwnerRequest represents a request to update an owner
type UpdateOwnerRequest struct {
	Name                 string           `json:"name" binding:"required"`
	ContactEmail         string           `json:"contact_email" binding:"omitempty,email"`
	ContactPhone         string           `json:"contact_phone"`
	ManagementFeePercent *decimal.Decimal `json:"management_fee_percent"`
	Notes                string           `json:"notes"`
}

// AddBankAccountRequest represents a request to attach a bank account
type AddBankAccountRequest struct {
	BankName      string `json:"bank_name" binding:"required"`
	AccountLast4  string `json:"account_last4" binding:"required,len=4"`
	RoutingNumber string `json:"routing_number"`
	IsDefault     bool   `json:"is_default"`
}

// OwnerListFilter defines filtering options for owner list queries
type OwnerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateOwner creates a new owner
func (s *OwnerService) CreateOwner(ctx context.Context, actorID string, req CreateOwnerRequest) (*OwnerResponse, error) {
	owner, err := portfolio.NewOwner(req.Name, req.ManagementFeePercent)
	if err != nil {
		return nil, err
	}
	if err := owner.UpdateDetails(req.Name, req.ContactEmail, req.ContactPhone, req.Notes); err != nil {
		return nil, err
	}

	if err := s.ownerRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "owner", owner.ID, audit.ActionCreated,
		audit.CreatedDetails{Summary: owner.Name}, actorID)

	return toOwnerResponse(owner), nil
}

// GetOwner gets an owner by ID
func (s *OwnerService) GetOwner(ctx context.Context, id uuid.UUID) (*OwnerResponse, error) {
	owner, err := s.ownerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOwnerResponse(owner), nil
}

// ListOwners lists owners with filtering
func (s *OwnerService) ListOwners(ctx context.Context, filter OwnerListFilter) ([]OwnerResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	f.OrderBy = "name"
	f.OrderDir = "asc"

	owners, err := s.ownerRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ownerRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OwnerResponse, 0, len(owners))
	for i := range owners {
		responses = append(responses, *toOwnerResponse(&owners[i]))
	}
	return responses, total, nil
}

// UpdateOwner updates an owner's details and fee percent
func (s *OwnerService) UpdateOwner(ctx context.Context, actorID string, id uuid.UUID, req UpdateOwnerRequest) (*OwnerResponse, error) {
	owner, err := s.ownerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := owner.UpdateDetails(req.Name, req.ContactEmail, req.ContactPhone, req.Notes); err != nil {
		return nil, err
	}
	if req.ManagementFeePercent != nil {
		if err := owner.SetManagementFeePercent(*req.ManagementFeePercent); err != nil {
			return nil, err
		}
	}

	if err := s.ownerRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "owner", owner.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"details"}}, actorID)

	return toOwnerResponse(owner), nil
}

// DeleteOwner deletes an owner. Owners with assigned properties cannot
// be deleted.
func (s *OwnerService) DeleteOwner(ctx context.Context, actorID string, id uuid.UUID) error {
	owner, err := s.ownerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.propertyRepo.CountByOwner(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("OWNER_HAS_PROPERTIES",
			fmt.Sprintf("%d properties are assigned to this owner", count))
	}

	if err := s.ownerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, "owner", id, audit.ActionDeleted,
		audit.DeletedDetails{Summary: owner.Name}, actorID)
	return nil
}

// AddBankAccount attaches a bank account to an owner
func (s *OwnerService) AddBankAccount(ctx context.Context, actorID string, ownerID uuid.UUID, req AddBankAccountRequest) (*OwnerResponse, error) {
	owner, err := s.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := owner.AddBankAccount(req.BankName, req.AccountLast4, req.RoutingNumber, req.IsDefault); err != nil {
		return nil, err
	}
	if err := s.ownerRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "owner", owner.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"bank_accounts"}}, actorID)

	return toOwnerResponse(owner), nil
}

// RemoveBankAccount removes a bank account from an owner
func (s *OwnerService) RemoveBankAccount(ctx context.Context, actorID string, ownerID, accountID uuid.UUID) (*OwnerResponse, error) {
	owner, err := s.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := owner.RemoveBankAccount(accountID); err != nil {
		return nil, err
	}
	if err := s.ownerRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "owner", owner.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"bank_accounts"}}, actorID)

	return toOwnerResponse(owner), nil
}

// SetDefaultBankAccount marks one account as the owner's default
func (s *OwnerService) SetDefaultBankAccount(ctx context.Context, actorID string, ownerID, accountID uuid.UUID) (*OwnerResponse, error) {
	owner, err := s.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := owner.SetDefaultBankAccount(accountID); err != nil {
		return nil, err
	}
	if err := s.ownerRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "owner", owner.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"bank_accounts"}}, actorID)

	return toOwnerResponse(owner), nil
}

func toOwnerResponse(owner *portfolio.Owner) *OwnerResponse {
	accounts := make([]BankAccountResponse, 0, len(owner.BankAccounts))
	for _, acc := range owner.BankAccounts {
		accounts = append(accounts, BankAccountResponse{
			ID:            acc.ID,
			BankName:      acc.BankName,
			AccountLast4:  acc.AccountLast4,
			RoutingNumber: acc.RoutingNumber,
			IsDefault:     acc.IsDefault,
		})
	}
	return &OwnerResponse{
		ID:                   owner.ID,
		Name:                 owner.Name,
		ContactEmail:         owner.ContactEmail,
		ContactPhone:         owner.ContactPhone,
		ManagementFeePercent: owner.ManagementFeePercent,
		Notes:                owner.Notes,
		BankAccounts:         accounts,
		CreatedAt:            owner.CreatedAt,
		UpdatedAt:            owner.UpdatedAt,
	}
}
