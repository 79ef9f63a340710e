package compliance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/compliance"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// TaxService provides application-level property tax operations
type TaxService struct {
	taxRepo      compliance.PropertyTaxRepository
	propertyRepo portfolio.PropertyRepository
	recorder     *appaudit.Recorder
	clock        shared.Clock
}

// NewTaxService creates a new TaxService
func NewTaxService(
	taxRepo compliance.PropertyTaxRepository,
	propertyRepo portfolio.PropertyRepository,
	recorder *appaudit.Recorder,
	clock shared.Clock,
) *TaxService {
	return &TaxService{
		taxRepo:      taxRepo,
		propertyRepo: propertyRepo,
		recorder:     recorder,
		clock:        clock,
	}
}

// CreateTaxRequest represents a request to record a tax year
type CreateTaxRequest struct {
	PropertyID    uuid.UUID       `json:"property_id" binding:"required"`
	TaxYear       int             `json:"tax_year" binding:"required"`
	AssessedValue decimal.Decimal `json:"assessed_value"`
	AnnualAmount  decimal.Decimal `json:"annual_amount"`
}

// UpdateTaxRequest represents a request to revise an assessment
type UpdateTaxRequest struct {
	AssessedValue decimal.Decimal `json:"assessed_value"`
	AnnualAmount  decimal.Decimal `json:"annual_amount"`
}

// MarkTaxPaidRequest represents a request to record a tax payment
type MarkTaxPaidRequest struct {
	PaidDate time.Time `json:"paid_date" binding:"required"`
}

// TaxListFilter defines filtering options for tax list queries
type TaxListFilter struct {
	PropertyID string `form:"property_id"`
	TaxYear    int    `form:"tax_year"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// TaxResponse represents a property tax record in API responses
type TaxResponse struct {
	ID            uuid.UUID       `json:"id"`
	PropertyID    uuid.UUID       `json:"property_id"`
	TaxYear       int             `json:"tax_year"`
	AssessedValue decimal.Decimal `json:"assessed_value"`
	AnnualAmount  decimal.Decimal `json:"annual_amount"`
	Paid          bool            `json:"paid"`
	PaidDate      *time.Time      `json:"paid_date,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateTax records a tax year for a property
func (s *TaxService) CreateTax(ctx context.Context, actorID string, req CreateTaxRequest) (*TaxResponse, error) {
	if _, err := s.propertyRepo.FindByID(ctx, req.PropertyID); err != nil {
		return nil, err
	}

	tax, err := compliance.NewPropertyTax(req.PropertyID, req.TaxYear, req.AssessedValue, req.AnnualAmount, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.taxRepo.Save(ctx, tax); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "property_tax", tax.ID, audit.ActionCreated,
		audit.CreatedDetails{Summary: fmt.Sprintf("tax year %d", tax.TaxYear)}, actorID)

	return toTaxResponse(tax), nil
}

// GetTax gets a tax record by ID
func (s *TaxService) GetTax(ctx context.Context, id uuid.UUID) (*TaxResponse, error) {
	tax, err := s.taxRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTaxResponse(tax), nil
}

// ListTaxes lists tax records with filtering
func (s *TaxService) ListTaxes(ctx context.Context, filter TaxListFilter) ([]TaxResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.OrderBy = "tax_year"
	if filter.PropertyID != "" {
		id, err := uuid.Parse(filter.PropertyID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid property id")
		}
		f.Filters["property_id"] = id
	}
	if filter.TaxYear > 0 {
		f.Filters["tax_year"] = filter.TaxYear
	}

	taxes, err := s.taxRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.taxRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TaxResponse, 0, len(taxes))
	for i := range taxes {
		responses = append(responses, *toTaxResponse(&taxes[i]))
	}
	return responses, total, nil
}

// UpdateTax revises a tax record's assessment
func (s *TaxService) UpdateTax(ctx context.Context, actorID string, id uuid.UUID, req UpdateTaxRequest) (*TaxResponse, error) {
	tax, err := s.taxRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tax.UpdateAssessment(req.AssessedValue, req.AnnualAmount, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.taxRepo.Save(ctx, tax); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "property_tax", tax.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"assessment"}}, actorID)

	return toTaxResponse(tax), nil
}

// MarkTaxPaid records payment of a tax bill
func (s *TaxService) MarkTaxPaid(ctx context.Context, actorID string, id uuid.UUID, req MarkTaxPaidRequest) (*TaxResponse, error) {
	tax, err := s.taxRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tax.MarkPaid(req.PaidDate, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.taxRepo.Save(ctx, tax); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "property_tax", tax.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"paid"}}, actorID)

	return toTaxResponse(tax), nil
}

// DeleteTax deletes a tax record
func (s *TaxService) DeleteTax(ctx context.Context, actorID string, id uuid.UUID) error {
	tax, err := s.taxRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.taxRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, "property_tax", id, audit.ActionDeleted,
		audit.DeletedDetails{Summary: fmt.Sprintf("tax year %d", tax.TaxYear)}, actorID)
	return nil
}

func toTaxResponse(tax *compliance.PropertyTax) *TaxResponse {
	return &TaxResponse{
		ID:            tax.ID,
		PropertyID:    tax.PropertyID,
		TaxYear:       tax.TaxYear,
		AssessedValue: tax.AssessedValue,
		AnnualAmount:  tax.AnnualAmount,
		Paid:          tax.Paid,
		PaidDate:      tax.PaidDate,
		CreatedAt:     tax.CreatedAt,
	}
}
