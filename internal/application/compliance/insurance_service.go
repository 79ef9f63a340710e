package compliance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/compliance"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// InsuranceService provides application-level insurance policy
// operations
type InsuranceService struct {
	policyRepo   compliance.InsurancePolicyRepository
	propertyRepo portfolio.PropertyRepository
	recorder     *appaudit.Recorder
	clock        shared.Clock
}

// NewInsuranceService creates a new InsuranceService
func NewInsuranceService(
	policyRepo compliance.InsurancePolicyRepository,
	propertyRepo portfolio.PropertyRepository,
	recorder *appaudit.Recorder,
	clock shared.Clock,
) *InsuranceService {
	return &InsuranceService{
		policyRepo:   policyRepo,
		propertyRepo: propertyRepo,
		recorder:     recorder,
		clock:        clock,
	}
}

// CreatePolicyRequest represents a request to record an insurance
// policy
type CreatePolicyRequest struct {
	PropertyID    uuid.UUID       `json:"property_id" binding:"required"`
	Carrier       string          `json:"carrier" binding:"required"`
	PolicyNumber  string          `json:"policy_number"`
	AnnualPremium decimal.Decimal `json:"annual_premium"`
	EffectiveDate time.Time       `json:"effective_date" binding:"required"`
	ExpiryDate    time.Time       `json:"expiry_date" binding:"required"`
}

// RenewPolicyRequest represents a request to renew a policy
type RenewPolicyRequest struct {
	AnnualPremium decimal.Decimal `json:"annual_premium"`
	EffectiveDate time.Time       `json:"effective_date" binding:"required"`
	ExpiryDate    time.Time       `json:"expiry_date" binding:"required"`
}

// PolicyListFilter defines filtering options for policy list queries
type PolicyListFilter struct {
	PropertyID string `form:"property_id"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// PolicyResponse represents an insurance policy in API responses
type PolicyResponse struct {
	ID            uuid.UUID       `json:"id"`
	PropertyID    uuid.UUID       `json:"property_id"`
	Carrier       string          `json:"carrier"`
	PolicyNumber  string          `json:"policy_number,omitempty"`
	AnnualPremium decimal.Decimal `json:"annual_premium"`
	EffectiveDate time.Time       `json:"effective_date"`
	ExpiryDate    time.Time       `json:"expiry_date"`
	Expired       bool            `json:"expired"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreatePolicy records an insurance policy for a property
func (s *InsuranceService) CreatePolicy(ctx context.Context, actorID string, req CreatePolicyRequest) (*PolicyResponse, error) {
	if _, err := s.propertyRepo.FindByID(ctx, req.PropertyID); err != nil {
		return nil, err
	}

	policy, err := compliance.NewInsurancePolicy(req.PropertyID, req.Carrier, req.PolicyNumber, req.AnnualPremium, req.EffectiveDate, req.ExpiryDate, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.policyRepo.Save(ctx, policy); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "insurance_policy", policy.ID, audit.ActionCreated,
		audit.CreatedDetails{Summary: policy.Carrier}, actorID)

	return s.toPolicyResponse(policy), nil
}

// GetPolicy gets a policy by ID
func (s *InsuranceService) GetPolicy(ctx context.Context, id uuid.UUID) (*PolicyResponse, error) {
	policy, err := s.policyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toPolicyResponse(policy), nil
}

// ListPolicies lists policies with filtering
func (s *InsuranceService) ListPolicies(ctx context.Context, filter PolicyListFilter) ([]PolicyResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.OrderBy = "expiry_date"
	if filter.PropertyID != "" {
		id, err := uuid.Parse(filter.PropertyID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid property id")
		}
		f.Filters["property_id"] = id
	}

	policies, err := s.policyRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.policyRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PolicyResponse, 0, len(policies))
	for i := range policies {
		responses = append(responses, *s.toPolicyResponse(&policies[i]))
	}
	return responses, total, nil
}

// RenewPolicy extends a policy with a new period and premium
func (s *InsuranceService) RenewPolicy(ctx context.Context, actorID string, id uuid.UUID, req RenewPolicyRequest) (*PolicyResponse, error) {
	policy, err := s.policyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.Renew(req.AnnualPremium, req.EffectiveDate, req.ExpiryDate, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.policyRepo.Save(ctx, policy); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "insurance_policy", policy.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"period", "premium"}}, actorID)

	return s.toPolicyResponse(policy), nil
}

// DeletePolicy deletes a policy record
func (s *InsuranceService) DeletePolicy(ctx context.Context, actorID string, id uuid.UUID) error {
	policy, err := s.policyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.policyRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, "insurance_policy", id, audit.ActionDeleted,
		audit.DeletedDetails{Summary: policy.Carrier}, actorID)
	return nil
}

func (s *InsuranceService) toPolicyResponse(policy *compliance.InsurancePolicy) *PolicyResponse {
	return &PolicyResponse{
		ID:            policy.ID,
		PropertyID:    policy.PropertyID,
		Carrier:       policy.Carrier,
		PolicyNumber:  policy.PolicyNumber,
		AnnualPremium: policy.AnnualPremium,
		EffectiveDate: policy.EffectiveDate,
		ExpiryDate:    policy.ExpiryDate,
		Expired:       policy.IsExpired(s.clock.Now()),
		CreatedAt:     policy.CreatedAt,
	}
}
