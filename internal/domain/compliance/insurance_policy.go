package compliance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/shared"
)

// InsurancePolicy covers a property for a policy period
type InsurancePolicy struct {
	shared.BaseEntity
	PropertyID    uuid.UUID
	Carrier       string
	PolicyNumber  string
	AnnualPremium decimal.Decimal
	EffectiveDate time.Time
	ExpiryDate    time.Time
}

// NewInsurancePolicy creates a policy record
func NewInsurancePolicy(propertyID uuid.UUID, carrier, policyNumber string, annualPremium decimal.Decimal, effectiveDate, expiryDate, now time.Time) (*InsurancePolicy, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Policy property is required")
	}
	carrier = strings.TrimSpace(carrier)
	if carrier == "" {
		return nil, shared.NewDomainError("INVALID_CARRIER", "Insurance carrier is required")
	}
	if annualPremium.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Annual premium cannot be negative")
	}
	if effectiveDate.IsZero() || expiryDate.IsZero() || !expiryDate.After(effectiveDate) {
		return nil, shared.NewDomainError("INVALID_POLICY_PERIOD", "Policy expiry must follow the effective date")
	}

	return &InsurancePolicy{
		BaseEntity:    shared.NewBaseEntityAt(now),
		PropertyID:    propertyID,
		Carrier:       carrier,
		PolicyNumber:  strings.TrimSpace(policyNumber),
		AnnualPremium: annualPremium,
		EffectiveDate: effectiveDate,
		ExpiryDate:    expiryDate,
	}, nil
}

// IsExpired reports whether the policy period has ended
func (p *InsurancePolicy) IsExpired(now time.Time) bool {
	return now.After(p.ExpiryDate)
}

// Renew extends the policy with a new period and premium
func (p *InsurancePolicy) Renew(annualPremium decimal.Decimal, effectiveDate, expiryDate, now time.Time) error {
	if annualPremium.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Annual premium cannot be negative")
	}
	if effectiveDate.IsZero() || expiryDate.IsZero() || !expiryDate.After(effectiveDate) {
		return shared.NewDomainError("INVALID_POLICY_PERIOD", "Policy expiry must follow the effective date")
	}
	p.AnnualPremium = annualPremium
	p.EffectiveDate = effectiveDate
	p.ExpiryDate = expiryDate
	p.UpdatedAt = now
	return nil
}
