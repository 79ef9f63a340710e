package compliance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/shared"
)

// PropertyTax is one tax year's assessment and bill for a property
type PropertyTax struct {
	shared.BaseEntity
	PropertyID    uuid.UUID
	TaxYear       int
	AssessedValue decimal.Decimal
	AnnualAmount  decimal.Decimal
	Paid          bool
	PaidDate      *time.Time
}

// NewPropertyTax creates a tax record for a property and year
func NewPropertyTax(propertyID uuid.UUID, taxYear int, assessedValue, annualAmount decimal.Decimal, now time.Time) (*PropertyTax, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Tax property is required")
	}
	if taxYear < 1900 || taxYear > 2200 {
		return nil, shared.NewDomainError("INVALID_TAX_YEAR", "Tax year is out of range")
	}
	if assessedValue.IsNegative() || annualAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Tax amounts cannot be negative")
	}

	return &PropertyTax{
		BaseEntity:    shared.NewBaseEntityAt(now),
		PropertyID:    propertyID,
		TaxYear:       taxYear,
		AssessedValue: assessedValue,
		AnnualAmount:  annualAmount,
	}, nil
}

// MarkPaid records payment of the tax bill
func (t *PropertyTax) MarkPaid(paidDate, now time.Time) error {
	if t.Paid {
		return shared.NewDomainError("TAX_ALREADY_PAID", "Tax bill is already paid")
	}
	t.Paid = true
	t.PaidDate = &paidDate
	t.UpdatedAt = now
	return nil
}

// UpdateAssessment revises the assessed value and annual amount
func (t *PropertyTax) UpdateAssessment(assessedValue, annualAmount decimal.Decimal, now time.Time) error {
	if assessedValue.IsNegative() || annualAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Tax amounts cannot be negative")
	}
	t.AssessedValue = assessedValue
	t.AnnualAmount = annualAmount
	t.UpdatedAt = now
	return nil
}
