package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/shared"
)

// PaymentType classifies incoming money
type PaymentType string

const (
	PaymentTypeHap             PaymentType = "hap"
	PaymentTypeCopay           PaymentType = "copay"
	PaymentTypeOtherIncome     PaymentType = "other_income"
	PaymentTypeSecurityDeposit PaymentType = "security_deposit"
	PaymentTypeLateFee         PaymentType = "late_fee"
)

// IsValid checks if the payment type is valid
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeHap, PaymentTypeCopay, PaymentTypeOtherIncome,
		PaymentTypeSecurityDeposit, PaymentTypeLateFee:
		return true
	}
	return false
}

// String returns the string representation
func (t PaymentType) String() string {
	return string(t)
}

// PaymentStatus represents the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusReceived PaymentStatus = "received"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusNSF      PaymentStatus = "nsf"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusReceived, PaymentStatusPending, PaymentStatusNSF:
		return true
	}
	return false
}

// String returns the string representation
func (s PaymentStatus) String() string {
	return string(s)
}

// Payment is an income record against a property. Payments are
// append-only: they can be deleted but never edited.
type Payment struct {
	shared.BaseEntity
	PropertyID  uuid.UUID
	LeaseID     *uuid.UUID
	PaymentDate time.Time
	Amount      decimal.Decimal
	Type        PaymentType
	Status      PaymentStatus
	Reference   string
	Notes       string
}

// NewPayment creates a new payment record
func NewPayment(propertyID uuid.UUID, leaseID *uuid.UUID, paymentDate time.Time, amount decimal.Decimal, pType PaymentType, status PaymentStatus, now time.Time) (*Payment, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Payment property is required")
	}
	if paymentDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_DATE", "Payment date is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !pType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Invalid payment type: "+pType.String())
	}
	if status == "" {
		status = PaymentStatusReceived
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_STATUS", "Invalid payment status: "+status.String())
	}

	return &Payment{
		BaseEntity:  shared.NewBaseEntityAt(now),
		PropertyID:  propertyID,
		LeaseID:     leaseID,
		PaymentDate: paymentDate,
		Amount:      amount,
		Type:        pType,
		Status:      status,
	}, nil
}

// QualifiesForManagementFee reports whether recording this payment
// triggers the automatic management fee expense: the payment must be
// received and be housing-assistance or copay income.
func (p *Payment) QualifiesForManagementFee() bool {
	if p.Status != PaymentStatusReceived {
		return false
	}
	return p.Type == PaymentTypeHap || p.Type == PaymentTypeCopay
}

// CountsAsIncome reports whether the payment contributes to income
// totals. Bounced payments do not.
func (p *Payment) CountsAsIncome() bool {
	return p.Status != PaymentStatusNSF
}
