package portfolio

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/shared"
)

// LeaseStatus represents the lifecycle status of a lease
type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusTerminated LeaseStatus = "terminated"
)

// IsValid checks if the lease status is valid
func (s LeaseStatus) IsValid() bool {
	return s == LeaseStatusActive || s == LeaseStatusTerminated
}

// String returns the string representation
func (s LeaseStatus) String() string {
	return string(s)
}

// Lease binds a tenant to a property. Contract rent is the full rent;
// for subsidized tenancies it splits into the HAP payment and the
// tenant copay, with an optional utility allowance.
type Lease struct {
	shared.BaseEntity
	TenantID            uuid.UUID
	PropertyID          uuid.UUID
	StartDate           time.Time
	EndDate             *time.Time
	ContractRent        decimal.Decimal
	HapAmount           decimal.Decimal
	TenantCopay         decimal.Decimal
	UtilityAllowance    decimal.Decimal
	RecertificationDate *time.Time
	Status              LeaseStatus
	TerminatedAt        *time.Time
}

// NewLease creates a new active lease
func NewLease(tenantID, propertyID uuid.UUID, startDate time.Time, contractRent decimal.Decimal, now time.Time) (*Lease, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Lease tenant is required")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Lease property is required")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_START_DATE", "Lease start date is required")
	}
	if contractRent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RENT", "Contract rent cannot be negative")
	}

	return &Lease{
		BaseEntity:   shared.NewBaseEntityAt(now),
		TenantID:     tenantID,
		PropertyID:   propertyID,
		StartDate:    startDate,
		ContractRent: contractRent,
		Status:       LeaseStatusActive,
	}, nil
}

// SetSubsidy sets the HAP/copay split and the utility allowance
func (l *Lease) SetSubsidy(hapAmount, tenantCopay, utilityAllowance decimal.Decimal) error {
	if hapAmount.IsNegative() || tenantCopay.IsNegative() || utilityAllowance.IsNegative() {
		return shared.NewDomainError("INVALID_SUBSIDY", "Subsidy amounts cannot be negative")
	}
	l.HapAmount = hapAmount
	l.TenantCopay = tenantCopay
	l.UtilityAllowance = utilityAllowance
	l.UpdatedAt = time.Now()
	return nil
}

// SetDates updates the end and recertification dates
func (l *Lease) SetDates(endDate, recertificationDate *time.Time) error {
	if endDate != nil && !endDate.After(l.StartDate) {
		return shared.NewDomainError("INVALID_END_DATE", "Lease end date must be after the start date")
	}
	l.EndDate = endDate
	l.RecertificationDate = recertificationDate
	l.UpdatedAt = time.Now()
	return nil
}

// Terminate ends the lease. Terminating an already terminated lease is
// rejected.
func (l *Lease) Terminate(now time.Time) error {
	if l.Status == LeaseStatusTerminated {
		return shared.NewDomainError("LEASE_ALREADY_TERMINATED", "Lease is already terminated")
	}
	l.Status = LeaseStatusTerminated
	l.TerminatedAt = &now
	l.UpdatedAt = now
	return nil
}

// IsActive reports whether the lease is active
func (l *Lease) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// IsSubsidized reports whether any HAP amount is set
func (l *Lease) IsSubsidized() bool {
	return l.HapAmount.IsPositive()
}
