package portfolio

import (
	"strings"
	"time"

	"github.com/propertyops/backend/internal/domain/shared"
)

// Tenant is a renter. Voucher fields describe the housing-assistance
// voucher when the tenant is subsidized.
type Tenant struct {
	shared.BaseEntity
	FirstName       string
	LastName        string
	Phone           string
	Email           string
	VoucherNumber   string
	VoucherBedrooms int
	CaseworkerName  string
	CaseworkerPhone string
	Notes           string
}

// NewTenant creates a new tenant
func NewTenant(firstName, lastName string) (*Tenant, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" && lastName == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name is required")
	}
	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		FirstName:  firstName,
		LastName:   lastName,
	}, nil
}

// FullName returns the tenant's display name
func (t *Tenant) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// UpdateContact updates contact information
func (t *Tenant) UpdateContact(phone, email string) {
	t.Phone = strings.TrimSpace(phone)
	t.Email = strings.TrimSpace(email)
	t.UpdatedAt = time.Now()
}

// UpdateVoucher updates the housing-assistance voucher details
func (t *Tenant) UpdateVoucher(number string, bedrooms int, caseworkerName, caseworkerPhone string) error {
	if bedrooms < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Voucher bedrooms cannot be negative")
	}
	t.VoucherNumber = strings.TrimSpace(number)
	t.VoucherBedrooms = bedrooms
	t.CaseworkerName = strings.TrimSpace(caseworkerName)
	t.CaseworkerPhone = strings.TrimSpace(caseworkerPhone)
	t.UpdatedAt = time.Now()
	return nil
}
