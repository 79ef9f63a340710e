package portfolio

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/shared"
)

// DefaultManagementFeePercent is applied to owners created without an
// explicit fee percent.
var DefaultManagementFeePercent = decimal.NewFromInt(10)

// BankAccount is a bank account attached to an owner. Accounts keep
// their insertion order; at most one may be the default.
type BankAccount struct {
	ID            uuid.UUID `json:"id"`
	BankName      string    `json:"bank_name"`
	AccountLast4  string    `json:"account_last4"`
	RoutingNumber string    `json:"routing_number"`
	IsDefault     bool      `json:"is_default"`
}

// Owner is the legal entity that holds title to properties. Rent is
// collected and expenses are paid on its behalf; the management fee
// percent drives the automatic fee expense on qualifying payments.
type Owner struct {
	shared.BaseEntity
	Name                 string
	ContactEmail         string
	ContactPhone         string
	ManagementFeePercent decimal.Decimal
	Notes                string
	BankAccounts         []BankAccount
}

// NewOwner creates a new owner. A nil fee percent falls back to the
// default; the percent is a whole-number percentage in [0, 100].
func NewOwner(name string, feePercent *decimal.Decimal) (*Owner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_OWNER_NAME", "Owner name is required")
	}

	pct := DefaultManagementFeePercent
	if feePercent != nil {
		pct = *feePercent
	}
	if err := validateFeePercent(pct); err != nil {
		return nil, err
	}

	return &Owner{
		BaseEntity:           shared.NewBaseEntity(),
		Name:                 name,
		ManagementFeePercent: pct,
		BankAccounts:         []BankAccount{},
	}, nil
}

// UpdateDetails updates the owner's descriptive fields
func (o *Owner) UpdateDetails(name, email, phone, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_OWNER_NAME", "Owner name is required")
	}
	o.Name = name
	o.ContactEmail = strings.TrimSpace(email)
	o.ContactPhone = strings.TrimSpace(phone)
	o.Notes = notes
	o.UpdatedAt = time.Now()
	return nil
}

// SetManagementFeePercent changes the fee percent applied to future
// qualifying payments. Already generated fee expenses are not revised.
func (o *Owner) SetManagementFeePercent(pct decimal.Decimal) error {
	if err := validateFeePercent(pct); err != nil {
		return err
	}
	o.ManagementFeePercent = pct
	o.UpdatedAt = time.Now()
	return nil
}

// AddBankAccount appends a bank account. The first account becomes the
// default automatically; marking a later account default clears the
// previous one.
func (o *Owner) AddBankAccount(bankName, accountLast4, routingNumber string, isDefault bool) error {
	bankName = strings.TrimSpace(bankName)
	if bankName == "" {
		return shared.NewDomainError("INVALID_BANK_ACCOUNT", "Bank name is required")
	}
	if len(o.BankAccounts) == 0 {
		isDefault = true
	}
	if isDefault {
		for i := range o.BankAccounts {
			o.BankAccounts[i].IsDefault = false
		}
	}
	o.BankAccounts = append(o.BankAccounts, BankAccount{
		ID:            uuid.New(),
		BankName:      bankName,
		AccountLast4:  strings.TrimSpace(accountLast4),
		RoutingNumber: strings.TrimSpace(routingNumber),
		IsDefault:     isDefault,
	})
	o.UpdatedAt = time.Now()
	return nil
}

// RemoveBankAccount deletes the account with the given id. If the
// default account is removed the first remaining account becomes the
// default.
func (o *Owner) RemoveBankAccount(accountID uuid.UUID) error {
	idx := -1
	for i, acc := range o.BankAccounts {
		if acc.ID == accountID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.ErrNotFound
	}
	wasDefault := o.BankAccounts[idx].IsDefault
	o.BankAccounts = append(o.BankAccounts[:idx], o.BankAccounts[idx+1:]...)
	if wasDefault && len(o.BankAccounts) > 0 {
		o.BankAccounts[0].IsDefault = true
	}
	o.UpdatedAt = time.Now()
	return nil
}

// SetDefaultBankAccount marks the given account as the default
func (o *Owner) SetDefaultBankAccount(accountID uuid.UUID) error {
	found := false
	for i := range o.BankAccounts {
		if o.BankAccounts[i].ID == accountID {
			o.BankAccounts[i].IsDefault = true
			found = true
		} else {
			o.BankAccounts[i].IsDefault = false
		}
	}
	if !found {
		return shared.ErrNotFound
	}
	o.UpdatedAt = time.Now()
	return nil
}

// DefaultBankAccount returns the default account, or nil when the
// owner has no accounts.
func (o *Owner) DefaultBankAccount() *BankAccount {
	for i := range o.BankAccounts {
		if o.BankAccounts[i].IsDefault {
			return &o.BankAccounts[i]
		}
	}
	return nil
}

func validateFeePercent(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_FEE_PERCENT", "Management fee percent must be between 0 and 100")
	}
	return nil
}
