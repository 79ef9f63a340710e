package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/shared"
)

// ExpenseCategory classifies outgoing money
type ExpenseCategory string

const (
	ExpenseCategoryMaintenanceRepairs   ExpenseCategory = "maintenance_repairs"
	ExpenseCategoryUtilities            ExpenseCategory = "utilities"
	ExpenseCategoryInsurance            ExpenseCategory = "insurance"
	ExpenseCategoryPropertyTax          ExpenseCategory = "property_tax"
	ExpenseCategoryProfessionalServices ExpenseCategory = "professional_services"
	ExpenseCategoryCapitalImprovements  ExpenseCategory = "capital_improvements"
	ExpenseCategoryTurnover             ExpenseCategory = "turnover"
	ExpenseCategoryLegal                ExpenseCategory = "legal"
	ExpenseCategoryOther                ExpenseCategory = "other"
)

// IsValid checks if the expense category is valid
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryMaintenanceRepairs, ExpenseCategoryUtilities,
		ExpenseCategoryInsurance, ExpenseCategoryPropertyTax,
		ExpenseCategoryProfessionalServices, ExpenseCategoryCapitalImprovements,
		ExpenseCategoryTurnover, ExpenseCategoryLegal, ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation
func (c ExpenseCategory) String() string {
	return string(c)
}

// SubcategoryPmManagementFee marks automatically generated management
// fee expenses.
const SubcategoryPmManagementFee = "pm_management_fee"

// ExpenseSource records how an expense came to exist
type ExpenseSource string

const (
	// ExpenseSourceManual is an expense entered by a user
	ExpenseSourceManual ExpenseSource = "manual"
	// ExpenseSourcePmBill is an expense generated from a paid PM bill line item
	ExpenseSourcePmBill ExpenseSource = "pm_bill"
	// ExpenseSourceAutoPmFee is a management fee generated from a qualifying payment
	ExpenseSourceAutoPmFee ExpenseSource = "auto_pm_fee"
)

// IsValid checks if the expense source is valid
func (s ExpenseSource) IsValid() bool {
	switch s {
	case ExpenseSourceManual, ExpenseSourcePmBill, ExpenseSourceAutoPmFee:
		return true
	}
	return false
}

// String returns the string representation
func (s ExpenseSource) String() string {
	return string(s)
}

// Expense is an outgoing money record against a property. Generated
// expenses carry a back-reference to what produced them: BillID for
// bill line items, PaymentID for automatic management fees.
type Expense struct {
	shared.BaseEntity
	PropertyID  uuid.UUID
	ExpenseDate time.Time
	Amount      decimal.Decimal
	Category    ExpenseCategory
	Subcategory string
	Vendor      string
	Description string
	Source      ExpenseSource
	BillID      *uuid.UUID
	PaymentID   *uuid.UUID
}

// NewExpense creates a manually entered expense
func NewExpense(propertyID uuid.UUID, expenseDate time.Time, amount decimal.Decimal, category ExpenseCategory, vendor, description string, now time.Time) (*Expense, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Expense property is required")
	}
	if expenseDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_EXPENSE_DATE", "Expense date is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if category == "" {
		category = ExpenseCategoryOther
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Invalid expense category: "+category.String())
	}

	return &Expense{
		BaseEntity:  shared.NewBaseEntityAt(now),
		PropertyID:  propertyID,
		ExpenseDate: expenseDate,
		Amount:      amount,
		Category:    category,
		Vendor:      vendor,
		Description: description,
		Source:      ExpenseSourceManual,
	}, nil
}

// NewBillExpense creates an expense generated from a paid PM bill line
// item. The line amount is carried verbatim.
func NewBillExpense(propertyID, billID uuid.UUID, expenseDate time.Time, amount decimal.Decimal, category ExpenseCategory, vendor, description string, now time.Time) (*Expense, error) {
	if category == "" || !category.IsValid() {
		category = ExpenseCategoryOther
	}
	e, err := NewExpense(propertyID, expenseDate, amount, category, vendor, description, now)
	if err != nil {
		return nil, err
	}
	e.Source = ExpenseSourcePmBill
	e.BillID = &billID
	return e, nil
}

// NewManagementFeeExpense creates the automatic fee expense for a
// qualifying payment.
func NewManagementFeeExpense(propertyID, paymentID uuid.UUID, expenseDate time.Time, amount decimal.Decimal, vendor, description string, now time.Time) (*Expense, error) {
	e, err := NewExpense(propertyID, expenseDate, amount, ExpenseCategoryProfessionalServices, vendor, description, now)
	if err != nil {
		return nil, err
	}
	e.Subcategory = SubcategoryPmManagementFee
	e.Source = ExpenseSourceAutoPmFee
	e.PaymentID = &paymentID
	return e, nil
}

// IsBillSourced reports whether the expense was generated from a PM
// bill. Bill-sourced expenses cannot be deleted directly; they are
// removed by deleting the bill.
func (e *Expense) IsBillSourced() bool {
	return e.Source == ExpenseSourcePmBill
}

// Update edits a manual expense. Generated expenses are immutable.
func (e *Expense) Update(expenseDate time.Time, amount decimal.Decimal, category ExpenseCategory, vendor, description string, now time.Time) error {
	if e.Source != ExpenseSourceManual {
		return shared.NewDomainError("EXPENSE_NOT_EDITABLE", "Generated expenses cannot be edited")
	}
	if expenseDate.IsZero() {
		return shared.NewDomainError("INVALID_EXPENSE_DATE", "Expense date is required")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Invalid expense category: "+category.String())
	}
	e.ExpenseDate = expenseDate
	e.Amount = amount
	e.Category = category
	e.Vendor = vendor
	e.Description = description
	e.UpdatedAt = now
	return nil
}
