package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/ledger"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// ExpenseService provides application-level expense operations
type ExpenseService struct {
	expenseRepo  ledger.ExpenseRepository
	propertyRepo portfolio.PropertyRepository
	recorder     *appaudit.Recorder
	clock        shared.Clock
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo ledger.ExpenseRepository,
	propertyRepo portfolio.PropertyRepository,
	recorder *appaudit.Recorder,
	clock shared.Clock,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		propertyRepo: propertyRepo,
		recorder:     recorder,
		clock:        clock,
	}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	PropertyID  uuid.UUID       `json:"property_id"`
	ExpenseDate time.Time       `json:"expense_date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	Vendor      string          `json:"vendor,omitempty"`
	Description string          `json:"description,omitempty"`
	Source      string          `json:"source"`
	BillID      *uuid.UUID      `json:"bill_id,omitempty"`
	PaymentID   *uuid.UUID      `json:"payment_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateExpenseRequest represents a request to create a manual expense
type CreateExpenseRequest struct {
	PropertyID  uuid.UUID       `json:"property_id" binding:"required"`
	ExpenseDate time.Time       `json:"expense_date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category"`
	Vendor      string          `json:"vendor"`
	Description string          `json:"description"`
}

// UpdateExpenseRequest represents a request to update a manual expense
type UpdateExpenseRequest struct {
	ExpenseDate time.Time       `json:"expense_date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Vendor      string          `json:"vendor"`
	Description string          `json:"description"`
}

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
	PropertyID string     `form:"property_id"`
	Category   string     `form:"category"`
	Source     string     `form:"source"`
	FromDate   *time.Time `form:"from_date"`
	ToDate     *time.Time `form:"to_date"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// CreateExpense creates a manual expense record
func (s *ExpenseService) CreateExpense(ctx context.Context, actorID string, req CreateExpenseRequest) (*ExpenseResponse, error) {
	if _, err := s.propertyRepo.FindByID(ctx, req.PropertyID); err != nil {
		return nil, err
	}

	expense, err := ledger.NewExpense(
		req.PropertyID,
		req.ExpenseDate,
		req.Amount,
		ledger.ExpenseCategory(req.Category),
		req.Vendor,
		req.Description,
		s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "expense", expense.ID, audit.ActionCreated,
		audit.CreatedDetails{Summary: expense.Category.String() + " " + expense.Amount.StringFixed(2)}, actorID)

	return toExpenseResponse(expense), nil
}

// GetExpense gets an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.OrderBy = "expense_date"
	if filter.PropertyID != "" {
		id, err := uuid.Parse(filter.PropertyID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid property id")
		}
		f.Filters["property_id"] = id
	}
	if filter.Category != "" {
		f.Filters["category"] = filter.Category
	}
	if filter.Source != "" {
		f.Filters["source"] = filter.Source
	}
	if filter.FromDate != nil {
		f.Filters["from_date"] = *filter.FromDate
	}
	if filter.ToDate != nil {
		f.Filters["to_date"] = *filter.ToDate
	}

	expenses, err := s.expenseRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.expenseRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, *toExpenseResponse(&expenses[i]))
	}
	return responses, total, nil
}

// UpdateExpense edits a manual expense. Generated expenses are rejected
// by the domain.
func (s *ExpenseService) UpdateExpense(ctx context.Context, actorID string, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := expense.Update(req.ExpenseDate, req.Amount, ledger.ExpenseCategory(req.Category), req.Vendor, req.Description, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "expense", expense.ID, audit.ActionUpdated,
		audit.UpdatedDetails{Fields: []string{"details"}}, actorID)

	return toExpenseResponse(expense), nil
}

// DeleteExpense deletes an expense. Expenses generated from a PM bill
// cannot be deleted directly.
func (s *ExpenseService) DeleteExpense(ctx context.Context, actorID string, id uuid.UUID) error {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if expense.IsBillSourced() {
		return shared.NewDomainError("EXPENSE_FROM_BILL",
			"This expense was generated from a PM bill and cannot be deleted directly")
	}

	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, "expense", id, audit.ActionDeleted,
		audit.DeletedDetails{Summary: expense.Category.String() + " " + expense.Amount.StringFixed(2)}, actorID)
	return nil
}

func toExpenseResponse(expense *ledger.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          expense.ID,
		PropertyID:  expense.PropertyID,
		ExpenseDate: expense.ExpenseDate,
		Amount:      expense.Amount,
		Category:    expense.Category.String(),
		Subcategory: expense.Subcategory,
		Vendor:      expense.Vendor,
		Description: expense.Description,
		Source:      expense.Source.String(),
		BillID:      expense.BillID,
		PaymentID:   expense.PaymentID,
		CreatedAt:   expense.CreatedAt,
	}
}
