package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/propertyops/backend/internal/domain/shared"
)

// PaymentRepository persists payments
type PaymentRepository interface {
	shared.Repository[Payment]
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]Payment, error)
}

// ExpenseRepository persists expenses
type ExpenseRepository interface {
	shared.Repository[Expense]
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]Expense, error)
	// CountByBill counts expenses generated from the given PM bill.
	// A positive count means the bill's fan-out already ran.
	CountByBill(ctx context.Context, billID uuid.UUID) (int64, error)
	// ExistsFeeForPayment reports whether a management fee expense was
	// already generated for the given payment.
	ExistsFeeForPayment(ctx context.Context, paymentID uuid.UUID) (bool, error)
}
