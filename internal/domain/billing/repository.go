package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/propertyops/backend/internal/domain/shared"
)

// PmBillRepository persists PM bills, their line items and messages
type PmBillRepository interface {
	shared.Repository[PmBill]
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]PmBill, error)
	FindByStatus(ctx context.Context, status BillStatus, filter shared.Filter) ([]PmBill, error)
}
