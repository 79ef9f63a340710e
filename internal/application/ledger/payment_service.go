package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/ledger"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// feeVendor labels automatically generated management fee expenses
const feeVendor = "Property Manager"

// PaymentService provides application-level payment operations,
// including the automatic management fee fan-out.
type PaymentService struct {
	paymentRepo  ledger.PaymentRepository
	expenseRepo  ledger.ExpenseRepository
	propertyRepo portfolio.PropertyRepository
	ownerRepo    portfolio.OwnerRepository
	tx           shared.TxManager
	recorder     *appaudit.Recorder
	clock        shared.Clock
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo ledger.PaymentRepository,
	expenseRepo ledger.ExpenseRepository,
	propertyRepo portfolio.PropertyRepository,
	ownerRepo portfolio.OwnerRepository,
	tx shared.TxManager,
	recorder *appaudit.Recorder,
	clock shared.Clock,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		expenseRepo:  expenseRepo,
		propertyRepo: propertyRepo,
		ownerRepo:    ownerRepo,
		tx:           tx,
		recorder:     recorder,
		clock:        clock,
	}
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	PropertyID  uuid.UUID       `json:"property_id"`
	LeaseID     *uuid.UUID      `json:"lease_id,omitempty"`
	PaymentDate time.Time       `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	PropertyID  uuid.UUID       `json:"property_id" binding:"required"`
	LeaseID     *uuid.UUID      `json:"lease_id"`
	PaymentDate time.Time       `json:"payment_date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	Status      string          `json:"status"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
}

// PaymentListFilter defines filtering options for payment list queries
type PaymentListFilter struct {
	PropertyID string     `form:"property_id"`
	Type       string     `form:"type"`
	Status     string     `form:"status"`
	FromDate   *time.Time `form:"from_date"`
	ToDate     *time.Time `form:"to_date"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// RecordPayment records an incoming payment. A received HAP or copay
// payment also generates the owner's management fee expense, priced
// from the owner's fee percent at the moment of recording. Both writes
// share one transaction; the fee is skipped when it rounds to zero or
// when a fee for this payment already exists.
func (s *PaymentService) RecordPayment(ctx context.Context, actorID string, req RecordPaymentRequest) (*PaymentResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	payment, err := ledger.NewPayment(
		req.PropertyID,
		req.LeaseID,
		req.PaymentDate,
		req.Amount,
		ledger.PaymentType(req.Type),
		ledger.PaymentStatus(req.Status),
		now,
	)
	if err != nil {
		return nil, err
	}
	payment.Reference = req.Reference
	payment.Notes = req.Notes

	var (
		fee   *ledger.Expense
		owner *portfolio.Owner
	)
	if payment.QualifiesForManagementFee() {
		owner, err = s.ownerRepo.FindByID(ctx, property.OwnerID)
		if err != nil {
			return nil, err
		}
		fee, err = s.buildFeeExpense(ctx, payment, owner, now)
		if err != nil {
			return nil, err
		}
	}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.paymentRepo.Save(txCtx, payment); err != nil {
			return err
		}
		if fee != nil {
			return s.expenseRepo.Save(txCtx, fee)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "payment", payment.ID, audit.ActionPaymentRecorded,
		audit.PaymentRecordedDetails{
			Amount: payment.Amount.StringFixed(2),
			Type:   payment.Type.String(),
			Status: payment.Status.String(),
		}, actorID)
	if fee != nil {
		s.recorder.Record(ctx, "expense", fee.ID, audit.ActionFeeGenerated,
			audit.FeeGeneratedDetails{
				PaymentID:  payment.ID,
				FeePercent: owner.ManagementFeePercent.String(),
				FeeAmount:  fee.Amount.StringFixed(2),
			}, actorID)
	}

	return toPaymentResponse(payment), nil
}

// buildFeeExpense computes the fee for a qualifying payment. Returns
// nil when the fee rounds to zero or was already generated.
func (s *PaymentService) buildFeeExpense(ctx context.Context, payment *ledger.Payment, owner *portfolio.Owner, now time.Time) (*ledger.Expense, error) {
	amount := ledger.ManagementFee(payment.Amount, owner.ManagementFeePercent)
	if !amount.IsPositive() {
		return nil, nil
	}

	exists, err := s.expenseRepo.ExistsFeeForPayment(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	description := fmt.Sprintf("Management fee (%s%%) on %s payment %.8s",
		owner.ManagementFeePercent.String(), payment.Type.String(), payment.ID.String())
	return ledger.NewManagementFeeExpense(
		payment.PropertyID, payment.ID, payment.PaymentDate, amount, feeVendor, description, now)
}

// GetPayment gets a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// ListPayments lists payments with filtering
func (s *PaymentService) ListPayments(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.OrderBy = "payment_date"
	if filter.PropertyID != "" {
		id, err := uuid.Parse(filter.PropertyID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid property id")
		}
		f.Filters["property_id"] = id
	}
	if filter.Type != "" {
		f.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.FromDate != nil {
		f.Filters["from_date"] = *filter.FromDate
	}
	if filter.ToDate != nil {
		f.Filters["to_date"] = *filter.ToDate
	}

	payments, err := s.paymentRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, *toPaymentResponse(&payments[i]))
	}
	return responses, total, nil
}

// DeletePayment removes a payment record. Payments are append-only;
// correcting one means deleting and re-recording it. An already
// generated fee expense stays, matching the source system.
func (s *PaymentService) DeletePayment(ctx context.Context, actorID string, id uuid.UUID) error {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, "payment", id, audit.ActionDeleted,
		audit.DeletedDetails{Summary: payment.Amount.StringFixed(2) + " " + payment.Type.String()}, actorID)
	return nil
}

func toPaymentResponse(payment *ledger.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          payment.ID,
		PropertyID:  payment.PropertyID,
		LeaseID:     payment.LeaseID,
		PaymentDate: payment.PaymentDate,
		Amount:      payment.Amount,
		Type:        payment.Type.String(),
		Status:      payment.Status.String(),
		Reference:   payment.Reference,
		Notes:       payment.Notes,
		CreatedAt:   payment.CreatedAt,
	}
}
