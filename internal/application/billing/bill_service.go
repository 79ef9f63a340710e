package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/billing"
	"github.com/propertyops/backend/internal/domain/ledger"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// BillService provides application-level PM bill operations
type BillService struct {
	billRepo     billing.PmBillRepository
	expenseRepo  ledger.ExpenseRepository
	propertyRepo portfolio.PropertyRepository
	tx           shared.TxManager
	recorder     *appaudit.Recorder
	clock        shared.Clock
}

// NewBillService creates a new BillService
func NewBillService(
	billRepo billing.PmBillRepository,
	expenseRepo ledger.ExpenseRepository,
	propertyRepo portfolio.PropertyRepository,
	tx shared.TxManager,
	recorder *appaudit.Recorder,
	clock shared.Clock,
) *BillService {
	return &BillService{
		billRepo:     billRepo,
		expenseRepo:  expenseRepo,
		propertyRepo: propertyRepo,
		tx:           tx,
		recorder:     recorder,
		clock:        clock,
	}
}

// LineItemRequest carries one line item on bill creation
type LineItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateBillRequest represents a request to record a PM bill
type CreateBillRequest struct {
	PropertyID uuid.UUID         `json:"property_id" binding:"required"`
	Vendor     string            `json:"vendor" binding:"required"`
	BillDate   time.Time         `json:"bill_date" binding:"required"`
	DueDate    *time.Time        `json:"due_date"`
	Total      decimal.Decimal   `json:"total" binding:"required"`
	LineItems  []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
	Notes      string            `json:"notes"`
}

// MarkPaidRequest represents a request to settle an approved bill
type MarkPaidRequest struct {
	PaidDate         time.Time `json:"paid_date" binding:"required"`
	PaymentMethod    string    `json:"payment_method"`
	PaymentReference string    `json:"payment_reference"`
}

// AddMessageRequest represents a request to append to a bill's thread
type AddMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// BulkBillRequest carries the bill ids for a bulk review operation
type BulkBillRequest struct {
	BillIDs []uuid.UUID `json:"bill_ids" binding:"required,min=1"`
}

// BulkPayRequest carries the bill ids and settlement fields for a bulk
// payment
type BulkPayRequest struct {
	BillIDs          []uuid.UUID `json:"bill_ids" binding:"required,min=1"`
	PaidDate         time.Time   `json:"paid_date" binding:"required"`
	PaymentMethod    string      `json:"payment_method"`
	PaymentReference string      `json:"payment_reference"`
}

// BulkBillFailure reports one bill that a bulk operation skipped
type BulkBillFailure struct {
	BillID uuid.UUID `json:"bill_id"`
	Reason string    `json:"reason"`
}

// BulkBillResult summarizes a bulk operation. Each bill succeeds or
// fails independently.
type BulkBillResult struct {
	Updated  int               `json:"updated"`
	Failed   int               `json:"failed"`
	Failures []BulkBillFailure `json:"failures,omitempty"`
}

// BillListFilter defines filtering options for bill list queries
type BillListFilter struct {
	PropertyID string `form:"property_id"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// LineItemResponse represents a bill line item in API responses
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
}

// MessageResponse represents a bill thread message in API responses
type MessageResponse struct {
	ID       uuid.UUID `json:"id"`
	AuthorID string    `json:"author_id"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}

// BillResponse represents a PM bill in API responses
type BillResponse struct {
	ID               uuid.UUID          `json:"id"`
	PropertyID       uuid.UUID          `json:"property_id"`
	Vendor           string             `json:"vendor"`
	BillDate         time.Time          `json:"bill_date"`
	DueDate          *time.Time         `json:"due_date,omitempty"`
	Total            decimal.Decimal    `json:"total"`
	Status           string             `json:"status"`
	LineItems        []LineItemResponse `json:"line_items"`
	Messages         []MessageResponse  `json:"messages"`
	ApprovedBy       string             `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time         `json:"approved_at,omitempty"`
	PaidDate         *time.Time         `json:"paid_date,omitempty"`
	PaymentMethod    string             `json:"payment_method,omitempty"`
	PaymentReference string             `json:"payment_reference,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// CreateBill records a new PM bill in received status
func (s *BillService) CreateBill(ctx context.Context, actorID string, req CreateBillRequest) (*BillResponse, error) {
	if _, err := s.propertyRepo.FindByID(ctx, req.PropertyID); err != nil {
		return nil, err
	}

	lines := make([]billing.LineItemInput, 0, len(req.LineItems))
	for _, in := range req.LineItems {
		lines = append(lines, billing.LineItemInput{
			Description: in.Description,
			Category:    in.Category,
			Amount:      in.Amount,
		})
	}

	bill, err := billing.NewPmBill(req.PropertyID, req.Vendor, req.BillDate, req.Total, lines, s.clock.Now())
	if err != nil {
		return nil, err
	}
	bill.DueDate = req.DueDate
	bill.Notes = req.Notes

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "pm_bill", bill.ID, audit.ActionCreated,
		audit.CreatedDetails{Summary: bill.Vendor + " " + bill.TotalAmount.StringFixed(2)}, actorID)

	return toBillResponse(bill), nil
}

// GetBill gets a bill by ID
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// ListBills lists bills with filtering
func (s *BillService) ListBills(ctx context.Context, filter BillListFilter) ([]BillResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.OrderBy = "bill_date"
	if filter.PropertyID != "" {
		id, err := uuid.Parse(filter.PropertyID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid property id")
		}
		f.Filters["property_id"] = id
	}
	if filter.Status != "" {
		if !billing.BillStatus(filter.Status).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid bill status: "+filter.Status)
		}
		f.Filters["status"] = filter.Status
	}

	bills, err := s.billRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.billRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BillResponse, 0, len(bills))
	for i := range bills {
		responses = append(responses, *toBillResponse(&bills[i]))
	}
	return responses, total, nil
}

// StartReview moves a bill into under_review
func (s *BillService) StartReview(ctx context.Context, actorID string, id uuid.UUID) (*BillResponse, error) {
	return s.reviewMove(ctx, actorID, id, func(b *billing.PmBill, now time.Time) error {
		return b.StartReview(now)
	}, func(from string) (audit.Action, audit.Details) {
		return audit.ActionStatusChanged, audit.StatusChangedDetails{From: from, To: billing.BillStatusUnderReview.String()}
	})
}

// ApproveBill approves a bill for payment
func (s *BillService) ApproveBill(ctx context.Context, actorID string, id uuid.UUID) (*BillResponse, error) {
	return s.reviewMove(ctx, actorID, id, func(b *billing.PmBill, now time.Time) error {
		return b.Approve(actorID, now)
	}, func(string) (audit.Action, audit.Details) {
		return audit.ActionBillApproved, audit.BillApprovedDetails{ApprovedBy: actorID}
	})
}

// DisputeBill marks a bill disputed
func (s *BillService) DisputeBill(ctx context.Context, actorID string, id uuid.UUID) (*BillResponse, error) {
	return s.reviewMove(ctx, actorID, id, func(b *billing.PmBill, now time.Time) error {
		return b.Dispute(now)
	}, func(from string) (audit.Action, audit.Details) {
		return audit.ActionBillDisputed, audit.BillDisputedDetails{From: from}
	})
}

func (s *BillService) reviewMove(ctx context.Context, actorID string, id uuid.UUID, move func(*billing.PmBill, time.Time) error, entry func(from string) (audit.Action, audit.Details)) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := bill.Status.String()
	if err := move(bill, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	action, details := entry(from)
	s.recorder.Record(ctx, "pm_bill", bill.ID, action, details, actorID)

	return toBillResponse(bill), nil
}

// MarkPaid settles an approved bill and generates one expense record
// per line item in the same transaction. Re-running the fan-out for a
// bill that already has generated expenses creates nothing new.
func (s *BillService) MarkPaid(ctx context.Context, actorID string, id uuid.UUID, req MarkPaidRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := bill.MarkPaid(req.PaidDate, req.PaymentMethod, req.PaymentReference, now); err != nil {
		return nil, err
	}

	created := 0
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.expenseRepo.CountByBill(ctx, bill.ID)
		if err != nil {
			return err
		}
		if existing == 0 {
			for _, line := range bill.LineItems {
				expense, err := ledger.NewBillExpense(
					bill.PropertyID, bill.ID, req.PaidDate, line.Amount,
					ledger.ExpenseCategory(line.Category), bill.Vendor, line.Description, now)
				if err != nil {
					return err
				}
				if err := s.expenseRepo.Save(ctx, expense); err != nil {
					return err
				}
				created++
			}
		}
		return s.billRepo.Save(ctx, bill)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "pm_bill", bill.ID, audit.ActionBillPaid,
		audit.BillPaidDetails{
			PaidDate:         req.PaidDate.Format("2006-01-02"),
			ExpensesCreated:  created,
			PaymentMethod:    bill.PaymentMethod,
			PaymentReference: bill.PaymentReference,
		}, actorID)
	if created > 0 {
		s.recorder.Record(ctx, "pm_bill", bill.ID, audit.ActionExpensesGenerated,
			audit.ExpensesGeneratedDetails{BillID: bill.ID, Count: created}, actorID)
	}

	return toBillResponse(bill), nil
}

// AddMessage appends to a bill's discussion thread
func (s *BillService) AddMessage(ctx context.Context, actorID string, id uuid.UUID, req AddMessageRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := bill.AddMessage(actorID, req.Body, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, "pm_bill", bill.ID, audit.ActionMessageAdded,
		audit.MessageAddedDetails{MessageID: bill.Messages[len(bill.Messages)-1].ID}, actorID)

	return toBillResponse(bill), nil
}

// BulkApprove approves a batch of bills. Bills that cannot be approved
// are reported individually and do not block the rest.
func (s *BillService) BulkApprove(ctx context.Context, actorID string, req BulkBillRequest) (*BulkBillResult, error) {
	result := &BulkBillResult{}
	for _, id := range req.BillIDs {
		if _, err := s.ApproveBill(ctx, actorID, id); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, BulkBillFailure{BillID: id, Reason: err.Error()})
			continue
		}
		result.Updated++
	}
	return result, nil
}

// BulkPay settles a batch of approved bills with shared payment fields.
// Each bill's fan-out runs in its own transaction, so one failure
// leaves the others settled.
func (s *BillService) BulkPay(ctx context.Context, actorID string, req BulkPayRequest) (*BulkBillResult, error) {
	result := &BulkBillResult{}
	paid := MarkPaidRequest{
		PaidDate:         req.PaidDate,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
	}
	for _, id := range req.BillIDs {
		if _, err := s.MarkPaid(ctx, actorID, id, paid); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, BulkBillFailure{BillID: id, Reason: err.Error()})
			continue
		}
		result.Updated++
	}
	return result, nil
}

// DeleteBill deletes an unpaid bill. Paid bills are retained because
// their generated expenses reference them.
func (s *BillService) DeleteBill(ctx context.Context, actorID string, id uuid.UUID) error {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if bill.IsPaid() {
		return shared.NewDomainError("BILL_ALREADY_PAID", "Paid bills cannot be deleted")
	}

	if err := s.billRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, "pm_bill", id, audit.ActionDeleted,
		audit.DeletedDetails{Summary: fmt.Sprintf("%s %s (%s)", bill.Vendor, bill.TotalAmount.StringFixed(2), bill.Status)}, actorID)
	return nil
}

func toBillResponse(bill *billing.PmBill) *BillResponse {
	lines := make([]LineItemResponse, 0, len(bill.LineItems))
	for _, li := range bill.LineItems {
		lines = append(lines, LineItemResponse{
			ID:          li.ID,
			Description: li.Description,
			Category:    li.Category,
			Amount:      li.Amount,
		})
	}
	messages := make([]MessageResponse, 0, len(bill.Messages))
	for _, m := range bill.Messages {
		messages = append(messages, MessageResponse{
			ID:       m.ID,
			AuthorID: m.AuthorID,
			Body:     m.Body,
			SentAt:   m.SentAt,
		})
	}
	return &BillResponse{
		ID:               bill.ID,
		PropertyID:       bill.PropertyID,
		Vendor:           bill.Vendor,
		BillDate:         bill.BillDate,
		DueDate:          bill.DueDate,
		Total:            bill.TotalAmount,
		Status:           bill.Status.String(),
		LineItems:        lines,
		Messages:         messages,
		ApprovedBy:       bill.ApprovedBy,
		ApprovedAt:       bill.ApprovedAt,
		PaidDate:         bill.PaidDate,
		PaymentMethod:    bill.PaymentMethod,
		PaymentReference: bill.PaymentReference,
		Notes:            bill.Notes,
		CreatedAt:        bill.CreatedAt,
		UpdatedAt:        bill.UpdatedAt,
	}
}
