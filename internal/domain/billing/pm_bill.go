package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/shared"
)

// BillStatus represents the review lifecycle of a PM bill
type BillStatus string

const (
	BillStatusReceived    BillStatus = "received"
	BillStatusUnderReview BillStatus = "under_review"
	BillStatusApproved    BillStatus = "approved"
	BillStatusDisputed    BillStatus = "disputed"
	BillStatusPaid        BillStatus = "paid"
)

// IsValid checks if the bill status is valid
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusReceived, BillStatusUnderReview, BillStatusApproved,
		BillStatusDisputed, BillStatusPaid:
		return true
	}
	return false
}

// String returns the string representation
func (s BillStatus) String() string {
	return string(s)
}

// billTransitions lists the allowed review moves. Paid is terminal.
var billTransitions = map[BillStatus][]BillStatus{
	BillStatusReceived:    {BillStatusUnderReview, BillStatusApproved, BillStatusDisputed},
	BillStatusUnderReview: {BillStatusApproved, BillStatusDisputed},
	BillStatusDisputed:    {BillStatusUnderReview, BillStatusApproved},
	BillStatusApproved:    {BillStatusPaid, BillStatusDisputed},
	BillStatusPaid:        {},
}

// CanTransitionTo checks whether the review move is allowed
func (s BillStatus) CanTransitionTo(target BillStatus) bool {
	for _, t := range billTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// BillLineItem is one charge on a PM bill. Category uses the expense
// category vocabulary; the paid fan-out maps it onto the generated
// expense.
type BillLineItem struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
}

// BillMessage is one entry in a bill's discussion thread. The thread
// stays writable after the bill is paid.
type BillMessage struct {
	ID       uuid.UUID `json:"id"`
	AuthorID string    `json:"author_id"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}

// PmBill is an invoice from the property manager. Line item amounts
// must sum to the bill total. Once paid, a bill is immutable except
// for its message thread.
type PmBill struct {
	shared.BaseEntity
	PropertyID       uuid.UUID
	Vendor           string
	BillDate         time.Time
	DueDate          *time.Time
	TotalAmount      decimal.Decimal
	Status           BillStatus
	LineItems        []BillLineItem
	Messages         []BillMessage
	ApprovedBy       string
	ApprovedAt       *time.Time
	PaidDate         *time.Time
	PaymentMethod    string
	PaymentReference string
	Notes            string
}

// LineItemInput carries line item fields at bill creation
type LineItemInput struct {
	Description string
	Category    string
	Amount      decimal.Decimal
}

// NewPmBill creates a new bill in received status. At least one line
// item is required and the line amounts must sum exactly to the total.
func NewPmBill(propertyID uuid.UUID, vendor string, billDate time.Time, totalAmount decimal.Decimal, lines []LineItemInput, now time.Time) (*PmBill, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Bill property is required")
	}
	vendor = strings.TrimSpace(vendor)
	if vendor == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Bill vendor is required")
	}
	if billDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_BILL_DATE", "Bill date is required")
	}
	if !totalAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Bill total must be positive")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_LINE_ITEMS", "Bill requires at least one line item")
	}

	sum := decimal.Zero
	items := make([]BillLineItem, 0, len(lines))
	for _, in := range lines {
		if !in.Amount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_LINE_ITEMS", "Line item amounts must be positive")
		}
		sum = sum.Add(in.Amount)
		items = append(items, BillLineItem{
			ID:          uuid.New(),
			Description: strings.TrimSpace(in.Description),
			Category:    strings.TrimSpace(in.Category),
			Amount:      in.Amount,
		})
	}
	if !sum.Equal(totalAmount) {
		return nil, shared.NewDomainError("LINE_ITEMS_MISMATCH",
			"Line item amounts must sum to the bill total (got "+sum.StringFixed(2)+", want "+totalAmount.StringFixed(2)+")")
	}

	return &PmBill{
		BaseEntity:  shared.NewBaseEntityAt(now),
		PropertyID:  propertyID,
		Vendor:      vendor,
		BillDate:    billDate,
		TotalAmount: totalAmount,
		Status:      BillStatusReceived,
		LineItems:   items,
		Messages:    []BillMessage{},
	}, nil
}

// StartReview moves the bill into under_review
func (b *PmBill) StartReview(now time.Time) error {
	return b.transition(BillStatusUnderReview, now)
}

// Approve marks the bill approved by the given actor
func (b *PmBill) Approve(approvedBy string, now time.Time) error {
	if err := b.transition(BillStatusApproved, now); err != nil {
		return err
	}
	b.ApprovedBy = approvedBy
	b.ApprovedAt = &now
	return nil
}

// Dispute marks the bill disputed
func (b *PmBill) Dispute(now time.Time) error {
	return b.transition(BillStatusDisputed, now)
}

// MarkPaid settles an approved bill. The caller generates expense
// records from the line items in the same transaction.
func (b *PmBill) MarkPaid(paidDate time.Time, method, reference string, now time.Time) error {
	if paidDate.IsZero() {
		return shared.NewDomainError("INVALID_PAID_DATE", "Paid date is required")
	}
	if err := b.transition(BillStatusPaid, now); err != nil {
		return err
	}
	b.PaidDate = &paidDate
	b.PaymentMethod = strings.TrimSpace(method)
	b.PaymentReference = strings.TrimSpace(reference)
	return nil
}

// AddMessage appends to the discussion thread. Allowed in every
// status, including paid.
func (b *PmBill) AddMessage(authorID, body string, now time.Time) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return shared.NewDomainError("INVALID_MESSAGE", "Message body is required")
	}
	b.Messages = append(b.Messages, BillMessage{
		ID:       uuid.New(),
		AuthorID: authorID,
		Body:     body,
		SentAt:   now,
	})
	b.UpdatedAt = now
	return nil
}

// IsPaid reports whether the bill is settled
func (b *PmBill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

func (b *PmBill) transition(target BillStatus, now time.Time) error {
	if !b.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_BILL_TRANSITION",
			"Cannot move bill from "+b.Status.String()+" to "+target.String())
	}
	b.Status = target
	b.UpdatedAt = now
	return nil
}
