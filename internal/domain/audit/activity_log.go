package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/propertyops/backend/internal/domain/shared"
)

// Action tags what happened to an entity
type Action string

const (
	ActionCreated            Action = "created"
	ActionUpdated            Action = "updated"
	ActionDeleted            Action = "deleted"
	ActionStatusChanged      Action = "status_changed"
	ActionLeaseActivated     Action = "lease_activated"
	ActionLeaseTerminated    Action = "lease_terminated"
	ActionPaymentRecorded    Action = "payment_recorded"
	ActionFeeGenerated       Action = "fee_generated"
	ActionBillApproved       Action = "bill_approved"
	ActionBillDisputed       Action = "bill_disputed"
	ActionBillPaid           Action = "bill_paid"
	ActionExpensesGenerated  Action = "expenses_generated"
	ActionMessageAdded       Action = "message_added"
	ActionMilestoneCompleted Action = "milestone_completed"
)

// IsValid checks if the action is valid
func (a Action) IsValid() bool {
	switch a {
	case ActionCreated, ActionUpdated, ActionDeleted, ActionStatusChanged,
		ActionLeaseActivated, ActionLeaseTerminated, ActionPaymentRecorded,
		ActionFeeGenerated, ActionBillApproved, ActionBillDisputed,
		ActionBillPaid, ActionExpensesGenerated, ActionMessageAdded,
		ActionMilestoneCompleted:
		return true
	}
	return false
}

// String returns the string representation
func (a Action) String() string {
	return string(a)
}

// Details is the per-action payload attached to a log entry. Each
// action has its own struct so entries stay self-describing.
type Details interface {
	DetailsAction() Action
}

// CreatedDetails describes an entity creation
type CreatedDetails struct {
	Summary string `json:"summary,omitempty"`
}

// DetailsAction implements Details
func (CreatedDetails) DetailsAction() Action { return ActionCreated }

// UpdatedDetails lists the fields touched by an update
type UpdatedDetails struct {
	Fields []string `json:"fields,omitempty"`
}

// DetailsAction implements Details
func (UpdatedDetails) DetailsAction() Action { return ActionUpdated }

// DeletedDetails describes an entity deletion
type DeletedDetails struct {
	Summary string `json:"summary,omitempty"`
}

// DetailsAction implements Details
func (DeletedDetails) DetailsAction() Action { return ActionDeleted }

// StatusChangedDetails records a state machine move
type StatusChangedDetails struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DetailsAction implements Details
func (StatusChangedDetails) DetailsAction() Action { return ActionStatusChanged }

// LeaseActivatedDetails records a lease creation and the leases it
// displaced
type LeaseActivatedDetails struct {
	PropertyID         uuid.UUID   `json:"property_id"`
	TenantID           uuid.UUID   `json:"tenant_id"`
	TerminatedLeaseIDs []uuid.UUID `json:"terminated_lease_ids,omitempty"`
}

// DetailsAction implements Details
func (LeaseActivatedDetails) DetailsAction() Action { return ActionLeaseActivated }

// LeaseTerminatedDetails records a lease termination
type LeaseTerminatedDetails struct {
	PropertyID uuid.UUID `json:"property_id"`
}

// DetailsAction implements Details
func (LeaseTerminatedDetails) DetailsAction() Action { return ActionLeaseTerminated }

// PaymentRecordedDetails records an incoming payment
type PaymentRecordedDetails struct {
	Amount string `json:"amount"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// DetailsAction implements Details
func (PaymentRecordedDetails) DetailsAction() Action { return ActionPaymentRecorded }

// FeeGeneratedDetails records an automatic management fee expense
type FeeGeneratedDetails struct {
	PaymentID  uuid.UUID `json:"payment_id"`
	FeePercent string    `json:"fee_percent"`
	FeeAmount  string    `json:"fee_amount"`
}

// DetailsAction implements Details
func (FeeGeneratedDetails) DetailsAction() Action { return ActionFeeGenerated }

// BillApprovedDetails records a bill approval
type BillApprovedDetails struct {
	ApprovedBy string `json:"approved_by"`
}

// DetailsAction implements Details
func (BillApprovedDetails) DetailsAction() Action { return ActionBillApproved }

// BillDisputedDetails records a bill dispute
type BillDisputedDetails struct {
	From string `json:"from"`
}

// DetailsAction implements Details
func (BillDisputedDetails) DetailsAction() Action { return ActionBillDisputed }

// BillPaidDetails records a bill settlement and its fan-out
type BillPaidDetails struct {
	PaidDate         string `json:"paid_date"`
	ExpensesCreated  int    `json:"expenses_created"`
	PaymentMethod    string `json:"payment_method,omitempty"`
	PaymentReference string `json:"payment_reference,omitempty"`
}

// DetailsAction implements Details
func (BillPaidDetails) DetailsAction() Action { return ActionBillPaid }

// ExpensesGeneratedDetails records the expense fan-out from a paid bill
type ExpensesGeneratedDetails struct {
	BillID uuid.UUID `json:"bill_id"`
	Count  int       `json:"count"`
}

// DetailsAction implements Details
func (ExpensesGeneratedDetails) DetailsAction() Action { return ActionExpensesGenerated }

// MessageAddedDetails records a message appended to a bill thread
type MessageAddedDetails struct {
	MessageID uuid.UUID `json:"message_id"`
}

// DetailsAction implements Details
func (MessageAddedDetails) DetailsAction() Action { return ActionMessageAdded }

// MilestoneCompletedDetails records a rehab milestone completion
type MilestoneCompletedDetails struct {
	MilestoneID uuid.UUID `json:"milestone_id"`
	Name        string    `json:"name"`
}

// DetailsAction implements Details
func (MilestoneCompletedDetails) DetailsAction() Action { return ActionMilestoneCompleted }

// ActivityLog is one append-only log entry. Entries are never updated
// or deleted.
type ActivityLog struct {
	shared.BaseEntity
	EntityType string
	EntityID   uuid.UUID
	Action     Action
	Details    Details
	ActorID    string
	OccurredAt time.Time
}

// NewActivityLog creates a log entry. Details may be nil for actions
// with no payload.
func NewActivityLog(entityType string, entityID uuid.UUID, action Action, details Details, actorID string, now time.Time) (*ActivityLog, error) {
	if entityType == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Log entity type is required")
	}
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY_ID", "Log entity id is required")
	}
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Invalid log action: "+action.String())
	}
	if details != nil && details.DetailsAction() != action {
		return nil, shared.NewDomainError("DETAILS_MISMATCH", "Log details do not match the action")
	}

	return &ActivityLog{
		BaseEntity: shared.NewBaseEntityAt(now),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
		ActorID:    actorID,
		OccurredAt: now,
	}, nil
}
