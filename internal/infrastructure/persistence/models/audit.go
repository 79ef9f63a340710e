package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/propertyops/backend/internal/domain/audit"
)

// ActivityLogModel is the persistence model for the ActivityLog domain
// entity. The typed details payload is stored as JSON next to the
// action that identifies its shape.
type ActivityLogModel struct {
	BaseModel
	EntityType string       `gorm:"type:varchar(50);not null;index:idx_activity_entity,priority:1"`
	EntityID   uuid.UUID    `gorm:"type:uuid;not null;index:idx_activity_entity,priority:2"`
	Action     audit.Action `gorm:"type:varchar(50);not null;index"`
	Details    string       `gorm:"type:jsonb"`
	ActorID    string       `gorm:"type:varchar(100);index"`
	OccurredAt time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts the persistence model to a domain ActivityLog
// entry. Details payloads that fail to decode come back nil rather
// than failing the read; the raw action and entity reference survive.
func (m *ActivityLogModel) ToDomain() *audit.ActivityLog {
	return &audit.ActivityLog{
		BaseEntity: m.BaseModel.ToDomain(),
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Action:     m.Action,
		Details:    decodeDetails(m.Action, m.Details),
		ActorID:    m.ActorID,
		OccurredAt: m.OccurredAt,
	}
}

// ActivityLogModelFromDomain creates a persistence model from a domain
// ActivityLog entry.
func ActivityLogModelFromDomain(e *audit.ActivityLog) *ActivityLogModel {
	m := &ActivityLogModel{
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action,
		Details:    encodeDetails(e.Details),
		ActorID:    e.ActorID,
		OccurredAt: e.OccurredAt,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

func encodeDetails(d audit.Details) string {
	if d == nil {
		return ""
	}
	data, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	return string(data)
}

// decodeDetails rebuilds the typed payload for an action. Each action
// maps to exactly one details struct.
func decodeDetails(action audit.Action, raw string) audit.Details {
	if raw == "" || raw == "null" {
		return nil
	}

	unmarshal := func(v any) bool {
		return json.Unmarshal([]byte(raw), v) == nil
	}

	switch action {
	case audit.ActionCreated:
		var d audit.CreatedDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionUpdated:
		var d audit.UpdatedDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionDeleted:
		var d audit.DeletedDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionStatusChanged:
		var d audit.StatusChangedDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionLeaseActivated:
		var d audit.LeaseActivatedDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionLeaseTerminated:
		var d audit.LeaseTerminatedDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionPaymentRecorded:
		var d audit.PaymentRecordedDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionFeeGenerated:
		var d audit.FeeGeneratedDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionBillApproved:
		var d audit.BillApprovedDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionBillDisputed:
		var d audit.BillDisputedDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionBillPaid:
		var d audit.BillPaidDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionExpensesGenerated:
		var d audit.ExpensesGeneratedDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionMessageAdded:
		var d audit.MessageAddedDetails
		if unmarshal(&d) {
			return d
		}
	case audit.ActionMilestoneCompleted:
		var d audit.MilestoneCompletedDetails
		if unmarshal(&d) {
			return d
		}
	}
	return nil
}
