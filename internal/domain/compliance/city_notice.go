package compliance

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/propertyops/backend/internal/domain/shared"
)

// NoticeType classifies a notice from the city
type NoticeType string

const (
	NoticeTypeViolation  NoticeType = "violation"
	NoticeTypeInspection NoticeType = "inspection"
	NoticeTypeCitation   NoticeType = "citation"
	NoticeTypePermit     NoticeType = "permit"
	NoticeTypeOther      NoticeType = "other"
)

// IsValid checks if the notice type is valid
func (t NoticeType) IsValid() bool {
	switch t {
	case NoticeTypeViolation, NoticeTypeInspection, NoticeTypeCitation,
		NoticeTypePermit, NoticeTypeOther:
		return true
	}
	return false
}

// String returns the string representation
func (t NoticeType) String() string {
	return string(t)
}

// NoticeStatus represents progress toward resolving a city notice
type NoticeStatus string

const (
	NoticeStatusOpen           NoticeStatus = "open"
	NoticeStatusSentToPm       NoticeStatus = "sent_to_pm"
	NoticeStatusPmAcknowledged NoticeStatus = "pm_acknowledged"
	NoticeStatusResolved       NoticeStatus = "resolved"
)

var noticeOrder = map[NoticeStatus]int{
	NoticeStatusOpen:           0,
	NoticeStatusSentToPm:       1,
	NoticeStatusPmAcknowledged: 2,
	NoticeStatusResolved:       3,
}

// IsValid checks if the notice status is valid
func (s NoticeStatus) IsValid() bool {
	_, ok := noticeOrder[s]
	return ok
}

// String returns the string representation
func (s NoticeStatus) String() string {
	return string(s)
}

// CanTransitionTo checks the move is forward along the chain. Any
// status may jump straight to resolved.
func (s NoticeStatus) CanTransitionTo(target NoticeStatus) bool {
	if !target.IsValid() || s == target {
		return false
	}
	if target == NoticeStatusResolved {
		return true
	}
	return noticeOrder[target] > noticeOrder[s]
}

// CityNotice is a compliance notice from the city against a property
type CityNotice struct {
	shared.BaseEntity
	PropertyID   uuid.UUID
	Type         NoticeType
	Description  string
	ReceivedDate time.Time
	Deadline     *time.Time
	Status       NoticeStatus
	ResolvedAt   *time.Time
}

// NewCityNotice creates a new open notice
func NewCityNotice(propertyID uuid.UUID, nType NoticeType, description string, receivedDate time.Time, deadline *time.Time, now time.Time) (*CityNotice, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Notice property is required")
	}
	if nType == "" {
		nType = NoticeTypeOther
	}
	if !nType.IsValid() {
		return nil, shared.NewDomainError("INVALID_NOTICE_TYPE", "Invalid notice type: "+nType.String())
	}
	if receivedDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_RECEIVED_DATE", "Notice received date is required")
	}

	return &CityNotice{
		BaseEntity:   shared.NewBaseEntityAt(now),
		PropertyID:   propertyID,
		Type:         nType,
		Description:  strings.TrimSpace(description),
		ReceivedDate: receivedDate,
		Deadline:     deadline,
		Status:       NoticeStatusOpen,
	}, nil
}

// Transition moves the notice to a new status, stamping ResolvedAt on
// first entry into resolved.
func (n *CityNotice) Transition(target NoticeStatus, now time.Time) error {
	if !n.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_NOTICE_TRANSITION",
			"Cannot move notice from "+n.Status.String()+" to "+target.String())
	}
	n.Status = target
	if target == NoticeStatusResolved && n.ResolvedAt == nil {
		n.ResolvedAt = &now
	}
	n.UpdatedAt = now
	return nil
}

// IsResolved reports whether the notice is closed
func (n *CityNotice) IsResolved() bool {
	return n.Status == NoticeStatusResolved
}

// DaysUntilDeadline returns whole days until the deadline, rounding
// partial days up, so a deadline later today reads as 1 and a missed
// deadline goes negative. Returns false when no deadline is set.
func (n *CityNotice) DaysUntilDeadline(now time.Time) (int, bool) {
	if n.Deadline == nil {
		return 0, false
	}
	hours := n.Deadline.Sub(now).Hours()
	return int(math.Ceil(hours / 24)), true
}
