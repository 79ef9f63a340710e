package portfolio

import (
	"time"

	"github.com/google/uuid"

	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/domain/shared/valueobject"
)

// PropertyStatus represents the lifecycle status of a property
type PropertyStatus string

const (
	PropertyStatusOccupied          PropertyStatus = "occupied"
	PropertyStatusVacant            PropertyStatus = "vacant"
	PropertyStatusRehab             PropertyStatus = "rehab"
	PropertyStatusPendingInspection PropertyStatus = "pending_inspection"
	PropertyStatusPendingPacket     PropertyStatus = "pending_packet"
)

// IsValid checks if the property status is valid
func (s PropertyStatus) IsValid() bool {
	switch s {
	case PropertyStatusOccupied, PropertyStatusVacant, PropertyStatusRehab,
		PropertyStatusPendingInspection, PropertyStatusPendingPacket:
		return true
	}
	return false
}

// String returns the string representation
func (s PropertyStatus) String() string {
	return string(s)
}

// DisplayName returns a human readable name
func (s PropertyStatus) DisplayName() string {
	switch s {
	case PropertyStatusOccupied:
		return "Occupied"
	case PropertyStatusVacant:
		return "Vacant"
	case PropertyStatusRehab:
		return "Rehab"
	case PropertyStatusPendingInspection:
		return "Pending Inspection"
	case PropertyStatusPendingPacket:
		return "Pending Packet"
	default:
		return string(s)
	}
}

// Property is a rental unit owned by an Owner. The status machine is
// fully connected; VacantSince is set exactly when the property enters
// vacant and cleared when it leaves.
type Property struct {
	shared.BaseEntity
	OwnerID     uuid.UUID
	Address     valueobject.Address
	Bedrooms    int
	Bathrooms   int
	YearBuilt   int
	Status      PropertyStatus
	VacantSince *time.Time
	Notes       string
}

// NewProperty creates a new property. Properties created vacant get
// their VacantSince stamped with now.
func NewProperty(ownerID uuid.UUID, address valueobject.Address, status PropertyStatus, now time.Time) (*Property, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Property owner is required")
	}
	if address.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Property address is required")
	}
	if status == "" {
		status = PropertyStatusVacant
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid property status: "+status.String())
	}

	p := &Property{
		BaseEntity: shared.NewBaseEntityAt(now),
		OwnerID:    ownerID,
		Address:    address,
		Status:     status,
	}
	if status == PropertyStatusVacant {
		p.VacantSince = &now
	}
	return p, nil
}

// ChangeStatus moves the property to a new status. Any status may move
// to any other. Entering vacant stamps VacantSince once; a vacant to
// vacant change keeps the original timestamp; entering any non-vacant
// status clears it.
func (p *Property) ChangeStatus(newStatus PropertyStatus, now time.Time) error {
	if !newStatus.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid property status: "+newStatus.String())
	}

	if newStatus == PropertyStatusVacant {
		if p.Status != PropertyStatusVacant {
			p.VacantSince = &now
		}
	} else {
		p.VacantSince = nil
	}
	p.Status = newStatus
	p.UpdatedAt = now
	return nil
}

// MarkOccupied is the lease-activation side effect
func (p *Property) MarkOccupied(now time.Time) {
	_ = p.ChangeStatus(PropertyStatusOccupied, now)
}

// MarkVacant is the lease-termination side effect
func (p *Property) MarkVacant(now time.Time) {
	_ = p.ChangeStatus(PropertyStatusVacant, now)
}

// MarkRehab is the rehab-creation side effect. There is no converse
// rule: completing a rehab does not change the property status.
func (p *Property) MarkRehab(now time.Time) {
	_ = p.ChangeStatus(PropertyStatusRehab, now)
}

// UpdateDetails updates descriptive fields without touching the status machine
func (p *Property) UpdateDetails(address valueobject.Address, bedrooms, bathrooms, yearBuilt int, notes string, now time.Time) error {
	if address.IsEmpty() {
		return shared.NewDomainError("INVALID_ADDRESS", "Property address is required")
	}
	if bedrooms < 0 || bathrooms < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Bedrooms and bathrooms cannot be negative")
	}
	p.Address = address
	p.Bedrooms = bedrooms
	p.Bathrooms = bathrooms
	p.YearBuilt = yearBuilt
	p.Notes = notes
	p.UpdatedAt = now
	return nil
}

// IsVacant reports whether the property is currently vacant
func (p *Property) IsVacant() bool {
	return p.Status == PropertyStatusVacant
}

// DaysVacant returns whole days elapsed since VacantSince, or 0 when
// the property has no vacancy timestamp. Partial days are floored.
func (p *Property) DaysVacant(now time.Time) int {
	if p.VacantSince == nil {
		return 0
	}
	d := now.Sub(*p.VacantSince)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
