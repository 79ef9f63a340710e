package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/billing"
)

// PmBillModel is the persistence model for the PmBill domain entity.
// Line items and the message thread are embedded JSON collections.
type PmBillModel struct {
	BaseModel
	PropertyID       uuid.UUID                       `gorm:"type:uuid;not null;index"`
	Vendor           string                          `gorm:"type:varchar(200);not null"`
	BillDate         time.Time                       `gorm:"not null;index"`
	DueDate          *time.Time
	TotalAmount      decimal.Decimal                 `gorm:"type:decimal(12,2);not null"`
	Status           billing.BillStatus              `gorm:"type:varchar(20);not null;index"`
	LineItems        JSONSlice[billing.BillLineItem] `gorm:"type:jsonb;not null"`
	Messages         JSONSlice[billing.BillMessage]  `gorm:"type:jsonb"`
	ApprovedBy       string                          `gorm:"type:varchar(100)"`
	ApprovedAt       *time.Time
	PaidDate         *time.Time
	PaymentMethod    string                          `gorm:"type:varchar(50)"`
	PaymentReference string                          `gorm:"type:varchar(100)"`
	Notes            string                          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PmBillModel) TableName() string {
	return "pm_bills"
}

// ToDomain converts the persistence model to a domain PmBill entity.
func (m *PmBillModel) ToDomain() *billing.PmBill {
	return &billing.PmBill{
		BaseEntity:       m.BaseModel.ToDomain(),
		PropertyID:       m.PropertyID,
		Vendor:           m.Vendor,
		BillDate:         m.BillDate,
		DueDate:          m.DueDate,
		TotalAmount:      m.TotalAmount,
		Status:           m.Status,
		LineItems:        m.LineItems,
		Messages:         m.Messages,
		ApprovedBy:       m.ApprovedBy,
		ApprovedAt:       m.ApprovedAt,
		PaidDate:         m.PaidDate,
		PaymentMethod:    m.PaymentMethod,
		PaymentReference: m.PaymentReference,
		Notes:            m.Notes,
	}
}

// PmBillModelFromDomain creates a persistence model from a domain PmBill entity.
func PmBillModelFromDomain(b *billing.PmBill) *PmBillModel {
	m := &PmBillModel{
		PropertyID:       b.PropertyID,
		Vendor:           b.Vendor,
		BillDate:         b.BillDate,
		DueDate:          b.DueDate,
		TotalAmount:      b.TotalAmount,
		Status:           b.Status,
		LineItems:        b.LineItems,
		Messages:         b.Messages,
		ApprovedBy:       b.ApprovedBy,
		ApprovedAt:       b.ApprovedAt,
		PaidDate:         b.PaidDate,
		PaymentMethod:    b.PaymentMethod,
		PaymentReference: b.PaymentReference,
		Notes:            b.Notes,
	}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}
