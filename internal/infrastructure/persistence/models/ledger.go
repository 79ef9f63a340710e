package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/ledger"
)

// PaymentModel is the persistence model for the Payment domain entity.
type PaymentModel struct {
	BaseModel
	PropertyID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	LeaseID     *uuid.UUID           `gorm:"type:uuid;index"`
	PaymentDate time.Time            `gorm:"not null;index"`
	Amount      decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	Type        ledger.PaymentType   `gorm:"type:varchar(30);not null;index"`
	Status      ledger.PaymentStatus `gorm:"type:varchar(20);not null;index"`
	Reference   string               `gorm:"type:varchar(100)"`
	Notes       string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *ledger.Payment {
	return &ledger.Payment{
		BaseEntity:  m.BaseModel.ToDomain(),
		PropertyID:  m.PropertyID,
		LeaseID:     m.LeaseID,
		PaymentDate: m.PaymentDate,
		Amount:      m.Amount,
		Type:        m.Type,
		Status:      m.Status,
		Reference:   m.Reference,
		Notes:       m.Notes,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	m := &PaymentModel{
		PropertyID:  p.PropertyID,
		LeaseID:     p.LeaseID,
		PaymentDate: p.PaymentDate,
		Amount:      p.Amount,
		Type:        p.Type,
		Status:      p.Status,
		Reference:   p.Reference,
		Notes:       p.Notes,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ExpenseModel is the persistence model for the Expense domain entity.
// BillID and PaymentID back-reference what generated the expense.
type ExpenseModel struct {
	BaseModel
	PropertyID  uuid.UUID              `gorm:"type:uuid;not null;index"`
	ExpenseDate time.Time              `gorm:"not null;index"`
	Amount      decimal.Decimal        `gorm:"type:decimal(12,2);not null"`
	Category    ledger.ExpenseCategory `gorm:"type:varchar(50);not null;index"`
	Subcategory string                 `gorm:"type:varchar(50)"`
	Vendor      string                 `gorm:"type:varchar(200)"`
	Description string                 `gorm:"type:text"`
	Source      ledger.ExpenseSource   `gorm:"type:varchar(20);not null;index"`
	BillID      *uuid.UUID             `gorm:"type:uuid;index"`
	PaymentID   *uuid.UUID             `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *ledger.Expense {
	return &ledger.Expense{
		BaseEntity:  m.BaseModel.ToDomain(),
		PropertyID:  m.PropertyID,
		ExpenseDate: m.ExpenseDate,
		Amount:      m.Amount,
		Category:    m.Category,
		Subcategory: m.Subcategory,
		Vendor:      m.Vendor,
		Description: m.Description,
		Source:      m.Source,
		BillID:      m.BillID,
		PaymentID:   m.PaymentID,
	}
}

// ExpenseModelFromDomain creates a persistence model from a domain Expense entity.
func ExpenseModelFromDomain(e *ledger.Expense) *ExpenseModel {
	m := &ExpenseModel{
		PropertyID:  e.PropertyID,
		ExpenseDate: e.ExpenseDate,
		Amount:      e.Amount,
		Category:    e.Category,
		Subcategory: e.Subcategory,
		Vendor:      e.Vendor,
		Description: e.Description,
		Source:      e.Source,
		BillID:      e.BillID,
		PaymentID:   e.PaymentID,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
