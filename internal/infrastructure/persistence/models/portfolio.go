package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared/valueobject"
)

// OwnerModel is the persistence model for the Owner domain entity.
type OwnerModel struct {
	BaseModel
	Name                 string                            `gorm:"type:varchar(200);not null;index"`
	ContactEmail         string                            `gorm:"type:varchar(200)"`
	ContactPhone         string                            `gorm:"type:varchar(50)"`
	ManagementFeePercent decimal.Decimal                   `gorm:"type:decimal(5,2);not null"`
	Notes                string                            `gorm:"type:text"`
	BankAccounts         JSONSlice[portfolio.BankAccount]  `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (OwnerModel) TableName() string {
	return "owners"
}

// ToDomain converts the persistence model to a domain Owner entity.
func (m *OwnerModel) ToDomain() *portfolio.Owner {
	return &portfolio.Owner{
		BaseEntity:           m.BaseModel.ToDomain(),
		Name:                 m.Name,
		ContactEmail:         m.ContactEmail,
		ContactPhone:         m.ContactPhone,
		ManagementFeePercent: m.ManagementFeePercent,
		Notes:                m.Notes,
		BankAccounts:         m.BankAccounts,
	}
}

// OwnerModelFromDomain creates a persistence model from a domain Owner entity.
func OwnerModelFromDomain(o *portfolio.Owner) *OwnerModel {
	m := &OwnerModel{
		Name:                 o.Name,
		ContactEmail:         o.ContactEmail,
		ContactPhone:         o.ContactPhone,
		ManagementFeePercent: o.ManagementFeePercent,
		Notes:                o.Notes,
		BankAccounts:         o.BankAccounts,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	return m
}

// PropertyModel is the persistence model for the Property domain entity.
// The structured address is stored as JSON; AddressText is a
// denormalized render used for report sorting and display.
type PropertyModel struct {
	BaseModel
	OwnerID     uuid.UUID                `gorm:"type:uuid;not null;index"`
	Address     valueobject.Address      `gorm:"type:jsonb;not null"`
	AddressText string                   `gorm:"type:varchar(400);not null;index"`
	Bedrooms    int                      `gorm:"not null;default:0"`
	Bathrooms   int                      `gorm:"not null;default:0"`
	YearBuilt   int                      `gorm:"not null;default:0"`
	Status      portfolio.PropertyStatus `gorm:"type:varchar(30);not null;index"`
	VacantSince *time.Time               `gorm:"index"`
	Notes       string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *portfolio.Property {
	return &portfolio.Property{
		BaseEntity:  m.BaseModel.ToDomain(),
		OwnerID:     m.OwnerID,
		Address:     m.Address,
		Bedrooms:    m.Bedrooms,
		Bathrooms:   m.Bathrooms,
		YearBuilt:   m.YearBuilt,
		Status:      m.Status,
		VacantSince: m.VacantSince,
		Notes:       m.Notes,
	}
}

// PropertyModelFromDomain creates a persistence model from a domain Property entity.
func PropertyModelFromDomain(p *portfolio.Property) *PropertyModel {
	m := &PropertyModel{
		OwnerID:     p.OwnerID,
		Address:     p.Address,
		AddressText: p.Address.FullAddress(),
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		YearBuilt:   p.YearBuilt,
		Status:      p.Status,
		VacantSince: p.VacantSince,
		Notes:       p.Notes,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// TenantModel is the persistence model for the Tenant domain entity.
type TenantModel struct {
	BaseModel
	FirstName       string `gorm:"type:varchar(100);not null"`
	LastName        string `gorm:"type:varchar(100);not null;index"`
	Phone           string `gorm:"type:varchar(50)"`
	Email           string `gorm:"type:varchar(200)"`
	VoucherNumber   string `gorm:"type:varchar(50)"`
	VoucherBedrooms int    `gorm:"not null;default:0"`
	CaseworkerName  string `gorm:"type:varchar(100)"`
	CaseworkerPhone string `gorm:"type:varchar(50)"`
	Notes           string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *portfolio.Tenant {
	return &portfolio.Tenant{
		BaseEntity:      m.BaseModel.ToDomain(),
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Phone:           m.Phone,
		Email:           m.Email,
		VoucherNumber:   m.VoucherNumber,
		VoucherBedrooms: m.VoucherBedrooms,
		CaseworkerName:  m.CaseworkerName,
		CaseworkerPhone: m.CaseworkerPhone,
		Notes:           m.Notes,
	}
}

// TenantModelFromDomain creates a persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *portfolio.Tenant) *TenantModel {
	m := &TenantModel{
		FirstName:       t.FirstName,
		LastName:        t.LastName,
		Phone:           t.Phone,
		Email:           t.Email,
		VoucherNumber:   t.VoucherNumber,
		VoucherBedrooms: t.VoucherBedrooms,
		CaseworkerName:  t.CaseworkerName,
		CaseworkerPhone: t.CaseworkerPhone,
		Notes:           t.Notes,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// LeaseModel is the persistence model for the Lease domain entity.
type LeaseModel struct {
	BaseModel
	TenantID            uuid.UUID             `gorm:"type:uuid;not null;index"`
	PropertyID          uuid.UUID             `gorm:"type:uuid;not null;index"`
	StartDate           time.Time             `gorm:"not null"`
	EndDate             *time.Time
	ContractRent        decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	HapAmount           decimal.Decimal       `gorm:"type:decimal(12,2);not null;default:0"`
	TenantCopay         decimal.Decimal       `gorm:"type:decimal(12,2);not null;default:0"`
	UtilityAllowance    decimal.Decimal       `gorm:"type:decimal(12,2);not null;default:0"`
	RecertificationDate *time.Time
	Status              portfolio.LeaseStatus `gorm:"type:varchar(20);not null;index"`
	TerminatedAt        *time.Time
}

// TableName returns the table name for GORM
func (LeaseModel) TableName() string {
	return "leases"
}

// ToDomain converts the persistence model to a domain Lease entity.
func (m *LeaseModel) ToDomain() *portfolio.Lease {
	return &portfolio.Lease{
		BaseEntity:          m.BaseModel.ToDomain(),
		TenantID:            m.TenantID,
		PropertyID:          m.PropertyID,
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		ContractRent:        m.ContractRent,
		HapAmount:           m.HapAmount,
		TenantCopay:         m.TenantCopay,
		UtilityAllowance:    m.UtilityAllowance,
		RecertificationDate: m.RecertificationDate,
		Status:              m.Status,
		TerminatedAt:        m.TerminatedAt,
	}
}

// LeaseModelFromDomain creates a persistence model from a domain Lease entity.
func LeaseModelFromDomain(l *portfolio.Lease) *LeaseModel {
	m := &LeaseModel{
		TenantID:            l.TenantID,
		PropertyID:          l.PropertyID,
		StartDate:           l.StartDate,
		EndDate:             l.EndDate,
		ContractRent:        l.ContractRent,
		HapAmount:           l.HapAmount,
		TenantCopay:         l.TenantCopay,
		UtilityAllowance:    l.UtilityAllowance,
		RecertificationDate: l.RecertificationDate,
		Status:              l.Status,
		TerminatedAt:        l.TerminatedAt,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}
