package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/compliance"
)

// CityNoticeModel is the persistence model for the CityNotice domain entity.
type CityNoticeModel struct {
	BaseModel
	PropertyID   uuid.UUID               `gorm:"type:uuid;not null;index"`
	Type         compliance.NoticeType   `gorm:"type:varchar(30);not null;index"`
	Description  string                  `gorm:"type:text"`
	ReceivedDate time.Time               `gorm:"not null"`
	Deadline     *time.Time              `gorm:"index"`
	Status       compliance.NoticeStatus `gorm:"type:varchar(30);not null;index"`
	ResolvedAt   *time.Time
}

// TableName returns the table name for GORM
func (CityNoticeModel) TableName() string {
	return "city_notices"
}

// ToDomain converts the persistence model to a domain CityNotice entity.
func (m *CityNoticeModel) ToDomain() *compliance.CityNotice {
	return &compliance.CityNotice{
		BaseEntity:   m.BaseModel.ToDomain(),
		PropertyID:   m.PropertyID,
		Type:         m.Type,
		Description:  m.Description,
		ReceivedDate: m.ReceivedDate,
		Deadline:     m.Deadline,
		Status:       m.Status,
		ResolvedAt:   m.ResolvedAt,
	}
}

// CityNoticeModelFromDomain creates a persistence model from a domain CityNotice entity.
func CityNoticeModelFromDomain(n *compliance.CityNotice) *CityNoticeModel {
	m := &CityNoticeModel{
		PropertyID:   n.PropertyID,
		Type:         n.Type,
		Description:  n.Description,
		ReceivedDate: n.ReceivedDate,
		Deadline:     n.Deadline,
		Status:       n.Status,
		ResolvedAt:   n.ResolvedAt,
	}
	m.FromDomainBaseEntity(n.BaseEntity)
	return m
}

// PropertyTaxModel is the persistence model for the PropertyTax domain entity.
type PropertyTaxModel struct {
	BaseModel
	PropertyID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_tax_property_year,priority:1"`
	TaxYear       int             `gorm:"not null;uniqueIndex:idx_tax_property_year,priority:2"`
	AssessedValue decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	AnnualAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Paid          bool            `gorm:"not null;default:false"`
	PaidDate      *time.Time
}

// TableName returns the table name for GORM
func (PropertyTaxModel) TableName() string {
	return "property_taxes"
}

// ToDomain converts the persistence model to a domain PropertyTax entity.
func (m *PropertyTaxModel) ToDomain() *compliance.PropertyTax {
	return &compliance.PropertyTax{
		BaseEntity:    m.BaseModel.ToDomain(),
		PropertyID:    m.PropertyID,
		TaxYear:       m.TaxYear,
		AssessedValue: m.AssessedValue,
		AnnualAmount:  m.AnnualAmount,
		Paid:          m.Paid,
		PaidDate:      m.PaidDate,
	}
}

// PropertyTaxModelFromDomain creates a persistence model from a domain PropertyTax entity.
func PropertyTaxModelFromDomain(t *compliance.PropertyTax) *PropertyTaxModel {
	m := &PropertyTaxModel{
		PropertyID:    t.PropertyID,
		TaxYear:       t.TaxYear,
		AssessedValue: t.AssessedValue,
		AnnualAmount:  t.AnnualAmount,
		Paid:          t.Paid,
		PaidDate:      t.PaidDate,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// InsurancePolicyModel is the persistence model for the InsurancePolicy domain entity.
type InsurancePolicyModel struct {
	BaseModel
	PropertyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Carrier       string          `gorm:"type:varchar(200);not null"`
	PolicyNumber  string          `gorm:"type:varchar(100)"`
	AnnualPremium decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	EffectiveDate time.Time       `gorm:"not null"`
	ExpiryDate    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (InsurancePolicyModel) TableName() string {
	return "insurance_policies"
}

// ToDomain converts the persistence model to a domain InsurancePolicy entity.
func (m *InsurancePolicyModel) ToDomain() *compliance.InsurancePolicy {
	return &compliance.InsurancePolicy{
		BaseEntity:    m.BaseModel.ToDomain(),
		PropertyID:    m.PropertyID,
		Carrier:       m.Carrier,
		PolicyNumber:  m.PolicyNumber,
		AnnualPremium: m.AnnualPremium,
		EffectiveDate: m.EffectiveDate,
		ExpiryDate:    m.ExpiryDate,
	}
}

// InsurancePolicyModelFromDomain creates a persistence model from a domain InsurancePolicy entity.
func InsurancePolicyModelFromDomain(p *compliance.InsurancePolicy) *InsurancePolicyModel {
	m := &InsurancePolicyModel{
		PropertyID:    p.PropertyID,
		Carrier:       p.Carrier,
		PolicyNumber:  p.PolicyNumber,
		AnnualPremium: p.AnnualPremium,
		EffectiveDate: p.EffectiveDate,
		ExpiryDate:    p.ExpiryDate,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
