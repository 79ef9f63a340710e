package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/ops"
)

// PmTaskModel is the persistence model for the PmTask domain entity.
type PmTaskModel struct {
	BaseModel
	PropertyID     *uuid.UUID       `gorm:"type:uuid;index"`
	Title          string           `gorm:"type:varchar(300);not null"`
	Description    string           `gorm:"type:text"`
	Priority       ops.TaskPriority `gorm:"type:varchar(20);not null;index"`
	Status         ops.TaskStatus   `gorm:"type:varchar(30);not null;index"`
	DueDate        *time.Time       `gorm:"index"`
	AcknowledgedAt *time.Time       `gorm:"index"`
	CompletedAt    *time.Time
}

// TableName returns the table name for GORM
func (PmTaskModel) TableName() string {
	return "pm_tasks"
}

// ToDomain converts the persistence model to a domain PmTask entity.
func (m *PmTaskModel) ToDomain() *ops.PmTask {
	return &ops.PmTask{
		BaseEntity:     m.BaseModel.ToDomain(),
		PropertyID:     m.PropertyID,
		Title:          m.Title,
		Description:    m.Description,
		Priority:       m.Priority,
		Status:         m.Status,
		DueDate:        m.DueDate,
		AcknowledgedAt: m.AcknowledgedAt,
		CompletedAt:    m.CompletedAt,
	}
}

// PmTaskModelFromDomain creates a persistence model from a domain PmTask entity.
func PmTaskModelFromDomain(t *ops.PmTask) *PmTaskModel {
	m := &PmTaskModel{
		PropertyID:     t.PropertyID,
		Title:          t.Title,
		Description:    t.Description,
		Priority:       t.Priority,
		Status:         t.Status,
		DueDate:        t.DueDate,
		AcknowledgedAt: t.AcknowledgedAt,
		CompletedAt:    t.CompletedAt,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// RehabProjectModel is the persistence model for the RehabProject
// domain entity. Milestones are an embedded JSON collection ordered by
// position.
type RehabProjectModel struct {
	BaseModel
	PropertyID    uuid.UUID                     `gorm:"type:uuid;not null;index"`
	Scope         string                        `gorm:"type:text;not null"`
	StartDate     *time.Time
	TargetEndDate *time.Time
	CostEstimate  decimal.Decimal               `gorm:"type:decimal(12,2);not null;default:0"`
	ActualCost    decimal.Decimal               `gorm:"type:decimal(12,2);not null;default:0"`
	Status        ops.RehabStatus               `gorm:"type:varchar(20);not null;index"`
	Milestones    JSONSlice[ops.RehabMilestone] `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (RehabProjectModel) TableName() string {
	return "rehab_projects"
}

// ToDomain converts the persistence model to a domain RehabProject entity.
func (m *RehabProjectModel) ToDomain() *ops.RehabProject {
	return &ops.RehabProject{
		BaseEntity:    m.BaseModel.ToDomain(),
		PropertyID:    m.PropertyID,
		Scope:         m.Scope,
		StartDate:     m.StartDate,
		TargetEndDate: m.TargetEndDate,
		CostEstimate:  m.CostEstimate,
		ActualCost:    m.ActualCost,
		Status:        m.Status,
		Milestones:    m.Milestones,
	}
}

// RehabProjectModelFromDomain creates a persistence model from a domain RehabProject entity.
func RehabProjectModelFromDomain(r *ops.RehabProject) *RehabProjectModel {
	m := &RehabProjectModel{
		PropertyID:    r.PropertyID,
		Scope:         r.Scope,
		StartDate:     r.StartDate,
		TargetEndDate: r.TargetEndDate,
		CostEstimate:  r.CostEstimate,
		ActualCost:    r.ActualCost,
		Status:        r.Status,
		Milestones:    r.Milestones,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
