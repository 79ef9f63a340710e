package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Window bounds a report to an inclusive date range. Zero values mean
// unbounded on that side.
type Window struct {
	From time.Time
	To   time.Time
}

// VacancyRisk bands vacant properties by how long they have sat empty
type VacancyRisk string

const (
	VacancyRiskNormal   VacancyRisk = "normal"
	VacancyRiskWatch    VacancyRisk = "watch"
	VacancyRiskUrgent   VacancyRisk = "urgent"
	VacancyRiskCritical VacancyRisk = "critical"
)

// RiskForDaysVacant maps whole days vacant onto a risk band
func RiskForDaysVacant(days int) VacancyRisk {
	switch {
	case days >= 60:
		return VacancyRiskCritical
	case days >= 45:
		return VacancyRiskUrgent
	case days >= 30:
		return VacancyRiskWatch
	default:
		return VacancyRiskNormal
	}
}

// RentRollRow is one active lease in the rent roll
type RentRollRow struct {
	PropertyID       uuid.UUID       `json:"property_id"`
	PropertyAddress  string          `json:"property_address"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	TenantName       string          `json:"tenant_name"`
	LeaseID          uuid.UUID       `json:"lease_id"`
	LeaseStart       time.Time       `json:"lease_start"`
	LeaseEnd         *time.Time      `json:"lease_end,omitempty"`
	ContractRent     decimal.Decimal `json:"contract_rent"`
	HapAmount        decimal.Decimal `json:"hap_amount"`
	TenantCopay      decimal.Decimal `json:"tenant_copay"`
	UtilityAllowance decimal.Decimal `json:"utility_allowance"`
	Recertification  *time.Time      `json:"recertification,omitempty"`
}

// VacancyRow is one vacant property with its risk banding
type VacancyRow struct {
	PropertyID      uuid.UUID   `json:"property_id"`
	PropertyAddress string      `json:"property_address"`
	VacantSince     *time.Time  `json:"vacant_since,omitempty"`
	DaysVacant      int         `json:"days_vacant"`
	Risk            VacancyRisk `json:"risk"`
}

// PnLRow is one property's profit and loss over a window. The
// portfolio report appends a synthetic TOTAL row; the per-owner report
// does not.
type PnLRow struct {
	PropertyID      *uuid.UUID      `json:"property_id,omitempty"`
	PropertyAddress string          `json:"property_address"`
	Income          decimal.Decimal `json:"income"`
	Expenses        decimal.Decimal `json:"expenses"`
	Net             decimal.Decimal `json:"net"`
}

// OwnerPnLRow is one owner's aggregated profit and loss
type OwnerPnLRow struct {
	OwnerID   uuid.UUID       `json:"owner_id"`
	OwnerName string          `json:"owner_name"`
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	Net       decimal.Decimal `json:"net"`
}

// TaxSummaryRow is one property-tax record in the tax summary
type TaxSummaryRow struct {
	PropertyID      uuid.UUID       `json:"property_id"`
	PropertyAddress string          `json:"property_address"`
	TaxYear         int             `json:"tax_year"`
	AssessedValue   decimal.Decimal `json:"assessed_value"`
	AnnualAmount    decimal.Decimal `json:"annual_amount"`
	Paid            bool            `json:"paid"`
}

// NoticeRow is one outstanding city notice with deadline pressure
type NoticeRow struct {
	NoticeID          uuid.UUID  `json:"notice_id"`
	PropertyID        uuid.UUID  `json:"property_id"`
	PropertyAddress   string     `json:"property_address"`
	Type              string     `json:"type"`
	Status            string     `json:"status"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	DaysUntilDeadline *int       `json:"days_until_deadline,omitempty"`
}

// TaskPerformanceRow is one acknowledged task's PM response time
type TaskPerformanceRow struct {
	TaskID        uuid.UUID `json:"task_id"`
	Title         string    `json:"title"`
	Priority      string    `json:"priority"`
	CreatedAt     time.Time `json:"created_at"`
	Acknowledged  time.Time `json:"acknowledged"`
	ResponseHours int       `json:"response_hours"`
}

// MonthBucket is one calendar month's income and expense totals.
// Months with no activity still appear with zero amounts.
type MonthBucket struct {
	Year     int             `json:"year"`
	Month    time.Month      `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}
