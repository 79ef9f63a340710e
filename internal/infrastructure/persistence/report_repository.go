package persistence

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/propertyops/backend/internal/domain/compliance"
	"github.com/propertyops/backend/internal/domain/ledger"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/report"
)

// GormReportRepository implements the reporting read side using GORM.
// Every method is a pure aggregation query with no side effects.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// ActiveLeaseRows returns the rent roll rows for active leases, sorted
// by property address. A nil owner means the whole portfolio.
func (r *GormReportRepository) ActiveLeaseRows(ctx context.Context, ownerID *uuid.UUID) ([]report.RentRollRow, error) {
	type leaseRow struct {
		PropertyID       uuid.UUID
		AddressText      string
		TenantID         uuid.UUID
		FirstName        string
		LastName         string
		LeaseID          uuid.UUID
		StartDate        time.Time
		EndDate          *time.Time
		ContractRent     decimal.Decimal
		HapAmount        decimal.Decimal
		TenantCopay      decimal.Decimal
		UtilityAllowance decimal.Decimal
		Recertification  *time.Time
	}

	query := dbFor(ctx, r.db).Table("leases l").
		Select(`
			p.id as property_id,
			p.address_text,
			t.id as tenant_id,
			t.first_name,
			t.last_name,
			l.id as lease_id,
			l.start_date,
			l.end_date,
			l.contract_rent,
			l.hap_amount,
			l.tenant_copay,
			l.utility_allowance,
			l.recertification_date as recertification
		`).
		Joins("JOIN properties p ON p.id = l.property_id").
		Joins("JOIN tenants t ON t.id = l.tenant_id").
		Where("l.status = ?", portfolio.LeaseStatusActive)
	if ownerID != nil {
		query = query.Where("p.owner_id = ?", *ownerID)
	}

	var results []leaseRow
	if err := query.Order("p.address_text ASC").Scan(&results).Error; err != nil {
		return nil, err
	}

	rows := make([]report.RentRollRow, len(results))
	for i, res := range results {
		rows[i] = report.RentRollRow{
			PropertyID:       res.PropertyID,
			PropertyAddress:  res.AddressText,
			TenantID:         res.TenantID,
			TenantName:       strings.TrimSpace(res.FirstName + " " + res.LastName),
			LeaseID:          res.LeaseID,
			LeaseStart:       res.StartDate,
			LeaseEnd:         res.EndDate,
			ContractRent:     res.ContractRent,
			HapAmount:        res.HapAmount,
			TenantCopay:      res.TenantCopay,
			UtilityAllowance: res.UtilityAllowance,
			Recertification:  res.Recertification,
		}
	}
	return rows, nil
}

// VacantProperties returns non-occupied properties sorted longest
// vacant first, with undated vacancies last. Rehab and pending units
// count as idle even though their vacancy timestamp is unset.
func (r *GormReportRepository) VacantProperties(ctx context.Context, ownerID *uuid.UUID) ([]report.VacantProperty, error) {
	type vacantRow struct {
		PropertyID  uuid.UUID
		AddressText string
		VacantSince *time.Time
	}

	idleStatuses := []portfolio.PropertyStatus{
		portfolio.PropertyStatusVacant,
		portfolio.PropertyStatusRehab,
		portfolio.PropertyStatusPendingInspection,
		portfolio.PropertyStatusPendingPacket,
	}
	query := dbFor(ctx, r.db).Table("properties").
		Select("id as property_id, address_text, vacant_since").
		Where("status IN ?", idleStatuses)
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}

	var results []vacantRow
	if err := query.Order("vacant_since ASC NULLS LAST").Scan(&results).Error; err != nil {
		return nil, err
	}

	rows := make([]report.VacantProperty, len(results))
	for i, res := range results {
		rows[i] = report.VacantProperty{
			PropertyID:  res.PropertyID,
			Address:     res.AddressText,
			VacantSince: res.VacantSince,
		}
	}
	return rows, nil
}

// SumByProperty returns per-property income and expense totals over the
// window. Bounced payments are excluded from income; properties with no
// activity appear with zero totals.
func (r *GormReportRepository) SumByProperty(ctx context.Context, ownerID *uuid.UUID, window report.Window) ([]report.PropertyTotals, error) {
	type totalsRow struct {
		PropertyID uuid.UUID
		Address    string
		Income     decimal.Decimal
		Expenses   decimal.Decimal
	}

	db := dbFor(ctx, r.db)
	incomeSub := db.Table("payments").
		Select("property_id, SUM(amount) as total").
		Where("status <> ?", ledger.PaymentStatusNSF).
		Where("payment_date BETWEEN ? AND ?", window.From, window.To).
		Group("property_id")
	expenseSub := db.Table("expenses").
		Select("property_id, SUM(amount) as total").
		Where("expense_date BETWEEN ? AND ?", window.From, window.To).
		Group("property_id")

	query := db.Table("properties p").
		Select(`
			p.id as property_id,
			p.address_text as address,
			COALESCE(inc.total, 0) as income,
			COALESCE(exp.total, 0) as expenses
		`).
		Joins("LEFT JOIN (?) inc ON inc.property_id = p.id", incomeSub).
		Joins("LEFT JOIN (?) exp ON exp.property_id = p.id", expenseSub)
	if ownerID != nil {
		query = query.Where("p.owner_id = ?", *ownerID)
	}

	var results []totalsRow
	if err := query.Order("p.address_text ASC").Scan(&results).Error; err != nil {
		return nil, err
	}

	rows := make([]report.PropertyTotals, len(results))
	for i, res := range results {
		rows[i] = report.PropertyTotals{
			PropertyID: res.PropertyID,
			Address:    res.Address,
			Income:     res.Income,
			Expenses:   res.Expenses,
		}
	}
	return rows, nil
}

// SumByOwner returns per-owner income and expense totals over the
// window
func (r *GormReportRepository) SumByOwner(ctx context.Context, window report.Window) ([]report.OwnerTotals, error) {
	type totalsRow struct {
		OwnerID   uuid.UUID
		OwnerName string
		Income    decimal.Decimal
		Expenses  decimal.Decimal
	}

	db := dbFor(ctx, r.db)
	incomeSub := db.Table("payments pm").
		Select("p.owner_id, SUM(pm.amount) as total").
		Joins("JOIN properties p ON p.id = pm.property_id").
		Where("pm.status <> ?", ledger.PaymentStatusNSF).
		Where("pm.payment_date BETWEEN ? AND ?", window.From, window.To).
		Group("p.owner_id")
	expenseSub := db.Table("expenses e").
		Select("p.owner_id, SUM(e.amount) as total").
		Joins("JOIN properties p ON p.id = e.property_id").
		Where("e.expense_date BETWEEN ? AND ?", window.From, window.To).
		Group("p.owner_id")

	var results []totalsRow
	if err := db.Table("owners o").
		Select(`
			o.id as owner_id,
			o.name as owner_name,
			COALESCE(inc.total, 0) as income,
			COALESCE(exp.total, 0) as expenses
		`).
		Joins("LEFT JOIN (?) inc ON inc.owner_id = o.id", incomeSub).
		Joins("LEFT JOIN (?) exp ON exp.owner_id = o.id", expenseSub).
		Order("o.name ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}

	rows := make([]report.OwnerTotals, len(results))
	for i, res := range results {
		rows[i] = report.OwnerTotals{
			OwnerID:   res.OwnerID,
			OwnerName: res.OwnerName,
			Income:    res.Income,
			Expenses:  res.Expenses,
		}
	}
	return rows, nil
}

// SumByMonth returns per-month income and expense totals over the
// window, oldest month first. Months with no activity are absent; the
// service zero-fills them.
func (r *GormReportRepository) SumByMonth(ctx context.Context, ownerID *uuid.UUID, window report.Window) ([]report.MonthlyTotal, error) {
	income, err := r.monthlySums(ctx, ownerID, window, "payments", "payment_date", true)
	if err != nil {
		return nil, err
	}
	expenses, err := r.monthlySums(ctx, ownerID, window, "expenses", "expense_date", false)
	if err != nil {
		return nil, err
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	buckets := make(map[monthKey]*report.MonthlyTotal)
	bucket := func(year int, month time.Month) *report.MonthlyTotal {
		key := monthKey{year, month}
		if b, ok := buckets[key]; ok {
			return b
		}
		b := &report.MonthlyTotal{
			Year:     year,
			Month:    month,
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
		buckets[key] = b
		return b
	}
	for _, s := range income {
		bucket(s.year, s.month).Income = s.total
	}
	for _, s := range expenses {
		bucket(s.year, s.month).Expenses = s.total
	}

	rows := make([]report.MonthlyTotal, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, *b)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})
	return rows, nil
}

type monthlySum struct {
	year  int
	month time.Month
	total decimal.Decimal
}

func (r *GormReportRepository) monthlySums(ctx context.Context, ownerID *uuid.UUID, window report.Window, table, dateColumn string, excludeBounced bool) ([]monthlySum, error) {
	type sumRow struct {
		Year  int
		Month int
		Total decimal.Decimal
	}

	yearExpr := "EXTRACT(YEAR FROM rec." + dateColumn + ")::int"
	monthExpr := "EXTRACT(MONTH FROM rec." + dateColumn + ")::int"
	if r.db.Dialector.Name() == "sqlite" {
		yearExpr = "CAST(strftime('%Y', rec." + dateColumn + ") AS INTEGER)"
		monthExpr = "CAST(strftime('%m', rec." + dateColumn + ") AS INTEGER)"
	}

	query := dbFor(ctx, r.db).Table(table+" rec").
		Select(yearExpr+" as year, "+monthExpr+" as month, SUM(rec.amount) as total").
		Where("rec."+dateColumn+" BETWEEN ? AND ?", window.From, window.To).
		Group("1, 2")
	if excludeBounced {
		query = query.Where("rec.status <> ?", ledger.PaymentStatusNSF)
	}
	if ownerID != nil {
		query = query.
			Joins("JOIN properties p ON p.id = rec.property_id").
			Where("p.owner_id = ?", *ownerID)
	}

	var results []sumRow
	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}

	sums := make([]monthlySum, len(results))
	for i, res := range results {
		sums[i] = monthlySum{year: res.Year, month: time.Month(res.Month), total: res.Total}
	}
	return sums, nil
}

// TaxRows returns the tax summary sorted by property address then tax
// year descending
func (r *GormReportRepository) TaxRows(ctx context.Context, ownerID *uuid.UUID) ([]report.TaxSummaryRow, error) {
	type taxRow struct {
		PropertyID    uuid.UUID
		AddressText   string
		TaxYear       int
		AssessedValue decimal.Decimal
		AnnualAmount  decimal.Decimal
		Paid          bool
	}

	query := dbFor(ctx, r.db).Table("property_taxes tx").
		Select("p.id as property_id, p.address_text, tx.tax_year, tx.assessed_value, tx.annual_amount, tx.paid").
		Joins("JOIN properties p ON p.id = tx.property_id")
	if ownerID != nil {
		query = query.Where("p.owner_id = ?", *ownerID)
	}

	var results []taxRow
	if err := query.Order("p.address_text ASC, tx.tax_year DESC").Scan(&results).Error; err != nil {
		return nil, err
	}

	rows := make([]report.TaxSummaryRow, len(results))
	for i, res := range results {
		rows[i] = report.TaxSummaryRow{
			PropertyID:      res.PropertyID,
			PropertyAddress: res.AddressText,
			TaxYear:         res.TaxYear,
			AssessedValue:   res.AssessedValue,
			AnnualAmount:    res.AnnualAmount,
			Paid:            res.Paid,
		}
	}
	return rows, nil
}

// OutstandingNotices returns unresolved city notices sorted by status
// then deadline, undated notices last
func (r *GormReportRepository) OutstandingNotices(ctx context.Context) ([]report.OutstandingNotice, error) {
	type noticeRow struct {
		NoticeID    uuid.UUID
		PropertyID  uuid.UUID
		AddressText string
		Type        string
		Status      string
		Deadline    *time.Time
	}

	var results []noticeRow
	if err := dbFor(ctx, r.db).Table("city_notices n").
		Select("n.id as notice_id, p.id as property_id, p.address_text, n.type, n.status, n.deadline").
		Joins("JOIN properties p ON p.id = n.property_id").
		Where("n.status <> ?", compliance.NoticeStatusResolved).
		Order("n.status ASC, n.deadline ASC NULLS LAST").
		Scan(&results).Error; err != nil {
		return nil, err
	}

	rows := make([]report.OutstandingNotice, len(results))
	for i, res := range results {
		rows[i] = report.OutstandingNotice{
			NoticeID:   res.NoticeID,
			PropertyID: res.PropertyID,
			Address:    res.AddressText,
			Type:       res.Type,
			Status:     res.Status,
			Deadline:   res.Deadline,
		}
	}
	return rows, nil
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)
