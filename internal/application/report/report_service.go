package report

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propertyops/backend/internal/domain/ops"
	"github.com/propertyops/backend/internal/domain/report"
	"github.com/propertyops/backend/internal/domain/shared"
)

// totalRowLabel names the synthetic summary row on the portfolio P&L
const totalRowLabel = "TOTAL"

// ReportService computes read-side reports. All SQL aggregation
// happens in the report repository; this service applies window
// defaults, day math, and banding.
type ReportService struct {
	reportRepo report.Repository
	taskRepo   ops.PmTaskRepository
	clock      shared.Clock
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo report.Repository, taskRepo ops.PmTaskRepository, clock shared.Clock) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		taskRepo:   taskRepo,
		clock:      clock,
	}
}

// WindowRequest carries an optional report date window. Missing bounds
// default to year start through now.
type WindowRequest struct {
	From *time.Time `form:"from"`
	To   *time.Time `form:"to"`
}

// PnLReport is the portfolio or single-owner profit and loss
type PnLReport struct {
	From time.Time       `json:"from"`
	To   time.Time       `json:"to"`
	Rows []report.PnLRow `json:"rows"`
}

// OwnerPnLReport groups profit and loss by owning entity
type OwnerPnLReport struct {
	From time.Time            `json:"from"`
	To   time.Time            `json:"to"`
	Rows []report.OwnerPnLRow `json:"rows"`
}

// VacancyReport lists vacant properties with risk banding
type VacancyReport struct {
	AsOf time.Time           `json:"as_of"`
	Rows []report.VacancyRow `json:"rows"`
}

// RentRollReport lists active leases with subsidy splits
type RentRollReport struct {
	Rows              []report.RentRollRow `json:"rows"`
	TotalContractRent decimal.Decimal      `json:"total_contract_rent"`
	TotalHap          decimal.Decimal      `json:"total_hap"`
	TotalCopay        decimal.Decimal      `json:"total_copay"`
}

// NoticesReport lists unresolved city notices with deadline pressure
type NoticesReport struct {
	AsOf time.Time          `json:"as_of"`
	Rows []report.NoticeRow `json:"rows"`
}

// PerformanceReport lists acknowledged PM tasks with response times
type PerformanceReport struct {
	Rows                 []report.TaskPerformanceRow `json:"rows"`
	AverageResponseHours float64                     `json:"average_response_hours"`
}

// DashboardReport summarizes cash flow for the dashboard. The trailing
// series carries an entry for every month in the window, zero-filled
// where no activity occurred.
type DashboardReport struct {
	AsOf         time.Time            `json:"as_of"`
	MonthToDate  report.MonthBucket   `json:"month_to_date"`
	YearToDate   report.MonthBucket   `json:"year_to_date"`
	TrailingYear []report.MonthBucket `json:"trailing_year"`
	VacancyCount int                  `json:"vacancy_count"`
	NoticeCount  int                  `json:"notice_count"`
}

// RentRoll builds the rent roll for the portfolio or one owner
func (s *ReportService) RentRoll(ctx context.Context, ownerID *uuid.UUID) (*RentRollReport, error) {
	rows, err := s.reportRepo.ActiveLeaseRows(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rep := &RentRollReport{
		Rows:              rows,
		TotalContractRent: decimal.Zero,
		TotalHap:          decimal.Zero,
		TotalCopay:        decimal.Zero,
	}
	for _, r := range rows {
		rep.TotalContractRent = rep.TotalContractRent.Add(r.ContractRent)
		rep.TotalHap = rep.TotalHap.Add(r.HapAmount)
		rep.TotalCopay = rep.TotalCopay.Add(r.TenantCopay)
	}
	return rep, nil
}

// Vacancy builds the vacancy report with days-vacant risk bands
func (s *ReportService) Vacancy(ctx context.Context, ownerID *uuid.UUID) (*VacancyReport, error) {
	vacant, err := s.reportRepo.VacantProperties(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rows := make([]report.VacancyRow, 0, len(vacant))
	for _, v := range vacant {
		days := 0
		if v.VacantSince != nil {
			days = int(now.Sub(*v.VacantSince) / (24 * time.Hour))
		}
		rows = append(rows, report.VacancyRow{
			PropertyID:      v.PropertyID,
			PropertyAddress: v.Address,
			VacantSince:     v.VacantSince,
			DaysVacant:      days,
			Risk:            report.RiskForDaysVacant(days),
		})
	}
	return &VacancyReport{AsOf: now, Rows: rows}, nil
}

// PortfolioPnL builds the per-property profit and loss with a
// synthetic TOTAL row appended last. A nil owner covers the whole
// portfolio.
func (s *ReportService) PortfolioPnL(ctx context.Context, ownerID *uuid.UUID, req WindowRequest) (*PnLReport, error) {
	window := s.resolveWindow(req)
	totals, err := s.reportRepo.SumByProperty(ctx, ownerID, window)
	if err != nil {
		return nil, err
	}

	rows := make([]report.PnLRow, 0, len(totals)+1)
	sumIncome, sumExpenses := decimal.Zero, decimal.Zero
	for _, t := range totals {
		id := t.PropertyID
		rows = append(rows, report.PnLRow{
			PropertyID:      &id,
			PropertyAddress: t.Address,
			Income:          t.Income,
			Expenses:        t.Expenses,
			Net:             t.Income.Sub(t.Expenses),
		})
		sumIncome = sumIncome.Add(t.Income)
		sumExpenses = sumExpenses.Add(t.Expenses)
	}
	rows = append(rows, report.PnLRow{
		PropertyAddress: totalRowLabel,
		Income:          sumIncome,
		Expenses:        sumExpenses,
		Net:             sumIncome.Sub(sumExpenses),
	})

	return &PnLReport{From: window.From, To: window.To, Rows: rows}, nil
}

// OwnerPnL builds the per-owner profit and loss. No total row.
func (s *ReportService) OwnerPnL(ctx context.Context, req WindowRequest) (*OwnerPnLReport, error) {
	window := s.resolveWindow(req)
	totals, err := s.reportRepo.SumByOwner(ctx, window)
	if err != nil {
		return nil, err
	}

	rows := make([]report.OwnerPnLRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, report.OwnerPnLRow{
			OwnerID:   t.OwnerID,
			OwnerName: t.OwnerName,
			Income:    t.Income,
			Expenses:  t.Expenses,
			Net:       t.Income.Sub(t.Expenses),
		})
	}
	return &OwnerPnLReport{From: window.From, To: window.To, Rows: rows}, nil
}

// TaxSummary builds the property tax summary
func (s *ReportService) TaxSummary(ctx context.Context, ownerID *uuid.UUID) ([]report.TaxSummaryRow, error) {
	return s.reportRepo.TaxRows(ctx, ownerID)
}

// OutstandingNotices builds the unresolved city notice report. Days
// until deadline rounds partial days up and goes negative past the
// deadline.
func (s *ReportService) OutstandingNotices(ctx context.Context) (*NoticesReport, error) {
	notices, err := s.reportRepo.OutstandingNotices(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rows := make([]report.NoticeRow, 0, len(notices))
	for _, n := range notices {
		row := report.NoticeRow{
			NoticeID:        n.NoticeID,
			PropertyID:      n.PropertyID,
			PropertyAddress: n.Address,
			Type:            n.Type,
			Status:          n.Status,
			Deadline:        n.Deadline,
		}
		if n.Deadline != nil {
			days := int(math.Ceil(n.Deadline.Sub(now).Hours() / 24))
			row.DaysUntilDeadline = &days
		}
		rows = append(rows, row)
	}
	return &NoticesReport{AsOf: now, Rows: rows}, nil
}

// PmPerformance builds the PM response-time report from acknowledged
// tasks
func (s *ReportService) PmPerformance(ctx context.Context) (*PerformanceReport, error) {
	tasks, err := s.taskRepo.FindAcknowledged(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]report.TaskPerformanceRow, 0, len(tasks))
	totalHours := 0
	for i := range tasks {
		hours, ok := tasks[i].ResponseHours()
		if !ok {
			continue
		}
		rows = append(rows, report.TaskPerformanceRow{
			TaskID:        tasks[i].ID,
			Title:         tasks[i].Title,
			Priority:      tasks[i].Priority.String(),
			CreatedAt:     tasks[i].CreatedAt,
			Acknowledged:  *tasks[i].AcknowledgedAt,
			ResponseHours: hours,
		})
		totalHours += hours
	}

	rep := &PerformanceReport{Rows: rows}
	if len(rows) > 0 {
		rep.AverageResponseHours = float64(totalHours) / float64(len(rows))
	}
	return rep, nil
}

// Dashboard builds the MTD, YTD, and trailing-12-month cash flow
// summary. The trailing window always starts on the first of the month
// 11 months back, so the current calendar year is fully covered by one
// monthly query.
func (s *ReportService) Dashboard(ctx context.Context, ownerID *uuid.UUID) (*DashboardReport, error) {
	now := s.clock.Now()
	trailingStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)

	monthly, err := s.reportRepo.SumByMonth(ctx, ownerID, report.Window{From: trailingStart, To: now})
	if err != nil {
		return nil, err
	}

	byMonth := make(map[[2]int]report.MonthlyTotal, len(monthly))
	for _, m := range monthly {
		byMonth[[2]int{m.Year, int(m.Month)}] = m
	}

	trailing := make([]report.MonthBucket, 0, 12)
	mtd := zeroBucket(now.Year(), now.Month())
	ytd := zeroBucket(now.Year(), time.January)
	cursor := trailingStart
	for i := 0; i < 12; i++ {
		bucket := zeroBucket(cursor.Year(), cursor.Month())
		if m, ok := byMonth[[2]int{cursor.Year(), int(cursor.Month())}]; ok {
			bucket.Income = m.Income
			bucket.Expenses = m.Expenses
			bucket.Net = m.Income.Sub(m.Expenses)
		}
		trailing = append(trailing, bucket)

		if cursor.Year() == now.Year() {
			ytd.Income = ytd.Income.Add(bucket.Income)
			ytd.Expenses = ytd.Expenses.Add(bucket.Expenses)
		}
		if cursor.Year() == now.Year() && cursor.Month() == now.Month() {
			mtd = bucket
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	ytd.Net = ytd.Income.Sub(ytd.Expenses)

	vacant, err := s.reportRepo.VacantProperties(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	notices, err := s.reportRepo.OutstandingNotices(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardReport{
		AsOf:         now,
		MonthToDate:  mtd,
		YearToDate:   ytd,
		TrailingYear: trailing,
		VacancyCount: len(vacant),
		NoticeCount:  len(notices),
	}, nil
}

// resolveWindow applies the default window, year start through now
func (s *ReportService) resolveWindow(req WindowRequest) report.Window {
	now := s.clock.Now()
	window := report.Window{
		From: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()),
		To:   now,
	}
	if req.From != nil {
		window.From = *req.From
	}
	if req.To != nil {
		window.To = *req.To
	}
	return window
}

func zeroBucket(year int, month time.Month) report.MonthBucket {
	return report.MonthBucket{
		Year:     year,
		Month:    month,
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
		Net:      decimal.Zero,
	}
}
