package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VacantProperty is the read-side seed for one vacancy report row.
// Days vacant and risk banding are computed by the service against the
// injected clock.
type VacantProperty struct {
	PropertyID  uuid.UUID
	Address     string
	VacantSince *time.Time
}

// PropertyTotals is one property's summed income and expenses
type PropertyTotals struct {
	PropertyID uuid.UUID
	Address    string
	Income     decimal.Decimal
	Expenses   decimal.Decimal
}

// OwnerTotals is one owner's summed income and expenses
type OwnerTotals struct {
	OwnerID   uuid.UUID
	OwnerName string
	Income    decimal.Decimal
	Expenses  decimal.Decimal
}

// MonthlyTotal is one calendar month's summed income and expenses.
// Only months with activity appear; the service zero-fills the rest.
type MonthlyTotal struct {
	Year     int
	Month    time.Month
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// OutstandingNotice is the read-side seed for one city-notice report
// row
type OutstandingNotice struct {
	NoticeID   uuid.UUID
	PropertyID uuid.UUID
	Address    string
	Type       string
	Status     string
	Deadline   *time.Time
}

// Repository is the read side of reporting. Implementations aggregate
// in SQL; every method is a pure query with no side effects.
type Repository interface {
	// ActiveLeaseRows returns the rent roll rows for active leases,
	// sorted by property address. A nil owner means the whole
	// portfolio.
	ActiveLeaseRows(ctx context.Context, ownerID *uuid.UUID) ([]RentRollRow, error)

	// VacantProperties returns vacant properties sorted by
	// VacantSince ascending, longest vacant first, nulls last.
	VacantProperties(ctx context.Context, ownerID *uuid.UUID) ([]VacantProperty, error)

	// SumByProperty returns per-property income and expense totals
	// over the window. Bounced payments are excluded from income.
	// Properties with no activity still appear with zero totals.
	SumByProperty(ctx context.Context, ownerID *uuid.UUID, window Window) ([]PropertyTotals, error)

	// SumByOwner returns per-owner income and expense totals over the
	// window.
	SumByOwner(ctx context.Context, window Window) ([]OwnerTotals, error)

	// SumByMonth returns per-month income and expense totals over the
	// window, oldest month first.
	SumByMonth(ctx context.Context, ownerID *uuid.UUID, window Window) ([]MonthlyTotal, error)

	// TaxRows returns the tax summary sorted by property address then
	// tax year descending.
	TaxRows(ctx context.Context, ownerID *uuid.UUID) ([]TaxSummaryRow, error)

	// OutstandingNotices returns unresolved city notices sorted by
	// status then deadline, undated notices last.
	OutstandingNotices(ctx context.Context) ([]OutstandingNotice, error)
}
