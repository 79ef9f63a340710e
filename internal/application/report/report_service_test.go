package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/propertyops/backend/internal/domain/ops"
	"github.com/propertyops/backend/internal/domain/report"
	"github.com/propertyops/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) ActiveLeaseRows(ctx context.Context, ownerID *uuid.UUID) ([]report.RentRollRow, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]report.RentRollRow), args.Error(1)
}

func (m *MockReportRepository) VacantProperties(ctx context.Context, ownerID *uuid.UUID) ([]report.VacantProperty, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]report.VacantProperty), args.Error(1)
}

func (m *MockReportRepository) SumByProperty(ctx context.Context, ownerID *uuid.UUID, window report.Window) ([]report.PropertyTotals, error) {
	args := m.Called(ctx, ownerID, window)
	return args.Get(0).([]report.PropertyTotals), args.Error(1)
}

func (m *MockReportRepository) SumByOwner(ctx context.Context, window report.Window) ([]report.OwnerTotals, error) {
	args := m.Called(ctx, window)
	return args.Get(0).([]report.OwnerTotals), args.Error(1)
}

func (m *MockReportRepository) SumByMonth(ctx context.Context, ownerID *uuid.UUID, window report.Window) ([]report.MonthlyTotal, error) {
	args := m.Called(ctx, ownerID, window)
	return args.Get(0).([]report.MonthlyTotal), args.Error(1)
}

func (m *MockReportRepository) TaxRows(ctx context.Context, ownerID *uuid.UUID) ([]report.TaxSummaryRow, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]report.TaxSummaryRow), args.Error(1)
}

func (m *MockReportRepository) OutstandingNotices(ctx context.Context) ([]report.OutstandingNotice, error) {
	args := m.Called(ctx)
	return args.Get(0).([]report.OutstandingNotice), args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*ops.PmTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ops.PmTask), args.Error(1)
}

func (m *MockTaskRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ops.PmTask, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ops.PmTask), args.Error(1)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *ops.PmTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) FindByStatus(ctx context.Context, status ops.TaskStatus, filter shared.Filter) ([]ops.PmTask, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]ops.PmTask), args.Error(1)
}

func (m *MockTaskRepository) FindAcknowledged(ctx context.Context) ([]ops.PmTask, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ops.PmTask), args.Error(1)
}

func newReportService(reportRepo *MockReportRepository, taskRepo *MockTaskRepository, now time.Time) *ReportService {
	return NewReportService(reportRepo, taskRepo, shared.FixedClock{Instant: now})
}

// =============================================================================
// Tests
// =============================================================================

func TestReportService_RentRoll_SumsSubsidySplits(t *testing.T) {
	reportRepo := new(MockReportRepository)
	taskRepo := new(MockTaskRepository)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	ctx := context.Background()
	reportRepo.On("ActiveLeaseRows", ctx, (*uuid.UUID)(nil)).Return([]report.RentRollRow{
		{ContractRent: decimal.NewFromInt(1200), HapAmount: decimal.NewFromInt(950), TenantCopay: decimal.NewFromInt(250)},
		{ContractRent: decimal.NewFromInt(1000), HapAmount: decimal.NewFromInt(1000), TenantCopay: decimal.Zero},
	}, nil)

	service := newReportService(reportRepo, taskRepo, now)

	rep, err := service.RentRoll(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "2200", rep.TotalContractRent.String())
	assert.Equal(t, "1950", rep.TotalHap.String())
	assert.Equal(t, "250", rep.TotalCopay.String())
}

func TestReportService_Vacancy_RiskBands(t *testing.T) {
	reportRepo := new(MockReportRepository)
	taskRepo := new(MockTaskRepository)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	since := func(days int) *time.Time {
		d := now.AddDate(0, 0, -days)
		return &d
	}

	ctx := context.Background()
	reportRepo.On("VacantProperties", ctx, (*uuid.UUID)(nil)).Return([]report.VacantProperty{
		{PropertyID: uuid.New(), Address: "A", VacantSince: since(75)},
		{PropertyID: uuid.New(), Address: "B", VacantSince: since(60)},
		{PropertyID: uuid.New(), Address: "C", VacantSince: since(59)},
		{PropertyID: uuid.New(), Address: "D", VacantSince: since(45)},
		{PropertyID: uuid.New(), Address: "E", VacantSince: since(30)},
		{PropertyID: uuid.New(), Address: "F", VacantSince: since(29)},
		{PropertyID: uuid.New(), Address: "G", VacantSince: nil},
	}, nil)

	service := newReportService(reportRepo, taskRepo, now)

	rep, err := service.Vacancy(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 7)
	assert.Equal(t, report.VacancyRiskCritical, rep.Rows[0].Risk)
	assert.Equal(t, report.VacancyRiskCritical, rep.Rows[1].Risk)
	assert.Equal(t, report.VacancyRiskUrgent, rep.Rows[2].Risk)
	assert.Equal(t, report.VacancyRiskUrgent, rep.Rows[3].Risk)
	assert.Equal(t, report.VacancyRiskWatch, rep.Rows[4].Risk)
	assert.Equal(t, report.VacancyRiskNormal, rep.Rows[5].Risk)
	assert.Equal(t, 0, rep.Rows[6].DaysVacant)
	assert.Equal(t, report.VacancyRiskNormal, rep.Rows[6].Risk)
	assert.Equal(t, 75, rep.Rows[0].DaysVacant)
}

func TestReportService_Vacancy_PartialDayDoesNotCount(t *testing.T) {
	reportRepo := new(MockReportRepository)
	taskRepo := new(MockTaskRepository)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// 30 days minus one hour: still 29 whole days
	s := now.AddDate(0, 0, -30).Add(time.Hour)
	ctx := context.Background()
	reportRepo.On("VacantProperties", ctx, (*uuid.UUID)(nil)).Return([]report.VacantProperty{
		{PropertyID: uuid.New(), Address: "A", VacantSince: &s},
	}, nil)

	service := newReportService(reportRepo, taskRepo, now)

	rep, err := service.Vacancy(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 29, rep.Rows[0].DaysVacant)
	assert.Equal(t, report.VacancyRiskNormal, rep.Rows[0].Risk)
}

func TestReportService_PortfolioPnL_AppendsTotalRow(t *testing.T) {
	reportRepo := new(MockReportRepository)
	taskRepo := new(MockTaskRepository)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	p1, p2 := uuid.New(), uuid.New()
	ctx := context.Background()
	reportRepo.On("SumByProperty", ctx, (*uuid.UUID)(nil), mock.AnythingOfType("report.Window")).Return([]report.PropertyTotals{
		{PropertyID: p1, Address: "528 Winton St", Income: decimal.NewFromInt(2400), Expenses: decimal.NewFromInt(900)},
		{PropertyID: p2, Address: "1901 Dudley St", Income: decimal.NewFromInt(1100), Expenses: decimal.NewFromInt(1400)},
	}, nil)

	service := newReportService(reportRepo, taskRepo, now)

	rep, err := service.PortfolioPnL(ctx, nil, WindowRequest{})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 3)

	assert.Equal(t, "1500", rep.Rows[0].Net.String())
	assert.Equal(t, "-300", rep.Rows[1].Net.String())

	total := rep.Rows[2]
	assert.Nil(t, total.PropertyID)
	assert.Equal(t, "TOTAL", total.PropertyAddress)
	assert.Equal(t, "3500", total.Income.String())
	assert.Equal(t, "2300", total.Expenses.String())
	assert.Equal(t, "1200", total.Net.String())

	// default window runs from year start to now
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), rep.From)
	assert.True(t, rep.To.Equal(now))
}

func TestReportService_OwnerPnL_NoTotalRow(t *testing.T) {
	reportRepo := new(MockReportRepository)
	taskRepo := new(MockTaskRepository)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	ctx := context.Background()
	reportRepo.On("SumByOwner", ctx, mock.AnythingOfType("report.Window")).Return([]report.OwnerTotals{
		{OwnerID: uuid.New(), OwnerName: "Harbor View LLC", Income: decimal.NewFromInt(3500), Expenses: decimal.NewFromInt(2300)},
	}, nil)

	service := newReportService(reportRepo, taskRepo, now)

	rep, err := service.OwnerPnL(ctx, WindowRequest{})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "1200", rep.Rows[0].Net.String())
}

func TestReportService_OutstandingNotices_DeadlineRoundsUp(t *testing.T) {
	reportRepo := new(MockReportRepository)
	taskRepo := new(MockTaskRepository)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	halfDay := now.Add(12 * time.Hour)
	pastDue := now.Add(-36 * time.Hour)
	ctx := context.Background()
	reportRepo.On("OutstandingNotices", ctx).Return([]report.OutstandingNotice{
		{NoticeID: uuid.New(), Address: "A", Deadline: &halfDay},
		{NoticeID: uuid.New(), Address: "B", Deadline: &pastDue},
		{NoticeID: uuid.New(), Address: "C", Deadline: nil},
	}, nil)

	service := newReportService(reportRepo, taskRepo, now)

	rep, err := service.OutstandingNotices(ctx)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 3)

	require.NotNil(t, rep.Rows[0].DaysUntilDeadline)
	assert.Equal(t, 1, *rep.Rows[0].DaysUntilDeadline)
	require.NotNil(t, rep.Rows[1].DaysUntilDeadline)
	assert.Equal(t, -1, *rep.Rows[1].DaysUntilDeadline)
	assert.Nil(t, rep.Rows[2].DaysUntilDeadline)
}

func TestReportService_PmPerformance_RoundsToNearestHour(t *testing.T) {
	reportRepo := new(MockReportRepository)
	taskRepo := new(MockTaskRepository)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	mkTask := func(created time.Time, ackAfter time.Duration) ops.PmTask {
		task, err := ops.NewPmTask("Fix leak", "", ops.TaskPriorityNormal, nil, nil, created)
		require.NoError(t, err)
		require.NoError(t, task.Transition(ops.TaskStatusPmAcknowledged, created.Add(ackAfter)))
		return *task
	}

	created := now.AddDate(0, 0, -3)
	unacked, err := ops.NewPmTask("Paint unit", "", ops.TaskPriorityLow, nil, nil, created)
	require.NoError(t, err)

	ctx := context.Background()
	taskRepo.On("FindAcknowledged", ctx).Return([]ops.PmTask{
		mkTask(created, 90*time.Minute),  // rounds to 2
		mkTask(created, 100*time.Minute), // rounds to 2
		mkTask(created, 20*time.Minute),  // rounds to 0
		*unacked,                         // missing timestamp, skipped
	}, nil)

	service := newReportService(reportRepo, taskRepo, now)

	rep, err := service.PmPerformance(ctx)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 3)
	assert.Equal(t, 2, rep.Rows[0].ResponseHours)
	assert.Equal(t, 2, rep.Rows[1].ResponseHours)
	assert.Equal(t, 0, rep.Rows[2].ResponseHours)
	assert.InDelta(t, 4.0/3.0, rep.AverageResponseHours, 1e-9)
}

func TestReportService_Dashboard_TrailingYearZeroFilled(t *testing.T) {
	reportRepo := new(MockReportRepository)
	taskRepo := new(MockTaskRepository)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	ctx := context.Background()
	// activity in only three of the twelve months
	reportRepo.On("SumByMonth", ctx, (*uuid.UUID)(nil), mock.AnythingOfType("report.Window")).Return([]report.MonthlyTotal{
		{Year: 2024, Month: time.August, Income: decimal.NewFromInt(500), Expenses: decimal.NewFromInt(100)},
		{Year: 2025, Month: time.February, Income: decimal.NewFromInt(1200), Expenses: decimal.NewFromInt(300)},
		{Year: 2025, Month: time.June, Income: decimal.NewFromInt(800), Expenses: decimal.NewFromInt(50)},
	}, nil)
	reportRepo.On("VacantProperties", ctx, (*uuid.UUID)(nil)).Return([]report.VacantProperty{
		{PropertyID: uuid.New(), Address: "A"},
	}, nil)
	reportRepo.On("OutstandingNotices", ctx).Return([]report.OutstandingNotice{}, nil)

	service := newReportService(reportRepo, taskRepo, now)

	rep, err := service.Dashboard(ctx, nil)
	require.NoError(t, err)

	require.Len(t, rep.TrailingYear, 12)
	assert.Equal(t, 2024, rep.TrailingYear[0].Year)
	assert.Equal(t, time.July, rep.TrailingYear[0].Month)
	assert.Equal(t, time.June, rep.TrailingYear[11].Month)
	assert.Equal(t, 2025, rep.TrailingYear[11].Year)

	// zero-filled month
	assert.Equal(t, "0", rep.TrailingYear[0].Income.String())
	// populated months carry their totals
	assert.Equal(t, "500", rep.TrailingYear[1].Income.String())
	assert.Equal(t, "400", rep.TrailingYear[1].Net.String())

	assert.Equal(t, time.June, rep.MonthToDate.Month)
	assert.Equal(t, "800", rep.MonthToDate.Income.String())
	assert.Equal(t, "750", rep.MonthToDate.Net.String())

	// YTD covers only 2025 months
	assert.Equal(t, "2000", rep.YearToDate.Income.String())
	assert.Equal(t, "350", rep.YearToDate.Expenses.String())
	assert.Equal(t, "1650", rep.YearToDate.Net.String())

	assert.Equal(t, 1, rep.VacancyCount)
	assert.Equal(t, 0, rep.NoticeCount)
}

func TestReportService_Dashboard_WindowStartsFirstOfMonth(t *testing.T) {
	reportRepo := new(MockReportRepository)
	taskRepo := new(MockTaskRepository)
	now := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)

	var captured report.Window
	ctx := context.Background()
	reportRepo.On("SumByMonth", ctx, (*uuid.UUID)(nil), mock.AnythingOfType("report.Window")).Run(func(args mock.Arguments) {
		captured = args.Get(2).(report.Window)
	}).Return([]report.MonthlyTotal{}, nil)
	reportRepo.On("VacantProperties", ctx, (*uuid.UUID)(nil)).Return([]report.VacantProperty{}, nil)
	reportRepo.On("OutstandingNotices", ctx).Return([]report.OutstandingNotice{}, nil)

	service := newReportService(reportRepo, taskRepo, now)

	rep, err := service.Dashboard(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), captured.From)
	require.Len(t, rep.TrailingYear, 12)
	assert.Equal(t, "0", rep.YearToDate.Income.String())
	assert.Equal(t, time.January, rep.MonthToDate.Month)
}
