package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/kpi"
	"github.com/salestrack/inquiry-api/internal/service"
	"github.com/salestrack/inquiry-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedGraded inserts an inquiry with precomputed grades for aggregation tests
func seedGraded(t *testing.T, f *fixture, managerID uuid.UUID, createdAt time.Time, status domain.InquiryStatus, quote, completion *domain.Grade, isNew bool) {
	t.Helper()
	inq := &domain.Inquiry{
		Client:          "client",
		Text:            "text",
		SalesManagerID:  &managerID,
		Status:          status,
		QuoteGrade:      quote,
		CompletionGrade: completion,
		IsNewCustomer:   isNew,
		CreatedAt:       createdAt.UTC(),
	}
	require.NoError(t, f.db.Create(inq).Error)
}

func marchRange(t *testing.T, f *fixture) domain.DateRange {
	from := at(1, 0, 0)
	to := at(31, 0, 0)
	rng, err := f.performanceSvc.ResolveDateRange(&from, &to)
	require.NoError(t, err)
	return rng
}

func TestPerformanceService_ResolveDateRange(t *testing.T) {
	f := setup(t, at(15, 23, 30))

	rng, err := f.performanceSvc.ResolveDateRange(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", rng.From.Format("2006-01-02"))
	assert.Equal(t, "2024-03-31", rng.To.Format("2006-01-02"))

	// late evening UTC is already the next day in Almaty
	from := time.Date(2024, 2, 29, 20, 0, 0, 0, time.UTC)
	rng, err = f.performanceSvc.ResolveDateRange(&from, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", rng.From.Format("2006-01-02"))

	to := at(1, 0, 0)
	later := at(2, 0, 0)
	_, err = f.performanceSvc.ResolveDateRange(&later, &to)
	assert.ErrorIs(t, err, kpi.ErrValidation)
}

func TestPerformanceService_GetPerformanceGrade(t *testing.T) {
	f := setup(t, at(15, 12, 0))
	ctx := context.Background()
	manager := testutil.CreateTestUser(t, f.db, "anna", domain.UserTypeManager)

	seedGraded(t, f, manager.ID, at(5, 9, 0), domain.InquiryStatusQuoted, ptr(domain.GradeA), nil, false)
	seedGraded(t, f, manager.ID, at(6, 9, 0), domain.InquiryStatusSuccess, ptr(domain.GradeA), ptr(domain.GradeA), false)
	// outside the range
	seedGraded(t, f, manager.ID, at(1, 0, 0).Add(-time.Minute), domain.InquiryStatusFailed, ptr(domain.GradeC), ptr(domain.GradeC), false)

	rng := marchRange(t, f)

	grade, err := f.performanceSvc.GetPerformanceGrade(ctx, manager.ID, rng)
	require.NoError(t, err)
	assert.Equal(t, domain.PerformanceNotConfigured, grade.Grade)
	assert.Equal(t, int64(2), grade.InquiryCount)
	// 100 response, 100 follow up, 50 conversion, 0 new customers at 25 each
	assert.Equal(t, 62.5, grade.Performance)
	assert.Nil(t, grade.Bracket)

	_, err = f.targetSvc.Create(ctx, targetReq(0, ptr(10), 60))
	require.NoError(t, err)
	grade, err = f.performanceSvc.GetPerformanceGrade(ctx, manager.ID, rng)
	require.NoError(t, err)
	assert.Equal(t, domain.PerformanceExcellent, grade.Grade)
	require.NotNil(t, grade.Threshold)
	assert.Equal(t, 60.0, *grade.Threshold)
	require.NotNil(t, grade.Bracket)
	assert.Equal(t, "0-10", grade.Bracket.VolumeDisplay)

	_, err = f.weightsSvc.CreateWeightsConfiguration(ctx, &domain.KPIWeightsRequest{
		ResponseTimeWeight: 0, FollowUpWeight: 0, ConversionRateWeight: 50, NewCustomerWeight: 50,
	}, nil)
	require.NoError(t, err)
	grade, err = f.performanceSvc.GetPerformanceGrade(ctx, manager.ID, rng)
	require.NoError(t, err)
	assert.Equal(t, 25.0, grade.Performance)
	assert.Equal(t, domain.PerformanceAverage, grade.Grade)

	_, err = f.performanceSvc.GetPerformanceGrade(ctx, uuid.New(), rng)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestPerformanceService_GetManagerKPIStatistics(t *testing.T) {
	f := setup(t, at(15, 12, 0))
	ctx := context.Background()
	manager := testutil.CreateTestUser(t, f.db, "anna", domain.UserTypeManager)

	seedGraded(t, f, manager.ID, at(5, 9, 0), domain.InquiryStatusPending, nil, nil, true)
	seedGraded(t, f, manager.ID, at(5, 9, 0), domain.InquiryStatusSuccess, ptr(domain.GradeA), ptr(domain.GradeB), true)
	seedGraded(t, f, manager.ID, at(5, 9, 0), domain.InquiryStatusFailed, ptr(domain.GradeB), ptr(domain.GradeC), false)
	seedGraded(t, f, manager.ID, at(5, 9, 0), domain.InquiryStatusQuoted, ptr(domain.GradeC), nil, false)

	stats, err := f.performanceSvc.GetManagerKPIStatistics(ctx, manager.ID, marchRange(t, f))
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Counts.Total)
	assert.Equal(t, int64(3), stats.Processed)
	assert.Equal(t, int64(2), stats.Completed)
	assert.Equal(t, int64(4), stats.QuotePoints)
	assert.Equal(t, int64(1), stats.CompletionPoints)
	assert.Equal(t, int64(5), stats.TotalKPIPoints)
	// quote points are averaged over processed inquiries, not the total
	assert.Equal(t, 1.33, stats.AvgQuotePoints)
	assert.Equal(t, 0.5, stats.AvgCompletionPoints)
	assert.Equal(t, 2.5, stats.AvgTotalPoints)
	assert.Equal(t, 25.0, stats.ConversionRate)
	assert.Equal(t, 33.33, stats.ProcessingConversionRate)
	assert.Equal(t, 50.0, stats.NewCustomerRate)
	assert.Equal(t, 33.33, stats.QuoteGradeDistribution[domain.GradeA])
	assert.Equal(t, 50.0, stats.CompletionGradeDistribution[domain.GradeC])
	assert.Equal(t, "2024-03-01", stats.DateFrom)
	assert.Equal(t, "2024-03-31", stats.DateTo)
}

func TestPerformanceService_Dashboard(t *testing.T) {
	f := setup(t, at(15, 12, 0))
	ctx := context.Background()
	strong := testutil.CreateTestUser(t, f.db, "strong", domain.UserTypeManager)
	weak := testutil.CreateTestUser(t, f.db, "weak", domain.UserTypeManager)
	testutil.CreateTestUser(t, f.db, "idle", domain.UserTypeManager)
	boss := testutil.CreateTestUser(t, f.db, "boss", domain.UserTypeAdmin)
	retired := testutil.CreateTestUser(t, f.db, "retired", domain.UserTypeManager)
	require.NoError(t, f.db.Model(&domain.User{}).Where("id = ?", retired.ID).Update("is_active", false).Error)

	seedGraded(t, f, strong.ID, at(5, 9, 0), domain.InquiryStatusSuccess, ptr(domain.GradeA), ptr(domain.GradeA), true)
	seedGraded(t, f, weak.ID, at(5, 9, 0), domain.InquiryStatusFailed, ptr(domain.GradeC), ptr(domain.GradeC), false)
	seedGraded(t, f, weak.ID, at(5, 9, 0), domain.InquiryStatusQuoted, ptr(domain.GradeB), nil, false)
	seedGraded(t, f, boss.ID, at(6, 9, 0), domain.InquiryStatusQuoted, ptr(domain.GradeB), nil, false)
	seedGraded(t, f, retired.ID, at(6, 9, 0), domain.InquiryStatusQuoted, ptr(domain.GradeA), nil, false)
	// outside the range
	seedGraded(t, f, boss.ID, time.Date(2024, time.April, 2, 9, 0, 0, 0, almaty), domain.InquiryStatusQuoted, ptr(domain.GradeA), nil, false)

	_, err := f.targetSvc.Create(ctx, targetReq(0, nil, 50))
	require.NoError(t, err)

	dash, err := f.performanceSvc.Dashboard(ctx, marchRange(t, f))
	require.NoError(t, err)
	require.Len(t, dash.Managers, 4)
	assert.True(t, dash.Weights.IsDefault)

	ids := make([]uuid.UUID, 0, len(dash.Managers))
	for _, row := range dash.Managers {
		ids = append(ids, row.ManagerID)
	}
	// the idle manager is not ranked; admins and deactivated managers are
	assert.Equal(t, []uuid.UUID{strong.ID, retired.ID, boss.ID, weak.ID}, ids)

	top := dash.Managers[0]
	assert.Equal(t, 100.0, top.OverallScore)
	assert.Equal(t, domain.PerformanceExcellent, top.PerformanceGrade)

	assert.Equal(t, "Test retired", dash.Managers[1].ManagerName)
	assert.Equal(t, 25.0, dash.Managers[1].OverallScore)

	admin := dash.Managers[2]
	assert.Equal(t, int64(1), admin.TotalInquiries)
	assert.Equal(t, 66.7, admin.ResponseTimePct)
	assert.InDelta(t, 16.675, admin.OverallScore, 0.01)

	// weak: response (2-1)/6 = 16.7, follow up -1/3 = -33.3
	last := dash.Managers[3]
	assert.Equal(t, 16.7, last.ResponseTimePct)
	assert.Equal(t, -33.3, last.FollowUpPct)
	assert.InDelta(t, -4.15, last.OverallScore, 0.001)
	assert.Equal(t, domain.PerformanceAverage, last.PerformanceGrade)
}

func TestPerformanceService_Dashboard_Empty(t *testing.T) {
	f := setup(t, at(15, 12, 0))
	testutil.CreateTestUser(t, f.db, "idle", domain.UserTypeManager)

	dash, err := f.performanceSvc.Dashboard(context.Background(), marchRange(t, f))
	require.NoError(t, err)
	assert.Empty(t, dash.Managers)
	assert.NotNil(t, dash.Managers)
}

func TestPerformanceService_MyPerformance(t *testing.T) {
	f := setup(t, at(15, 12, 0))
	ctx := context.Background()
	manager := testutil.CreateTestUser(t, f.db, "anna", domain.UserTypeManager)
	seedGraded(t, f, manager.ID, at(5, 9, 0), domain.InquiryStatusSuccess, ptr(domain.GradeA), ptr(domain.GradeA), false)

	row, err := f.performanceSvc.MyPerformance(ctx, manager.ID, marchRange(t, f))
	require.NoError(t, err)
	assert.Equal(t, int64(1), row.TotalInquiries)
	assert.Equal(t, 75.0, row.OverallScore)
	assert.Equal(t, domain.PerformanceNotConfigured, row.PerformanceGrade)
}
