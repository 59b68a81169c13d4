package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/kpi"
	"github.com/salestrack/inquiry-api/internal/service"
	"github.com/salestrack/inquiry-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInquiryKPIService_QuoteThenSuccess(t *testing.T) {
	f := setup(t, at(5, 10, 0))
	ctx := context.Background()
	inq := testutil.CreateTestInquiry(t, f.db, nil, at(4, 8, 0))

	quoted, err := f.kpiSvc.Quote(ctx, inq.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryStatusQuoted, quoted.Status)
	require.NotNil(t, quoted.QuoteTimeHours)
	assert.Equal(t, 26.0, *quoted.QuoteTimeHours)
	assert.Equal(t, ptr(domain.GradeA), quoted.QuoteGrade)

	resolvedAt := at(11, 8, 0)
	won, err := f.kpiSvc.MarkSuccess(ctx, inq.ID, &resolvedAt)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryStatusSuccess, won.Status)
	require.NotNil(t, won.ResolutionTimeHours)
	assert.Equal(t, 94.0, *won.ResolutionTimeHours)
	assert.Equal(t, ptr(domain.GradeA), won.CompletionGrade)

	stored, err := f.inquiryRepo.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SuccessAt)
	assert.True(t, stored.SuccessAt.Equal(resolvedAt))
	assert.Nil(t, stored.FailedAt)
}

func TestInquiryKPIService_Rejections(t *testing.T) {
	f := setup(t, at(5, 10, 0))
	ctx := context.Background()
	inq := testutil.CreateTestInquiry(t, f.db, nil, at(4, 8, 0))

	_, err := f.kpiSvc.MarkFailed(ctx, inq.ID, nil)
	assert.ErrorIs(t, err, kpi.ErrInvalidTransition)

	_, err = f.kpiSvc.Quote(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, service.ErrInquiryNotFound)

	_, err = f.kpiSvc.Quote(ctx, inq.ID, nil)
	require.NoError(t, err)
	_, err = f.kpiSvc.Quote(ctx, inq.ID, nil)
	assert.ErrorIs(t, err, kpi.ErrInvalidTransition)

	// rejected operations leave the record untouched
	stored, err := f.inquiryRepo.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryStatusQuoted, stored.Status)
}

func TestInquiryKPIService_LockedRecord(t *testing.T) {
	f := setup(t, at(5, 10, 0))
	ctx := context.Background()
	inq := testutil.CreateTestInquiry(t, f.db, nil, at(4, 8, 0))

	_, err := f.kpiSvc.Quote(ctx, inq.ID, nil)
	require.NoError(t, err)

	locked, err := f.kpiSvc.SetLocked(ctx, inq.ID, true)
	require.NoError(t, err)
	assert.True(t, locked.IsLocked)

	_, err = f.kpiSvc.MarkSuccess(ctx, inq.ID, nil)
	assert.ErrorIs(t, err, kpi.ErrLockedRecord)

	_, err = f.kpiSvc.Recalculate(ctx, inq.ID, false)
	assert.ErrorIs(t, err, kpi.ErrLockedRecord)

	// wipe the grade behind the engine's back, then force a recalculation
	require.NoError(t, f.inquiryRepo.ApplyKPIPatch(ctx, inq.ID, &domain.InquiryKPIPatch{
		QuoteGrade: domain.NewPatchField[*domain.Grade](nil),
	}))
	forced, err := f.kpiSvc.Recalculate(ctx, inq.ID, true)
	require.NoError(t, err)
	assert.Equal(t, ptr(domain.GradeA), forced.QuoteGrade)

	unlocked, err := f.kpiSvc.SetLocked(ctx, inq.ID, false)
	require.NoError(t, err)
	assert.False(t, unlocked.IsLocked)
}

func TestInquiryKPIService_AutoCompletion(t *testing.T) {
	f := setup(t, at(5, 10, 0))
	ctx := context.Background()
	inq := testutil.CreateTestInquiry(t, f.db, nil, at(4, 8, 0))

	dto, err := f.kpiSvc.SetAutoCompletion(ctx, inq.ID, true)
	require.NoError(t, err)
	assert.True(t, dto.AutoCompletion)

	quoted, err := f.kpiSvc.Quote(ctx, inq.ID, nil)
	require.NoError(t, err)
	assert.NotNil(t, quoted.QuotedAt)
	assert.Nil(t, quoted.QuoteGrade)

	_, err = f.kpiSvc.Recalculate(ctx, inq.ID, false)
	assert.ErrorIs(t, err, kpi.ErrInvalidTransition)
	assert.ErrorIs(t, err, kpi.ErrAutoCompletion)

	forced, err := f.kpiSvc.Recalculate(ctx, inq.ID, true)
	require.NoError(t, err)
	assert.Equal(t, ptr(domain.GradeA), forced.QuoteGrade)
}

func TestInquiryKPIService_RecalculateAll(t *testing.T) {
	f := setup(t, at(5, 10, 0))
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		inq := testutil.CreateTestInquiry(t, f.db, nil, at(4, 8, 0))
		_, err := f.kpiSvc.Quote(ctx, inq.ID, nil)
		require.NoError(t, err)
		ids = append(ids, inq.ID)
	}
	testutil.CreateTestInquiry(t, f.db, nil, at(4, 8, 0)) // pending, not eligible

	// corrupt two stored grades
	for _, id := range ids[:2] {
		require.NoError(t, f.inquiryRepo.ApplyKPIPatch(ctx, id, &domain.InquiryKPIPatch{
			QuoteGrade: domain.NewPatchField(ptr(domain.GradeC)),
		}))
	}

	result, err := f.kpiSvc.RecalculateAll(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Processed)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 0, result.Failed)

	again, err := f.kpiSvc.RecalculateAll(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Updated)
}

func TestInquiryKPIService_RecalculateAllHonoursCancellation(t *testing.T) {
	f := setup(t, at(5, 10, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.kpiSvc.RecalculateAll(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInquiryKPIService_ExplicitTimestampIsUsed(t *testing.T) {
	f := setup(t, at(20, 10, 0))
	ctx := context.Background()
	inq := testutil.CreateTestInquiry(t, f.db, nil, at(4, 8, 0))

	quotedAt := at(4, 9, 30)
	dto, err := f.kpiSvc.Quote(ctx, inq.ID, &quotedAt)
	require.NoError(t, err)
	require.NotNil(t, dto.QuoteTimeHours)
	assert.Equal(t, 1.5, *dto.QuoteTimeHours)
	assert.Equal(t, "2024-03-04T03:30:00Z", *dto.QuotedAt)
}
