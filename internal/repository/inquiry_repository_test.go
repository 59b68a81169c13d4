package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/repository"
	"github.com/salestrack/inquiry-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func gradePtr(g domain.Grade) *domain.Grade {
	return &g
}

func TestInquiryRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewInquiryRepository(db)
	ctx := context.Background()

	manager := testutil.CreateTestUser(t, db, "anna", domain.UserTypeManager)
	created := testutil.CreateTestInquiry(t, db, &manager.ID, time.Date(2024, 3, 4, 3, 0, 0, 0, time.UTC))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Client, got.Client)
	assert.Equal(t, domain.InquiryStatusPending, got.Status)
	require.NotNil(t, got.SalesManagerID)
	assert.Equal(t, manager.ID, *got.SalesManagerID)
	assert.Nil(t, got.QuoteGrade)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInquiryRepository_ApplyKPIPatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewInquiryRepository(db)
	ctx := context.Background()

	inq := testutil.CreateTestInquiry(t, db, nil, time.Date(2024, 3, 4, 3, 0, 0, 0, time.UTC))

	quotedAt := time.Date(2024, 3, 5, 4, 0, 0, 0, time.UTC)
	qt := 26 * time.Hour
	patch := &domain.InquiryKPIPatch{
		Status:     domain.NewPatchField(domain.InquiryStatusQuoted),
		QuotedAt:   domain.NewPatchField(&quotedAt),
		QuoteTime:  domain.NewPatchField(&qt),
		QuoteGrade: domain.NewPatchField(gradePtr(domain.GradeA)),
	}

	err := repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		if _, err := txRepo.GetByIDForUpdate(ctx, inq.ID); err != nil {
			return err
		}
		return txRepo.ApplyKPIPatch(ctx, inq.ID, patch)
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryStatusQuoted, got.Status)
	require.NotNil(t, got.QuotedAt)
	assert.True(t, got.QuotedAt.Equal(quotedAt))
	require.NotNil(t, got.QuoteTime)
	assert.Equal(t, qt, *got.QuoteTime)
	assert.Equal(t, gradePtr(domain.GradeA), got.QuoteGrade)

	// clearing a column
	clearGrade := &domain.InquiryKPIPatch{QuoteGrade: domain.NewPatchField[*domain.Grade](nil)}
	require.NoError(t, repo.ApplyKPIPatch(ctx, inq.ID, clearGrade))
	got, err = repo.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Nil(t, got.QuoteGrade)
	assert.NotNil(t, got.QuoteTime)

	assert.NoError(t, repo.ApplyKPIPatch(ctx, inq.ID, &domain.InquiryKPIPatch{}))
	assert.ErrorIs(t, repo.ApplyKPIPatch(ctx, uuid.New(), clearGrade), gorm.ErrRecordNotFound)
}

func TestInquiryRepository_ListAndFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewInquiryRepository(db)
	ctx := context.Background()

	m1 := testutil.CreateTestUser(t, db, "m1", domain.UserTypeManager)
	m2 := testutil.CreateTestUser(t, db, "m2", domain.UserTypeManager)
	base := time.Date(2024, 3, 4, 3, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		testutil.CreateTestInquiry(t, db, &m1.ID, base.Add(time.Duration(i)*time.Hour))
	}
	testutil.CreateTestInquiry(t, db, &m2.ID, base)

	all, total, err := repo.List(ctx, 1, 10, nil, repository.DefaultSortConfig())
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, all, 4)

	page, total, err := repo.List(ctx, 1, 2, &repository.InquiryFilters{SalesManagerID: &m1.ID}, repository.SortConfig{Field: "createdAt", Order: repository.SortOrderAsc})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.True(t, page[0].CreatedAt.Before(page[1].CreatedAt))

	pending := domain.InquiryStatusQuoted
	_, total, err = repo.List(ctx, 1, 10, &repository.InquiryFilters{Status: &pending}, repository.DefaultSortConfig())
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestInquiryRepository_ManagerStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewInquiryRepository(db)
	ctx := context.Background()

	manager := testutil.CreateTestUser(t, db, "stats", domain.UserTypeManager)
	other := testutil.CreateTestUser(t, db, "other", domain.UserTypeManager)
	created := time.Date(2024, 3, 5, 3, 0, 0, 0, time.UTC)

	mk := func(managerID uuid.UUID, status domain.InquiryStatus, quote, completion *domain.Grade, isNew bool) {
		inq := &domain.Inquiry{
			Client:          "client",
			Text:            "text",
			SalesManagerID:  &managerID,
			Status:          status,
			QuoteGrade:      quote,
			CompletionGrade: completion,
			IsNewCustomer:   isNew,
			CreatedAt:       created,
		}
		require.NoError(t, db.Create(inq).Error)
	}

	mk(manager.ID, domain.InquiryStatusPending, nil, nil, false)
	mk(manager.ID, domain.InquiryStatusQuoted, gradePtr(domain.GradeA), nil, true)
	mk(manager.ID, domain.InquiryStatusSuccess, gradePtr(domain.GradeB), gradePtr(domain.GradeA), true)
	mk(manager.ID, domain.InquiryStatusFailed, gradePtr(domain.GradeC), gradePtr(domain.GradeC), false)
	mk(other.ID, domain.InquiryStatusSuccess, gradePtr(domain.GradeA), gradePtr(domain.GradeA), false)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	stats, err := repo.ManagerStats(ctx, manager.ID, from, to)
	require.NoError(t, err)
	assert.Equal(t, manager.ID, stats.ManagerID)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Quoted)
	assert.Equal(t, int64(1), stats.Success)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(2), stats.NewCustomers)
	assert.Equal(t, int64(4), stats.QuotePoints())
	assert.Equal(t, int64(2), stats.CompletionPoints())
	assert.Equal(t, int64(3), stats.Processed())

	empty, err := repo.ManagerStats(ctx, manager.ID, to, to.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Total)
	assert.Equal(t, manager.ID, empty.ManagerID)

	all, err := repo.StatsByManager(ctx, from, to)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInquiryRepository_Counts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewInquiryRepository(db)
	ctx := context.Background()

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryCounts{}, counts)

	manager := testutil.CreateTestUser(t, db, "counts", domain.UserTypeManager)
	for _, status := range []domain.InquiryStatus{
		domain.InquiryStatusPending,
		domain.InquiryStatusQuoted,
		domain.InquiryStatusSuccess,
		domain.InquiryStatusSuccess,
		domain.InquiryStatusFailed,
	} {
		inq := &domain.Inquiry{
			Client:         "client",
			Text:           "text",
			SalesManagerID: &manager.ID,
			Status:         status,
			IsNewCustomer:  status == domain.InquiryStatusSuccess,
			CreatedAt:      time.Date(2024, 3, 5, 3, 0, 0, 0, time.UTC),
		}
		require.NoError(t, db.Create(inq).Error)
	}
	// unassigned inquiries count too
	testutil.CreateTestInquiry(t, db, nil, time.Date(2023, 1, 2, 3, 0, 0, 0, time.UTC))

	counts, err = repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryCounts{
		Total:        6,
		Pending:      2,
		Quoted:       1,
		Success:      2,
		Failed:       1,
		NewCustomers: 2,
	}, counts)
}

func TestInquiryRepository_ListForRecalculation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewInquiryRepository(db)
	ctx := context.Background()
	created := time.Date(2024, 3, 4, 3, 0, 0, 0, time.UTC)

	for _, inq := range []*domain.Inquiry{
		{Client: "a", Status: domain.InquiryStatusPending, CreatedAt: created},
		{Client: "b", Status: domain.InquiryStatusQuoted, CreatedAt: created},
		{Client: "c", Status: domain.InquiryStatusSuccess, CreatedAt: created},
		{Client: "d", Status: domain.InquiryStatusSuccess, IsLocked: true, CreatedAt: created},
		{Client: "e", Status: domain.InquiryStatusFailed, AutoCompletion: true, CreatedAt: created},
	} {
		require.NoError(t, db.Create(inq).Error)
	}

	first, err := repo.ListForRecalculation(ctx, nil, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)

	rest, err := repo.ListForRecalculation(ctx, &first[0].ID, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)

	clients := []string{first[0].Client, rest[0].Client}
	assert.ElementsMatch(t, []string{"b", "c"}, clients)
}

func TestInquiryRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewInquiryRepository(db)
	ctx := context.Background()

	inq := testutil.CreateTestInquiry(t, db, nil, time.Now())
	require.NoError(t, repo.Delete(ctx, inq.ID))
	assert.ErrorIs(t, repo.Delete(ctx, inq.ID), gorm.ErrRecordNotFound)
}
