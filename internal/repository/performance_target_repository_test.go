package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/repository"
	"github.com/salestrack/inquiry-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func intPtr(v int) *int {
	return &v
}

func TestPerformanceTargetRepository_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPerformanceTargetRepository(db)
	ctx := context.Background()

	high := &domain.PerformanceTarget{MinInquiries: 51, ExcellentThreshold: 70, IsActive: true}
	low := &domain.PerformanceTarget{MinInquiries: 0, MaxInquiries: intPtr(50), ExcellentThreshold: 85, IsActive: true}
	old := &domain.PerformanceTarget{MinInquiries: 0, ExcellentThreshold: 10, IsActive: false}
	for _, tgt := range []*domain.PerformanceTarget{high, low, old} {
		require.NoError(t, repo.Create(ctx, tgt))
	}

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, low.ID, active[0].ID)
	assert.Equal(t, high.ID, active[1].ID)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	low.ExcellentThreshold = 90
	low.MaxInquiries = nil
	require.NoError(t, repo.Update(ctx, low))
	got, err := repo.GetByID(ctx, low.ID)
	require.NoError(t, err)
	assert.Equal(t, 90.0, got.ExcellentThreshold)
	assert.Nil(t, got.MaxInquiries)

	require.NoError(t, repo.DeactivateExcept(ctx, []uuid.UUID{high.ID}))
	active, err = repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, high.ID, active[0].ID)

	require.NoError(t, repo.Delete(ctx, old.ID))
	_, err = repo.GetByID(ctx, old.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
