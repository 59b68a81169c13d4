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
)

func TestUserRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	admin := testutil.CreateTestUser(t, db, "admin", domain.UserTypeAdmin)
	manager := testutil.CreateTestUser(t, db, "manager", domain.UserTypeManager)
	testutil.CreateTestUser(t, db, "customer", domain.UserTypeCustomer)

	got, err := repo.GetByUsername(ctx, "manager")
	require.NoError(t, err)
	assert.Equal(t, manager.ID, got.ID)

	byID, err := repo.ListByIDs(ctx, []uuid.UUID{admin.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, byID, 1)
	assert.Equal(t, "admin", byID[admin.ID].Username)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, manager.ID, now))
	got, err = repo.GetByID(ctx, manager.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, got.LastLoginAt.Equal(now))
}
