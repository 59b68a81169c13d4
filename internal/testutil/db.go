// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/database"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB returns a migrated in-memory sqlite database private to the test.
// The pool is limited to one connection so every query sees the same database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// TestPassword is the plain password of users created by CreateTestUser
const TestPassword = "correct-horse-battery"

// CreateTestUser inserts an active user of the given type
func CreateTestUser(t *testing.T, db *gorm.DB, username string, userType domain.UserType) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     username,
		PasswordHash: string(hash),
		UserType:     userType,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestInquiry inserts a pending inquiry owned by managerID created at createdAt
func CreateTestInquiry(t *testing.T, db *gorm.DB, managerID *uuid.UUID, createdAt time.Time) *domain.Inquiry {
	t.Helper()

	inq := &domain.Inquiry{
		Client:         "ACME " + uuid.NewString()[:8],
		Text:           "Need a quote",
		SalesManagerID: managerID,
		Status:         domain.InquiryStatusPending,
		CreatedAt:      createdAt.UTC(),
	}
	require.NoError(t, db.Create(inq).Error)
	return inq
}
