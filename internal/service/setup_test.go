package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/salestrack/inquiry-api/internal/kpi"
	"github.com/salestrack/inquiry-api/internal/repository"
	"github.com/salestrack/inquiry-api/internal/service"
	"github.com/salestrack/inquiry-api/internal/storage"
	"github.com/salestrack/inquiry-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var almaty = time.FixedZone("ALMT", 6*3600)

// at returns a wall-clock time in March 2024 in Almaty. March 4th is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.March, day, hour, minute, 0, 0, almaty)
}

func ptr[T any](v T) *T {
	return &v
}

// fakeDirectory is a CustomerDirectory backed by a set of names
type fakeDirectory struct {
	known map[string]bool
	err   error
}

func (f *fakeDirectory) IsExistingCustomer(_ context.Context, name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.known[name], nil
}

type fixture struct {
	db          *gorm.DB
	now         time.Time
	engine      *kpi.Engine
	inquiryRepo *repository.InquiryRepository
	userRepo    *repository.UserRepository
	targetRepo  *repository.PerformanceTargetRepository
	weightsRepo *repository.KPIWeightsRepository

	kpiSvc         *service.InquiryKPIService
	inquirySvc     *service.InquiryService
	weightsSvc     *service.KPIWeightsService
	targetSvc      *service.PerformanceTargetService
	performanceSvc *service.PerformanceService
	directory      *fakeDirectory
}

// setup wires every service on a fresh database with the clock frozen at now
func setup(t *testing.T, now time.Time) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log := zap.NewNop()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		db:          db,
		now:         now,
		inquiryRepo: repository.NewInquiryRepository(db),
		userRepo:    repository.NewUserRepository(db),
		targetRepo:  repository.NewPerformanceTargetRepository(db),
		weightsRepo: repository.NewKPIWeightsRepository(db),
		directory:   &fakeDirectory{known: map[string]bool{}},
	}
	f.engine = kpi.NewEngine(kpi.NewBusinessClock(almaty), kpi.WithNow(func() time.Time { return f.now.UTC() }))

	f.kpiSvc = service.NewInquiryKPIService(f.inquiryRepo, f.engine, log)
	f.inquirySvc = service.NewInquiryService(f.inquiryRepo, f.userRepo, f.engine, store, f.directory, 16, log)
	f.weightsSvc = service.NewKPIWeightsService(f.weightsRepo, log)
	f.targetSvc = service.NewPerformanceTargetService(f.targetRepo, log)
	f.performanceSvc = service.NewPerformanceService(f.inquiryRepo, f.userRepo, f.targetRepo, f.weightsSvc, f.engine, log)
	return f
}
