package jobs

import (
	"context"
	"time"

	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/logger"
	"go.uber.org/zap"
)

// KPIRecalcJobName is the scheduler name of the KPI recalculation job
const KPIRecalcJobName = "kpi_recalculation"

// KPIRecalculator recomputes stored KPI fields of every eligible inquiry
type KPIRecalculator interface {
	RecalculateAll(ctx context.Context, batchSize int) (*domain.RecalculationResultDTO, error)
}

// KPIRecalcJob periodically recalculates inquiry durations and grades so
// stored values follow changes to the business-hours rules
type KPIRecalcJob struct {
	recalculator KPIRecalculator
	logger       *zap.Logger
	timeout      time.Duration
	batchSize    int
}

func NewKPIRecalcJob(recalculator KPIRecalculator, log *zap.Logger, timeout time.Duration, batchSize int) *KPIRecalcJob {
	return &KPIRecalcJob{
		recalculator: recalculator,
		logger:       logger.WithJob(log, KPIRecalcJobName),
		timeout:      timeout,
		batchSize:    batchSize,
	}
}

// Run executes one bounded recalculation pass
func (j *KPIRecalcJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	j.run(ctx)
}

func (j *KPIRecalcJob) run(ctx context.Context) *domain.RecalculationResultDTO {
	start := time.Now()
	result, err := j.recalculator.RecalculateAll(ctx, j.batchSize)
	if result == nil {
		result = &domain.RecalculationResultDTO{}
	}

	fields := []zap.Field{
		zap.Int("processed", result.Processed),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", time.Since(start)),
	}
	switch {
	case err != nil:
		j.logger.Error("KPI recalculation aborted", append(fields, zap.Error(err))...)
	case result.Failed > 0:
		j.logger.Warn("KPI recalculation completed with failures", fields...)
	default:
		j.logger.Info("KPI recalculation completed", fields...)
	}
	return result
}
