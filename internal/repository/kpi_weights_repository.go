package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/salestrack/inquiry-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KPIWeightsRepository stores the singleton weights row under a fixed id
type KPIWeightsRepository struct {
	db *gorm.DB
}

func NewKPIWeightsRepository(db *gorm.DB) *KPIWeightsRepository {
	return &KPIWeightsRepository{db: db}
}

// Get returns the stored weights, or nil when none have been saved
func (r *KPIWeightsRepository) Get(ctx context.Context) (*domain.KPIWeights, error) {
	var weights domain.KPIWeights
	err := r.db.WithContext(ctx).First(&weights, "id = ?", domain.KPIWeightsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get KPI weights: %w", err)
	}
	return &weights, nil
}

// Upsert atomically inserts or replaces the singleton row, so readers always
// observe exactly one configuration
func (r *KPIWeightsRepository) Upsert(ctx context.Context, weights *domain.KPIWeights) error {
	weights.ID = domain.KPIWeightsID
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"response_time_weight",
			"follow_up_weight",
			"conversion_rate_weight",
			"new_customer_weight",
			"updated_by_id",
			"updated_at",
		}),
	}).Create(weights).Error
	if err != nil {
		return fmt.Errorf("failed to save KPI weights: %w", err)
	}
	return nil
}
