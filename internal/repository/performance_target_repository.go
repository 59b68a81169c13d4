package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"gorm.io/gorm"
)

type PerformanceTargetRepository struct {
	db *gorm.DB
}

func NewPerformanceTargetRepository(db *gorm.DB) *PerformanceTargetRepository {
	return &PerformanceTargetRepository{db: db}
}

// WithTx returns a repository bound to an open transaction
func (r *PerformanceTargetRepository) WithTx(tx *gorm.DB) *PerformanceTargetRepository {
	return &PerformanceTargetRepository{db: tx}
}

// WithTransaction runs fn inside a database transaction
func (r *PerformanceTargetRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// List returns targets ordered by min_inquiries; inactive ones only on request
func (r *PerformanceTargetRepository) List(ctx context.Context, includeInactive bool) ([]domain.PerformanceTarget, error) {
	var targets []domain.PerformanceTarget
	query := r.db.WithContext(ctx)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("min_inquiries ASC").Find(&targets).Error
	return targets, err
}

func (r *PerformanceTargetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PerformanceTarget, error) {
	var target domain.PerformanceTarget
	err := r.db.WithContext(ctx).First(&target, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *PerformanceTargetRepository) Create(ctx context.Context, target *domain.PerformanceTarget) error {
	return r.db.WithContext(ctx).Create(target).Error
}

// Update writes every column of an existing target
func (r *PerformanceTargetRepository) Update(ctx context.Context, target *domain.PerformanceTarget) error {
	result := r.db.WithContext(ctx).Model(&domain.PerformanceTarget{}).
		Where("id = ?", target.ID).
		Updates(map[string]interface{}{
			"min_inquiries":       target.MinInquiries,
			"max_inquiries":       target.MaxInquiries,
			"excellent_threshold": target.ExcellentThreshold,
			"is_active":           target.IsActive,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update performance target: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PerformanceTargetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.PerformanceTarget{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeactivateExcept marks every active target not in keep as inactive
func (r *PerformanceTargetRepository) DeactivateExcept(ctx context.Context, keep []uuid.UUID) error {
	query := r.db.WithContext(ctx).Model(&domain.PerformanceTarget{}).Where("is_active = ?", true)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Update("is_active", false).Error
}
