package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InquiryFilters narrows inquiry list queries
type InquiryFilters struct {
	Status         *domain.InquiryStatus
	SalesManagerID *uuid.UUID
	IsNewCustomer  *bool
	Search         string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}

var inquirySortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"client":    "client",
	"status":    "status",
	"quotedAt":  "quoted_at",
}

type InquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// WithTx returns a repository bound to an open transaction
func (r *InquiryRepository) WithTx(tx *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: tx}
}

// WithTransaction runs fn inside a database transaction
func (r *InquiryRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *InquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	err := r.db.WithContext(ctx).First(&inquiry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// GetByIDForUpdate loads an inquiry holding a row lock until the surrounding
// transaction ends. Must be called on a repository bound with WithTx.
func (r *InquiryRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inquiry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// ApplyKPIPatch writes the set fields of a patch in one statement. An empty
// patch is a no-op.
func (r *InquiryRepository) ApplyKPIPatch(ctx context.Context, id uuid.UUID, patch *domain.InquiryKPIPatch) error {
	cols := patch.Columns()
	if len(cols) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&domain.Inquiry{}).Where("id = ?", id).Updates(cols)
	if result.Error != nil {
		return fmt.Errorf("failed to apply KPI patch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateFields writes non-KPI columns of an inquiry
func (r *InquiryRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&domain.Inquiry{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *InquiryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Inquiry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns one page of inquiries and the total number of matches
func (r *InquiryRepository) List(ctx context.Context, page, pageSize int, filters *InquiryFilters, sort SortConfig) ([]domain.Inquiry, int64, error) {
	var inquiries []domain.Inquiry
	var total int64

	query := r.applyFilters(r.db.WithContext(ctx).Model(&domain.Inquiry{}), filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(BuildOrderClause(sort, inquirySortFields, "created_at"))
	err := Paginate(query, page, pageSize).Find(&inquiries).Error

	return inquiries, total, err
}

// ListForRecalculation returns up to limit inquiries eligible for scheduled
// recalculation with id greater than afterID, in id order. Eligible means
// past pending, not locked and not auto-completed.
func (r *InquiryRepository) ListForRecalculation(ctx context.Context, afterID *uuid.UUID, limit int) ([]domain.Inquiry, error) {
	var inquiries []domain.Inquiry
	query := r.db.WithContext(ctx).
		Where("status <> ? AND is_locked = ? AND auto_completion = ?", domain.InquiryStatusPending, false, false)
	if afterID != nil {
		query = query.Where("id > ?", *afterID)
	}
	err := query.Order("id ASC").Limit(limit).Find(&inquiries).Error
	return inquiries, err
}

const managerStatsSelect = `sales_manager_id AS manager_id,
	COUNT(*) AS total,
	COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
	COALESCE(SUM(CASE WHEN status = 'quoted' THEN 1 ELSE 0 END), 0) AS quoted,
	COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0) AS success,
	COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) AS failed,
	COALESCE(SUM(CASE WHEN is_new_customer THEN 1 ELSE 0 END), 0) AS new_customers,
	COALESCE(SUM(CASE WHEN quote_grade = 'A' THEN 1 ELSE 0 END), 0) AS quote_grade_a,
	COALESCE(SUM(CASE WHEN quote_grade = 'B' THEN 1 ELSE 0 END), 0) AS quote_grade_b,
	COALESCE(SUM(CASE WHEN quote_grade = 'C' THEN 1 ELSE 0 END), 0) AS quote_grade_c,
	COALESCE(SUM(CASE WHEN completion_grade = 'A' THEN 1 ELSE 0 END), 0) AS completion_grade_a,
	COALESCE(SUM(CASE WHEN completion_grade = 'B' THEN 1 ELSE 0 END), 0) AS completion_grade_b,
	COALESCE(SUM(CASE WHEN completion_grade = 'C' THEN 1 ELSE 0 END), 0) AS completion_grade_c`

const inquiryCountsSelect = `COUNT(*) AS total,
	COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
	COALESCE(SUM(CASE WHEN status = 'quoted' THEN 1 ELSE 0 END), 0) AS quoted,
	COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0) AS success,
	COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) AS failed,
	COALESCE(SUM(CASE WHEN is_new_customer THEN 1 ELSE 0 END), 0) AS new_customers`

// Counts aggregates status and new-customer counters over every inquiry
func (r *InquiryRepository) Counts(ctx context.Context) (domain.InquiryCounts, error) {
	var counts domain.InquiryCounts
	err := r.db.WithContext(ctx).Model(&domain.Inquiry{}).
		Select(inquiryCountsSelect).
		Scan(&counts).Error
	if err != nil {
		return domain.InquiryCounts{}, fmt.Errorf("failed to count inquiries: %w", err)
	}
	return counts, nil
}

// ManagerStats aggregates the inquiries of one manager created in [from, to).
// A manager without inquiries yields zero counters.
func (r *InquiryRepository) ManagerStats(ctx context.Context, managerID uuid.UUID, from, to time.Time) (domain.ManagerInquiryStats, error) {
	var rows []domain.ManagerInquiryStats
	err := r.db.WithContext(ctx).Model(&domain.Inquiry{}).
		Select(managerStatsSelect).
		Where("sales_manager_id = ? AND created_at >= ? AND created_at < ?", managerID, from, to).
		Group("sales_manager_id").
		Scan(&rows).Error
	if err != nil {
		return domain.ManagerInquiryStats{}, fmt.Errorf("failed to aggregate manager stats: %w", err)
	}
	if len(rows) == 0 {
		return domain.ManagerInquiryStats{ManagerID: managerID}, nil
	}
	return rows[0], nil
}

// StatsByManager aggregates inquiries created in [from, to) per assigned manager
func (r *InquiryRepository) StatsByManager(ctx context.Context, from, to time.Time) ([]domain.ManagerInquiryStats, error) {
	var rows []domain.ManagerInquiryStats
	err := r.db.WithContext(ctx).Model(&domain.Inquiry{}).
		Select(managerStatsSelect).
		Where("sales_manager_id IS NOT NULL AND created_at >= ? AND created_at < ?", from, to).
		Group("sales_manager_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats by manager: %w", err)
	}
	return rows, nil
}

func (r *InquiryRepository) applyFilters(query *gorm.DB, filters *InquiryFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.SalesManagerID != nil {
		query = query.Where("sales_manager_id = ?", *filters.SalesManagerID)
	}
	if filters.IsNewCustomer != nil {
		query = query.Where("is_new_customer = ?", *filters.IsNewCustomer)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("client LIKE ? OR text LIKE ?", pattern, pattern)
	}
	if filters.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filters.CreatedFrom)
	}
	if filters.CreatedTo != nil {
		query = query.Where("created_at < ?", *filters.CreatedTo)
	}
	return query
}
