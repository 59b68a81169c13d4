package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/kpi"
	"github.com/salestrack/inquiry-api/internal/mapper"
	"github.com/salestrack/inquiry-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PerformanceTargetService manages inquiry-volume brackets. Active brackets
// never overlap.
type PerformanceTargetService struct {
	targetRepo *repository.PerformanceTargetRepository
	logger     *zap.Logger
}

func NewPerformanceTargetService(targetRepo *repository.PerformanceTargetRepository, logger *zap.Logger) *PerformanceTargetService {
	return &PerformanceTargetService{
		targetRepo: targetRepo,
		logger:     logger,
	}
}

// List returns targets ordered by min inquiries
func (s *PerformanceTargetService) List(ctx context.Context, includeInactive bool) ([]domain.PerformanceTargetDTO, error) {
	targets, err := s.targetRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list performance targets: %w", err)
	}
	return mapper.ToPerformanceTargetDTOs(targets), nil
}

func targetFromRequest(req *domain.PerformanceTargetRequest) *domain.PerformanceTarget {
	t := &domain.PerformanceTarget{
		MaxInquiries: req.MaxInquiries,
		IsActive:     true,
	}
	if req.MinInquiries != nil {
		t.MinInquiries = *req.MinInquiries
	}
	if req.ExcellentThreshold != nil {
		t.ExcellentThreshold = *req.ExcellentThreshold
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if req.ID != nil {
		t.ID = *req.ID
	}
	return t
}

// checkOverlap validates target against the other active targets visible to repo
func (s *PerformanceTargetService) checkOverlap(ctx context.Context, repo *repository.PerformanceTargetRepository, target *domain.PerformanceTarget) error {
	b := kpi.BracketFromTarget(*target)
	if !target.IsActive {
		return b.Validate()
	}

	active, err := repo.List(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to load active targets: %w", err)
	}
	others := make([]kpi.Bracket, 0, len(active))
	for _, t := range active {
		if t.ID != target.ID {
			others = append(others, kpi.BracketFromTarget(t))
		}
	}
	return kpi.ValidateAgainst(b, others)
}

// Create adds a target after checking it against the active set
func (s *PerformanceTargetService) Create(ctx context.Context, req *domain.PerformanceTargetRequest) (*domain.PerformanceTargetDTO, error) {
	target := targetFromRequest(req)
	target.ID = uuid.Nil

	err := s.targetRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.targetRepo.WithTx(tx)
		if err := s.checkOverlap(ctx, repo, target); err != nil {
			return err
		}
		return repo.Create(ctx, target)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("performance target created",
		zap.String("target_id", target.ID.String()),
		zap.String("range", target.VolumeDisplay()),
		zap.Float64("threshold", target.ExcellentThreshold),
	)
	dto := mapper.ToPerformanceTargetDTO(target)
	return &dto, nil
}

// Update replaces every field of an existing target
func (s *PerformanceTargetService) Update(ctx context.Context, id uuid.UUID, req *domain.PerformanceTargetRequest) (*domain.PerformanceTargetDTO, error) {
	target := targetFromRequest(req)
	target.ID = id

	err := s.targetRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.targetRepo.WithTx(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTargetNotFound
			}
			return err
		}
		if err := s.checkOverlap(ctx, repo, target); err != nil {
			return err
		}
		return repo.Update(ctx, target)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.targetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload performance target: %w", err)
	}
	s.logger.Info("performance target updated", zap.String("target_id", id.String()))
	dto := mapper.ToPerformanceTargetDTO(updated)
	return &dto, nil
}

// BulkReplace makes the given list the complete target set: listed targets
// with an id are updated, the rest created, and every other active target is
// deactivated. The whole batch is validated before anything is written.
func (s *PerformanceTargetService) BulkReplace(ctx context.Context, req *domain.BulkPerformanceTargetsRequest) ([]domain.PerformanceTargetDTO, error) {
	targets := make([]*domain.PerformanceTarget, len(req.Targets))
	brackets := make([]kpi.Bracket, len(req.Targets))
	active := make([]bool, len(req.Targets))
	for i := range req.Targets {
		targets[i] = targetFromRequest(&req.Targets[i])
		brackets[i] = kpi.BracketFromTarget(*targets[i])
		active[i] = targets[i].IsActive
	}
	if err := kpi.ValidateBatch(brackets, active); err != nil {
		return nil, err
	}

	err := s.targetRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.targetRepo.WithTx(tx)
		keep := make([]uuid.UUID, 0, len(targets))

		for i, t := range targets {
			if t.ID == uuid.Nil {
				if err := repo.Create(ctx, t); err != nil {
					return fmt.Errorf("failed to create target %d: %w", i+1, err)
				}
			} else if err := repo.Update(ctx, t); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("target %d: %w", i+1, ErrTargetNotFound)
				}
				return fmt.Errorf("failed to update target %d: %w", i+1, err)
			}
			keep = append(keep, t.ID)
		}
		return repo.DeactivateExcept(ctx, keep)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("performance targets replaced", zap.Int("count", len(targets)))
	return s.List(ctx, false)
}

func (s *PerformanceTargetService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.targetRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTargetNotFound
		}
		return fmt.Errorf("failed to delete performance target: %w", err)
	}
	s.logger.Info("performance target deleted", zap.String("target_id", id.String()))
	return nil
}
