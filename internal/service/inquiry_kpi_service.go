package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/kpi"
	"github.com/salestrack/inquiry-api/internal/logger"
	"github.com/salestrack/inquiry-api/internal/mapper"
	"github.com/salestrack/inquiry-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InquiryKPIService runs KPI engine operations against stored inquiries.
// Every operation loads the inquiry under a row lock, applies the engine and
// writes the resulting patch in the same transaction.
type InquiryKPIService struct {
	inquiryRepo *repository.InquiryRepository
	engine      *kpi.Engine
	logger      *zap.Logger
}

// NewInquiryKPIService creates a new InquiryKPIService
func NewInquiryKPIService(inquiryRepo *repository.InquiryRepository, engine *kpi.Engine, logger *zap.Logger) *InquiryKPIService {
	return &InquiryKPIService{
		inquiryRepo: inquiryRepo,
		engine:      engine,
		logger:      logger,
	}
}

type kpiOperation func(inq *domain.Inquiry) (*domain.InquiryKPIPatch, error)

// apply executes op on the locked inquiry and persists its patch
func (s *InquiryKPIService) apply(ctx context.Context, id uuid.UUID, op kpiOperation) (*domain.Inquiry, *domain.InquiryKPIPatch, error) {
	var inquiry *domain.Inquiry
	var patch *domain.InquiryKPIPatch

	err := s.inquiryRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		repo := s.inquiryRepo.WithTx(tx)

		inq, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInquiryNotFound
			}
			return fmt.Errorf("failed to load inquiry: %w", err)
		}

		p, err := op(inq)
		if err != nil {
			return err
		}
		if err := repo.ApplyKPIPatch(ctx, id, p); err != nil {
			return fmt.Errorf("failed to save inquiry KPI fields: %w", err)
		}

		inquiry, patch = inq, p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return inquiry, patch, nil
}

func (s *InquiryKPIService) result(ctx context.Context, inq *domain.Inquiry) (*domain.InquiryDTO, error) {
	reloaded, err := s.inquiryRepo.GetByID(ctx, inq.ID)
	if err != nil {
		s.logger.Warn("failed to reload inquiry after KPI update", zap.Error(err))
		reloaded = inq
	}
	dto := mapper.ToInquiryDTO(reloaded)
	return &dto, nil
}

// Quote moves a pending inquiry to quoted. A nil at means now.
func (s *InquiryKPIService) Quote(ctx context.Context, id uuid.UUID, at *time.Time) (*domain.InquiryDTO, error) {
	inq, _, err := s.apply(ctx, id, func(inq *domain.Inquiry) (*domain.InquiryKPIPatch, error) {
		return s.engine.Quote(inq, at)
	})
	if err != nil {
		return nil, err
	}

	logger.WithInquiry(s.logger, id.String()).Info("inquiry quoted",
		zap.Durationp("quote_time", inq.QuoteTime),
		zap.String("quote_grade", gradeString(inq.QuoteGrade)),
	)
	return s.result(ctx, inq)
}

// MarkSuccess resolves a quoted inquiry as won
func (s *InquiryKPIService) MarkSuccess(ctx context.Context, id uuid.UUID, at *time.Time) (*domain.InquiryDTO, error) {
	return s.resolve(ctx, id, domain.InquiryStatusSuccess, at)
}

// MarkFailed resolves a quoted inquiry as lost
func (s *InquiryKPIService) MarkFailed(ctx context.Context, id uuid.UUID, at *time.Time) (*domain.InquiryDTO, error) {
	return s.resolve(ctx, id, domain.InquiryStatusFailed, at)
}

func (s *InquiryKPIService) resolve(ctx context.Context, id uuid.UUID, status domain.InquiryStatus, at *time.Time) (*domain.InquiryDTO, error) {
	inq, _, err := s.apply(ctx, id, func(inq *domain.Inquiry) (*domain.InquiryKPIPatch, error) {
		if status == domain.InquiryStatusSuccess {
			return s.engine.MarkSuccess(inq, at)
		}
		return s.engine.MarkFailed(inq, at)
	})
	if err != nil {
		return nil, err
	}

	logger.WithInquiry(s.logger, id.String()).Info("inquiry resolved",
		zap.String("status", string(status)),
		zap.Durationp("resolution_time", inq.ResolutionTime),
		zap.String("completion_grade", gradeString(inq.CompletionGrade)),
	)
	return s.result(ctx, inq)
}

// Recalculate recomputes durations and grades from the stored timestamps
func (s *InquiryKPIService) Recalculate(ctx context.Context, id uuid.UUID, force bool) (*domain.InquiryDTO, error) {
	inq, patch, err := s.apply(ctx, id, func(inq *domain.Inquiry) (*domain.InquiryKPIPatch, error) {
		return s.engine.Recalculate(inq, force)
	})
	if err != nil {
		return nil, err
	}

	logger.WithInquiry(s.logger, id.String()).Info("inquiry KPI recalculated",
		zap.Bool("force", force),
		zap.Bool("changed", !patch.IsEmpty()),
	)
	return s.result(ctx, inq)
}

// SetLocked locks or unlocks the KPI fields of an inquiry
func (s *InquiryKPIService) SetLocked(ctx context.Context, id uuid.UUID, locked bool) (*domain.InquiryDTO, error) {
	inq, patch, err := s.apply(ctx, id, func(inq *domain.Inquiry) (*domain.InquiryKPIPatch, error) {
		if locked {
			return s.engine.Lock(inq), nil
		}
		return s.engine.Unlock(inq), nil
	})
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		logger.WithInquiry(s.logger, id.String()).Info("inquiry KPI lock changed", zap.Bool("locked", locked))
	}
	return s.result(ctx, inq)
}

// SetAutoCompletion toggles KPI computation for an inquiry
func (s *InquiryKPIService) SetAutoCompletion(ctx context.Context, id uuid.UUID, enabled bool) (*domain.InquiryDTO, error) {
	inq, patch, err := s.apply(ctx, id, func(inq *domain.Inquiry) (*domain.InquiryKPIPatch, error) {
		return s.engine.SetAutoCompletion(inq, enabled), nil
	})
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		logger.WithInquiry(s.logger, id.String()).Info("inquiry auto-completion changed", zap.Bool("enabled", enabled))
	}
	return s.result(ctx, inq)
}

// RecalculateAll walks every eligible inquiry in id order and recalculates
// it in its own transaction. Individual failures are counted and logged;
// only context cancellation or a listing failure aborts the run.
func (s *InquiryKPIService) RecalculateAll(ctx context.Context, batchSize int) (*domain.RecalculationResultDTO, error) {
	if batchSize <= 0 {
		batchSize = 200
	}
	result := &domain.RecalculationResultDTO{}
	var afterID *uuid.UUID

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		batch, err := s.inquiryRepo.ListForRecalculation(ctx, afterID, batchSize)
		if err != nil {
			return result, fmt.Errorf("failed to list inquiries for recalculation: %w", err)
		}
		if len(batch) == 0 {
			return result, nil
		}

		for i := range batch {
			id := batch[i].ID
			result.Processed++

			_, patch, err := s.apply(ctx, id, func(inq *domain.Inquiry) (*domain.InquiryKPIPatch, error) {
				return s.engine.Recalculate(inq, false)
			})
			switch {
			case err == nil:
				if !patch.IsEmpty() {
					result.Updated++
				}
			case errors.Is(err, kpi.ErrLockedRecord), errors.Is(err, kpi.ErrInvalidTransition), errors.Is(err, ErrInquiryNotFound):
				// state changed between listing and locking; skip
			default:
				if ctx.Err() != nil {
					return result, ctx.Err()
				}
				result.Failed++
				s.logger.Error("failed to recalculate inquiry", zap.String("inquiry_id", id.String()), zap.Error(err))
			}
		}

		last := batch[len(batch)-1].ID
		afterID = &last
	}
}

func gradeString(g *domain.Grade) string {
	if g == nil {
		return ""
	}
	return string(*g)
}
