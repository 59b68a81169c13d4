package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/kpi"
	"github.com/salestrack/inquiry-api/internal/mapper"
	"github.com/salestrack/inquiry-api/internal/repository"
	"go.uber.org/zap"
)

// KPIWeightsService manages the single active weights configuration
type KPIWeightsService struct {
	weightsRepo *repository.KPIWeightsRepository
	logger      *zap.Logger
}

func NewKPIWeightsService(weightsRepo *repository.KPIWeightsRepository, logger *zap.Logger) *KPIWeightsService {
	return &KPIWeightsService{
		weightsRepo: weightsRepo,
		logger:      logger,
	}
}

// Current returns the stored weights, or the equal 25/25/25/25 defaults when
// nothing has been configured
func (s *KPIWeightsService) Current(ctx context.Context) (kpi.Weights, *domain.KPIWeights, error) {
	stored, err := s.weightsRepo.Get(ctx)
	if err != nil {
		return kpi.Weights{}, nil, err
	}
	if stored == nil {
		return kpi.WeightsFromModel(domain.DefaultKPIWeights()), nil, nil
	}
	return kpi.WeightsFromModel(*stored), stored, nil
}

// GetCurrentWeights returns the active configuration as a DTO
func (s *KPIWeightsService) GetCurrentWeights(ctx context.Context) (*domain.KPIWeightsDTO, error) {
	_, stored, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToKPIWeightsDTO(stored)
	return &dto, nil
}

// CreateWeightsConfiguration validates and replaces the active configuration
func (s *KPIWeightsService) CreateWeightsConfiguration(ctx context.Context, req *domain.KPIWeightsRequest, updatedBy *uuid.UUID) (*domain.KPIWeightsDTO, error) {
	model := &domain.KPIWeights{
		ResponseTime:   req.ResponseTimeWeight,
		FollowUp:       req.FollowUpWeight,
		ConversionRate: req.ConversionRateWeight,
		NewCustomer:    req.NewCustomerWeight,
		UpdatedByID:    updatedBy,
	}
	if err := kpi.WeightsFromModel(*model).Validate(); err != nil {
		return nil, err
	}

	if err := s.weightsRepo.Upsert(ctx, model); err != nil {
		return nil, fmt.Errorf("failed to save KPI weights: %w", err)
	}

	s.logger.Info("KPI weights updated",
		zap.Float64("response_time", model.ResponseTime),
		zap.Float64("follow_up", model.FollowUp),
		zap.Float64("conversion_rate", model.ConversionRate),
		zap.Float64("new_customer", model.NewCustomer),
	)
	return s.GetCurrentWeights(ctx)
}
