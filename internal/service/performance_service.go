package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/kpi"
	"github.com/salestrack/inquiry-api/internal/mapper"
	"github.com/salestrack/inquiry-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PerformanceService computes manager KPI statistics, weighted scores and
// performance grades over calendar-day ranges in the reference timezone
type PerformanceService struct {
	inquiryRepo    *repository.InquiryRepository
	userRepo       *repository.UserRepository
	targetRepo     *repository.PerformanceTargetRepository
	weightsService *KPIWeightsService
	clock          *kpi.BusinessClock
	now            func() time.Time
	logger         *zap.Logger
}

func NewPerformanceService(
	inquiryRepo *repository.InquiryRepository,
	userRepo *repository.UserRepository,
	targetRepo *repository.PerformanceTargetRepository,
	weightsService *KPIWeightsService,
	engine *kpi.Engine,
	logger *zap.Logger,
) *PerformanceService {
	return &PerformanceService{
		inquiryRepo:    inquiryRepo,
		userRepo:       userRepo,
		targetRepo:     targetRepo,
		weightsService: weightsService,
		clock:          engine.Clock(),
		now:            engine.Now,
		logger:         logger,
	}
}

// ResolveDateRange fills a missing bound from the current calendar month and
// normalizes both to midnight in the reference timezone
func (s *PerformanceService) ResolveDateRange(from, to *time.Time) (domain.DateRange, error) {
	loc := s.clock.Location()
	now := s.now().In(loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	rng := domain.DateRange{
		From: monthStart,
		To:   monthStart.AddDate(0, 1, -1),
	}
	if from != nil {
		f := from.In(loc)
		rng.From = time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, loc)
	}
	if to != nil {
		t := to.In(loc)
		rng.To = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
	if rng.To.Before(rng.From) {
		return domain.DateRange{}, kpi.ValidationError("date_from %s is after date_to %s",
			mapper.FormatDate(rng.From), mapper.FormatDate(rng.To))
	}
	return rng, nil
}

// bounds converts an inclusive day range to the half-open UTC interval
// [from 00:00, to+1 00:00) used by the store
func bounds(rng domain.DateRange) (time.Time, time.Time) {
	return rng.From.UTC(), rng.To.AddDate(0, 0, 1).UTC()
}

func (s *PerformanceService) getManager(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}
	return user, nil
}

// GetPerformanceGrade scores a manager with the current weights and grades
// the score against the bracket matching their inquiry volume
func (s *PerformanceService) GetPerformanceGrade(ctx context.Context, managerID uuid.UUID, rng domain.DateRange) (*domain.PerformanceGradeDTO, error) {
	if _, err := s.getManager(ctx, managerID); err != nil {
		return nil, err
	}

	from, to := bounds(rng)
	stats, err := s.inquiryRepo.ManagerStats(ctx, managerID, from, to)
	if err != nil {
		return nil, err
	}

	weights, _, err := s.weightsService.Current(ctx)
	if err != nil {
		return nil, err
	}
	performance := kpi.Score(kpi.MetricsFromStats(stats), weights)

	targets, err := s.targetRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load performance targets: %w", err)
	}

	result := &domain.PerformanceGradeDTO{
		ManagerID:    managerID,
		Grade:        domain.PerformanceNotConfigured,
		Performance:  performance,
		InquiryCount: stats.Total,
		DateFrom:     mapper.FormatDate(rng.From),
		DateTo:       mapper.FormatDate(rng.To),
	}

	if match := kpi.MatchTarget(stats.Total, targets); match != nil {
		bracket := mapper.ToPerformanceTargetDTO(match)
		threshold := match.ExcellentThreshold
		result.Grade = kpi.GradePerformance(kpi.BracketFromTarget(*match), performance)
		result.Bracket = &bracket
		result.Threshold = &threshold
	}

	s.logger.Debug("performance graded",
		zap.String("manager_id", managerID.String()),
		zap.String("grade", string(result.Grade)),
		zap.Float64("performance", performance),
		zap.Int64("inquiries", stats.Total),
	)
	return result, nil
}

// GetManagerKPIStatistics returns the detailed counters and rates of one manager
func (s *PerformanceService) GetManagerKPIStatistics(ctx context.Context, managerID uuid.UUID, rng domain.DateRange) (*domain.ManagerKPIStatisticsDTO, error) {
	if _, err := s.getManager(ctx, managerID); err != nil {
		return nil, err
	}

	from, to := bounds(rng)
	stats, err := s.inquiryRepo.ManagerStats(ctx, managerID, from, to)
	if err != nil {
		return nil, err
	}

	quoted := float64(stats.QuoteGradeA + stats.QuoteGradeB + stats.QuoteGradeC)
	completed := float64(stats.CompletionGradeA + stats.CompletionGradeB + stats.CompletionGradeC)

	processed := float64(stats.Processed())
	totalPoints := stats.QuotePoints() + stats.CompletionPoints()

	return &domain.ManagerKPIStatisticsDTO{
		ManagerID:                managerID,
		Counts:                   stats,
		Processed:                stats.Processed(),
		Completed:                stats.Completed(),
		QuotePoints:              stats.QuotePoints(),
		CompletionPoints:         stats.CompletionPoints(),
		TotalKPIPoints:           totalPoints,
		AvgQuotePoints:           kpi.Round(ratio(float64(stats.QuotePoints()), processed), 2),
		AvgCompletionPoints:      kpi.Round(ratio(float64(stats.CompletionPoints()), float64(stats.Completed())), 2),
		AvgTotalPoints:           kpi.Round(ratio(float64(totalPoints), float64(stats.Completed())), 2),
		ConversionRate:           kpi.Round(kpi.Percentage(float64(stats.Success), float64(stats.Total)), 2),
		ProcessingConversionRate: kpi.Round(kpi.Percentage(float64(stats.Success), processed), 2),
		NewCustomerRate:          kpi.Round(kpi.Percentage(float64(stats.NewCustomers), float64(stats.Total)), 2),
		QuoteGradeDistribution: map[domain.Grade]float64{
			domain.GradeA: kpi.Round(kpi.Percentage(float64(stats.QuoteGradeA), quoted), 2),
			domain.GradeB: kpi.Round(kpi.Percentage(float64(stats.QuoteGradeB), quoted), 2),
			domain.GradeC: kpi.Round(kpi.Percentage(float64(stats.QuoteGradeC), quoted), 2),
		},
		CompletionGradeDistribution: map[domain.Grade]float64{
			domain.GradeA: kpi.Round(kpi.Percentage(float64(stats.CompletionGradeA), completed), 2),
			domain.GradeB: kpi.Round(kpi.Percentage(float64(stats.CompletionGradeB), completed), 2),
			domain.GradeC: kpi.Round(kpi.Percentage(float64(stats.CompletionGradeC), completed), 2),
		},
		DateFrom: mapper.FormatDate(rng.From),
		DateTo:   mapper.FormatDate(rng.To),
	}, nil
}

func ratio(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole
}

// Dashboard ranks every user with inquiries in the range by weighted score,
// best first. Users without inquiries are not listed.
func (s *PerformanceService) Dashboard(ctx context.Context, rng domain.DateRange) (*domain.DashboardDTO, error) {
	from, to := bounds(rng)
	rows, err := s.inquiryRepo.StatsByManager(ctx, from, to)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ManagerID)
	}
	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load managers: %w", err)
	}

	weights, stored, err := s.weightsService.Current(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := s.targetRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load performance targets: %w", err)
	}

	result := make([]domain.ManagerPerformanceDTO, 0, len(rows))
	for _, stats := range rows {
		if stats.Total == 0 {
			continue
		}
		user, ok := users[stats.ManagerID]
		if !ok {
			s.logger.Warn("dashboard row without user", zap.String("manager_id", stats.ManagerID.String()))
			user = domain.User{ID: stats.ManagerID}
		}
		result = append(result, managerPerformance(&user, stats, weights, targets))
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].OverallScore != result[j].OverallScore {
			return result[i].OverallScore > result[j].OverallScore
		}
		return result[i].ManagerName < result[j].ManagerName
	})

	return &domain.DashboardDTO{
		Weights:  mapper.ToKPIWeightsDTO(stored),
		Managers: result,
		DateFrom: mapper.FormatDate(rng.From),
		DateTo:   mapper.FormatDate(rng.To),
	}, nil
}

// MyPerformance returns the dashboard row of a single user
func (s *PerformanceService) MyPerformance(ctx context.Context, userID uuid.UUID, rng domain.DateRange) (*domain.ManagerPerformanceDTO, error) {
	user, err := s.getManager(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to := bounds(rng)
	stats, err := s.inquiryRepo.ManagerStats(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	weights, _, err := s.weightsService.Current(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := s.targetRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load performance targets: %w", err)
	}

	row := managerPerformance(user, stats, weights, targets)
	return &row, nil
}

// managerPerformance rounds the four percentages to one decimal and scores
// the rounded values
func managerPerformance(user *domain.User, stats domain.ManagerInquiryStats, weights kpi.Weights, targets []domain.PerformanceTarget) domain.ManagerPerformanceDTO {
	m := kpi.MetricsFromStats(stats)
	m = kpi.Metrics{
		ResponseTime:   kpi.Round(m.ResponseTime, 1),
		FollowUp:       kpi.Round(m.FollowUp, 1),
		ConversionRate: kpi.Round(m.ConversionRate, 1),
		NewCustomer:    kpi.Round(m.NewCustomer, 1),
	}
	score := kpi.Score(m, weights)

	grade := domain.PerformanceNotConfigured
	if match := kpi.MatchTarget(stats.Total, targets); match != nil {
		grade = kpi.GradePerformance(kpi.BracketFromTarget(*match), score)
	}

	return domain.ManagerPerformanceDTO{
		ManagerID:         user.ID,
		ManagerName:       user.FullName(),
		TotalInquiries:    stats.Total,
		ResponseTimePct:   m.ResponseTime,
		FollowUpPct:       m.FollowUp,
		ConversionRatePct: m.ConversionRate,
		NewCustomerPct:    m.NewCustomer,
		OverallScore:      score,
		PerformanceGrade:  grade,
	}
}
