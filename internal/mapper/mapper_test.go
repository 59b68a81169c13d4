package mapper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInquiryDTO(t *testing.T) {
	almaty := time.FixedZone("ALMT", 6*3600)
	quoted := time.Date(2024, 3, 5, 10, 0, 0, 0, almaty)
	qt := 26*time.Hour + 30*time.Minute
	grade := domain.GradeA

	dto := ToInquiryDTO(&domain.Inquiry{
		ID:         uuid.New(),
		Client:     "ACME",
		Status:     domain.InquiryStatusQuoted,
		QuotedAt:   &quoted,
		QuoteTime:  &qt,
		QuoteGrade: &grade,
		CreatedAt:  time.Date(2024, 3, 4, 3, 0, 0, 0, time.UTC),
	})

	require.NotNil(t, dto.QuotedAt)
	assert.Equal(t, "2024-03-05T04:00:00Z", *dto.QuotedAt)
	require.NotNil(t, dto.QuoteTimeHours)
	assert.Equal(t, 26.5, *dto.QuoteTimeHours)
	assert.Nil(t, dto.ResolutionTimeHours)
	assert.Nil(t, dto.SuccessAt)
	assert.Equal(t, "2024-03-04T03:00:00Z", dto.CreatedAt)
}

func TestToKPIWeightsDTO(t *testing.T) {
	def := ToKPIWeightsDTO(nil)
	assert.True(t, def.IsDefault)
	assert.Equal(t, 100.0, def.TotalWeight)
	assert.Empty(t, def.UpdatedAt)

	stored := ToKPIWeightsDTO(&domain.KPIWeights{ResponseTime: 40, FollowUp: 30, ConversionRate: 20, NewCustomer: 10})
	assert.False(t, stored.IsDefault)
	assert.Equal(t, 40.0, stored.ResponseTimeWeight)
}

func TestToPerformanceTargetDTO(t *testing.T) {
	dto := ToPerformanceTargetDTO(&domain.PerformanceTarget{MinInquiries: 51, ExcellentThreshold: 70, IsActive: true})
	assert.Equal(t, "51+", dto.VolumeDisplay)
	assert.Nil(t, dto.MaxInquiries)
}
