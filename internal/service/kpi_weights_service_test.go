package service_test

import (
	"context"
	"testing"

	"github.com/salestrack/inquiry-api/internal/domain"
	"github.com/salestrack/inquiry-api/internal/kpi"
	"github.com/salestrack/inquiry-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKPIWeightsService_DefaultsWhenUnconfigured(t *testing.T) {
	f := setup(t, at(4, 8, 0))

	dto, err := f.weightsSvc.GetCurrentWeights(context.Background())
	require.NoError(t, err)
	assert.True(t, dto.IsDefault)
	assert.Equal(t, 25.0, dto.ResponseTimeWeight)
	assert.Equal(t, 100.0, dto.TotalWeight)
}

func TestKPIWeightsService_CreateWeightsConfiguration(t *testing.T) {
	f := setup(t, at(4, 8, 0))
	ctx := context.Background()
	admin := testutil.CreateTestUser(t, f.db, "root", domain.UserTypeAdmin)

	dto, err := f.weightsSvc.CreateWeightsConfiguration(ctx, &domain.KPIWeightsRequest{
		ResponseTimeWeight:   40,
		FollowUpWeight:       30,
		ConversionRateWeight: 20,
		NewCustomerWeight:    10,
	}, &admin.ID)
	require.NoError(t, err)
	assert.False(t, dto.IsDefault)
	assert.Equal(t, 40.0, dto.ResponseTimeWeight)
	assert.NotEmpty(t, dto.UpdatedAt)

	// a second configuration replaces the first
	_, err = f.weightsSvc.CreateWeightsConfiguration(ctx, &domain.KPIWeightsRequest{
		ResponseTimeWeight:   10,
		FollowUpWeight:       20,
		ConversionRateWeight: 30,
		NewCustomerWeight:    40,
	}, nil)
	require.NoError(t, err)

	weights, stored, err := f.weightsSvc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 40.0, weights.NewCustomer)
}

func TestKPIWeightsService_RejectsBadSums(t *testing.T) {
	f := setup(t, at(4, 8, 0))
	ctx := context.Background()

	tests := []struct {
		name string
		req  domain.KPIWeightsRequest
	}{
		{"sum below tolerance", domain.KPIWeightsRequest{ResponseTimeWeight: 25, FollowUpWeight: 25, ConversionRateWeight: 25, NewCustomerWeight: 24.98}},
		{"sum above tolerance", domain.KPIWeightsRequest{ResponseTimeWeight: 50, FollowUpWeight: 50, ConversionRateWeight: 1, NewCustomerWeight: 0}},
		{"negative weight", domain.KPIWeightsRequest{ResponseTimeWeight: 110, FollowUpWeight: -10, ConversionRateWeight: 0, NewCustomerWeight: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.weightsSvc.CreateWeightsConfiguration(ctx, &tt.req, nil)
			assert.ErrorIs(t, err, kpi.ErrValidation)
		})
	}

	dto, err := f.weightsSvc.GetCurrentWeights(ctx)
	require.NoError(t, err)
	assert.True(t, dto.IsDefault, "rejected configurations are never stored")
}
