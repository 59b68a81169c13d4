package kpi

import (
	"math"

	"github.com/salestrack/inquiry-api/internal/domain"
)

// WeightSumTolerance is how far the weight total may drift from 100
const WeightSumTolerance = 0.01

// Weights are the percentage weights of the four performance metrics
type Weights struct {
	ResponseTime   float64
	FollowUp       float64
	ConversionRate float64
	NewCustomer    float64
}

// WeightsFromModel converts the stored configuration
func WeightsFromModel(w domain.KPIWeights) Weights {
	return Weights{
		ResponseTime:   w.ResponseTime,
		FollowUp:       w.FollowUp,
		ConversionRate: w.ConversionRate,
		NewCustomer:    w.NewCustomer,
	}
}

// Sum is the total of all four weights
func (w Weights) Sum() float64 {
	return w.ResponseTime + w.FollowUp + w.ConversionRate + w.NewCustomer
}

// Validate rejects negative or non-finite weights and totals outside
// [100-WeightSumTolerance, 100+WeightSumTolerance].
func (w Weights) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"response_time", w.ResponseTime},
		{"follow_up", w.FollowUp},
		{"conversion_rate", w.ConversionRate},
		{"new_customer", w.NewCustomer},
	}
	for _, n := range named {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return ValidationError("%s weight must be a number", n.name)
		}
		if n.value < 0 {
			return ValidationError("%s weight must be non-negative, got %.2f", n.name, n.value)
		}
	}
	// 1e-9 absorbs float noise when the total sits exactly on the tolerance edge
	if math.Abs(w.Sum()-100) > WeightSumTolerance+1e-9 {
		return ValidationError("weights must sum to 100, got %.2f", w.Sum())
	}
	return nil
}

// Metrics are the four performance percentages of a manager, each nominally in [0,100]
type Metrics struct {
	ResponseTime   float64
	FollowUp       float64
	ConversionRate float64
	NewCustomer    float64
}

// Score combines metrics into one weighted percentage rounded to 2 decimals.
// Inputs are not clamped.
func Score(m Metrics, w Weights) float64 {
	total := m.ResponseTime*w.ResponseTime/100 +
		m.FollowUp*w.FollowUp/100 +
		m.ConversionRate*w.ConversionRate/100 +
		m.NewCustomer*w.NewCustomer/100
	return Round(total, 2)
}

// MetricsFromStats derives the four percentages from a manager's counters.
// Response time relates quote points to the maximum for all inquiries,
// follow up relates completion points to the maximum for completed ones.
func MetricsFromStats(s domain.ManagerInquiryStats) Metrics {
	return Metrics{
		ResponseTime:   Percentage(float64(s.QuotePoints()), float64(s.Total*MaxPointsPerInquiry)),
		FollowUp:       Percentage(float64(s.CompletionPoints()), float64(s.Completed()*MaxPointsPerInquiry)),
		ConversionRate: Percentage(float64(s.Success), float64(s.Total)),
		NewCustomer:    Percentage(float64(s.NewCustomers), float64(s.Total)),
	}
}

// Percentage returns part/whole*100, or 0 when whole is 0
func Percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// Round rounds half away from zero to the given number of decimal places
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
