package elasticity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC), monday},
		{time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC), monday},
		{time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), monday.AddDate(0, 0, 7)},
		{time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC), time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, weekStart(tt.in), tt.in.String())
	}
}

func TestAggregateWeeklyOmitsEmptyWeeks(t *testing.T) {
	obs := []Observation{
		{Price: 100, Timestamp: monday.AddDate(0, 0, 15)},
		{Price: 90, Timestamp: monday.AddDate(0, 0, 1)},
		{Price: 110, Timestamp: monday.AddDate(0, 0, 3)},
	}
	weeks := aggregateWeekly(obs)
	require.Len(t, weeks, 2)
	assert.Equal(t, monday, weeks[0].WeekStart)
	assert.Equal(t, 2, weeks[0].Quantity)
	assert.InDelta(t, 100, weeks[0].AvgPrice, 1e-9)
	assert.Equal(t, monday.AddDate(0, 0, 14), weeks[1].WeekStart)
	assert.Equal(t, 1, weeks[1].Quantity)
}

func TestPercentChanges(t *testing.T) {
	weeks := []WeeklyAggregate{
		{AvgPrice: 100, Quantity: 10},
		{AvgPrice: 90, Quantity: 12},
		{AvgPrice: 0, Quantity: 6},
		{AvgPrice: 99, Quantity: 3},
	}
	dp, dq := percentChanges(weeks)
	// the row after a zero price is non-finite and dropped
	require.Len(t, dp, 2)
	assert.InDelta(t, -0.1, dp[0], 1e-9)
	assert.InDelta(t, 0.2, dq[0], 1e-9)
	assert.InDelta(t, -1.0, dp[1], 1e-9)
	assert.InDelta(t, -0.5, dq[1], 1e-9)
}

func TestFromAllocations(t *testing.T) {
	thali := &models.MenuItem{Name: "Veg Thali", Price: decimal.NewFromInt(100)}
	ts := monday.Add(12 * time.Hour)
	results := []models.OrderAllocation{{
		Order: models.Order{ID: "A1", Timestamp: ts},
		Allocations: []models.Allocation{
			{ItemName: "veg thali", MatchedItem: thali, Confidence: models.ConfidenceHigh, AllocatedPrice: decimal.NewFromInt(100)},
			{ItemName: "Unknown Snack", Confidence: models.ConfidenceEstimated, AllocatedPrice: decimal.NewFromInt(150)},
		},
	}}

	obs := FromAllocations(results)
	require.Len(t, obs, 2)
	assert.Equal(t, Observation{ItemName: "Veg Thali", Price: 100, MenuPrice: 100, Timestamp: ts, Verified: true}, obs[0])
	assert.Equal(t, "Unknown Snack", obs[1].ItemName)
	assert.False(t, obs[1].Verified)
}

func TestFitLine(t *testing.T) {
	x := []float64{-0.2, -0.1, 0.1, 0.3}
	y := make([]float64, len(x))
	for i := range x {
		y[i] = 1 + 2*x[i]
	}
	f := fitLine(x, y)
	assert.InDelta(t, 2, f.slope, 1e-9)
	assert.InDelta(t, 1, f.intercept, 1e-9)
	assert.InDelta(t, 1, f.rSquared, 1e-9)
	assert.Less(t, f.pValue, 1e-6)
	assert.Equal(t, 4, f.n)

	two := fitLine([]float64{0.1, 0.2}, []float64{-0.1, -0.3})
	assert.Equal(t, 1.0, two.pValue)

	noisy := fitLine([]float64{-0.2, -0.1, 0, 0.1, 0.2}, []float64{0.1, 0.3, -0.2, 0.2, -0.1})
	assert.Greater(t, noisy.pValue, 0.1)
	assert.Less(t, noisy.pValue, 1.0)
	assert.Less(t, noisy.rSquared, 0.5)
}

func TestCoefficientOfVariation(t *testing.T) {
	assert.Equal(t, 0.0, coefficientOfVariation([]float64{5, 5, 5}))
	assert.Equal(t, 0.0, coefficientOfVariation([]float64{-1, 1}))
	assert.InDelta(t, 0.141421, coefficientOfVariation([]float64{90, 110}), 1e-5)
}
