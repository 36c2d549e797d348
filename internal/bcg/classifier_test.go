package bcg

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentileRank(t *testing.T) {
	assert.Equal(t, []float64{0.25, 1, 0.75, 0.75}, PercentileRank([]float64{1, 9, 5, 5}))
	assert.Equal(t, []float64{1, 1}, PercentileRank([]float64{3, 3}))
	assert.Empty(t, PercentileRank(nil))
}

func TestQuadrant(t *testing.T) {
	tests := []struct {
		pop, rev float64
		want     models.Quadrant
	}{
		{0.5, 0.5, models.QuadrantStar},
		{1, 0.49, models.QuadrantPlowhorse},
		{0.25, 0.75, models.QuadrantPuzzle},
		{0.49, 0.49, models.QuadrantDog},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Quadrant(tt.pop, tt.rev), "pop=%v rev=%v", tt.pop, tt.rev)
	}
}

func metric(name string, qty int, revenue int64, menuPrice int64) models.ItemMetrics {
	return models.ItemMetrics{
		ItemName:      name,
		TotalQuantity: qty,
		TotalRevenue:  decimal.NewFromInt(revenue),
		MenuPrice:     decimal.NewFromInt(menuPrice),
		HasMenuPrice:  menuPrice > 0,
	}
}

func TestClassify(t *testing.T) {
	items := []models.ItemMetrics{
		metric("Veg Thali", 120, 18000, 150),
		metric("Masala Chai", 200, 4000, 20),
		metric("Lobster Thermidor", 10, 9000, 900),
		metric("Plain Papad", 5, 300, 0),
		metric("Chicken Biryani", 100, 12000, 250),
	}
	snapshot := append([]models.ItemMetrics(nil), items...)

	got := Classify(items)
	require.Len(t, got, 5)
	assert.Equal(t, snapshot, items)

	want := []models.Quadrant{models.QuadrantStar, models.QuadrantPlowhorse, models.QuadrantPuzzle, models.QuadrantDog, models.QuadrantStar}
	for i, c := range got {
		assert.Equal(t, items[i].ItemName, c.ItemName)
		assert.Equal(t, want[i], c.Quadrant, c.ItemName)
	}
	assert.Equal(t, 0.8, got[0].PopularityPercentile)
	assert.Equal(t, 1.0, got[0].RevenuePercentile)
	assert.Equal(t, "FEATURE: Top performer! Menu price: ₹150", got[0].Recommendation)
	assert.Equal(t, "REVIEW: Low performance", got[3].Recommendation)

	assert.Equal(t, got, Classify(items), "deterministic")
	assert.Equal(t, map[models.Quadrant]int{
		models.QuadrantStar: 2, models.QuadrantPlowhorse: 1, models.QuadrantPuzzle: 1, models.QuadrantDog: 1,
	}, Distribution(got))
}

func TestClassifySingleItemIsStar(t *testing.T) {
	got := Classify([]models.ItemMetrics{metric("Veg Thali", 1, 100, 100)})
	assert.Equal(t, models.QuadrantStar, got[0].Quadrant)
	assert.Equal(t, 0, Distribution(got)[models.QuadrantDog])
}
