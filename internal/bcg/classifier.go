// Package bcg places menu items on the popularity/revenue matrix.
package bcg

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

const Threshold = 0.5

var advice = map[models.Quadrant]string{
	models.QuadrantStar:      "FEATURE: Top performer!",
	models.QuadrantPlowhorse: "OPTIMIZE: Popular but low revenue",
	models.QuadrantPuzzle:    "PROMOTE: High revenue potential",
	models.QuadrantDog:       "REVIEW: Low performance",
}

// PercentileRank returns, for each value, the fraction of values less than
// or equal to it. Equal values share a rank.
func PercentileRank(values []float64) []float64 {
	ranks := make([]float64, len(values))
	n := float64(len(values))
	for i, v := range values {
		var le int
		for _, w := range values {
			if w <= v {
				le++
			}
		}
		ranks[i] = float64(le) / n
	}
	return ranks
}

func Quadrant(popularity, revenue float64) models.Quadrant {
	switch {
	case popularity >= Threshold && revenue >= Threshold:
		return models.QuadrantStar
	case popularity >= Threshold:
		return models.QuadrantPlowhorse
	case revenue >= Threshold:
		return models.QuadrantPuzzle
	default:
		return models.QuadrantDog
	}
}

func Recommendation(q models.Quadrant, menuPrice decimal.Decimal, hasPrice bool) string {
	text, ok := advice[q]
	if !ok {
		return "Review performance"
	}
	if hasPrice {
		text = fmt.Sprintf("%s Menu price: ₹%s", text, menuPrice.StringFixed(0))
	}
	return text
}

// Classify ranks the given items against each other. Results follow the
// input order and the input is not modified.
func Classify(items []models.ItemMetrics) []models.Classification {
	qty := make([]float64, len(items))
	rev := make([]float64, len(items))
	for i, m := range items {
		qty[i] = float64(m.TotalQuantity)
		rev[i] = m.TotalRevenue.InexactFloat64()
	}
	popRank, revRank := PercentileRank(qty), PercentileRank(rev)

	out := make([]models.Classification, len(items))
	for i, m := range items {
		q := Quadrant(popRank[i], revRank[i])
		out[i] = models.Classification{
			ItemName:             m.ItemName,
			Quadrant:             q,
			TotalQuantity:        m.TotalQuantity,
			TotalRevenue:         m.TotalRevenue,
			PopularityPercentile: popRank[i],
			RevenuePercentile:    revRank[i],
			Recommendation:       Recommendation(q, m.MenuPrice, m.HasMenuPrice),
		}
	}
	return out
}

// Distribution counts items per quadrant; every quadrant is present.
func Distribution(classes []models.Classification) map[models.Quadrant]int {
	dist := make(map[models.Quadrant]int, len(models.Quadrants))
	for _, q := range models.Quadrants {
		dist[q] = 0
	}
	for _, c := range classes {
		dist[c.Quadrant]++
	}
	return dist
}
