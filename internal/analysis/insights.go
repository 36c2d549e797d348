package analysis

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/bcg"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

const (
	TopN         = 10
	TopNVerified = 20
)

type Insights struct {
	TotalRevenue         decimal.Decimal         `json:"total_revenue"`
	TotalOrders          int                     `json:"total_orders"`
	UniqueItems          int                     `json:"unique_items"`
	ItemsWithMenuPrices  int                     `json:"items_with_menu_prices"`
	PriceAccuracyPercent float64                 `json:"price_accuracy_percent"`
	AvgOrderValue        decimal.Decimal         `json:"avg_order_value"`
	QuadrantDistribution map[models.Quadrant]int `json:"category_distribution"`
	VerifiedRevenue      decimal.Decimal         `json:"total_verified_revenue"`
	TopByRevenue         []models.ItemMetrics    `json:"top_by_revenue"`
	TopByQuantity        []models.ItemMetrics    `json:"top_by_quantity"`
	TopVerifiedRevenue   []models.ItemMetrics    `json:"top_verified_by_revenue"`
	TopVerifiedQuantity  []models.ItemMetrics    `json:"top_verified_by_quantity"`
	MonthlyTrends        Trends                  `json:"monthly_trends"`
	ServiceTypes         []ServiceTypeStats      `json:"service_type_analysis"`
}

// Summarize builds the headline numbers for a set of orders. items must be
// the metrics of exactly those orders, as returned by ItemMetrics.
func Summarize(results []models.OrderAllocation, items []models.ItemMetrics, classes []models.Classification) Insights {
	in := Insights{
		TotalRevenue:         decimal.Zero,
		AvgOrderValue:        decimal.Zero,
		VerifiedRevenue:      decimal.Zero,
		UniqueItems:          len(items),
		QuadrantDistribution: bcg.Distribution(classes),
	}

	seen := make(map[string]struct{}, len(results))
	orders := make([]models.Order, 0, len(results))
	for _, r := range results {
		if _, dup := seen[r.Order.ID]; !dup {
			seen[r.Order.ID] = struct{}{}
			orders = append(orders, r.Order)
		}
	}
	in.TotalOrders = len(orders)
	in.MonthlyTrends = MonthlyTrends(orders)
	in.ServiceTypes = ServiceTypes(orders)

	for _, m := range items {
		in.TotalRevenue = in.TotalRevenue.Add(m.TotalRevenue)
		if m.HasMenuPrice {
			in.ItemsWithMenuPrices++
			in.VerifiedRevenue = in.VerifiedRevenue.Add(m.TotalRevenue)
		}
	}
	if len(items) > 0 {
		in.PriceAccuracyPercent = float64(in.ItemsWithMenuPrices) / float64(len(items)) * 100
	}
	if in.TotalOrders > 0 {
		in.AvgOrderValue = in.TotalRevenue.Div(decimal.NewFromInt(int64(in.TotalOrders))).Round(2)
	}

	verified := Verified(items)
	in.TopByRevenue = top(items, TopN, byRevenue)
	in.TopByQuantity = top(items, TopN, byQuantity)
	in.TopVerifiedRevenue = top(verified, TopNVerified, byRevenue)
	in.TopVerifiedQuantity = top(verified, TopNVerified, byQuantity)
	return in
}

func byRevenue(a, b models.ItemMetrics) bool { return a.TotalRevenue.GreaterThan(b.TotalRevenue) }
func byQuantity(a, b models.ItemMetrics) bool { return a.TotalQuantity > b.TotalQuantity }

// top returns the first n items under less without reordering the input.
func top(items []models.ItemMetrics, n int, less func(a, b models.ItemMetrics) bool) []models.ItemMetrics {
	sorted := append([]models.ItemMetrics(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
