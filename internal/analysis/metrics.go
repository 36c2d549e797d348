package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

const unknownCategory = "Unknown"

// ItemMetrics aggregates allocations per item, keyed by the matched catalog
// name for verified allocations and by the raw name otherwise. Items are ordered by total revenue, largest first.
func ItemMetrics(results []models.OrderAllocation) []models.ItemMetrics {
	type acc struct {
		m      models.ItemMetrics
		orders map[string]struct{}
	}
	byName := make(map[string]*acc)
	var order []string

	for _, r := range results {
		for _, a := range r.Allocations {
			name := a.CanonicalName()
			x, ok := byName[name]
			if !ok {
				x = &acc{
					m: models.ItemMetrics{
						ItemName:     name,
						Category:     unknownCategory,
						TotalRevenue: decimal.Zero,
						MenuPrice:    decimal.Zero,
						FirstSale:    r.Order.Timestamp,
						LastSale:     r.Order.Timestamp,
					},
					orders: make(map[string]struct{}),
				}
				byName[name] = x
				order = append(order, name)
			}
			x.orders[r.Order.ID] = struct{}{}
			x.m.TotalQuantity++
			x.m.TotalRevenue = x.m.TotalRevenue.Add(a.AllocatedPrice)
			if a.Verified() {
				x.m.Category = a.MatchedItem.Category
				x.m.MenuPrice = a.MatchedItem.Price
				x.m.HasMenuPrice = true
			}
			if r.Order.Timestamp.Before(x.m.FirstSale) {
				x.m.FirstSale = r.Order.Timestamp
			}
			if r.Order.Timestamp.After(x.m.LastSale) {
				x.m.LastSale = r.Order.Timestamp
			}
		}
	}

	out := make([]models.ItemMetrics, 0, len(order))
	for _, name := range order {
		x := byName[name]
		m := x.m
		m.UniqueOrders = len(x.orders)
		m.AvgAllocatedPrice = m.TotalRevenue.Div(decimal.NewFromInt(int64(m.TotalQuantity)))
		m.SaleFrequency = float64(m.TotalQuantity) / float64(wholeDays(m.FirstSale, m.LastSale)+1)
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalRevenue.GreaterThan(out[j].TotalRevenue)
	})
	return out
}

func wholeDays(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// Performance derives the optimizer's current state from item metrics.
func Performance(items []models.ItemMetrics) map[string]models.ItemPerformance {
	out := make(map[string]models.ItemPerformance, len(items))
	for _, m := range items {
		out[m.ItemName] = models.ItemPerformance{
			ItemName:  m.ItemName,
			AvgPrice:  m.AvgAllocatedPrice.InexactFloat64(),
			UnitsSold: float64(m.TotalQuantity),
			Verified:  m.HasMenuPrice,
		}
	}
	return out
}

// Verified keeps only items backed by a catalog price.
func Verified(items []models.ItemMetrics) []models.ItemMetrics {
	out := make([]models.ItemMetrics, 0, len(items))
	for _, m := range items {
		if m.HasMenuPrice {
			out = append(out, m)
		}
	}
	return out
}
