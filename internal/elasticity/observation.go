package elasticity

import (
	"time"

	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

// Observation is one sold unit of an item at its allocated price.
type Observation struct {
	ItemName  string
	Price     float64
	MenuPrice float64
	Timestamp time.Time
	Verified  bool
}

// FromAllocations flattens allocated orders into observations keyed by
// Allocation.CanonicalName.
func FromAllocations(results []models.OrderAllocation) []Observation {
	var obs []Observation
	for _, r := range results {
		for _, a := range r.Allocations {
			o := Observation{
				ItemName:  a.CanonicalName(),
				Price:     a.AllocatedPrice.InexactFloat64(),
				Timestamp: r.Order.Timestamp,
				Verified:  a.Verified(),
			}
			if a.MatchedItem != nil {
				o.MenuPrice = a.MatchedItem.Price.InexactFloat64()
			}
			obs = append(obs, o)
		}
	}
	return obs
}

type itemSeries struct {
	name string
	obs  []Observation
}

// groupByItem keeps items in order of first appearance.
func groupByItem(obs []Observation) []itemSeries {
	pos := make(map[string]int)
	var out []itemSeries
	for _, o := range obs {
		i, ok := pos[o.ItemName]
		if !ok {
			i = len(out)
			pos[o.ItemName] = i
			out = append(out, itemSeries{name: o.ItemName})
		}
		out[i].obs = append(out[i].obs, o)
	}
	return out
}
