package analysis

import (
	"fmt"

	"github.com/siddharthshetty008/restoAnalyze/internal/catalog"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

// FilterOrders narrows allocated orders by whether they contain a trusted
// alcohol match.
func FilterOrders(results []models.OrderAllocation, filterType string) ([]models.OrderAllocation, error) {
	switch filterType {
	case "", models.FilterAll:
		return results, nil
	case models.FilterAlcohol, models.FilterNonAlcohol:
	default:
		return nil, fmt.Errorf("unknown filter type %q", filterType)
	}

	want := filterType == models.FilterAlcohol
	out := make([]models.OrderAllocation, 0, len(results))
	for _, r := range results {
		if hasAlcohol(r) == want {
			out = append(out, r)
		}
	}
	return out, nil
}

func hasAlcohol(r models.OrderAllocation) bool {
	for _, a := range r.Allocations {
		if a.Verified() && catalog.IsAlcohol(a.MatchedItem.Name) {
			return true
		}
	}
	return false
}
