// Package allocator splits an order's known total across its free-text items.
package allocator

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/catalog"
	"github.com/siddharthshetty008/restoAnalyze/internal/logging"
	"github.com/siddharthshetty008/restoAnalyze/internal/matcher"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// Tolerance is the largest allocation/total mismatch left unreconciled.
	Tolerance = decimal.RequireFromString("0.01")
	// reportThreshold is the residual size worth a diagnostic log line.
	reportThreshold = decimal.NewFromInt(1)
)

type Allocator struct {
	catalog *catalog.Catalog
	logger  logrus.FieldLogger
}

func New(c *catalog.Catalog, logger logrus.FieldLogger) *Allocator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Allocator{catalog: c, logger: logger}
}

// ParseItems splits a comma-separated item list, trimming blanks and dropping empties.
func ParseItems(itemsText string) []string {
	parts := strings.Split(itemsText, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// Allocate returns one allocation per parsed item, in input order, summing to
// total within Tolerance.
func (a *Allocator) Allocate(itemsText string, total decimal.Decimal) []models.Allocation {
	return a.allocate("", itemsText, total)
}

func (a *Allocator) AllocateOrder(order models.Order) models.OrderAllocation {
	return models.OrderAllocation{
		Order:       order,
		Allocations: a.allocate(order.ID, order.ItemsText, order.TotalAmount),
	}
}

func (a *Allocator) allocate(orderID, itemsText string, total decimal.Decimal) []models.Allocation {
	items := ParseItems(itemsText)
	if len(items) == 0 {
		return []models.Allocation{}
	}

	allocations := make([]models.Allocation, len(items))
	var unknown []int
	knownTotal := decimal.Zero

	for i, name := range items {
		res := matcher.Match(name, a.catalog)
		alloc := models.Allocation{
			ItemName:       name,
			MatchedItem:    res.Item,
			Confidence:     res.Confidence,
			MatchScore:     res.Score,
			AllocatedPrice: decimal.Zero,
			Method:         models.MethodEstimated,
		}
		if res.Found() && res.Confidence.Trusted() {
			knownTotal = knownTotal.Add(res.Item.Price)
			alloc.AllocatedPrice = res.Item.Price
			alloc.Method = models.MethodMenuPrice
		} else {
			unknown = append(unknown, i)
		}
		allocations[i] = alloc
	}

	remaining := total.Sub(knownTotal)

	switch {
	case len(unknown) > 0 && remaining.IsPositive():
		share := remaining.Div(decimal.NewFromInt(int64(len(unknown))))
		for _, idx := range unknown {
			allocations[idx].AllocatedPrice = share
			allocations[idx].Method = models.MethodProportional
		}

	case remaining.IsNegative() || len(unknown) > 0:
		// known prices meet or exceed the total: spread the shortfall over every item
		adjustment := remaining.Div(decimal.NewFromInt(int64(len(allocations))))
		for i := range allocations {
			allocations[i].AllocatedPrice = allocations[i].AllocatedPrice.Add(adjustment)
			if allocations[i].Method == models.MethodMenuPrice {
				allocations[i].Method = models.MethodAdjustedMenuPrice
			}
		}

	case remaining.IsPositive():
		// every item priced and the total is higher (tax, charges): scale up proportionally
		for i := range allocations {
			allocations[i].AllocatedPrice = allocations[i].AllocatedPrice.Mul(total).Div(knownTotal)
		}
	}

	a.reconcile(orderID, allocations, total)
	return allocations
}

// reconcile puts any residual beyond Tolerance on the first item.
func (a *Allocator) reconcile(orderID string, allocations []models.Allocation, total decimal.Decimal) {
	residual := total.Sub(Sum(allocations))
	if residual.Abs().LessThanOrEqual(Tolerance) {
		return
	}
	allocations[0].AllocatedPrice = allocations[0].AllocatedPrice.Add(residual)
	if residual.Abs().GreaterThan(reportThreshold) {
		a.logger.WithFields(logrus.Fields{
			"order_id": orderID,
			"residual": residual.StringFixed(2),
			"item":     allocations[0].ItemName,
		}).Debug("allocation imbalance absorbed by first item")
	}
}

func Sum(allocations []models.Allocation) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range allocations {
		sum = sum.Add(a.AllocatedPrice)
	}
	return sum
}
