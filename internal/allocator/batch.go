package allocator

import (
	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type BatchResult struct {
	Orders  []models.OrderAllocation
	Metrics models.OrderMetrics
}

// AllocateOrders allocates every order with at most workers goroutines and
// returns only once all of them are done. Results are aligned with orders.
// progress, if set, is called once per finished order from worker goroutines.
func (a *Allocator) AllocateOrders(orders []models.Order, workers int, progress func()) BatchResult {
	if workers < 1 {
		workers = 1
	}
	results := make([]models.OrderAllocation, len(orders))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range orders {
		i := i
		g.Go(func() error {
			results[i] = a.AllocateOrder(orders[i])
			if progress != nil {
				progress()
			}
			return nil
		})
	}
	_ = g.Wait()

	metrics := Summarize(results)
	a.logger.WithFields(logrus.Fields{
		"orders":            metrics.TotalOrders,
		"orders_with_price": metrics.OrdersWithPrices,
		"verification_rate": metrics.VerificationRate(),
	}).Info("allocation complete")

	return BatchResult{Orders: results, Metrics: metrics}
}

func Summarize(results []models.OrderAllocation) models.OrderMetrics {
	m := models.OrderMetrics{TotalRevenue: decimal.Zero}
	for _, r := range results {
		m.TotalOrders++
		m.TotalRevenue = m.TotalRevenue.Add(r.Order.TotalAmount)
		priced := false
		for _, a := range r.Allocations {
			m.TotalItems++
			if a.Verified() {
				m.VerifiedItems++
				priced = true
			}
		}
		if priced {
			m.OrdersWithPrices++
		}
	}
	return m
}
