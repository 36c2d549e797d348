// Package analysis runs the allocation, elasticity, pricing and menu
// engineering stages over one batch of orders.
package analysis

import (
	"github.com/siddharthshetty008/restoAnalyze/internal/allocator"
	"github.com/siddharthshetty008/restoAnalyze/internal/bcg"
	"github.com/siddharthshetty008/restoAnalyze/internal/catalog"
	"github.com/siddharthshetty008/restoAnalyze/internal/elasticity"
	"github.com/siddharthshetty008/restoAnalyze/internal/logging"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/siddharthshetty008/restoAnalyze/internal/pricing"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Workers    int
	FilterType string
	// Progress is called once per allocated order.
	Progress func()
}

type Report struct {
	Allocation      allocator.BatchResult
	Orders          []models.OrderAllocation
	Items           []models.ItemMetrics
	Classifications []models.Classification
	Elasticity      elasticity.Result
	Pricing         map[string]models.PricingRecommendation
	PricingSummary  pricing.Summary
	Insights        Insights
}

type Analyzer struct {
	allocator *allocator.Allocator
	estimator *elasticity.Estimator
	optimizer *pricing.Optimizer
	logger    logrus.FieldLogger
}

func NewAnalyzer(c *catalog.Catalog, logger logrus.FieldLogger) *Analyzer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Analyzer{
		allocator: allocator.New(c, logger.WithField("module", "allocator")),
		estimator: elasticity.NewEstimator(logger.WithField("module", "elasticity")),
		optimizer: pricing.NewOptimizer(logger.WithField("module", "pricing")),
		logger:    logger,
	}
}

func (a *Analyzer) Allocator() *allocator.Allocator { return a.allocator }

// Run allocates every order before any downstream stage starts. An
// elasticity stage without enough data leaves every other part of the
// report intact and an empty pricing map.
func (a *Analyzer) Run(orders []models.Order, opts Options) (*Report, error) {
	batch := a.allocator.AllocateOrders(orders, opts.Workers, opts.Progress)

	filtered, err := FilterOrders(batch.Orders, opts.FilterType)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Allocation: batch,
		Orders:     filtered,
		Items:      ItemMetrics(filtered),
		Pricing:    map[string]models.PricingRecommendation{},
	}
	r.Classifications = bcg.Classify(Verified(r.Items))

	r.Elasticity = a.estimator.Estimate(elasticity.FromAllocations(filtered))
	if r.Elasticity.Available() {
		r.Pricing = a.optimizer.Optimize(r.Elasticity.Records, Performance(r.Items))
	}
	r.PricingSummary = pricing.Summarize(r.Pricing)
	r.Insights = Summarize(filtered, r.Items, r.Classifications)

	a.logger.WithFields(logrus.Fields{
		"orders":          len(filtered),
		"items":           len(r.Items),
		"elasticity":      r.Elasticity.Status,
		"recommendations": len(r.Pricing),
	}).Info("analysis complete")
	return r, nil
}
