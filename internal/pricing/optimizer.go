// Package pricing searches a fixed grid of price changes for the one that
// maximizes revenue predicted from a fitted elasticity.
package pricing

import (
	"math"
	"sort"

	"github.com/siddharthshetty008/restoAnalyze/internal/logging"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	MinDeltaPct  = -20
	MaxDeltaPct  = 30
	StepDeltaPct = 2

	MaintainBelowPct   = 2.0
	LargeChangePct     = 15.0
	DemandSwingPct     = 25.0
	HighPriorityGain   = 1000.0
	MediumPriorityGain = 500.0
)

type Optimizer struct {
	logger logrus.FieldLogger
}

func NewOptimizer(logger logrus.FieldLogger) *Optimizer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Optimizer{logger: logger}
}

// Optimize returns a recommendation for every item that has a verified price
// and an elasticity fit graded above LOW. The result may be empty, never nil.
func (o *Optimizer) Optimize(records map[string]models.ElasticityRecord, performance map[string]models.ItemPerformance) map[string]models.PricingRecommendation {
	out := make(map[string]models.PricingRecommendation)
	for name, rec := range records {
		if rec.Confidence == models.ConfidenceLow {
			continue
		}
		perf, ok := performance[name]
		if !ok || !perf.Verified || perf.AvgPrice <= 0 {
			continue
		}
		out[name] = recommend(rec, perf)
	}
	o.logger.WithFields(logrus.Fields{"candidates": len(records), "recommendations": len(out)}).Info("pricing optimized")
	return out
}

func predict(price, demand, coefficient float64, deltaPct int) (newPrice, newDemand float64) {
	d := float64(deltaPct) / 100
	newPrice = price * (1 + d)
	newDemand = math.Max(0, demand*(1+coefficient*d))
	return newPrice, newDemand
}

func recommend(rec models.ElasticityRecord, perf models.ItemPerformance) models.PricingRecommendation {
	price, demand := perf.AvgPrice, perf.UnitsSold
	currentRevenue := price * demand

	// the baseline wins ties
	bestDelta, bestPrice, bestDemand, bestRevenue := 0, price, demand, currentRevenue
	for delta := MinDeltaPct; delta <= MaxDeltaPct; delta += StepDeltaPct {
		p, q := predict(price, demand, rec.Coefficient, delta)
		if r := p * q; r > bestRevenue {
			bestDelta, bestPrice, bestDemand, bestRevenue = delta, p, q, r
		}
	}

	r := models.PricingRecommendation{
		ItemName:         rec.ItemName,
		CurrentPrice:     price,
		RecommendedPrice: bestPrice,
		PriceChangePct:   float64(bestDelta),
		CurrentDemand:    demand,
		PredictedDemand:  bestDemand,
		DemandChangePct:  pctChange(demand, bestDemand),
		CurrentRevenue:   currentRevenue,
		PredictedRevenue: bestRevenue,
		RevenueChange:    bestRevenue - currentRevenue,
		RevenueChangePct: pctChange(currentRevenue, bestRevenue),
		Elasticity:       rec.Coefficient,
		Confidence:       rec.Confidence,
		RiskFactors:      []string{},
	}
	if r.ItemName == "" {
		r.ItemName = perf.ItemName
	}

	switch {
	case math.Abs(r.PriceChangePct) < MaintainBelowPct:
		r.Action = models.ActionMaintain
	case r.PriceChangePct > 0:
		r.Action = models.ActionIncrease
	default:
		r.Action = models.ActionDecrease
	}

	if math.Abs(r.PriceChangePct) > LargeChangePct {
		r.RiskFactors = append(r.RiskFactors, models.RiskLargePriceChange)
	}
	if r.Confidence == models.ConfidenceMedium {
		r.RiskFactors = append(r.RiskFactors, models.RiskMediumConfidence)
	}
	if math.Abs(r.DemandChangePct) > DemandSwingPct {
		r.RiskFactors = append(r.RiskFactors, models.RiskDemandSwing)
	}

	switch {
	case r.RevenueChange > HighPriorityGain && r.Confidence == models.ConfidenceHigh:
		r.Priority = models.PriorityHigh
	case r.RevenueChange > MediumPriorityGain:
		r.Priority = models.PriorityMedium
	default:
		r.Priority = models.PriorityLow
	}
	return r
}

func pctChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}

// Summary is the opportunity overview printed with a pricing run.
type Summary struct {
	ItemsAnalyzed           int     `json:"items_analyzed"`
	HighConfidenceItems     int     `json:"high_confidence_items"`
	PriceIncreaseCandidates int     `json:"price_increase_candidates"`
	VolumeBoostCandidates   int     `json:"volume_boost_candidates"`
	TotalRevenueGain        float64 `json:"total_revenue_gain"`
}

func Summarize(recs map[string]models.PricingRecommendation) Summary {
	s := Summary{ItemsAnalyzed: len(recs)}
	for _, r := range recs {
		if r.Confidence == models.ConfidenceHigh {
			s.HighConfidenceItems++
		}
		switch r.Action {
		case models.ActionIncrease:
			s.PriceIncreaseCandidates++
		case models.ActionDecrease:
			s.VolumeBoostCandidates++
		}
		s.TotalRevenueGain += r.RevenueChange
	}
	return s
}

// Ranked orders recommendations by revenue gain, largest first, then by name.
func Ranked(recs map[string]models.PricingRecommendation) []models.PricingRecommendation {
	out := make([]models.PricingRecommendation, 0, len(recs))
	for _, r := range recs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RevenueChange != out[j].RevenueChange {
			return out[i].RevenueChange > out[j].RevenueChange
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out
}
