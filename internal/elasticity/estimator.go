// Package elasticity fits per-item price elasticity from allocated sales history.
package elasticity

import (
	"fmt"
	"math"

	"github.com/siddharthshetty008/restoAnalyze/internal/catalog"
	"github.com/siddharthshetty008/restoAnalyze/internal/logging"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

const (
	MinObservations = 10
	MinWeeks        = 3
	MinChangeRows   = 2

	MinHistoryDays     = 90
	LongHistoryDays    = 180
	MinLongHistoryDays = 120

	VariationSampleSize = 20
	MinPriceCV          = 0.08
	MinVaryingShare     = 0.2

	MaxPriceChange    = 0.5
	MaxQuantityChange = 2.0

	MaxCoefficient = 3.0
	AlcoholCap     = 1.5
	StapleCap      = 1.0
	PremiumCap     = 2.0
	PremiumPrice   = 500.0
)

type Status string

const (
	StatusAvailable        Status = "AVAILABLE"
	StatusInsufficientData Status = "INSUFFICIENT_DATA"
)

// Result carries either fitted records or the reason the whole stage was
// abandoned. Records is never nil.
type Result struct {
	Status  Status                             `json:"status"`
	Reason  string                             `json:"reason,omitempty"`
	Records map[string]models.ElasticityRecord `json:"records"`
}

func (r Result) Available() bool { return r.Status == StatusAvailable }

func insufficient(format string, args ...any) Result {
	return Result{
		Status:  StatusInsufficientData,
		Reason:  fmt.Sprintf(format, args...),
		Records: map[string]models.ElasticityRecord{},
	}
}

type Estimator struct {
	logger logrus.FieldLogger
}

func NewEstimator(logger logrus.FieldLogger) *Estimator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Estimator{logger: logger}
}

// Estimate fits every verified item that clears the data gates. Unverified
// observations are ignored entirely.
func (e *Estimator) Estimate(observations []Observation) Result {
	verified := make([]Observation, 0, len(observations))
	for _, o := range observations {
		if o.Verified {
			verified = append(verified, o)
		}
	}
	if len(verified) == 0 {
		return e.abort(insufficient("no observations with a verified menu price"))
	}

	days := historyDays(verified)
	required := MinHistoryDays
	if days >= LongHistoryDays {
		required = MinLongHistoryDays
	}
	if days < required {
		return e.abort(insufficient("need at least %d days of history, have %d", required, days))
	}

	items := groupByItem(verified)
	if varying, evaluated := priceVariation(items); evaluated == 0 || float64(varying) < MinVaryingShare*float64(evaluated) {
		return e.abort(insufficient("insufficient price variation: %d of %d sampled items vary by more than %.0f%%",
			varying, evaluated, MinPriceCV*100))
	}

	res := Result{Status: StatusAvailable, Records: make(map[string]models.ElasticityRecord)}
	for _, item := range items {
		rec, skip := fitItem(item.name, item.obs)
		if skip != "" {
			e.logger.WithFields(logrus.Fields{"item": item.name, "gate": skip}).Debug("elasticity skipped")
			continue
		}
		res.Records[item.name] = rec
	}
	e.logger.WithFields(logrus.Fields{"items": len(items), "fitted": len(res.Records)}).Info("elasticity estimated")
	return res
}

func (e *Estimator) abort(r Result) Result {
	e.logger.WithField("reason", r.Reason).Info("elasticity analysis not available")
	return r
}

func historyDays(obs []Observation) int {
	first, last := obs[0].Timestamp, obs[0].Timestamp
	for _, o := range obs[1:] {
		if o.Timestamp.Before(first) {
			first = o.Timestamp
		}
		if o.Timestamp.After(last) {
			last = o.Timestamp
		}
	}
	return int(last.Sub(first).Hours() / 24)
}

// priceVariation samples the first items and counts how many of those with
// enough observations show a meaningful spread of allocated prices.
func priceVariation(items []itemSeries) (varying, evaluated int) {
	sample := items
	if len(sample) > VariationSampleSize {
		sample = sample[:VariationSampleSize]
	}
	for _, item := range sample {
		if len(item.obs) < MinObservations {
			continue
		}
		evaluated++
		prices := make([]float64, len(item.obs))
		for i, o := range item.obs {
			prices[i] = o.Price
		}
		if coefficientOfVariation(prices) > MinPriceCV {
			varying++
		}
	}
	return varying, evaluated
}

// fitItem returns the record for one item, or the name of the gate it failed.
func fitItem(name string, obs []Observation) (models.ElasticityRecord, string) {
	if len(obs) < MinObservations {
		return models.ElasticityRecord{}, "min_observations"
	}
	weeks := aggregateWeekly(obs)
	if len(weeks) < MinWeeks {
		return models.ElasticityRecord{}, "min_weeks"
	}
	dp, dq := percentChanges(weeks)
	if len(dp) < MinChangeRows {
		return models.ElasticityRecord{}, "min_change_rows"
	}
	if stat.Variance(dp, nil) == 0 {
		return models.ElasticityRecord{}, "zero_price_variance"
	}
	for i := range dp {
		if math.Abs(dp[i]) > MaxPriceChange || math.Abs(dq[i]) > MaxQuantityChange {
			return models.ElasticityRecord{}, "change_outlier"
		}
	}

	f := fitLine(dp, dq)
	if !finite(f.slope) {
		return models.ElasticityRecord{}, "non_finite_fit"
	}
	if math.Abs(f.slope) > MaxCoefficient {
		return models.ElasticityRecord{}, "coefficient_outlier"
	}

	var sum, menuPrice float64
	for _, o := range obs {
		sum += o.Price
		if o.MenuPrice > 0 {
			menuPrice = o.MenuPrice
		}
	}
	avgPrice := sum / float64(len(obs))
	reference := menuPrice
	if reference == 0 {
		reference = avgPrice
	}
	if limit, capped := categoryCap(name, reference); capped && math.Abs(f.slope) > limit {
		return models.ElasticityRecord{}, "category_cap"
	}

	return models.ElasticityRecord{
		ItemName:       name,
		Coefficient:    f.slope,
		Intercept:      f.intercept,
		RSquared:       f.rSquared,
		PValue:         f.pValue,
		ElasticityType: classify(f.slope),
		Confidence:     grade(f.rSquared, f.pValue),
		SampleSize:     len(obs),
		WeeksAnalyzed:  f.n,
		AvgPrice:       avgPrice,
	}, ""
}

// categoryCap returns the plausibility limit on |coefficient| for an item,
// checked in order alcohol, staple, premium.
func categoryCap(name string, price float64) (float64, bool) {
	switch {
	case catalog.IsAlcohol(name):
		return AlcoholCap, true
	case catalog.IsStaple(name):
		return StapleCap, true
	case price > PremiumPrice:
		return PremiumCap, true
	}
	return 0, false
}

func classify(coefficient float64) models.ElasticityType {
	switch abs := math.Abs(coefficient); {
	case abs > 1:
		return models.ElasticityElastic
	case abs > 0.5:
		return models.ElasticityModeratelyElastic
	default:
		return models.ElasticityInelastic
	}
}

func grade(rSquared, pValue float64) models.Confidence {
	switch {
	case rSquared > 0.7 && pValue < 0.05:
		return models.ConfidenceHigh
	case rSquared > 0.4 && pValue < 0.1:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
