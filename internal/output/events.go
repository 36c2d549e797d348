package output

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/siddharthshetty008/restoAnalyze/internal/analysis"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

var ErrUnknownTopic = errors.New("unknown topic")

// Every record carries a unix Timestamp, which drives file partitioning, and
// the RunID of the analysis that produced it.

// AllocationEvent is one item line of an allocated order.
type AllocationEvent struct {
	Timestamp      int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	RunID          string  `json:"runId" parquet:"name=runId,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderID        string  `json:"orderId" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Position       int32   `json:"position" parquet:"name=position,type=INT32"`
	ItemName       string  `json:"itemName" parquet:"name=itemName,type=BYTE_ARRAY,convertedtype=UTF8"`
	MatchedItem    string  `json:"matchedItem" parquet:"name=matchedItem,type=BYTE_ARRAY,convertedtype=UTF8"`
	MenuPrice      float64 `json:"menuPrice" parquet:"name=menuPrice,type=DOUBLE"`
	Confidence     string  `json:"confidence" parquet:"name=confidence,type=BYTE_ARRAY,convertedtype=UTF8"`
	MatchScore     float64 `json:"matchScore" parquet:"name=matchScore,type=DOUBLE"`
	AllocatedPrice float64 `json:"allocatedPrice" parquet:"name=allocatedPrice,type=DOUBLE"`
	Method         string  `json:"method" parquet:"name=method,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderTotal     float64 `json:"orderTotal" parquet:"name=orderTotal,type=DOUBLE"`
}

type ElasticityEvent struct {
	Timestamp      int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	RunID          string  `json:"runId" parquet:"name=runId,type=BYTE_ARRAY,convertedtype=UTF8"`
	ItemName       string  `json:"itemName" parquet:"name=itemName,type=BYTE_ARRAY,convertedtype=UTF8"`
	Coefficient    float64 `json:"coefficient" parquet:"name=coefficient,type=DOUBLE"`
	Intercept      float64 `json:"intercept" parquet:"name=intercept,type=DOUBLE"`
	RSquared       float64 `json:"rSquared" parquet:"name=rSquared,type=DOUBLE"`
	PValue         float64 `json:"pValue" parquet:"name=pValue,type=DOUBLE"`
	ElasticityType string  `json:"elasticityType" parquet:"name=elasticityType,type=BYTE_ARRAY,convertedtype=UTF8"`
	Confidence     string  `json:"confidence" parquet:"name=confidence,type=BYTE_ARRAY,convertedtype=UTF8"`
	SampleSize     int64   `json:"sampleSize" parquet:"name=sampleSize,type=INT64"`
	WeeksAnalyzed  int64   `json:"weeksAnalyzed" parquet:"name=weeksAnalyzed,type=INT64"`
	AvgPrice       float64 `json:"avgPrice" parquet:"name=avgPrice,type=DOUBLE"`
}

type PricingEvent struct {
	Timestamp        int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	RunID            string  `json:"runId" parquet:"name=runId,type=BYTE_ARRAY,convertedtype=UTF8"`
	ItemName         string  `json:"itemName" parquet:"name=itemName,type=BYTE_ARRAY,convertedtype=UTF8"`
	CurrentPrice     float64 `json:"currentPrice" parquet:"name=currentPrice,type=DOUBLE"`
	RecommendedPrice float64 `json:"recommendedPrice" parquet:"name=recommendedPrice,type=DOUBLE"`
	PriceChangePct   float64 `json:"priceChangePct" parquet:"name=priceChangePct,type=DOUBLE"`
	CurrentDemand    float64 `json:"currentDemand" parquet:"name=currentDemand,type=DOUBLE"`
	PredictedDemand  float64 `json:"predictedDemand" parquet:"name=predictedDemand,type=DOUBLE"`
	CurrentRevenue   float64 `json:"currentRevenue" parquet:"name=currentRevenue,type=DOUBLE"`
	PredictedRevenue float64 `json:"predictedRevenue" parquet:"name=predictedRevenue,type=DOUBLE"`
	RevenueChange    float64 `json:"revenueChange" parquet:"name=revenueChange,type=DOUBLE"`
	Elasticity       float64 `json:"elasticity" parquet:"name=elasticity,type=DOUBLE"`
	Confidence       string  `json:"confidence" parquet:"name=confidence,type=BYTE_ARRAY,convertedtype=UTF8"`
	Action           string  `json:"action" parquet:"name=action,type=BYTE_ARRAY,convertedtype=UTF8"`
	RiskFactors      string  `json:"riskFactors" parquet:"name=riskFactors,type=BYTE_ARRAY,convertedtype=UTF8"`
	Priority         string  `json:"priority" parquet:"name=priority,type=BYTE_ARRAY,convertedtype=UTF8"`
}

type ClassificationEvent struct {
	Timestamp            int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	RunID                string  `json:"runId" parquet:"name=runId,type=BYTE_ARRAY,convertedtype=UTF8"`
	ItemName             string  `json:"itemName" parquet:"name=itemName,type=BYTE_ARRAY,convertedtype=UTF8"`
	Quadrant             string  `json:"quadrant" parquet:"name=quadrant,type=BYTE_ARRAY,convertedtype=UTF8"`
	TotalQuantity        int64   `json:"totalQuantity" parquet:"name=totalQuantity,type=INT64"`
	TotalRevenue         float64 `json:"totalRevenue" parquet:"name=totalRevenue,type=DOUBLE"`
	PopularityPercentile float64 `json:"popularityPercentile" parquet:"name=popularityPercentile,type=DOUBLE"`
	RevenuePercentile    float64 `json:"revenuePercentile" parquet:"name=revenuePercentile,type=DOUBLE"`
	Recommendation       string  `json:"recommendation" parquet:"name=recommendation,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// MonthlyTrendEvent is one service type in one month. Its timestamp is the
// first instant of the month in UTC.
type MonthlyTrendEvent struct {
	Timestamp        int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	RunID            string  `json:"runId" parquet:"name=runId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Month            string  `json:"month" parquet:"name=month,type=BYTE_ARRAY,convertedtype=UTF8"`
	ServiceType      string  `json:"serviceType" parquet:"name=serviceType,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderCount       int64   `json:"orderCount" parquet:"name=orderCount,type=INT64"`
	Revenue          float64 `json:"revenue" parquet:"name=revenue,type=DOUBLE"`
	AvgOrderValue    float64 `json:"avgOrderValue" parquet:"name=avgOrderValue,type=DOUBLE"`
	ActiveDays       int64   `json:"activeDays" parquet:"name=activeDays,type=INT64"`
	HasPrevious      bool    `json:"hasPrevious" parquet:"name=hasPrevious,type=BOOLEAN"`
	OrderGrowthPct   float64 `json:"orderGrowthPct" parquet:"name=orderGrowthPct,type=DOUBLE"`
	RevenueGrowthPct float64 `json:"revenueGrowthPct" parquet:"name=revenueGrowthPct,type=DOUBLE"`
}

type ServiceTypeEvent struct {
	Timestamp     int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	RunID         string  `json:"runId" parquet:"name=runId,type=BYTE_ARRAY,convertedtype=UTF8"`
	ServiceType   string  `json:"serviceType" parquet:"name=serviceType,type=BYTE_ARRAY,convertedtype=UTF8"`
	TotalOrders   int64   `json:"totalOrders" parquet:"name=totalOrders,type=INT64"`
	TotalRevenue  float64 `json:"totalRevenue" parquet:"name=totalRevenue,type=DOUBLE"`
	AvgOrderValue float64 `json:"avgOrderValue" parquet:"name=avgOrderValue,type=DOUBLE"`
	FirstOrder    int64   `json:"firstOrder" parquet:"name=firstOrder,type=INT64"`
	LastOrder     int64   `json:"lastOrder" parquet:"name=lastOrder,type=INT64"`
	LunchOrders   int64   `json:"lunchOrders" parquet:"name=lunchOrders,type=INT64"`
	DinnerOrders  int64   `json:"dinnerOrders" parquet:"name=dinnerOrders,type=INT64"`
	PeakHours     string  `json:"peakHours" parquet:"name=peakHours,type=BYTE_ARRAY,convertedtype=UTF8"`
	HourlyOrders  string  `json:"hourlyOrders" parquet:"name=hourlyOrders,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// newEvent returns a pointer to an empty record for topic.
func newEvent(topic string) (any, error) {
	switch topic {
	case models.TopicOrderAllocations:
		return new(AllocationEvent), nil
	case models.TopicElasticityResults:
		return new(ElasticityEvent), nil
	case models.TopicPricingRecommendations:
		return new(PricingEvent), nil
	case models.TopicBCGClassifications:
		return new(ClassificationEvent), nil
	case models.TopicMonthlyTrends:
		return new(MonthlyTrendEvent), nil
	case models.TopicServiceTypes:
		return new(ServiceTypeEvent), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
}

func AllocationEvents(runID string, r models.OrderAllocation) []AllocationEvent {
	out := make([]AllocationEvent, len(r.Allocations))
	for i, a := range r.Allocations {
		ev := AllocationEvent{
			Timestamp:      r.Order.Timestamp.Unix(),
			RunID:          runID,
			OrderID:        r.Order.ID,
			Position:       int32(i),
			ItemName:       a.ItemName,
			Confidence:     string(a.Confidence),
			MatchScore:     a.MatchScore,
			AllocatedPrice: a.AllocatedPrice.InexactFloat64(),
			Method:         string(a.Method),
			OrderTotal:     r.Order.TotalAmount.InexactFloat64(),
		}
		if a.MatchedItem != nil {
			ev.MatchedItem = a.MatchedItem.Name
			ev.MenuPrice = a.MatchedItem.Price.InexactFloat64()
		}
		out[i] = ev
	}
	return out
}

func NewElasticityEvent(runID string, at time.Time, rec models.ElasticityRecord) ElasticityEvent {
	return ElasticityEvent{
		Timestamp:      at.Unix(),
		RunID:          runID,
		ItemName:       rec.ItemName,
		Coefficient:    rec.Coefficient,
		Intercept:      rec.Intercept,
		RSquared:       rec.RSquared,
		PValue:         rec.PValue,
		ElasticityType: string(rec.ElasticityType),
		Confidence:     string(rec.Confidence),
		SampleSize:     int64(rec.SampleSize),
		WeeksAnalyzed:  int64(rec.WeeksAnalyzed),
		AvgPrice:       rec.AvgPrice,
	}
}

func NewPricingEvent(runID string, at time.Time, rec models.PricingRecommendation) PricingEvent {
	return PricingEvent{
		Timestamp:        at.Unix(),
		RunID:            runID,
		ItemName:         rec.ItemName,
		CurrentPrice:     rec.CurrentPrice,
		RecommendedPrice: rec.RecommendedPrice,
		PriceChangePct:   rec.PriceChangePct,
		CurrentDemand:    rec.CurrentDemand,
		PredictedDemand:  rec.PredictedDemand,
		CurrentRevenue:   rec.CurrentRevenue,
		PredictedRevenue: rec.PredictedRevenue,
		RevenueChange:    rec.RevenueChange,
		Elasticity:       rec.Elasticity,
		Confidence:       string(rec.Confidence),
		Action:           string(rec.Action),
		RiskFactors:      strings.Join(rec.RiskFactors, ";"),
		Priority:         string(rec.Priority),
	}
}

func NewClassificationEvent(runID string, at time.Time, c models.Classification) ClassificationEvent {
	return ClassificationEvent{
		Timestamp:            at.Unix(),
		RunID:                runID,
		ItemName:             c.ItemName,
		Quadrant:             string(c.Quadrant),
		TotalQuantity:        int64(c.TotalQuantity),
		TotalRevenue:         c.TotalRevenue.InexactFloat64(),
		PopularityPercentile: c.PopularityPercentile,
		RevenuePercentile:    c.RevenuePercentile,
		Recommendation:       c.Recommendation,
	}
}

func NewMonthlyTrendEvent(runID string, row analysis.ServiceMonth) MonthlyTrendEvent {
	ev := MonthlyTrendEvent{
		RunID:            runID,
		Month:            row.Month,
		ServiceType:      row.ServiceType,
		OrderCount:       int64(row.OrderCount),
		Revenue:          row.Revenue.InexactFloat64(),
		AvgOrderValue:    row.AvgOrderValue.InexactFloat64(),
		ActiveDays:       int64(row.ActiveDays),
		HasPrevious:      row.HasPrevious,
		OrderGrowthPct:   row.OrderGrowthPct,
		RevenueGrowthPct: row.RevenueGrowthPct,
	}
	if month, err := time.Parse("2006-01", row.Month); err == nil {
		ev.Timestamp = month.Unix()
	}
	return ev
}

// NewServiceTypeEvent flattens the hourly distribution to "hour=orders" pairs
// joined with ";".
func NewServiceTypeEvent(runID string, at time.Time, s analysis.ServiceTypeStats) ServiceTypeEvent {
	hourly := make([]string, len(s.Hourly))
	for i, h := range s.Hourly {
		hourly[i] = fmt.Sprintf("%02d=%d", h.Hour, h.Orders)
	}
	return ServiceTypeEvent{
		Timestamp:     at.Unix(),
		RunID:         runID,
		ServiceType:   s.ServiceType,
		TotalOrders:   int64(s.TotalOrders),
		TotalRevenue:  s.TotalRevenue.InexactFloat64(),
		AvgOrderValue: s.AvgOrderValue.InexactFloat64(),
		FirstOrder:    s.FirstOrder.Unix(),
		LastOrder:     s.LastOrder.Unix(),
		LunchOrders:   int64(s.LunchOrders),
		DinnerOrders:  int64(s.DinnerOrders),
		PeakHours:     strings.Join(s.PeakHours, ";"),
		HourlyOrders:  strings.Join(hourly, ";"),
	}
}
