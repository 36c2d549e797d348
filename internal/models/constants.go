package models

// Confidence grades how much a name match (or an elasticity fit) can be trusted.
type Confidence string

const (
	ConfidenceHigh      Confidence = "HIGH"
	ConfidenceMedium    Confidence = "MEDIUM"
	ConfidenceLow       Confidence = "LOW"
	ConfidenceEstimated Confidence = "ESTIMATED"
)

func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceEstimated:
		return true
	}
	return false
}

// Trusted is true for HIGH and MEDIUM.
func (c Confidence) Trusted() bool {
	return c == ConfidenceHigh || c == ConfidenceMedium
}

type AllocationMethod string

const (
	MethodMenuPrice         AllocationMethod = "MENU_PRICE"
	MethodProportional      AllocationMethod = "PROPORTIONAL"
	MethodAdjustedMenuPrice AllocationMethod = "ADJUSTED_MENU_PRICE"
	MethodEstimated         AllocationMethod = "ESTIMATED"
)

func (m AllocationMethod) Valid() bool {
	switch m {
	case MethodMenuPrice, MethodProportional, MethodAdjustedMenuPrice, MethodEstimated:
		return true
	}
	return false
}

type ElasticityType string

const (
	ElasticityElastic           ElasticityType = "ELASTIC"
	ElasticityModeratelyElastic ElasticityType = "MODERATELY_ELASTIC"
	ElasticityInelastic         ElasticityType = "INELASTIC"
)

type PricingAction string

const (
	ActionMaintain PricingAction = "MAINTAIN"
	ActionIncrease PricingAction = "INCREASE"
	ActionDecrease PricingAction = "DECREASE"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

type Quadrant string

const (
	QuadrantStar      Quadrant = "STAR"
	QuadrantPlowhorse Quadrant = "PLOWHORSE"
	QuadrantPuzzle    Quadrant = "PUZZLE"
	QuadrantDog       Quadrant = "DOG"
)

// Quadrants lists every quadrant in reporting order.
var Quadrants = []Quadrant{QuadrantStar, QuadrantPlowhorse, QuadrantPuzzle, QuadrantDog}

const (
	RiskLargePriceChange = "large_price_change"
	RiskMediumConfidence = "medium_confidence"
	RiskDemandSwing      = "demand_swing"
)

const (
	FilterAll        = "all"
	FilterAlcohol    = "alcohol"
	FilterNonAlcohol = "non_alcohol"
)

const (
	TopicOrderAllocations       = "order_allocations"
	TopicElasticityResults      = "elasticity_results"
	TopicPricingRecommendations = "pricing_recommendations"
	TopicBCGClassifications     = "bcg_classifications"
	TopicMonthlyTrends          = "monthly_trends"
	TopicServiceTypes           = "service_type_analysis"
)
