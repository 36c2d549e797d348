package models

// ItemPerformance is the observed current state an optimizer starts from.
type ItemPerformance struct {
	ItemName  string  `json:"item_name"`
	AvgPrice  float64 `json:"avg_price"`
	UnitsSold float64 `json:"units_sold"`
	Verified  bool    `json:"verified"`
}

type PricingRecommendation struct {
	ItemName         string        `json:"item_name"`
	CurrentPrice     float64       `json:"current_price"`
	RecommendedPrice float64       `json:"recommended_price"`
	PriceChangePct   float64       `json:"price_change_pct"`
	CurrentDemand    float64       `json:"current_demand"`
	PredictedDemand  float64       `json:"predicted_demand"`
	DemandChangePct  float64       `json:"demand_change_pct"`
	CurrentRevenue   float64       `json:"current_revenue"`
	PredictedRevenue float64       `json:"predicted_revenue"`
	RevenueChange    float64       `json:"revenue_change"`
	RevenueChangePct float64       `json:"revenue_change_pct"`
	Elasticity       float64       `json:"elasticity"`
	Confidence       Confidence    `json:"confidence"`
	Action           PricingAction `json:"action"`
	RiskFactors      []string      `json:"risk_factors"`
	Priority         Priority      `json:"priority"`
}
