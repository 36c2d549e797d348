package models

// ElasticityRecord is a fitted price/quantity elasticity for one catalog item.
type ElasticityRecord struct {
	ItemName       string         `json:"item_name"`
	Coefficient    float64        `json:"coefficient"`
	Intercept      float64        `json:"intercept"`
	RSquared       float64        `json:"r_squared"`
	PValue         float64        `json:"p_value"`
	ElasticityType ElasticityType `json:"elasticity_type"`
	Confidence     Confidence     `json:"confidence"`
	SampleSize     int            `json:"sample_size"`
	WeeksAnalyzed  int            `json:"weeks_analyzed"`
	AvgPrice       float64        `json:"avg_price"`
}
