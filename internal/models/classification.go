package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemMetrics aggregates allocations of one item over the analysed window.
type ItemMetrics struct {
	ItemName          string          `json:"item_name"`
	Category          string          `json:"category"`
	UniqueOrders      int             `json:"unique_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AvgAllocatedPrice decimal.Decimal `json:"avg_allocated_price"`
	TotalQuantity     int             `json:"total_quantity"`
	MenuPrice         decimal.Decimal `json:"menu_price"`
	HasMenuPrice      bool            `json:"has_menu_price"`
	FirstSale         time.Time       `json:"first_sale"`
	LastSale          time.Time       `json:"last_sale"`
	SaleFrequency     float64         `json:"sale_frequency"`
}

type Classification struct {
	ItemName             string          `json:"item_name"`
	Quadrant             Quadrant        `json:"quadrant"`
	TotalQuantity        int             `json:"total_quantity"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	PopularityPercentile float64         `json:"popularity_percentile"`
	RevenuePercentile    float64         `json:"revenue_percentile"`
	Recommendation       string          `json:"recommendation"`
}
