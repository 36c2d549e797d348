package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a point-of-sale order as produced by ingestion. The TotalAmount
// already has tax, discount and rounding baked in.
type Order struct {
	ID          string          `json:"id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Timestamp   time.Time       `json:"timestamp"`
	ItemsText   string          `json:"items_text"`
	OrderType   string          `json:"order_type,omitempty"`
	PaymentType string          `json:"payment_type,omitempty"`
}

// OrderAllocation pairs an order with its per-item allocations.
type OrderAllocation struct {
	Order       Order        `json:"order"`
	Allocations []Allocation `json:"allocations"`
}

type OrderMetrics struct {
	TotalOrders      int
	OrdersWithPrices int
	TotalItems       int
	VerifiedItems    int
	TotalRevenue     decimal.Decimal
}

// VerificationRate is the share of allocated items with a HIGH or MEDIUM match, in percent.
func (m OrderMetrics) VerificationRate() float64 {
	if m.TotalItems == 0 {
		return 0
	}
	return float64(m.VerifiedItems) / float64(m.TotalItems) * 100
}
