package models

import "github.com/shopspring/decimal"

// Allocation is the share of an order total assigned to one parsed item name.
type Allocation struct {
	ItemName       string           `json:"item_name"`
	MatchedItem    *MenuItem        `json:"matched_item,omitempty"`
	Confidence     Confidence       `json:"confidence"`
	MatchScore     float64          `json:"match_score"`
	AllocatedPrice decimal.Decimal  `json:"allocated_price"`
	Method         AllocationMethod `json:"method"`
}

// Verified reports whether the allocation is backed by a trusted catalog price.
func (a Allocation) Verified() bool {
	return a.MatchedItem != nil && a.Confidence.Trusted()
}

// CanonicalName is the matched catalog name for a verified allocation, else
// the raw name. Low-confidence matches never count toward a catalog item.
func (a Allocation) CanonicalName() string {
	if a.Verified() {
		return a.MatchedItem.Name
	}
	return a.ItemName
}
