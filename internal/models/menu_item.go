package models

import "github.com/shopspring/decimal"

// MenuItem is a canonical priced catalog entry. Identity is Name within a catalog.
type MenuItem struct {
	ID        int64           `json:"id,omitempty"`
	Name      string          `json:"name"`
	CleanName string          `json:"clean_name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Active    bool            `json:"active"`
}
