// Package repositories declares the storage operations the analysis reads
// from and writes to.
package repositories

import (
	"context"
	"time"

	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

type RestaurantRepository interface {
	Ensure(ctx context.Context, restaurantID int64, name string) error
	Count(ctx context.Context) (int, error)
}

type MenuItemRepository interface {
	// BulkUpsert inserts items, updating the price of names already present.
	BulkUpsert(ctx context.Context, restaurantID int64, items []*models.MenuItem) (int, error)
	// GetActive returns active items with a positive price, in insertion order.
	GetActive(ctx context.Context, restaurantID int64) ([]*models.MenuItem, error)
	Count(ctx context.Context, restaurantID int64) (int, error)
	DeleteAll(ctx context.Context, restaurantID int64) error
}

type OrderRepository interface {
	// BulkCreate skips orders whose external id is already stored.
	BulkCreate(ctx context.Context, restaurantID int64, orders []models.Order) (int, error)
	// GetByTimeWindow returns orders with from <= timestamp < to, oldest first.
	GetByTimeWindow(ctx context.Context, restaurantID int64, from, to time.Time) ([]models.Order, error)
	Count(ctx context.Context, restaurantID int64) (int, error)
}

type AllocationRepository interface {
	// Replace deletes any stored allocations of the given orders and copies in
	// the new ones.
	Replace(ctx context.Context, restaurantID int64, results []models.OrderAllocation) (int64, error)
}
