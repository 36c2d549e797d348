package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

type MenuItemRepository struct {
	pool *pgxpool.Pool
}

func NewMenuItemRepository(pool *pgxpool.Pool) *MenuItemRepository {
	return &MenuItemRepository{pool: pool}
}

func (r *MenuItemRepository) BulkUpsert(ctx context.Context, restaurantID int64, items []*models.MenuItem) (int, error) {
	query := `
        INSERT INTO menu_items (restaurant_id, name, category, base_price, is_active)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (restaurant_id, name)
        DO UPDATE SET base_price = EXCLUDED.base_price
    `
	batch := &pgx.Batch{}
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = "General"
		}
		batch.Queue(query, restaurantID, item.Name, category, toNumeric(item.Price), item.Active)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	br := tx.SendBatch(ctx, batch)
	for i := range items {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return 0, fmt.Errorf("upserting menu item %q: %w", items[i].Name, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, err
	}
	return len(items), tx.Commit(ctx)
}

func (r *MenuItemRepository) GetActive(ctx context.Context, restaurantID int64) ([]*models.MenuItem, error) {
	query := `
        SELECT item_id, name, category, base_price, is_active
        FROM menu_items
        WHERE restaurant_id = $1 AND is_active AND base_price > 0
        ORDER BY item_id
    `
	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item := &models.MenuItem{}
		var price pgtype.Numeric
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &price, &item.Active); err != nil {
			return nil, err
		}
		item.Price = fromNumeric(price)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *MenuItemRepository) Count(ctx context.Context, restaurantID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM menu_items WHERE restaurant_id = $1", restaurantID).Scan(&count)
	return count, err
}

func (r *MenuItemRepository) DeleteAll(ctx context.Context, restaurantID int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM menu_items WHERE restaurant_id = $1", restaurantID)
	return err
}
