package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

var allocationColumns = []string{
	"order_id", "item_name", "menu_item_id", "quantity", "allocated_price",
	"menu_price", "price_confidence", "match_score", "allocation_method",
}

type AllocationRepository struct {
	pool *pgxpool.Pool
}

func NewAllocationRepository(pool *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{pool: pool}
}

// allocationRows flattens results into COPY rows. Orders missing from ids
// are skipped.
func allocationRows(results []models.OrderAllocation, ids map[string]int64) [][]interface{} {
	var rows [][]interface{}
	for _, r := range results {
		orderID, ok := ids[r.Order.ID]
		if !ok {
			continue
		}
		for _, a := range r.Allocations {
			var menuItemID *int64
			var menuPrice interface{}
			if a.Verified() {
				menuPrice = toNumeric(a.MatchedItem.Price)
				if a.MatchedItem.ID != 0 {
					id := a.MatchedItem.ID
					menuItemID = &id
				}
			}
			rows = append(rows, []interface{}{
				orderID,
				a.ItemName,
				menuItemID,
				1,
				toNumeric(a.AllocatedPrice),
				menuPrice,
				string(a.Confidence),
				a.MatchScore,
				string(a.Method),
			})
		}
	}
	return rows
}

func (r *AllocationRepository) orderIDs(ctx context.Context, tx pgx.Tx, restaurantID int64, results []models.OrderAllocation) (map[string]int64, error) {
	external := make([]string, len(results))
	for i, res := range results {
		external[i] = res.Order.ID
	}
	rows, err := tx.Query(ctx, `
        SELECT external_order_id, order_id FROM orders
        WHERE restaurant_id = $1 AND external_order_id = ANY($2)
    `, restaurantID, external)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]int64, len(results))
	for rows.Next() {
		var ext string
		var id int64
		if err := rows.Scan(&ext, &id); err != nil {
			return nil, err
		}
		ids[ext] = id
	}
	return ids, rows.Err()
}

func (r *AllocationRepository) Replace(ctx context.Context, restaurantID int64, results []models.OrderAllocation) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	ids, err := r.orderIDs(ctx, tx, restaurantID, results)
	if err != nil {
		return 0, fmt.Errorf("resolving order ids: %w", err)
	}
	internal := make([]int64, 0, len(ids))
	for _, id := range ids {
		internal = append(internal, id)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM order_items WHERE order_id = ANY($1)", internal); err != nil {
		return 0, fmt.Errorf("clearing allocations: %w", err)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"order_items"}, allocationColumns,
		pgx.CopyFromRows(allocationRows(results, ids)))
	if err != nil {
		return 0, fmt.Errorf("copying allocations: %w", err)
	}
	return n, tx.Commit(ctx)
}
