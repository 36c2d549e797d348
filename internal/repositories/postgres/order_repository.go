package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) BulkCreate(ctx context.Context, restaurantID int64, orders []models.Order) (int, error) {
	query := `
        INSERT INTO orders (
            restaurant_id, external_order_id, total_amount, order_datetime,
            items_text, order_type, payment_type
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (restaurant_id, external_order_id) DO NOTHING
    `
	batch := &pgx.Batch{}
	for _, o := range orders {
		batch.Queue(query, restaurantID, o.ID, toNumeric(o.TotalAmount), o.Timestamp,
			o.ItemsText, nullable(o.OrderType), nullable(o.PaymentType))
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	for range orders {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, err
		}
		inserted += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, err
	}
	return inserted, tx.Commit(ctx)
}

func (r *OrderRepository) GetByTimeWindow(ctx context.Context, restaurantID int64, from, to time.Time) ([]models.Order, error) {
	query := `
        SELECT external_order_id, total_amount, order_datetime, items_text,
               COALESCE(order_type, ''), COALESCE(payment_type, '')
        FROM orders
        WHERE restaurant_id = $1 AND order_datetime >= $2 AND order_datetime < $3
        ORDER BY order_datetime, order_id
    `
	rows, err := r.pool.Query(ctx, query, restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		var total pgtype.Numeric
		if err := rows.Scan(&o.ID, &total, &o.Timestamp, &o.ItemsText, &o.OrderType, &o.PaymentType); err != nil {
			return nil, err
		}
		o.TotalAmount = fromNumeric(total)
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Count(ctx context.Context, restaurantID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE restaurant_id = $1", restaurantID).Scan(&count)
	return count, err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
