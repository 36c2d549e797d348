package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RestaurantRepository struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

// Ensure creates the restaurant row if it does not exist yet.
func (r *RestaurantRepository) Ensure(ctx context.Context, restaurantID int64, name string) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO restaurants (restaurant_id, name)
        VALUES ($1, $2)
        ON CONFLICT (restaurant_id) DO NOTHING
    `, restaurantID, name)
	return err
}

func (r *RestaurantRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM restaurants").Scan(&count)
	return count, err
}
