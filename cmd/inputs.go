package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schollz/progressbar/v3"
	"github.com/siddharthshetty008/restoAnalyze/internal/catalog"
	"github.com/siddharthshetty008/restoAnalyze/internal/ingest"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/siddharthshetty008/restoAnalyze/internal/repositories"
	"github.com/siddharthshetty008/restoAnalyze/internal/repositories/postgres"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const windowLayout = "2006-01-02"

type store struct {
	pool        *pgxpool.Pool
	restaurants repositories.RestaurantRepository
	menuItems   repositories.MenuItemRepository
	orders      repositories.OrderRepository
	allocations repositories.AllocationRepository
}

func openStore(ctx context.Context, cfg *models.Config) (*store, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &store{
		pool:        pool,
		restaurants: postgres.NewRestaurantRepository(pool),
		menuItems:   postgres.NewMenuItemRepository(pool),
		orders:      postgres.NewOrderRepository(pool),
		allocations: postgres.NewAllocationRepository(pool),
	}, nil
}

func (s *store) Close() { s.pool.Close() }

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "First order date to read from the database (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Day after the last order date to read (YYYY-MM-DD)")
}

// window parses --from and --to. Missing bounds read the whole history.
func window(cmd *cobra.Command) (time.Time, time.Time, error) {
	from, to := time.Unix(0, 0).UTC(), time.Now().UTC().AddDate(0, 0, 1)
	if s, _ := cmd.Flags().GetString("from"); s != "" {
		t, err := time.Parse(windowLayout, s)
		if err != nil {
			return from, to, fmt.Errorf("invalid --from: %w", err)
		}
		from = t
	}
	if s, _ := cmd.Flags().GetString("to"); s != "" {
		t, err := time.Parse(windowLayout, s)
		if err != nil {
			return from, to, fmt.Errorf("invalid --to: %w", err)
		}
		to = t
	}
	if !from.Before(to) {
		return from, to, errors.New("--from must be before --to")
	}
	return from, to, nil
}

// loadInputs reads the catalog and orders from the database when configured,
// from the CSV exports otherwise. st is nil in the CSV case.
func loadInputs(ctx context.Context, cmd *cobra.Command, cfg *models.Config, logger logrus.FieldLogger) (*catalog.Catalog, []models.Order, *store, error) {
	if !cfg.UseDatabase {
		if cfg.MenuFile == "" || cfg.OrdersFile == "" {
			return nil, nil, nil, errors.New("menu_file and orders_file are required without use_database")
		}
		loader := ingest.NewLoader(logger.WithField("module", "ingest"))
		c, err := loader.LoadCatalog(cfg.MenuFile, cfg.AddonsFile)
		if err != nil {
			return nil, nil, nil, err
		}
		orders, err := loader.LoadOrders(cfg.OrdersFile)
		if err != nil {
			return nil, nil, nil, err
		}
		return c, orders, nil, nil
	}

	from, to, err := window(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	items, err := st.menuItems.GetActive(ctx, cfg.RestaurantID)
	if err != nil {
		st.Close()
		return nil, nil, nil, fmt.Errorf("loading menu items: %w", err)
	}
	orders, err := st.orders.GetByTimeWindow(ctx, cfg.RestaurantID, from, to)
	if err != nil {
		st.Close()
		return nil, nil, nil, fmt.Errorf("loading orders: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"restaurant_id": cfg.RestaurantID,
		"menu_items":    len(items),
		"orders":        len(orders),
	}).Info("loaded inputs from database")
	return catalog.Build(catalog.EntriesFromItems(items)), orders, st, nil
}

func newBar(max int, description string) (*progressbar.ProgressBar, func()) {
	bar := progressbar.Default(int64(max), description)
	return bar, func() { _ = bar.Add(1) }
}
