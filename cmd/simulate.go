package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/siddharthshetty008/restoAnalyze/internal/factories"
	"github.com/siddharthshetty008/restoAnalyze/internal/ingest"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate a synthetic menu and order history with price variation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if err := applySimulationFlags(cmd, &cfg.Simulation); err != nil {
			return err
		}
		sim := cfg.Simulation
		if !sim.StartDate.Before(sim.EndDate) {
			return fmt.Errorf("simulation start %s is not before end %s", sim.StartDate, sim.EndDate)
		}

		mf := factories.NewMenuItemFactory(sim.Seed)
		menu := mf.CreateMenu(sim.MenuSize)

		days := int(sim.EndDate.Sub(sim.StartDate).Hours()/24) + 1
		bar, tick := newBar(days, "simulating")
		orders := factories.NewOrderFactory(menu, sim).CreateOrders(tick)
		_ = bar.Finish()

		dir, _ := cmd.Flags().GetString("dir")
		menuPath, ordersPath := filepath.Join(dir, "menu.csv"), filepath.Join(dir, "orders.csv")
		if err := writeCSV(menuPath, func(f *os.File) error { return ingest.WriteMenu(f, menu) }); err != nil {
			return err
		}
		if err := writeCSV(ordersPath, func(f *os.File) error { return ingest.WriteOrders(f, orders) }); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"menu_items":  len(menu),
			"orders":      len(orders),
			"menu_file":   menuPath,
			"orders_file": ordersPath,
		}).Info("simulation written")

		if load, _ := cmd.Flags().GetBool("load"); load {
			return loadSimulation(cmd.Context(), cfg, mf.RestaurantName(), menu, orders, logger)
		}
		return nil
	},
}

func init() {
	flags := simulateCmd.Flags()
	flags.Int64("seed", 42, "Random seed")
	flags.String("start-date", "", "First simulated day (RFC3339)")
	flags.String("end-date", "", "End of the simulated range (RFC3339)")
	flags.Int("orders-per-day", 40, "Average orders per day")
	flags.Int("max-items-per-order", 4, "Maximum items per order")
	flags.Int("menu-size", 30, "Number of menu items")
	flags.String("dir", ".", "Directory for menu.csv and orders.csv")
	flags.Bool("load", false, "Also load the generated data into the database")
	rootCmd.AddCommand(simulateCmd)
}

// applySimulationFlags overrides config values with flags given explicitly.
func applySimulationFlags(cmd *cobra.Command, sim *models.SimulationConfig) error {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		sim.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("orders-per-day") {
		sim.OrdersPerDay, _ = flags.GetInt("orders-per-day")
	}
	if flags.Changed("max-items-per-order") {
		sim.MaxItemsPerOrder, _ = flags.GetInt("max-items-per-order")
	}
	if flags.Changed("menu-size") {
		sim.MenuSize, _ = flags.GetInt("menu-size")
	}
	for flag, dst := range map[string]*time.Time{"start-date": &sim.StartDate, "end-date": &sim.EndDate} {
		if !flags.Changed(flag) {
			continue
		}
		s, _ := flags.GetString(flag)
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", flag, err)
		}
		*dst = t
	}
	return nil
}

func writeCSV(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func loadSimulation(ctx context.Context, cfg *models.Config, name string, menu []models.MenuItem, orders []models.Order, logger logrus.FieldLogger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	if err := st.restaurants.Ensure(ctx, cfg.RestaurantID, name); err != nil {
		return fmt.Errorf("creating restaurant: %w", err)
	}
	items := make([]*models.MenuItem, len(menu))
	for i := range menu {
		items[i] = &menu[i]
	}
	upserted, err := st.menuItems.BulkUpsert(ctx, cfg.RestaurantID, items)
	if err != nil {
		return fmt.Errorf("storing menu: %w", err)
	}
	created, err := st.orders.BulkCreate(ctx, cfg.RestaurantID, orders)
	if err != nil {
		return fmt.Errorf("storing orders: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"restaurant_id": cfg.RestaurantID,
		"menu_items":    upserted,
		"orders":        created,
	}).Info("simulation loaded")
	return nil
}
