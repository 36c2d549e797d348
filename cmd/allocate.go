package cmd

import (
	"context"
	"fmt"

	"github.com/lucsky/cuid"
	"github.com/siddharthshetty008/restoAnalyze/internal/allocator"
	"github.com/siddharthshetty008/restoAnalyze/internal/output"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Split every order total across its items",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		ctx := context.Background()

		c, orders, st, err := loadInputs(ctx, cmd, cfg, logger)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		bar, tick := newBar(len(orders), "allocating")
		a := allocator.New(c, logger.WithField("module", "allocator"))
		batch := a.AllocateOrders(orders, cfg.Workers, tick)
		_ = bar.Finish()

		dest, err := output.New(ctx, cfg, logger.WithField("module", "output"))
		if err != nil {
			return err
		}
		runID := cuid.New()
		counts, err := output.NewPublisher(dest, logger).PublishAllocations(runID, batch.Orders)
		if cerr := dest.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("publishing allocations: %w", err)
		}

		persist, _ := cmd.Flags().GetBool("persist")
		if persist && st != nil {
			n, err := st.allocations.Replace(ctx, cfg.RestaurantID, batch.Orders)
			if err != nil {
				return fmt.Errorf("storing allocations: %w", err)
			}
			logger.WithField("rows", n).Info("allocations stored")
		}

		m := batch.Metrics
		logger.WithFields(logrus.Fields{
			"run_id":            runID,
			"orders":            m.TotalOrders,
			"orders_with_price": m.OrdersWithPrices,
			"verification_rate": fmt.Sprintf("%.1f%%", m.VerificationRate()),
			"records":           counts,
		}).Info("allocation complete")
		return nil
	},
}

func init() {
	allocateCmd.Flags().Bool("persist", false, "Write allocations back to the database (with --use-database)")
	addWindowFlags(allocateCmd)
	rootCmd.AddCommand(allocateCmd)
}
