package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/siddharthshetty008/restoAnalyze/internal/analysis"
	"github.com/siddharthshetty008/restoAnalyze/internal/output"
	"github.com/siddharthshetty008/restoAnalyze/internal/pricing"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run allocation, elasticity, pricing and BCG analysis",
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
		report, err := analysis.NewAnalyzer(c, logger).Run(orders, analysis.Options{
			Workers:    cfg.Workers,
			FilterType: cfg.FilterType,
			Progress:   tick,
		})
		_ = bar.Finish()
		if err != nil {
			return err
		}

		dest, err := output.New(ctx, cfg, logger.WithField("module", "output"))
		if err != nil {
			return err
		}
		runID, counts, err := output.NewPublisher(dest, logger).Publish(report)
		if cerr := dest.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("publishing results: %w", err)
		}
		logger.WithFields(logrus.Fields{"run_id": runID, "records": counts}).Info("analysis complete")

		printReport(cmd.ErrOrStderr(), report)
		return nil
	},
}

func init() {
	addWindowFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func printReport(w io.Writer, r *analysis.Report) {
	in := r.Insights
	fmt.Fprintf(w, "\nOrders: %d  Revenue: ₹%s  Avg order: ₹%s\n",
		in.TotalOrders, in.TotalRevenue.StringFixed(0), in.AvgOrderValue.StringFixed(2))
	fmt.Fprintf(w, "Items: %d  With menu price: %d (%.1f%%)  Verified revenue: ₹%s\n",
		in.UniqueItems, in.ItemsWithMenuPrices, in.PriceAccuracyPercent, in.VerifiedRevenue.StringFixed(0))
	fmt.Fprintf(w, "Quadrants: %v\n", in.QuadrantDistribution)
	for _, st := range in.ServiceTypes {
		fmt.Fprintf(w, "  %s: %d orders, ₹%s, peak %s\n",
			st.ServiceType, st.TotalOrders, st.TotalRevenue.StringFixed(0), strings.Join(st.PeakHours, " "))
	}

	if !r.Elasticity.Available() {
		fmt.Fprintf(w, "\nElasticity unavailable: %s\n", r.Elasticity.Reason)
		return
	}
	s := r.PricingSummary
	fmt.Fprintf(w, "\nElasticity fitted for %d items; %d priced (%d high confidence)\n",
		len(r.Elasticity.Records), s.ItemsAnalyzed, s.HighConfidenceItems)
	fmt.Fprintf(w, "Increase candidates: %d  Volume boosts: %d  Predicted gain: ₹%.0f\n\n",
		s.PriceIncreaseCandidates, s.VolumeBoostCandidates, s.TotalRevenueGain)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tACTION\tPRICE\tNEW PRICE\tCHANGE\tREVENUE DELTA\tPRIORITY")
	for _, rec := range pricing.Ranked(r.Pricing) {
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.0f\t%+.0f%%\t%+.0f\t%s\n",
			rec.ItemName, rec.Action, rec.CurrentPrice, rec.RecommendedPrice,
			rec.PriceChangePct, rec.RevenueChange, rec.Priority)
	}
	_ = tw.Flush()
}
