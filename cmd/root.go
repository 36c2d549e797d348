package cmd

import (
	"fmt"
	"os"

	"github.com/siddharthshetty008/restoAnalyze/internal/logging"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "restoanalyze",
	Short: "Revenue allocation and price analytics for restaurant POS data",
	Long: `restoanalyze splits point-of-sale order totals across the items ordered,
estimates per-item price elasticity from the resulting history, recommends
price changes and classifies the menu into BCG quadrants.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./restoanalyze.yaml)")

	flags := rootCmd.PersistentFlags()
	flags.String("menu-file", "", "Menu CSV export")
	flags.String("addons-file", "", "Addon price list CSV")
	flags.String("orders-file", "", "POS order CSV export")
	flags.Bool("use-database", false, "Read catalog and orders from Postgres")
	flags.Int64("restaurant-id", 1, "Restaurant id in the database")
	flags.Int("workers", 4, "Parallel allocation workers")
	flags.String("filter-type", models.FilterAll, "Order filter: all, alcohol or non_alcohol")
	flags.String("log-level", "info", "Log level")
	flags.String("output-path", "", "Directory for result files (console when empty)")
	flags.String("output-format", "json", "Result file format: json, csv or parquet")
	flags.String("output-destination", "local", "Parquet destination: local or cloud")
	flags.Bool("kafka-enabled", false, "Publish results to Kafka")
	flags.String("kafka-broker-list", "localhost:9092", "Kafka broker list")

	bind := map[string]string{
		"menu_file":          "menu-file",
		"addons_file":        "addons-file",
		"orders_file":        "orders-file",
		"use_database":       "use-database",
		"restaurant_id":      "restaurant-id",
		"workers":            "workers",
		"filter_type":        "filter-type",
		"log_level":          "log-level",
		"output_path":        "output-path",
		"output_format":      "output-format",
		"output_destination": "output-destination",
		"kafka_enabled":      "kafka-enabled",
		"kafka_broker_list":  "kafka-broker-list",
	}
	for key, flag := range bind {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}

func initConfig() {
	viper.SetEnvPrefix("RESTO")
	viper.AutomaticEnv()
}

// setup loads the configuration and the logger every subcommand starts with.
func setup() (*models.Config, *logrus.Logger, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}
	logger := logging.New(cfg.LogLevel)
	if used := viper.ConfigFileUsed(); used != "" {
		logger.WithField("file", used).Debug("using config file")
	}
	return cfg, logger, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
