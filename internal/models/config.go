package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN renders the config as a libpq keyword/value connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type SimulationConfig struct {
	Seed             int64     `mapstructure:"seed"`
	StartDate        time.Time `mapstructure:"start_date"`
	EndDate          time.Time `mapstructure:"end_date"`
	OrdersPerDay     int       `mapstructure:"orders_per_day"`
	MaxItemsPerOrder int       `mapstructure:"max_items_per_order"`
	MenuSize         int       `mapstructure:"menu_size"`
}

type Config struct {
	MenuFile     string         `mapstructure:"menu_file"`
	AddonsFile   string         `mapstructure:"addons_file"`
	OrdersFile   string         `mapstructure:"orders_file"`
	UseDatabase  bool           `mapstructure:"use_database"`
	Database     DatabaseConfig `mapstructure:"database"`
	RestaurantID int64          `mapstructure:"restaurant_id"`
	Workers      int            `mapstructure:"workers"`
	FilterType   string         `mapstructure:"filter_type"`
	LogLevel     string         `mapstructure:"log_level"`

	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputFormat      string             `mapstructure:"output_format"`
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	KafkaEnabled     bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList  string `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`

	Simulation SimulationConfig `mapstructure:"simulation"`
}

func setDefaults() {
	viper.SetDefault("workers", 4)
	viper.SetDefault("filter_type", FilterAll)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("restaurant_id", 1)
	viper.SetDefault("output_format", "json")
	viper.SetDefault("output_destination", "local")
	viper.SetDefault("output_folder", "results")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.dbname", "restaurant_analytics")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("simulation.seed", 42)
	viper.SetDefault("simulation.orders_per_day", 40)
	viper.SetDefault("simulation.max_items_per_order", 4)
	viper.SetDefault("simulation.menu_size", 30)
	viper.SetDefault("simulation.start_date", time.Now().AddDate(0, -4, 0).Format(time.RFC3339))
	viper.SetDefault("simulation.end_date", time.Now().Format(time.RFC3339))
}

// LoadConfig initializes and reads the configuration using Viper. A missing
// config file is not an error when cfgFile is empty; flags, environment and
// defaults still apply.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("restoanalyze")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (cfg *Config) Validate() error {
	switch cfg.FilterType {
	case FilterAll, FilterAlcohol, FilterNonAlcohol:
	default:
		return fmt.Errorf("invalid filter_type %q", cfg.FilterType)
	}
	switch cfg.OutputFormat {
	case "json", "csv", "parquet":
	default:
		return fmt.Errorf("unsupported output_format %q", cfg.OutputFormat)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return nil
}
