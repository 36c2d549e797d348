package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restoanalyze.yaml")
	yaml := `
menu_file: menu.csv
orders_file: orders.csv
workers: 0
filter_type: alcohol
output_format: parquet
database:
  host: db.internal
  user: analyst
simulation:
  start_date: "2024-01-01T00:00:00Z"
  end_date: "2024-05-01T00:00:00Z"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "menu.csv", cfg.MenuFile)
	assert.Equal(t, FilterAlcohol, cfg.FilterType)
	assert.Equal(t, 1, cfg.Workers, "non-positive workers are raised to one")
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Simulation.StartDate)
	assert.Contains(t, cfg.Database.DSN(), "user=analyst")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{FilterType: FilterAll, OutputFormat: "json", Workers: 2}, false},
		{"bad filter", Config{FilterType: "beer", OutputFormat: "json"}, true},
		{"bad format", Config{FilterType: FilterAll, OutputFormat: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerificationRate(t *testing.T) {
	assert.Equal(t, 0.0, OrderMetrics{}.VerificationRate())
	assert.Equal(t, 75.0, OrderMetrics{TotalItems: 4, VerifiedItems: 3}.VerificationRate())
}
