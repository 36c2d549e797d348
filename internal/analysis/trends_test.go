package analysis

import (
	"testing"
	"time"

	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func served(id string, ts time.Time, total, service string) models.Order {
	o := order(id, ts, total, "Veg Thali")
	o.OrderType = service
	return o
}

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2024, month, day, hour, 0, 0, 0, time.UTC)
}

func TestMonthlyTrends(t *testing.T) {
	orders := []models.Order{
		served("1", at(time.January, 5, 13), "100", "Dine In"),
		served("2", at(time.January, 5, 20), "300", "Dine In"),
		served("3", at(time.January, 9, 12), "200", "Dine In"),
		served("4", at(time.February, 2, 13), "150", "Dine In"),
		served("5", at(time.February, 3, 21), "500", "Delivery"),
		served("6", at(time.March, 1, 19), "250", ""),
	}
	tr := MonthlyTrends(orders)

	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, tr.Months)
	assert.Equal(t, []string{"Delivery", "Dine In", unspecifiedService}, tr.ServiceTypes)
	require.Len(t, tr.Rows, 9)

	rows := make(map[string]ServiceMonth)
	for _, r := range tr.Rows {
		rows[r.Month+"/"+r.ServiceType] = r
	}

	jan := rows["2024-01/Dine In"]
	assert.Equal(t, 3, jan.OrderCount)
	assert.True(t, jan.Revenue.Equal(d("600")))
	assert.True(t, jan.AvgOrderValue.Equal(d("200")))
	assert.Equal(t, 2, jan.ActiveDays)
	assert.False(t, jan.HasPrevious)

	feb := rows["2024-02/Dine In"]
	assert.True(t, feb.HasPrevious)
	assert.InDelta(t, -66.67, feb.OrderGrowthPct, 1e-9)
	assert.InDelta(t, -75.0, feb.RevenueGrowthPct, 1e-9)

	tests := []struct {
		key           string
		orders        int
		orderGrowth   float64
		revenueGrowth float64
	}{
		{"2024-02/Delivery", 1, 100, 100},
		{"2024-03/Delivery", 0, -100, -100},
		{"2024-03/Dine In", 0, -100, -100},
		{"2024-03/" + unspecifiedService, 1, 100, 100},
		{"2024-02/" + unspecifiedService, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			r := rows[tt.key]
			assert.Equal(t, tt.orders, r.OrderCount)
			assert.InDelta(t, tt.orderGrowth, r.OrderGrowthPct, 1e-9)
			assert.InDelta(t, tt.revenueGrowth, r.RevenueGrowthPct, 1e-9)
		})
	}
}

func TestMonthlyTrendsEmpty(t *testing.T) {
	tr := MonthlyTrends(nil)
	assert.Empty(t, tr.Months)
	assert.NotNil(t, tr.Rows)
}

func TestServiceTypes(t *testing.T) {
	orders := []models.Order{
		served("1", at(time.January, 5, 12), "100", "Dine In"),
		served("2", at(time.January, 6, 12), "100", "Dine In"),
		served("3", at(time.January, 6, 20), "400", "Dine In"),
		served("4", at(time.January, 7, 13), "100", "Dine In"),
		served("5", at(time.January, 8, 17), "50", "Dine In"),
		served("6", at(time.January, 9, 21), "600", "Delivery"),
		served("7", at(time.January, 2, 21), "300", "Delivery"),
	}
	stats := ServiceTypes(orders)
	require.Len(t, stats, 2)
	assert.Equal(t, "Delivery", stats[0].ServiceType, "largest revenue first")

	dine := stats[1]
	assert.Equal(t, 5, dine.TotalOrders)
	assert.True(t, dine.TotalRevenue.Equal(d("750")))
	assert.True(t, dine.AvgOrderValue.Equal(d("150")))
	assert.Equal(t, 3, dine.LunchOrders)
	assert.Equal(t, 1, dine.DinnerOrders)
	assert.Equal(t, at(time.January, 5, 12), dine.FirstOrder)
	assert.Equal(t, at(time.January, 8, 17), dine.LastOrder)
	wantHourly := []HourlyStat{
		{Hour: 12, Orders: 2, Revenue: d("200")},
		{Hour: 13, Orders: 1, Revenue: d("100")},
		{Hour: 17, Orders: 1, Revenue: d("50")},
		{Hour: 20, Orders: 1, Revenue: d("400")},
	}
	require.Len(t, dine.Hourly, len(wantHourly))
	for i, want := range wantHourly {
		got := dine.Hourly[i]
		assert.Equal(t, want.Hour, got.Hour)
		assert.Equal(t, want.Orders, got.Orders)
		assert.True(t, want.Revenue.Equal(got.Revenue), "hour %d revenue %s", got.Hour, got.Revenue)
	}
	// one-order hours rank by revenue
	assert.Equal(t, []string{"12:00", "20:00", "13:00"}, dine.PeakHours)

	delivery := stats[0]
	assert.Equal(t, at(time.January, 2, 21), delivery.FirstOrder)
	assert.Equal(t, 2, delivery.DinnerOrders)
	assert.Equal(t, []string{"21:00"}, delivery.PeakHours)
}

func TestSummarizeIncludesTrends(t *testing.T) {
	results := allocated(t)
	in := Summarize(results, ItemMetrics(results), nil)
	assert.Equal(t, []string{"2024-01"}, in.MonthlyTrends.Months)
	require.Len(t, in.ServiceTypes, 1)
	assert.Equal(t, unspecifiedService, in.ServiceTypes[0].ServiceType)
	assert.Equal(t, 3, in.ServiceTypes[0].TotalOrders)
}
