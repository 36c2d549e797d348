package factories

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/allocator"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func simConfig(days int) models.SimulationConfig {
	return models.SimulationConfig{
		Seed:             7,
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, days),
		OrdersPerDay:     20,
		MaxItemsPerOrder: 3,
	}
}

func TestCreateMenu(t *testing.T) {
	menu := NewMenuItemFactory(1).CreateMenu(len(dishGroups))
	require.Len(t, menu, len(dishGroups))

	categories := make(map[string]bool)
	for _, it := range menu {
		categories[it.Category] = true
		assert.True(t, it.Active)
		assert.True(t, it.Price.IsPositive())
		assert.True(t, it.Price.Mod(decimal.NewFromInt(10)).IsZero(), "%s priced %s", it.Name, it.Price)
	}
	assert.Len(t, categories, len(dishGroups), "every group is represented")
}

func TestCreateMenuNamesAreUnique(t *testing.T) {
	menu := NewMenuItemFactory(3).CreateMenu(0)
	seen := make(map[string]bool)
	for _, it := range menu {
		assert.False(t, seen[it.Name], "duplicate %s", it.Name)
		seen[it.Name] = true
	}
	assert.Greater(t, len(menu), len(dishGroups))
}

func TestCreateMenuIsDeterministic(t *testing.T) {
	a := NewMenuItemFactory(9).CreateMenu(12)
	b := NewMenuItemFactory(9).CreateMenu(12)
	assert.Equal(t, a, b)
}

func TestRegimeAt(t *testing.T) {
	tests := []struct {
		day  int
		want Regime
	}{
		{0, RegimeBaseline},
		{29, RegimeBaseline},
		{30, RegimePromotion},
		{65, RegimePremium},
		{90, RegimeBaseline},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RegimeAt(start, start.AddDate(0, 0, tt.day)), "day %d", tt.day)
	}
	assert.Equal(t, "promotion", RegimePromotion.String())
}

func TestElasticity(t *testing.T) {
	assert.Equal(t, ThaliElasticity, Elasticity("Veg Thali"))
	assert.Equal(t, AlcoholElasticity, Elasticity("Kingfisher Beer"))
	assert.Equal(t, DefaultElasticity, Elasticity("Chicken Curry"))
}

func TestInclusionProbability(t *testing.T) {
	assert.InDelta(t, 1.12, InclusionProbability(-1.2, -0.1), 1e-9)
	assert.InDelta(t, 0.88, InclusionProbability(-1.2, 0.1), 1e-9)
	assert.Equal(t, MinInclusion, InclusionProbability(-3, 1))
	assert.Equal(t, MaxInclusion, InclusionProbability(-3, -1))
}

func TestCreateOrders(t *testing.T) {
	cfg := simConfig(5)
	menu := NewMenuItemFactory(cfg.Seed).CreateMenu(15)

	days := 0
	orders := NewOrderFactory(menu, cfg).CreateOrders(func() { days++ })
	assert.Equal(t, 5, days)
	require.NotEmpty(t, orders)

	for _, o := range orders {
		assert.True(t, strings.HasPrefix(o.ID, "SIM-"))
		assert.False(t, o.Timestamp.Before(cfg.StartDate))
		assert.True(t, o.Timestamp.Before(cfg.EndDate))
		assert.GreaterOrEqual(t, o.Timestamp.Hour(), 11)
		assert.LessOrEqual(t, o.Timestamp.Hour(), 23)
		assert.True(t, o.TotalAmount.IsPositive())
		n := len(allocator.ParseItems(o.ItemsText))
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, cfg.MaxItemsPerOrder)
		assert.Contains(t, orderTypes, o.OrderType)
		assert.Contains(t, paymentTypes, o.PaymentType)
	}
}

func TestCreateOrdersIsDeterministic(t *testing.T) {
	cfg := simConfig(3)
	menu := NewMenuItemFactory(cfg.Seed).CreateMenu(10)

	a := NewOrderFactory(menu, cfg).CreateOrders(nil)
	b := NewOrderFactory(menu, cfg).CreateOrders(nil)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ItemsText, b[i].ItemsText)
		assert.True(t, a[i].TotalAmount.Equal(b[i].TotalAmount))
		assert.Equal(t, a[i].Timestamp, b[i].Timestamp)
	}
}

func TestPriceMultiplierIsFixedWithinWeek(t *testing.T) {
	cfg := simConfig(120)
	f := NewOrderFactory(nil, cfg)

	promo := start.AddDate(0, 0, 36) // a Tuesday inside the promotion period
	m := f.priceMultiplier("Veg Thali", promo)
	assert.Equal(t, m, f.priceMultiplier("Veg Thali", promo.AddDate(0, 0, 2)))
	assert.GreaterOrEqual(t, m, 0.80)
	assert.Less(t, m, 0.95)

	assert.Equal(t, 1.0, f.priceMultiplier("Veg Thali", start.AddDate(0, 0, 3)))

	premium := start.AddDate(0, 0, 64)
	p := f.priceMultiplier("Veg Thali", premium)
	assert.GreaterOrEqual(t, p, 1.05)
	assert.Less(t, p, 1.15)
}

func TestCreateOrdersWithEmptyMenu(t *testing.T) {
	assert.Empty(t, NewOrderFactory(nil, simConfig(2)).CreateOrders(nil))
}
