package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, price int64) Entry {
	return Entry{Name: name, Price: decimal.NewFromInt(price)}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kingfisher Beer (650 Ml)", "kingfisher beer"},
		{"Coke 500ml", "coke"},
		{"Bisleri Water 2 Litres", "bisleri water"},
		{"Thums Up Can", "thums up"},
		{"  Veg   Thali  ", "veg thali"},
		{"Pecan Pie", "pecan pie"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanName(tt.in))
		})
	}
}

func TestBuildDiscardsNonPositivePrices(t *testing.T) {
	c := Build([]Entry{
		entry("Veg Thali", 100),
		entry("Free Papad", 0),
		entry("Refund", -10),
		{Name: "   ", Price: decimal.NewFromInt(5)},
	})

	require.Equal(t, 1, c.Len())
	_, ok := c.LookupExact("Free Papad")
	assert.False(t, ok)
}

func TestLookupExactVariants(t *testing.T) {
	c := Build([]Entry{entry("Kingfisher Beer (650 Ml)", 180)})

	for _, name := range []string{
		"Kingfisher Beer (650 Ml)",
		"kingfisher beer (650 ml)",
		"Kingfisher Beer 650 Ml",
		"KINGFISHER BEER",
		"kingfisher beer",
	} {
		t.Run(name, func(t *testing.T) {
			item, ok := c.LookupExact(name)
			require.True(t, ok)
			assert.Equal(t, "Kingfisher Beer (650 Ml)", item.Name)
		})
	}

	_, ok := c.LookupExact("Tuborg Beer")
	assert.False(t, ok)
}

func TestLookupExactParenStrippedForm(t *testing.T) {
	c := Build([]Entry{entry("Fish Fry (Half)", 160)})

	item, ok := c.LookupExact("Fish Fry Half")
	require.True(t, ok)
	assert.Equal(t, "Fish Fry (Half)", item.Name)
}

func TestFirstRegisteredVariantWins(t *testing.T) {
	c := Build([]Entry{
		entry("Beer (650 Ml)", 180),
		entry("Beer (330 Ml)", 120),
		entry("Beer (650 Ml)", 999),
	})

	require.Equal(t, 2, c.Len())

	item, ok := c.LookupExact("beer")
	require.True(t, ok)
	assert.Equal(t, "Beer (650 Ml)", item.Name)

	item, ok = c.LookupExact("Beer (330 Ml)")
	require.True(t, ok)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(120)))

	// duplicate names keep the first price
	item, _ = c.LookupExact("Beer (650 Ml)")
	assert.True(t, item.Price.Equal(decimal.NewFromInt(180)))
}

func TestExactNameBeatsEarlierVariant(t *testing.T) {
	c := Build([]Entry{
		entry("Lime Soda (Sweet)", 60),
		entry("lime soda", 50),
	})

	item, ok := c.LookupExact("lime soda")
	require.True(t, ok)
	assert.Equal(t, "lime soda", item.Name)
}

func TestInactiveEntriesAreNotIndexed(t *testing.T) {
	c := Build([]Entry{
		{Name: "Old Special", Price: decimal.NewFromInt(300), Inactive: true},
		entry("Veg Thali", 100),
	})

	_, ok := c.LookupExact("Old Special")
	assert.False(t, ok)
	assert.Len(t, c.Items(), 2)
	assert.Len(t, c.Active(), 1)
}

func TestItemsReturnsCopy(t *testing.T) {
	c := Build([]Entry{entry("Veg Thali", 100), entry("Fish Thali", 220)})
	items := c.Items()
	items[0] = nil
	assert.NotNil(t, c.Items()[0])
	assert.Equal(t, "General", c.Items()[1].Category)
}

func TestKeywords(t *testing.T) {
	assert.True(t, IsAlcohol("Kingfisher Premium"))
	assert.True(t, IsAlcohol("Old Monk 60ml"))
	assert.True(t, IsAlcohol("Gin Tonic"))
	assert.False(t, IsAlcohol("Ginger Chicken"))
	assert.False(t, IsAlcohol("Drumstick Fry"))

	assert.True(t, IsStaple("Steamed Rice"))
	assert.True(t, IsStaple("Mineral Water 1 Litre"))
	assert.False(t, IsStaple("Ricecake Special"))
}
