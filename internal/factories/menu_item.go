// Package factories generates synthetic menus and order histories with
// known price variation, for demos and tests.
package factories

import (
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

type dishGroup struct {
	category string
	minPrice int
	maxPrice int
	dishes   []string
}

var dishGroups = []dishGroup{
	{"Thali", 120, 350, []string{"Veg Thali", "Fish Thali", "Chicken Thali", "Prawn Thali", "Mutton Thali"}},
	{"Main Course", 160, 450, []string{
		"Paneer Butter Masala", "Chicken Curry", "Mutton Rogan Josh", "Dal Makhani", "Fish Curry",
		"Chicken Biryani", "Prawn Masala", "Kadai Paneer", "Butter Chicken",
	}},
	{"Starters", 90, 320, []string{
		"Chicken 65", "Paneer Tikka", "Fish Fry Masala", "Gobi Manchurian", "Masala Papad", "Prawn Koliwada",
	}},
	{"Breads", 20, 70, []string{"Butter Naan", "Tandoori Roti", "Garlic Naan", "Laccha Paratha"}},
	{"Rice", 80, 200, []string{"Steamed Rice", "Jeera Rice", "Veg Pulao"}},
	{"Beverages", 30, 120, []string{"Sol Kadhi", "Masala Chai", "Fresh Lime Soda", "Mineral Water"}},
	{"Bar", 150, 600, []string{
		"Kingfisher Beer", "Tuborg Beer", "Old Monk Rum", "Royal Stag Whisky", "Smirnoff Vodka", "Breezer",
	}},
	{"Chef Specials", 550, 1200, []string{"Lobster Thermidor", "Tandoori Pomfret", "Crab Masala"}},
}

type MenuItemFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewMenuItemFactory(seed int64) *MenuItemFactory {
	return &MenuItemFactory{
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// CreateMenu returns up to size distinct dishes, each priced in its
// group's range rounded to a multiple of ten. Every group contributes at
// least one dish when size allows.
func (mf *MenuItemFactory) CreateMenu(size int) []models.MenuItem {
	type pick struct {
		group int
		dish  string
	}
	var pool []pick
	for g, group := range dishGroups {
		for _, d := range group.dishes {
			pool = append(pool, pick{g, d})
		}
	}
	mf.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	// one of each group first, then the rest in shuffled order
	seenGroup := make(map[int]bool)
	ordered := make([]pick, 0, len(pool))
	var rest []pick
	for _, p := range pool {
		if !seenGroup[p.group] {
			seenGroup[p.group] = true
			ordered = append(ordered, p)
		} else {
			rest = append(rest, p)
		}
	}
	ordered = append(ordered, rest...)
	if size > 0 && size < len(ordered) {
		ordered = ordered[:size]
	}

	items := make([]models.MenuItem, len(ordered))
	for i, p := range ordered {
		g := dishGroups[p.group]
		price := mf.fake.IntBetween(g.minPrice/10, g.maxPrice/10) * 10
		items[i] = models.MenuItem{
			ID:       int64(i + 1),
			Name:     p.dish,
			Price:    decimal.NewFromInt(int64(price)),
			Category: g.category,
			Active:   true,
		}
	}
	return items
}

func (mf *MenuItemFactory) RestaurantName() string {
	return mf.fake.Company().Name()
}
