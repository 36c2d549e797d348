package factories

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/catalog"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

// Regime is the pricing policy in force during one period of the history.
type Regime int

const (
	RegimeBaseline Regime = iota
	RegimePromotion
	RegimePremium
)

const (
	RegimeDays = 30

	ThaliElasticity   = -0.8
	AlcoholElasticity = -0.3
	DefaultElasticity = -1.2

	MinInclusion = 0.1
	MaxInclusion = 1.5

	unknownItemRate = 0.03
)

var (
	orderTypes   = []string{"Dine In", "Delivery", "Pick Up"}
	paymentTypes = []string{"Cash", "Card", "UPI"}
)

func (r Regime) String() string {
	switch r {
	case RegimePromotion:
		return "promotion"
	case RegimePremium:
		return "premium"
	}
	return "baseline"
}

// RegimeAt cycles baseline, promotion and premium every RegimeDays.
func RegimeAt(start, t time.Time) Regime {
	days := int(t.Sub(start).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return Regime((days / RegimeDays) % 3)
}

// Elasticity is the demand response generated orders follow for an item.
func Elasticity(name string) float64 {
	switch {
	case strings.Contains(strings.ToLower(name), "thali"):
		return ThaliElasticity
	case catalog.IsAlcohol(name):
		return AlcoholElasticity
	}
	return DefaultElasticity
}

// InclusionProbability scales how likely an item is to be ordered after a
// relative price change, clamped to [MinInclusion, MaxInclusion].
func InclusionProbability(elasticity, priceChange float64) float64 {
	return math.Max(MinInclusion, math.Min(MaxInclusion, 1+elasticity*priceChange))
}

type OrderFactory struct {
	menu   []models.MenuItem
	config models.SimulationConfig
	fake   faker.Faker
	rng    *rand.Rand
	// multipliers caches the price multiplier per item per week
	multipliers map[string]float64
}

func NewOrderFactory(menu []models.MenuItem, config models.SimulationConfig) *OrderFactory {
	return &OrderFactory{
		menu:        menu,
		config:      config,
		fake:        faker.NewWithSeed(rand.NewSource(config.Seed + 1)),
		rng:         rand.New(rand.NewSource(config.Seed)),
		multipliers: make(map[string]float64),
	}
}

// priceMultiplier is fixed per item for each week so that weekly averages
// move between weeks rather than within them.
func (of *OrderFactory) priceMultiplier(item string, day time.Time) float64 {
	year, week := day.ISOWeek()
	key := fmt.Sprintf("%s/%d-%d", item, year, week)
	if m, ok := of.multipliers[key]; ok {
		return m
	}
	var m float64
	switch RegimeAt(of.config.StartDate, day) {
	case RegimePromotion:
		m = 0.80 + of.rng.Float64()*0.15
	case RegimePremium:
		m = 1.05 + of.rng.Float64()*0.10
	default:
		m = 1
	}
	of.multipliers[key] = m
	return m
}

// noisyName renders a menu name the way POS staff sometimes type it.
func (of *OrderFactory) noisyName(name string) string {
	switch r := of.rng.Float64(); {
	case r < 0.10:
		return strings.ToLower(name)
	case r < 0.15:
		return strings.ToUpper(name)
	case r < 0.25 && catalog.IsAlcohol(name):
		return name + " 650ml"
	}
	return name
}

// CreateOrders generates orders for every day in [StartDate, EndDate).
// progress, if set, is called once per simulated day.
func (of *OrderFactory) CreateOrders(progress func()) []models.Order {
	var orders []models.Order
	if len(of.menu) == 0 {
		return orders
	}
	maxItems := of.config.MaxItemsPerOrder
	if maxItems < 1 {
		maxItems = 1
	}
	start := of.config.StartDate.Truncate(24 * time.Hour)

	for day := start; day.Before(of.config.EndDate); day = day.AddDate(0, 0, 1) {
		base := of.config.OrdersPerDay
		n := of.fake.IntBetween(base*8/10, base*12/10)
		for i := 0; i < n; i++ {
			if o, ok := of.createOrder(day, maxItems); ok {
				orders = append(orders, o)
			}
		}
		if progress != nil {
			progress()
		}
	}
	return orders
}

func (of *OrderFactory) createOrder(day time.Time, maxItems int) (models.Order, bool) {
	ts := day.Add(time.Duration(of.fake.IntBetween(11*60, 23*60)) * time.Minute).
		Add(time.Duration(of.fake.IntBetween(0, 59)) * time.Second)

	want := of.fake.IntBetween(1, maxItems)
	var names []string
	total := decimal.Zero
	for attempts := 0; len(names) < want && attempts < want*4; attempts++ {
		if of.rng.Float64() < unknownItemRate {
			names = append(names, of.fake.Food().Vegetable()+" Special")
			total = total.Add(decimal.NewFromInt(int64(of.fake.IntBetween(5, 25) * 10)))
			continue
		}
		item := of.menu[of.rng.Intn(len(of.menu))]
		m := of.priceMultiplier(item.Name, ts)
		p := InclusionProbability(Elasticity(item.Name), m-1)
		if of.rng.Float64()*MaxInclusion >= p {
			continue
		}
		names = append(names, of.noisyName(item.Name))
		total = total.Add(item.Price.Mul(decimal.NewFromFloat(m)))
	}
	if len(names) == 0 {
		return models.Order{}, false
	}

	return models.Order{
		ID:          "SIM-" + cuid.New(),
		TotalAmount: total.Round(0),
		Timestamp:   ts,
		ItemsText:   strings.Join(names, ", "),
		OrderType:   of.fake.RandomStringElement(orderTypes),
		PaymentType: of.fake.RandomStringElement(paymentTypes),
	}, true
}
