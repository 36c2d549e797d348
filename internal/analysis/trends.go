package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

const (
	unspecifiedService = "Unspecified"
	monthLayout        = "2006-01"
	TopPeakHours       = 3
)

// Lunch and dinner windows, inclusive, by hour of day.
const (
	lunchFrom, lunchTo   = 11, 15
	dinnerFrom, dinnerTo = 19, 23
)

// ServiceMonth is one service type's volume in one calendar month, with
// growth against the previous month in the data.
type ServiceMonth struct {
	Month            string          `json:"month"`
	ServiceType      string          `json:"service_type"`
	OrderCount       int             `json:"order_count"`
	Revenue          decimal.Decimal `json:"revenue"`
	AvgOrderValue    decimal.Decimal `json:"avg_order_value"`
	ActiveDays       int             `json:"active_days"`
	HasPrevious      bool            `json:"has_previous"`
	OrderGrowthPct   float64         `json:"order_growth_pct"`
	RevenueGrowthPct float64         `json:"revenue_growth_pct"`
}

type Trends struct {
	Months       []string       `json:"months"`
	ServiceTypes []string       `json:"service_types"`
	Rows         []ServiceMonth `json:"rows"`
}

type HourlyStat struct {
	Hour    int             `json:"hour"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ServiceTypeStats struct {
	ServiceType   string          `json:"service_type"`
	TotalOrders   int             `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	FirstOrder    time.Time       `json:"first_order"`
	LastOrder     time.Time       `json:"last_order"`
	LunchOrders   int             `json:"lunch_orders"`
	DinnerOrders  int             `json:"dinner_orders"`
	Hourly        []HourlyStat    `json:"hourly_distribution"`
	PeakHours     []string        `json:"peak_hours"`
}

func serviceType(o models.Order) string {
	if o.OrderType == "" {
		return unspecifiedService
	}
	return o.OrderType
}

type monthAcc struct {
	orders  int
	revenue decimal.Decimal
	days    map[string]struct{}
}

// MonthlyTrends groups orders by calendar month and service type. Rows hold
// every month and service type pair, zero-filled where a service had no
// orders that month, ordered by month then service type.
func MonthlyTrends(orders []models.Order) Trends {
	acc := make(map[string]map[string]*monthAcc)
	services := make(map[string]struct{})
	for _, o := range orders {
		month, svc := o.Timestamp.Format(monthLayout), serviceType(o)
		services[svc] = struct{}{}
		if acc[month] == nil {
			acc[month] = make(map[string]*monthAcc)
		}
		x := acc[month][svc]
		if x == nil {
			x = &monthAcc{revenue: decimal.Zero, days: make(map[string]struct{})}
			acc[month][svc] = x
		}
		x.orders++
		x.revenue = x.revenue.Add(o.TotalAmount)
		x.days[o.Timestamp.Format(time.DateOnly)] = struct{}{}
	}

	t := Trends{Months: sortedSet(acc), ServiceTypes: sortedSet(services), Rows: []ServiceMonth{}}
	for i, month := range t.Months {
		for _, svc := range t.ServiceTypes {
			row := ServiceMonth{Month: month, ServiceType: svc, Revenue: decimal.Zero, AvgOrderValue: decimal.Zero}
			if x := acc[month][svc]; x != nil {
				row.OrderCount = x.orders
				row.Revenue = x.revenue
				row.AvgOrderValue = x.revenue.Div(decimal.NewFromInt(int64(x.orders))).Round(2)
				row.ActiveDays = len(x.days)
			}
			if i > 0 {
				row.HasPrevious = true
				prevOrders, prevRevenue := 0, decimal.Zero
				if p := acc[t.Months[i-1]][svc]; p != nil {
					prevOrders, prevRevenue = p.orders, p.revenue
				}
				row.OrderGrowthPct = growth(float64(row.OrderCount), float64(prevOrders))
				row.RevenueGrowthPct = growth(row.Revenue.InexactFloat64(), prevRevenue.InexactFloat64())
			}
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

// growth is the percent change from prev to cur, rounded to two places. From
// nothing it is 100 for any volume and 0 for none.
func growth(cur, prev float64) float64 {
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	return math.Round((cur-prev)/prev*100*100) / 100
}

// ServiceTypes summarizes orders per service type, largest revenue first.
// Peak hours are the busiest hours by order count, ties going to the hour
// with more revenue and then to the earlier hour.
func ServiceTypes(orders []models.Order) []ServiceTypeStats {
	type acc struct {
		s     ServiceTypeStats
		hours map[int]*HourlyStat
	}
	bySvc := make(map[string]*acc)
	for _, o := range orders {
		svc := serviceType(o)
		x := bySvc[svc]
		if x == nil {
			x = &acc{
				s: ServiceTypeStats{
					ServiceType:  svc,
					TotalRevenue: decimal.Zero,
					FirstOrder:   o.Timestamp,
					LastOrder:    o.Timestamp,
				},
				hours: make(map[int]*HourlyStat),
			}
			bySvc[svc] = x
		}
		x.s.TotalOrders++
		x.s.TotalRevenue = x.s.TotalRevenue.Add(o.TotalAmount)
		if o.Timestamp.Before(x.s.FirstOrder) {
			x.s.FirstOrder = o.Timestamp
		}
		if o.Timestamp.After(x.s.LastOrder) {
			x.s.LastOrder = o.Timestamp
		}

		hour := o.Timestamp.Hour()
		switch {
		case hour >= lunchFrom && hour <= lunchTo:
			x.s.LunchOrders++
		case hour >= dinnerFrom && hour <= dinnerTo:
			x.s.DinnerOrders++
		}
		h := x.hours[hour]
		if h == nil {
			h = &HourlyStat{Hour: hour, Revenue: decimal.Zero}
			x.hours[hour] = h
		}
		h.Orders++
		h.Revenue = h.Revenue.Add(o.TotalAmount)
	}

	out := make([]ServiceTypeStats, 0, len(bySvc))
	for _, x := range bySvc {
		s := x.s
		s.AvgOrderValue = s.TotalRevenue.Div(decimal.NewFromInt(int64(s.TotalOrders))).Round(2)
		s.Hourly = make([]HourlyStat, 0, len(x.hours))
		for _, h := range x.hours {
			s.Hourly = append(s.Hourly, *h)
		}
		sort.Slice(s.Hourly, func(i, j int) bool { return s.Hourly[i].Hour < s.Hourly[j].Hour })
		s.PeakHours = peakHours(s.Hourly)
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalRevenue.Equal(out[j].TotalRevenue) {
			return out[i].TotalRevenue.GreaterThan(out[j].TotalRevenue)
		}
		return out[i].ServiceType < out[j].ServiceType
	})
	return out
}

func peakHours(hourly []HourlyStat) []string {
	ranked := append([]HourlyStat(nil), hourly...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Orders != ranked[j].Orders {
			return ranked[i].Orders > ranked[j].Orders
		}
		return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
	})
	if len(ranked) > TopPeakHours {
		ranked = ranked[:TopPeakHours]
	}
	out := make([]string, len(ranked))
	for i, h := range ranked {
		out[i] = fmt.Sprintf("%02d:00", h.Hour)
	}
	return out
}

func sortedSet[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
