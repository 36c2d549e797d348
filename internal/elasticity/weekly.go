package elasticity

import (
	"math"
	"sort"
	"time"
)

// WeeklyAggregate is one calendar week (Monday start) of an item's sales.
type WeeklyAggregate struct {
	WeekStart time.Time
	AvgPrice  float64
	Quantity  int
}

func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// aggregateWeekly buckets observations by week. Weeks without sales are
// absent, not zero.
func aggregateWeekly(obs []Observation) []WeeklyAggregate {
	type acc struct {
		start time.Time
		sum   float64
		n     int
	}
	buckets := make(map[int64]*acc)
	for _, o := range obs {
		ws := weekStart(o.Timestamp)
		b, ok := buckets[ws.Unix()]
		if !ok {
			b = &acc{start: ws}
			buckets[ws.Unix()] = b
		}
		b.sum += o.Price
		b.n++
	}

	weeks := make([]WeeklyAggregate, 0, len(buckets))
	for _, b := range buckets {
		weeks = append(weeks, WeeklyAggregate{WeekStart: b.start, AvgPrice: b.sum / float64(b.n), Quantity: b.n})
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].WeekStart.Before(weeks[j].WeekStart) })
	return weeks
}

// percentChanges returns week-over-week fractional changes of price and
// quantity. The first week and any non-finite row are dropped.
func percentChanges(weeks []WeeklyAggregate) (price, quantity []float64) {
	for i := 1; i < len(weeks); i++ {
		prev, cur := weeks[i-1], weeks[i]
		dp := (cur.AvgPrice - prev.AvgPrice) / prev.AvgPrice
		dq := float64(cur.Quantity-prev.Quantity) / float64(prev.Quantity)
		if !finite(dp) || !finite(dq) {
			continue
		}
		price = append(price, dp)
		quantity = append(quantity, dq)
	}
	return price, quantity
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
