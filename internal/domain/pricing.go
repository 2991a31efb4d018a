package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PricingWindow string

const (
	// WindowDaytime covers [00:00, 13:00): no special tariffs.
	WindowDaytime PricingWindow = "daytime"
	// WindowHappyHour covers [13:00, 17:00).
	WindowHappyHour PricingWindow = "happy_hour"
	// WindowEvening covers [17:00, 24:00).
	WindowEvening PricingWindow = "evening"
)

func WindowForHour(hour int) PricingWindow {
	switch {
	case hour >= 13 && hour < 17:
		return WindowHappyHour
	case hour >= 17:
		return WindowEvening
	default:
		return WindowDaytime
	}
}

// durationTable is one tariff row of the pricing decision table: fixed rates
// at the 30- and 60-minute buckets, linear extrapolation per unitMinutes
// elsewhere.
type durationTable struct {
	at30        int64
	at60        int64
	perUnit     int64
	unitMinutes int64
}

func (t durationTable) rate(minutes int) decimal.Decimal {
	switch minutes {
	case 30:
		return decimal.NewFromInt(t.at30)
	case 60:
		return decimal.NewFromInt(t.at60)
	default:
		return decimal.NewFromInt(int64(minutes)).
			Div(decimal.NewFromInt(t.unitMinutes)).
			Mul(decimal.NewFromInt(t.perUnit))
	}
}

var (
	perPlayerTable    = durationTable{at30: 20, at60: 30, perUnit: 30, unitMinutes: 60}
	duoHappyHourTable = durationTable{at30: 40, at60: 40, perUnit: 40, unitMinutes: 60}
	duoEveningTable   = durationTable{at30: 40, at60: 60, perUnit: 40, unitMinutes: 30}
)

// flatTariffs lists the special-cased (window, player count) rows. Every
// other combination bills playerCount × the per-player rate, including
// three-plus players in the evening window.
var flatTariffs = map[PricingWindow]map[int]durationTable{
	WindowHappyHour: {2: duoHappyHourTable},
	WindowEvening:   {2: duoEveningTable},
}

// BaseCost prices the rental-time charge for a session priced at now.
// Pure; malformed numeric input is coerced to zero, never an error.
func BaseCost(now time.Time, durationMinutes, controllerCount int) decimal.Decimal {
	if durationMinutes < 0 {
		durationMinutes = 0
	}
	if controllerCount < 0 {
		controllerCount = 0
	}

	players := controllerCount + 1
	window := WindowForHour(now.Hour())

	if table, ok := flatTariffs[window][players]; ok {
		return table.rate(durationMinutes)
	}

	return decimal.NewFromInt(int64(players)).Mul(perPlayerTable.rate(durationMinutes))
}

// AddOnCost sums quantity × unit price over the fixed add-on kinds.
func AddOnCost(addOns AddOnCounts, prices UnitPrices) decimal.Decimal {
	clamped := addOns.Clamped()

	total := decimal.Zero
	for _, kind := range AddOnKinds() {
		quantity := decimal.NewFromInt(int64(clamped.Count(kind)))
		total = total.Add(quantity.Mul(prices.For(kind)))
	}

	return total
}

// Cost computes both money fields together; they are never patched
// independently.
func Cost(now time.Time, durationMinutes, controllerCount int, addOns AddOnCounts, prices UnitPrices) (base, total decimal.Decimal) {
	base = BaseCost(now, durationMinutes, controllerCount)
	return base, base.Add(AddOnCost(addOns, prices))
}
