package domain

import "github.com/shopspring/decimal"

type AddOnKind string

const (
	AddOnColdDrink AddOnKind = "cold_drink"
	AddOnWater     AddOnKind = "water"
	AddOnSnack     AddOnKind = "snack"
)

func AddOnKinds() []AddOnKind {
	return []AddOnKind{AddOnColdDrink, AddOnWater, AddOnSnack}
}

// AddOnCounts holds per-kind quantities for one session. Mutations replace
// the whole set; callers resend every kind.
type AddOnCounts struct {
	ColdDrinks int
	Water      int
	Snacks     int
}

// Clamped coerces negative quantities to zero.
func (a AddOnCounts) Clamped() AddOnCounts {
	return AddOnCounts{
		ColdDrinks: clampQuantity(a.ColdDrinks),
		Water:      clampQuantity(a.Water),
		Snacks:     clampQuantity(a.Snacks),
	}
}

func (a AddOnCounts) Count(kind AddOnKind) int {
	switch kind {
	case AddOnColdDrink:
		return a.ColdDrinks
	case AddOnWater:
		return a.Water
	case AddOnSnack:
		return a.Snacks
	default:
		return 0
	}
}

// Units returns the total number of consumable units across all kinds.
func (a AddOnCounts) Units() int {
	clamped := a.Clamped()
	return clamped.ColdDrinks + clamped.Water + clamped.Snacks
}

func clampQuantity(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// UnitPrices is the pricing-settings snapshot consumed by cost computation.
// It is fetched fresh per operation, never cached by the engine.
type UnitPrices struct {
	ColdDrink decimal.Decimal
	Water     decimal.Decimal
	Snack     decimal.Decimal
}

func (p UnitPrices) For(kind AddOnKind) decimal.Decimal {
	switch kind {
	case AddOnColdDrink:
		return p.ColdDrink
	case AddOnWater:
		return p.Water
	case AddOnSnack:
		return p.Snack
	default:
		return decimal.Zero
	}
}
