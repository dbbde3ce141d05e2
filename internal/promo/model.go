package promo

import (
	"time"

	"github.com/shopspring/decimal"

	"cortado/internal/pricing"
)

const (
	StatusDraft  = "DRAFT"
	StatusActive = "ACTIVE"
	StatusEnded  = "ENDED"
)

// --------------------------------------------------
// PROMO (PERSISTED ENTITY)
// --------------------------------------------------

type Promo struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	PercentOff int       `json:"percent_off"` // 1..90
	Status     string    `json:"status"`      // DRAFT | ACTIVE | ENDED
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Suggested  bool      `json:"suggested"`
	CreatedAt  time.Time `json:"created_at"`
}

// Retention is the fraction of the price kept after the discount.
func (p *Promo) Retention() decimal.Decimal {
	return decimal.NewFromInt(100 - int64(p.PercentOff)).Div(decimal.NewFromInt(100))
}

// Discount converts the promo into a pricing operation that covers the
// whole chain, base and modifiers alike.
func (p *Promo) Discount() *pricing.Discount {
	return pricing.NewUniformDiscount(p.Retention())
}

// --------------------------------------------------
// SUGGESTION (READ-ONLY)
// --------------------------------------------------

type Suggestion struct {
	Category    string `json:"category"`
	UnitsSold   int    `json:"units_sold"`
	MedianUnits int    `json:"median_units"`
	Action      string `json:"action"` // PERCENT_OFF | HAPPY_HOUR | FEATURE_ITEM
	PercentOff  int    `json:"percent_off"`
	Reason      string `json:"reason"`
}
