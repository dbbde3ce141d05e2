package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Order lifecycle: PLACED → IN_PREPARATION → READY → COMPLETED.
// CANCELLED is reachable from PLACED only.
const (
	StatusPlaced        = "PLACED"
	StatusInPreparation = "IN_PREPARATION"
	StatusReady         = "READY"
	StatusCompleted     = "COMPLETED"
	StatusCancelled     = "CANCELLED"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPlaced, StatusInPreparation, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func canTransition(from, to string) bool {
	switch from {
	case StatusPlaced:
		return to == StatusInPreparation || to == StatusCancelled
	case StatusInPreparation:
		return to == StatusReady
	case StatusReady:
		return to == StatusCompleted
	}
	return false
}

func transitionError(from, to string) error {
	return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, from, to)
}

type Order struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	PromoID      *string         `json:"promo_id,omitempty"`
	TakenBy      *string         `json:"taken_by,omitempty"`
	ClaimedBy    *string         `json:"claimed_by,omitempty"`
	ReceiptURL   *string         `json:"receipt_url,omitempty"`
	ReadyAt      *time.Time      `json:"ready_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Lines        []*Line         `json:"lines,omitempty"`
}

// Line snapshots the priced chain at order time. Name, prices and extras
// are denormalized so receipts replay history even after the menu changes.
type Line struct {
	ID          string          `json:"id"`
	DrinkID     string          `json:"drink_id"`
	DrinkName   string          `json:"drink_name"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Description string          `json:"description"`
	Position    int             `json:"position"`
	Extras      []*LineExtra    `json:"extras,omitempty"`
}

// LineExtra keeps the wrap order via Position.
type LineExtra struct {
	ExtraID    string          `json:"extra_id"`
	Label      string          `json:"label"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	Position   int             `json:"position"`
}
