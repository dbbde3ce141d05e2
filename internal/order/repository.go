package order

import (
	"context"
	"time"
)

type Repository interface {
	// Save persists the order with its lines and line extras atomically.
	Save(ctx context.Context, o *Order) error
	// Find returns the order with lines and extras, wrap order intact.
	Find(ctx context.Context, id string) (*Order, error)
	// List returns order headers (no lines), newest first. Empty status
	// means all.
	List(ctx context.Context, status string) ([]*Order, error)
	// UpdateStatus moves id from → to, guarded on the current status.
	// Losing the guard race reports ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id, from, to string) error
	// ClaimNext atomically claims the oldest PLACED order into
	// IN_PREPARATION and schedules ready_at. Returns (nil, nil) when
	// nothing is waiting. Empty baristaID records a system claim.
	ClaimNext(ctx context.Context, baristaID string) (*Order, error)
	// MarkReadyDue promotes IN_PREPARATION orders whose ready_at has
	// passed. Returns how many were promoted.
	MarkReadyDue(ctx context.Context, now time.Time) (int, error)
	SetReceiptURL(ctx context.Context, id, url string) error
}
