package promo

import (
	"context"
	"time"
)

type Repository interface {
	Save(ctx context.Context, p *Promo) error
	Find(ctx context.Context, id string) (*Promo, error)
	// ListActive returns promos whose status is ACTIVE and whose window
	// covers at, newest first.
	ListActive(ctx context.Context, at time.Time) ([]*Promo, error)
	// ActiveFor returns the newest promo covering a category at the given
	// time, or (nil, nil) when the category runs at full price.
	ActiveFor(ctx context.Context, category string, at time.Time) (*Promo, error)
	SetStatus(ctx context.Context, id, status string) error
}
