package catalog

import "context"

type Repository interface {
	SaveDrink(ctx context.Context, d *Drink) error
	UpdateDrink(ctx context.Context, d *Drink) error
	FindDrink(ctx context.Context, id string) (*Drink, error)
	ListDrinks(ctx context.Context, onlyAvailable bool) ([]*Drink, error)
	CountDrinks(ctx context.Context) (int, error)

	SaveExtra(ctx context.Context, e *Extra) error
	UpdateExtra(ctx context.Context, e *Extra) error
	FindExtra(ctx context.Context, id string) (*Extra, error)
	// FindExtras resolves ids preserving their order. Any unknown id
	// fails the whole lookup.
	FindExtras(ctx context.Context, ids []string) ([]*Extra, error)
	ListExtras(ctx context.Context, onlyAvailable bool) ([]*Extra, error)
}
