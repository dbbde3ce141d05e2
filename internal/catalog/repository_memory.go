package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// InMemoryRepository is used for unit tests
type InMemoryRepository struct {
	drinks map[string]Drink
	extras map[string]Extra
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		drinks: make(map[string]Drink),
		extras: make(map[string]Extra),
	}
}

func (r *InMemoryRepository) SaveDrink(ctx context.Context, d *Drink) error {
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	r.drinks[d.ID] = *d
	return nil
}

func (r *InMemoryRepository) UpdateDrink(ctx context.Context, d *Drink) error {
	if _, ok := r.drinks[d.ID]; !ok {
		return fmt.Errorf("drink %s: %w", d.ID, ErrNotFound)
	}
	d.UpdatedAt = time.Now()
	r.drinks[d.ID] = *d
	return nil
}

func (r *InMemoryRepository) FindDrink(ctx context.Context, id string) (*Drink, error) {
	d, ok := r.drinks[id]
	if !ok {
		return nil, fmt.Errorf("drink %s: %w", id, ErrNotFound)
	}
	return &d, nil
}

func (r *InMemoryRepository) ListDrinks(ctx context.Context, onlyAvailable bool) ([]*Drink, error) {
	var drinks []*Drink
	for _, d := range r.drinks {
		if onlyAvailable && !d.Available {
			continue
		}
		d := d
		drinks = append(drinks, &d)
	}
	sort.Slice(drinks, func(i, j int) bool {
		if drinks[i].Category != drinks[j].Category {
			return drinks[i].Category < drinks[j].Category
		}
		return drinks[i].Name < drinks[j].Name
	})
	return drinks, nil
}

func (r *InMemoryRepository) CountDrinks(ctx context.Context) (int, error) {
	return len(r.drinks), nil
}

func (r *InMemoryRepository) SaveExtra(ctx context.Context, e *Extra) error {
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.extras[e.ID] = *e
	return nil
}

func (r *InMemoryRepository) UpdateExtra(ctx context.Context, e *Extra) error {
	if _, ok := r.extras[e.ID]; !ok {
		return fmt.Errorf("extra %s: %w", e.ID, ErrNotFound)
	}
	e.UpdatedAt = time.Now()
	r.extras[e.ID] = *e
	return nil
}

func (r *InMemoryRepository) FindExtra(ctx context.Context, id string) (*Extra, error) {
	e, ok := r.extras[id]
	if !ok {
		return nil, fmt.Errorf("extra %s: %w", id, ErrNotFound)
	}
	return &e, nil
}

func (r *InMemoryRepository) FindExtras(ctx context.Context, ids []string) ([]*Extra, error) {
	extras := make([]*Extra, 0, len(ids))
	for _, id := range ids {
		e, ok := r.extras[id]
		if !ok {
			return nil, fmt.Errorf("extra %s: %w", id, ErrNotFound)
		}
		extras = append(extras, &e)
	}
	return extras, nil
}

func (r *InMemoryRepository) ListExtras(ctx context.Context, onlyAvailable bool) ([]*Extra, error) {
	var extras []*Extra
	for _, e := range r.extras {
		if onlyAvailable && !e.Available {
			continue
		}
		e := e
		extras = append(extras, &e)
	}
	sort.Slice(extras, func(i, j int) bool {
		return extras[i].Label < extras[j].Label
	})
	return extras, nil
}
