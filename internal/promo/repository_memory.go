package promo

import (
	"context"
	"sort"
	"time"
)

// InMemoryRepository is used for unit tests
type InMemoryRepository struct {
	promos map[string]Promo
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		promos: make(map[string]Promo),
	}
}

func (r *InMemoryRepository) Save(ctx context.Context, p *Promo) error {
	p.CreatedAt = time.Now()
	r.promos[p.ID] = *p
	return nil
}

func (r *InMemoryRepository) Find(ctx context.Context, id string) (*Promo, error) {
	p, ok := r.promos[id]
	if !ok {
		return nil, ErrPromoNotFound
	}
	return &p, nil
}

func (r *InMemoryRepository) covering(category string, at time.Time) []*Promo {
	var matched []*Promo
	for _, p := range r.promos {
		if p.Status != StatusActive {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if p.StartsAt.After(at) || !p.EndsAt.After(at) {
			continue
		}
		p := p
		matched = append(matched, &p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func (r *InMemoryRepository) ListActive(ctx context.Context, at time.Time) ([]*Promo, error) {
	return r.covering("", at), nil
}

func (r *InMemoryRepository) ActiveFor(ctx context.Context, category string, at time.Time) (*Promo, error) {
	matched := r.covering(category, at)
	if len(matched) == 0 {
		return nil, nil
	}
	return matched[0], nil
}

func (r *InMemoryRepository) SetStatus(ctx context.Context, id, status string) error {
	p, ok := r.promos[id]
	if !ok {
		return ErrPromoNotFound
	}
	p.Status = status
	r.promos[id] = p
	return nil
}
