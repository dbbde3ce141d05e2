package order

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// InMemoryRepository is used for unit tests. The mutex mirrors the
// claim-one-order-at-a-time guarantee of the Postgres version.
type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[string]*Order
	seq    []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[string]*Order),
	}
}

func copyOrder(o *Order) *Order {
	cp := *o
	cp.Lines = nil
	for _, l := range o.Lines {
		lc := *l
		lc.Extras = nil
		for _, e := range l.Extras {
			ec := *e
			lc.Extras = append(lc.Extras, &ec)
		}
		cp.Lines = append(cp.Lines, &lc)
	}
	return &cp
}

func (r *InMemoryRepository) Save(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	r.orders[o.ID] = copyOrder(o)
	r.seq = append(r.seq, o.ID)
	return nil
}

func (r *InMemoryRepository) Find(ctx context.Context, id string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyOrder(o), nil
}

func (r *InMemoryRepository) List(ctx context.Context, status string) ([]*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var orders []*Order
	// Newest first, matching the Postgres ORDER BY
	for i := len(r.seq) - 1; i >= 0; i-- {
		o := r.orders[r.seq[i]]
		if status != "" && o.Status != status {
			continue
		}
		header := *o
		header.Lines = nil
		orders = append(orders, &header)
	}
	return orders, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	if o.Status != from {
		return fmt.Errorf("%w: order %s is no longer %s", ErrInvalidTransition, id, from)
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) ClaimNext(ctx context.Context, baristaID string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.seq {
		o := r.orders[id]
		if o.Status != StatusPlaced {
			continue
		}

		units := 0
		for _, l := range o.Lines {
			units += l.Quantity
		}
		if units == 0 {
			units = 1
		}

		// Same estimate the SQL claim uses: 45s of prep per drink
		readyAt := time.Now().Add(time.Duration(units) * 45 * time.Second)

		o.Status = StatusInPreparation
		o.ReadyAt = &readyAt
		o.UpdatedAt = time.Now()
		if baristaID != "" {
			claimed := baristaID
			o.ClaimedBy = &claimed
		}
		return copyOrder(o), nil
	}

	return nil, nil
}

func (r *InMemoryRepository) MarkReadyDue(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	promoted := 0
	for _, o := range r.orders {
		if o.Status == StatusInPreparation && o.ReadyAt != nil && !o.ReadyAt.After(now) {
			o.Status = StatusReady
			o.UpdatedAt = time.Now()
			promoted++
		}
	}
	return promoted, nil
}

func (r *InMemoryRepository) SetReceiptURL(ctx context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	u := url
	o.ReceiptURL = &u
	o.UpdatedAt = time.Now()
	return nil
}
