package insights

import (
	"context"
	"sort"
	"time"
)

// InMemoryRepository is used for unit tests
type InMemoryRepository struct {
	snapshots map[string]Snapshot
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		snapshots: make(map[string]Snapshot),
	}
}

func (r *InMemoryRepository) Upsert(ctx context.Context, s Snapshot) error {
	s.UpdatedAt = time.Now()
	r.snapshots[s.Category] = s
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, category string) (*Snapshot, error) {
	s, ok := r.snapshots[category]
	if !ok {
		return nil, ErrNoData
	}
	return &s, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*Snapshot, error) {
	var snapshots []*Snapshot
	for _, s := range r.snapshots {
		s := s
		snapshots = append(snapshots, &s)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Category < snapshots[j].Category
	})
	return snapshots, nil
}
