package insights

import "context"

type Repository interface {
	Upsert(ctx context.Context, s Snapshot) error
	Get(ctx context.Context, category string) (*Snapshot, error)
	List(ctx context.Context) ([]*Snapshot, error)
}
