package insights

import (
	"context"
	"log"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"cortado/internal/catalog"
)

// Snapshots need a handful of sales before they say anything useful.
const minSampleSize = 3

type Service struct {
	db   *pgxpool.Pool
	repo Repository
}

func NewService(db *pgxpool.Pool, repo Repository) *Service {
	return &Service{
		db:   db,
		repo: repo,
	}
}

// Recompute rebuilds the snapshot for every category from non-cancelled
// order lines.
func (s *Service) Recompute(ctx context.Context) error {
	for _, category := range catalog.Categories {
		if err := s.recomputeCategory(ctx, string(category)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) recomputeCategory(ctx context.Context, category string) error {
	rows, err := s.db.Query(ctx, `
		SELECT l.line_total, l.quantity
		FROM order_lines l
		JOIN drinks d ON d.id = l.drink_id
		JOIN orders o ON o.id = l.order_id
		WHERE d.category = $1
		  AND o.status != 'CANCELLED'
	`, category)
	if err != nil {
		return err
	}
	defer rows.Close()

	var totals []decimal.Decimal
	units := 0

	for rows.Next() {
		var lineTotal decimal.Decimal
		var quantity int
		if err := rows.Scan(&lineTotal, &quantity); err != nil {
			return err
		}
		totals = append(totals, lineTotal)
		units += quantity
	}

	// Require minimum samples
	if len(totals) < minSampleSize {
		log.Printf("[INSIGHTS] Skipping %s (samples=%d)", category, len(totals))
		return nil
	}

	snap := summarize(category, totals, units)

	log.Printf(
		"[INSIGHTS] %s → avg=%s median=%s units=%d samples=%d",
		category, snap.AvgLineTotal, snap.MedianLineTotal, snap.UnitsSold, snap.SampleSize,
	)

	return s.repo.Upsert(ctx, snap)
}

// summarize folds line totals into a snapshot. Median is the upper
// middle of the sorted totals.
func summarize(category string, totals []decimal.Decimal, units int) Snapshot {
	sorted := make([]decimal.Decimal, len(totals))
	copy(sorted, totals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	sum := decimal.Zero
	for _, t := range sorted {
		sum = sum.Add(t)
	}

	return Snapshot{
		Category:        category,
		AvgLineTotal:    sum.Div(decimal.NewFromInt(int64(len(sorted)))).Round(2),
		MedianLineTotal: sorted[len(sorted)/2],
		UnitsSold:       units,
		SampleSize:      len(sorted),
	}
}

// --------------------------------------------------
// Reads (also the promo side's insights source)
// --------------------------------------------------

func (s *Service) Snapshot(ctx context.Context, category string) (*Snapshot, error) {
	return s.repo.Get(ctx, category)
}

func (s *Service) Snapshots(ctx context.Context) ([]*Snapshot, error) {
	return s.repo.List(ctx)
}
