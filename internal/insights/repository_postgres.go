package insights

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoData = errors.New("no data available")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert or update the snapshot for a category
func (r *PostgresRepository) Upsert(ctx context.Context, s Snapshot) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO insight_snapshots (
			category,
			avg_line_total,
			median_line_total,
			units_sold,
			sample_size
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category)
		DO UPDATE SET
			avg_line_total = EXCLUDED.avg_line_total,
			median_line_total = EXCLUDED.median_line_total,
			units_sold = EXCLUDED.units_sold,
			sample_size = EXCLUDED.sample_size,
			updated_at = now()
	`,
		s.Category,
		s.AvgLineTotal,
		s.MedianLineTotal,
		s.UnitsSold,
		s.SampleSize,
	)

	return err
}

func (r *PostgresRepository) Get(ctx context.Context, category string) (*Snapshot, error) {
	var s Snapshot

	err := r.db.QueryRow(ctx, `
		SELECT category, avg_line_total, median_line_total,
		       units_sold, sample_size, updated_at
		FROM insight_snapshots
		WHERE category = $1
	`, category).Scan(
		&s.Category,
		&s.AvgLineTotal,
		&s.MedianLineTotal,
		&s.UnitsSold,
		&s.SampleSize,
		&s.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoData
		}
		return nil, err
	}

	return &s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Snapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT category, avg_line_total, median_line_total,
		       units_sold, sample_size, updated_at
		FROM insight_snapshots
		ORDER BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*Snapshot

	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(
			&s.Category,
			&s.AvgLineTotal,
			&s.MedianLineTotal,
			&s.UnitsSold,
			&s.SampleSize,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &s)
	}

	return snapshots, nil
}
