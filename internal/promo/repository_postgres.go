package promo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, p *Promo) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO promos (
			id, title, category, percent_off, status,
			starts_at, ends_at, suggested, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		RETURNING created_at
	`, p.ID, p.Title, p.Category, p.PercentOff, p.Status,
		p.StartsAt, p.EndsAt, p.Suggested).
		Scan(&p.CreatedAt)
}

func (r *PostgresRepository) Find(ctx context.Context, id string) (*Promo, error) {
	p := &Promo{}

	err := r.db.QueryRow(ctx, `
		SELECT id, title, category, percent_off, status,
		       starts_at, ends_at, suggested, created_at
		FROM promos
		WHERE id = $1
	`, id).Scan(
		&p.ID,
		&p.Title,
		&p.Category,
		&p.PercentOff,
		&p.Status,
		&p.StartsAt,
		&p.EndsAt,
		&p.Suggested,
		&p.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *PostgresRepository) ListActive(
	ctx context.Context,
	at time.Time,
) ([]*Promo, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, title, category, percent_off, status,
		       starts_at, ends_at, suggested, created_at
		FROM promos
		WHERE status = 'ACTIVE'
		  AND starts_at <= $1
		  AND ends_at > $1
		ORDER BY created_at DESC
	`, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []*Promo

	for rows.Next() {
		p := &Promo{}
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Category,
			&p.PercentOff,
			&p.Status,
			&p.StartsAt,
			&p.EndsAt,
			&p.Suggested,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}

	return promos, nil
}

func (r *PostgresRepository) ActiveFor(
	ctx context.Context,
	category string,
	at time.Time,
) (*Promo, error) {

	p := &Promo{}

	err := r.db.QueryRow(ctx, `
		SELECT id, title, category, percent_off, status,
		       starts_at, ends_at, suggested, created_at
		FROM promos
		WHERE status = 'ACTIVE'
		  AND category = $1
		  AND starts_at <= $2
		  AND ends_at > $2
		ORDER BY created_at DESC
		LIMIT 1
	`, category, at).Scan(
		&p.ID,
		&p.Title,
		&p.Category,
		&p.PercentOff,
		&p.Status,
		&p.StartsAt,
		&p.EndsAt,
		&p.Suggested,
		&p.CreatedAt,
	)

	if err != nil {
		// Full price is the normal case, not an error
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return p, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id, status string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE promos
		SET status = $2
		WHERE id = $1
	`, id, status)

	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPromoNotFound
	}
	return nil
}
