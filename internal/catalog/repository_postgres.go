package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// DRINKS
// --------------------------------------------------

func (r *PostgresRepository) SaveDrink(ctx context.Context, d *Drink) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO drinks (id, name, category, base_price, calories, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at
	`, d.ID, d.Name, d.Category, d.BasePrice, d.Calories, d.Available).
		Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *PostgresRepository) UpdateDrink(ctx context.Context, d *Drink) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE drinks
		SET name = $2,
		    category = $3,
		    base_price = $4,
		    calories = $5,
		    available = $6,
		    updated_at = now()
		WHERE id = $1
	`, d.ID, d.Name, d.Category, d.BasePrice, d.Calories, d.Available)

	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("drink %s: %w", d.ID, ErrNotFound)
	}
	return nil
}

func (r *PostgresRepository) FindDrink(ctx context.Context, id string) (*Drink, error) {
	var d Drink

	err := r.db.QueryRow(ctx, `
		SELECT id, name, category, base_price, calories, available, created_at, updated_at
		FROM drinks
		WHERE id = $1
	`, id).Scan(
		&d.ID,
		&d.Name,
		&d.Category,
		&d.BasePrice,
		&d.Calories,
		&d.Available,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("drink %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	return &d, nil
}

func (r *PostgresRepository) ListDrinks(
	ctx context.Context,
	onlyAvailable bool,
) ([]*Drink, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, name, category, base_price, calories, available, created_at, updated_at
		FROM drinks
		WHERE ($1 = false OR available = true)
		ORDER BY category, name
	`, onlyAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drinks []*Drink

	for rows.Next() {
		var d Drink
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Category,
			&d.BasePrice,
			&d.Calories,
			&d.Available,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		drinks = append(drinks, &d)
	}

	return drinks, nil
}

func (r *PostgresRepository) CountDrinks(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM drinks`).Scan(&count)
	return count, err
}

// --------------------------------------------------
// EXTRAS
// --------------------------------------------------

func (r *PostgresRepository) SaveExtra(ctx context.Context, e *Extra) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO extras (id, label, price_delta, calories, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING created_at, updated_at
	`, e.ID, e.Label, e.PriceDelta, e.Calories, e.Available).
		Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *PostgresRepository) UpdateExtra(ctx context.Context, e *Extra) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE extras
		SET label = $2,
		    price_delta = $3,
		    calories = $4,
		    available = $5,
		    updated_at = now()
		WHERE id = $1
	`, e.ID, e.Label, e.PriceDelta, e.Calories, e.Available)

	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("extra %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (r *PostgresRepository) FindExtra(ctx context.Context, id string) (*Extra, error) {
	var e Extra

	err := r.db.QueryRow(ctx, `
		SELECT id, label, price_delta, calories, available, created_at, updated_at
		FROM extras
		WHERE id = $1
	`, id).Scan(
		&e.ID,
		&e.Label,
		&e.PriceDelta,
		&e.Calories,
		&e.Available,
		&e.CreatedAt,
		&e.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("extra %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	return &e, nil
}

func (r *PostgresRepository) FindExtras(
	ctx context.Context,
	ids []string,
) ([]*Extra, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, label, price_delta, calories, available, created_at, updated_at
		FROM extras
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*Extra, len(ids))

	for rows.Next() {
		var e Extra
		if err := rows.Scan(
			&e.ID,
			&e.Label,
			&e.PriceDelta,
			&e.Calories,
			&e.Available,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		byID[e.ID] = &e
	}

	// Re-assemble in request order, the wrap order matters downstream.
	extras := make([]*Extra, 0, len(ids))
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("extra %s: %w", id, ErrNotFound)
		}
		extras = append(extras, e)
	}

	return extras, nil
}

func (r *PostgresRepository) ListExtras(
	ctx context.Context,
	onlyAvailable bool,
) ([]*Extra, error) {

	rows, err := r.db.Query(ctx, `
		SELECT id, label, price_delta, calories, available, created_at, updated_at
		FROM extras
		WHERE ($1 = false OR available = true)
		ORDER BY label
	`, onlyAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extras []*Extra

	for rows.Next() {
		var e Extra
		if err := rows.Scan(
			&e.ID,
			&e.Label,
			&e.PriceDelta,
			&e.Calories,
			&e.Available,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		extras = append(extras, &e)
	}

	return extras, nil
}
