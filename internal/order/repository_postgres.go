package order

import (
	"context"
	"errors"
	"fmt"
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

// --------------------------------------------------
// SAVE (ORDER + LINES + EXTRAS, ONE TX)
// --------------------------------------------------

func (r *PostgresRepository) Save(ctx context.Context, o *Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (
			id, customer_name, status, subtotal, discount, total,
			promo_id, taken_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING created_at, updated_at
	`, o.ID, o.CustomerName, o.Status, o.Subtotal, o.Discount, o.Total,
		o.PromoID, o.TakenBy).
		Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}

	for _, line := range o.Lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_lines (
				id, order_id, drink_id, drink_name, base_price,
				quantity, unit_price, line_total, description, position
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, line.ID, o.ID, line.DrinkID, line.DrinkName, line.BasePrice,
			line.Quantity, line.UnitPrice, line.LineTotal, line.Description, line.Position)
		if err != nil {
			return err
		}

		for _, extra := range line.Extras {
			_, err := tx.Exec(ctx, `
				INSERT INTO order_line_extras (line_id, extra_id, label, price_delta, position)
				VALUES ($1, $2, $3, $4, $5)
			`, line.ID, extra.ExtraID, extra.Label, extra.PriceDelta, extra.Position)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// FIND (WITH LINES)
// --------------------------------------------------

func (r *PostgresRepository) Find(ctx context.Context, id string) (*Order, error) {
	o := &Order{}

	err := r.db.QueryRow(ctx, `
		SELECT id, customer_name, status, subtotal, discount, total,
		       promo_id, taken_by, claimed_by, receipt_url, ready_at,
		       created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&o.ID,
		&o.CustomerName,
		&o.Status,
		&o.Subtotal,
		&o.Discount,
		&o.Total,
		&o.PromoID,
		&o.TakenBy,
		&o.ClaimedBy,
		&o.ReceiptURL,
		&o.ReadyAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := r.loadLines(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *PostgresRepository) loadLines(ctx context.Context, o *Order) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, drink_id, drink_name, base_price, quantity,
		       unit_price, line_total, description, position
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[string]*Line)

	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.ID,
			&l.DrinkID,
			&l.DrinkName,
			&l.BasePrice,
			&l.Quantity,
			&l.UnitPrice,
			&l.LineTotal,
			&l.Description,
			&l.Position,
		); err != nil {
			return err
		}
		o.Lines = append(o.Lines, &l)
		byID[l.ID] = &l
	}
	rows.Close()

	extraRows, err := r.db.Query(ctx, `
		SELECT le.line_id, le.extra_id, le.label, le.price_delta, le.position
		FROM order_line_extras le
		JOIN order_lines l ON l.id = le.line_id
		WHERE l.order_id = $1
		ORDER BY le.line_id, le.position
	`, o.ID)
	if err != nil {
		return err
	}
	defer extraRows.Close()

	for extraRows.Next() {
		var lineID string
		var e LineExtra
		if err := extraRows.Scan(&lineID, &e.ExtraID, &e.Label, &e.PriceDelta, &e.Position); err != nil {
			return err
		}
		if line, ok := byID[lineID]; ok {
			line.Extras = append(line.Extras, &e)
		}
	}

	return nil
}

// --------------------------------------------------
// LIST (HEADERS ONLY)
// --------------------------------------------------

func (r *PostgresRepository) List(ctx context.Context, status string) ([]*Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, customer_name, status, subtotal, discount, total,
		       promo_id, taken_by, claimed_by, receipt_url, ready_at,
		       created_at, updated_at
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order

	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(
			&o.ID,
			&o.CustomerName,
			&o.Status,
			&o.Subtotal,
			&o.Discount,
			&o.Total,
			&o.PromoID,
			&o.TakenBy,
			&o.ClaimedBy,
			&o.ReceiptURL,
			&o.ReadyAt,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// --------------------------------------------------
// STATUS TRANSITION (GUARDED)
// --------------------------------------------------

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, from, to string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $3, updated_at = now()
		WHERE id = $1
		  AND status = $2
	`, id, from, to)

	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s is no longer %s", ErrInvalidTransition, id, from)
	}
	return nil
}

// --------------------------------------------------
// CLAIM NEXT (ATOMIC, SKIP LOCKED)
// --------------------------------------------------

// ClaimNext claims the oldest PLACED order for preparation.
// Returns (nil, nil) when no orders are waiting (NOT an error).
func (r *PostgresRepository) ClaimNext(ctx context.Context, baristaID string) (*Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id string

	err = tx.QueryRow(ctx, `
		SELECT id
		FROM orders
		WHERE status = 'PLACED'
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var claimedBy *string
	if baristaID != "" {
		claimedBy = &baristaID
	}

	// 45s of prep per drink, floor of one drink
	_, err = tx.Exec(ctx, `
		UPDATE orders
		SET status = 'IN_PREPARATION',
		    claimed_by = $2,
		    ready_at = now() + interval '45 seconds' * (
		        SELECT GREATEST(COALESCE(SUM(quantity), 0), 1)
		        FROM order_lines
		        WHERE order_id = orders.id
		    ),
		    updated_at = now()
		WHERE id = $1
	`, id, claimedBy)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.Find(ctx, id)
}

// --------------------------------------------------
// PROMOTE DUE ORDERS TO READY
// --------------------------------------------------

func (r *PostgresRepository) MarkReadyDue(ctx context.Context, now time.Time) (int, error) {
	cmd, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = 'READY', updated_at = now()
		WHERE status = 'IN_PREPARATION'
		  AND ready_at <= $1
	`, now)

	if err != nil {
		return 0, err
	}
	return int(cmd.RowsAffected()), nil
}

func (r *PostgresRepository) SetReceiptURL(ctx context.Context, id, url string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE orders
		SET receipt_url = $2, updated_at = now()
		WHERE id = $1
	`, id, url)

	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
