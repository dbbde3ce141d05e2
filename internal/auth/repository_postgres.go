package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStaffRepository struct {
	db *pgxpool.Pool
}

func NewPostgresStaffRepository(db *pgxpool.Pool) *PostgresStaffRepository {
	return &PostgresStaffRepository{db: db}
}

func (r *PostgresStaffRepository) Save(ctx context.Context, staff *Staff) error {
	// Generate UUID if not already set
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO staff (id, name, email, password, role)
		VALUES ($1, $2, $3, $4, $5)
	`, staff.ID, staff.Name, staff.Email, staff.Password, staff.Role)

	return err
}

func (r *PostgresStaffRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists int

	err := r.db.QueryRow(ctx, `
		SELECT 1 FROM staff WHERE email = $1 LIMIT 1
	`, email).Scan(&exists)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PostgresStaffRepository) FindByEmail(ctx context.Context, email string) (*Staff, error) {
	staff := &Staff{}

	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, password, role
		FROM staff
		WHERE email = $1
	`, email).Scan(&staff.ID, &staff.Name, &staff.Email, &staff.Password, &staff.Role)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	return staff, nil
}
