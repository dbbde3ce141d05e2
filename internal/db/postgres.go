package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// STAFF
	// -------------------------------
	staffTableSQL := `
		CREATE TABLE IF NOT EXISTS staff (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'BARISTA',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, staffTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// DRINKS
	// -------------------------------
	drinksTableSQL := `
		CREATE TABLE IF NOT EXISTS drinks (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(50) NOT NULL,
			base_price NUMERIC(10,2) NOT NULL,
			calories INT NOT NULL DEFAULT 0,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, drinksTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// EXTRAS
	// -------------------------------
	extrasTableSQL := `
		CREATE TABLE IF NOT EXISTS extras (
			id UUID PRIMARY KEY,
			label VARCHAR(255) NOT NULL,
			price_delta NUMERIC(10,2) NOT NULL,
			calories INT NOT NULL DEFAULT 0,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, extrasTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// PROMOS
	// -------------------------------
	promosTableSQL := `
		CREATE TABLE IF NOT EXISTS promos (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			category VARCHAR(50) NOT NULL,
			percent_off INT NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'DRAFT',
			starts_at TIMESTAMP NOT NULL,
			ends_at TIMESTAMP NOT NULL,
			suggested BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, promosTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// ORDERS
	// -------------------------------
	ordersTableSQL := `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_name VARCHAR(255) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'PLACED',
			subtotal NUMERIC(10,2) NOT NULL,
			discount NUMERIC(10,2) NOT NULL DEFAULT 0,
			total NUMERIC(10,2) NOT NULL,
			promo_id UUID NULL REFERENCES promos(id),
			taken_by UUID NULL REFERENCES staff(id),
			claimed_by UUID NULL REFERENCES staff(id),
			receipt_url VARCHAR(500) NULL,
			ready_at TIMESTAMP NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, ordersTableSQL); err != nil {
		return err
	}

	// Claim query scans by status, oldest first
	orderStatusIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_orders_status_created
		ON orders (status, created_at)
	`
	if _, err := db.Exec(ctx, orderStatusIndexSQL); err != nil {
		return err
	}

	// -------------------------------
	// ORDER LINES
	// -------------------------------
	orderLinesTableSQL := `
		CREATE TABLE IF NOT EXISTS order_lines (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			drink_id UUID NOT NULL REFERENCES drinks(id),
			drink_name VARCHAR(255) NOT NULL,
			base_price NUMERIC(10,2) NOT NULL,
			quantity INT NOT NULL,
			unit_price NUMERIC(10,2) NOT NULL,
			line_total NUMERIC(10,2) NOT NULL,
			description TEXT NOT NULL,
			position INT NOT NULL
		)
	`
	if _, err := db.Exec(ctx, orderLinesTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// ORDER LINE EXTRAS (position preserves wrap order)
	// -------------------------------
	orderLineExtrasTableSQL := `
		CREATE TABLE IF NOT EXISTS order_line_extras (
			line_id UUID NOT NULL REFERENCES order_lines(id),
			extra_id UUID NOT NULL REFERENCES extras(id),
			label VARCHAR(255) NOT NULL,
			price_delta NUMERIC(10,2) NOT NULL,
			position INT NOT NULL,
			PRIMARY KEY (line_id, position)
		)
	`
	if _, err := db.Exec(ctx, orderLineExtrasTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// INSIGHT SNAPSHOTS
	// -------------------------------
	insightSnapshotsTableSQL := `
		CREATE TABLE IF NOT EXISTS insight_snapshots (
			category VARCHAR(50) PRIMARY KEY,
			avg_line_total NUMERIC(10,2) NOT NULL,
			median_line_total NUMERIC(10,2) NOT NULL,
			units_sold INT NOT NULL,
			sample_size INT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, insightSnapshotsTableSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
