package main

import (
	"context"
	"log"
	"os"
	"time"

	"cortado/internal/db"
	"cortado/internal/order"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, using environment variables")
	}

	log.Println("☕ Barista worker starting...")

	// Validate database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	// Database connection
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// The worker only claims and promotes orders, it never prices,
	// quotes or archives, so those collaborators stay nil.
	repo := order.NewPostgresRepository(pgDB)
	service := order.NewService(repo, nil, nil, nil)

	log.Println("✅ Barista worker initialized and running...")
	log.Println("Working the order queue every 2 seconds. Press Ctrl+C to stop.")

	// Work the queue indefinitely
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		err := service.ProcessOne(context.Background())
		if err != nil {
			log.Printf("⚠️  Fulfillment error: %v", err)
		}
	}
}
