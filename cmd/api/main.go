package main

import (
	"context"
	"log"
	"os"
	"time"

	"cortado/internal/auth"
	"cortado/internal/catalog"
	"cortado/internal/db"
	"cortado/internal/insights"
	"cortado/internal/order"
	"cortado/internal/promo"
	"cortado/internal/router"
	"cortado/internal/storage"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── REPOS ─────────────────────────
	staffRepo := auth.NewPostgresStaffRepository(pgDB)
	catalogRepo := catalog.NewPostgresRepository(pgDB)
	promoRepo := promo.NewPostgresRepository(pgDB)
	orderRepo := order.NewPostgresRepository(pgDB)
	insightRepo := insights.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	authService := auth.NewService(staffRepo)
	catalogService := catalog.NewService(catalogRepo)
	insightsService := insights.NewService(pgDB, insightRepo)
	promoService := promo.NewService(promoRepo, insightsService)

	orderService := order.NewService(
		orderRepo,
		catalogService,
		promoService,
		r2Client,
	)

	// ───────────────────────── SEED ─────────────────────────
	if path := os.Getenv("MENU_SEED_PATH"); path != "" {
		if err := catalogService.Seed(context.Background(), path); err != nil {
			log.Fatalf("❌ Menu seed failed: %v", err)
		}
	}

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.New(router.Deps{
		Auth:     auth.NewHandler(authService),
		Menu:     catalog.NewHandler(catalogService),
		Admin:    catalog.NewAdminHandler(catalogService),
		Orders:   order.NewHandler(orderService),
		Promos:   promo.NewHandler(promoService),
		Insights: insights.NewHandler(insightsService),
	})

	// ───────────────────────── PICKUP CHECK ─────────────────────────
	// Claimed orders go READY on schedule even when no barista worker runs.
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			n, err := orderService.MarkReadyDue(context.Background())
			if err != nil {
				log.Printf("⚠️  Ready check failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("✅ %d order(s) ready for pickup", n)
			}
		}
	}()

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 API running at http://localhost:%s", port)
	r.Run(":" + port)
}
