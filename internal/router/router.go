package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cortado/internal/auth"
	"cortado/internal/catalog"
	"cortado/internal/insights"
	"cortado/internal/middleware"
	"cortado/internal/order"
	"cortado/internal/promo"
)

// Deps carries every handler the engine routes to.
type Deps struct {
	Auth     *auth.Handler
	Menu     *catalog.Handler
	Admin    *catalog.AdminHandler
	Orders   *order.Handler
	Promos   *promo.Handler
	Insights *insights.Handler
}

func New(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── PUBLIC ─────────────────────────
	r.GET("/menu", deps.Menu.GetMenu)
	r.GET("/promos", deps.Promos.List())
	r.GET("/insights", deps.Insights.Get)
	r.POST("/orders/quote", deps.Orders.Quote)

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", deps.Auth.Register)
		authGroup.POST("/login", deps.Auth.Login)
	}

	// ───────────────────────── STAFF ROUTES ─────────────────────────
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.POST("", deps.Orders.Create)
		orders.GET("", deps.Orders.List)
		orders.POST("/claim", deps.Orders.Claim)
		orders.GET("/:id", deps.Orders.Get)
		orders.POST("/:id/complete", deps.Orders.Complete)
		orders.POST("/:id/cancel", deps.Orders.Cancel)
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleManager),
	)
	{
		// Catalog
		admin.POST("/drinks", deps.Admin.CreateDrink)
		admin.PATCH("/drinks/:id", deps.Admin.UpdateDrink)
		admin.POST("/extras", deps.Admin.CreateExtra)
		admin.PATCH("/extras/:id", deps.Admin.UpdateExtra)

		// Promos
		admin.POST("/promos", deps.Promos.Create())
		admin.POST("/promos/:id/activate", deps.Promos.Activate())
		admin.POST("/promos/:id/end", deps.Promos.End())
		admin.GET("/promos/suggestion", deps.Promos.Suggestion())

		// Insights (manual fallback)
		admin.POST("/insights/recompute", deps.Insights.Recompute)
	}

	return r
}
