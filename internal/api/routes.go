package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with middleware and every route
func NewRouter(h *Handler, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(h.logger))
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
	}
	if len(corsOrigins) > 0 {
		router.Use(corsMiddleware(corsOrigins))
	}

	SetupRoutes(router, h)
	return router
}

func SetupRoutes(router *gin.Engine, h *Handler) {
	router.GET("/healthz", h.Health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	api := router.Group("/api")
	{
		api.POST("/login", h.Login)
	}

	protected := api.Group("", h.RequireSession())
	{
		protected.POST("/logout", h.Logout)
		protected.GET("/session", h.GetSession)
		protected.GET("/filters", h.GetFilterOptions)
		protected.GET("/dashboard", h.GetDashboard)
		protected.GET("/metrics/summary", h.GetSummary)
		protected.GET("/charts/monthly", h.GetMonthlySchedule)
		protected.GET("/charts/quarterly", h.GetQuarterlyVolume)
		protected.GET("/charts/categories", h.GetCategorySplit)
		protected.GET("/charts/builders", h.GetBuilderTotals)
		protected.GET("/records", h.GetRecords)
		protected.GET("/export.csv", h.ExportCSV)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}
