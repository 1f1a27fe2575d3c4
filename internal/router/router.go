package router

import (
	"github.com/mutiaradiva/Chachingify-Website/internal/config"
	"github.com/mutiaradiva/Chachingify-Website/internal/handler"
	"github.com/mutiaradiva/Chachingify-Website/internal/ledger"
	"github.com/mutiaradiva/Chachingify-Website/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires every API route.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// uploaded receipts
	r.Static("/uploads", cfg.Upload.Dir)

	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(db, cfg)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)
	protected.PUT("/me", handler.UpdateProfile(db))
	protected.PUT("/me/password", handler.ChangePassword(db))

	accountHandler := handler.NewAccountHandler(db)
	protected.GET("/accounts", accountHandler.List)
	protected.GET("/accounts/:id", accountHandler.Get)
	protected.POST("/accounts", accountHandler.Create)
	protected.PUT("/accounts/:id", accountHandler.Update)
	protected.DELETE("/accounts/:id", accountHandler.Delete)

	categoryHandler := handler.NewCategoryHandler(db)
	protected.GET("/categories", categoryHandler.List)
	protected.GET("/categories/:id", categoryHandler.Get)
	protected.POST("/categories", categoryHandler.Create)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	txHandler := handler.NewTransactionHandler(db, ledger.New(db), cfg.Upload.Dir)
	protected.GET("/transactions", txHandler.List)
	protected.GET("/transactions/:id", txHandler.Get)
	protected.POST("/transactions", txHandler.Create)
	protected.PUT("/transactions/:id", txHandler.Update)
	protected.DELETE("/transactions/:id", txHandler.Delete)

	analyticsHandler := handler.NewAnalyticsHandler(db)
	protected.GET("/analytics/summary", analyticsHandler.Summary)
	protected.GET("/analytics/by-category", analyticsHandler.ByCategory)
	protected.GET("/analytics/trend", analyticsHandler.Trend)

	goalHandler := handler.NewGoalHandler(db)
	protected.GET("/goals", goalHandler.List)
	protected.GET("/goals/:id", goalHandler.Get)
	protected.POST("/goals", goalHandler.Create)
	protected.PUT("/goals/:id", goalHandler.Update)
	protected.DELETE("/goals/:id", goalHandler.Delete)
	protected.POST("/goals/:id/contribute", goalHandler.Contribute)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	auditHandler := handler.NewAuditHandler(db, cfg.App.PageSize)
	protected.GET("/logs", auditHandler.List)

	return r
}
