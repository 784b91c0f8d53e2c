package router

import (
	"github.com/gin-gonic/gin"

	"testreport/internal/config"
	"testreport/internal/handler"
	"testreport/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	reportH *handler.ReportHandler,
	translateH *handler.TranslateHandler,
	statsH *handler.StatsHandler,
	aiH *handler.AIHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	reports := v1.Group("/reports")
	reports.POST("", reportH.Upload)
	reports.GET("", reportH.List)
	reports.GET("/:id", reportH.GetByID)
	reports.GET("/:id/failures", reportH.ListFailures)
	reports.GET("/:id/export", reportH.Export)
	reports.GET("/:id/file", reportH.GetFileURL)
	reports.DELETE("/:id", middleware.AuthMiddleware(&cfg.JWT), reportH.Delete)

	v1.POST("/translate", translateH.Translate)
	v1.GET("/stats", statsH.GetStats)
	v1.GET("/ai/status", aiH.Status)

	return r
}
