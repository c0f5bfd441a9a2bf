package app

import (
	"pomodoro_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pomodoro_backend/docs"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	// Swagger 文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	// Prometheus 指标端点
	router.GET("/metrics", monitoring.PrometheusHandler())

	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")
	{
		cycles := api.Group("/cycles")
		{
			cycles.POST("", c.cycle.Create)
			cycles.GET("", c.cycle.List)
			cycles.GET("/active", c.cycle.GetActive)
			cycles.GET("/:id", c.cycle.Get)
			cycles.PUT("/:id", c.cycle.Update)
			cycles.DELETE("/:id", c.cycle.Delete)
			cycles.PUT("/:id/activate", c.cycle.Activate)
			cycles.PUT("/:id/reset-week", c.cycle.ResetWeek)
		}

		subjects := api.Group("/subjects")
		{
			subjects.POST("", c.subject.Create)
			subjects.GET("", c.subject.List)
			subjects.PUT("/:id", c.subject.Update)
			subjects.DELETE("/:id", c.subject.Delete)
		}

		sessions := api.Group("/sessions")
		{
			sessions.POST("", c.session.Create)
			sessions.GET("", c.session.List)
		}

		// 固定路径必须在 :date 参数路由之前注册
		stats := api.Group("/stats")
		{
			stats.GET("/general", c.stats.GetGeneral)
			stats.GET("/chart-data", c.stats.GetChartData)
			stats.GET("/heatmap", c.stats.GetHeatmap)
			stats.GET("/patterns", c.stats.GetPatterns)
			stats.GET("/ranking", c.stats.GetRanking)
			stats.GET("/:date", c.stats.GetByDate)
			stats.PUT("/:date", c.stats.UpdateByDate)
		}

		export := api.Group("/export")
		{
			export.GET("/csv", c.export.ExportCSV)
			export.GET("/json", c.export.ExportJSON)
		}

		backup := api.Group("/backup")
		{
			backup.POST("/create", c.backup.Create)
			backup.POST("/restore", c.backup.Restore)
		}
	}
}
