package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	admin := APIKeyAuthMiddleware(h.cfg, h.logger)

	// Прием и просмотр сообщений
	reports := api.Group("/reports")
	{
		reports.POST("", h.createReport)
		reports.GET("", h.listReports)
		reports.GET("/:id", h.getReport)
		reports.PATCH("/:id/verify", admin, h.verifyReport)
	}

	// Webhook SMS-шлюза
	api.POST("/ingest/sms", h.ingestSMS)

	// Инциденты создаются только кластеризацией, здесь чтение и деактивация
	incidents := api.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.GET("/nearby", h.nearbyIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.DELETE("/:id", admin, h.deleteIncident)
	}

	resources := api.Group("/resources")
	{
		resources.POST("", h.createResource)
		resources.GET("", h.listResources)
		resources.GET("/summary", h.resourceSummary)
		resources.GET("/:id", h.getResource)
		resources.PUT("/:id", h.updateResource)
		resources.DELETE("/:id", admin, h.deleteResource)
	}

	analytics := api.Group("/analytics")
	{
		analytics.GET("/reports/historical", h.reportHistory)
		analytics.GET("/incidents/trends", h.incidentTrends)
		analytics.GET("/resources/trends", h.resourceTrends)
		analytics.GET("/dashboard", h.dashboard)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
