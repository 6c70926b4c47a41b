package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/crisisflow/internal/config"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/sirupsen/logrus"
)

// Services - сервисы, которые обслуживает HTTP API
type Services struct {
	Reports   service.ReportService
	Incidents service.IncidentService
	Resources service.ResourceService
	Analytics service.AnalyticsService
}

type Handler struct {
	reportService    service.ReportService
	incidentService  service.IncidentService
	resourceService  service.ResourceService
	analyticsService service.AnalyticsService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(services Services, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		reportService:    services.Reports,
		incidentService:  services.Incidents,
		resourceService:  services.Resources,
		analyticsService: services.Analytics,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// parseID разбирает числовой идентификатор из пути
func parseID(c *gin.Context, entity string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + entity + " ID"})
		return 0, false
	}
	return id, true
}

// parsePage читает skip и limit из строки запроса
func parsePage(c *gin.Context) (int, int, bool) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skip parameter"})
		return 0, 0, false
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > 500 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
		return 0, 0, false
	}
	return skip, limit, true
}

// respondError переводит ошибку сервиса в HTTP-статус
func respondError(c *gin.Context, log *logrus.Entry, err error, notFound string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		log.WithError(err).Warn("Request rejected by service validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		log.WithError(err).Warn("Entity not found")
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, service.ErrStoreUnavailable):
		log.WithError(err).Error("Store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
	default:
		log.WithError(err).Error("Unexpected service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
