package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseDays читает период в днях. Ноль означает значение по умолчанию сервиса.
func parseDays(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return 0, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > 365 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
		return 0, false
	}
	return days, true
}

// @Summary Historical report statistics
// @Description Reports over a period grouped by date, severity and hazard type
// @Tags Analytics
// @Produce json
// @Param days query int false "Period in days" default(7)
// @Param hazard_type query string false "Hazard type filter"
// @Success 200 {object} models.ReportHistory
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/reports/historical [get]
func (h *Handler) reportHistory(c *gin.Context) {
	log := h.logger.WithField("method", "reportHistory")
	days, ok := parseDays(c)
	if !ok {
		return
	}
	var hazardType *string
	if ht := strings.TrimSpace(c.Query("hazard_type")); ht != "" {
		hazardType = &ht
	}

	history, err := h.analyticsService.ReportHistory(c.Request.Context(), days, hazardType)
	if err != nil {
		respondError(c, log, err, "no data")
		return
	}
	c.JSON(http.StatusOK, history)
}

// @Summary Incident trends
// @Description Incidents created over a period with witness totals for active ones
// @Tags Analytics
// @Produce json
// @Param days query int false "Period in days" default(30)
// @Success 200 {object} models.IncidentTrends
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/incidents/trends [get]
func (h *Handler) incidentTrends(c *gin.Context) {
	log := h.logger.WithField("method", "incidentTrends")
	days, ok := parseDays(c)
	if !ok {
		return
	}

	trends, err := h.analyticsService.IncidentTrends(c.Request.Context(), days)
	if err != nil {
		respondError(c, log, err, "no data")
		return
	}
	c.JSON(http.StatusOK, trends)
}

// @Summary Resource trends
// @Description Needed and available quantities per type over a period
// @Tags Analytics
// @Produce json
// @Param days query int false "Period in days" default(7)
// @Success 200 {object} models.ResourceTrends
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/resources/trends [get]
func (h *Handler) resourceTrends(c *gin.Context) {
	log := h.logger.WithField("method", "resourceTrends")
	days, ok := parseDays(c)
	if !ok {
		return
	}

	trends, err := h.analyticsService.ResourceTrends(c.Request.Context(), days)
	if err != nil {
		respondError(c, log, err, "no data")
		return
	}
	c.JSON(http.StatusOK, trends)
}

// @Summary Dashboard statistics
// @Description Totals for the dashboard and activity over the last 24 hours
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/dashboard [get]
func (h *Handler) dashboard(c *gin.Context) {
	log := h.logger.WithField("method", "dashboard")

	stats, err := h.analyticsService.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, log, err, "no data")
		return
	}
	c.JSON(http.StatusOK, stats)
}
