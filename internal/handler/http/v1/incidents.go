package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// @Summary Get a list of active incidents
// @Description Get a paginated list of active incidents
// @Tags Incidents
// @Produce json
// @Param skip query int false "Number of incidents to skip" default(0)
// @Param limit query int false "Maximum number of incidents" default(100)
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid pagination"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	skip, limit, ok := parsePage(c)
	if !ok {
		return
	}

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, log, err, "incident not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident with its attached reports
// @Tags Incidents
// @Produce json
// @Param id path int true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err, "incident not found")
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Find incidents near a point
// @Description Active incidents within radius meters of the point, nearest first
// @Tags Incidents
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param hazard_type query string false "Hazard type filter"
// @Param radius query number false "Radius in meters (defaults to the clustering radius)"
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/nearby [get]
func (h *Handler) nearbyIncidents(c *gin.Context) {
	var input NearbyQuery
	log := h.logger.WithField("method", "nearbyIncidents")

	if err := c.ShouldBindQuery(&input); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var hazardType *string
	if ht := strings.TrimSpace(input.HazardType); ht != "" {
		hazardType = &ht
	}

	incidents, err := h.incidentService.FindNearby(c.Request.Context(), *input.Latitude, *input.Longitude, input.Radius, hazardType)
	if err != nil {
		respondError(c, log, err, "incident not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Deactivate an incident
// @Description Deactivate an incident by its ID. Requires API key.
// @Tags Incidents
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Incident ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteIncident").WithField("id", id)

	if err := h.incidentService.DeactivateIncident(c.Request.Context(), id); err != nil {
		respondError(c, log, err, "incident not found")
		return
	}
	c.Status(http.StatusNoContent)
}
