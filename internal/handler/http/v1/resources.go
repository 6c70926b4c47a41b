package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/crisisflow/internal/models"
)

// @Summary Register a resource
// @Description Register a needed or available resource, optionally tied to an incident
// @Tags Resources
// @Accept json
// @Produce json
// @Param resource body CreateResourceRequest true "Resource"
// @Success 201 {object} ResourceResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /resources [post]
func (h *Handler) createResource(c *gin.Context) {
	var input CreateResourceRequest
	log := h.logger.WithField("method", "createResource")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToResourceModel(input)
	if err := h.resourceService.CreateResource(c.Request.Context(), model); err != nil {
		respondError(c, log, err, "resource not found")
		return
	}
	c.JSON(http.StatusCreated, ModelToResourceResponse(model))
}

// @Summary Get a list of resources
// @Description Get resources filtered by status, type or incident
// @Tags Resources
// @Produce json
// @Param status query string false "Resource status"
// @Param resource_type query string false "Resource type"
// @Param incident_id query int false "Incident ID"
// @Success 200 {array} ResourceResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /resources [get]
func (h *Handler) listResources(c *gin.Context) {
	log := h.logger.WithField("method", "listResources")

	filter := models.ResourceFilter{
		Status:       c.Query("status"),
		ResourceType: c.Query("resource_type"),
	}
	if raw := c.Query("incident_id"); raw != "" {
		incidentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident_id"})
			return
		}
		filter.IncidentID = &incidentID
	}

	resources, err := h.resourceService.ListResources(c.Request.Context(), filter)
	if err != nil {
		respondError(c, log, err, "resource not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToResourceResponses(resources))
}

// @Summary Get resource by ID
// @Tags Resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} ResourceResponse
// @Failure 400 {object} map[string]string "Invalid resource ID"
// @Failure 404 {object} map[string]string "Resource not found"
// @Router /resources/{id} [get]
func (h *Handler) getResource(c *gin.Context) {
	id, ok := parseID(c, "resource")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getResource").WithField("id", id)

	resource, err := h.resourceService.GetResource(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err, "resource not found")
		return
	}
	c.JSON(http.StatusOK, ModelToResourceResponse(resource))
}

// @Summary Update a resource
// @Description Partially update a resource. Omitted fields keep their values.
// @Tags Resources
// @Accept json
// @Produce json
// @Param id path int true "Resource ID"
// @Param resource body UpdateResourceRequest true "Fields to change"
// @Success 200 {object} ResourceResponse
// @Failure 400 {object} map[string]string "Invalid resource ID or request body"
// @Failure 404 {object} map[string]string "Resource not found"
// @Router /resources/{id} [put]
func (h *Handler) updateResource(c *gin.Context) {
	id, ok := parseID(c, "resource")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateResource").WithField("id", id)

	var input UpdateResourceRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resource, err := h.resourceService.UpdateResource(c.Request.Context(), id, DTOToResourceUpdate(input))
	if err != nil {
		respondError(c, log, err, "resource not found")
		return
	}
	c.JSON(http.StatusOK, ModelToResourceResponse(resource))
}

// @Summary Delete a resource
// @Description Delete a resource by its ID. Requires API key.
// @Tags Resources
// @Security ApiKeyAuth
// @Param id path int true "Resource ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid resource ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Resource not found"
// @Router /resources/{id} [delete]
func (h *Handler) deleteResource(c *gin.Context) {
	id, ok := parseID(c, "resource")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteResource").WithField("id", id)

	if err := h.resourceService.DeleteResource(c.Request.Context(), id); err != nil {
		respondError(c, log, err, "resource not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Resource balance summary
// @Description Needed and available quantities per resource type with deficits
// @Tags Resources
// @Produce json
// @Success 200 {object} models.ResourceSummary
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /resources/summary [get]
func (h *Handler) resourceSummary(c *gin.Context) {
	log := h.logger.WithField("method", "resourceSummary")

	summary, err := h.analyticsService.ResourceSummary(c.Request.Context())
	if err != nil {
		respondError(c, log, err, "summary not found")
		return
	}
	c.JSON(http.StatusOK, summary)
}
