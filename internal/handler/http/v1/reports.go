package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
)

// smsPrefix помечает текст сообщений, пришедших по SMS
const smsPrefix = "[SMS] "

// @Summary Submit a disaster report
// @Description Ingest a raw report: extraction, geocoding and clustering into an incident
// @Tags Reports
// @Accept json
// @Produce json
// @Param provider query string false "Extraction provider (openai, gemini, dummy)"
// @Param report body CreateReportRequest true "Report"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [post]
func (h *Handler) createReport(c *gin.Context) {
	var input CreateReportRequest
	log := h.logger.WithField("method", "createReport")

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

	report, err := h.reportService.Ingest(c.Request.Context(), service.IngestRequest{
		RawText:     input.RawText,
		ImageBase64: input.ImageBase64,
		Source:      input.Source,
		Provider:    c.Query("provider"),
		UserID:      input.UserID,
	})
	if err != nil {
		respondError(c, log, err, "report not found")
		return
	}
	c.JSON(http.StatusCreated, ModelToReportResponse(report))
}

// @Summary Receive an SMS report
// @Description Webhook for an SMS gateway. The message body is ingested with source sms.
// @Tags Reports
// @Accept x-www-form-urlencoded
// @Produce json
// @Param provider query string false "Extraction provider"
// @Param From formData string false "Sender phone number"
// @Param Body formData string true "Message text"
// @Success 200 {object} SMSWebhookResponse
// @Failure 400 {object} map[string]string "Missing message body"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /ingest/sms [post]
func (h *Handler) ingestSMS(c *gin.Context) {
	var input SMSWebhookRequest
	log := h.logger.WithField("method", "ingestSMS")

	if err := c.ShouldBind(&input); err != nil {
		log.WithError(err).Warn("Failed to bind form")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	input.Body = strings.TrimSpace(input.Body)
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := service.IngestRequest{
		RawText:  smsPrefix + input.Body,
		Source:   models.SourceSMS,
		Provider: c.Query("provider"),
	}
	if from := strings.TrimSpace(input.From); from != "" {
		req.UserID = &from
	}

	report, err := h.reportService.Ingest(c.Request.Context(), req)
	if err != nil {
		respondError(c, log, err, "report not found")
		return
	}
	c.JSON(http.StatusOK, SMSWebhookResponse{Message: "SMS report processed", ReportID: report.ID})
}

// @Summary Get a list of reports
// @Description Get reports ordered from newest to oldest
// @Tags Reports
// @Produce json
// @Param skip query int false "Number of reports to skip" default(0)
// @Param limit query int false "Maximum number of reports" default(100)
// @Success 200 {array} ReportResponse
// @Failure 400 {object} map[string]string "Invalid pagination"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [get]
func (h *Handler) listReports(c *gin.Context) {
	log := h.logger.WithField("method", "listReports")
	skip, limit, ok := parsePage(c)
	if !ok {
		return
	}

	reports, err := h.reportService.ListReports(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, log, err, "report not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToReportResponses(reports))
}

// @Summary Get report by ID
// @Description Get a single report by its ID
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Report not found"
// @Router /reports/{id} [get]
func (h *Handler) getReport(c *gin.Context) {
	id, ok := parseID(c, "report")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getReport").WithField("id", id)

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err, "report not found")
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Set report verification flag
// @Description Mark a report as verified or unverified. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Report ID"
// @Param verification body VerifyReportRequest true "Verification flag"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Report not found"
// @Router /reports/{id}/verify [patch]
func (h *Handler) verifyReport(c *gin.Context) {
	id, ok := parseID(c, "report")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "verifyReport").WithField("id", id)

	var input VerifyReportRequest
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

	report, err := h.reportService.VerifyReport(c.Request.Context(), id, *input.IsVerified)
	if err != nil {
		respondError(c, log, err, "report not found")
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}
