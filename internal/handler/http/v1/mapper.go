package v1

import (
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
)

func severityString(s *models.Severity) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

// ModelToReportResponse преобразует доменную модель сообщения в DTO ответа
func ModelToReportResponse(report *models.Report) ReportResponse {
	return ReportResponse{
		ID:              report.ID,
		RawText:         report.RawText,
		Location:        report.Location,
		Latitude:        report.Latitude,
		Longitude:       report.Longitude,
		HazardType:      report.HazardType,
		Severity:        severityString(report.Severity),
		ConfidenceScore: report.ConfidenceScore,
		Source:          report.Source,
		ImageKey:        report.ImageKey,
		Timestamp:       report.Timestamp,
		IsVerified:      report.IsVerified,
		IncidentID:      report.IncidentID,
	}
}

// ModelsToReportResponses преобразует срез сообщений в срез DTO
func ModelsToReportResponses(reports []*models.Report) []ReportResponse {
	responses := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, ModelToReportResponse(r))
	}
	return responses
}

// ModelToIncidentResponse преобразует доменную модель инцидента в DTO ответа
func ModelToIncidentResponse(incident *models.Incident) IncidentResponse {
	resp := IncidentResponse{
		ID:              incident.ID,
		Location:        incident.Location,
		Latitude:        incident.Latitude,
		Longitude:       incident.Longitude,
		HazardType:      incident.HazardType,
		Severity:        severityString(incident.Severity),
		ConfidenceScore: incident.ConfidenceScore,
		WitnessCount:    incident.WitnessCount,
		IsActive:        incident.IsActive,
		CreatedAt:       incident.CreatedAt,
		UpdatedAt:       incident.UpdatedAt,
	}
	if len(incident.Reports) > 0 {
		resp.Reports = ModelsToReportResponses(incident.Reports)
	}
	return resp
}

// ModelsToIncidentResponses преобразует срез инцидентов в срез DTO
func ModelsToIncidentResponses(incidents []*models.Incident) []IncidentResponse {
	responses := make([]IncidentResponse, 0, len(incidents))
	for _, inc := range incidents {
		responses = append(responses, ModelToIncidentResponse(inc))
	}
	return responses
}

// DTOToResourceModel преобразует DTO создания в доменную модель ресурса
func DTOToResourceModel(dto CreateResourceRequest) *models.Resource {
	return &models.Resource{
		Name:         dto.Name,
		Description:  dto.Description,
		ResourceType: dto.ResourceType,
		Status:       dto.Status,
		Quantity:     dto.Quantity,
		Unit:         dto.Unit,
		Location:     dto.Location,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		IncidentID:   dto.IncidentID,
	}
}

// DTOToResourceUpdate преобразует DTO частичного обновления
func DTOToResourceUpdate(dto UpdateResourceRequest) service.ResourceUpdate {
	return service.ResourceUpdate{
		Name:         dto.Name,
		Description:  dto.Description,
		ResourceType: dto.ResourceType,
		Status:       dto.Status,
		Quantity:     dto.Quantity,
		Unit:         dto.Unit,
		Location:     dto.Location,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		IncidentID:   dto.IncidentID,
	}
}

// ModelToResourceResponse преобразует доменную модель ресурса в DTO ответа
func ModelToResourceResponse(resource *models.Resource) ResourceResponse {
	return ResourceResponse{
		ID:           resource.ID,
		Name:         resource.Name,
		Description:  resource.Description,
		ResourceType: resource.ResourceType,
		Status:       resource.Status,
		Quantity:     resource.Quantity,
		Unit:         resource.Unit,
		Location:     resource.Location,
		Latitude:     resource.Latitude,
		Longitude:    resource.Longitude,
		IncidentID:   resource.IncidentID,
		CreatedAt:    resource.CreatedAt,
		UpdatedAt:    resource.UpdatedAt,
	}
}

// ModelsToResourceResponses преобразует срез ресурсов в срез DTO
func ModelsToResourceResponses(resources []*models.Resource) []ResourceResponse {
	responses := make([]ResourceResponse, 0, len(resources))
	for _, r := range resources {
		responses = append(responses, ModelToResourceResponse(r))
	}
	return responses
}
