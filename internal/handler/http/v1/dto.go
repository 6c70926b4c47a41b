package v1

import (
	"time"
)

// CreateReportRequest DTO для приема сообщения о происшествии
// @Description DTO для приема сообщения о происшествии
type CreateReportRequest struct {
	RawText     string  `json:"raw_text" validate:"required,min=1,max=10000"`
	ImageBase64 string  `json:"image_base64,omitempty"`
	Source      string  `json:"source,omitempty" validate:"omitempty,oneof=web sms social"`
	UserID      *string `json:"user_id,omitempty" validate:"omitempty,max=255"`
}

// SMSWebhookRequest - форма, которую присылает SMS-шлюз
// @Description Форма входящего SMS
type SMSWebhookRequest struct {
	From string `form:"From"`
	Body string `form:"Body" validate:"required"`
}

// SMSWebhookResponse DTO ответа на входящее SMS
// @Description DTO ответа на входящее SMS
type SMSWebhookResponse struct {
	Message  string `json:"message"`
	ReportID int64  `json:"report_id"`
}

// VerifyReportRequest DTO для изменения признака проверки
// @Description DTO для изменения признака проверки
type VerifyReportRequest struct {
	IsVerified *bool `json:"is_verified" validate:"required"`
}

// ReportResponse DTO для ответа с информацией о сообщении
// @Description DTO для ответа с информацией о сообщении
type ReportResponse struct {
	ID              int64     `json:"id"`
	RawText         string    `json:"raw_text"`
	Location        *string   `json:"location"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	HazardType      *string   `json:"hazard_type"`
	Severity        *string   `json:"severity"`
	ConfidenceScore *float64  `json:"confidence_score"`
	Source          string    `json:"source"`
	ImageKey        *string   `json:"image_key,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	IsVerified      bool      `json:"is_verified"`
	IncidentID      *int64    `json:"incident_id"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID              int64            `json:"id"`
	Location        *string          `json:"location"`
	Latitude        *float64         `json:"latitude"`
	Longitude       *float64         `json:"longitude"`
	HazardType      *string          `json:"hazard_type"`
	Severity        *string          `json:"severity"`
	ConfidenceScore *float64         `json:"confidence_score"`
	WitnessCount    int              `json:"witness_count"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Reports         []ReportResponse `json:"reports,omitempty"`
}

// NearbyQuery - параметры поиска инцидентов рядом с точкой
type NearbyQuery struct {
	Latitude   *float64 `form:"lat" validate:"required,latitude"`
	Longitude  *float64 `form:"lon" validate:"required,longitude"`
	HazardType string   `form:"hazard_type" validate:"omitempty,max=50"`
	Radius     float64  `form:"radius" validate:"omitempty,gt=0,lte=50000"`
}

// CreateResourceRequest DTO для создания ресурса
// @Description DTO для создания ресурса
type CreateResourceRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=255"`
	Description  *string  `json:"description,omitempty"`
	ResourceType string   `json:"resource_type" validate:"required,oneof=water food medical shelter transport personnel equipment other"`
	Status       string   `json:"status,omitempty" validate:"omitempty,oneof=needed available in_transit delivered"`
	Quantity     float64  `json:"quantity" validate:"gte=0"`
	Unit         string   `json:"unit,omitempty" validate:"max=50"`
	Location     *string  `json:"location,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	IncidentID   *int64   `json:"incident_id,omitempty" validate:"omitempty,gt=0"`
}

// UpdateResourceRequest DTO для частичного обновления ресурса
// @Description DTO для частичного обновления ресурса
type UpdateResourceRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string  `json:"description,omitempty"`
	ResourceType *string  `json:"resource_type,omitempty" validate:"omitempty,oneof=water food medical shelter transport personnel equipment other"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,oneof=needed available in_transit delivered"`
	Quantity     *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Unit         *string  `json:"unit,omitempty" validate:"omitempty,max=50"`
	Location     *string  `json:"location,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	IncidentID   *int64   `json:"incident_id,omitempty" validate:"omitempty,gt=0"`
}

// ResourceResponse DTO для ответа с информацией о ресурсе
// @Description DTO для ответа с информацией о ресурсе
type ResourceResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	ResourceType string    `json:"resource_type"`
	Status       string    `json:"status"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	Location     *string   `json:"location"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	IncidentID   *int64    `json:"incident_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
