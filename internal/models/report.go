package models

import (
	"time"
)

// Источники сообщений
const (
	SourceWeb    = "web"
	SourceSMS    = "sms"
	SourceSocial = "social"
)

// UnknownHazard - тип опасности, если его не удалось определить
const UnknownHazard = "Unknown"

// LocationNotSpecified - метка, которой экстрактор обозначает отсутствие адреса
const LocationNotSpecified = "Location not specified"

// Report - отдельное свидетельство после извлечения структурированных полей
type Report struct {
	ID              int64     `json:"id"`
	RawText         string    `json:"raw_text"`
	Location        *string   `json:"location"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	HazardType      *string   `json:"hazard_type"`
	Severity        *Severity `json:"severity"`
	ConfidenceScore *float64  `json:"confidence_score"`
	Source          string    `json:"source"`
	ImageKey        *string   `json:"image_key,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	IsVerified      bool      `json:"is_verified"`
	IncidentID      *int64    `json:"incident_id"`
	UserID          *string   `json:"user_id,omitempty"`
}

// HasCoordinates сообщает, удалось ли определить координаты сообщения
func (r *Report) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// ExtractedFields - результат извлечения из текста или изображения
type ExtractedFields struct {
	Location        *string
	HazardType      *string
	Severity        *Severity
	ConfidenceScore *float64
	Latitude        *float64
	Longitude       *float64
	// Fallback выставляется, если результат построен детерминированным правилом
	Fallback bool
}

// Coordinates - результат геокодирования, оба поля либо заданы, либо nil
type Coordinates struct {
	Latitude  *float64
	Longitude *float64
}

// Resolved сообщает, найдены ли координаты
func (c Coordinates) Resolved() bool {
	return c.Latitude != nil && c.Longitude != nil
}
