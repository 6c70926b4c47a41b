package models

import (
	"time"
)

// Incident - агрегат сообщений об одном реальном событии
type Incident struct {
	ID              int64     `json:"id"`
	Location        *string   `json:"location"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	HazardType      *string   `json:"hazard_type"`
	Severity        *Severity `json:"severity"`
	ConfidenceScore *float64  `json:"confidence_score"`
	WitnessCount    int       `json:"witness_count"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Reports         []*Report `json:"reports,omitempty"`
}

// HasCoordinates сообщает, задана ли точка привязки инцидента
func (i *Incident) HasCoordinates() bool {
	return i.Latitude != nil && i.Longitude != nil
}
