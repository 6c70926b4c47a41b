package models

import "time"

// Типы ресурсов
const (
	ResourceWater     = "water"
	ResourceFood      = "food"
	ResourceMedical   = "medical"
	ResourceShelter   = "shelter"
	ResourceTransport = "transport"
	ResourcePersonnel = "personnel"
	ResourceEquipment = "equipment"
	ResourceOther     = "other"
)

// Статусы ресурсов
const (
	ResourceStatusNeeded    = "needed"
	ResourceStatusAvailable = "available"
	ResourceStatusInTransit = "in_transit"
	ResourceStatusDelivered = "delivered"
)

// Resource - потребность или доступный ресурс, опционально привязанный к инциденту
type Resource struct {
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

// ResourceFilter - необязательные условия выборки ресурсов
type ResourceFilter struct {
	Status       string
	ResourceType string
	IncidentID   *int64
}
