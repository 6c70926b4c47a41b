package models

// EventType - тип сообщения, отправляемого наблюдателям
type EventType string

const (
	EventInitialData     EventType = "initial_data"
	EventNewReport       EventType = "new_report"
	EventNewIncident     EventType = "new_incident"
	EventIncidentUpdated EventType = "incident_updated"
	EventPong            EventType = "pong"
)

// Event - доменное событие для рассылки
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
	// Escalated выставляется для incident_updated, если уровень опасности вырос
	Escalated bool `json:"-"`
}

// Snapshot - начальное состояние для только что подключенного наблюдателя
type Snapshot struct {
	Type      EventType   `json:"type"`
	Reports   []*Report   `json:"reports"`
	Incidents []*Incident `json:"incidents"`
}
