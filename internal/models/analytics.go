package models

// ReportHistory - сводка сообщений за период
type ReportHistory struct {
	PeriodDays        int            `json:"period_days"`
	TotalReports      int            `json:"total_reports"`
	ByDate            map[string]int `json:"by_date"`
	BySeverity        map[string]int `json:"by_severity"`
	ByHazardType      map[string]int `json:"by_hazard_type"`
	AverageConfidence float64        `json:"average_confidence"`
}

// IncidentTrends - динамика инцидентов за период
type IncidentTrends struct {
	PeriodDays                  int            `json:"period_days"`
	TotalIncidents              int            `json:"total_incidents"`
	ActiveIncidents             int            `json:"active_incidents"`
	TotalWitnesses              int            `json:"total_witnesses"`
	ByDate                      map[string]int `json:"by_date"`
	AverageWitnessesPerIncident float64        `json:"average_witnesses_per_incident"`
}

// ResourceTrends - потребности и доступность ресурсов за период
type ResourceTrends struct {
	PeriodDays      int                `json:"period_days"`
	NeededByType    map[string]float64 `json:"needed_by_type"`
	AvailableByType map[string]float64 `json:"available_by_type"`
	Deficits        map[string]float64 `json:"deficits"`
}

// ResourceBalance - баланс одного типа ресурса
type ResourceBalance struct {
	Needed    float64 `json:"needed"`
	Available float64 `json:"available"`
	Deficit   float64 `json:"deficit"`
}

// ResourceSummary - сводка по всем ресурсам
type ResourceSummary struct {
	Needed    map[string]float64         `json:"needed"`
	Available map[string]float64         `json:"available"`
	Summary   map[string]ResourceBalance `json:"summary"`
}

// DashboardCounts - агрегаты для главной панели
type DashboardCounts struct {
	TotalReports       int `json:"total_reports"`
	ActiveIncidents    int `json:"active_incidents"`
	ResourcesNeeded    int `json:"resources_needed"`
	ResourcesAvailable int `json:"resources_available"`
	RecentReports      int `json:"-"`
	RecentIncidents    int `json:"-"`
}

// RecentActivity - активность за последние 24 часа
type RecentActivity struct {
	Reports   int `json:"reports"`
	Incidents int `json:"incidents"`
}

// DashboardStats - ответ для главной панели
type DashboardStats struct {
	TotalReports       int            `json:"total_reports"`
	ActiveIncidents    int            `json:"active_incidents"`
	ResourcesNeeded    int            `json:"resources_needed"`
	ResourcesAvailable int            `json:"resources_available"`
	RecentActivity24h  RecentActivity `json:"recent_activity_24h"`
}
