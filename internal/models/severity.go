package models

import "strings"

// Severity - уровень опасности инцидента или сообщения
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Rank возвращает порядковый вес уровня: Low=1, Medium=2, High=3, неизвестный=0
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	}
	return 0
}

// ParseSeverity приводит строку к Severity без учета регистра
func ParseSeverity(value string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "low":
		return SeverityLow, true
	case "medium", "moderate":
		return SeverityMedium, true
	case "high", "critical", "severe":
		return SeverityHigh, true
	}
	return "", false
}

// SeverityRank возвращает вес для nullable значения, отсутствие считается Low
func SeverityRank(s *Severity) int {
	if s == nil {
		return SeverityLow.Rank()
	}
	return s.Rank()
}
