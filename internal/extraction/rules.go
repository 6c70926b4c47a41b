package extraction

import (
	"strings"

	"github.com/shenikar/crisisflow/internal/models"
)

// RulesConfidence - уверенность результата, построенного без модели
const RulesConfidence = 0.5

var hazardKeywords = []struct {
	hazard   string
	keywords []string
}{
	{"Fire", []string{"fire", "wildfire", "smoke", "burning", "flames"}},
	{"Flood", []string{"flood", "flooding", "inundat"}},
	{"Earthquake", []string{"earthquake", "quake", "tremor"}},
	{"Storm", []string{"hurricane", "storm", "cyclone", "typhoon"}},
	{"Tornado", []string{"tornado", "twister"}},
}

var highSeverityKeywords = []string{
	"trapped", "collapsed", "dead", "casualt", "critical", "massive", "evacuat", "explosion", "urgent",
}

var mediumSeverityKeywords = []string{
	"injur", "spreading", "damage", "rising", "blocked", "stranded",
}

var locationMarkers = []string{"street", "st", "st.", "ave", "avenue", "road", "rd", "blvd", "boulevard", "bridge", "highway"}

// Rules извлекает поля по ключевым словам. Результат детерминирован для одного и того же текста.
func Rules(text string) models.ExtractedFields {
	lower := strings.ToLower(text)

	hazard := models.UnknownHazard
	for _, h := range hazardKeywords {
		if containsAny(lower, h.keywords) {
			hazard = h.hazard
			break
		}
	}

	severity := models.SeverityLow
	switch {
	case containsAny(lower, highSeverityKeywords):
		severity = models.SeverityHigh
	case containsAny(lower, mediumSeverityKeywords):
		severity = models.SeverityMedium
	}

	location := ruleLocation(text)
	confidence := RulesConfidence
	return models.ExtractedFields{
		Location:        &location,
		HazardType:      &hazard,
		Severity:        &severity,
		ConfidenceScore: &confidence,
		Fallback:        true,
	}
}

// ruleLocation берет до двух слов перед маркером улицы вместе с ним
func ruleLocation(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		if i == 0 {
			continue
		}
		w := strings.ToLower(strings.Trim(word, ",;:!?"))
		for _, marker := range locationMarkers {
			if w == marker {
				start := max(0, i-2)
				return strings.Trim(strings.Join(words[start:i+1], " "), ",;:!?")
			}
		}
	}
	return models.LocationNotSpecified
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
