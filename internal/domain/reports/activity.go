package reports

import (
	"math"

	"pet-care-insights/internal/domain/records"
)

func prepareActivity(logs []records.HealthLog, rng Range) *ActivitySection {
	sec := &ActivitySection{Levels: make([]Count, 0)}

	levels := make([]string, 0)
	for _, l := range logs {
		if !rng.Contains(l.Date) {
			continue
		}
		sec.Logs++
		sec.TotalMinutes += l.ActivityMinutes
		levels = append(levels, l.ActivityLevel)
	}

	if sec.Logs > 0 {
		avg := int(math.Round(float64(sec.TotalMinutes) / float64(sec.Logs)))
		sec.AverageMinutes = &avg
	}
	sec.Levels = histogram(levels)
	sec.MostFrequentLevel = plurality(sec.Levels)
	return sec
}
