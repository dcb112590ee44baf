package reports

import (
	"sort"
	"strings"

	"pet-care-insights/internal/domain/records"
)

func prepareSymptoms(logs []records.HealthLog, rng Range) *SymptomSection {
	all := make([]string, 0)
	for _, l := range logs {
		if !rng.Contains(l.Date) {
			continue
		}
		for _, s := range l.Symptoms {
			all = append(all, strings.TrimSpace(s))
		}
	}

	counts := histogram(all)
	// SliceStable: ante empate queda el orden de primera aparición.
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return &SymptomSection{Counts: counts, Total: total}
}

// prepareFood devuelve las entradas tal cual, en el orden recibido.
func prepareFood(logs []records.HealthLog, rng Range) *FoodSection {
	entries := make([]FoodEntry, 0)
	for _, l := range logs {
		if !rng.Contains(l.Date) || strings.TrimSpace(l.FoodIntake) == "" {
			continue
		}
		entries = append(entries, FoodEntry{Date: l.Date, FoodIntake: l.FoodIntake, Notes: l.Notes})
	}
	return &FoodSection{Entries: entries}
}

func prepareWater(logs []records.HealthLog, rng Range) *WaterSection {
	values := make([]string, 0)
	for _, l := range logs {
		if rng.Contains(l.Date) {
			values = append(values, strings.TrimSpace(l.WaterIntake))
		}
	}
	h := histogram(values)
	return &WaterSection{Levels: h, MostFrequent: plurality(h)}
}
