package reports

import (
	"sort"
	"strings"
	"time"

	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/domain/records"
	"pet-care-insights/internal/domain/vaccines"
	"pet-care-insights/internal/platform/dates"
)

func prepareVaccinations(recs []records.VaccinationRecord, profile []pets.EmbeddedVaccination, rng Range, now time.Time) *VaccinationSection {
	entries := make([]vaccines.Entry, 0)
	for _, e := range vaccines.Merge(recs, profile) {
		if rng.Contains(e.Date) {
			entries = append(entries, e)
		}
	}

	sec := &VaccinationSection{
		History:            make([]VaccinationItem, 0, len(entries)),
		Upcoming:           make([]VaccinationItem, 0),
		PossibleDuplicates: possibleDuplicates(entries),
	}

	for _, ev := range vaccines.Evaluate(entries, now) {
		item := VaccinationItem{
			ID:       ev.ID,
			Name:     ev.Name,
			Date:     ev.Date,
			NextDate: ev.NextDate,
			VetName:  ev.VetName,
			Source:   ev.Source,
			Status:   ev.Status,
			Label:    ev.Status.Label(),
		}
		sec.History = append(sec.History, item)
		if ev.NextDate != nil && ev.NextDate.After(now) {
			sec.Upcoming = append(sec.Upcoming, item)
		}
	}

	sort.SliceStable(sec.History, func(i, j int) bool {
		return sec.History[i].Date.After(sec.History[j].Date)
	})
	sort.SliceStable(sec.Upcoming, func(i, j int) bool {
		return sec.Upcoming[i].NextDate.Before(*sec.Upcoming[j].NextDate)
	})
	return sec
}

// possibleDuplicates informa nombre+día cargados en ambas fuentes.
func possibleDuplicates(entries []vaccines.Entry) []Duplicate {
	type key struct {
		name string
		day  string
	}
	seen := map[key]map[vaccines.Source]bool{}
	order := make([]key, 0)
	first := map[key]vaccines.Entry{}

	for _, e := range entries {
		k := key{name: strings.ToLower(strings.TrimSpace(e.Name)), day: e.Date.Format(dates.DateFormat)}
		if _, ok := seen[k]; !ok {
			seen[k] = map[vaccines.Source]bool{}
			order = append(order, k)
			first[k] = e
		}
		seen[k][e.Source] = true
	}

	out := make([]Duplicate, 0)
	for _, k := range order {
		if seen[k][vaccines.SourceRecord] && seen[k][vaccines.SourceProfile] {
			e := first[k]
			out = append(out, Duplicate{Name: e.Name, Date: dates.StartOfDay(e.Date)})
		}
	}
	return out
}
