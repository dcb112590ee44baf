package reports

import (
	"sort"
	"time"

	"pet-care-insights/internal/domain/events"
	"pet-care-insights/internal/domain/records"
)

func prepareVisits(evs []events.CalendarEvent, metrics []records.MetricRecord, rng Range, now time.Time) *VisitSection {
	sec := &VisitSection{
		History:  make([]VisitItem, 0),
		Upcoming: make([]VisitItem, 0),
	}

	for _, e := range evs {
		if !e.Type.IsVisit() || e.Status == events.EventStatusCancelled {
			continue
		}
		item := VisitItem{
			ID:     e.ID,
			Title:  e.Title,
			Date:   e.Date,
			Type:   string(e.Type),
			Status: e.Status,
			Notes:  e.Notes,
			Source: VisitFromEvent,
		}
		if rng.Contains(e.Date) {
			sec.History = append(sec.History, item)
		}
		// Próximas: no depende del rango, mira hacia adelante desde now.
		if e.Date.After(now) {
			sec.Upcoming = append(sec.Upcoming, item)
		}
	}

	for _, m := range metrics {
		if m.Category != records.CategoryVisit && m.Category != records.CategoryExam {
			continue
		}
		if !rng.Contains(m.Date) {
			continue
		}
		sec.History = append(sec.History, VisitItem{
			ID:     m.ID,
			Title:  m.Notes,
			Date:   m.Date,
			Type:   string(m.Category),
			Notes:  m.Notes,
			Source: VisitFromMetric,
		})
	}

	sort.SliceStable(sec.History, func(i, j int) bool {
		return sec.History[i].Date.After(sec.History[j].Date)
	})
	sort.SliceStable(sec.Upcoming, func(i, j int) bool {
		return sec.Upcoming[i].Date.Before(sec.Upcoming[j].Date)
	})
	return sec
}
