package reports

import (
	"sort"
	"time"

	"pet-care-insights/internal/domain/records"
)

func prepareMedications(meds []records.MedicationRecord, metrics []records.MetricRecord, rng Range, now time.Time) *MedicationSection {
	sec := &MedicationSection{
		Active:  make([]MedicationItem, 0),
		History: make([]MedicationItem, 0),
	}

	for _, m := range meds {
		if !rng.Contains(m.StartDate) {
			continue
		}
		item := MedicationItem{
			ID:           m.ID,
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			StartDate:    m.StartDate,
			EndDate:      m.EndDate,
			IsContinuous: m.IsContinuous,
			Notes:        m.Notes,
			Source:       MedicationFromRecord,
		}
		sec.History = append(sec.History, item)
		if isActive(m, now) {
			sec.Active = append(sec.Active, item)
		}
	}

	// Anotaciones de medicación cargadas como métrica: solo historial.
	for _, m := range metrics {
		if m.Category != records.CategoryMedication || !rng.Contains(m.Date) {
			continue
		}
		sec.History = append(sec.History, MedicationItem{
			ID:        m.ID,
			Name:      m.Notes,
			StartDate: m.Date,
			Notes:     m.Notes,
			Source:    MedicationFromMetric,
		})
	}

	sort.SliceStable(sec.History, func(i, j int) bool {
		return sec.History[i].StartDate.After(sec.History[j].StartDate)
	})
	return sec
}

// isActive: sin fecha de fin o con fin en now o después. IsContinuous no
// revive un tratamiento que ya terminó.
func isActive(m records.MedicationRecord, now time.Time) bool {
	return m.EndDate == nil || !m.EndDate.Before(now)
}
