package vaccines

import (
	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/domain/records"
)

// FromRecords convierte el historial de vacunas en entradas.
func FromRecords(items []records.VaccinationRecord) []Entry {
	out := make([]Entry, 0, len(items))
	for _, v := range items {
		out = append(out, Entry{
			ID:       v.ID,
			Name:     v.Name,
			Date:     v.Date,
			NextDate: v.NextDate,
			VetName:  v.VetName,
			Source:   SourceRecord,
		})
	}
	return out
}

// FromProfile convierte la lista embebida del perfil. No tiene id propio.
func FromProfile(items []pets.EmbeddedVaccination) []Entry {
	out := make([]Entry, 0, len(items))
	for _, v := range items {
		out = append(out, Entry{
			Name:     v.Name,
			Date:     v.Date,
			NextDate: v.NextDate,
			VetName:  v.VetName,
			Source:   SourceProfile,
		})
	}
	return out
}

// Merge junta ambas fuentes sin deduplicar: historial primero, perfil después.
func Merge(recs []records.VaccinationRecord, profile []pets.EmbeddedVaccination) []Entry {
	return append(FromRecords(recs), FromProfile(profile)...)
}
