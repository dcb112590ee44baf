// Package reports arma el reporte de salud de una mascota para un rango de
// fechas: peso, actividad, vacunas, medicación, consultas, síntomas,
// alimentación e hidratación. Generate es puro; Service junta los datos.
package reports

import (
	"math"
	"time"

	"pet-care-insights/internal/domain/events"
	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/domain/records"
)

// Input son los datos crudos de una mascota. Generate no los modifica.
type Input struct {
	Pet     pets.Pet
	Records []records.Record
	Events  []events.CalendarEvent
}

// Generate arma las secciones pedidas en opts. Cada sección filtra por rng
// sus propios datos. Lo que no tiene fecha principal no entra en ninguna
// sección, aunque el rango no tenga inicio.
func Generate(in Input, rng Range, opts Options, now time.Time) Content {
	in = dated(in)
	set := records.Split(in.Records)

	c := Content{
		PetID:       in.Pet.ID,
		PetName:     in.Pet.Name,
		Range:       RangeInfo{Start: rng.Start, End: rng.End, Preset: rng.Preset},
		GeneratedAt: now,
	}

	if opts.WeightData {
		c.Weight = prepareWeight(set.Metrics, rng)
	}
	if opts.ActivityData {
		c.Activity = prepareActivity(set.HealthLogs, rng)
	}
	if opts.VaccinationHistory {
		c.Vaccinations = prepareVaccinations(set.Vaccinations, in.Pet.Vaccinations, rng, now)
	}
	if opts.MedicationHistory {
		c.Medications = prepareMedications(set.Medications, set.Metrics, rng, now)
	}
	if opts.VeterinaryVisits {
		c.Visits = prepareVisits(in.Events, set.Metrics, rng, now)
	}
	if opts.Symptoms {
		c.Symptoms = prepareSymptoms(set.HealthLogs, rng)
	}
	if opts.FoodIntake {
		c.Food = prepareFood(set.HealthLogs, rng)
	}
	if opts.WaterIntake {
		c.Water = prepareWater(set.HealthLogs, rng)
	}
	return c
}

// dated descarta registros, eventos y vacunas de perfil sin fecha. Copia los
// slices para no tocar los del llamador.
func dated(in Input) Input {
	recs := make([]records.Record, 0, len(in.Records))
	for _, r := range in.Records {
		if r != nil && !r.Timestamp().IsZero() {
			recs = append(recs, r)
		}
	}
	evs := make([]events.CalendarEvent, 0, len(in.Events))
	for _, e := range in.Events {
		if !e.Date.IsZero() {
			evs = append(evs, e)
		}
	}
	vacs := make([]pets.EmbeddedVaccination, 0, len(in.Pet.Vaccinations))
	for _, v := range in.Pet.Vaccinations {
		if !v.Date.IsZero() {
			vacs = append(vacs, v)
		}
	}

	out := in
	out.Records = recs
	out.Events = evs
	out.Pet.Vaccinations = vacs
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// histogram cuenta valores no vacíos en orden de primera aparición.
func histogram(values []string) []Count {
	out := make([]Count, 0)
	idx := map[string]int{}
	for _, v := range values {
		if v == "" {
			continue
		}
		if i, ok := idx[v]; ok {
			out[i].Count++
			continue
		}
		idx[v] = len(out)
		out = append(out, Count{Value: v, Count: 1})
	}
	return out
}

// plurality devuelve el valor más frecuente; ante empate gana el que apareció primero.
func plurality(h []Count) string {
	best := ""
	top := 0
	for _, c := range h {
		if c.Count > top {
			best, top = c.Value, c.Count
		}
	}
	return best
}
