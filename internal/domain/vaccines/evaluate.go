package vaccines

import (
	"sort"
	"strings"
	"time"
)

// Source indica de dónde salió una entrada.
type Source string

const (
	SourceRecord  Source = "record"  // historial (VaccinationRecord)
	SourceProfile Source = "profile" // lista embebida en el perfil de la mascota
)

// Entry es una dosis, venga del historial o del perfil.
type Entry struct {
	ID       string
	Name     string
	Date     time.Time
	NextDate *time.Time
	VetName  string
	Source   Source
}

// Evaluated es una Entry con su estado ya calculado.
type Evaluated struct {
	Entry
	Status Status
}

// Evaluate clasifica cada entrada. Una dosis cuyo refuerzo ya pasó no se
// considera vencida si existe una aplicación posterior de la misma vacuna
// (nombre sin distinguir mayúsculas). Conserva el orden de entrada.
func Evaluate(entries []Entry, now time.Time) []Evaluated {
	latest := make(map[string]time.Time, len(entries))
	for _, e := range entries {
		key := nameKey(e.Name)
		if cur, ok := latest[key]; !ok || e.Date.After(cur) {
			latest[key] = e.Date
		}
	}

	out := make([]Evaluated, 0, len(entries))
	for _, e := range entries {
		st := Classify(e.Date, e.NextDate, now)
		if st == StatusOverdue && latest[nameKey(e.Name)].After(e.Date) {
			st = StatusApplied
		}
		out = append(out, Evaluated{Entry: e, Status: st})
	}
	return out
}

// Partitioned separa aplicadas de próximas.
type Partitioned struct {
	Applied  []Evaluated
	Upcoming []Evaluated
}

// Partition: aplicadas por fecha de aplicación descendente, el resto
// (scheduled, due_month, due_soon, overdue) por fecha de refuerzo ascendente.
func Partition(entries []Entry, now time.Time) Partitioned {
	p := Partitioned{
		Applied:  make([]Evaluated, 0),
		Upcoming: make([]Evaluated, 0),
	}
	for _, ev := range Evaluate(entries, now) {
		if ev.Status == StatusApplied {
			p.Applied = append(p.Applied, ev)
		} else {
			p.Upcoming = append(p.Upcoming, ev)
		}
	}

	sort.SliceStable(p.Applied, func(i, j int) bool {
		return p.Applied[i].Date.After(p.Applied[j].Date)
	})
	sort.SliceStable(p.Upcoming, func(i, j int) bool {
		return p.Upcoming[i].NextDate.Before(*p.Upcoming[j].NextDate)
	})
	return p
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
